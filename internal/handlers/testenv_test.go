package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nextlevel/storefront/internal/hash"
	authmw "github.com/nextlevel/storefront/internal/middleware/auth"
	"github.com/nextlevel/storefront/internal/models"
	"github.com/nextlevel/storefront/internal/repo"
	"github.com/nextlevel/storefront/internal/service"
	"github.com/nextlevel/storefront/internal/token"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Store  *repo.GormRepo
	Tokens *token.Service

	Auth     *AuthHandler
	Users    *UserHandler
	Products *ProductHandler
	Orders   *OrderHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))

	store := repo.New(db)
	tokens := &token.Service{Secret: []byte("test_secret")}

	env := &testEnv{
		T:      t,
		E:      echo.New(),
		DB:     db,
		Store:  store,
		Tokens: tokens,

		Auth:     &AuthHandler{Svc: &service.AuthService{Repo: store, Tokens: tokens}},
		Users:    &UserHandler{Svc: &service.UserService{Repo: store}},
		Products: &ProductHandler{Svc: &service.ProductService{Repo: store}},
		Orders:   &OrderHandler{Svc: &service.OrderService{Repo: store}},
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return env
}

// doJSONRequest builds an echo context for a handler call. A non-nil claims
// value plays the part of the WithUser middleware.
func (env *testEnv) doJSONRequest(method, target string, payload interface{}, claims *token.Claims) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(env.T, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	if claims != nil {
		authmw.SetUser(c, claims)
	}
	return rec, c
}

func (env *testEnv) createUser(email, password, role string) *models.User {
	env.T.Helper()

	user := &models.User{Email: email, Role: role}
	if password != "" {
		pwHash, err := hash.HashPassword(password)
		require.NoError(env.T, err)
		user.PasswordHash = &pwHash
	}
	require.NoError(env.T, env.DB.Create(user).Error)
	return user
}

func (env *testEnv) createProduct(name string, price float64) *models.Product {
	env.T.Helper()

	product := &models.Product{Name: name, Description: name + " description", Price: price}
	require.NoError(env.T, env.DB.Create(product).Error)
	return product
}

func claimsFor(u *models.User) *token.Claims {
	return &token.Claims{UserID: u.ID, Email: u.Email, Role: u.Role}
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
