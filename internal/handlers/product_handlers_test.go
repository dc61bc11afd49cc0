package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nextlevel/storefront/internal/models"
	"github.com/nextlevel/storefront/internal/transport"
)

func seedCatalog(env *testEnv) (shirt, jacket, sneakers *models.Product) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	shirt = &models.Product{Name: "Classic Tee", Description: "Plain cotton shirt", Price: 19.99, CreatedAt: base}
	jacket = &models.Product{Name: "Denim Jacket", Description: "Washed denim", Price: 79.90, CreatedAt: base.Add(time.Hour)}
	sneakers = &models.Product{Name: "Canvas Sneakers", Description: "Low-top shoes", Price: 49.50, CreatedAt: base.Add(2 * time.Hour)}

	for _, p := range []*models.Product{shirt, jacket, sneakers} {
		require.NoError(env.T, env.DB.Create(p).Error)
	}
	return shirt, jacket, sneakers
}

func TestGetAllProductsDefaultSort(t *testing.T) {
	env := newTestEnv(t)
	_, _, sneakers := seedCatalog(env)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products", nil, nil)
	require.NoError(t, env.Products.GetAllProducts(c))

	resp := decode[transport.ListResponse[models.Product]](t, rec)
	require.EqualValues(t, 3, resp.Total)
	require.Len(t, resp.Items, 3)
	// newest first
	require.Equal(t, sneakers.ID, resp.Items[0].ID)
}

func TestGetAllProductsSearch(t *testing.T) {
	env := newTestEnv(t)
	_, jacket, _ := seedCatalog(env)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products?search=DENIM", nil, nil)
	require.NoError(t, env.Products.GetAllProducts(c))

	resp := decode[transport.ListResponse[models.Product]](t, rec)
	require.EqualValues(t, 1, resp.Total)
	require.Equal(t, jacket.ID, resp.Items[0].ID)

	// matches description as well as name
	rec, c = env.doJSONRequest(http.MethodGet, "/api/v1/products?search=cotton", nil, nil)
	require.NoError(t, env.Products.GetAllProducts(c))
	resp = decode[transport.ListResponse[models.Product]](t, rec)
	require.EqualValues(t, 1, resp.Total)
}

func TestGetAllProductsPriceBounds(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(env)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products?min_price=19.99&max_price=49.50", nil, nil)
	require.NoError(t, env.Products.GetAllProducts(c))

	resp := decode[transport.ListResponse[models.Product]](t, rec)
	require.EqualValues(t, 2, resp.Total)
	for _, p := range resp.Items {
		require.GreaterOrEqual(t, p.Price, 19.99)
		require.LessOrEqual(t, p.Price, 49.50)
	}
}

func TestGetAllProductsSortModes(t *testing.T) {
	env := newTestEnv(t)
	shirt, jacket, _ := seedCatalog(env)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products?sort_by=price_asc", nil, nil)
	require.NoError(t, env.Products.GetAllProducts(c))
	resp := decode[transport.ListResponse[models.Product]](t, rec)
	require.Equal(t, shirt.ID, resp.Items[0].ID)

	rec, c = env.doJSONRequest(http.MethodGet, "/api/v1/products?sort_by=price_desc", nil, nil)
	require.NoError(t, env.Products.GetAllProducts(c))
	resp = decode[transport.ListResponse[models.Product]](t, rec)
	require.Equal(t, jacket.ID, resp.Items[0].ID)

	rec, c = env.doJSONRequest(http.MethodGet, "/api/v1/products?sort_by=name_asc", nil, nil)
	require.NoError(t, env.Products.GetAllProducts(c))
	resp = decode[transport.ListResponse[models.Product]](t, rec)
	require.Equal(t, "Canvas Sneakers", resp.Items[0].Name)
}

func TestGetAllProductsPagination(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 15; i++ {
		env.createProduct("Product "+string(rune('A'+i)), float64(10+i))
	}

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products?skip=0&take=12", nil, nil)
	require.NoError(t, env.Products.GetAllProducts(c))

	resp := decode[transport.ListResponse[models.Product]](t, rec)
	require.Len(t, resp.Items, 12)
	require.EqualValues(t, 15, resp.Total)

	rec, c = env.doJSONRequest(http.MethodGet, "/api/v1/products?skip=12&take=12", nil, nil)
	require.NoError(t, env.Products.GetAllProducts(c))
	resp = decode[transport.ListResponse[models.Product]](t, rec)
	require.Len(t, resp.Items, 3)
	require.EqualValues(t, 15, resp.Total)
}

func TestGetProductByID(t *testing.T) {
	env := newTestEnv(t)
	shirt, _, _ := seedCatalog(env)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products/x", nil, nil)
	c.SetParamNames("id")
	c.SetParamValues(shirt.ID)
	require.NoError(t, env.Products.GetProductByID(c))

	resp := decode[models.Product](t, rec)
	require.Equal(t, shirt.ID, resp.ID)
	require.Equal(t, shirt.Price, resp.Price)

	_, c = env.doJSONRequest(http.MethodGet, "/api/v1/products/x", nil, nil)
	c.SetParamNames("id")
	c.SetParamValues("does-not-exist")
	requireHTTPError(t, env.Products.GetProductByID(c), http.StatusNotFound)
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]interface{}{
		"name":        "Wool Beanie",
		"description": "Ribbed wool beanie",
		"price":       14.0,
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/products", payload, nil)
	require.NoError(t, env.Products.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decode[models.Product](t, rec)
	require.NotEmpty(t, resp.ID)
	require.Equal(t, 14.0, resp.Price)
}

func TestCreateProductValidation(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/products",
		map[string]interface{}{"name": "Freebie", "description": "x", "price": 0}, nil)
	requireHTTPError(t, env.Products.CreateProduct(c), http.StatusBadRequest)

	_, c = env.doJSONRequest(http.MethodPost, "/api/v1/admin/products",
		map[string]interface{}{"name": "", "description": "x", "price": 5.0}, nil)
	requireHTTPError(t, env.Products.CreateProduct(c), http.StatusBadRequest)
}

func TestUpdateProductPartial(t *testing.T) {
	env := newTestEnv(t)
	shirt, _, _ := seedCatalog(env)

	rec, c := env.doJSONRequest(http.MethodPatch, "/api/v1/admin/products/x",
		map[string]interface{}{"price": 24.99}, nil)
	c.SetParamNames("id")
	c.SetParamValues(shirt.ID)
	require.NoError(t, env.Products.UpdateProduct(c))

	resp := decode[models.Product](t, rec)
	require.Equal(t, 24.99, resp.Price)
	require.Equal(t, shirt.Name, resp.Name)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	shirt, _, _ := seedCatalog(env)

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/v1/admin/products/x", nil, nil)
	c.SetParamNames("id")
	c.SetParamValues(shirt.ID)
	require.NoError(t, env.Products.DeleteProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	_, c = env.doJSONRequest(http.MethodGet, "/api/v1/products/x", nil, nil)
	c.SetParamNames("id")
	c.SetParamValues(shirt.ID)
	requireHTTPError(t, env.Products.GetProductByID(c), http.StatusNotFound)
}

func TestDeleteProductMissing(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodDelete, "/api/v1/admin/products/x", nil, nil)
	c.SetParamNames("id")
	c.SetParamValues("does-not-exist")
	requireHTTPError(t, env.Products.DeleteProduct(c), http.StatusNotFound)
}

func TestDeleteProductReferencedByOrder(t *testing.T) {
	env := newTestEnv(t)
	shirt, _, _ := seedCatalog(env)
	user := env.createUser("user@example.com", "password123", models.RoleCustomer)

	order := &models.Order{
		UserID: user.ID,
		Total:  shirt.Price,
		Status: "pending",
		Items:  []models.OrderItem{{ProductID: shirt.ID, Quantity: 1, Price: shirt.Price}},
	}
	require.NoError(t, env.DB.Create(order).Error)

	_, c := env.doJSONRequest(http.MethodDelete, "/api/v1/admin/products/x", nil, nil)
	c.SetParamNames("id")
	c.SetParamValues(shirt.ID)
	requireHTTPError(t, env.Products.DeleteProduct(c), http.StatusBadRequest)

	var count int64
	require.NoError(t, env.DB.Model(&models.Product{}).Where("id = ?", shirt.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
