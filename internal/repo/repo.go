package repo

import "gorm.io/gorm"

// GormRepo is the persistence collaborator. One instance with a pooled
// connection is shared process-wide and injected into the services.
type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
