package repository

import (
	"time"

	"gasikara/internal/api/models"

	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(admin *models.Admin) error
	FindByUsername(username string) (*models.Admin, error)
	FindByID(id int64) (*models.Admin, error)
	TouchLastLogin(id int64, at time.Time) error
	Count() (int64, error)
}

type adminRepo struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) Create(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

func (r *adminRepo) FindByUsername(username string) (*models.Admin, error) {
	var a models.Admin
	if err := r.db.Where("username = ? AND is_active = true", username).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *adminRepo) FindByID(id int64) (*models.Admin, error) {
	var a models.Admin
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *adminRepo) TouchLastLogin(id int64, at time.Time) error {
	return r.db.Model(&models.Admin{}).Where("id = ?", id).
		Update("last_login", at).Error
}

func (r *adminRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Admin{}).Count(&n).Error
	return n, err
}
