package repository

import (
	"context"

	"gasikara/internal/api/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, categories []models.Category) error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) GetAll(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		Order("name asc").
		Find(&list).Error
	return list, err
}

func (r *categoryRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&n).Error
	return n, err
}

func (r *categoryRepo) CreateBatch(ctx context.Context, categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&categories).Error
}
