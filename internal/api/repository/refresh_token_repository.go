package repository

import (
	"time"

	"gasikara/internal/api/models"

	"gorm.io/gorm"
)

type RefreshTokenRepository interface {
	Create(token *models.RefreshToken) error
	FindByToken(token string) (*models.RefreshToken, error)
	Revoke(id string) error
	DeleteExpired() error
}

type refreshTokenRepo struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepo{db: db}
}

func (r *refreshTokenRepo) Create(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *refreshTokenRepo) FindByToken(token string) (*models.RefreshToken, error) {
	var t models.RefreshToken
	if err := r.db.Where("token = ? AND revoked = false", token).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *refreshTokenRepo) Revoke(id string) error {
	return r.db.Model(&models.RefreshToken{}).Where("id = ?", id).
		Update("revoked", true).Error
}

func (r *refreshTokenRepo) DeleteExpired() error {
	return r.db.Where("expires_at < ?", time.Now()).
		Delete(&models.RefreshToken{}).Error
}
