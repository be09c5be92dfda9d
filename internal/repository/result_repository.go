package repository

import (
	"testhub_backend/internal/model"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func (r *ResultRepository) Create(result *model.Result) error {
	return r.DB.Create(result).Error
}

func (r *ResultRepository) FindByUser(userID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.DB.Preload("Answers").Preload("Test").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&results).Error
	return results, err
}

func (r *ResultRepository) FindByID(id uint) (*model.Result, error) {
	var result model.Result
	err := r.DB.Preload("Answers").Preload("Test").First(&result, id).Error
	return &result, err
}
