package repository

import (
	"testhub_backend/internal/model"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

func (r *TestRepository) Create(test *model.Test) error {
	return r.DB.Create(test).Error
}

func (r *TestRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.position ASC")
	}).First(&test, id).Error
	return &test, err
}

func (r *TestRepository) FindAll() ([]model.Test, error) {
	var tests []model.Test
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.position ASC")
	}).Order("created_at DESC").Find(&tests).Error
	return tests, err
}

func (r *TestRepository) FindByCategory(category model.TestCategory) ([]model.Test, error) {
	var tests []model.Test
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.position ASC")
	}).Where("category = ?", category).Order("created_at DESC").Find(&tests).Error
	return tests, err
}

// Update saves test columns and replaces the question list atomically so
// positions stay dense and ordered.
func (r *TestRepository) Update(test *model.Test, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Questions").Save(test).Error; err != nil {
			return err
		}
		if questions == nil {
			return nil
		}
		if err := tx.Where("test_id = ?", test.ID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ID = 0
			questions[i].TestID = test.ID
			questions[i].Position = i
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}

func (r *TestRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Test{}, id).Error
	})
}
