package repository

import (
	"testhub_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// ClearOTPState wipes every OTP column in one update so a verified account
// holds no residue of the code.
func (r *UserRepository) ClearOTPState(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"is_verified":     true,
			"otp":             "",
			"otp_expires":     nil,
			"otp_attempts":    0,
			"otp_last_resend": nil,
		}).Error
}

func (r *UserRepository) IncrementOTPAttempts(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("otp_attempts", gorm.Expr("otp_attempts + 1")).
		Error
}
