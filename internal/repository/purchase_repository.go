package repository

import (
	"testhub_backend/internal/model"

	"gorm.io/gorm"
)

type PurchaseRepository struct {
	DB *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{DB: db}
}

func (r *PurchaseRepository) FindByUserAndTest(userID, testID uint) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.DB.Where("user_id = ? AND test_id = ?", userID, testID).First(&purchase).Error
	return &purchase, err
}

func (r *PurchaseRepository) FindPaid(userID, testID uint) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.DB.Where("user_id = ? AND test_id = ? AND status = ?", userID, testID, model.PaymentPaid).
		First(&purchase).Error
	return &purchase, err
}

func (r *PurchaseRepository) FindPendingByOrder(userID, testID uint, orderID string) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.DB.Where("user_id = ? AND test_id = ? AND order_id = ? AND status = ?",
		userID, testID, orderID, model.PaymentPending).First(&purchase).Error
	return &purchase, err
}

func (r *PurchaseRepository) FindByUser(userID uint) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.DB.Preload("Test").Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").Find(&purchases).Error
	return purchases, err
}

func (r *PurchaseRepository) Create(purchase *model.Purchase) error {
	return r.DB.Create(purchase).Error
}

func (r *PurchaseRepository) Update(purchase *model.Purchase) error {
	return r.DB.Save(purchase).Error
}

// MarkPaid flips the pending row to paid, recording the provider identifiers.
// The paid status is terminal.
func (r *PurchaseRepository) MarkPaid(id uint, paymentID, signature string) error {
	return r.DB.Model(&model.Purchase{}).
		Where("id = ? AND status = ?", id, model.PaymentPending).
		Updates(map[string]interface{}{
			"status":     model.PaymentPaid,
			"payment_id": paymentID,
			"signature":  signature,
		}).Error
}

func (r *PurchaseRepository) MarkConfirmationSent(id uint) error {
	return r.DB.Model(&model.Purchase{}).
		Where("id = ?", id).
		Update("confirmation_email_sent", true).Error
}
