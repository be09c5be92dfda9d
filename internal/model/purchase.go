package model

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Purchase links a user to a paid test. One row per (user, test): the row is
// created pending when an order is opened, overwritten on re-order while
// still pending, and becomes immutable once paid.
// swagger:model Purchase
type Purchase struct {
	BaseModel
	UserID uint `gorm:"uniqueIndex:idx_user_test;not null" json:"userId"`
	TestID uint `gorm:"uniqueIndex:idx_user_test;not null" json:"testId"`
	Test   Test `gorm:"foreignKey:TestID" json:"test,omitempty"`

	AmountPaid float64       `gorm:"not null" json:"amountPaid"`
	OrderID    string        `gorm:"size:64;index" json:"orderId"`
	PaymentID  string        `gorm:"size:64" json:"paymentId"`
	Signature  string        `gorm:"size:128" json:"-"`
	Status     PaymentStatus `gorm:"size:10;default:'pending';not null" json:"status"`

	// Buyer details captured at checkout for the receipt mail.
	BuyerName  string `gorm:"size:100" json:"buyerName,omitempty"`
	BuyerEmail string `gorm:"size:100" json:"buyerEmail,omitempty"`
	BuyerPhone string `gorm:"size:20" json:"buyerPhone,omitempty"`

	ConfirmationEmailSent bool `gorm:"default:false" json:"confirmationEmailSent"`
}

func (Purchase) TableName() string {
	return "purchases"
}
