package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"testhub_backend/internal/config"
	"testhub_backend/internal/model"
	"testhub_backend/internal/repository"
	"testhub_backend/internal/util"
	"testhub_backend/pkg/logger"
	"testhub_backend/pkg/monitoring"
	"testhub_backend/pkg/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuyerInfo is captured at checkout and lands on the purchase row for the
// receipt.
type BuyerInfo struct {
	Name  string
	Email string
	Phone string
}

// CheckoutOrder is what the client needs to open the payment widget.
type CheckoutOrder struct {
	OrderID     string  `json:"orderId"`
	AmountMinor int64   `json:"amount"`
	Currency    string  `json:"currency"`
	KeyID       string  `json:"keyId"`
	TestID      uint    `json:"testId"`
	TestTitle   string  `json:"testTitle"`
	Price       float64 `json:"price"`
}

type PaymentService struct {
	TestRepo     *repository.TestRepository
	PurchaseRepo *repository.PurchaseRepository
	UserRepo     *repository.UserRepository
	Gateway      payment.Gateway
	Mailer       Mailer
	Cfg          *config.Config
}

func NewPaymentService(
	testRepo *repository.TestRepository,
	purchaseRepo *repository.PurchaseRepository,
	userRepo *repository.UserRepository,
	gateway payment.Gateway,
	mailer Mailer,
	cfg *config.Config,
) *PaymentService {
	return &PaymentService{
		TestRepo:     testRepo,
		PurchaseRepo: purchaseRepo,
		UserRepo:     userRepo,
		Gateway:      gateway,
		Mailer:       mailer,
		Cfg:          cfg,
	}
}

// CreateOrder opens a provider order for a paid test and upserts the single
// pending purchase row for (user, test). Callers that already hold access get
// ErrAlreadyGranted and no charge is created.
func (s *PaymentService) CreateOrder(ctx context.Context, userID uint, isAdmin bool, testID uint, buyer BuyerInfo) (*CheckoutOrder, error) {
	test, err := s.TestRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}

	if !test.IsPaid() {
		return nil, util.ErrTestNotPaid
	}

	if isAdmin {
		return nil, util.ErrAlreadyGranted
	}

	existing, err := s.PurchaseRepo.FindByUserAndTest(userID, testID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil && existing.Status == model.PaymentPaid {
		return nil, util.ErrAlreadyGranted
	}

	if s.Gateway == nil {
		return nil, &util.GatewayError{Message: "payment gateway is not configured"}
	}

	amountMinor := int64(math.Round(test.PriceValue() * 100))
	receipt := "rcpt_" + uuid.New().String()[:18]
	order, err := s.Gateway.CreateOrder(ctx, amountMinor, s.Cfg.Razorpay.Currency, receipt, map[string]string{
		"test_id": fmt.Sprintf("%d", testID),
		"user_id": fmt.Sprintf("%d", userID),
	})
	if err != nil {
		return nil, &util.GatewayError{Message: err.Error(), Err: err}
	}

	// Re-ordering before completion overwrites the same pending row; the
	// unique (user, test) index makes a second row impossible.
	if existing != nil && existing.ID != 0 {
		existing.AmountPaid = test.PriceValue()
		existing.OrderID = order.ID
		existing.PaymentID = ""
		existing.Signature = ""
		existing.Status = model.PaymentPending
		existing.BuyerName = buyer.Name
		existing.BuyerEmail = buyer.Email
		existing.BuyerPhone = buyer.Phone
		if err := s.PurchaseRepo.Update(existing); err != nil {
			return nil, err
		}
	} else {
		purchase := &model.Purchase{
			UserID:     userID,
			TestID:     testID,
			AmountPaid: test.PriceValue(),
			OrderID:    order.ID,
			Status:     model.PaymentPending,
			BuyerName:  buyer.Name,
			BuyerEmail: buyer.Email,
			BuyerPhone: buyer.Phone,
		}
		if err := s.PurchaseRepo.Create(purchase); err != nil {
			return nil, err
		}
	}

	return &CheckoutOrder{
		OrderID:     order.ID,
		AmountMinor: amountMinor,
		Currency:    s.Cfg.Razorpay.Currency,
		KeyID:       s.Cfg.Razorpay.KeyID,
		TestID:      testID,
		TestTitle:   test.Title,
		Price:       test.PriceValue(),
	}, nil
}

// VerifyPayment is the integrity boundary: the provider signature must match
// the recomputed HMAC exactly or the purchase stays pending. On success the
// pending row flips to paid and a scoped 30-day PDF link is mailed.
func (s *PaymentService) VerifyPayment(ctx context.Context, userID, testID uint, orderID, paymentID, signature string) (*model.Purchase, error) {
	if !payment.VerifySignature(orderID, paymentID, signature, s.Cfg.Razorpay.KeySecret) {
		monitoring.PaymentVerifications.WithLabelValues("signature_invalid").Inc()
		return nil, util.ErrSignatureInvalid
	}

	purchase, err := s.PurchaseRepo.FindPendingByOrder(userID, testID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			monitoring.PaymentVerifications.WithLabelValues("purchase_missing").Inc()
			return nil, util.ErrPurchaseMissing
		}
		return nil, err
	}

	if err := s.PurchaseRepo.MarkPaid(purchase.ID, paymentID, signature); err != nil {
		return nil, err
	}
	purchase.Status = model.PaymentPaid
	purchase.PaymentID = paymentID
	purchase.Signature = signature

	monitoring.PaymentVerifications.WithLabelValues("paid").Inc()

	s.sendConfirmation(purchase)

	return purchase, nil
}

// sendConfirmation mails the receipt with a direct, time-boxed PDF link.
// Failure is recorded but never rolls back the paid status.
func (s *PaymentService) sendConfirmation(purchase *model.Purchase) {
	test, err := s.TestRepo.FindByID(purchase.TestID)
	if err != nil {
		logger.Log.Warn("purchase confirmation skipped, test lookup failed",
			zap.Uint("testId", purchase.TestID), zap.Error(err))
		return
	}

	user, err := s.UserRepo.FindByID(purchase.UserID)
	if err != nil {
		logger.Log.Warn("purchase confirmation skipped, user lookup failed",
			zap.Uint("userId", purchase.UserID), zap.Error(err))
		return
	}

	token, err := util.GeneratePDFAccessToken(user.ID, test.ID, s.Cfg.JWT.Secret, s.Cfg.JWT.PDFTokenExpire)
	if err != nil {
		logger.Log.Warn("purchase confirmation skipped, token generation failed", zap.Error(err))
		return
	}

	viewURL := fmt.Sprintf("%s/pdf/view/%d?token=%s", s.Cfg.Server.PublicURL, test.ID, token)
	to := purchase.BuyerEmail
	if to == "" {
		to = user.Email
	}

	go func() {
		subject, html, text := PurchaseConfirmationEmail(
			user.Name, test.Title, string(test.Category),
			purchase.AmountPaid, purchase.PaymentID, viewURL,
		)
		if err := s.Mailer.Send(to, subject, html, text); err != nil {
			logger.Log.Warn("purchase confirmation email failed",
				zap.String("email", to), zap.Error(err))
			return
		}
		if err := s.PurchaseRepo.MarkConfirmationSent(purchase.ID); err != nil {
			logger.Log.Warn("failed to record confirmation email flag", zap.Error(err))
		}
	}()
}

// ListPurchases returns the caller's purchase history, newest first.
func (s *PaymentService) ListPurchases(userID uint) ([]model.Purchase, error) {
	return s.PurchaseRepo.FindByUser(userID)
}

// CheckPurchase reports whether the caller holds a confirmed purchase.
func (s *PaymentService) CheckPurchase(userID, testID uint) (*model.Purchase, bool, error) {
	purchase, err := s.PurchaseRepo.FindPaid(userID, testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return purchase, true, nil
}
