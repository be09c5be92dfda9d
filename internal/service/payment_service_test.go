package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"testhub_backend/internal/model"
	"testhub_backend/internal/repository"
	"testhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPaymentService(t *testing.T, db *gorm.DB) (*PaymentService, *fakeGateway, *fakeMailer) {
	t.Helper()

	gateway := &fakeGateway{}
	mailer := &fakeMailer{}
	svc := NewPaymentService(
		repository.NewTestRepository(db),
		repository.NewPurchaseRepository(db),
		repository.NewUserRepository(db),
		gateway,
		mailer,
		testConfig(),
	)
	return svc, gateway, mailer
}

func signOrder(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCreateOrderPaidTest(t *testing.T) {
	db := setupDB(t)
	svc, gateway, _ := newPaymentService(t, db)
	test := createTestRecord(t, db, model.TestPaid, 499)
	user := createUser(t, db, "buyer@real.com", model.Student, true)

	order, err := svc.CreateOrder(context.Background(), user.ID, false, test.ID, BuyerInfo{
		Name:  "Buyer",
		Email: "buyer@real.com",
		Phone: "9999999999",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(49900), order.AmountMinor, "amount must be in minor units")
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, 499.0, order.Price)
	assert.Equal(t, int64(49900), gateway.lastAmount)

	purchase, err := repository.NewPurchaseRepository(db).FindByUserAndTest(user.ID, test.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPending, purchase.Status)
	assert.Equal(t, 499.0, purchase.AmountPaid)
	assert.Equal(t, order.OrderID, purchase.OrderID)
	assert.Equal(t, "Buyer", purchase.BuyerName)
}

func TestCreateOrderFreeTest(t *testing.T) {
	db := setupDB(t)
	svc, _, _ := newPaymentService(t, db)
	test := createTestRecord(t, db, model.TestFree, 0)
	user := createUser(t, db, "buyer@real.com", model.Student, true)

	_, err := svc.CreateOrder(context.Background(), user.ID, false, test.ID, BuyerInfo{})
	assert.ErrorIs(t, err, util.ErrTestNotPaid)
}

func TestCreateOrderUnknownTest(t *testing.T) {
	db := setupDB(t)
	svc, _, _ := newPaymentService(t, db)
	user := createUser(t, db, "buyer@real.com", model.Student, true)

	_, err := svc.CreateOrder(context.Background(), user.ID, false, 12345, BuyerInfo{})
	assert.ErrorIs(t, err, util.ErrTestNotFound)
}

func TestCreateOrderAdminNeverPays(t *testing.T) {
	db := setupDB(t)
	svc, gateway, _ := newPaymentService(t, db)
	test := createTestRecord(t, db, model.TestPaid, 499)
	admin := createUser(t, db, "admin@real.com", model.Admin, true)

	_, err := svc.CreateOrder(context.Background(), admin.ID, true, test.ID, BuyerInfo{})
	assert.ErrorIs(t, err, util.ErrAlreadyGranted)
	assert.Zero(t, gateway.orders, "no provider order for admins")
}

func TestCreateOrderReorderOverwritesPending(t *testing.T) {
	db := setupDB(t)
	svc, _, _ := newPaymentService(t, db)
	test := createTestRecord(t, db, model.TestPaid, 499)
	user := createUser(t, db, "buyer@real.com", model.Student, true)

	first, err := svc.CreateOrder(context.Background(), user.ID, false, test.ID, BuyerInfo{})
	require.NoError(t, err)
	second, err := svc.CreateOrder(context.Background(), user.ID, false, test.ID, BuyerInfo{})
	require.NoError(t, err)
	assert.NotEqual(t, first.OrderID, second.OrderID)

	var count int64
	require.NoError(t, db.Model(&model.Purchase{}).
		Where("user_id = ? AND test_id = ?", user.ID, test.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "re-ordering must reuse the single row")

	purchase, err := repository.NewPurchaseRepository(db).FindByUserAndTest(user.ID, test.ID)
	require.NoError(t, err)
	assert.Equal(t, second.OrderID, purchase.OrderID)
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	db := setupDB(t)
	svc, gateway, _ := newPaymentService(t, db)
	gateway.fail = true
	test := createTestRecord(t, db, model.TestPaid, 499)
	user := createUser(t, db, "buyer@real.com", model.Student, true)

	var gw *util.GatewayError
	_, err := svc.CreateOrder(context.Background(), user.ID, false, test.ID, BuyerInfo{})
	require.ErrorAs(t, err, &gw)
	assert.Contains(t, gw.Error(), "provider unreachable")

	// Provider failure must not leave a pending row behind.
	_, err = repository.NewPurchaseRepository(db).FindByUserAndTest(user.ID, test.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestVerifyPaymentForgedSignature(t *testing.T) {
	db := setupDB(t)
	svc, _, _ := newPaymentService(t, db)
	test := createTestRecord(t, db, model.TestPaid, 499)
	user := createUser(t, db, "buyer@real.com", model.Student, true)

	order, err := svc.CreateOrder(context.Background(), user.ID, false, test.ID, BuyerInfo{})
	require.NoError(t, err)

	_, err = svc.VerifyPayment(context.Background(), user.ID, test.ID,
		order.OrderID, "pay_123", "deadbeef")
	assert.ErrorIs(t, err, util.ErrSignatureInvalid)

	purchase, err := repository.NewPurchaseRepository(db).FindByUserAndTest(user.ID, test.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPending, purchase.Status, "forged signature must not confirm")
	assert.Empty(t, purchase.PaymentID)
}

func TestVerifyPaymentSuccess(t *testing.T) {
	db := setupDB(t)
	svc, _, mailer := newPaymentService(t, db)
	test := createTestRecord(t, db, model.TestPaid, 499)
	user := createUser(t, db, "buyer@real.com", model.Student, true)

	order, err := svc.CreateOrder(context.Background(), user.ID, false, test.ID, BuyerInfo{
		Email: "buyer@real.com",
	})
	require.NoError(t, err)

	signature := signOrder(testConfig().Razorpay.KeySecret, order.OrderID, "pay_123")
	purchase, err := svc.VerifyPayment(context.Background(), user.ID, test.ID,
		order.OrderID, "pay_123", signature)
	require.NoError(t, err)

	assert.Equal(t, model.PaymentPaid, purchase.Status)
	assert.Equal(t, "pay_123", purchase.PaymentID)

	stored, err := repository.NewPurchaseRepository(db).FindPaid(user.ID, test.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, stored.Status)

	assert.Eventually(t, func() bool {
		return mailer.count() == 1
	}, time.Second, 10*time.Millisecond, "confirmation mail should be attempted")
	assert.Contains(t, mailer.last().HTML, "/pdf/view/")
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	db := setupDB(t)
	svc, _, _ := newPaymentService(t, db)
	test := createTestRecord(t, db, model.TestPaid, 499)
	user := createUser(t, db, "buyer@real.com", model.Student, true)

	signature := signOrder(testConfig().Razorpay.KeySecret, "order_unknown", "pay_123")
	_, err := svc.VerifyPayment(context.Background(), user.ID, test.ID,
		"order_unknown", "pay_123", signature)
	assert.ErrorIs(t, err, util.ErrPurchaseMissing)
}

func TestVerifyPaymentMailFailureKeepsPaid(t *testing.T) {
	db := setupDB(t)
	svc, _, mailer := newPaymentService(t, db)
	mailer.fail = true
	test := createTestRecord(t, db, model.TestPaid, 499)
	user := createUser(t, db, "buyer@real.com", model.Student, true)

	order, err := svc.CreateOrder(context.Background(), user.ID, false, test.ID, BuyerInfo{})
	require.NoError(t, err)

	signature := signOrder(testConfig().Razorpay.KeySecret, order.OrderID, "pay_456")
	purchase, err := svc.VerifyPayment(context.Background(), user.ID, test.ID,
		order.OrderID, "pay_456", signature)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, purchase.Status)

	stored, err := repository.NewPurchaseRepository(db).FindPaid(user.ID, test.ID)
	require.NoError(t, err)
	assert.False(t, stored.ConfirmationEmailSent)
}

func TestCheckPurchase(t *testing.T) {
	db := setupDB(t)
	svc, _, _ := newPaymentService(t, db)
	test := createTestRecord(t, db, model.TestPaid, 499)
	user := createUser(t, db, "buyer@real.com", model.Student, true)

	_, has, err := svc.CheckPurchase(user.ID, test.ID)
	require.NoError(t, err)
	assert.False(t, has)

	order, err := svc.CreateOrder(context.Background(), user.ID, false, test.ID, BuyerInfo{})
	require.NoError(t, err)

	// Pending is not enough.
	_, has, err = svc.CheckPurchase(user.ID, test.ID)
	require.NoError(t, err)
	assert.False(t, has)

	signature := signOrder(testConfig().Razorpay.KeySecret, order.OrderID, "pay_789")
	_, err = svc.VerifyPayment(context.Background(), user.ID, test.ID, order.OrderID, "pay_789", signature)
	require.NoError(t, err)

	purchase, has, err := svc.CheckPurchase(user.ID, test.ID)
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, model.PaymentPaid, purchase.Status)
}
