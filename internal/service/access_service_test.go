package service

import (
	"testing"

	"testhub_backend/internal/model"
	"testhub_backend/internal/repository"
	"testhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAccessService(db *gorm.DB) *AccessService {
	return NewAccessService(
		repository.NewTestRepository(db),
		repository.NewPurchaseRepository(db),
	)
}

func TestAccessFreeTest(t *testing.T) {
	db := setupDB(t)
	svc := newAccessService(db)
	test := createTestRecord(t, db, model.TestFree, 0)
	user := createUser(t, db, "student@real.com", model.Student, true)

	granted, err := svc.CheckAccess(user.ID, false, test.ID)
	require.NoError(t, err)
	assert.Equal(t, test.ID, granted.ID)
}

func TestAccessPaidTestWithoutPurchase(t *testing.T) {
	db := setupDB(t)
	svc := newAccessService(db)
	test := createTestRecord(t, db, model.TestPaid, 499)
	user := createUser(t, db, "student@real.com", model.Student, true)

	_, err := svc.CheckAccess(user.ID, false, test.ID)
	assert.ErrorIs(t, err, util.ErrPurchaseRequired)
}

func TestAccessPaidTestPendingPurchaseDenied(t *testing.T) {
	db := setupDB(t)
	svc := newAccessService(db)
	test := createTestRecord(t, db, model.TestPaid, 499)
	user := createUser(t, db, "student@real.com", model.Student, true)

	require.NoError(t, repository.NewPurchaseRepository(db).Create(&model.Purchase{
		UserID:     user.ID,
		TestID:     test.ID,
		AmountPaid: 499,
		OrderID:    "order_1",
		Status:     model.PaymentPending,
	}))

	_, err := svc.CheckAccess(user.ID, false, test.ID)
	assert.ErrorIs(t, err, util.ErrPurchaseRequired)
}

func TestAccessPaidTestWithPaidPurchase(t *testing.T) {
	db := setupDB(t)
	svc := newAccessService(db)
	test := createTestRecord(t, db, model.TestPaid, 499)
	user := createUser(t, db, "student@real.com", model.Student, true)

	require.NoError(t, repository.NewPurchaseRepository(db).Create(&model.Purchase{
		UserID:     user.ID,
		TestID:     test.ID,
		AmountPaid: 499,
		OrderID:    "order_1",
		PaymentID:  "pay_1",
		Status:     model.PaymentPaid,
	}))

	granted, err := svc.CheckAccess(user.ID, false, test.ID)
	require.NoError(t, err)
	assert.Equal(t, test.ID, granted.ID)
}

func TestAccessAdminOverride(t *testing.T) {
	db := setupDB(t)
	svc := newAccessService(db)
	test := createTestRecord(t, db, model.TestPaid, 499)
	admin := createUser(t, db, "admin@real.com", model.Admin, true)

	granted, err := svc.CheckAccess(admin.ID, true, test.ID)
	require.NoError(t, err)
	assert.Equal(t, test.ID, granted.ID)
}

func TestAccessUnknownTest(t *testing.T) {
	db := setupDB(t)
	svc := newAccessService(db)
	user := createUser(t, db, "student@real.com", model.Student, true)

	_, err := svc.CheckAccess(user.ID, false, 777)
	assert.ErrorIs(t, err, util.ErrTestNotFound)
}

func TestHasAccess(t *testing.T) {
	db := setupDB(t)
	svc := newAccessService(db)
	paid := createTestRecord(t, db, model.TestPaid, 499)
	free := createTestRecord(t, db, model.TestFree, 0)
	user := createUser(t, db, "student@real.com", model.Student, true)

	has, err := svc.HasAccess(user.ID, false, free.ID)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = svc.HasAccess(user.ID, false, paid.ID)
	require.NoError(t, err)
	assert.False(t, has)

	// Missing tests stay an error, not a false.
	_, err = svc.HasAccess(user.ID, false, 777)
	assert.ErrorIs(t, err, util.ErrTestNotFound)
}
