package service

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"testhub_backend/internal/model"
	"testhub_backend/internal/repository"
	"testhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var otpPattern = regexp.MustCompile(`\d{6}`)

func newAuthService(t *testing.T) (*AuthService, *fakeMailer, *repository.UserRepository) {
	t.Helper()

	db := setupDB(t)
	userRepo := repository.NewUserRepository(db)
	mailer := &fakeMailer{}
	svc := NewAuthService(userRepo, mailer, testConfig())
	return svc, mailer, userRepo
}

func sentOTP(t *testing.T, mailer *fakeMailer) string {
	t.Helper()

	require.NotZero(t, mailer.count(), "expected an OTP mail")
	otp := otpPattern.FindString(mailer.last().Text)
	require.Len(t, otp, 6)
	return otp
}

func TestRegisterAndVerifyFlow(t *testing.T) {
	svc, mailer, userRepo := newAuthService(t)

	user, err := svc.Register("Alice", "Alice@Real.com ", "s3cretpass")
	require.NoError(t, err)

	assert.Equal(t, "alice@real.com", user.Email)
	assert.False(t, user.IsVerified)
	assert.Equal(t, model.Student, user.Role)
	assert.Equal(t, 1, mailer.count())

	otp := sentOTP(t, mailer)

	verified, err := svc.VerifyOTP("alice@real.com", otp)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	stored, err := userRepo.FindByEmail("alice@real.com")
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)
	assert.Empty(t, stored.OTP)
	assert.Nil(t, stored.OTPExpires)

	// The verified transition is one-way.
	_, err = svc.VerifyOTP("alice@real.com", otp)
	assert.ErrorIs(t, err, util.ErrAlreadyVerified)
}

func TestRegisterStoresOnlyOTPHash(t *testing.T) {
	svc, mailer, userRepo := newAuthService(t)

	_, err := svc.Register("Alice", "alice@real.com", "s3cretpass")
	require.NoError(t, err)

	otp := sentOTP(t, mailer)
	stored, err := userRepo.FindByEmail("alice@real.com")
	require.NoError(t, err)

	assert.NotEqual(t, otp, stored.OTP)
	assert.Len(t, stored.OTP, 64)
}

func TestRegisterDisposableEmail(t *testing.T) {
	svc, mailer, userRepo := newAuthService(t)

	_, err := svc.Register("Bot", "x@mailinator.com", "s3cretpass")
	assert.ErrorIs(t, err, util.ErrDisposableEmail)

	// Rejected before any account or code exists.
	assert.Zero(t, mailer.count())
	_, err = userRepo.FindByEmail("x@mailinator.com")
	assert.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Register("Alice", "alice@real.com", "s3cretpass")
	require.NoError(t, err)

	_, err = svc.Register("Mallory", "alice@real.com", "otherpass1")
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	svc, mailer, _ := newAuthService(t)

	_, err := svc.Register("Alice", "alice@real.com", "s3cretpass")
	require.NoError(t, err)
	otp := sentOTP(t, mailer)

	wrong := "000000"
	if wrong == otp {
		wrong = "000001"
	}

	var invalidOTP *util.InvalidOTPError
	_, err = svc.VerifyOTP("alice@real.com", wrong)
	require.ErrorAs(t, err, &invalidOTP)
	assert.Equal(t, 4, invalidOTP.AttemptsLeft)

	_, err = svc.VerifyOTP("alice@real.com", wrong)
	require.ErrorAs(t, err, &invalidOTP)
	assert.Equal(t, 3, invalidOTP.AttemptsLeft)
}

func TestVerifyOTPAttemptLockout(t *testing.T) {
	svc, mailer, _ := newAuthService(t)

	_, err := svc.Register("Alice", "alice@real.com", "s3cretpass")
	require.NoError(t, err)
	otp := sentOTP(t, mailer)

	wrong := "000000"
	if wrong == otp {
		wrong = "000001"
	}

	for i := 0; i < otpMaxAttempts; i++ {
		_, err := svc.VerifyOTP("alice@real.com", wrong)
		require.Error(t, err)
	}

	// Saturated counter refuses even the correct code until a reissue.
	_, err = svc.VerifyOTP("alice@real.com", otp)
	assert.ErrorIs(t, err, util.ErrTooManyAttempts)

	svc.now = func() time.Time { return time.Now().Add(61 * time.Second) }
	require.NoError(t, svc.ResendOTP("alice@real.com"))

	fresh := sentOTP(t, mailer)
	_, err = svc.VerifyOTP("alice@real.com", fresh)
	assert.NoError(t, err)
}

func TestVerifyOTPExpired(t *testing.T) {
	svc, mailer, _ := newAuthService(t)

	_, err := svc.Register("Alice", "alice@real.com", "s3cretpass")
	require.NoError(t, err)
	otp := sentOTP(t, mailer)

	svc.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	_, err = svc.VerifyOTP("alice@real.com", otp)
	assert.ErrorIs(t, err, util.ErrOTPExpired)
}

func TestVerifyOTPUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.VerifyOTP("nobody@real.com", "123456")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestResendOTPCooldown(t *testing.T) {
	svc, mailer, _ := newAuthService(t)

	_, err := svc.Register("Alice", "alice@real.com", "s3cretpass")
	require.NoError(t, err)

	var rateLimited *util.RateLimitedError
	err = svc.ResendOTP("alice@real.com")
	require.ErrorAs(t, err, &rateLimited)
	assert.Greater(t, rateLimited.RetryAfterSeconds, 0)
	assert.LessOrEqual(t, rateLimited.RetryAfterSeconds, 60)

	// At or past the cooldown boundary a reissue goes through.
	svc.now = func() time.Time { return time.Now().Add(60 * time.Second) }
	require.NoError(t, svc.ResendOTP("alice@real.com"))
	assert.Equal(t, 2, mailer.count())
}

func TestResendOTPAlreadyVerified(t *testing.T) {
	svc, mailer, _ := newAuthService(t)

	_, err := svc.Register("Alice", "alice@real.com", "s3cretpass")
	require.NoError(t, err)
	otp := sentOTP(t, mailer)

	_, err = svc.VerifyOTP("alice@real.com", otp)
	require.NoError(t, err)

	err = svc.ResendOTP("alice@real.com")
	assert.ErrorIs(t, err, util.ErrAlreadyVerified)
}

func TestLogin(t *testing.T) {
	svc, mailer, _ := newAuthService(t)

	_, err := svc.Register("Alice", "alice@real.com", "s3cretpass")
	require.NoError(t, err)

	// Unverified accounts cannot log in even with the right password.
	_, _, err = svc.Login("alice@real.com", "s3cretpass")
	assert.ErrorIs(t, err, util.ErrNotVerified)

	otp := sentOTP(t, mailer)
	_, err = svc.VerifyOTP("alice@real.com", otp)
	require.NoError(t, err)

	_, _, err = svc.Login("alice@real.com", "wrongpass1")
	assert.ErrorIs(t, err, util.ErrInvalidCreds)

	user, token, err := svc.Login("alice@real.com", "s3cretpass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice@real.com", user.Email)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, _, err := svc.Login("ghost@real.com", "whatever1")
	assert.ErrorIs(t, err, util.ErrInvalidCreds)
}

func TestAdminLoginSkipsVerification(t *testing.T) {
	db := setupDB(t)
	userRepo := repository.NewUserRepository(db)
	svc := NewAuthService(userRepo, &fakeMailer{}, testConfig())

	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(&model.User{
		Name:     "Admin",
		Email:    "admin@real.com",
		Password: string(hash),
		Role:     model.Admin,
	}))

	_, token, err := svc.Login("admin@real.com", "adminpass1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestRegisterFailsWhenOTPMailFails(t *testing.T) {
	db := setupDB(t)
	userRepo := repository.NewUserRepository(db)
	mailer := &fakeMailer{fail: true}
	svc := NewAuthService(userRepo, mailer, testConfig())

	_, err := svc.Register("Alice", "alice@real.com", "s3cretpass")
	require.Error(t, err)
	assert.False(t, errors.Is(err, util.ErrEmailRegistered))
}
