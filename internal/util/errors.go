package util

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailRegistered  = errors.New("user already exists")
	ErrInvalidCreds     = errors.New("invalid credentials")
	ErrNotVerified      = errors.New("account not verified")
	ErrAlreadyVerified  = errors.New("account is already verified")
	ErrNoPendingOTP     = errors.New("no pending verification for this account")
	ErrOTPExpired       = errors.New("OTP has expired, please request a new one")
	ErrTooManyAttempts  = errors.New("too many failed attempts, please request a new OTP")
	ErrDisposableEmail  = errors.New("disposable email addresses are not allowed")
	ErrTestNotFound     = errors.New("test not found")
	ErrPurchaseRequired = errors.New("access denied, please purchase this test to view it")
	ErrTestNotPaid      = errors.New("this test is free and doesn't require purchase")
	ErrAlreadyGranted   = errors.New("access already granted, no payment required")
	ErrSignatureInvalid = errors.New("payment signature verification failed")
	ErrPurchaseMissing  = errors.New("no pending purchase found for this order")
	ErrResultNotFound   = errors.New("result not found")
	ErrPermissionDenied = errors.New("permission denied")
)

// RateLimitedError reports how long the caller has to wait before the next
// OTP can be issued.
type RateLimitedError struct {
	RetryAfterSeconds int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("please wait %d seconds before requesting a new OTP", e.RetryAfterSeconds)
}

// InvalidOTPError carries the number of attempts left before lockout.
type InvalidOTPError struct {
	AttemptsLeft int
}

func (e *InvalidOTPError) Error() string {
	return fmt.Sprintf("invalid OTP, %d attempts remaining", e.AttemptsLeft)
}

// GatewayError wraps a payment-provider failure so the upstream message can
// be surfaced to the caller.
type GatewayError struct {
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return "payment gateway error: " + e.Message
	}
	return "payment gateway error: " + e.Err.Error()
}

func (e *GatewayError) Unwrap() error { return e.Err }
