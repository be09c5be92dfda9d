package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"testhub_backend/internal/config"
	"testhub_backend/internal/model"
	"testhub_backend/internal/repository"
	"testhub_backend/internal/util"
	"testhub_backend/pkg/logger"
	"testhub_backend/pkg/monitoring"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	otpLifetime       = 10 * time.Minute
	otpResendCooldown = 60 * time.Second
	otpMaxAttempts    = 5
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Mailer   Mailer
	Cfg      *config.Config

	// now is swappable so the OTP clock can be driven in tests.
	now func() time.Time
}

func NewAuthService(userRepo *repository.UserRepository, mailer Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Mailer:   mailer,
		Cfg:      cfg,
		now:      time.Now,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashOTP(otp string) string {
	sum := sha256.Sum256([]byte(otp))
	return hex.EncodeToString(sum[:])
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Register creates an unverified account and issues the first OTP. Disposable
// email domains are rejected before any code is generated.
func (s *AuthService) Register(name, email, password string) (*model.User, error) {
	email = NormalizeEmail(email)

	if IsDisposableEmail(email) {
		return nil, util.ErrDisposableEmail
	}

	_, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     model.Student,
	}

	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	if err := s.issueOTP(user); err != nil {
		return nil, err
	}

	return user, nil
}

// issueOTP generates a fresh code, stores only its hash, resets the attempt
// counter and mails the plaintext.
func (s *AuthService) issueOTP(user *model.User) error {
	otp, err := generateOTP()
	if err != nil {
		return err
	}

	now := s.now()
	expires := now.Add(otpLifetime)
	user.OTP = hashOTP(otp)
	user.OTPExpires = &expires
	user.OTPAttempts = 0
	user.OTPLastResend = &now

	if err := s.UserRepo.Update(user); err != nil {
		return err
	}

	subject, html, text := OTPEmail(user.Name, otp)
	if err := s.Mailer.Send(user.Email, subject, html, text); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	monitoring.OTPIssued.Inc()
	return nil
}

// ResendOTP reissues a code subject to the cooldown. A reissue resets both
// the expiry and the attempt counter.
func (s *AuthService) ResendOTP(email string) error {
	user, err := s.UserRepo.FindByEmail(NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}

	if user.IsVerified {
		return util.ErrAlreadyVerified
	}

	if user.OTPLastResend != nil {
		elapsed := s.now().Sub(*user.OTPLastResend)
		if elapsed < otpResendCooldown {
			return &util.RateLimitedError{
				RetryAfterSeconds: int((otpResendCooldown - elapsed).Seconds()) + 1,
			}
		}
	}

	return s.issueOTP(user)
}

// VerifyOTP checks a candidate code against the stored hash. The verified
// transition is one-way: success wipes all OTP state and re-verification
// reports AlreadyVerified.
func (s *AuthService) VerifyOTP(email, candidate string) (*model.User, error) {
	user, err := s.UserRepo.FindByEmail(NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if user.IsVerified {
		return nil, util.ErrAlreadyVerified
	}

	if user.OTP == "" || user.OTPExpires == nil {
		return nil, util.ErrNoPendingOTP
	}

	if s.now().After(*user.OTPExpires) {
		return nil, util.ErrOTPExpired
	}

	// The counter never resets on failure, so once it saturates even the
	// correct code is refused until a reissue.
	if user.OTPAttempts >= otpMaxAttempts {
		return nil, util.ErrTooManyAttempts
	}

	if hashOTP(candidate) != user.OTP {
		if err := s.UserRepo.IncrementOTPAttempts(user.ID); err != nil {
			return nil, err
		}
		left := otpMaxAttempts - (user.OTPAttempts + 1)
		if left < 0 {
			left = 0
		}
		return nil, &util.InvalidOTPError{AttemptsLeft: left}
	}

	if err := s.UserRepo.ClearOTPState(user.ID); err != nil {
		return nil, err
	}
	user.IsVerified = true
	user.OTP = ""
	user.OTPExpires = nil
	user.OTPAttempts = 0
	user.OTPLastResend = nil

	// Welcome mail is best-effort; its failure never unwinds the
	// verification.
	go func(name, email string) {
		subject, html, text := WelcomeEmail(name, s.Cfg.Server.PublicURL)
		if err := s.Mailer.Send(email, subject, html, text); err != nil {
			logger.Log.Warn("welcome email failed",
				zap.String("email", email),
				zap.Error(err))
		}
	}(user.Name, user.Email)

	return user, nil
}

// Login authenticates a verified account and mints the 7-day credential.
// Unverified non-admin accounts cannot obtain a session.
func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	user, err := s.UserRepo.FindByEmail(NormalizeEmail(email))
	if err != nil {
		return nil, "", util.ErrInvalidCreds
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCreds
	}

	if !user.IsVerified && !user.IsAdmin() {
		return nil, "", util.ErrNotVerified
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
