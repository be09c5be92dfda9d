package controller

import (
	"errors"
	"net/http"

	"testhub_backend/internal/config"
	"testhub_backend/internal/middleware"
	"testhub_backend/internal/model"
	"testhub_backend/internal/service"
	"testhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService    *service.AuthService
	SessionService *service.SessionService
	Cfg            *config.Config
}

func NewAuthController(authService *service.AuthService, sessionService *service.SessionService, cfg *config.Config) *AuthController {
	return &AuthController{
		AuthService:    authService,
		SessionService: sessionService,
		Cfg:            cfg,
	}
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register godoc
// @Summary Register a new account
// @Description Creates an unverified account and emails a one-time code
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "registration details"
// @Success 201 {object} util.Response{data=object} "created"
// @Failure 400 {object} util.Response "invalid input or disposable email"
// @Failure 409 {object} util.Response "email already registered"
// @Failure 500 {object} util.Response "internal error"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrDisposableEmail):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrEmailRegistered):
			util.Error(ctx, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{
		"id":      user.ID,
		"email":   user.Email,
		"message": "verification code sent to your email",
	})
}

// swagger:model VerifyOTPRequest
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

// VerifyOTP godoc
// @Summary Verify the emailed one-time code
// @Description Flips the account to verified and issues a session on success
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body VerifyOTPRequest true "email and code"
// @Success 200 {object} util.Response{data=object} "verified, session issued"
// @Failure 400 {object} util.Response "wrong, expired or absent code"
// @Failure 404 {object} util.Response "unknown email"
// @Failure 429 {object} util.Response "attempt limit reached"
// @Router /api/auth/verify-otp [post]
func (c *AuthController) VerifyOTP(ctx *gin.Context) {
	var req VerifyOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.VerifyOTP(req.Email, req.OTP)
	if err != nil {
		var invalidOTP *util.InvalidOTPError
		switch {
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrAlreadyVerified),
			errors.Is(err, util.ErrNoPendingOTP),
			errors.Is(err, util.ErrOTPExpired):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrTooManyAttempts):
			util.TooManyRequests(ctx, err.Error())
		case errors.As(err, &invalidOTP):
			util.ErrorData(ctx, http.StatusBadRequest, err.Error(), gin.H{
				"attemptsLeft": invalidOTP.AttemptsLeft,
			})
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	token, err := c.issueSession(ctx, user)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"message": "account verified",
		"token":   token,
		"user":    userView(user),
	})
}

// swagger:model ResendOTPRequest
type ResendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResendOTP godoc
// @Summary Resend the verification code
// @Description Issues a fresh code, subject to a 60 second cooldown
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body ResendOTPRequest true "account email"
// @Success 200 {object} util.Response "code sent"
// @Failure 400 {object} util.Response "already verified"
// @Failure 404 {object} util.Response "unknown email"
// @Failure 429 {object} util.Response{data=object} "cooldown active"
// @Router /api/auth/resend-otp [post]
func (c *AuthController) ResendOTP(ctx *gin.Context) {
	var req ResendOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AuthService.ResendOTP(req.Email); err != nil {
		var rateLimited *util.RateLimitedError
		switch {
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrAlreadyVerified):
			util.BadRequest(ctx, err.Error())
		case errors.As(err, &rateLimited):
			util.ErrorData(ctx, http.StatusTooManyRequests, err.Error(), gin.H{
				"retryAfter": rateLimited.RetryAfterSeconds,
			})
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "verification code sent"})
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Log in
// @Description Authenticates a verified account, returns a token and sets the session cookie
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "credentials"
// @Success 200 {object} util.Response{data=object} "token and profile"
// @Failure 401 {object} util.Response "bad credentials"
// @Failure 403 {object} util.Response{data=object} "account not verified"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, token, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidCreds):
			util.Error(ctx, http.StatusUnauthorized, err.Error())
		case errors.Is(err, util.ErrNotVerified):
			util.ErrorData(ctx, http.StatusForbidden, err.Error(), gin.H{
				"requiresVerification": true,
				"email":                service.NormalizeEmail(req.Email),
			})
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	if _, err := c.issueSessionWithToken(ctx, user); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user":  userView(user),
	})
}

// Logout godoc
// @Summary Log out
// @Description Destroys the server-side session and clears the cookie
// @Tags auth
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "logged out"
// @Router /api/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if sessionID := ctx.GetString("sessionID"); sessionID != "" {
		if err := c.SessionService.Destroy(ctx.Request.Context(), sessionID); err != nil {
			util.LogInternalError(ctx, err)
			return
		}
	}

	c.clearSessionCookie(ctx)
	util.Success(ctx, gin.H{"message": "logged out"})
}

func (c *AuthController) issueSession(ctx *gin.Context, user *model.User) (string, error) {
	token, err := util.GenerateJWT(user, c.Cfg.JWT.Secret, c.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", err
	}
	if _, err := c.issueSessionWithToken(ctx, user); err != nil {
		return "", err
	}
	return token, nil
}

func (c *AuthController) issueSessionWithToken(ctx *gin.Context, user *model.User) (*service.Session, error) {
	sess, err := c.SessionService.Create(ctx.Request.Context(), user)
	if err != nil {
		return nil, err
	}

	isRelease := c.Cfg.Server.Mode == "release"
	ctx.SetCookie(middleware.SessionCookieName, sess.ID,
		int(c.SessionService.TTL.Seconds()), "/", "", isRelease, true)
	return sess, nil
}

func (c *AuthController) clearSessionCookie(ctx *gin.Context) {
	isRelease := c.Cfg.Server.Mode == "release"
	ctx.SetCookie(middleware.SessionCookieName, "", -1, "/", "", isRelease, true)
}

func userView(user *model.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"role":       user.Role,
		"isVerified": user.IsVerified,
	}
}
