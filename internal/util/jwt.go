package util

import (
	"errors"
	"time"

	"testhub_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const PDFAccessTokenType = "pdf_access"

type Claims struct {
	UserID uint           `json:"user_id"`
	Role   model.UserRole `json:"role"`
	Email  string         `json:"email"`
	// Legacy admin marker kept for tokens minted before roles existed.
	IsAdmin bool `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

// HasAdminRights honours both the role and the legacy boolean flag.
func (c *Claims) HasAdminRights() bool {
	return c.IsAdmin || c.Role == model.Admin
}

// PDFClaims is the scoped, time-boxed credential mailed after a successful
// purchase. It grants access to exactly one test's PDF.
type PDFClaims struct {
	UserID uint   `json:"user_id"`
	TestID uint   `json:"test_id"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

func GenerateJWT(user *model.User, secret string, expiration time.Duration) (string, error) {
	expirationTime := time.Now().Add(expiration)

	claims := &Claims{
		UserID:  user.ID,
		Role:    user.Role,
		Email:   user.Email,
		IsAdmin: user.Role == model.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

func GeneratePDFAccessToken(userID, testID uint, secret string, expiration time.Duration) (string, error) {
	claims := &PDFClaims{
		UserID: userID,
		TestID: testID,
		Type:   PDFAccessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParsePDFAccessToken(tokenString, secret string) (*PDFClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PDFClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*PDFClaims)
	if !ok || !token.Valid || claims.Type != PDFAccessTokenType {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

func GetUserFromContext(c *gin.Context) *Claims {
	user, exists := c.Get("user")
	if !exists {
		return nil
	}
	claims, ok := user.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
