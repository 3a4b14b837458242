package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ventasapi/internal/core/apperror"
	appctx "ventasapi/internal/core/context"
)

// Claims is the JWT payload. The subject carries the username; role and
// branch ride along so the API never needs a user lookup per request.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"rol"`
	Branch string `json:"sucursal"`
	jwt.RegisteredClaims
}

// JWTService issues and validates HS256 access tokens.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService creates a token service with the given signing secret
// and token lifetime.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Generate signs a token for the user.
func (s *JWTService) Generate(user *User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		Branch: user.Branch,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ID:        strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperror.NewInternal(err)
	}
	return signed, nil
}

// Validate parses a token and returns the identity it carries.
func (s *JWTService) Validate(tokenString string) (*appctx.UserContext, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return nil, apperror.NewUnauthorized("invalid or expired token").WithCause(err)
	}
	return &appctx.UserContext{
		UserID:   claims.UserID,
		Username: claims.Subject,
		Role:     claims.Role,
		Branch:   claims.Branch,
	}, nil
}
