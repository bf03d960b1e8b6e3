package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultResetTokenTTL bounds how long a password-reset link stays usable.
const DefaultResetTokenTTL = 1800 * time.Second

type resetClaims struct {
	jwt.RegisteredClaims
	UserID uint `json:"user_id"`
}

// ResetTokenService issues and verifies stateless password-reset tokens.
// Nothing is stored server-side; the token itself carries the user id and
// expiry under an HMAC signature.
type ResetTokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewResetTokenService(secret string, ttl time.Duration) *ResetTokenService {
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}
	return &ResetTokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token binding userID to an expiry of now + TTL.
func (s *ResetTokenService) Issue(userID uint) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, resetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
	})
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry in one step. Every failure mode, bad
// signature, malformed payload or elapsed expiry, collapses into ok=false
// so callers cannot tell them apart.
func (s *ResetTokenService) Verify(tokenString string) (uint, bool) {
	claims := &resetClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return 0, false
	}
	return claims.UserID, true
}
