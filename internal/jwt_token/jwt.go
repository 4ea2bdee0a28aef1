package jwttoken

import (
	"errors"
	"time"

	dErrors "exptrack/pkg/domain-errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultValidity is how long an issued token stays valid.
const DefaultValidity = 30 * 24 * time.Hour

// Claims carries the full identity payload so verification never needs a
// secondary lookup to reconstruct the subject.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Service handles token creation and validation. Validation is pure and
// performs no I/O.
type Service struct {
	signingKey []byte
	issuer     string
	validity   time.Duration
}

func NewService(signingKey string, issuer string, validity time.Duration) *Service {
	if validity == 0 {
		validity = DefaultValidity
	}
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		validity:   validity,
	}
}

// IssueToken signs a token embedding the given identity, expiring after the
// configured validity window.
func (s *Service) IssueToken(userID uuid.UUID, email string) (string, error) {
	now := time.Now()
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.New(dErrors.CodeInternal, "failed to sign token")
	}
	return signedToken, nil
}

// ValidateToken parses and verifies a token string, returning its claims.
// Expired, malformed, and badly signed tokens all fail with an unauthorized
// domain error.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	return claims, nil
}

// ExtractUserID validates the token and parses its user id claim.
func (s *Service) ExtractUserID(tokenString string) (uuid.UUID, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, err
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return userID, nil
}
