package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures are reported as one of three distinct kinds so
// callers can log them separately; all map to an unauthorized response.
var (
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenSignature = errors.New("token signature verification failed")
)

const (
	tokenIssuer   = "spendtrack"
	tokenAudience = "spendtrack-api"
)

// Claims represents the JWT claims asserting an authenticated identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// Identity is the verified subject of a token.
type Identity struct {
	UserID int64
	Email  string
}

// TokenService issues and verifies signed identity assertions. The signing
// secret and validity window are process-wide configuration, fixed at
// construction. There is no revocation: a token stays valid until its expiry
// even if the password changes or the account is deleted in the meantime.
type TokenService struct {
	secret []byte
	expiry time.Duration
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret string, expiry time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), expiry: expiry}
}

// Issue creates a signed HS256 token for the given user, valid for the
// configured window from now.
func (s *TokenService) Issue(userID int64, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Email:  email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string, returning the identity it
// asserts. Failures are classified as malformed, expired or bad signature.
func (s *TokenService) Verify(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignature
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience))
	if err != nil {
		return Identity{}, classifyTokenError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrTokenMalformed
	}

	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenSignature
	default:
		// Covers jwt.ErrTokenMalformed and claim mismatches (wrong issuer
		// or audience), which mean the token was not issued by us.
		return ErrTokenMalformed
	}
}
