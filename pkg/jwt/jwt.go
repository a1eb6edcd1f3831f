package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token failure kinds. The authorization gate maps each of these to a
// distinct HTTP response, so they must stay separate sentinels.
var (
	ErrTokenMalformed = errors.New("token is malformed or has an invalid signature")
	ErrTokenExpired   = errors.New("token has expired")
	ErrSigningBackend = errors.New("token signing backend unavailable")
)

// DefaultTTL is the session lifetime. There is no refresh mechanism;
// clients re-authenticate after expiry.
const DefaultTTL = time.Hour

// Claims carried by every issued token. The payload is opaque to clients:
// they store the string and send it back as a bearer credential.
type Claims struct {
	AuthorID string `json:"author_id"`
	jwt.RegisteredClaims
}

// Manager handles JWT operations
type Manager struct {
	secret string
	ttl    time.Duration
}

// NewManager creates new JWT manager
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: secret, ttl: ttl}
}

// Issue signs a token carrying the author identifier, expiring ttl from now.
func (m *Manager) Issue(authorID uuid.UUID) (string, error) {
	claims := Claims{
		AuthorID: authorID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", ErrSigningBackend
	}
	return signed, nil
}

// Verify parses and validates a token, returning the author identifier it
// carries. Failures are reported as ErrTokenExpired, ErrTokenMalformed or
// ErrSigningBackend.
func (m *Manager) Verify(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Refuse anything but HMAC; "alg":"none" must not slip through.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenMalformed
		}
		return []byte(m.secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrTokenMalformed
	}

	if !token.Valid {
		return uuid.Nil, ErrTokenMalformed
	}

	authorID, err := uuid.Parse(claims.AuthorID)
	if err != nil {
		return uuid.Nil, ErrTokenMalformed
	}

	return authorID, nil
}
