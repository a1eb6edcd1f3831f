package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	authorID := uuid.New()

	token, err := m.Issue(authorID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, authorID, got)
}

func TestVerifyExpiredToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	m.ttl = -2 * time.Second // issue a token already past its expiry

	token, err := m.Issue(uuid.New())
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyMalformedToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := m.Verify(tok)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", tok)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewManager("secret-one", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewManager("secret-two", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyRejectsUnexpectedSigningMethod(t *testing.T) {
	// A token signed with "none" must be treated as malformed.
	unsigned := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{
		AuthorID: uuid.New().String(),
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewManager("test-secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyRejectsBadAuthorID(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	signed := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{
		AuthorID: "not-a-uuid",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := signed.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
