package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/author"
	"blog-backend/pkg/jwt"
)

type stubFinder struct {
	authors map[uuid.UUID]*author.Author
}

func (f *stubFinder) FindByID(_ context.Context, id uuid.UUID) (*author.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return a, nil
}

func protectedRouter(manager *jwt.Manager, finder AuthorFinder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Auth(manager, finder), func(c *gin.Context) {
		a := GetLoggedAuthor(c)
		c.JSON(http.StatusOK, gin.H{"id": a.ID})
	})
	return r
}

func TestAuthAllowsValidToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", jwt.DefaultTTL)
	id := uuid.New()
	finder := &stubFinder{authors: map[uuid.UUID]*author.Author{
		id: {ID: id, Email: "ada@example.com", Name: "Ada"},
	}}
	token, err := manager.Issue(id)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protectedRouter(manager, finder).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id.String())
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	manager := jwt.NewManager("test-secret", jwt.DefaultTTL)
	finder := &stubFinder{authors: map[uuid.UUID]*author.Author{}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	protectedRouter(manager, finder).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing or invalid authorization header")
}

func TestAuthRejectsNonBearerScheme(t *testing.T) {
	manager := jwt.NewManager("test-secret", jwt.DefaultTTL)
	finder := &stubFinder{authors: map[uuid.UUID]*author.Author{}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	protectedRouter(manager, finder).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsMalformedToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", jwt.DefaultTTL)
	finder := &stubFinder{authors: map[uuid.UUID]*author.Author{}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	protectedRouter(manager, finder).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	id := uuid.New()
	claims := jwt.Claims{
		AuthorID: id.String(),
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-2 * time.Second)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	manager := jwt.NewManager("test-secret", jwt.DefaultTTL)
	finder := &stubFinder{authors: map[uuid.UUID]*author.Author{
		id: {ID: id},
	}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protectedRouter(manager, finder).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token expired")
}

func TestAuthRejectsDeletedAccount(t *testing.T) {
	manager := jwt.NewManager("test-secret", jwt.DefaultTTL)
	finder := &stubFinder{authors: map[uuid.UUID]*author.Author{}}
	token, err := manager.Issue(uuid.New())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protectedRouter(manager, finder).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "account no longer exists")
}
