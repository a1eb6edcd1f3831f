package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/jwt"
)

const loggedAuthorKey = "loggedAuthor"

// AuthorFinder resolves a verified token's author id to the full record.
// The author repository satisfies it.
type AuthorFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*author.Author, error)
}

// Auth gatekeeps protected routes:
//  1. require an "Authorization: Bearer <token>" header,
//  2. verify the token,
//  3. load the referenced author: a valid token for a deleted account is
//     rejected with its own message, distinct from token invalidity,
//  4. attach the author to the request context.
//
// A token stays valid until its expiry regardless of later account changes;
// there is no revocation list.
func Auth(manager *jwt.Manager, finder AuthorFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if authHeader == "" || len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "missing or invalid authorization header")
			c.Abort()
			return
		}

		authorID, err := manager.Verify(parts[1])
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				response.Unauthorized(c, "token expired")
			case errors.Is(err, jwt.ErrSigningBackend):
				response.InternalServerError(c, "server error")
			default:
				response.Unauthorized(c, "invalid token")
			}
			c.Abort()
			return
		}

		loggedAuthor, err := finder.FindByID(c.Request.Context(), authorID)
		if err != nil {
			if errors.Is(err, author.ErrAuthorNotFound) {
				response.Unauthorized(c, "account no longer exists")
			} else {
				response.InternalServerError(c, "server error")
			}
			c.Abort()
			return
		}

		c.Set(loggedAuthorKey, loggedAuthor)
		c.Next()
	}
}

// GetLoggedAuthor returns the author the gate attached, or nil on an
// unprotected route.
func GetLoggedAuthor(c *gin.Context) *author.Author {
	v, ok := c.Get(loggedAuthorKey)
	if !ok {
		return nil
	}
	a, _ := v.(*author.Author)
	return a
}
