package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/infrastructure/oauth"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/logger"
)

const (
	oauthStateCookie = "oauth_state"
	maxImageSize     = 5 << 20 // 5 MiB
)

// AuthHandler serves registration, login and the caller's own profile.
type AuthHandler struct {
	service     author.Service
	storage     storage.Storage
	oauth       oauth.Provider
	frontendURL string
}

func NewAuthHandler(service author.Service, store storage.Storage, provider oauth.Provider, frontendURL string) *AuthHandler {
	return &AuthHandler{
		service:     service,
		storage:     store,
		oauth:       provider,
		frontendURL: frontendURL,
	}
}

// Register - POST /register (multipart form, optional avatar file)
func (h *AuthHandler) Register(c *gin.Context) {
	var req author.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// Upload before the insert so a storage failure doesn't leave an
	// account without its chosen avatar.
	if fileHeader, err := c.FormFile("avatar"); err == nil {
		data, contentType, err := readImage(c, "avatar")
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		key := fmt.Sprintf("avatars/%s-%s", uuid.NewString(), fileHeader.Filename)
		url, err := h.storage.Upload(c.Request.Context(), key, data, contentType)
		if err != nil {
			logger.Error("Avatar upload failed", err)
			response.InternalServerError(c, "failed to store avatar")
			return
		}
		req.Avatar = url
	}

	if err := h.service.Register(c.Request.Context(), req); err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{
		"message":   "author registered",
		"emailSent": true,
	})
}

// Login - POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req author.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, author.LoginResponse{Token: token})
}

// Me - GET /me
func (h *AuthHandler) Me(c *gin.Context) {
	response.JSON(c, http.StatusOK, middleware.GetLoggedAuthor(c))
}

// UpdateMe - PUT /me
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req author.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), middleware.GetLoggedAuthor(c).ID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, updated)
}

// UploadMyAvatar - PATCH /me/avatar
func (h *AuthHandler) UploadMyAvatar(c *gin.Context) {
	logged := middleware.GetLoggedAuthor(c)

	data, contentType, err := readImage(c, "avatar")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	key := fmt.Sprintf("avatars/%s", logged.ID)
	url, err := h.storage.Upload(c.Request.Context(), key, data, contentType)
	if err != nil {
		logger.Error("Avatar upload failed", err)
		response.InternalServerError(c, "failed to store avatar")
		return
	}

	if err := h.service.SetAvatar(c.Request.Context(), logged.ID, url); err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"avatar": url})
}

// DeleteMe - DELETE /me
func (h *AuthHandler) DeleteMe(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.GetLoggedAuthor(c).ID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GoogleLogin - GET /auth/google
// Sends the browser to the consent page; the random state round-trips in a
// short-lived cookie.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL(state))
}

// GoogleCallback - GET /auth/callback-google
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	expected, err := c.Cookie(oauthStateCookie)
	if err != nil || expected == "" || c.Query("state") != expected {
		response.BadRequest(c, "invalid oauth state")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	profile, err := h.oauth.FetchProfile(c.Request.Context(), c.Query("code"))
	if err != nil {
		logger.Error("Google code exchange failed", err)
		response.Unauthorized(c, "authentication failed")
		return
	}

	token, err := h.service.LoginWithGoogle(c.Request.Context(), profile.ID, profile.Email, profile.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("%s/auth/callback?token=%s", h.frontendURL, token))
}

func (h *AuthHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, author.ErrEmailAlreadyExists):
		response.Conflict(c, "email already registered")
	case errors.Is(err, author.ErrInvalidCredentials):
		response.Unauthorized(c, "invalid email or password")
	case errors.Is(err, author.ErrAuthorNotFound):
		response.NotFound(c, "author not found")
	case errors.Is(err, author.ErrEmailDeliveryFailed):
		response.InternalServerError(c, "failed to send notification email")
	default:
		logger.Error("Unhandled auth error", err)
		response.InternalServerError(c, "internal server error")
	}
}

// readImage pulls a bounded image file out of the multipart form.
func readImage(c *gin.Context, field string) ([]byte, string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("%s file is required", field)
	}
	if fileHeader.Size > maxImageSize {
		return nil, "", fmt.Errorf("%s exceeds the 5MB limit", field)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s file", field)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s file", field)
	}
	if len(data) > maxImageSize {
		return nil, "", fmt.Errorf("%s exceeds the 5MB limit", field)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}
