package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/post"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/internal/shared/pagination"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/logger"
)

// AuthorHandler serves the /authors collection.
type AuthorHandler struct {
	service author.Service
	posts   post.Service
	storage storage.Storage
}

func NewAuthorHandler(service author.Service, posts post.Service, store storage.Storage) *AuthorHandler {
	return &AuthorHandler{
		service: service,
		posts:   posts,
		storage: store,
	}
}

// List - GET /authors?_page=&_limit=
func (h *AuthorHandler) List(c *gin.Context) {
	page := pagination.FromQuery(c.Query("_page"), c.Query("_limit"))

	resp, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// GetByID - GET /authors/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	a, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, a)
}

// Create - POST /authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, a)
}

// Update - PUT /authors/:id
func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	var req author.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, a)
}

// Delete - DELETE /authors/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteAll - DELETE /authors
func (h *AuthorHandler) DeleteAll(c *gin.Context) {
	if err := h.service.DeleteAll(c.Request.Context()); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadAvatar - PATCH /authors/:id/avatar (multipart, field "avatar")
func (h *AuthorHandler) UploadAvatar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	data, contentType, err := readImage(c, "avatar")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	key := fmt.Sprintf("avatars/%s", id)
	url, err := h.storage.Upload(c.Request.Context(), key, data, contentType)
	if err != nil {
		logger.Error("Avatar upload failed", err)
		response.InternalServerError(c, "failed to store avatar")
		return
	}

	if err := h.service.SetAvatar(c.Request.Context(), id, url); err != nil {
		h.handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"avatar": url})
}

// ListPosts - GET /authors/:id/blogPosts?_page=&_limit=
func (h *AuthorHandler) ListPosts(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	// A missing author answers 404, not an empty page.
	if _, err := h.service.Get(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	page := pagination.FromQuery(c.Query("_page"), c.Query("_limit"))
	resp, err := h.posts.ListByAuthor(c.Request.Context(), id, page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

func (h *AuthorHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, author.ErrAuthorNotFound):
		response.NotFound(c, "author not found")
	case errors.Is(err, author.ErrEmailAlreadyExists):
		response.Conflict(c, "email already registered")
	default:
		logger.Error("Unhandled author error", err)
		response.InternalServerError(c, "internal server error")
	}
}
