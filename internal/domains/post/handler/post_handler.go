package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/domains/post"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/pagination"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/logger"
)

const maxImageSize = 5 << 20 // 5 MiB

// PostHandler serves the /blogPosts collection. Reads are public; writes
// run behind the authorization gate and check ownership in the service.
type PostHandler struct {
	service post.Service
	storage storage.Storage
}

func NewPostHandler(service post.Service, store storage.Storage) *PostHandler {
	return &PostHandler{
		service: service,
		storage: store,
	}
}

// List - GET /blogPosts?title=&authorId=&_page=&_limit=
func (h *PostHandler) List(c *gin.Context) {
	req := post.ListPostsRequest{
		Title: c.Query("title"),
		Page:  pagination.FromQuery(c.Query("_page"), c.Query("_limit")),
	}

	if authorIDStr := c.Query("authorId"); authorIDStr != "" {
		authorID, err := uuid.Parse(authorIDStr)
		if err != nil {
			response.BadRequest(c, "invalid authorId filter")
			return
		}
		req.AuthorID = authorID
	}

	resp, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// GetByID - GET /blogPosts/:id
func (h *PostHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// Create - POST /blogPosts
func (h *PostHandler) Create(c *gin.Context) {
	var req post.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, p)
}

// Update - PUT /blogPosts/:id
func (h *PostHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	var req post.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, middleware.GetLoggedAuthor(c).ID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// Delete - DELETE /blogPosts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, middleware.GetLoggedAuthor(c).ID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteAll - DELETE /blogPosts
func (h *PostHandler) DeleteAll(c *gin.Context) {
	if err := h.service.DeleteAll(c.Request.Context()); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadCover - PATCH /blogPosts/:id/cover (multipart, field "cover")
func (h *PostHandler) UploadCover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	data, contentType, err := readImage(c, "cover")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	key := fmt.Sprintf("covers/%s", id)
	url, err := h.storage.Upload(c.Request.Context(), key, data, contentType)
	if err != nil {
		logger.Error("Cover upload failed", err)
		response.InternalServerError(c, "failed to store cover")
		return
	}

	if err := h.service.SetCover(c.Request.Context(), id, middleware.GetLoggedAuthor(c).ID, url); err != nil {
		h.handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"cover": url})
}

func (h *PostHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, post.ErrPostNotFound):
		response.NotFound(c, "post not found")
	case errors.Is(err, post.ErrPostAuthorNotFound):
		response.NotFound(c, "post author not found")
	case errors.Is(err, post.ErrNotOwner):
		response.Forbidden(c, "you do not own this post")
	case errors.Is(err, post.ErrNotificationFailed):
		response.InternalServerError(c, "failed to send notification email")
	default:
		logger.Error("Unhandled post error", err)
		response.InternalServerError(c, "internal server error")
	}
}

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
