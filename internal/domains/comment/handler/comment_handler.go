package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/domains/comment"
	"blog-backend/internal/shared/pagination"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/logger"
)

// CommentHandler serves a post's comments, nested under /blogPosts/:id.
type CommentHandler struct {
	service comment.Service
}

func NewCommentHandler(service comment.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

// ListByPost - GET /blogPosts/:id/comments?_page=&_limit=
func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	page := pagination.FromQuery(c.Query("_page"), c.Query("_limit"))
	resp, err := h.service.ListByPost(c.Request.Context(), postID, page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// GetByID - GET /blogPosts/:id/comments/:commentId
func (h *CommentHandler) GetByID(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	found, err := h.service.Get(c.Request.Context(), commentID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, found)
}

// Create - POST /blogPosts/:id/comments
// The body's postId is overridden by the path parameter.
func (h *CommentHandler) Create(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	var req comment.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	req.PostID = postID.String()
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, created)
}

// Update - PUT /blogPosts/:id/comments/:commentId
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	var req comment.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), commentID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

// Delete - DELETE /blogPosts/:id/comments/:commentId
func (h *CommentHandler) Delete(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), postID, commentID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, comment.ErrCommentNotFound):
		response.NotFound(c, "comment not found")
	case errors.Is(err, comment.ErrPostNotFound):
		response.NotFound(c, "post not found")
	default:
		logger.Error("Unhandled comment error", err)
		response.InternalServerError(c, "internal server error")
	}
}
