package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-blog/internal/model"
	"github.com/iliyamo/social-blog/internal/policy"
	"github.com/iliyamo/social-blog/internal/repository"
)

// CommentStore is the comment persistence contract consumed by
// CommentHandler.
type CommentStore interface {
	Create(ctx context.Context, cm *model.Comment) error
	GetByID(ctx context.Context, id uint64) (model.Comment, error)
	ListByPost(ctx context.Context, postID uint64) ([]model.Comment, error)
	Delete(ctx context.Context, id uint64) error
}

// CommentHandler bundles dependencies for the comment endpoints.
type CommentHandler struct {
	Comments CommentStore
}

func NewCommentHandler(comments CommentStore) *CommentHandler {
	if comments == nil {
		panic("nil store passed to NewCommentHandler")
	}
	return &CommentHandler{Comments: comments}
}

type createCommentReq struct {
	CommentText string `json:"commentText"`
	PostID      uint64 `json:"postId"`
}

// ListByPost returns all comments of a post. Public.
func (h *CommentHandler) ListByPost(c echo.Context) error {
	postID, ok := pathID(c, "postId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid post id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	comments, err := h.Comments.ListByPost(ctx, postID)
	if err != nil {
		log.Printf("list comments: query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch comments"})
	}
	return c.JSON(http.StatusOK, comments)
}

// Create stores a comment authored by the caller. Protected. The
// comment's username is always the identity's, never a body field.
func (h *CommentHandler) Create(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.CommentText = strings.TrimSpace(req.CommentText)
	if req.CommentText == "" || req.PostID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "comment text and post id are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cm := model.Comment{
		CommentText: req.CommentText,
		PostID:      req.PostID,
		Username:    id.Username,
		OwnerID:     id.ID,
	}
	if err := h.Comments.Create(ctx, &cm); err != nil {
		log.Printf("create comment: insert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create comment"})
	}
	return c.JSON(http.StatusOK, cm)
}

// Delete removes a comment the caller authored. Protected. Comments
// are authorized by username, not owner id — see the policy package.
// Existence is checked first: 404 for a missing comment, 403 for
// someone else's.
func (h *CommentHandler) Delete(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid comment id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cm, err := h.Comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "comment not found"})
		}
		log.Printf("delete comment: query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !policy.CanMutateComment(id, cm) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized to delete this comment"})
	}
	if err := h.Comments.Delete(ctx, commentID); err != nil {
		log.Printf("delete comment: delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete comment"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "comment deleted successfully"})
}
