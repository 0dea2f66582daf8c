package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-blog/internal/queue"
)

// LikeHandler bundles dependencies for the like toggle endpoint.
type LikeHandler struct {
	Likes  LikeStore
	Events EventPublisher // nil disables event publishing
}

func NewLikeHandler(likes LikeStore, events EventPublisher) *LikeHandler {
	if likes == nil {
		panic("nil store passed to NewLikeHandler")
	}
	return &LikeHandler{Likes: likes, Events: events}
}

type toggleLikeReq struct {
	PostID uint64 `json:"postId"`
}

// Toggle flips the caller's like on a post and reports the resulting
// state. Protected. The user id comes exclusively from the identity in
// context; a caller can never like on someone else's behalf.
func (h *LikeHandler) Toggle(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req toggleLikeReq
	if err := c.Bind(&req); err != nil || req.PostID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "post id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	liked, err := h.Likes.Toggle(ctx, id.ID, req.PostID)
	if err != nil {
		log.Printf("toggle like: store failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to toggle like"})
	}

	if h.Events != nil {
		_ = h.Events.PublishPostLiked(ctx, queue.PostLikedEvent{
			PostID:    req.PostID,
			UserID:    id.ID,
			Liked:     liked,
			ToggledAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"liked": liked})
}
