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
	"github.com/iliyamo/social-blog/internal/queue"
	"github.com/iliyamo/social-blog/internal/repository"
)

// PostStore is the post persistence contract consumed by PostHandler.
type PostStore interface {
	Create(ctx context.Context, p *model.Post) error
	GetByID(ctx context.Context, id uint64) (model.Post, error)
	ListAll(ctx context.Context) ([]model.Post, error)
	ListByUser(ctx context.Context, ownerID uint64) ([]model.Post, error)
	UpdateTitle(ctx context.Context, id uint64, title string) error
	UpdateText(ctx context.Context, id uint64, text string) error
	DeleteCascade(ctx context.Context, id uint64) error
}

// LikeStore is the like persistence contract. It is deliberately
// narrow: every operation is scoped to a user id that handlers take
// from the authenticated identity, never from the request body.
type LikeStore interface {
	Toggle(ctx context.Context, userID, postID uint64) (bool, error)
	ListPostIDs(ctx context.Context, userID uint64) ([]uint64, error)
}

// PostHandler bundles dependencies for the post endpoints.
type PostHandler struct {
	Posts  PostStore
	Likes  LikeStore
	Events EventPublisher // nil disables event publishing
}

func NewPostHandler(posts PostStore, likes LikeStore, events EventPublisher) *PostHandler {
	if posts == nil || likes == nil {
		panic("nil store passed to NewPostHandler")
	}
	return &PostHandler{Posts: posts, Likes: likes, Events: events}
}

type createPostReq struct {
	Title    string `json:"title"`
	PostText string `json:"postText"`
}

type updateTitleReq struct {
	ID       uint64 `json:"id"`
	NewTitle string `json:"newTitle"`
}

type updateTextReq struct {
	ID      uint64 `json:"id"`
	NewText string `json:"newText"`
}

type feedResp struct {
	ListOfPosts []model.Post `json:"listOfPosts"`
	LikedPosts  []uint64     `json:"likedPosts"`
}

// Feed returns every post plus the ids of the posts the caller likes.
// Protected: the like state is meaningless without an identity.
func (h *PostHandler) Feed(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	posts, err := h.Posts.ListAll(ctx)
	if err != nil {
		log.Printf("feed: list posts failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch posts"})
	}
	liked, err := h.Likes.ListPostIDs(ctx, id.ID)
	if err != nil {
		log.Printf("feed: list likes failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch posts"})
	}
	return c.JSON(http.StatusOK, feedResp{ListOfPosts: posts, LikedPosts: liked})
}

// GetByID returns one post. Public.
func (h *PostHandler) GetByID(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid post id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		log.Printf("get post: query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch post"})
	}
	return c.JSON(http.StatusOK, p)
}

// ListByUser returns the posts of one user. Public.
func (h *PostHandler) ListByUser(c echo.Context) error {
	userID, ok := pathID(c, "userId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	posts, err := h.Posts.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("posts by user: query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch user posts"})
	}
	return c.JSON(http.StatusOK, posts)
}

// Create stores a new post owned by the caller. Protected. Owner
// fields always come from the verified identity, never the body.
func (h *PostHandler) Create(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createPostReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || strings.TrimSpace(req.PostText) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and post text required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := model.Post{
		Title:    req.Title,
		PostText: req.PostText,
		Username: id.Username,
		OwnerID:  id.ID,
	}
	if err := h.Posts.Create(ctx, &p); err != nil {
		log.Printf("create post: insert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create post"})
	}

	if h.Events != nil {
		_ = h.Events.PublishPostCreated(ctx, queue.PostCreatedEvent{
			PostID:    p.ID,
			OwnerID:   p.OwnerID,
			Username:  p.Username,
			Title:     p.Title,
			CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, p)
}

// UpdateTitle replaces the title of a post the caller owns. Protected.
// The existence check runs before the ownership check, so a missing
// post is 404 while someone else's post is 403.
func (h *PostHandler) UpdateTitle(c echo.Context) error {
	var req updateTitleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.NewTitle = strings.TrimSpace(req.NewTitle)
	if req.ID == 0 || req.NewTitle == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required fields"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if !h.authorizePostMutation(c, ctx, req.ID) {
		return nil
	}
	if err := h.Posts.UpdateTitle(ctx, req.ID, req.NewTitle); err != nil {
		return h.mutationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"title": req.NewTitle})
}

// UpdateText replaces the body of a post the caller owns. Protected.
func (h *PostHandler) UpdateText(c echo.Context) error {
	var req updateTextReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.NewText = strings.TrimSpace(req.NewText)
	if req.ID == 0 || req.NewText == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required fields"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if !h.authorizePostMutation(c, ctx, req.ID) {
		return nil
	}
	if err := h.Posts.UpdateText(ctx, req.ID, req.NewText); err != nil {
		return h.mutationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"postText": req.NewText})
}

// Delete removes a post the caller owns together with its likes and
// comments. Protected.
func (h *PostHandler) Delete(c echo.Context) error {
	postID, ok := pathID(c, "postId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid post id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if !h.authorizePostMutation(c, ctx, postID) {
		return nil
	}
	if err := h.Posts.DeleteCascade(ctx, postID); err != nil {
		return h.mutationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "post deleted successfully"})
}

// authorizePostMutation loads the target post and enforces the
// ownership policy: 404 when the post does not exist, 403 when it
// belongs to someone else. On failure it writes the response and
// returns false; the existence check deliberately precedes the
// ownership check.
func (h *PostHandler) authorizePostMutation(c echo.Context, ctx context.Context, postID uint64) bool {
	id, err := identityFrom(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return false
	}
	p, err := h.Posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		} else {
			log.Printf("mutate post: query failed: %v", err)
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return false
	}
	if !policy.CanMutatePost(id, p) {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized"})
		return false
	}
	return true
}

// mutationError translates a failed post write into a response. The
// row can vanish between the authorization read and the write; that
// late miss is still a 404.
func (h *PostHandler) mutationError(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
	}
	log.Printf("mutate post: write failed: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
