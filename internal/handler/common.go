package handler // handler defines http handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-blog/internal/model"
	"github.com/iliyamo/social-blog/internal/queue"
)

// EventPublisher is the seam through which handlers emit domain events.
// A nil publisher disables events; publish errors are ignored by
// callers so the broker can never fail a request.
type EventPublisher interface {
	PublishPostCreated(ctx context.Context, ev queue.PostCreatedEvent) error
	PublishPostLiked(ctx context.Context, ev queue.PostLikedEvent) error
}

// identityFrom reconstructs the authenticated identity placed in the
// context by the auth gate, which stores user_id as uint64 and username
// as string. Handlers behind the gate can rely on it; public handlers
// must not call it.
func identityFrom(c echo.Context) (model.Identity, error) {
	id, _ := c.Get("user_id").(uint64)
	username, _ := c.Get("username").(string)
	if id == 0 || username == "" {
		return model.Identity{}, errors.New("no identity in context")
	}
	return model.Identity{ID: id, Username: username}, nil
}

// pathID parses a numeric path parameter, rejecting zero and garbage.
func pathID(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
