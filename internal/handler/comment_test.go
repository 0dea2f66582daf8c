package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/social-blog/internal/model"
)

func createComment(t *testing.T, h *CommentHandler, author model.Identity, postID uint64, text string) model.Comment {
	t.Helper()
	c, rec := newTestContext(t, http.MethodPost, "/comments",
		map[string]interface{}{"commentText": text, "postId": postID}, &author)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var cm model.Comment
	decodeBody(t, rec, &cm)
	return cm
}

func TestCreateCommentAuthorFromIdentity(t *testing.T) {
	h := NewCommentHandler(newMockCommentStore())

	cm := createComment(t, h, alice, 3, "nice post")
	assert.Equal(t, "alice", cm.Username)
	assert.Equal(t, alice.ID, cm.OwnerID)
	assert.Equal(t, uint64(3), cm.PostID)
}

func TestCreateCommentMissingFields(t *testing.T) {
	h := NewCommentHandler(newMockCommentStore())

	for name, body := range map[string]map[string]interface{}{
		"no text":    {"postId": 3},
		"no post id": {"commentText": "hi"},
	} {
		t.Run(name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodPost, "/comments", body, &alice)
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListCommentsByPostPublic(t *testing.T) {
	store := newMockCommentStore()
	h := NewCommentHandler(store)
	createComment(t, h, alice, 3, "first")
	createComment(t, h, bob, 3, "second")
	createComment(t, h, bob, 4, "elsewhere")

	c, rec := newTestContext(t, http.MethodGet, "/comments/3", nil, nil)
	c.SetParamNames("postId")
	c.SetParamValues("3")
	require.NoError(t, h.ListByPost(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []model.Comment
	decodeBody(t, rec, &got)
	assert.Len(t, got, 2)
}

func TestDeleteCommentByAuthor(t *testing.T) {
	store := newMockCommentStore()
	h := NewCommentHandler(store)
	cm := createComment(t, h, alice, 3, "mine")

	c, rec := newTestContext(t, http.MethodDelete, "/comments/1", nil, &alice)
	c.SetParamNames("commentId")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := store.GetByID(context.Background(), cm.ID)
	assert.Error(t, err)
}

func TestDeleteCommentByOtherUserForbidden(t *testing.T) {
	store := newMockCommentStore()
	h := NewCommentHandler(store)
	cm := createComment(t, h, alice, 3, "mine")

	c, rec := newTestContext(t, http.MethodDelete, "/comments/1", nil, &bob)
	c.SetParamNames("commentId")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Still present.
	_, err := store.GetByID(context.Background(), cm.ID)
	assert.NoError(t, err)
}

func TestDeleteCommentNotFound(t *testing.T) {
	h := NewCommentHandler(newMockCommentStore())

	c, rec := newTestContext(t, http.MethodDelete, "/comments/8", nil, &alice)
	c.SetParamNames("commentId")
	c.SetParamValues("8")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Comment ownership is decided by username, not by owner id. A caller
// whose id matches but whose username differs must still be rejected.
func TestDeleteCommentUsernameDecides(t *testing.T) {
	store := newMockCommentStore()
	h := NewCommentHandler(store)
	createComment(t, h, alice, 3, "mine")

	sameIDDifferentName := model.Identity{ID: alice.ID, Username: "mallory"}
	c, rec := newTestContext(t, http.MethodDelete, "/comments/1", nil, &sameIDDifferentName)
	c.SetParamNames("commentId")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
