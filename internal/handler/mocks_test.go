package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-blog/internal/model"
	"github.com/iliyamo/social-blog/internal/queue"
	"github.com/iliyamo/social-blog/internal/repository"
	"github.com/iliyamo/social-blog/internal/utils"
)

// Map-backed store mocks shared by the handler tests. They reproduce
// the repository contracts including sentinel errors and the like
// uniqueness invariant.

type mockUserStore struct {
	mu     sync.Mutex
	users  map[string]model.User // username -> user
	nextID uint64
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: map[string]model.User{}, nextID: 1}
}

func (m *mockUserStore) Create(_ context.Context, username, password string, cost int) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[username]; ok {
		return 0, repository.ErrUsernameExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	id := m.nextID
	m.nextID++
	m.users[username] = model.User{ID: id, Username: username, PasswordHash: hash, CreatedAt: time.Now()}
	return id, nil
}

func (m *mockUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (m *mockUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *mockUserStore) UpdatePassword(_ context.Context, username, newPassword string, cost int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return repository.ErrNotFound
	}
	hash, err := utils.HashPassword(newPassword, cost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	m.users[username] = u
	return nil
}

type likeKey struct{ userID, postID uint64 }

type mockLikeStore struct {
	mu   sync.Mutex
	rows map[likeKey]struct{}
}

func newMockLikeStore() *mockLikeStore {
	return &mockLikeStore{rows: map[likeKey]struct{}{}}
}

func (m *mockLikeStore) Toggle(_ context.Context, userID, postID uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := likeKey{userID, postID}
	if _, ok := m.rows[k]; ok {
		delete(m.rows, k)
		return false, nil
	}
	m.rows[k] = struct{}{}
	return true, nil
}

func (m *mockLikeStore) ListPostIDs(_ context.Context, userID uint64) ([]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]uint64, 0)
	for k := range m.rows {
		if k.userID == userID {
			ids = append(ids, k.postID)
		}
	}
	return ids, nil
}

func (m *mockLikeStore) countForPost(postID uint64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.rows {
		if k.postID == postID {
			n++
		}
	}
	return n
}

type mockCommentStore struct {
	mu       sync.Mutex
	comments map[uint64]model.Comment
	nextID   uint64
}

func newMockCommentStore() *mockCommentStore {
	return &mockCommentStore{comments: map[uint64]model.Comment{}, nextID: 1}
}

func (m *mockCommentStore) Create(_ context.Context, cm *model.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cm.ID = m.nextID
	m.nextID++
	cm.CreatedAt = time.Now()
	m.comments[cm.ID] = *cm
	return nil
}

func (m *mockCommentStore) GetByID(_ context.Context, id uint64) (model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cm, ok := m.comments[id]
	if !ok {
		return model.Comment{}, repository.ErrNotFound
	}
	return cm, nil
}

func (m *mockCommentStore) ListByPost(_ context.Context, postID uint64) ([]model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Comment, 0)
	for _, cm := range m.comments {
		if cm.PostID == postID {
			out = append(out, cm)
		}
	}
	return out, nil
}

func (m *mockCommentStore) Delete(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *mockCommentStore) deleteByPost(postID uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, cm := range m.comments {
		if cm.PostID == postID {
			delete(m.comments, id)
		}
	}
}

// mockPostStore holds posts and, like the real repository's cascade
// delete, removes dependent likes and comments with the post.
type mockPostStore struct {
	mu       sync.Mutex
	posts    map[uint64]model.Post
	nextID   uint64
	likes    *mockLikeStore
	comments *mockCommentStore
}

func newMockPostStore(likes *mockLikeStore, comments *mockCommentStore) *mockPostStore {
	return &mockPostStore{posts: map[uint64]model.Post{}, nextID: 1, likes: likes, comments: comments}
}

func (m *mockPostStore) Create(_ context.Context, p *model.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.nextID
	m.nextID++
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.posts[p.ID] = *p
	return nil
}

func (m *mockPostStore) GetByID(_ context.Context, id uint64) (model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return model.Post{}, repository.ErrNotFound
	}
	return p, nil
}

func (m *mockPostStore) ListAll(_ context.Context) ([]model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Post, 0, len(m.posts))
	for _, p := range m.posts {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPostStore) ListByUser(_ context.Context, ownerID uint64) ([]model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Post, 0)
	for _, p := range m.posts {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPostStore) UpdateTitle(_ context.Context, id uint64, title string) error {
	return m.update(id, func(p *model.Post) { p.Title = title })
}

func (m *mockPostStore) UpdateText(_ context.Context, id uint64, text string) error {
	return m.update(id, func(p *model.Post) { p.PostText = text })
}

func (m *mockPostStore) update(id uint64, fn func(*model.Post)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&p)
	m.posts[id] = p
	return nil
}

func (m *mockPostStore) DeleteCascade(_ context.Context, id uint64) error {
	m.mu.Lock()
	if _, ok := m.posts[id]; !ok {
		m.mu.Unlock()
		return repository.ErrNotFound
	}
	delete(m.posts, id)
	m.mu.Unlock()

	if m.comments != nil {
		m.comments.deleteByPost(id)
	}
	if m.likes != nil {
		m.likes.mu.Lock()
		for k := range m.likes.rows {
			if k.postID == id {
				delete(m.likes.rows, k)
			}
		}
		m.likes.mu.Unlock()
	}
	return nil
}

// mockEvents records published events.
type mockEvents struct {
	mu      sync.Mutex
	created []queue.PostCreatedEvent
	liked   []queue.PostLikedEvent
}

func (m *mockEvents) PublishPostCreated(_ context.Context, ev queue.PostCreatedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, ev)
	return nil
}

func (m *mockEvents) PublishPostLiked(_ context.Context, ev queue.PostLikedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.liked = append(m.liked, ev)
	return nil
}

// newTestContext builds an Echo context carrying an optional JSON body
// and, when identity is non-nil, the context values the auth gate would
// have set.
func newTestContext(t *testing.T, method, target string, body interface{}, identity *model.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = strings.NewReader(string(b))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if identity != nil {
		c.Set("user_id", identity.ID)
		c.Set("username", identity.Username)
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
