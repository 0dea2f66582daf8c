package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/social-blog/internal/model"
)

// PostRepo provides CRUD operations for posts. Like counts are computed
// on read with a LEFT JOIN so no counter column can drift.
type PostRepo struct{ DB *sql.DB }

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{DB: db} }

const postColumns = `p.id, p.title, p.post_text, p.username, p.owner_id,
	COUNT(l.id) AS like_count, p.created_at, p.updated_at`

// Create inserts a post and populates the generated ID and timestamps
// on the provided record. Owner fields must already be set from the
// authenticated identity; the repository never infers them.
func (r *PostRepo) Create(ctx context.Context, p *model.Post) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO posts (title, post_text, username, owner_id) VALUES (?,?,?,?)",
		p.Title, p.PostText, p.Username, p.OwnerID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	// Query back the row to populate timestamps and defaults.
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM posts WHERE id=?",
		p.ID).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// GetByID fetches a single post with its like count.
func (r *PostRepo) GetByID(ctx context.Context, id uint64) (model.Post, error) {
	var p model.Post
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+postColumns+`
		 FROM posts p LEFT JOIN likes l ON l.post_id = p.id
		 WHERE p.id=? GROUP BY p.id`, id).
		Scan(&p.ID, &p.Title, &p.PostText, &p.Username, &p.OwnerID,
			&p.LikeCount, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Post{}, ErrNotFound
	}
	return p, err
}

// ListAll returns every post, newest first, with like counts.
func (r *PostRepo) ListAll(ctx context.Context) ([]model.Post, error) {
	return r.list(ctx,
		`SELECT `+postColumns+`
		 FROM posts p LEFT JOIN likes l ON l.post_id = p.id
		 GROUP BY p.id ORDER BY p.id DESC`)
}

// ListByUser returns the posts owned by one user, newest first.
func (r *PostRepo) ListByUser(ctx context.Context, ownerID uint64) ([]model.Post, error) {
	return r.list(ctx,
		`SELECT `+postColumns+`
		 FROM posts p LEFT JOIN likes l ON l.post_id = p.id
		 WHERE p.owner_id=? GROUP BY p.id ORDER BY p.id DESC`, ownerID)
}

func (r *PostRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Post, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]model.Post, 0)
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.PostText, &p.Username, &p.OwnerID,
			&p.LikeCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// UpdateTitle replaces a post's title.
func (r *PostRepo) UpdateTitle(ctx context.Context, id uint64, title string) error {
	return r.updateColumn(ctx, "UPDATE posts SET title=? WHERE id=?", title, id)
}

// UpdateText replaces a post's body.
func (r *PostRepo) UpdateText(ctx context.Context, id uint64, text string) error {
	return r.updateColumn(ctx, "UPDATE posts SET post_text=? WHERE id=?", text, id)
}

func (r *PostRepo) updateColumn(ctx context.Context, query, value string, id uint64) error {
	res, err := r.DB.ExecContext(ctx, query, value, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// The DSN sets clientFoundRows, so affected rows count matches,
		// not changes: zero means the row vanished since the caller's
		// existence check, not that the value was already current.
		return ErrNotFound
	}
	return nil
}

// DeleteCascade removes a post together with its likes and comments in
// one transaction. The schema's ON DELETE CASCADE constraints would
// cover the children on their own; deleting explicitly keeps the
// behavior independent of how the tables were provisioned.
func (r *PostRepo) DeleteCascade(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM likes WHERE post_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE post_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM posts WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
