package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/social-blog/internal/model"
)

// CommentRepo provides CRUD operations for comments.
type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

// Create inserts a comment and populates the generated ID and creation
// timestamp. Username and OwnerID must come from the authenticated
// identity.
func (r *CommentRepo) Create(ctx context.Context, cm *model.Comment) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (comment_text, post_id, username, owner_id) VALUES (?,?,?,?)",
		cm.CommentText, cm.PostID, cm.Username, cm.OwnerID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cm.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM comments WHERE id=?", cm.ID).Scan(&cm.CreatedAt)
}

// GetByID fetches a comment by id.
func (r *CommentRepo) GetByID(ctx context.Context, id uint64) (model.Comment, error) {
	var cm model.Comment
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,comment_text,post_id,username,owner_id,created_at FROM comments WHERE id=? LIMIT 1",
		id).
		Scan(&cm.ID, &cm.CommentText, &cm.PostID, &cm.Username, &cm.OwnerID, &cm.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Comment{}, ErrNotFound
	}
	return cm, err
}

// ListByPost returns all comments of a post, oldest first.
func (r *CommentRepo) ListByPost(ctx context.Context, postID uint64) ([]model.Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,comment_text,post_id,username,owner_id,created_at FROM comments WHERE post_id=? ORDER BY id ASC",
		postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		var cm model.Comment
		if err := rows.Scan(&cm.ID, &cm.CommentText, &cm.PostID, &cm.Username, &cm.OwnerID, &cm.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, cm)
	}
	return comments, rows.Err()
}

// Delete removes a comment by id.
func (r *CommentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM comments WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
