package repository

import (
	"context"
	"database/sql"
)

// LikeRepo persists likes. A like is existence-toggled: one row per
// (user_id, post_id) pair means liked, no row means not liked. The
// uq_like unique key is the source of truth under concurrency.
type LikeRepo struct{ DB *sql.DB }

func NewLikeRepo(db *sql.DB) *LikeRepo { return &LikeRepo{DB: db} }

// Toggle flips the like state for (userID, postID) and reports the
// resulting state. Delete-first keeps the common un-like path to a
// single statement. When two toggles from the same user race, both may
// pass the delete with zero rows and both attempt the insert; the
// unique key rejects the loser with a duplicate-key error, which is
// reported as liked=true — the row exists, which is exactly what the
// caller's toggle was converging to. No lock is held at any point.
func (r *LikeRepo) Toggle(ctx context.Context, userID, postID uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM likes WHERE user_id=? AND post_id=?", userID, postID)
	if err != nil {
		return false, err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return false, nil
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO likes (user_id, post_id) VALUES (?,?)", userID, postID)
	if err != nil {
		if isDuplicateKey(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// ListPostIDs returns the ids of every post the user currently likes.
// Used by the feed so clients can render the caller's like state.
func (r *LikeRepo) ListPostIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT post_id FROM likes WHERE user_id=? ORDER BY post_id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
