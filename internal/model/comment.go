package model

import "time"

// Comment is a row in the `comments` table. Unlike posts, a comment is
// owned by its Username string: deletion is authorized by comparing the
// caller's username against it. OwnerID is stored as well so the data
// is ready for an id-based ownership migration, but it is not consulted
// by the current authorization rule.
type Comment struct {
	ID          uint64    `json:"id"`
	CommentText string    `json:"commentText"`
	PostID      uint64    `json:"postId"`
	Username    string    `json:"username"`
	OwnerID     uint64    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}
