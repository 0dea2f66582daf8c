package model

import "time"

// Post is a row in the `posts` table. OwnerID references users.id and
// is the only field consulted for write authorization; Username is a
// denormalized copy kept for display.
type Post struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	PostText  string    `json:"postText"`
	Username  string    `json:"username"`
	OwnerID   uint64    `json:"ownerId"`
	LikeCount uint64    `json:"likeCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
