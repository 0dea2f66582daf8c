// Package queue defines message payloads exchanged over the message broker.
package queue

// PostCreatedEvent is published when a post is successfully created.
// It carries enough information for downstream consumers to log,
// notify, or feed analytics without querying the primary database.
type PostCreatedEvent struct {
	PostID    uint64 `json:"post_id"`
	OwnerID   uint64 `json:"owner_id"`
	Username  string `json:"username"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

// PostLikedEvent is published on every like toggle, with the resulting
// state so consumers do not have to reconstruct it from deltas.
type PostLikedEvent struct {
	PostID    uint64 `json:"post_id"`
	UserID    uint64 `json:"user_id"`
	Liked     bool   `json:"liked"`
	ToggledAt string `json:"toggled_at"`
}
