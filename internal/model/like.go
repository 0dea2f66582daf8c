package model

// Like is a join row between a user and a post: presence means the
// user currently endorses the post. At most one row may exist per
// (UserID, PostID) pair; the uq_like unique key in the schema enforces
// this even when concurrent toggles race.
type Like struct {
	ID     uint64 `json:"id"`
	UserID uint64 `json:"userId"`
	PostID uint64 `json:"postId"`
}
