// Package policy decides whether an authenticated identity may mutate
// an owned resource. Posts are owned through the numeric owner id;
// comments are owned through the username string. The asymmetry is
// historical — comment rows predate the owner id column — and is kept
// on purpose so existing data retains its meaning. Likes need no rule
// here: the like service only ever operates on the caller's own rows.
package policy

import "github.com/iliyamo/social-blog/internal/model"

// CanMutatePost reports whether id may update or delete the post.
func CanMutatePost(id model.Identity, p model.Post) bool {
	return id.ID == p.OwnerID
}

// CanMutateComment reports whether id may delete the comment.
func CanMutateComment(id model.Identity, cm model.Comment) bool {
	return id.Username == cm.Username
}
