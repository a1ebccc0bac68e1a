package domain

import (
	"time"
)

// MaxCommentLength is the maximum length of a comment, in characters.
const MaxCommentLength = 200

// Comment is an append-only remark left by a user on a product.
// Comments are never updated or deleted individually; they disappear
// only when their product is deleted.
type Comment struct {
	// ID is the unique identifier for the comment (auto-generated).
	ID int64 `json:"id"`

	// UserID references the commenting user.
	UserID int64 `json:"user_id"`

	// ProductID references the commented product.
	ProductID int64 `json:"product_id"`

	// Content is the comment text, 1 to 200 characters.
	Content string `json:"content"`

	// CreatedAt is the timestamp when the comment was posted.
	// Listings are ordered by this field, most recent first.
	CreatedAt time.Time `json:"created_at"`

	// User is the denormalized {id, name} of the commenting user,
	// populated on every API projection.
	User *UserRef `json:"user,omitempty"`
}

// NewComment creates a new Comment for the given actor and product.
func NewComment(actor *User, productID int64, content string) *Comment {
	return &Comment{
		UserID:    actor.ID,
		ProductID: productID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
		User:      actor.Ref(),
	}
}
