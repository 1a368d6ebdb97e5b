package entities

import (
	"strings"
	"time"
)

// Post is the content record claims are filed against. Posts are never
// hard-deleted; deactivation only hides them from new engagement.
type Post struct {
	PostID    string
	OwnerID   string
	Content   string
	LikeCount int
	ViewCount int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Post) ValidateCreate() bool {
	return strings.TrimSpace(p.OwnerID) != "" &&
		strings.TrimSpace(p.Content) != ""
}
