package errors

import "errors"

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrInvalidPostInput = errors.New("invalid post input")
	ErrPostInactive     = errors.New("post is deactivated")
	ErrNotPostOwner     = errors.New("actor does not own the post")
)
