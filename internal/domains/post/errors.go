package post

import "errors"

var (
	ErrPostNotFound = errors.New("post not found")

	// The post's author could not be resolved when addressing the
	// new-post notification. By then the post row is already persisted;
	// the request still fails.
	ErrPostAuthorNotFound = errors.New("post author not found")

	// ErrNotificationFailed: notification mail failed after the post was
	// persisted.
	ErrNotificationFailed = errors.New("failed to send new post notification")

	// ErrNotOwner: the authenticated author does not own the post.
	ErrNotOwner = errors.New("author does not own this post")
)
