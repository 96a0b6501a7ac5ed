package reddit

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested resource (eg, a wiki page) does not exist.
	ErrNotFound = errors.New("reddit: not found")

	// ErrUnknownKind indicates an item of a kind other than comment or submission.
	ErrUnknownKind = errors.New("reddit: unknown item kind")
)

type ItemKind string

const (
	ItemKindComment    ItemKind = "comment"
	ItemKindSubmission ItemKind = "submission"
)

// Item is a single piece of user content: a comment or a submission (post).
//
// Fields not applicable to the item's kind are left zero; eg, a comment has
// no URL, and a submission has no Body.
type Item struct {
	// Fullname identifier, eg "t1_abc123" or "t3_xyz789"
	Name      string
	Kind      ItemKind
	Subreddit string
	Permalink string

	// Author is empty when the account has been deleted.
	Author string

	// comment fields
	Body string

	// submission fields
	SelfText string
	URL      string
	IsSelf   bool

	// moderation state
	ApprovedBy    string
	RemovalReason string
}

// Content returns the text a classifier should inspect: the body for a
// comment, and either the self-text or the outbound URL for a submission.
func (it *Item) Content() (string, error) {
	switch it.Kind {
	case ItemKindComment:
		return it.Body, nil
	case ItemKindSubmission:
		if it.IsSelf {
			return it.SelfText, nil
		}
		return it.URL, nil
	}
	return "", fmt.Errorf("%w: can only get content for submissions or comments, not %q", ErrUnknownKind, it.Kind)
}

// WikiStore is read/create access to subreddit wiki pages.
type WikiStore interface {
	GetWikiPage(ctx context.Context, subreddit, page string) (string, error)
	CreateWikiPage(ctx context.Context, subreddit, page, content string) error
}

// AuthorHistory fetches an author's most recent items, newest first.
type AuthorHistory interface {
	RecentItems(ctx context.Context, author string, limit int) ([]*Item, error)
}

// Moderator performs mutating moderation actions on items.
type Moderator interface {
	Remove(ctx context.Context, item *Item) error
	SendRemovalMessage(ctx context.Context, item *Item, message string) error
}
