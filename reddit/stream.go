package reddit

import (
	"context"
)

// how many fullnames a stream remembers for de-duplication; mirrors the
// bounded seen-set sizing of typical listing-poll clients
const streamSeenCapacity = 1000

// Stream is a non-blocking pollable view over one /new listing: each Poll
// returns the next not-yet-seen item in chronological order, or nil when the
// listing has nothing new right now.
type Stream struct {
	fetch func(ctx context.Context) ([]*Item, error)

	queue []*Item
	seen  map[string]bool
	order []string
}

// CommentStream polls the newest comments across the given subreddits.
func (c *Client) CommentStream(subreddits []string) *Stream {
	return &Stream{
		fetch: func(ctx context.Context) ([]*Item, error) {
			return c.NewComments(ctx, subreddits)
		},
		seen: make(map[string]bool, streamSeenCapacity),
	}
}

// SubmissionStream polls the newest submissions across the given subreddits.
func (c *Client) SubmissionStream(subreddits []string) *Stream {
	return &Stream{
		fetch: func(ctx context.Context) ([]*Item, error) {
			return c.NewSubmissions(ctx, subreddits)
		},
		seen: make(map[string]bool, streamSeenCapacity),
	}
}

// Poll returns the next new item, or (nil, nil) when the upstream listing
// has nothing we haven't already yielded. It never blocks beyond a single
// listing request.
func (s *Stream) Poll(ctx context.Context) (*Item, error) {
	if len(s.queue) == 0 {
		items, err := s.fetch(ctx)
		if err != nil {
			return nil, err
		}
		// listings are newest-first; queue oldest-first so delivery is chronological
		for i := len(items) - 1; i >= 0; i-- {
			item := items[i]
			if s.seen[item.Name] {
				continue
			}
			s.remember(item.Name)
			s.queue = append(s.queue, item)
		}
	}
	if len(s.queue) == 0 {
		return nil, nil
	}
	item := s.queue[0]
	s.queue = s.queue[1:]
	return item, nil
}

func (s *Stream) remember(name string) {
	s.seen[name] = true
	s.order = append(s.order, name)
	if len(s.order) > streamSeenCapacity {
		delete(s.seen, s.order[0])
		s.order = s.order[1:]
	}
}
