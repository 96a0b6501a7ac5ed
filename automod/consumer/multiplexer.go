// Package consumer drives the moderation engine from the merged live streams
// of new comments and submissions.
package consumer

import (
	"context"

	"github.com/Thirdegree/YouTubeSpamBot/reddit"
)

// Source is a non-blocking pollable stream of items. Poll returns the next
// item, or (nil, nil) when nothing is available right now.
type Source interface {
	Poll(ctx context.Context) (*reddit.Item, error)
}

// Multiplexer merges independent pollable sources into one unending, fair
// sequence by round-robin polling. A source with nothing to offer this pass
// is skipped this round, never removed; the multiplexer has no terminal
// state of its own.
type Multiplexer struct {
	sources []Source
	next    int
}

func NewMultiplexer(sources ...Source) *Multiplexer {
	return &Multiplexer{sources: sources}
}

// Poll makes at most one full round-robin pass over the sources, starting
// where the previous call left off, and returns the first item offered.
// Returns (nil, nil) when every source reported empty this pass.
func (m *Multiplexer) Poll(ctx context.Context) (*reddit.Item, error) {
	for range m.sources {
		src := m.sources[m.next]
		m.next = (m.next + 1) % len(m.sources)
		item, err := src.Poll(ctx)
		if err != nil {
			return nil, err
		}
		if item != nil {
			return item, nil
		}
	}
	return nil, nil
}
