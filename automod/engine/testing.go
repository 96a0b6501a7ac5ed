package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Thirdegree/YouTubeSpamBot/reddit"
)

// StaticHistory is an in-memory AuthorHistory for tests: a fixed newest-first
// item list per author.
type StaticHistory map[string][]*reddit.Item

var _ reddit.AuthorHistory = (StaticHistory)(nil)

func (h StaticHistory) RecentItems(ctx context.Context, author string, limit int) ([]*reddit.Item, error) {
	items := h[author]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// MemWikiStore is an in-memory WikiStore for tests, keyed by
// "subreddit/page".
type MemWikiStore struct {
	Pages map[string]string
}

var _ reddit.WikiStore = (*MemWikiStore)(nil)

func NewMemWikiStore() *MemWikiStore {
	return &MemWikiStore{Pages: make(map[string]string)}
}

func (s *MemWikiStore) GetWikiPage(ctx context.Context, subreddit, page string) (string, error) {
	content, ok := s.Pages[subreddit+"/"+page]
	if !ok {
		return "", fmt.Errorf("wiki page %s/%s: %w", subreddit, page, reddit.ErrNotFound)
	}
	return content, nil
}

func (s *MemWikiStore) CreateWikiPage(ctx context.Context, subreddit, page, content string) error {
	s.Pages[subreddit+"/"+page] = content
	return nil
}

// EngineTestFixture returns an engine with a permissive policy and the given
// canned history.
func EngineTestFixture(history StaticHistory) Engine {
	return Engine{
		Logger:  slog.New(slog.NewJSONHandler(os.Stdout, nil)),
		History: history,
		Policy: &Policy{
			Subreddits:    []string{"foo"},
			TargetRatio:   0.33,
			Lookback:      50,
			UserWhitelist: []string{},
		},
	}
}
