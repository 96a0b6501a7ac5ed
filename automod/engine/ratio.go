package engine

import (
	"context"
	"fmt"

	"github.com/Thirdegree/YouTubeSpamBot/automod/youtube"
)

// RatioResult is the outcome of inspecting an author's recent history.
type RatioResult struct {
	// fraction of examined items containing a YouTube link, in [0, 1]
	Ratio float64
	// number of history items actually inspected; may be less than the
	// requested lookback for authors with short histories
	Examined int
}

// AuthorRatio classifies up to lookback of the author's most recent items
// and reports what fraction reference YouTube. An author with no visible
// history is reported as (0, 0) and is never flagged by ratio alone.
func (e *Engine) AuthorRatio(ctx context.Context, author string, lookback int) (RatioResult, error) {
	items, err := e.History.RecentItems(ctx, author, lookback)
	if err != nil {
		return RatioResult{}, fmt.Errorf("fetching history for %s: %w", author, err)
	}
	matched := 0
	examined := 0
	for _, item := range items {
		content, err := item.Content()
		if err != nil {
			return RatioResult{}, err
		}
		examined++
		if youtube.IsYouTube(content) {
			matched++
		}
	}
	if examined == 0 {
		return RatioResult{}, nil
	}
	// examined never exceeds lookback by construction of the retrieval, but
	// the denominator is capped anyway
	denom := examined
	if lookback < denom {
		denom = lookback
	}
	return RatioResult{
		Ratio:    float64(matched) / float64(denom),
		Examined: examined,
	}, nil
}
