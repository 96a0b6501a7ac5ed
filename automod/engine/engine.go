// Package engine decides whether newly posted reddit items should be removed
// for excessive YouTube self-promotion.
//
// The engine itself performs no mutating actions: Decide returns a tagged
// outcome which the caller executes (or, in dry-run mode, only logs).
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Thirdegree/YouTubeSpamBot/automod/youtube"
	"github.com/Thirdegree/YouTubeSpamBot/reddit"
)

// Engine composes the content classifier, the author history ratio, and the
// loaded policy into per-item decisions.
type Engine struct {
	Logger  *slog.Logger
	History reddit.AuthorHistory
	Policy  *Policy
}

type Outcome int

const (
	OutcomeSkip Outcome = iota
	OutcomeRemove
)

// Decision carries everything computed while deciding, so the caller never
// has to re-derive it when acting.
type Decision struct {
	Outcome   Outcome
	Ratio     float64
	Examined  int
	Rationale string
}

func skip() Decision {
	return Decision{Outcome: OutcomeSkip}
}

// Decide evaluates an item against the policy. Checks short-circuit in
// order: already approved, already removed with a reason, deleted author,
// whitelisted author, and the item's own content not containing a YouTube
// link. An item that is not itself a promotional link is never acted on,
// whatever the author's history looks like. Only then is the author's
// recent-history ratio computed and compared (strictly) to the threshold.
func (e *Engine) Decide(ctx context.Context, item *reddit.Item) (Decision, error) {
	if item.ApprovedBy != "" {
		// a moderator already looked at this and kept it
		return skip(), nil
	}
	if item.RemovalReason != "" {
		// already removed by someone else
		return skip(), nil
	}
	if item.Author == "" {
		return skip(), nil
	}
	if e.Policy.IsWhitelisted(item.Author) {
		return skip(), nil
	}
	content, err := item.Content()
	if err != nil {
		return Decision{}, err
	}
	if !youtube.IsYouTube(content) {
		return skip(), nil
	}

	res, err := e.AuthorRatio(ctx, item.Author, e.Policy.Lookback)
	if err != nil {
		return Decision{}, err
	}
	if res.Ratio <= e.Policy.TargetRatio {
		return Decision{Outcome: OutcomeSkip, Ratio: res.Ratio, Examined: res.Examined}, nil
	}
	return Decision{
		Outcome:   OutcomeRemove,
		Ratio:     res.Ratio,
		Examined:  res.Examined,
		Rationale: removalRationale(item),
	}, nil
}

func removalRationale(item *reddit.Item) string {
	return fmt.Sprintf(`This post is removed due to a high rate of self promoted
links. Your account may be suspended at some point by the
reddit admins if more than 10%% of your content is pulled
from a single source.

https://www.reddit.com/wiki/selfpromotion

"You should submit from a variety of sources (a general
rule of thumb is that 10%% or less of your posting and
conversation should link to your own content), talk to
people in the comments (and not just on your own links)."

https://www.reddit.com/wiki/faq#wiki_what_constitutes_spam.3F

This is an automated response due to a high rate of self
promoted links posted from your account.

Please [contact the moderators](https://www.reddit.com/message/compose?to=%%2Fr%%2F%s&subject=&message=%s) if you have questions.
`, item.Subreddit, item.Permalink)
}
