package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thirdegree/YouTubeSpamBot/reddit"
)

func promoComment(author string) *reddit.Item {
	return &reddit.Item{
		Name:      "t1_incoming",
		Kind:      reddit.ItemKindComment,
		Author:    author,
		Body:      "new video! https://youtu.be/abc123",
		Subreddit: "foo",
		Permalink: "/r/foo/comments/xyz/comment/incoming",
	}
}

func TestDecideEndToEnd(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	// 50 history items, 20 of them youtube links: ratio 0.4 > 0.33
	eng := EngineTestFixture(StaticHistory{
		"spammer": historyFixture("spammer", 20, 30),
	})

	dec, err := eng.Decide(ctx, promoComment("spammer"))
	require.NoError(t, err)
	assert.Equal(OutcomeRemove, dec.Outcome)
	assert.Equal(0.4, dec.Ratio)
	assert.Equal(50, dec.Examined)
	assert.Contains(dec.Rationale, "to=%2Fr%2Ffoo")
	assert.Contains(dec.Rationale, "/r/foo/comments/xyz/comment/incoming")
}

func TestDecideNeverActsOnNonMatchingContent(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	// the author is way over threshold, but this item isn't itself a
	// youtube link, so it is left alone
	eng := EngineTestFixture(StaticHistory{
		"spammer": historyFixture("spammer", 50, 0),
	})

	item := promoComment("spammer")
	item.Body = "actually engaging with the discussion for once"
	dec, err := eng.Decide(ctx, item)
	require.NoError(t, err)
	assert.Equal(OutcomeSkip, dec.Outcome)
}

func TestDecideSkipsWhitelisted(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture(StaticHistory{
		"spammer": historyFixture("spammer", 50, 0),
	})
	eng.Policy.UserWhitelist = []string{"spammer"}

	dec, err := eng.Decide(ctx, promoComment("spammer"))
	require.NoError(t, err)
	assert.Equal(OutcomeSkip, dec.Outcome)
}

func TestDecideSkipsModeratedItems(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture(StaticHistory{
		"spammer": historyFixture("spammer", 50, 0),
	})

	approved := promoComment("spammer")
	approved.ApprovedBy = "some_mod"
	dec, err := eng.Decide(ctx, approved)
	require.NoError(t, err)
	assert.Equal(OutcomeSkip, dec.Outcome)

	removed := promoComment("spammer")
	removed.RemovalReason = "spam"
	dec, err = eng.Decide(ctx, removed)
	require.NoError(t, err)
	assert.Equal(OutcomeSkip, dec.Outcome)
}

func TestDecideSkipsDeletedAuthor(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture(StaticHistory{})

	item := promoComment("")
	dec, err := eng.Decide(ctx, item)
	require.NoError(t, err)
	assert.Equal(OutcomeSkip, dec.Outcome)
}

func TestDecideThresholdIsStrict(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	// exactly at the threshold does not trigger
	eng := EngineTestFixture(StaticHistory{
		"borderline": historyFixture("borderline", 5, 5),
	})
	eng.Policy.TargetRatio = 0.5

	dec, err := eng.Decide(ctx, promoComment("borderline"))
	require.NoError(t, err)
	assert.Equal(OutcomeSkip, dec.Outcome)
	assert.Equal(0.5, dec.Ratio)
	assert.Equal(10, dec.Examined)

	// just over does
	eng.Policy.TargetRatio = 0.49
	dec, err = eng.Decide(ctx, promoComment("borderline"))
	require.NoError(t, err)
	assert.Equal(OutcomeRemove, dec.Outcome)
}

func TestDecideUnknownItemKind(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture(StaticHistory{})

	item := promoComment("somebody")
	item.Kind = "award"
	_, err := eng.Decide(ctx, item)
	assert.ErrorIs(err, reddit.ErrUnknownKind)
}
