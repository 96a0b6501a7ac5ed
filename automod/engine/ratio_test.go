package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thirdegree/YouTubeSpamBot/reddit"
)

// historyFixture builds a newest-first history with the given number of
// YouTube-linking comments and plain comments, interleaved.
func historyFixture(author string, matching, plain int) []*reddit.Item {
	total := matching + plain
	var items []*reddit.Item
	for i := 0; len(items) < total; i++ {
		if i%2 == 0 && matching > 0 {
			matching--
			items = append(items, &reddit.Item{
				Name:      fmt.Sprintf("t1_yt%d", i),
				Kind:      reddit.ItemKindComment,
				Author:    author,
				Body:      fmt.Sprintf("look: https://youtu.be/vid%d", i),
				Subreddit: "foo",
			})
			continue
		}
		if plain > 0 {
			plain--
			items = append(items, &reddit.Item{
				Name:      fmt.Sprintf("t1_plain%d", i),
				Kind:      reddit.ItemKindComment,
				Author:    author,
				Body:      "just a normal comment",
				Subreddit: "foo",
			})
			continue
		}
		// matching left over after plain ran out
		matching--
		items = append(items, &reddit.Item{
			Name:      fmt.Sprintf("t1_yt%d", i),
			Kind:      reddit.ItemKindComment,
			Author:    author,
			Body:      fmt.Sprintf("look: https://youtu.be/vid%d", i),
			Subreddit: "foo",
		})
	}
	return items
}

func TestAuthorRatioEmptyHistory(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture(StaticHistory{})
	res, err := eng.AuthorRatio(ctx, "newcomer", 50)
	require.NoError(t, err)
	assert.Equal(0.0, res.Ratio)
	assert.Equal(0, res.Examined)
}

func TestAuthorRatio(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture(StaticHistory{
		"poster": historyFixture("poster", 3, 7),
	})
	res, err := eng.AuthorRatio(ctx, "poster", 10)
	require.NoError(t, err)
	assert.Equal(0.3, res.Ratio)
	assert.Equal(10, res.Examined)
}

func TestAuthorRatioShortHistory(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	// only 4 items retrievable with a lookback of 50
	eng := EngineTestFixture(StaticHistory{
		"poster": historyFixture("poster", 2, 2),
	})
	res, err := eng.AuthorRatio(ctx, "poster", 50)
	require.NoError(t, err)
	assert.Equal(0.5, res.Ratio)
	assert.Equal(4, res.Examined)
}

func TestAuthorRatioRespectsLookback(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	// 20 items exist but only the 10 most recent are examined
	eng := EngineTestFixture(StaticHistory{
		"poster": historyFixture("poster", 10, 10),
	})
	res, err := eng.AuthorRatio(ctx, "poster", 10)
	require.NoError(t, err)
	assert.Equal(10, res.Examined)
}
