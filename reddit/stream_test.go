package reddit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamPoll(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	// upstream listing, newest first; mutated between polls to simulate
	// new items arriving
	upstream := []*Item{
		{Name: "t1_b", Kind: ItemKindComment},
		{Name: "t1_a", Kind: ItemKindComment},
	}
	stream := &Stream{
		fetch: func(ctx context.Context) ([]*Item, error) {
			return upstream, nil
		},
		seen: make(map[string]bool),
	}

	// delivery is oldest first
	item, err := stream.Poll(ctx)
	require.NoError(t, err)
	assert.Equal("t1_a", item.Name)

	item, err = stream.Poll(ctx)
	require.NoError(t, err)
	assert.Equal("t1_b", item.Name)

	// nothing new upstream: empty poll, not termination
	item, err = stream.Poll(ctx)
	require.NoError(t, err)
	assert.Nil(item)

	// a new item shows up; already-seen ones are not re-delivered
	upstream = []*Item{
		{Name: "t1_c", Kind: ItemKindComment},
		{Name: "t1_b", Kind: ItemKindComment},
		{Name: "t1_a", Kind: ItemKindComment},
	}
	item, err = stream.Poll(ctx)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal("t1_c", item.Name)
}
