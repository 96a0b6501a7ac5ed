package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		s        string
		matched  bool
		category Category
	}{
		{
			s:        "https://www.youtube.com/channel/UC1234abcd/videos",
			matched:  true,
			category: CategoryChannel,
		},
		{
			s:        "check it out: YOUTUBE.COM/Channel/UC1234abcd",
			matched:  true,
			category: CategoryChannel,
		},
		{
			s:       "https://example.com/channels/abc123",
			matched: false,
		},
		{
			s:        "https://www.youtube.com/playlist?list=PLAXtmT5C5RCf9cWpPRU",
			matched:  true,
			category: CategoryPlaylist,
		},
		{
			// autoplay marker, not a shareable playlist
			s:       "https://www.youtube.com/playlist?list=videoseries&t=1",
			matched: false,
		},
		{
			s:        "https://www.youtube.com/user/somecreator?sub_confirmation=1",
			matched:  true,
			category: CategoryUsername,
		},
		{
			s:       "https://example.com/u/somecreator",
			matched: false,
		},
		{
			s:        "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			matched:  true,
			category: CategoryVideo,
		},
		{
			s:        "https://youtu.be/dQw4w9WgXcQ",
			matched:  true,
			category: CategoryVideo,
		},
		{
			s:        "https://www.youtube.com/embed/dQw4w9WgXcQ?rel=0",
			matched:  true,
			category: CategoryVideo,
		},
		{
			s:       "https://www.youtube.com/watch?vid=123",
			matched: false,
		},
		{
			s:       "i think youtube is neat",
			matched: false,
		},
		{
			s:       "",
			matched: false,
		},
	}

	for _, fix := range fixtures {
		match := Classify(fix.s)
		assert.Equal(fix.matched, match.Matched, fix.s)
		if fix.matched {
			assert.Equal(fix.category, match.Category, fix.s)
		}
	}
}

func TestClassifyMultipleShapes(t *testing.T) {
	assert := assert.New(t)

	// matches both the playlist and video detectors; any one match suffices
	assert.True(IsYouTube("https://www.youtube.com/watch?v=abc123&list=PLxyz789"))
}

func TestIsYouTube(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsYouTube("new video up! https://youtu.be/abc123 let me know what you think"))
	assert.False(IsYouTube("no links here"))
	assert.False(IsYouTube(""))
}
