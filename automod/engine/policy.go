package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/Thirdegree/YouTubeSpamBot/reddit"
)

// ErrPolicyNotFound indicates the config wiki page did not exist. A template
// has been created at that location; an operator must fill it in before the
// daemon can run.
var ErrPolicyNotFound = errors.New("policy config not found, template created")

const policySection = "youtube_spam_bot"

// PolicyTemplate is written to the wiki when no config page exists yet. It
// parses cleanly, but with no subreddits configured the daemon refuses to
// start, so the operator has to fill it in.
const PolicyTemplate = `[youtube_spam_bot]
subreddits=
target_ratio=0.33
lookback=50
user_whitelist=
`

// Policy is the operator-editable moderation policy. It is loaded once at
// startup and immutable for the lifetime of the process.
type Policy struct {
	// communities to watch
	Subreddits []string
	// self-promotion ratio above which (strictly) items are removed, in [0, 1]
	TargetRatio float64
	// number of recent author items to examine
	Lookback int
	// authors exempt from action
	UserWhitelist []string
}

func (p *Policy) IsWhitelisted(author string) bool {
	for _, u := range p.UserWhitelist {
		if u == author {
			return true
		}
	}
	return false
}

// ParsePolicy parses the wiki page content. The document is INI with
// python-configparser style indented continuation lines for the list values.
func ParsePolicy(content string) (*Policy, error) {
	f, err := ini.LoadSources(ini.LoadOptions{AllowPythonMultilineValues: true}, []byte(content))
	if err != nil {
		return nil, fmt.Errorf("parsing policy document: %w", err)
	}
	sec, err := f.GetSection(policySection)
	if err != nil {
		return nil, fmt.Errorf("policy document missing [%s] section: %w", policySection, err)
	}
	for _, key := range []string{"subreddits", "target_ratio", "lookback", "user_whitelist"} {
		if !sec.HasKey(key) {
			return nil, fmt.Errorf("policy document missing key %q", key)
		}
	}

	targetRatio, err := sec.Key("target_ratio").Float64()
	if err != nil {
		return nil, fmt.Errorf("policy target_ratio: %w", err)
	}
	if targetRatio < 0 || targetRatio > 1 {
		return nil, fmt.Errorf("policy target_ratio must be in [0, 1], got %v", targetRatio)
	}
	lookback, err := sec.Key("lookback").Int()
	if err != nil {
		return nil, fmt.Errorf("policy lookback: %w", err)
	}
	if lookback <= 0 {
		return nil, fmt.Errorf("policy lookback must be positive, got %d", lookback)
	}

	return &Policy{
		Subreddits:    splitList(sec.Key("subreddits").String()),
		TargetRatio:   targetRatio,
		Lookback:      lookback,
		UserWhitelist: splitList(sec.Key("user_whitelist").String()),
	}, nil
}

// newline-separated list; blank entries (including the usual empty first
// line) are discarded
func splitList(val string) []string {
	out := []string{}
	for _, line := range strings.Split(val, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// LoadPolicy fetches and parses the policy from the named wiki page. When
// the page does not exist it writes PolicyTemplate there and returns an
// error wrapping ErrPolicyNotFound; this is terminal for the current run.
func LoadPolicy(ctx context.Context, wiki reddit.WikiStore, subreddit, page string) (*Policy, error) {
	content, err := wiki.GetWikiPage(ctx, subreddit, page)
	if errors.Is(err, reddit.ErrNotFound) {
		if cerr := wiki.CreateWikiPage(ctx, subreddit, page, PolicyTemplate); cerr != nil {
			return nil, fmt.Errorf("creating config template at %s/wiki/%s: %w", subreddit, page, cerr)
		}
		return nil, fmt.Errorf("config wiki page %s/wiki/%s: %w", subreddit, page, ErrPolicyNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching config wiki page: %w", err)
	}
	return ParsePolicy(content)
}
