package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"golang.org/x/time/rate"
)

const (
	defaultAPIHost  = "https://oauth.reddit.com"
	defaultAuthHost = "https://www.reddit.com"

	// a single listing request returns at most this many children
	maxListingLimit = 100
)

// Client is a minimal reddit API client covering the needs of the moderation
// daemon: new-item listings, author history, wiki pages, and mod actions.
//
// All requests go through a shared rate limiter; reddit allows 60 requests
// per minute for OAuth clients.
type Client struct {
	APIHost  string
	AuthHost string
	Client   *http.Client
	Limiter  *rate.Limiter
	Logger   *slog.Logger

	creds     *Credentials
	userAgent string

	token       string
	tokenExpiry time.Time
}

var _ WikiStore = (*Client)(nil)
var _ AuthorHistory = (*Client)(nil)
var _ Moderator = (*Client)(nil)

func NewClient(creds *Credentials, logger *slog.Logger) *Client {
	ua := creds.UserAgent
	if ua == "" {
		ua = fmt.Sprintf("youtube-spam-bot/%s", versioninfo.Short())
	}
	return &Client{
		APIHost:   defaultAPIHost,
		AuthHost:  defaultAuthHost,
		Client:    robustHTTPClient(logger),
		Limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
		Logger:    logger,
		creds:     creds,
		userAgent: ua,
	}
}

// ensureToken fetches (or re-fetches) an OAuth token via the password grant
// when none is held or the held one is close to expiry.
func (c *Client) ensureToken(ctx context.Context) error {
	if c.token != "" && time.Until(c.tokenExpiry) > time.Minute {
		return nil
	}
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.creds.Username)
	form.Set("password", c.creds.Password)

	req, err := http.NewRequestWithContext(ctx, "POST", c.AuthHost+"/api/v1/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.creds.ClientID, c.creds.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	if err := c.Limiter.Wait(ctx); err != nil {
		return err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("requesting access token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("access token request failed: %s", resp.Status)
	}
	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding access token response: %w", err)
	}
	if body.Error != "" || body.AccessToken == "" {
		return fmt.Errorf("access token request rejected: %q", body.Error)
	}
	c.token = body.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(body.ExpiresIn) * time.Second)
	c.Logger.Info("obtained access token", "expiresIn", body.ExpiresIn)
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, form url.Values) (*http.Response, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}
	u := c.APIHost + path
	if params != nil {
		u += "?" + params.Encode()
	}
	var bodyReader io.Reader
	if form != nil {
		bodyReader = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s: unexpected status %s", method, path, resp.Status)
	}
	return resp, nil
}

func (c *Client) getListing(ctx context.Context, path string, params url.Values) ([]*Item, string, error) {
	resp, err := c.do(ctx, "GET", path, params, nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	return decodeListing(resp.Body)
}

// Me returns the authenticated account's username.
func (c *Client) Me(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, "GET", "/api/v1/me", nil, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding me response: %w", err)
	}
	if body.Name == "" {
		return "", fmt.Errorf("me response missing account name")
	}
	return body.Name, nil
}

// NewSubmissions fetches the newest submissions across subreddits (newest first).
func (c *Client) NewSubmissions(ctx context.Context, subreddits []string) ([]*Item, error) {
	params := url.Values{"limit": []string{strconv.Itoa(maxListingLimit)}}
	items, _, err := c.getListing(ctx, fmt.Sprintf("/r/%s/new", strings.Join(subreddits, "+")), params)
	return items, err
}

// NewComments fetches the newest comments across subreddits (newest first).
func (c *Client) NewComments(ctx context.Context, subreddits []string) ([]*Item, error) {
	params := url.Values{"limit": []string{strconv.Itoa(maxListingLimit)}}
	items, _, err := c.getListing(ctx, fmt.Sprintf("/r/%s/comments", strings.Join(subreddits, "+")), params)
	return items, err
}

// RecentItems returns up to limit of the author's most recent items, newest
// first, paging through listings as needed.
func (c *Client) RecentItems(ctx context.Context, author string, limit int) ([]*Item, error) {
	var out []*Item
	after := ""
	for len(out) < limit {
		want := limit - len(out)
		if want > maxListingLimit {
			want = maxListingLimit
		}
		params := url.Values{
			"limit": []string{strconv.Itoa(want)},
			"sort":  []string{"new"},
		}
		if after != "" {
			params.Set("after", after)
		}
		items, next, err := c.getListing(ctx, fmt.Sprintf("/user/%s/overview", author), params)
		if err != nil {
			return nil, fmt.Errorf("fetching history for %s: %w", author, err)
		}
		out = append(out, items...)
		if next == "" || len(items) == 0 {
			break
		}
		after = next
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetWikiPage returns the markdown content of a subreddit wiki page,
// wrapping ErrNotFound when the page does not exist.
func (c *Client) GetWikiPage(ctx context.Context, subreddit, page string) (string, error) {
	resp, err := c.do(ctx, "GET", fmt.Sprintf("/r/%s/wiki/%s", subreddit, page), nil, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	var env thing
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", fmt.Errorf("decoding wiki page: %w", err)
	}
	var data struct {
		ContentMD string `json:"content_md"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return "", fmt.Errorf("decoding wiki page data: %w", err)
	}
	return data.ContentMD, nil
}

// CreateWikiPage writes content to a subreddit wiki page, creating it if absent.
func (c *Client) CreateWikiPage(ctx context.Context, subreddit, page, content string) error {
	form := url.Values{}
	form.Set("page", page)
	form.Set("content", content)
	form.Set("reason", "bootstrap config template")
	resp, err := c.do(ctx, "POST", fmt.Sprintf("/r/%s/api/wiki/edit", subreddit), nil, form)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Remove removes an item as a moderator action.
func (c *Client) Remove(ctx context.Context, item *Item) error {
	form := url.Values{}
	form.Set("id", item.Name)
	form.Set("spam", "false")
	resp, err := c.do(ctx, "POST", "/api/remove", nil, form)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// SendRemovalMessage attaches a removal explanation to an already-removed item.
func (c *Client) SendRemovalMessage(ctx context.Context, item *Item, message string) error {
	kind := "removal_comment_message"
	if item.Kind == ItemKindSubmission {
		kind = "removal_link_message"
	}
	payload, err := json.Marshal(map[string]interface{}{
		"item_id": []string{item.Name},
		"message": message,
		"title":   "removed for excessive self promotion",
		"type":    "public",
	})
	if err != nil {
		return err
	}
	form := url.Values{}
	form.Set("json", string(payload))
	resp, err := c.do(ctx, "POST", "/api/v1/modactions/"+kind, nil, form)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
