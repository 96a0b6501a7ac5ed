package reddit

import (
	"encoding/json"
	"fmt"
	"io"
)

// reddit's generic kind/data envelope
type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type listingData struct {
	Children []thing `json:"children"`
	After    string  `json:"after"`
	Before   string  `json:"before"`
}

// union of the comment (t1) and link (t3) fields we care about
type itemData struct {
	Name          string  `json:"name"`
	Author        string  `json:"author"`
	Body          string  `json:"body"`
	SelfText      string  `json:"selftext"`
	URL           string  `json:"url"`
	IsSelf        bool    `json:"is_self"`
	Subreddit     string  `json:"subreddit"`
	Permalink     string  `json:"permalink"`
	ApprovedBy    *string `json:"approved_by"`
	RemovalReason *string `json:"removal_reason"`
}

func itemFromThing(t thing) (*Item, error) {
	var kind ItemKind
	switch t.Kind {
	case "t1":
		kind = ItemKindComment
	case "t3":
		kind = ItemKindSubmission
	default:
		return nil, nil
	}
	var d itemData
	if err := json.Unmarshal(t.Data, &d); err != nil {
		return nil, fmt.Errorf("decoding %s data: %w", t.Kind, err)
	}
	item := &Item{
		Name:      d.Name,
		Kind:      kind,
		Subreddit: d.Subreddit,
		Permalink: d.Permalink,
		Author:    d.Author,
		Body:      d.Body,
		SelfText:  d.SelfText,
		URL:       d.URL,
		IsSelf:    d.IsSelf,
	}
	// the API reports deleted accounts as the literal string "[deleted]"
	if d.Author == "[deleted]" {
		item.Author = ""
	}
	if d.ApprovedBy != nil {
		item.ApprovedBy = *d.ApprovedBy
	}
	if d.RemovalReason != nil {
		item.RemovalReason = *d.RemovalReason
	}
	return item, nil
}

// decodeListing parses a Listing response body into items, preserving the
// response order (newest first for /new listings). Envelope kinds other than
// t1/t3 are ignored.
func decodeListing(r io.Reader) ([]*Item, string, error) {
	var env thing
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, "", fmt.Errorf("decoding listing envelope: %w", err)
	}
	if env.Kind != "Listing" {
		return nil, "", fmt.Errorf("expected Listing envelope, got %q", env.Kind)
	}
	var ld listingData
	if err := json.Unmarshal(env.Data, &ld); err != nil {
		return nil, "", fmt.Errorf("decoding listing data: %w", err)
	}
	items := make([]*Item, 0, len(ld.Children))
	for _, child := range ld.Children {
		item, err := itemFromThing(child)
		if err != nil {
			return nil, "", err
		}
		if item != nil {
			items = append(items, item)
		}
	}
	return items, ld.After, nil
}
