package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Post is one feed item the crawler scans
type Post struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	SelfText string `json:"selftext"`
}

// Comment is one comment under a post
type Comment struct {
	Body string `json:"body"`
}

// Feed is the crawl collaborator boundary: something that yields posts for
// a named feed and comments for a post
type Feed interface {
	FetchPosts(ctx context.Context, feedName string, limit int) ([]Post, error)
	FetchComments(ctx context.Context, post Post, limit int) ([]Comment, error)
}

// RedditClient fetches posts and comments from Reddit's public JSON API
type RedditClient struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string
}

// NewRedditClient creates a client for the public Reddit API
func NewRedditClient() *RedditClient {
	return &RedditClient{
		HTTPClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL:   "https://www.reddit.com",
		UserAgent: "stockmentions/1.0",
	}
}

// redditListing is the envelope Reddit wraps every listing in
type redditListing struct {
	Data struct {
		Children []struct {
			Kind string          `json:"kind"`
			Data json.RawMessage `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// FetchPosts returns up to limit hot posts of the subreddit
func (c *RedditClient) FetchPosts(ctx context.Context, feedName string, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = 25
	}
	url := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", c.BaseURL, feedName, limit)

	var listing redditListing
	if err := c.getJSON(ctx, url, &listing); err != nil {
		return nil, err
	}

	var posts []Post
	for _, child := range listing.Data.Children {
		var post Post
		if err := json.Unmarshal(child.Data, &post); err != nil {
			continue
		}
		posts = append(posts, post)
	}
	LogDebug("Fetched %d posts from r/%s", len(posts), feedName)
	return posts, nil
}

// FetchComments returns up to limit comments of the post. Nested replies
// are not descended into; only the top-level comment listing is scanned.
func (c *RedditClient) FetchComments(ctx context.Context, post Post, limit int) ([]Comment, error) {
	if limit <= 0 {
		limit = 25
	}
	url := fmt.Sprintf("%s/comments/%s.json?limit=%d", c.BaseURL, post.ID, limit)

	// The comments endpoint returns two listings: the post itself, then
	// its comment tree
	var listings []redditListing
	if err := c.getJSON(ctx, url, &listings); err != nil {
		return nil, err
	}
	if len(listings) < 2 {
		return nil, nil
	}

	var comments []Comment
	for _, child := range listings[1].Data.Children {
		if child.Kind != "t1" {
			continue
		}
		var comment Comment
		if err := json.Unmarshal(child.Data, &comment); err != nil {
			continue
		}
		comments = append(comments, comment)
		if len(comments) >= limit {
			break
		}
	}
	return comments, nil
}

func (c *RedditClient) getJSON(ctx context.Context, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// Reddit rate limits default user agents aggressively
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach Reddit API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Reddit API returned status %d for %s", resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode Reddit API response: %w", err)
	}
	return nil
}
