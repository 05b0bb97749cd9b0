package internal

import (
	"context"
	"fmt"
)

// Progress is an immutable snapshot published after each processed post
type Progress struct {
	Percent float64
	Message string
}

// ProgressFunc receives progress snapshots. May be nil.
type ProgressFunc func(Progress)

// Crawler drives one bounded crawl: fetch the feed, extract mentions from
// every title, body, and comment, and persist the finished session.
type Crawler struct {
	cfg     CrawlerConfig
	catalog *Catalog
	feed    Feed
	store   *SessionStore
}

// NewCrawler assembles a crawler from its collaborators
func NewCrawler(cfg CrawlerConfig, catalog *Catalog, feed Feed, store *SessionStore) *Crawler {
	return &Crawler{cfg: cfg, catalog: catalog, feed: feed, store: store}
}

// Run executes one crawl and saves the session result. Cancellation is
// cooperative: the context is observed between posts, so a cancelled crawl
// still finishes the post in flight. Whatever was counted up to the stop is
// finalized and persisted.
func (c *Crawler) Run(ctx context.Context, progress ProgressFunc) (*SessionResult, error) {
	run := NewRun(c.cfg.Subreddit, c.catalog)
	LogInfo("Starting to crawl r/%s (session %s)", c.cfg.Subreddit, run.SessionID())

	posts, err := c.feed.FetchPosts(ctx, c.cfg.Subreddit, c.cfg.PostLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}

	cancelled := false
	for i, post := range posts {
		if err := ctx.Err(); err != nil {
			LogWarn("Crawl stopped after %d/%d posts: %v", i, len(posts), err)
			cancelled = true
			break
		}

		run.RecordText(post.Title)
		run.RecordText(post.SelfText)

		comments, err := c.feed.FetchComments(ctx, post, c.cfg.CommentLimit)
		if err != nil {
			// One post's broken comment batch never fails the crawl
			LogWarn("Error processing comments for post %s: %v", post.ID, err)
		}
		for _, comment := range comments {
			run.RecordText(comment.Body)
		}

		processed := i + 1
		if progress != nil {
			progress(Progress{
				Percent: float64(processed) / float64(len(posts)) * 100,
				Message: fmt.Sprintf("Processed %d/%d posts", processed, len(posts)),
			})
		}
		title := post.Title
		if len(title) > 50 {
			title = title[:50] + "..."
		}
		LogDebug("Processed post %d/%d: %s", processed, len(posts), title)
	}

	result := run.Finalize()
	LogInfo("Crawling completed. Found %d unique symbols, %d mentions",
		result.UniqueSymbols(), result.TotalMentions())

	if err := c.store.SaveResult(result); err != nil {
		return result, fmt.Errorf("save session result: %w", err)
	}
	if cancelled {
		return result, ctx.Err()
	}
	return result, nil
}

// PersistLog uploads the session's log file and removes the local copy on
// success
func (c *Crawler) PersistLog(sessionID string, sessionLog *SessionLog) error {
	if err := sessionLog.Close(); err != nil {
		return err
	}
	if err := c.store.SaveLog(sessionID, sessionLog.Path()); err != nil {
		return err
	}
	if err := sessionLog.Remove(); err != nil {
		LogWarn("Failed to remove local log %s: %v", sessionLog.Path(), err)
	}
	return nil
}
