// Package upstream fetches user profiles from the LeetCode GraphQL API.
package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/SARVESHVARADKAR123/leetproxy/internal/calendar"
	"github.com/SARVESHVARADKAR123/leetproxy/internal/observability"
)

const (
	DefaultURL       = "https://leetcode.com/graphql"
	DefaultUserAgent = "LeetCode-API/1.0"

	maxBodyBytes = 4 << 20
)

// Fetcher fetches one user's profile. Errors are always *Error.
type Fetcher interface {
	FetchUser(ctx context.Context, username string) (*User, error)
}

type Client struct {
	URL       string
	UserAgent string
	HTTP      *http.Client
}

// NewClient returns a Client whose requests are bounded by timeout and traced
// with otelhttp.
func NewClient(url, userAgent string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		URL:       url,
		UserAgent: userAgent,
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// FetchUser issues a single getUserProfile query. It never retries.
func (c *Client) FetchUser(ctx context.Context, username string) (*User, error) {
	start := time.Now()
	u, err := c.fetch(ctx, username)

	observability.UpstreamRequestDuration.Observe(time.Since(start).Seconds())
	outcome := "ok"
	if err != nil {
		outcome = string(KindOf(err))
	}
	observability.UpstreamRequestsTotal.WithLabelValues(outcome).Inc()

	return u, err
}

func (c *Client) fetch(ctx context.Context, username string) (*User, error) {
	body, err := json.Marshal(graphQLRequest{
		Query:     profileQuery,
		Variables: map[string]any{"username": username},
	})
	if err != nil {
		return nil, newError(KindParse, "encode query", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, newError(KindNetwork, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Referer", "https://leetcode.com")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, newError(KindNetwork, "request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, newError(KindNetwork, "read response", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &Error{Kind: KindNotFound, StatusCode: resp.StatusCode, Msg: "user not found"}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &Error{Kind: KindStatus, StatusCode: resp.StatusCode, Msg: "unexpected response"}
	}

	var gr graphQLResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return nil, newError(KindParse, "decode response", err)
	}

	return toUser(&gr)
}

func toUser(gr *graphQLResponse) (*User, error) {
	if gr.Data == nil || gr.Data.MatchedUser == nil {
		msg := "user not found"
		if len(gr.Errors) > 0 && gr.Errors[0].Message != "" {
			msg = gr.Errors[0].Message
		}
		return nil, newError(KindNotFound, msg, nil)
	}

	mu := gr.Data.MatchedUser
	if mu.Username == "" {
		return nil, newError(KindNotFound, "user not found", nil)
	}

	u := &User{
		Username:    mu.Username,
		GitHubURL:   mu.GitHubURL,
		TwitterURL:  mu.TwitterURL,
		LinkedInURL: mu.LinkedInURL,
		Questions:   gr.Data.AllQuestionsCount,
		Calendar:    calendar.Calendar{},
	}
	if mu.Profile != nil {
		u.Profile = *mu.Profile
	}
	if mu.SubmitStats != nil {
		u.Solved = mu.SubmitStats.AcSubmissionNum
	}

	if mu.UserCalendar != nil && mu.UserCalendar.SubmissionCalendar != nil && *mu.UserCalendar.SubmissionCalendar != "" {
		if err := json.Unmarshal([]byte(*mu.UserCalendar.SubmissionCalendar), &u.Calendar); err != nil {
			return nil, newError(KindParse, fmt.Sprintf("decode submission calendar of %q", mu.Username), err)
		}
	}

	return u, nil
}
