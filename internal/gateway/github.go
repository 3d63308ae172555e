// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/kei-arima/github-contrib-tracker/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching a user's
// contribution records from GitHub.
type Fetcher interface {
	FetchEvents(ctx context.Context, user string, since, until time.Time) ([]domain.ContributionRecord, error)
	FetchReviewedPRs(ctx context.Context, user string, since, until time.Time) ([]domain.ContributionRecord, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// reviewedPRQuery fetches pull requests the user has reviewed, with the
// review submission timestamps needed to date each review record.
type reviewedPRQuery struct {
	Search struct {
		PageInfo struct {
			HasNextPage bool
			EndCursor   githubv4.String
		}
		Edges []struct {
			Node struct {
				Typename    string `graphql:"__typename"`
				PullRequest struct {
					Repository struct {
						NameWithOwner string
					}
					Reviews struct {
						Nodes []struct {
							SubmittedAt githubv4.DateTime
						}
					} `graphql:"reviews(first: 100, states: [COMMENTED, APPROVED, CHANGES_REQUESTED])"`
				} `graphql:"... on PullRequest"`
			}
		}
	} `graphql:"search(query: $query, type: ISSUE, first: 100, after: $cursor)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

// FetchEvents pages the user's public event feed, newest first, and stops
// once events fall before the since cutoff. A run whose primary rate limit
// is exhausted mid-fetch returns the partial window rather than failing.
func (g *GitHubGateway) FetchEvents(ctx context.Context, user string, since, until time.Time) ([]domain.ContributionRecord, error) {
	g.logger.Println("[1/2] Fetching user events using REST API...")
	opts := &github.ListOptions{PerPage: 100}
	records := []domain.ContributionRecord{}
	for {
		events, resp, err := g.restClient.Activity.ListEventsPerformedByUser(ctx, user, false, opts)
		if err != nil {
			return nil, classify("failed to list user events", err)
		}
		for _, ev := range events {
			created := ev.GetCreatedAt().Time
			if created.Before(since) {
				// The feed is ordered newest first; everything from
				// here on is outside the window.
				g.logger.Println("Completed fetching user events.")
				return records, nil
			}
			if created.After(until) {
				continue
			}
			records = append(records, eventToRecord(ev))
		}
		if resp.NextPage == 0 {
			break
		}
		if resp.Rate.Limit > 0 && resp.Rate.Remaining == 0 {
			g.logger.Println("  Rate limit exhausted, returning partial window.")
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of events...")
	}
	g.logger.Println("Completed fetching user events.")
	return records, nil
}

// FetchReviewedPRs searches pull requests reviewed by the user and emits one
// review record per PR, dated at its latest review submission.
func (g *GitHubGateway) FetchReviewedPRs(ctx context.Context, user string, since, until time.Time) ([]domain.ContributionRecord, error) {
	g.logger.Println("[2/2] Fetching reviewed PR data...")
	const layout = "2006-01-02"
	query := fmt.Sprintf("reviewed-by:%s is:pr updated:%s..%s", user, since.Format(layout), until.Format(layout))

	variables := map[string]interface{}{
		"query":  githubv4.String(query),
		"cursor": (*githubv4.String)(nil),
	}

	records := []domain.ContributionRecord{}
	for {
		var q reviewedPRQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, classify("failed to execute GraphQL query for reviewed PRs", err)
		}

		for _, edge := range q.Search.Edges {
			prNode := edge.Node.PullRequest
			if edge.Node.Typename != "PullRequest" || len(prNode.Reviews.Nodes) == 0 {
				continue
			}

			lastReviewedAt := prNode.Reviews.Nodes[0].SubmittedAt.Time
			for _, review := range prNode.Reviews.Nodes[1:] {
				if review.SubmittedAt.After(lastReviewedAt) {
					lastReviewedAt = review.SubmittedAt.Time
				}
			}
			if lastReviewedAt.Before(since) || lastReviewedAt.After(until) {
				continue
			}

			repoName := prNode.Repository.NameWithOwner
			if repoName == "" {
				repoName = "unknown"
			}
			records = append(records, domain.ContributionRecord{
				Date:       domain.Day(lastReviewedAt),
				Kind:       domain.KindReview,
				RawType:    "PullRequestReviewEvent",
				Repository: repoName,
				Count:      1,
			})
		}

		if !q.Search.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(q.Search.PageInfo.EndCursor)
		g.logger.Println("  Fetching next page of reviewed pull requests...")
	}
	g.logger.Println("Completed fetching reviewed PR data.")
	return records, nil
}

// eventToRecord normalizes one loosely-typed API event into the fixed
// record shape. A PushEvent contributes its commit count; every other
// event counts as one.
func eventToRecord(ev *github.Event) domain.ContributionRecord {
	rawType := ev.GetType()
	repoName := ev.GetRepo().GetName()
	if repoName == "" {
		repoName = "unknown"
	}
	count := 1
	if rawType == "PushEvent" {
		if payload, err := ev.ParsePayload(); err == nil {
			if push, ok := payload.(*github.PushEvent); ok && push.GetSize() > 0 {
				count = push.GetSize()
			}
		}
	}
	return domain.ContributionRecord{
		Date:       domain.Day(ev.GetCreatedAt().Time),
		Kind:       domain.NormalizeKind(rawType),
		RawType:    rawType,
		Repository: repoName,
		Count:      count,
	}
}

// classify maps a client error onto the failure taxonomy so callers can
// distinguish credential problems from transport ones with errors.Is.
func classify(msg string, err error) error {
	var errResp *github.ErrorResponse
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w: %v", msg, domain.ErrFetchTimeout, err)
	case errors.As(err, &errResp) && errResp.Response != nil &&
		(errResp.Response.StatusCode == http.StatusUnauthorized || errResp.Response.StatusCode == http.StatusForbidden):
		return fmt.Errorf("%s: %w: %v", msg, domain.ErrAuthentication, err)
	default:
		return fmt.Errorf("%s: %w: %v", msg, domain.ErrNetwork, err)
	}
}
