package pullrequest

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v73/github"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com"

const pageSize = 100

// API is the subset of the GitHub REST API the action calls.
type API interface {
	// PullRequestFiles lists every file changed by the pull request.
	PullRequestFiles(ctx context.Context, number int) ([]ChangedFile, error)

	// CommitFiles lists every file changed by the commit.
	CommitFiles(ctx context.Context, sha string) ([]ChangedFile, error)

	// FindCheckRun returns the first check run for ref.
	FindCheckRun(ctx context.Context, ref string) (*CheckRun, error)

	// UpdateCheckRun writes output to the check run, splitting annotations
	// into batches GitHub accepts.
	UpdateCheckRun(ctx context.Context, run *CheckRun, output CheckRunOutput) error

	// CreateReview submits a review on the pull request.
	CreateReview(ctx context.Context, number int, review Review) error
}

// Client implements API with go-github.
type Client struct {
	gh    *github.Client
	owner string
	repo  string
}

// Compile-time interface check.
var _ API = (*Client)(nil)

// NewClient creates a client for repository ("owner/name") authenticated
// with token. An empty apiURL means DefaultAPIURL.
func NewClient(token, apiURL, repository string) (*Client, error) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRepository, repository)
	}

	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}
	base, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("parse API URL: %w", err)
	}

	gh := github.NewClient(nil).WithAuthToken(token)
	gh.BaseURL = base

	return &Client{gh: gh, owner: owner, repo: repo}, nil
}

// PullRequestFiles implements API.
func (c *Client) PullRequestFiles(ctx context.Context, number int) ([]ChangedFile, error) {
	var files []ChangedFile

	opts := &github.ListOptions{PerPage: pageSize}
	for {
		page, resp, err := c.gh.PullRequests.ListFiles(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("list files of pull request #%d: %w", number, err)
		}

		for _, file := range page {
			files = append(files, ChangedFile{
				Filename: file.GetFilename(),
				Status:   file.GetStatus(),
				Patch:    file.GetPatch(),
			})
		}

		if resp.NextPage == 0 {
			return files, nil
		}
		opts.Page = resp.NextPage
	}
}

// CommitFiles implements API.
func (c *Client) CommitFiles(ctx context.Context, sha string) ([]ChangedFile, error) {
	var files []ChangedFile

	opts := &github.ListOptions{PerPage: pageSize}
	for {
		commit, resp, err := c.gh.Repositories.GetCommit(ctx, c.owner, c.repo, sha, opts)
		if err != nil {
			return nil, fmt.Errorf("get commit %s: %w", sha, err)
		}

		for _, file := range commit.Files {
			files = append(files, ChangedFile{
				Filename: file.GetFilename(),
				Status:   file.GetStatus(),
				Patch:    file.GetPatch(),
			})
		}

		if resp.NextPage == 0 {
			return files, nil
		}
		opts.Page = resp.NextPage
	}
}

// FindCheckRun implements API.
func (c *Client) FindCheckRun(ctx context.Context, ref string) (*CheckRun, error) {
	result, _, err := c.gh.Checks.ListCheckRunsForRef(ctx, c.owner, c.repo, ref, &github.ListCheckRunsOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("list check runs for %s: %w", ref, err)
	}

	if len(result.CheckRuns) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrCheckRunNotFound, ref)
	}

	run := result.CheckRuns[0]
	return &CheckRun{ID: run.GetID(), Name: run.GetName()}, nil
}

// UpdateCheckRun implements API. Annotations are sent in batches of
// MaxAnnotationsPerRequest; GitHub appends each batch to the run.
func (c *Client) UpdateCheckRun(ctx context.Context, run *CheckRun, output CheckRunOutput) error {
	for _, batch := range Batch(output.Annotations, MaxAnnotationsPerRequest) {
		opts := github.UpdateCheckRunOptions{
			Name: run.Name,
			Output: &github.CheckRunOutput{
				Title:       github.Ptr(output.Title),
				Summary:     github.Ptr(output.Summary),
				Annotations: toGitHubAnnotations(batch),
			},
		}

		if _, _, err := c.gh.Checks.UpdateCheckRun(ctx, c.owner, c.repo, run.ID, opts); err != nil {
			return fmt.Errorf("update check run %d: %w", run.ID, err)
		}
	}

	return nil
}

// CreateReview implements API.
func (c *Client) CreateReview(ctx context.Context, number int, review Review) error {
	req := &github.PullRequestReviewRequest{
		Body:  github.Ptr(review.Body),
		Event: github.Ptr(string(review.Event)),
	}

	if _, _, err := c.gh.PullRequests.CreateReview(ctx, c.owner, c.repo, number, req); err != nil {
		return fmt.Errorf("create review on pull request #%d: %w", number, err)
	}

	return nil
}

func toGitHubAnnotations(annotations []Annotation) []*github.CheckRunAnnotation {
	out := make([]*github.CheckRunAnnotation, 0, len(annotations))
	for _, annotation := range annotations {
		out = append(out, &github.CheckRunAnnotation{
			Path:            github.Ptr(annotation.Path),
			StartLine:       github.Ptr(annotation.StartLine),
			EndLine:         github.Ptr(annotation.EndLine),
			AnnotationLevel: github.Ptr(string(annotation.Level)),
			Title:           github.Ptr(annotation.Title),
			Message:         github.Ptr(annotation.Message),
		})
	}
	return out
}
