package pullrequest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/go-github/v73/github"

	"github.com/j2kun/chktex-action/pkg/fsutil"
)

// Event is the part of a pull_request webhook payload the action uses.
type Event struct {
	Number  int
	HeadRef string
	HeadSHA string
}

// ReadEvent reads the pull_request payload at path (GITHUB_EVENT_PATH).
func ReadEvent(ctx context.Context, path string) (*Event, error) {
	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read event payload: %w", err)
	}

	return ParseEvent(content)
}

// ParseEvent decodes a pull_request payload.
func ParseEvent(content []byte) (*Event, error) {
	var payload github.PullRequestEvent
	if err := json.Unmarshal(content, &payload); err != nil {
		return nil, fmt.Errorf("decode event payload: %w", err)
	}

	event := &Event{Number: payload.GetNumber()}
	if pr := payload.GetPullRequest(); pr != nil {
		if event.Number == 0 {
			event.Number = pr.GetNumber()
		}
		event.HeadRef = pr.GetHead().GetRef()
		event.HeadSHA = pr.GetHead().GetSHA()
	}

	if event.Number <= 0 {
		return nil, ErrNotPullRequest
	}

	return event, nil
}
