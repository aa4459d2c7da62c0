package pullrequest

import "errors"

// Title names the check-run output and every annotation.
const Title = "ChkTeX Action"

// MaxAnnotationsPerRequest is the number of annotations GitHub accepts in
// one check-run update.
const MaxAnnotationsPerRequest = 50

// StatusRemoved is the changed-file status of deleted files.
const StatusRemoved = "removed"

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrCheckRunNotFound is returned when the ref has no check run to update.
	ErrCheckRunNotFound = errors.New("no check run found")

	// ErrNotPullRequest is returned for an event payload without a pull request number.
	ErrNotPullRequest = errors.New("event has no pull request number")

	// ErrInvalidRepository is returned for a repository not in owner/name form.
	ErrInvalidRepository = errors.New("invalid repository")
)

// ChangedFile is a file touched by a pull request or commit.
type ChangedFile struct {
	// Filename is the path relative to the repository root.
	Filename string

	// Status is one of added, modified, removed, renamed, copied, changed, unchanged.
	Status string

	// Patch is the unified diff hunks for the file. GitHub omits it for
	// binary and very large diffs.
	Patch string
}

// Paths returns the filenames of files that still exist after the change.
func Paths(files []ChangedFile) []string {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		if file.Status == StatusRemoved {
			continue
		}
		paths = append(paths, file.Filename)
	}
	return paths
}

// CheckRun identifies a check run to update.
type CheckRun struct {
	ID   int64
	Name string
}

// AnnotationLevel is the check-run annotation level.
type AnnotationLevel string

const (
	LevelNotice  AnnotationLevel = "notice"
	LevelWarning AnnotationLevel = "warning"
	LevelFailure AnnotationLevel = "failure"
)

// Annotation is one check-run annotation.
type Annotation struct {
	Path      string
	StartLine int
	EndLine   int
	Level     AnnotationLevel
	Title     string
	Message   string
}

// CheckRunOutput is the summary and annotations written to a check run.
type CheckRunOutput struct {
	Title       string
	Summary     string
	Annotations []Annotation
}

// ReviewEvent is the action a pull request review takes.
type ReviewEvent string

const (
	ReviewApprove        ReviewEvent = "APPROVE"
	ReviewRequestChanges ReviewEvent = "REQUEST_CHANGES"
	ReviewComment        ReviewEvent = "COMMENT"
)

// Review is a pull request review submission.
type Review struct {
	Event ReviewEvent
	Body  string
}
