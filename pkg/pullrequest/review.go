package pullrequest

// Review bodies posted on the pull request.
const (
	issuesBody = "## ChkTeX Action\n\nThere are issues with your code. 😔 " +
		"Check the annotations under the **Files changed** tab."
	cleanBody = "## ChkTeX Action\n\nLGTM! 🚀"
)

// NewReview requests changes when there are diagnostics and approves otherwise.
func NewReview(hasIssues bool) Review {
	if hasIssues {
		return Review{Event: ReviewRequestChanges, Body: issuesBody}
	}
	return Review{Event: ReviewApprove, Body: cleanBody}
}
