// Package pullrequest talks to the GitHub REST API on behalf of the action:
// it lists the files a pull request or push changed, turns diagnostics into
// check-run annotations and submits the pull request review.
package pullrequest
