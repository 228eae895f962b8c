package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ActionPublished is the only release action the relay reacts to. GitHub
// also delivers created/edited/deleted/prereleased actions on the same hook.
const ActionPublished = "published"

// ReleaseEvent is the subset of a GitHub release webhook payload the relay
// cares about. It is decoded once per request and never mutated.
type ReleaseEvent struct {
	Action     string     `json:"action"`
	Repository Repository `json:"repository"`
	Release    Release    `json:"release"`
	Sender     Account    `json:"sender"`
}

// Repository identifies the repository the release belongs to
type Repository struct {
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
}

// Release holds the published release metadata
type Release struct {
	ID          int64  `json:"id"`
	TagName     string `json:"tag_name"`
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	PublishedAt string `json:"published_at"`
	Body        string `json:"body"`
}

// Account represents the user who triggered the event
type Account struct {
	Login   string `json:"login"`
	HTMLURL string `json:"html_url"`
}

// IsPublished reports whether the event is a release publication
func (e *ReleaseEvent) IsPublished() bool {
	return e.Action == ActionPublished
}

// ReleaseRef identifies a release for API lookup. ID takes precedence over
// Tag when both are set.
type ReleaseRef struct {
	Owner string
	Repo  string
	ID    int64
	Tag   string
}

// ReleaseRef builds an API lookup reference from the event. The asset list
// embedded in the webhook payload is intentionally ignored; it may not yet
// reflect uploads that finished after the release was published.
func (e *ReleaseEvent) ReleaseRef() (ReleaseRef, error) {
	owner, repo, ok := strings.Cut(e.Repository.FullName, "/")
	if !ok || owner == "" || repo == "" {
		return ReleaseRef{}, goerr.New("invalid repository full name",
			goerr.V("full_name", e.Repository.FullName))
	}

	return ReleaseRef{
		Owner: owner,
		Repo:  repo,
		ID:    e.Release.ID,
		Tag:   e.Release.TagName,
	}, nil
}
