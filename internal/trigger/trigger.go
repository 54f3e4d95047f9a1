// Package trigger classifies how a CI run was started.
package trigger

import "strings"

// Kind is the classification of a CI trigger event.
type Kind int

const (
	Unknown Kind = iota
	Push
	PullRequest
	Scheduled
	API
)

// kinds maps the event values reported by the supported CI systems.
// Travis reports "cron" for timer-started builds, GitHub Actions and
// GitLab report "schedule".
var kinds = map[string]Kind{
	"push":                Push,
	"pull_request":        PullRequest,
	"merge_request_event": PullRequest,
	"cron":                Scheduled,
	"schedule":            Scheduled,
	"api":                 API,
	"trigger":             API,
}

// Parse maps a CI event value to a Kind. Unrecognised values map to
// Unknown, which is never scheduled: a bad value must not invalidate
// a cache.
func Parse(v string) Kind {
	if k, ok := kinds[strings.ToLower(strings.TrimSpace(v))]; ok {
		return k
	}

	return Unknown
}

// IsScheduled reports whether the event value denotes a timer-started run.
func IsScheduled(v string) bool {
	return Parse(v) == Scheduled
}

func (k Kind) String() string {
	switch k {
	case Push:
		return "push"
	case PullRequest:
		return "pull_request"
	case Scheduled:
		return "scheduled"
	case API:
		return "api"
	default:
		return "unknown"
	}
}
