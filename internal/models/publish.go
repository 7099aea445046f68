package models

// TargetKind identifies a publish destination.
type TargetKind string

const (
	TargetLocal  TargetKind = "local"
	TargetGitHub TargetKind = "github"
	TargetGitea  TargetKind = "gitea"
)

// GitTargets lists the git-backed target kinds in publish order.
var GitTargets = []TargetKind{TargetGitHub, TargetGitea}

// PublishResult describes the outcome of publishing to one target.
type PublishResult struct {
	Target    TargetKind `json:"target"`
	Locator   string     `json:"locator"`
	Committed bool       `json:"committed"`
}
