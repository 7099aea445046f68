// Package publish writes the current diagram artifact to the configured
// targets: a local directory and git-backed remotes. Git publishes are
// idempotent: an unchanged working tree skips commit and push.
package publish

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pders01/diagen/internal/config"
	"github.com/pders01/diagen/internal/git"
	"github.com/pders01/diagen/internal/models"
)

var (
	ErrCloneFailed   = errors.New("failed to clone publish target")
	ErrPushFailed    = errors.New("failed to commit or push to publish target")
	ErrMissingConfig = errors.New("publish target is not configured")
)

const defaultBranch = "main"

// Publisher publishes artifacts according to one immutable configuration.
type Publisher struct {
	cfg config.Publish

	// now is swappable for tests that pin commit messages.
	now func() time.Time
}

// New creates a publisher from the publish configuration.
func New(cfg config.Publish) *Publisher {
	return &Publisher{cfg: cfg, now: time.Now}
}

// Publish writes the artifact to one target and reports the outcome.
// Committed is false only for the git no-diff no-op.
func (p *Publisher) Publish(d models.Diagram, artifact []byte, target models.TargetKind) (models.PublishResult, error) {
	switch target {
	case models.TargetLocal:
		return p.publishLocal(d, artifact)
	case models.TargetGitHub:
		return p.publishGit(d, artifact, target, p.cfg.GitHub)
	case models.TargetGitea:
		return p.publishGit(d, artifact, target, p.cfg.Gitea)
	default:
		return models.PublishResult{}, fmt.Errorf("unknown publish target %q", target)
	}
}

// PublishAll publishes to every configured target. Targets with missing
// configuration are skipped; the first hard failure from a configured
// target is surfaced along with the results collected so far.
func (p *Publisher) PublishAll(d models.Diagram, artifact []byte) ([]models.PublishResult, error) {
	targets := append([]models.TargetKind{models.TargetLocal}, models.GitTargets...)

	var results []models.PublishResult
	for _, target := range targets {
		res, err := p.Publish(d, artifact, target)
		if errors.Is(err, ErrMissingConfig) {
			continue
		}
		if err != nil {
			return results, fmt.Errorf("target %s: %w", target, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (p *Publisher) publishLocal(d models.Diagram, artifact []byte) (models.PublishResult, error) {
	if p.cfg.LocalDir == "" {
		return models.PublishResult{}, ErrMissingConfig
	}

	if err := os.MkdirAll(p.cfg.LocalDir, 0755); err != nil {
		return models.PublishResult{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(p.cfg.LocalDir, d.Name+"."+d.OutputKind.ArtifactExt())
	if err := os.WriteFile(path, artifact, 0644); err != nil {
		return models.PublishResult{}, fmt.Errorf("failed to write artifact: %w", err)
	}

	return models.PublishResult{Target: models.TargetLocal, Locator: path, Committed: true}, nil
}

func (p *Publisher) publishGit(d models.Diagram, artifact []byte, kind models.TargetKind, t config.GitTarget) (models.PublishResult, error) {
	if t.RepoURL == "" {
		return models.PublishResult{}, ErrMissingConfig
	}

	branch := t.Branch
	if branch == "" {
		branch = defaultBranch
	}

	cloneDir := filepath.Join(os.TempDir(), "diagen-publish-"+uuid.NewString())
	// A leftover directory at this path would poison the clone.
	os.RemoveAll(cloneDir)
	defer os.RemoveAll(cloneDir)

	if err := git.CloneBranch(remoteURL(kind, t), branch, cloneDir); err != nil {
		return models.PublishResult{}, fmt.Errorf("%w: %v", ErrCloneFailed, err)
	}

	if p.cfg.AuthorName != "" || p.cfg.AuthorEmail != "" {
		if err := git.SetUser(cloneDir, p.cfg.AuthorName, p.cfg.AuthorEmail); err != nil {
			return models.PublishResult{}, err
		}
	}

	file := d.Name + "." + d.OutputKind.ArtifactExt()
	relPath := file
	if t.Folder != "" {
		relPath = filepath.Join(t.Folder, file)
		if err := os.MkdirAll(filepath.Join(cloneDir, t.Folder), 0755); err != nil {
			return models.PublishResult{}, fmt.Errorf("failed to create target folder: %w", err)
		}
	}
	if err := os.WriteFile(filepath.Join(cloneDir, relPath), artifact, 0644); err != nil {
		return models.PublishResult{}, fmt.Errorf("failed to write artifact: %w", err)
	}

	if err := git.AddAll(cloneDir); err != nil {
		return models.PublishResult{}, err
	}

	locator := t.RepoURL + "/" + filepath.ToSlash(relPath)

	changed, err := git.HasStagedChanges(cloneDir)
	if err != nil {
		return models.PublishResult{}, err
	}
	if !changed {
		// Identical bytes already published: the designed no-op.
		return models.PublishResult{Target: kind, Locator: locator, Committed: false}, nil
	}

	message := fmt.Sprintf("%s%s (%s)", p.cfg.CommitPrefix, d.Title, p.now().UTC().Format(time.RFC3339))
	if err := git.Commit(cloneDir, message); err != nil {
		return models.PublishResult{}, fmt.Errorf("%w: %v", ErrPushFailed, err)
	}
	if err := git.Push(cloneDir, branch); err != nil {
		return models.PublishResult{}, fmt.Errorf("%w: %v", ErrPushFailed, err)
	}

	return models.PublishResult{Target: kind, Locator: locator, Committed: true}, nil
}

// remoteURL embeds the access token into an HTTP(S) remote URL. GitHub
// accepts the token as the username; gitea wants the oauth2 basic-auth
// form. Non-URL remotes (local paths in tests) pass through untouched.
func remoteURL(kind models.TargetKind, t config.GitTarget) string {
	if t.Token == "" {
		return t.RepoURL
	}

	u, err := url.Parse(t.RepoURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return t.RepoURL
	}

	if kind == models.TargetGitea {
		u.User = url.UserPassword("oauth2", t.Token)
	} else {
		u.User = url.User(t.Token)
	}
	return u.String()
}
