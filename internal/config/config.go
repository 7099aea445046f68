// Package config turns viper state into one immutable Settings value at
// command start. Core packages receive Settings (or a slice of it)
// explicitly and never read configuration ambiently.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// LLM selects and parameterizes the model provider.
type LLM struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// Interpreter is one renderer command line. Args may use the {source}
// and {artifact} placeholders.
type Interpreter struct {
	Command string
	Args    []string
}

// GitTarget configures one git-backed publish destination. An empty
// RepoURL means the target is unconfigured and is skipped under "all".
type GitTarget struct {
	RepoURL string
	Token   string
	Branch  string
	Folder  string
}

// Publish holds the destination configuration shared by all targets.
type Publish struct {
	AuthorName   string
	AuthorEmail  string
	CommitPrefix string
	LocalDir     string
	GitHub       GitTarget
	Gitea        GitTarget
}

// Settings is the full process configuration.
type Settings struct {
	WorkspaceDir string
	LLM          LLM
	Program      Interpreter
	Markup       Interpreter
	Publish      Publish
}

// Load reads the current viper state into a Settings value. Secrets are
// resolved from the environment via the *_env keys.
func Load() (Settings, error) {
	workspace := viper.GetString("workspace.dir")
	if workspace == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Settings{}, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		workspace = filepath.Join(home, ".diagen", "workspace")
	}

	return Settings{
		WorkspaceDir: workspace,
		LLM: LLM{
			Provider: viper.GetString("llm.provider"),
			Model:    viper.GetString("llm.model"),
			APIKey:   envValue(viper.GetString("llm.api_key_env")),
			BaseURL:  viper.GetString("llm.base_url"),
		},
		Program: Interpreter{
			Command: viper.GetString("render.program.interpreter"),
			Args:    viper.GetStringSlice("render.program.args"),
		},
		Markup: Interpreter{
			Command: viper.GetString("render.markup.interpreter"),
			Args:    viper.GetStringSlice("render.markup.args"),
		},
		Publish: Publish{
			AuthorName:   viper.GetString("publish.author_name"),
			AuthorEmail:  viper.GetString("publish.author_email"),
			CommitPrefix: viper.GetString("publish.commit_prefix"),
			LocalDir:     viper.GetString("publish.local.dir"),
			GitHub:       gitTarget("publish.github"),
			Gitea:        gitTarget("publish.gitea"),
		},
	}, nil
}

func gitTarget(prefix string) GitTarget {
	return GitTarget{
		RepoURL: viper.GetString(prefix + ".repo_url"),
		Token:   envValue(viper.GetString(prefix + ".token_env")),
		Branch:  viper.GetString(prefix + ".branch"),
		Folder:  viper.GetString(prefix + ".folder"),
	}
}

func envValue(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
