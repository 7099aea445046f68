package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pders01/diagen/internal/config"
	"github.com/pders01/diagen/internal/models"
	"github.com/pders01/diagen/internal/render"
	"github.com/pders01/diagen/internal/workspace"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "diagen",
	Short: "AI-assisted diagram generation and publishing",
	Long: `diagen turns a plain-text description into a rendered diagram:
  - a model call produces a diagram specification (JSON, often broken)
  - the response is recovered, sanitized, and staged in a workspace
  - an external interpreter renders the staged source
  - the artifact is published to local disk and git-backed remotes

The staged source can be hand-edited and re-rendered before publishing.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/diagen/config.toml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "diagen")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.model", "gpt-4o-mini")
	viper.SetDefault("llm.api_key_env", "OPENAI_API_KEY")
	viper.SetDefault("render.program.interpreter", "python3")
	viper.SetDefault("render.program.args", []string{"{source}"})
	viper.SetDefault("render.markup.interpreter", "mmdc")
	viper.SetDefault("render.markup.args", []string{"-i", "{source}", "-o", "{artifact}"})
	viper.SetDefault("publish.commit_prefix", "diagram: ")
	viper.SetDefault("publish.github.branch", "main")
	viper.SetDefault("publish.github.folder", "diagrams")
	viper.SetDefault("publish.github.token_env", "DIAGEN_GITHUB_TOKEN")
	viper.SetDefault("publish.gitea.branch", "main")
	viper.SetDefault("publish.gitea.folder", "diagrams")
	viper.SetDefault("publish.gitea.token_env", "DIAGEN_GITEA_TOKEN")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newStore builds the workspace store for the loaded settings.
func newStore(cfg config.Settings) *workspace.Store {
	renderers := map[models.OutputKind]*render.Renderer{
		models.KindProgram: {Interpreter: cfg.Program.Command, Args: cfg.Program.Args},
		models.KindMarkup:  {Interpreter: cfg.Markup.Command, Args: cfg.Markup.Args},
	}
	return workspace.New(cfg.WorkspaceDir, renderers)
}
