package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/issuesync/internal/adapters/driven/config/file"
	"github.com/custodia-labs/issuesync/internal/core/domain"
)

// Persistent flag names.
const (
	flagConfig      = "config"
	flagVerbose     = "verbose"
	flagNotionToken = "notion-token"
	flagNotionDB    = "notion-db"
	flagGitHubToken = "github-token"
	flagRepo        = "repo"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the effective settings",
	Long: `Prints the settings after merging the config file, environment and
flags. Tokens and secrets are masked.`,
	RunE: runSettingsShow,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

// loadSettings merges the config file, environment and flags into settings.
func loadSettings(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	path, _ := flags.GetString(flagConfig)
	store, err := file.NewConfigStore(path)
	if err != nil {
		return err
	}

	s, err := file.LoadSettings(store, getenv)
	if err != nil {
		return err
	}

	if err := applyFlags(cmd, &s); err != nil {
		return err
	}

	settings = s
	setupLogging(settings)
	return nil
}

// applyFlags overrides settings with flags set on the command line.
func applyFlags(cmd *cobra.Command, s *domain.Settings) error {
	flags := cmd.Flags()

	stringFlags := map[string]*string{
		flagNotionToken: &s.NotionToken,
		flagNotionDB:    &s.NotionDatabaseID,
		flagGitHubToken: &s.GitHubToken,
	}
	for name, dst := range stringFlags {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}

	if flags.Changed(flagRepo) {
		raw, _ := flags.GetString(flagRepo)
		repo, err := domain.ParseRepoRef(raw)
		if err != nil {
			return fmt.Errorf("--%s: %w", flagRepo, err)
		}
		s.Repository = repo
	}
	if flags.Changed(flagVerbose) {
		s.Verbose, _ = flags.GetBool(flagVerbose)
	}
	if f := flags.Lookup(flagConcurrency); f != nil && f.Changed {
		n, err := strconv.Atoi(f.Value.String())
		if err != nil {
			return fmt.Errorf("--%s: %w", flagConcurrency, err)
		}
		s.Concurrency = n
	}
	if f := flags.Lookup(flagListen); f != nil && f.Changed {
		s.ListenAddr = f.Value.String()
	}
	if f := flags.Lookup(flagSecret); f != nil && f.Changed {
		s.WebhookSecret = f.Value.String()
	}

	return nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Notion]")
	cmd.Printf("  Token: %s\n", maskSecret(settings.NotionToken))
	cmd.Printf("  Database: %s\n", orNotSet(settings.NotionDatabaseID))
	cmd.Printf("  Rate: %.1f req/s\n", settings.NotionRate)
	cmd.Println()

	cmd.Println("[GitHub]")
	cmd.Printf("  Token: %s\n", maskSecret(settings.GitHubToken))
	repo := "(not set)"
	if !settings.Repository.IsZero() {
		repo = settings.Repository.FullName()
	}
	cmd.Printf("  Repository: %s\n", repo)
	cmd.Println()

	cmd.Println("[Sync]")
	cmd.Printf("  Concurrency: %d\n", settings.Concurrency)
	cmd.Println()

	cmd.Println("[Webhook]")
	cmd.Printf("  Listen: %s\n", settings.ListenAddr)
	cmd.Printf("  Secret: %s\n", maskSecret(settings.WebhookSecret))
	cmd.Println()

	if err := settings.ValidateNotion(); err != nil {
		cmd.Printf("Status: incomplete (%v)\n", err)
		return nil
	}
	cmd.Println("Status: configured")
	return nil
}

func maskSecret(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
