package file

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/issuesync/internal/core/domain"
)

// Keys read from the TOML file.
const (
	KeyNotionToken      = "notion.token"
	KeyNotionDatabaseID = "notion.database_id"
	KeyNotionRate       = "notion.rate"
	KeyGitHubToken      = "github.token"
	KeyRepository       = "github.repository"
	KeyConcurrency      = "sync.concurrency"
	KeyWebhookSecret    = "webhook.secret"
	KeyListenAddr       = "webhook.listen"
	KeyVerbose          = "log.verbose"
)

// Environment variables, in order of preference per setting.
var (
	EnvNotionToken      = []string{"INPUT_NOTION-TOKEN", "NOTION_TOKEN"}
	EnvNotionDatabaseID = []string{"INPUT_NOTION-DB", "NOTION_DATABASE_ID"}
	EnvGitHubToken      = []string{"INPUT_GITHUB-TOKEN", "GITHUB_TOKEN"}
	EnvRepository       = []string{"GITHUB_REPOSITORY"}
	EnvConcurrency      = []string{"INPUT_CONCURRENCY", "ISSUESYNC_CONCURRENCY"}
	EnvNotionRate       = []string{"ISSUESYNC_NOTION_RATE"}
	EnvWebhookSecret    = []string{"GITHUB_WEBHOOK_SECRET"}
	EnvListenAddr       = []string{"ISSUESYNC_LISTEN"}
	EnvVerbose          = []string{"RUNNER_DEBUG", "ISSUESYNC_VERBOSE"}
)

// LookupFunc returns the value of an environment variable.
// os.Getenv satisfies it.
type LookupFunc func(key string) string

// LoadSettings builds settings from defaults, the store and the
// environment, in that order. store may be nil.
func LoadSettings(store *ConfigStore, env LookupFunc) (domain.Settings, error) {
	s := domain.DefaultSettings()

	if store != nil {
		if err := applyStore(&s, store); err != nil {
			return s, err
		}
	}
	if env != nil {
		if err := applyEnv(&s, env); err != nil {
			return s, err
		}
	}

	return s, nil
}

func applyStore(s *domain.Settings, store *ConfigStore) error {
	setString(&s.NotionToken, store.GetString(KeyNotionToken))
	setString(&s.NotionDatabaseID, store.GetString(KeyNotionDatabaseID))
	setString(&s.GitHubToken, store.GetString(KeyGitHubToken))
	setString(&s.WebhookSecret, store.GetString(KeyWebhookSecret))
	setString(&s.ListenAddr, store.GetString(KeyListenAddr))

	if repo := store.GetString(KeyRepository); repo != "" {
		ref, err := domain.ParseRepoRef(repo)
		if err != nil {
			return fmt.Errorf("%s: %w", KeyRepository, err)
		}
		s.Repository = ref
	}
	if n := store.GetInt(KeyConcurrency); n != 0 {
		s.Concurrency = n
	}
	if r := store.GetFloat(KeyNotionRate); r != 0 {
		s.NotionRate = r
	}
	if store.GetBool(KeyVerbose) {
		s.Verbose = true
	}
	return nil
}

func applyEnv(s *domain.Settings, env LookupFunc) error {
	setString(&s.NotionToken, lookup(env, EnvNotionToken))
	setString(&s.NotionDatabaseID, lookup(env, EnvNotionDatabaseID))
	setString(&s.GitHubToken, lookup(env, EnvGitHubToken))
	setString(&s.WebhookSecret, lookup(env, EnvWebhookSecret))
	setString(&s.ListenAddr, lookup(env, EnvListenAddr))

	if repo := lookup(env, EnvRepository); repo != "" {
		ref, err := domain.ParseRepoRef(repo)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRepository[0], err)
		}
		s.Repository = ref
	}
	if v := lookup(env, EnvConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: concurrency %q is not an integer", domain.ErrInvalidInput, v)
		}
		s.Concurrency = n
	}
	if v := lookup(env, EnvNotionRate); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: notion rate %q is not a number", domain.ErrInvalidInput, v)
		}
		s.NotionRate = r
	}
	if v := lookup(env, EnvVerbose); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			s.Verbose = true
		}
	}
	return nil
}

// lookup returns the first non-empty variable among keys.
func lookup(env LookupFunc, keys []string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(env(k)); v != "" {
			return v
		}
	}
	return ""
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
