package domain

import (
	"errors"
	"fmt"
)

// Defaults applied when a setting is left unset.
const (
	// DefaultConcurrency bounds concurrent page creates during reconciliation.
	DefaultConcurrency = 3

	// DefaultNotionRate is the sustained Notion request rate (requests/second).
	DefaultNotionRate = 3.0

	// DefaultListenAddr is where the webhook server listens.
	DefaultListenAddr = ":8080"
)

// Settings holds the runtime configuration of a sync run.
type Settings struct {
	// NotionToken is the Notion integration token.
	NotionToken string

	// NotionDatabaseID is the target database.
	NotionDatabaseID string

	// GitHubToken authenticates issue listing during reconciliation.
	GitHubToken string

	// Repository is the repository being mirrored.
	Repository RepoRef

	// Concurrency bounds concurrent page creates.
	Concurrency int

	// NotionRate is the proactive Notion request rate.
	NotionRate float64

	// WebhookSecret validates webhook deliveries in serve mode.
	WebhookSecret string

	// ListenAddr is the webhook server address.
	ListenAddr string

	Verbose bool
}

// DefaultSettings returns settings with all defaults applied.
func DefaultSettings() Settings {
	return Settings{
		Concurrency: DefaultConcurrency,
		NotionRate:  DefaultNotionRate,
		ListenAddr:  DefaultListenAddr,
	}
}

// ValidateNotion checks the settings every sync path needs.
func (s Settings) ValidateNotion() error {
	var errs []error
	if s.NotionToken == "" {
		errs = append(errs, fmt.Errorf("%w: notion token", ErrConfigMissing))
	}
	if s.NotionDatabaseID == "" {
		errs = append(errs, fmt.Errorf("%w: notion database id", ErrConfigMissing))
	}
	if s.NotionRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: notion rate must be positive, got %g", ErrInvalidInput, s.NotionRate))
	}
	return errors.Join(errs...)
}

// ValidateReconcile checks the settings full reconciliation needs.
func (s Settings) ValidateReconcile() error {
	errs := []error{s.ValidateNotion()}
	if s.GitHubToken == "" {
		errs = append(errs, fmt.Errorf("%w: github token", ErrConfigMissing))
	}
	if s.Repository.IsZero() {
		errs = append(errs, fmt.Errorf("%w: repository", ErrConfigMissing))
	}
	if s.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("%w: concurrency must be at least 1", ErrInvalidInput))
	}
	return errors.Join(errs...)
}
