package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/issuesync/internal/core/domain"
	"github.com/custodia-labs/issuesync/internal/core/ports/driving"
)

func reconcileEnv() map[string]string {
	return map[string]string{
		"NOTION_TOKEN":       "secret_token",
		"NOTION_DATABASE_ID": "db-1",
		"GITHUB_TOKEN":       "ghp_token",
		"GITHUB_REPOSITORY":  "octo/hello",
	}
}

func TestReconcileCmd_Use(t *testing.T) {
	assert.Equal(t, "reconcile", reconcileCmd.Use)
	assert.NotNil(t, reconcileCmd.Flags().Lookup(flagDryRun))
	assert.NotNil(t, reconcileCmd.Flags().Lookup(flagConcurrency))
}

func TestReconcileCmd_CreatesMissing(t *testing.T) {
	ct := setupCLITest(t, reconcileEnv())
	ct.service.result = &driving.DispatchResult{Report: &domain.ReconcileReport{
		Indexed: 2, Listed: 3, PullRequests: 1,
		Missing: []int{3},
		Created: []domain.CreatedPage{{Number: 3, PageID: "p3"}},
	}}

	out, err := execute("reconcile")

	require.NoError(t, err)
	assert.Contains(t, out, "Reconciling octo/hello...")
	assert.Contains(t, out, "(1 pull requests skipped)")
	assert.Contains(t, out, "Created 1 of 1 missing pages")
	assert.False(t, ct.options.DryRun)
	assert.Equal(t, domain.DefaultConcurrency, ct.settings.Concurrency)

	require.Len(t, ct.service.triggers, 1)
	assert.Equal(t, domain.EventWorkflowDispatch, ct.service.triggers[0].EventName)
	assert.Equal(t, domain.RepoRef{Owner: "octo", Name: "hello"}, ct.service.triggers[0].Repository)
}

func TestReconcileCmd_DryRun(t *testing.T) {
	ct := setupCLITest(t, reconcileEnv())
	ct.service.result = &driving.DispatchResult{Report: &domain.ReconcileReport{
		DryRun:  true,
		Missing: []int{2, 5},
	}}

	out, err := execute("reconcile", "--dry-run")

	require.NoError(t, err)
	assert.True(t, ct.options.DryRun)
	assert.Contains(t, out, "Missing 2 issues: #2, #5")
	assert.Contains(t, out, "Dry run: no pages created.")
}

func TestReconcileCmd_UpToDate(t *testing.T) {
	ct := setupCLITest(t, reconcileEnv())
	ct.service.result = &driving.DispatchResult{Report: &domain.ReconcileReport{Indexed: 4, Listed: 4}}

	out, err := execute("reconcile")

	require.NoError(t, err)
	assert.Contains(t, out, "Notion is up to date.")
}

func TestReconcileCmd_PartialFailure(t *testing.T) {
	ct := setupCLITest(t, reconcileEnv())
	ct.service.result = &driving.DispatchResult{Report: &domain.ReconcileReport{
		Missing: []int{1, 2},
		Created: []domain.CreatedPage{{Number: 1, PageID: "p1"}},
		Failed:  []domain.CreateFailure{{Number: 2, Err: errors.New("validation_error")}},
	}}
	ct.service.err = fmt.Errorf("%w: 1 of 2 pages failed", domain.ErrPartialSync)

	out, err := execute("reconcile")

	assert.ErrorIs(t, err, domain.ErrPartialSync)
	assert.Contains(t, out, "Created 1 of 2 missing pages")
	assert.Contains(t, out, "#2: validation_error")
}

func TestReconcileCmd_RequiresGitHubSettings(t *testing.T) {
	ct := setupCLITest(t, map[string]string{
		"NOTION_TOKEN":       "secret_token",
		"NOTION_DATABASE_ID": "db-1",
	})

	_, err := execute("reconcile")

	assert.ErrorIs(t, err, domain.ErrConfigMissing)
	assert.False(t, ct.built)
}

func TestReconcileCmd_RejectsZeroConcurrency(t *testing.T) {
	setupCLITest(t, reconcileEnv())

	_, err := execute("reconcile", "--concurrency", "0")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFormatNumbers(t *testing.T) {
	assert.Equal(t, "#1, #22, #333", formatNumbers([]int{1, 22, 333}))
	assert.Equal(t, "", formatNumbers(nil))
}
