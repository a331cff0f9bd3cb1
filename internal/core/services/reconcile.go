package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/issuesync/internal/core/domain"
	"github.com/custodia-labs/issuesync/internal/core/ports/driven"
	"github.com/custodia-labs/issuesync/internal/core/ports/driving"
	"github.com/custodia-labs/issuesync/internal/logger"
)

// Ensure Reconciler implements the interface.
var _ driving.Reconciler = (*Reconciler)(nil)

// Reconciler creates Notion pages for repository issues that have none.
// It never updates or deletes existing pages.
type Reconciler struct {
	issues      driven.IssueSource
	pages       driven.PageStore
	index       *IndexBuilder
	mapper      *PropertyMapper
	concurrency int

	// Overridable in tests.
	now   func() time.Time
	runID func() string
}

// NewReconciler creates a reconciler. concurrency bounds the number of
// page creates in flight; values below 1 fall back to
// domain.DefaultConcurrency.
func NewReconciler(
	issues driven.IssueSource,
	pages driven.PageStore,
	mapper *PropertyMapper,
	concurrency int,
) *Reconciler {
	if concurrency < 1 {
		concurrency = domain.DefaultConcurrency
	}
	return &Reconciler{
		issues:      issues,
		pages:       pages,
		index:       NewIndexBuilder(pages),
		mapper:      mapper,
		concurrency: concurrency,
		now:         time.Now,
		runID:       uuid.NewString,
	}
}

// Issues returns every issue of the repository, open and closed, as a lazy
// sequence. Pull requests are included and flagged.
func (r *Reconciler) Issues(ctx context.Context, repo domain.RepoRef) iter.Seq2[domain.IssueRecord, error] {
	return paginate(ctx, func(ctx context.Context, page int) ([]domain.IssueRecord, int, error) {
		batch, err := r.issues.ListIssues(ctx, repo, page)
		if err != nil {
			return nil, 0, fmt.Errorf("list issues page %d: %w", page, err)
		}
		return batch.Issues, batch.NextPage, nil
	})
}

// Reconcile builds the page index, lists the repository's issues and
// creates a page for every issue whose number is not indexed.
//
// Creates run concurrently up to the configured bound and a failed create
// does not stop its siblings. When any create fails the report lists the
// failures and the returned error wraps domain.ErrPartialSync. Pages that
// were created stay created; the next run skips them.
func (r *Reconciler) Reconcile(
	ctx context.Context, repo domain.RepoRef, opts driving.ReconcileOptions,
) (*domain.ReconcileReport, error) {
	report := &domain.ReconcileReport{
		RunID:      r.runID(),
		Repository: repo,
		DryRun:     opts.DryRun,
		StartedAt:  r.now(),
	}
	defer func() { report.FinishedAt = r.now() }()

	logger.Section("Reconcile " + repo.FullName())
	logger.Info("[%s] Building page index", report.RunID)

	index, err := r.index.Build(ctx)
	if err != nil {
		return report, fmt.Errorf("build index: %w", err)
	}
	report.Indexed = len(index)

	missing, err := r.collectMissing(ctx, repo, index, report)
	if err != nil {
		return report, err
	}

	logger.Info("[%s] %d pages indexed, %d issues listed, %d pull requests skipped, %d missing",
		report.RunID, report.Indexed, report.Listed, report.PullRequests, len(missing))

	if opts.DryRun || len(missing) == 0 {
		return report, nil
	}

	r.createAll(ctx, missing, report)

	if !report.Succeeded() {
		errs := make([]error, 0, len(report.Failed))
		for _, f := range report.Failed {
			errs = append(errs, fmt.Errorf("issue #%d: %w", f.Number, f.Err))
		}
		return report, fmt.Errorf("%w: %d of %d pages failed: %w",
			domain.ErrPartialSync, len(report.Failed), len(missing), errors.Join(errs...))
	}

	return report, nil
}

// collectMissing lists the repository and returns the issues absent from
// the index, pull requests excluded. An issue number seen twice in the
// listing is only returned once.
func (r *Reconciler) collectMissing(
	ctx context.Context, repo domain.RepoRef, index domain.IssuePageIndex, report *domain.ReconcileReport,
) ([]domain.IssueRecord, error) {
	var missing []domain.IssueRecord
	seen := make(map[int]struct{})

	for issue, err := range r.Issues(ctx, repo) {
		if err != nil {
			return nil, err
		}
		if issue.PullRequest {
			report.PullRequests++
			continue
		}
		report.Listed++

		if index.Contains(issue.Number) {
			continue
		}
		if _, dup := seen[issue.Number]; dup {
			continue
		}
		seen[issue.Number] = struct{}{}

		missing = append(missing, issue)
		report.Missing = append(report.Missing, issue.Number)
	}

	return missing, nil
}

// createAll creates pages for the given issues with bounded concurrency,
// recording each result in the report. Results are sorted by issue number.
func (r *Reconciler) createAll(ctx context.Context, missing []domain.IssueRecord, report *domain.ReconcileReport) {
	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	g.SetLimit(r.concurrency)

	for _, issue := range missing {
		g.Go(func() error {
			pageID, err := r.create(ctx, issue)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Error("[%s] Create page for issue #%d: %v", report.RunID, issue.Number, err)
				report.Failed = append(report.Failed, domain.CreateFailure{
					Number: issue.Number,
					ID:     issue.ID,
					Err:    err,
				})
				return nil
			}
			logger.Debug("[%s] Created page %s for issue #%d", report.RunID, pageID, issue.Number)
			report.Created = append(report.Created, domain.CreatedPage{Number: issue.Number, PageID: pageID})
			return nil
		})
	}
	_ = g.Wait() // workers record failures instead of returning them

	slices.SortFunc(report.Created, func(a, b domain.CreatedPage) int { return cmp.Compare(a.Number, b.Number) })
	slices.SortFunc(report.Failed, func(a, b domain.CreateFailure) int { return cmp.Compare(a.Number, b.Number) })
}

func (r *Reconciler) create(ctx context.Context, issue domain.IssueRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return r.pages.CreatePage(ctx, r.mapper.Map(issue))
}
