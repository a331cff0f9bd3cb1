package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/custodia-labs/issuesync/internal/core/domain"
	"github.com/custodia-labs/issuesync/internal/core/ports/driven"
)

// fakePageStore is an in-memory driven.PageStore. Created pages become
// visible to later queries, so successive runs observe each other.
type fakePageStore struct {
	mu sync.Mutex

	pages    []domain.PageRef
	pageSize int

	created []domain.PageProperties
	updated map[string]domain.PageProperties
	queries []string
	lookups []int64

	// createErr fails CreatePage for the given issue numbers.
	createErr map[int]error
	queryErr  error
	findErr   error
	updateErr error

	inFlight    int
	maxInFlight int
	block       chan struct{}
}

func newFakePageStore(pages ...domain.PageRef) *fakePageStore {
	return &fakePageStore{
		pages:     pages,
		pageSize:  2,
		updated:   make(map[string]domain.PageProperties),
		createErr: make(map[int]error),
	}
}

var _ driven.PageStore = (*fakePageStore)(nil)

func (s *fakePageStore) CreatePage(_ context.Context, props domain.PageProperties) (string, error) {
	s.mu.Lock()
	s.inFlight++
	s.maxInFlight = max(s.maxInFlight, s.inFlight)
	block := s.block
	s.mu.Unlock()

	if block != nil {
		<-block
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--

	number := int(props[domain.PropNumber].Number)
	if err := s.createErr[number]; err != nil {
		return "", err
	}

	id := fmt.Sprintf("page-%d", number)
	s.created = append(s.created, props)
	s.pages = append(s.pages, domain.PageRef{
		ID:         id,
		Number:     number,
		HasNumber:  true,
		IssueID:    int64(props[domain.PropID].Number),
		HasIssueID: true,
	})
	return id, nil
}

func (s *fakePageStore) UpdatePage(_ context.Context, pageID string, props domain.PageProperties) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated[pageID] = props
	return nil
}

func (s *fakePageStore) FindPageByIssueID(_ context.Context, issueID int64) (*domain.PageRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups = append(s.lookups, issueID)
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, p := range s.pages {
		if p.HasIssueID && p.IssueID == issueID {
			page := p
			return &page, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *fakePageStore) QueryPages(_ context.Context, cursor string) (*driven.PageBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, cursor)
	if s.queryErr != nil {
		return nil, s.queryErr
	}

	start := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil {
			return nil, errors.New("bad cursor")
		}
		start = n
	}
	end := min(start+s.pageSize, len(s.pages))

	batch := &driven.PageBatch{Pages: append([]domain.PageRef(nil), s.pages[start:end]...)}
	if end < len(s.pages) {
		batch.NextCursor = strconv.Itoa(end)
	}
	return batch, nil
}

func (s *fakePageStore) createdNumbers() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	numbers := make([]int, 0, len(s.created))
	for _, p := range s.created {
		numbers = append(numbers, int(p[domain.PropNumber].Number))
	}
	return numbers
}

// fakeIssueSource serves fixed pages of issues.
type fakeIssueSource struct {
	mu sync.Mutex

	pages    [][]domain.IssueRecord
	requests []int
	err      error
	// errOnPage fails the request for that page number.
	errOnPage int
}

var _ driven.IssueSource = (*fakeIssueSource)(nil)

func (s *fakeIssueSource) ListIssues(_ context.Context, _ domain.RepoRef, page int) (*driven.IssueBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, page)

	if page == 0 {
		page = 1
	}
	if s.err != nil && (s.errOnPage == 0 || s.errOnPage == page) {
		return nil, s.err
	}
	if page > len(s.pages) {
		return &driven.IssueBatch{}, nil
	}

	batch := &driven.IssueBatch{Issues: s.pages[page-1]}
	if page < len(s.pages) {
		batch.NextPage = page + 1
	}
	return batch, nil
}

func issue(number int, id int64) domain.IssueRecord {
	return domain.IssueRecord{
		Number:        number,
		ID:            id,
		Title:         fmt.Sprintf("Issue %d", number),
		State:         domain.IssueStateOpen,
		Author:        "alice",
		RepositoryURL: "https://api.github.com/repos/octo/hello",
	}
}

func pullRequest(number int, id int64) domain.IssueRecord {
	pr := issue(number, id)
	pr.PullRequest = true
	return pr
}

func indexedPage(id string, number int, issueID int64) domain.PageRef {
	return domain.PageRef{ID: id, Number: number, HasNumber: true, IssueID: issueID, HasIssueID: true}
}
