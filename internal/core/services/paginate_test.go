package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedFetch serves pages keyed by cursor and records the cursors requested.
func pagedFetch(pages map[string][]int, next map[string]string, calls *[]string) func(context.Context, string) ([]int, string, error) {
	return func(_ context.Context, cursor string) ([]int, string, error) {
		*calls = append(*calls, cursor)
		return pages[cursor], next[cursor], nil
	}
}

func TestPaginate_FollowsCursors(t *testing.T) {
	var calls []string
	fetch := pagedFetch(
		map[string][]int{"": {1, 2}, "b": {3}, "c": {4, 5}},
		map[string]string{"": "b", "b": "c"},
		&calls,
	)

	var got []int
	for item, err := range paginate(context.Background(), fetch) {
		require.NoError(t, err)
		got = append(got, item)
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
	assert.Equal(t, []string{"", "b", "c"}, calls)
}

func TestPaginate_StopsEarlyWithoutFetchingMore(t *testing.T) {
	var calls []string
	fetch := pagedFetch(
		map[string][]int{"": {1, 2}, "b": {3}},
		map[string]string{"": "b"},
		&calls,
	)

	for item, err := range paginate(context.Background(), fetch) {
		require.NoError(t, err)
		if item == 1 {
			break
		}
	}

	assert.Equal(t, []string{""}, calls)
}

func TestPaginate_YieldsErrorOnce(t *testing.T) {
	boom := errors.New("boom")
	fetch := func(_ context.Context, page int) ([]int, int, error) {
		if page == 2 {
			return nil, 0, boom
		}
		return []int{10}, 2, nil
	}

	var items []int
	var errs []error
	for item, err := range paginate(context.Background(), fetch) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		items = append(items, item)
	}

	assert.Equal(t, []int{10}, items)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], boom)
}

func TestPaginate_DetectsStuckCursor(t *testing.T) {
	fetch := func(_ context.Context, cursor string) ([]int, string, error) {
		return []int{1}, "same", nil
	}

	var lastErr error
	count := 0
	for _, err := range paginate(context.Background(), fetch) {
		if err != nil {
			lastErr = err
			continue
		}
		count++
	}

	assert.Equal(t, 2, count)
	assert.ErrorIs(t, lastErr, errCursorStuck)
}

func TestPaginate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	fetch := func(_ context.Context, _ string) ([]int, string, error) {
		called = true
		return []int{1}, "", nil
	}

	var lastErr error
	for _, err := range paginate(ctx, fetch) {
		lastErr = err
	}

	assert.False(t, called)
	assert.ErrorIs(t, lastErr, context.Canceled)
}
