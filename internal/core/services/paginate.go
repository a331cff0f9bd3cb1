package services

import (
	"context"
	"errors"
	"iter"
)

// errCursorStuck is returned when a listing hands back the cursor it was
// called with.
var errCursorStuck = errors.New("pagination cursor did not advance")

// paginate lazily walks a cursor-paginated listing. fetch returns the items
// at cursor and the cursor of the next page; the zero cursor denotes both
// the first page and the end of the listing. Pages are fetched on demand as
// the sequence is consumed and the first error is yielded once, ending it.
func paginate[T any, C comparable](
	ctx context.Context, fetch func(ctx context.Context, cursor C) ([]T, C, error),
) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var (
			cursor C
			zero   C
			empty  T
		)

		for {
			if err := ctx.Err(); err != nil {
				yield(empty, err)
				return
			}

			items, next, err := fetch(ctx, cursor)
			if err != nil {
				yield(empty, err)
				return
			}

			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}

			if next == zero {
				return
			}
			if next == cursor {
				yield(empty, errCursorStuck)
				return
			}
			cursor = next
		}
	}
}
