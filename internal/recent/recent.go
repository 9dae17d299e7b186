// Package recent keeps a small most-recent-first list of order ids per owner.
package recent

import (
	"context"
	"errors"
)

// MaxEntries bounds every list.
const MaxEntries = 30

// ErrInvalidID is returned when an id is not a positive integer.
var ErrInvalidID = errors.New("order id must be a positive integer")

// Repository stores one list per owner (the subject id of the caller).
type Repository interface {
	List(ctx context.Context, owner string) ([]int64, error)
	Add(ctx context.Context, owner string, id int64) ([]int64, error)
	Remove(ctx context.Context, owner string, id int64) ([]int64, error)
	Clear(ctx context.Context, owner string) error
}

// Normalize drops non-positive and repeated ids, keeping first occurrences,
// and truncates to MaxEntries.
func Normalize(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, min(len(ids), MaxEntries))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
		if len(out) == MaxEntries {
			break
		}
	}
	return out
}

// Push moves id to the front of ids. Non-positive ids leave the list as is.
func Push(ids []int64, id int64) []int64 {
	if id <= 0 {
		return Normalize(ids)
	}
	next := make([]int64, 0, len(ids)+1)
	next = append(next, id)
	next = append(next, ids...)
	return Normalize(next)
}

// Without returns ids minus every occurrence of id.
func Without(ids []int64, id int64) []int64 {
	next := make([]int64, 0, len(ids))
	for _, v := range ids {
		if v != id {
			next = append(next, v)
		}
	}
	return Normalize(next)
}
