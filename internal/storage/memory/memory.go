// Package memory is the development fallback used when no database URL is
// configured. It mirrors the Postgres stores: approved-only public lists,
// newest first, pending on create, ErrNotFound on unknown ids.
//
// State lives in an explicit object handed to the store, so every test can
// build an isolated instance. Stores are NOT safe for concurrent mutation and
// nothing is persisted; never use them as a production backend.
package memory

import (
	"sort"
	"time"
)

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides time.Now for created/updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// newestFirst orders by created_at DESC, id DESC, the same order the SQL
// queries use.
func newestFirst[T any](items []T, createdAt func(T) time.Time, id func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := createdAt(items[i]), createdAt(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(items[i]) > id(items[j])
	})
}

func laterOf(prev, now time.Time) time.Time {
	if now.Before(prev) {
		return prev
	}
	return now
}

func strPtr(s string) *string {
	return &s
}
