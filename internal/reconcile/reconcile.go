// Package reconcile computes the minimal set of changes that turns a persisted
// association set into a desired one.
//
// Records are compared by an identity key. Records whose key appears in both
// inputs are kept; a caller supplied predicate may flag kept records whose
// non-key fields differ, which are then reported as updates. Diff never
// performs I/O; Delta.Apply only sequences the callbacks the caller passes in.
package reconcile

import (
	"cmp"
	"context"
	"maps"
	"slices"
)

// Delta is the outcome of a diff. Every slice is ordered by ascending key.
//
// Add and Update hold the desired version of a record, Remove holds the
// persisted one. Update is always a subset of Keep.
type Delta[R any] struct {
	Add    []R
	Remove []R
	Keep   []R
	Update []R
}

// Empty reports whether applying the delta would change nothing.
func (d Delta[R]) Empty() bool {
	return len(d.Add) == 0 && len(d.Remove) == 0 && len(d.Update) == 0
}

// Diff compares two pure existence sets.
func Diff[K cmp.Ordered, R any](before, desired []R, key func(R) K) Delta[R] {
	return DiffFunc(before, desired, key, nil)
}

// DiffFunc compares two sets whose records carry mutable non-key fields.
// changed is called with the persisted and the desired record for every key
// present on both sides; a nil changed never reports updates.
//
// When an input repeats a key the first occurrence wins.
func DiffFunc[K cmp.Ordered, R any](before, desired []R, key func(R) K, changed func(before, desired R) bool) Delta[R] {
	prev := index(before, key)
	next := index(desired, key)

	var d Delta[R]
	for _, k := range slices.Sorted(maps.Keys(prev)) {
		if _, ok := next[k]; !ok {
			d.Remove = append(d.Remove, prev[k])
		}
	}

	for _, k := range slices.Sorted(maps.Keys(next)) {
		want := next[k]
		have, ok := prev[k]
		if !ok {
			d.Add = append(d.Add, want)
			continue
		}

		d.Keep = append(d.Keep, want)
		if changed != nil && changed(have, want) {
			d.Update = append(d.Update, want)
		}
	}

	return d
}

// Value is the identity key function for sets of plain ordered values.
func Value[K cmp.Ordered](k K) K {
	return k
}

func index[K cmp.Ordered, R any](records []R, key func(R) K) map[K]R {
	m := make(map[K]R, len(records))
	for _, r := range records {
		k := key(r)
		if _, dup := m[k]; dup {
			continue
		}
		m[k] = r
	}
	return m
}

// Steps are the persistence callbacks for one association kind.
// A nil step is skipped, as is any step whose record list is empty.
type Steps[R any] struct {
	Remove func(ctx context.Context, records []R) error
	Update func(ctx context.Context, records []R) error
	Add    func(ctx context.Context, records []R) error
}

// Apply runs the steps in remove, update, add order and stops at the first error.
// Removing first means a key dropped and re-added never collides with a row
// that is still present.
func (d Delta[R]) Apply(ctx context.Context, s Steps[R]) error {
	phases := []struct {
		run     func(context.Context, []R) error
		records []R
	}{
		{s.Remove, d.Remove},
		{s.Update, d.Update},
		{s.Add, d.Add},
	}

	for _, p := range phases {
		if p.run == nil || len(p.records) == 0 {
			continue
		}
		if err := p.run(ctx, p.records); err != nil {
			return err
		}
	}

	return nil
}
