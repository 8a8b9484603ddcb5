package reconcile

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
)

type friend struct {
	id        int64
	confirmed bool
}

func friendKey(f friend) int64 { return f.id }

func confirmationChanged(before, desired friend) bool {
	return before.confirmed != desired.confirmed
}

func TestDiff_ExistenceSets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		before     []int
		desired    []int
		wantAdd    []int
		wantRemove []int
		wantKeep   []int
	}{
		{name: "both_empty"},
		{name: "create", desired: []int{3, 1, 2}, wantAdd: []int{1, 2, 3}},
		{name: "clear", before: []int{2, 1}, wantRemove: []int{1, 2}},
		{name: "unchanged", before: []int{1, 2}, desired: []int{2, 1}, wantKeep: []int{1, 2}},
		{
			name:       "mixed",
			before:     []int{1, 2, 4},
			desired:    []int{4, 3, 2},
			wantAdd:    []int{3},
			wantRemove: []int{1},
			wantKeep:   []int{2, 4},
		},
		{
			name:     "duplicates_collapse",
			before:   []int{5, 5},
			desired:  []int{5, 6, 6},
			wantAdd:  []int{6},
			wantKeep: []int{5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := Diff(tt.before, tt.desired, Value[int])
			if !slices.Equal(d.Add, tt.wantAdd) {
				t.Errorf("Add = %v, want %v", d.Add, tt.wantAdd)
			}
			if !slices.Equal(d.Remove, tt.wantRemove) {
				t.Errorf("Remove = %v, want %v", d.Remove, tt.wantRemove)
			}
			if !slices.Equal(d.Keep, tt.wantKeep) {
				t.Errorf("Keep = %v, want %v", d.Keep, tt.wantKeep)
			}
			if len(d.Update) != 0 {
				t.Errorf("Update = %v, want none for existence sets", d.Update)
			}
		})
	}
}

func TestDiffFunc_FriendshipConfirmation(t *testing.T) {
	t.Parallel()

	before := []friend{{id: 2, confirmed: false}}
	desired := []friend{{id: 2, confirmed: true}, {id: 3, confirmed: false}}

	d := DiffFunc(before, desired, friendKey, confirmationChanged)

	if want := []friend{{id: 3}}; !slices.Equal(d.Add, want) {
		t.Errorf("Add = %v, want %v", d.Add, want)
	}
	if len(d.Remove) != 0 {
		t.Errorf("Remove = %v, want empty", d.Remove)
	}
	if want := []friend{{id: 2, confirmed: true}}; !slices.Equal(d.Update, want) {
		t.Errorf("Update = %v, want %v", d.Update, want)
	}
	if want := []friend{{id: 2, confirmed: true}}; !slices.Equal(d.Keep, want) {
		t.Errorf("Keep = %v, want %v", d.Keep, want)
	}
}

func TestDiffFunc_UnchangedFlagIsNotUpdated(t *testing.T) {
	t.Parallel()

	before := []friend{{id: 7, confirmed: true}}
	d := DiffFunc(before, []friend{{id: 7, confirmed: true}}, friendKey, confirmationChanged)
	if !d.Empty() {
		t.Fatalf("expected empty delta, got %+v", d)
	}
}

// randomSet returns a duplicate free set drawn from [0, 20).
func randomSet(r *rand.Rand) []int {
	seen := map[int]bool{}
	var out []int
	for range r.IntN(12) {
		v := r.IntN(20)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func TestDiff_SetLaws(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(42, 7))
	for i := range 500 {
		before := randomSet(r)
		desired := randomSet(r)
		d := Diff(before, desired, Value[int])

		for _, v := range d.Add {
			if slices.Contains(before, v) {
				t.Fatalf("case %d: added %d already present in %v", i, v, before)
			}
		}
		for _, v := range d.Remove {
			if slices.Contains(desired, v) {
				t.Fatalf("case %d: removed %d still desired in %v", i, v, desired)
			}
		}

		// (before \ remove) ∪ add == desired
		var result []int
		for _, v := range before {
			if !slices.Contains(d.Remove, v) {
				result = append(result, v)
			}
		}
		result = append(result, d.Add...)
		slices.Sort(result)
		want := slices.Clone(desired)
		slices.Sort(want)
		if !slices.Equal(result, want) {
			t.Fatalf("case %d: closure gave %v, want %v", i, result, want)
		}

		// a second pass against the reconciled state is a no-op
		if again := Diff(result, desired, Value[int]); !again.Empty() {
			t.Fatalf("case %d: second diff not empty: %+v", i, again)
		}
	}
}

func TestDiff_Deterministic(t *testing.T) {
	t.Parallel()

	first := Diff([]int{9, 1, 5, 3}, []int{2, 8, 5, 4}, Value[int])
	for range 20 {
		next := Diff([]int{3, 5, 1, 9}, []int{4, 5, 8, 2}, Value[int])
		if !slices.Equal(first.Add, next.Add) || !slices.Equal(first.Remove, next.Remove) {
			t.Fatalf("diff depends on input order: %+v vs %+v", first, next)
		}
	}
}

func TestDelta_ApplyOrder(t *testing.T) {
	t.Parallel()

	d := DiffFunc(
		[]friend{{id: 1}, {id: 2}},
		[]friend{{id: 2, confirmed: true}, {id: 3}},
		friendKey, confirmationChanged,
	)

	var calls []string
	record := func(name string) func(context.Context, []friend) error {
		return func(_ context.Context, fs []friend) error {
			for _, f := range fs {
				calls = append(calls, fmt.Sprintf("%s:%d", name, f.id))
			}
			return nil
		}
	}

	err := d.Apply(context.Background(), Steps[friend]{
		Remove: record("remove"),
		Update: record("update"),
		Add:    record("add"),
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := []string{"remove:1", "update:2", "add:3"}
	if !slices.Equal(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestDelta_ApplyStopsOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	d := Diff([]int{1}, []int{2}, Value[int])

	added := false
	err := d.Apply(context.Background(), Steps[int]{
		Remove: func(context.Context, []int) error { return boom },
		Add: func(context.Context, []int) error {
			added = true
			return nil
		},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Apply error = %v, want %v", err, boom)
	}
	if added {
		t.Error("Add ran after Remove failed")
	}
}

func TestDelta_ApplySkipsEmptyAndNilSteps(t *testing.T) {
	t.Parallel()

	d := Diff([]int{1}, []int{1, 2}, Value[int])
	removeCalled := false
	err := d.Apply(context.Background(), Steps[int]{
		Remove: func(context.Context, []int) error {
			removeCalled = true
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if removeCalled {
		t.Error("Remove called with nothing to remove")
	}
}
