package taxonecs

import "golang.org/x/sync/errgroup"

// DataAccessor is a pointer-like handle to one entity's record in a
// DataPool. The zero value reports Ok()==false, mirroring teishoku's
// GetComponent pattern of a (pointer, bool) pair collapsed into one type.
type DataAccessor[T any] struct {
	ptr *T
	ok  bool
}

// Ok reports whether the accessor addresses a real record.
func (a DataAccessor[T]) Ok() bool { return a.ok }

// Get dereferences the accessor. Panics if Ok() is false, matching this
// engine's convention that addressing a component that is not there is a
// programmer error, not a recoverable condition.
func (a DataAccessor[T]) Get() *T {
	if !a.ok {
		panic(ErrComponentMissing)
	}
	return a.ptr
}

// DataTaxonSlice exposes one taxon's dense (entities, values) arrays from a
// DataPool for position-parallel iteration.
type DataTaxonSlice[T any] struct {
	entities []Entity
	values   []T
}

func (s DataTaxonSlice[T]) Len() int            { return len(s.entities) }
func (s DataTaxonSlice[T]) Entity(i int) Entity { return s.entities[i] }
func (s DataTaxonSlice[T]) Value(i int) *T      { return &s.values[i] }

// FilterTaxonSlice exposes one taxon's dense entity list from a FilterPool,
// alongside each entity's interned local filter value id.
type FilterTaxonSlice struct {
	entities []Entity
	localIDs []int
}

func (s FilterTaxonSlice) Len() int            { return len(s.entities) }
func (s FilterTaxonSlice) Entity(i int) Entity { return s.entities[i] }
func (s FilterTaxonSlice) LocalID(i int) int   { return s.localIDs[i] }

// ListAccessor is a pointer-like handle to one entity's growable list in a
// ListPool, addressing its backing NestedList outer slot directly.
type ListAccessor[T any] struct {
	list  *NestedList[T]
	outer int
	ok    bool
}

// Ok reports whether the accessor addresses a real list.
func (a ListAccessor[T]) Ok() bool { return a.ok }

// Len returns the number of elements currently in the list.
func (a ListAccessor[T]) Len() int {
	if !a.ok {
		return 0
	}
	return a.list.Len(a.outer)
}

// At returns the element at position i.
func (a ListAccessor[T]) At(i int) T {
	if !a.ok {
		panic(ErrComponentMissing)
	}
	return a.list.Get(a.outer, i)
}

// Set overwrites the element at position i.
func (a ListAccessor[T]) Set(i int, v T) {
	if !a.ok {
		panic(ErrComponentMissing)
	}
	a.list.Set(a.outer, i, v)
}

// Append adds v to the end of the list.
func (a ListAccessor[T]) Append(v T) {
	if !a.ok {
		panic(ErrComponentMissing)
	}
	a.list.Append(a.outer, v)
}

// RemoveAtSwapBack removes the element at position i, swap-back style.
func (a ListAccessor[T]) RemoveAtSwapBack(i int) {
	if !a.ok {
		panic(ErrComponentMissing)
	}
	a.list.RemoveAtSwapBack(a.outer, i)
}

// ParallelForEach runs fn over [0, n) split into at most workers contiguous
// chunks (one worker if workers <= 0, never more than n), grounded on the host-launched worker pool idiom in DangerosoDavo-ecs's
// scheduler, wired here through x/sync/errgroup per SPEC_FULL.md's ambient
// stack rather than a hand-rolled WaitGroup.
func ParallelForEach(n int, workers int, fn func(i int)) error {
	if n == 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= n {
			break
		}
		if end > n {
			end = n
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				fn(i)
			}
			return nil
		})
	}
	return g.Wait()
}
