package taxonecs

// NestedList is a dense array of owned dynamic arrays, addressed by
// (outer, inner). It backs ListPool[T]'s per-taxon storage: each taxon owns
// one NestedList, and each outer slot holds one entity's variable-length
// element list, position-parallel to that taxon's entity_map.
type NestedList[T any] struct {
	outer [][]T
}

// NewNestedList creates an empty NestedList.
func NewNestedList[T any]() *NestedList[T] {
	return &NestedList[T]{}
}

// NewOuter appends a new, empty inner list with the given initial capacity
// and returns its outer index.
func (n *NestedList[T]) NewOuter(initialCapacity int) int {
	if initialCapacity < 0 {
		initialCapacity = 0
	}
	idx := len(n.outer)
	n.outer = append(n.outer, make([]T, 0, initialCapacity))
	return idx
}

// Len returns the element count of the inner list at outer.
func (n *NestedList[T]) Len(outer int) int { return len(n.outer[outer]) }

// Get returns the element at (outer, inner).
func (n *NestedList[T]) Get(outer, inner int) T { return n.outer[outer][inner] }

// Set overwrites the element at (outer, inner).
func (n *NestedList[T]) Set(outer, inner int, v T) { n.outer[outer][inner] = v }

// Append grows the inner list at outer by one element.
func (n *NestedList[T]) Append(outer int, v T) {
	n.outer[outer] = append(n.outer[outer], v)
}

// RemoveAtSwapBack removes the element at (outer, inner), moving the inner
// list's last element into its place.
func (n *NestedList[T]) RemoveAtSwapBack(outer, inner int) {
	list := n.outer[outer]
	last := len(list) - 1
	list[inner] = list[last]
	n.outer[outer] = list[:last]
}

// Clear truncates the inner list at outer to zero length without releasing
// its backing array.
func (n *NestedList[T]) Clear(outer int) {
	n.outer[outer] = n.outer[outer][:0]
}

// CopyFrom appends a copy of src's inner list at srcOuter as a brand-new
// outer slot, element by element (used when instantiating a prototype).
func (n *NestedList[T]) CopyFrom(src *NestedList[T], srcOuter int) int {
	list := src.outer[srcOuter]
	idx := n.NewOuter(len(list))
	for _, v := range list {
		n.Append(idx, v)
	}
	return idx
}

// MoveOuter transfers ownership of the inner list at src to a new slot in
// dst without reallocating elements, then removes src's slot via swap-back.
// It returns the outer index the list now occupies in dst.
func (n *NestedList[T]) MoveOuter(dst *NestedList[T], src int) int {
	dstIdx := len(dst.outer)
	dst.outer = append(dst.outer, n.outer[src])
	last := len(n.outer) - 1
	if src != last {
		n.outer[src] = n.outer[last]
	}
	n.outer = n.outer[:last]
	return dstIdx
}
