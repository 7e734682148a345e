package taxonecs

import "testing"

func TestNestedListAppendAndGet(t *testing.T) {
	n := NewNestedList[int]()
	outer := n.NewOuter(0)
	n.Append(outer, 1)
	n.Append(outer, 2)
	n.Append(outer, 3)
	if n.Len(outer) != 3 {
		t.Fatalf("expected len 3, got %d", n.Len(outer))
	}
	if n.Get(outer, 1) != 2 {
		t.Errorf("expected element 1 to be 2, got %d", n.Get(outer, 1))
	}
}

func TestNestedListRemoveAtSwapBack(t *testing.T) {
	n := NewNestedList[int]()
	outer := n.NewOuter(0)
	for _, v := range []int{10, 20, 30, 40} {
		n.Append(outer, v)
	}
	n.RemoveAtSwapBack(outer, 1)
	if n.Len(outer) != 3 {
		t.Fatalf("expected len 3 after removal, got %d", n.Len(outer))
	}
	if n.Get(outer, 1) != 40 {
		t.Errorf("expected swap-back to move last element into freed slot, got %d", n.Get(outer, 1))
	}
}

func TestNestedListCopyFrom(t *testing.T) {
	src := NewNestedList[int]()
	srcOuter := src.NewOuter(0)
	src.Append(srcOuter, 1)
	src.Append(srcOuter, 2)

	dst := NewNestedList[int]()
	dstOuter := dst.CopyFrom(src, srcOuter)
	if dst.Len(dstOuter) != 2 {
		t.Fatalf("expected copy to carry 2 elements, got %d", dst.Len(dstOuter))
	}
	dst.Append(dstOuter, 99)
	if src.Len(srcOuter) != 2 {
		t.Errorf("expected src list to be unaffected by appends to the copy")
	}
}

func TestNestedListMoveOuter(t *testing.T) {
	src := NewNestedList[int]()
	dst := NewNestedList[int]()
	a := src.NewOuter(0)
	src.Append(a, 1)
	src.Append(a, 2)
	b := src.NewOuter(0)
	src.Append(b, 100)

	newIdx := src.MoveOuter(dst, a)
	if dst.Len(newIdx) != 2 {
		t.Fatalf("expected moved list to carry 2 elements, got %d", dst.Len(newIdx))
	}
	if dst.Get(newIdx, 0) != 1 || dst.Get(newIdx, 1) != 2 {
		t.Errorf("expected moved elements to be preserved in order")
	}
	// a's old slot was swap-back filled by b's list.
	if src.Len(a) != 1 || src.Get(a, 0) != 100 {
		t.Errorf("expected src's vacated slot to hold b's former contents, got len=%d", src.Len(a))
	}
}
