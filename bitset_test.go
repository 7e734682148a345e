package taxonecs

import "testing"

func TestBitsetSetAndContains(t *testing.T) {
	var b bitset
	b.set(3)
	b.set(70)
	if !b.contains(3) || !b.contains(70) {
		t.Fatalf("expected bits 3 and 70 set")
	}
	if b.contains(4) {
		t.Fatalf("did not expect bit 4 set")
	}
}

func TestBitsetUnset(t *testing.T) {
	var b bitset
	b.set(5)
	b.unset(5)
	if b.contains(5) {
		t.Fatalf("expected bit 5 cleared")
	}
}

func TestBitsetSupersetOf(t *testing.T) {
	var a, sub bitset
	a.set(1)
	a.set(2)
	a.set(100)
	sub.set(1)
	sub.set(100)
	if !a.supersetOf(sub) {
		t.Fatalf("expected a to be a superset of sub")
	}
	sub.set(3)
	if a.supersetOf(sub) {
		t.Fatalf("did not expect a to be a superset once sub gained bit 3")
	}
}

func TestBitsetUnionAndEqual(t *testing.T) {
	var a, b bitset
	a.set(1)
	b.set(65)
	u := a.union(b)
	if !u.contains(1) || !u.contains(65) {
		t.Fatalf("expected union to contain both bits")
	}
	if !u.equal(u.clone()) {
		t.Fatalf("expected a clone to be equal")
	}
}

func TestBitsetIntersects(t *testing.T) {
	var a, b bitset
	a.set(10)
	b.set(20)
	if a.intersects(b) {
		t.Fatalf("did not expect disjoint bitsets to intersect")
	}
	b.set(10)
	if !a.intersects(b) {
		t.Fatalf("expected overlapping bitsets to intersect")
	}
}

func TestBitsetKeyStableAcrossEquivalentSets(t *testing.T) {
	var a, b bitset
	a.set(5)
	a.set(200)
	b.set(200)
	b.set(5)
	if a.key() != b.key() {
		t.Fatalf("expected identical bit patterns to produce identical keys")
	}
}

func TestBitsetForEach(t *testing.T) {
	var b bitset
	b.set(0)
	b.set(63)
	b.set(64)
	var got []int
	b.forEach(func(bit int) { got = append(got, bit) })
	want := []int{0, 63, 64}
	if len(got) != len(want) {
		t.Fatalf("expected %d bits, got %d", len(want), len(got))
	}
	for i, bit := range want {
		if got[i] != bit {
			t.Errorf("expected bit %d at position %d, got %d", bit, i, got[i])
		}
	}
}
