package taxonecs

import (
	"testing"

	"go.uber.org/zap"
)

type lpTestInventorySlot int

func setupListPoolWorld(t *testing.T) (*World, *ListPool[lpTestInventorySlot]) {
	t.Helper()
	w := NewWorld(DefaultConfig(), zap.NewNop())
	inv := NewListPool[lpTestInventorySlot](w)
	w.AddArchetype([]ComponentType{inv.ComponentType()}, nil)
	w.Initialize()
	return w, inv
}

func TestListPoolAddAppendGet(t *testing.T) {
	_, inv := setupListPoolWorld(t)
	e := Entity(1)
	inv.Add(e, 0)
	acc := inv.Get(e)
	acc.Append(10)
	acc.Append(20)
	if acc.Len() != 2 {
		t.Fatalf("expected len 2, got %d", acc.Len())
	}
	if acc.At(0) != 10 || acc.At(1) != 20 {
		t.Errorf("expected [10 20], got [%d %d]", acc.At(0), acc.At(1))
	}
}

func TestListPoolUpdateTaxonPreservesElementsAndFixesSwapBack(t *testing.T) {
	w, inv := setupListPoolWorld(t)
	e1, e2 := Entity(1), Entity(2)
	inv.Add(e1, 0)
	inv.Get(e1).Append(1)
	inv.Get(e1).Append(2)
	inv.Add(e2, 0)
	inv.Get(e2).Append(99)

	const newTaxon TaxonID = 50
	inv.UpdateTaxon(e1, newTaxon)

	moved := inv.Get(e1)
	if moved.Len() != 2 || moved.At(0) != 1 || moved.At(1) != 2 {
		t.Fatalf("expected e1's list to survive the move intact, got len=%d", moved.Len())
	}
	// e2 should have been swap-filled into e1's old slot and still readable.
	still := inv.Get(e2)
	if still.Len() != 1 || still.At(0) != 99 {
		t.Fatalf("expected e2's list to remain intact after e1 moved out from under it, got len=%d", still.Len())
	}
	_ = w
}

func TestListPoolDestroyRemovesAccess(t *testing.T) {
	_, inv := setupListPoolWorld(t)
	e := Entity(1)
	inv.Add(e, 0)
	inv.Get(e).Append(1)
	inv.Destroy(e)
	if inv.HasComponent(e) {
		t.Fatalf("expected HasComponent false after Destroy")
	}
	if inv.Get(e).Ok() {
		t.Fatalf("expected Get to return a not-ok accessor after Destroy")
	}
}
