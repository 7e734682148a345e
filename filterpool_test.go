package taxonecs

import (
	"testing"

	"go.uber.org/zap"
)

type fpTestFaction string

func setupFilterPoolWorld(t *testing.T) (*World, *FilterPool[fpTestFaction]) {
	t.Helper()
	w := NewWorld(DefaultConfig(), zap.NewNop())
	faction := NewFilterPool[fpTestFaction](w)
	w.AddArchetype(nil, []ComponentType{faction.ComponentType()})
	w.Initialize()
	return w, faction
}

func TestFilterPoolInterningIsStable(t *testing.T) {
	_, faction := setupFilterPoolWorld(t)
	e1, e2 := Entity(1), Entity(2)
	faction.Add(e1, "empire")
	faction.Add(e2, "empire")

	id1, ok1 := faction.FilterLocalID(e1)
	id2, ok2 := faction.FilterLocalID(e2)
	if !ok1 || !ok2 {
		t.Fatalf("expected both entities to have a filter record")
	}
	if id1 != id2 {
		t.Errorf("expected identical values to intern to the same local id, got %d and %d", id1, id2)
	}
}

func TestFilterPoolReadAndSet(t *testing.T) {
	_, faction := setupFilterPoolWorld(t)
	e := Entity(1)
	faction.Add(e, "empire")
	if v, ok := faction.Read(e); !ok || v != "empire" {
		t.Fatalf("expected empire, got %q (ok=%v)", v, ok)
	}
	faction.Set(e, "rebellion")
	if v, ok := faction.Read(e); !ok || v != "rebellion" {
		t.Fatalf("expected rebellion after Set, got %q (ok=%v)", v, ok)
	}
}

func TestFilterPoolLocalIDForUnseenValue(t *testing.T) {
	_, faction := setupFilterPoolWorld(t)
	if _, ok := faction.LocalIDFor("nobody"); ok {
		t.Fatalf("expected LocalIDFor to report false for a never-seen value")
	}
}

func TestFilterPoolValueConstructsUnmatchableClauseForUnseenValue(t *testing.T) {
	_, faction := setupFilterPoolWorld(t)
	fv := Value(faction, fpTestFaction("ghost"))
	if _, ok := fv.localID(); ok {
		t.Fatalf("expected an unseen value's FilterValue to be unmatchable")
	}
}
