package taxonecs

import "testing"

func TestRegistryInternAndGet(t *testing.T) {
	r := NewRegistry[string]()
	idx := r.Intern("a")
	if r.Get(idx) != "a" {
		t.Fatalf("expected %q, got %q", "a", r.Get(idx))
	}
	if r.Len() != 1 {
		t.Fatalf("expected len 1, got %d", r.Len())
	}
}

func TestRegistryNamedLookup(t *testing.T) {
	r := NewRegistry[int]()
	r.RegisterNamed("answer", 42)
	v, err := r.Lookup("answer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Errorf("expected 42, got %d", v)
	}
}

func TestRegistryLookupMissWithoutLoader(t *testing.T) {
	r := NewRegistry[int]()
	if _, err := r.Lookup("missing"); err == nil {
		t.Fatalf("expected an error for an unknown name without a fallback loader")
	}
}

func TestRegistryFallbackLoaderCachesResult(t *testing.T) {
	r := NewRegistry[int]()
	calls := 0
	r.SetFallbackLoader(func(name string) (int, error) {
		calls++
		return len(name), nil
	})
	v1, err := r.Lookup("abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v1 != 3 {
		t.Errorf("expected 3, got %d", v1)
	}
	v2, err := r.Lookup("abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v2 != 3 || calls != 1 {
		t.Errorf("expected the loader to run once and the result to be cached, calls=%d", calls)
	}
}
