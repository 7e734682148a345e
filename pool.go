package taxonecs

// Pool is the type-erased handle the World drives during reconciliation and
// archetype declaration. Each of DataPool[T], ListPool[T], and FilterPool[T]
// implements it; per SPEC_FULL.md §9 this is the "small virtual interface"
// standing in for the reference's reflection-driven prototype loader.
type Pool interface {
	// ComponentType returns the interned type this pool stores.
	ComponentType() ComponentType
	// Kind reports whether this pool is data, list, or filter kind.
	Kind() ComponentKind
	// HasComponent reports whether e currently has a record in this pool.
	HasComponent(e Entity) bool
	// UpdateTaxon migrates e's record (if any) to newTaxon.
	UpdateTaxon(e Entity, newTaxon TaxonID)
	// Destroy removes e's record, swap-back style, emitting a destruction
	// event if enabled. A no-op if e has no record.
	Destroy(e Entity)
	// FilterLocalID returns the pool-local interned id of e's current filter
	// value. Only meaningful for filter-kind pools; others always return
	// (0, false).
	FilterLocalID(e Entity) (int, bool)
	// InstantiateFrom copies the component record of src (a prototype) onto
	// dst, placing dst's record where any other direct attach lands it:
	// TaxonDefault for a live dst, TaxonPrototype for a prototype dst. A no-op
	// if src has no record in this pool.
	InstantiateFrom(src, dst Entity)
}

// poolBase is the bookkeeping shared by every pool kind: the entity→index map
// and the dense list of taxa this pool currently has storage for. Modeled on
// teishoku's entityRegistry/archetypeRegistry pairing, generalized from "one
// big archetype-owned chunk" to "one map per pool, keyed by taxon."
type poolBase struct {
	indexMap []ComponentIndex // indexed by entity id
	taxa     []TaxonID
	taxaSet  map[TaxonID]struct{}
}

func (b *poolBase) ensureIndexMap(id uint32) {
	for uint32(len(b.indexMap)) <= id {
		b.indexMap = append(b.indexMap, NullComponentIndex)
	}
}

func (b *poolBase) indexOf(e Entity) ComponentIndex {
	id := e.ID()
	if int(id) >= len(b.indexMap) {
		return NullComponentIndex
	}
	return b.indexMap[id]
}

func (b *poolBase) setIndex(e Entity, ci ComponentIndex) {
	b.ensureIndexMap(e.ID())
	b.indexMap[e.ID()] = ci
}

func (b *poolBase) recordTaxon(t TaxonID) {
	if b.taxaSet == nil {
		b.taxaSet = make(map[TaxonID]struct{})
	}
	if _, ok := b.taxaSet[t]; ok {
		return
	}
	b.taxaSet[t] = struct{}{}
	b.taxa = append(b.taxa, t)
}

// Taxa returns the dense list of taxa this pool currently holds storage for.
func (b *poolBase) Taxa() []TaxonID { return b.taxa }
