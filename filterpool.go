package taxonecs

// FilterPool stores one comparable discriminator value per entity, grouped
// by taxon, with the value space interned into a monotonically growing
// table (teishoku's componentRegistry pattern, generalized to value-level
// interning instead of type-level interning; see DESIGN.md for why this
// table is deliberately never compacted).
type FilterPool[T comparable] struct {
	base     poolBase
	buckets  map[TaxonID]*filterBucket
	unique   []T
	reverse  map[T]int
	refcount []int
	world    *World
	compType ComponentType
}

type filterBucket struct {
	entities []Entity
	localIDs []int
}

// NewFilterPool registers T as a filter component and creates its pool.
func NewFilterPool[T comparable](w *World) *FilterPool[T] {
	ct := w.registerComponentType(reflectTypeFor[T](), ComponentKindFilter)
	p := &FilterPool[T]{
		world:    w,
		compType: ct,
		buckets:  make(map[TaxonID]*filterBucket),
		reverse:  make(map[T]int),
	}
	w.registerPool(ct, p)
	return p
}

func (p *FilterPool[T]) ComponentType() ComponentType { return p.compType }
func (p *FilterPool[T]) Kind() ComponentKind          { return ComponentKindFilter }

func (p *FilterPool[T]) HasComponent(e Entity) bool { return !p.base.indexOf(e).IsNull() }

func (p *FilterPool[T]) internValue(v T) int {
	if id, ok := p.reverse[v]; ok {
		p.refcount[id]++
		return id
	}
	id := len(p.unique)
	p.unique = append(p.unique, v)
	p.refcount = append(p.refcount, 1)
	p.reverse[v] = id
	return id
}

func (p *FilterPool[T]) release(id int) {
	p.refcount[id]--
}

func (p *FilterPool[T]) bucket(t TaxonID) *filterBucket {
	b, ok := p.buckets[t]
	if !ok {
		b = &filterBucket{}
		p.buckets[t] = b
		p.base.recordTaxon(t)
	}
	return b
}

// LocalIDFor returns the interned local id for v, if v has ever been
// observed by this pool. Used by Value to build a query-time filter clause.
func (p *FilterPool[T]) LocalIDFor(v T) (int, bool) {
	id, ok := p.reverse[v]
	return id, ok
}

// Slice returns the dense taxon slice for t, or an empty slice if t has no
// records in this pool.
func (p *FilterPool[T]) Slice(t TaxonID) FilterTaxonSlice {
	b, ok := p.buckets[t]
	if !ok {
		return FilterTaxonSlice{}
	}
	return FilterTaxonSlice{entities: b.entities, localIDs: b.localIDs}
}

// ValueAt resolves a local id (as returned by Slice's LocalID) back to its
// interned value.
func (p *FilterPool[T]) ValueAt(localID int) T {
	return p.unique[localID]
}

// Add attaches value to e. Fatal if e already has the component.
func (p *FilterPool[T]) Add(e Entity, value T) {
	if p.HasComponent(e) {
		panic(ErrComponentAlreadyPresent)
	}
	taxon := TaxonDefault
	if e.IsPrototype() {
		taxon = TaxonPrototype
	}
	localID := p.internValue(value)
	b := p.bucket(taxon)
	entry := len(b.entities)
	b.entities = append(b.entities, e)
	b.localIDs = append(b.localIDs, localID)
	p.base.setIndex(e, newComponentIndex(taxon, entry))
	if !e.IsPrototype() {
		p.world.registerComponentAdd(e, p.compType)
		p.world.registerFilterChange(e, p.compType, -1, localID)
	}
}

// Read returns e's current filter value. ok is false if e has no record.
func (p *FilterPool[T]) Read(e Entity) (T, bool) {
	ci := p.base.indexOf(e)
	if ci.IsNull() {
		var zero T
		return zero, false
	}
	b := p.buckets[ci.Taxon()]
	return p.unique[b.localIDs[ci.Entry()]], true
}

// Set overwrites e's filter value, re-interning and marking the entity dirty
// for filter-combination reconciliation.
func (p *FilterPool[T]) Set(e Entity, value T) {
	ci := p.base.indexOf(e)
	if ci.IsNull() {
		panic(ErrComponentMissing)
	}
	b := p.buckets[ci.Taxon()]
	oldID := b.localIDs[ci.Entry()]
	newID := p.internValue(value)
	p.release(oldID)
	b.localIDs[ci.Entry()] = newID
	if !e.IsPrototype() {
		p.world.registerFilterChange(e, p.compType, oldID, newID)
	}
}

func (p *FilterPool[T]) removeAt(taxon TaxonID, entry int) {
	b := p.buckets[taxon]
	last := len(b.entities) - 1
	if entry != last {
		movedEntity := b.entities[last]
		b.entities[entry] = movedEntity
		b.localIDs[entry] = b.localIDs[last]
		p.base.setIndex(movedEntity, newComponentIndex(taxon, entry))
	}
	b.entities = b.entities[:last]
	b.localIDs = b.localIDs[:last]
}

// Destroy removes e's filter value.
func (p *FilterPool[T]) Destroy(e Entity) {
	ci := p.base.indexOf(e)
	if ci.IsNull() {
		return
	}
	b := p.buckets[ci.Taxon()]
	localID := b.localIDs[ci.Entry()]
	p.removeAt(ci.Taxon(), ci.Entry())
	p.base.setIndex(e, NullComponentIndex)
	p.release(localID)
	if !e.IsPrototype() {
		p.world.registerComponentRemove(e, p.compType)
		p.world.registerFilterChange(e, p.compType, localID, -1)
	}
}

// UpdateTaxon moves e's filter value into newTaxon.
func (p *FilterPool[T]) UpdateTaxon(e Entity, newTaxon TaxonID) {
	if e.IsPrototype() {
		panic(ErrPrototypeTaxonMigration)
	}
	ci := p.base.indexOf(e)
	if ci.IsNull() || ci.Taxon() == newTaxon {
		return
	}
	old := p.buckets[ci.Taxon()]
	localID := old.localIDs[ci.Entry()]
	p.removeAt(ci.Taxon(), ci.Entry())
	dst := p.bucket(newTaxon)
	entry := len(dst.entities)
	dst.entities = append(dst.entities, e)
	dst.localIDs = append(dst.localIDs, localID)
	p.base.setIndex(e, newComponentIndex(newTaxon, entry))
}

// FilterLocalID returns e's pool-local interned filter value id.
func (p *FilterPool[T]) FilterLocalID(e Entity) (int, bool) {
	ci := p.base.indexOf(e)
	if ci.IsNull() {
		return 0, false
	}
	b := p.buckets[ci.Taxon()]
	return b.localIDs[ci.Entry()], true
}

// InstantiateFrom copies src's (a prototype) filter value onto dst.
func (p *FilterPool[T]) InstantiateFrom(src, dst Entity) {
	ci := p.base.indexOf(src)
	if ci.IsNull() {
		return
	}
	b := p.buckets[ci.Taxon()]
	value := p.unique[b.localIDs[ci.Entry()]]
	p.Add(dst, value)
}
