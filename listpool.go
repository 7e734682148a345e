package taxonecs

// ListPool stores one variable-length []T per entity that has the component,
// grouped by taxon. The per-taxon storage is a NestedList[T] kept
// position-parallel with a dense entity array, so taxon migration can move an
// entity's whole list via NestedList.MoveOuter instead of copying elements.
type ListPool[T any] struct {
	base        poolBase
	buckets     map[TaxonID]*listBucket[T]
	world       *World
	compType    ComponentType
	emitCreate  bool
	emitDestroy bool
}

type listBucket[T any] struct {
	entities []Entity
	list     *NestedList[T]
}

// NewListPool registers T as a list component and creates its pool.
func NewListPool[T any](w *World) *ListPool[T] {
	ct := w.registerComponentType(reflectTypeFor[T](), ComponentKindList)
	p := &ListPool[T]{world: w, compType: ct, buckets: make(map[TaxonID]*listBucket[T])}
	w.registerPool(ct, p)
	return p
}

func (p *ListPool[T]) ComponentType() ComponentType { return p.compType }
func (p *ListPool[T]) Kind() ComponentKind          { return ComponentKindList }

func (p *ListPool[T]) HasComponent(e Entity) bool { return !p.base.indexOf(e).IsNull() }

func (p *ListPool[T]) bucket(t TaxonID) *listBucket[T] {
	b, ok := p.buckets[t]
	if !ok {
		b = &listBucket[T]{list: NewNestedList[T]()}
		p.buckets[t] = b
		p.base.recordTaxon(t)
	}
	return b
}

// Add attaches an empty list to e. Fatal if e already has the component.
func (p *ListPool[T]) Add(e Entity, initialCapacity int) {
	if p.HasComponent(e) {
		panic(ErrComponentAlreadyPresent)
	}
	taxon := TaxonDefault
	if e.IsPrototype() {
		taxon = TaxonPrototype
	}
	b := p.bucket(taxon)
	outer := b.list.NewOuter(initialCapacity)
	b.entities = append(b.entities, e)
	p.base.setIndex(e, newComponentIndex(taxon, outer))
	if !e.IsPrototype() {
		p.world.registerComponentAdd(e, p.compType)
		if p.emitCreate {
			Publish(p.world.Events(), ComponentCreated[T]{Entity: e})
		}
	}
}

// Get returns an accessor to e's list, or a zero ListAccessor if absent.
func (p *ListPool[T]) Get(e Entity) ListAccessor[T] {
	ci := p.base.indexOf(e)
	if ci.IsNull() {
		return ListAccessor[T]{}
	}
	b := p.buckets[ci.Taxon()]
	return ListAccessor[T]{list: b.list, outer: ci.Entry(), ok: true}
}

// Destroy removes e's list. Emits ComponentDestroyed[[]T], carrying a copy of
// the removed list, if enabled.
func (p *ListPool[T]) Destroy(e Entity) {
	ci := p.base.indexOf(e)
	if ci.IsNull() {
		return
	}
	b := p.buckets[ci.Taxon()]
	entry := ci.Entry()
	var prev []T
	if p.emitDestroy {
		prev = append([]T(nil), b.list.outer[entry]...)
	}
	last := len(b.entities) - 1
	if entry != last {
		b.list.outer[entry] = b.list.outer[last]
		b.entities[entry] = b.entities[last]
		p.base.setIndex(b.entities[entry], newComponentIndex(ci.Taxon(), entry))
	}
	b.list.outer = b.list.outer[:last]
	b.entities = b.entities[:last]
	p.base.setIndex(e, NullComponentIndex)
	if !e.IsPrototype() {
		p.world.registerComponentRemove(e, p.compType)
		if p.emitDestroy {
			Publish(p.world.Events(), ComponentDestroyed[[]T]{Entity: e, Value: prev})
		}
	}
}

// UpdateTaxon moves e's list into newTaxon without copying elements, via
// NestedList.MoveOuter. The entity that previously owned the swap-back slot
// in the old taxon has its index_map entry corrected in place.
func (p *ListPool[T]) UpdateTaxon(e Entity, newTaxon TaxonID) {
	if e.IsPrototype() {
		panic(ErrPrototypeTaxonMigration)
	}
	ci := p.base.indexOf(e)
	if ci.IsNull() || ci.Taxon() == newTaxon {
		return
	}
	oldTaxon := ci.Taxon()
	entry := ci.Entry()
	old := p.buckets[oldTaxon]
	dst := p.bucket(newTaxon)

	newOuter := old.list.MoveOuter(dst.list, entry)

	last := len(old.entities) - 1
	if entry != last {
		movedEntity := old.entities[last]
		old.entities[entry] = movedEntity
		p.base.setIndex(movedEntity, newComponentIndex(oldTaxon, entry))
	}
	old.entities = old.entities[:last]

	dst.entities = append(dst.entities, e)
	p.base.setIndex(e, newComponentIndex(newTaxon, newOuter))
}

// FilterLocalID is always (0, false) for a list pool.
func (p *ListPool[T]) FilterLocalID(Entity) (int, bool) { return 0, false }

// InstantiateFrom copies src's (a prototype) list onto dst element by
// element, via NestedList.CopyFrom.
func (p *ListPool[T]) InstantiateFrom(src, dst Entity) {
	ci := p.base.indexOf(src)
	if ci.IsNull() {
		return
	}
	srcBucket := p.buckets[ci.Taxon()]
	taxon := TaxonDefault
	if dst.IsPrototype() {
		taxon = TaxonPrototype
	}
	dstBucket := p.bucket(taxon)
	outer := dstBucket.list.CopyFrom(srcBucket.list, ci.Entry())
	dstBucket.entities = append(dstBucket.entities, dst)
	p.base.setIndex(dst, newComponentIndex(taxon, outer))
	if !dst.IsPrototype() {
		p.world.registerComponentAdd(dst, p.compType)
	}
}

// EnableCreationEvents turns on ComponentCreated[T] emission on Add.
func (p *ListPool[T]) EnableCreationEvents() { p.emitCreate = true }

// EnableDestructionEvents turns on ComponentDestroyed[[]T] emission on Destroy.
func (p *ListPool[T]) EnableDestructionEvents() { p.emitDestroy = true }
