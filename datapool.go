package taxonecs

// DataPool stores one dense T record per entity that has the component,
// grouped by taxon. Grounded on teishoku's removeFromArchetype (swap-back)
// and Builder.Set (migrate-on-write copy), but restructured so each pool owns
// its own per-taxon arrays instead of sharing one archetype-wide chunk.
type DataPool[T any] struct {
	base        poolBase
	buckets     map[TaxonID]*dataBucket[T]
	world       *World
	compType    ComponentType
	emitCreate  bool
	emitDestroy bool
}

type dataBucket[T any] struct {
	entities []Entity
	values   []T
}

// NewDataPool registers T as a data component and creates its pool.
func NewDataPool[T any](w *World) *DataPool[T] {
	ct := w.registerComponentType(reflectTypeFor[T](), ComponentKindData)
	p := &DataPool[T]{world: w, compType: ct, buckets: make(map[TaxonID]*dataBucket[T])}
	w.registerPool(ct, p)
	return p
}

func (p *DataPool[T]) ComponentType() ComponentType { return p.compType }
func (p *DataPool[T]) Kind() ComponentKind          { return ComponentKindData }

func (p *DataPool[T]) HasComponent(e Entity) bool { return !p.base.indexOf(e).IsNull() }

func (p *DataPool[T]) bucket(t TaxonID) *dataBucket[T] {
	b, ok := p.buckets[t]
	if !ok {
		b = &dataBucket[T]{}
		p.buckets[t] = b
		p.base.recordTaxon(t)
	}
	return b
}

func (p *DataPool[T]) insert(e Entity, taxon TaxonID, value T) {
	b := p.bucket(taxon)
	entry := len(b.entities)
	b.entities = append(b.entities, e)
	b.values = append(b.values, value)
	p.base.setIndex(e, newComponentIndex(taxon, entry))
}

// Add attaches value to e. Fatal if e already has the component.
func (p *DataPool[T]) Add(e Entity, value T) {
	if p.HasComponent(e) {
		panic(ErrComponentAlreadyPresent)
	}
	taxon := TaxonDefault
	if e.IsPrototype() {
		taxon = TaxonPrototype
	}
	p.insert(e, taxon, value)
	if !e.IsPrototype() {
		p.world.registerComponentAdd(e, p.compType)
		if p.emitCreate {
			Publish(p.world.Events(), ComponentCreated[T]{Entity: e})
		}
	}
}

// Get returns an accessor to e's record, or a zero DataAccessor if absent.
func (p *DataPool[T]) Get(e Entity) DataAccessor[T] {
	ci := p.base.indexOf(e)
	if ci.IsNull() {
		return DataAccessor[T]{}
	}
	b := p.buckets[ci.Taxon()]
	return DataAccessor[T]{ptr: &b.values[ci.Entry()], ok: true}
}

// GetByIndex returns an accessor addressed directly by ComponentIndex.
func (p *DataPool[T]) GetByIndex(ci ComponentIndex) DataAccessor[T] {
	if ci.IsNull() {
		return DataAccessor[T]{}
	}
	b, ok := p.buckets[ci.Taxon()]
	if !ok {
		return DataAccessor[T]{}
	}
	return DataAccessor[T]{ptr: &b.values[ci.Entry()], ok: true}
}

// Slice returns the dense taxon slice for t, or an empty slice if t has no
// records in this pool.
func (p *DataPool[T]) Slice(t TaxonID) DataTaxonSlice[T] {
	b, ok := p.buckets[t]
	if !ok {
		return DataTaxonSlice[T]{}
	}
	return DataTaxonSlice[T]{entities: b.entities, values: b.values}
}

// ForEach calls fn for every (entity, *value) matched by q.
func (p *DataPool[T]) ForEach(q Query, fn func(e Entity, v *T)) {
	for _, t := range q.Taxa {
		b, ok := p.buckets[t]
		if !ok {
			continue
		}
		for i := range b.entities {
			fn(b.entities[i], &b.values[i])
		}
	}
}

// EntitiesIn returns every entity matched by q, across all its taxa.
func (p *DataPool[T]) EntitiesIn(q Query) []Entity {
	var out []Entity
	for _, t := range q.Taxa {
		if b, ok := p.buckets[t]; ok {
			out = append(out, b.entities...)
		}
	}
	return out
}

func (p *DataPool[T]) removeAt(taxon TaxonID, entry int) {
	b := p.buckets[taxon]
	last := len(b.entities) - 1
	if entry != last {
		movedEntity := b.entities[last]
		b.entities[entry] = movedEntity
		b.values[entry] = b.values[last]
		p.base.setIndex(movedEntity, newComponentIndex(taxon, entry))
	}
	b.entities = b.entities[:last]
	b.values = b.values[:last]
}

// Destroy removes e's record. Emits ComponentDestroyed[T] if enabled.
func (p *DataPool[T]) Destroy(e Entity) {
	ci := p.base.indexOf(e)
	if ci.IsNull() {
		return
	}
	var prev T
	if p.emitDestroy {
		prev = p.buckets[ci.Taxon()].values[ci.Entry()]
	}
	p.removeAt(ci.Taxon(), ci.Entry())
	p.base.setIndex(e, NullComponentIndex)
	if !e.IsPrototype() {
		p.world.registerComponentRemove(e, p.compType)
		if p.emitDestroy {
			Publish(p.world.Events(), ComponentDestroyed[T]{Entity: e, Value: prev})
		}
	}
}

// UpdateTaxon moves e's record into newTaxon. Fatal on a prototype entity.
func (p *DataPool[T]) UpdateTaxon(e Entity, newTaxon TaxonID) {
	if e.IsPrototype() {
		panic(ErrPrototypeTaxonMigration)
	}
	ci := p.base.indexOf(e)
	if ci.IsNull() || ci.Taxon() == newTaxon {
		return
	}
	old := p.buckets[ci.Taxon()]
	value := old.values[ci.Entry()]
	p.removeAt(ci.Taxon(), ci.Entry())
	p.insert(e, newTaxon, value)
}

// FilterLocalID is always (0, false) for a data pool.
func (p *DataPool[T]) FilterLocalID(Entity) (int, bool) { return 0, false }

// InstantiateFrom copies src's (a prototype) component value onto dst.
func (p *DataPool[T]) InstantiateFrom(src, dst Entity) {
	ci := p.base.indexOf(src)
	if ci.IsNull() {
		return
	}
	value := p.buckets[ci.Taxon()].values[ci.Entry()]
	p.Add(dst, value)
}

// EnableCreationEvents turns on ComponentCreated[T] emission on Add.
func (p *DataPool[T]) EnableCreationEvents() { p.emitCreate = true }

// EnableDestructionEvents turns on ComponentDestroyed[T] emission on Destroy.
func (p *DataPool[T]) EnableDestructionEvents() { p.emitDestroy = true }
