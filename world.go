package taxonecs

import (
	"reflect"

	"go.uber.org/zap"
)

// World owns every pool, the live archetype/meta-archetype/filter-combination
// bookkeeping, and the event bus. It plays the role teishoku's World played
// for chunked archetypes, but the storage itself now lives one level down in
// each Pool; World is left holding only the cross-pool taxonomy.
type World struct {
	logger *zap.Logger
	cfg    Config

	entities  *entityAllocator
	compTypes *componentTypeRegistry
	pools     map[ComponentType]Pool

	componentSets []bitset // per entity id: currently attached component types
	dirty         map[uint32]struct{}

	archetypes  []Archetype
	initialized bool

	// metaArchetypes interns every meta-archetype ever realized by some
	// entity's reconciliation, keyed by its (components, filters) signature.
	// There is no single global partition computed up front: each dirty
	// entity recomputes its own matched-archetype closure in
	// computeEntityMetaAssignment and the resulting groups land here,
	// structurally shared across entities that resolve to the same shape.
	metaArchetypes     []metaArchetype
	metaArchetypeIndex map[string]metaArchetypeID

	// superArchetypes interns the set of meta-archetypes an entity's live
	// components actually touch. A super-archetype id is what taxonKey.meta
	// addresses; it is a distinct namespace from metaArchetypeID's own index
	// space even though both reuse the metaArchetypeID type.
	superArchetypes          []bitset
	superArchetypeComponents []bitset // per super-archetype: union of its metas' .components, for MakeQuery
	superArchetypeIndex      map[string]metaArchetypeID

	filterInstances    map[filterInstanceKey]FilterInstanceIndex
	nextFilterInstance FilterInstanceIndex

	combinations    map[string]FilterCombinationID
	combinationBits []bitset

	taxa       map[taxonKey]TaxonID
	taxonInfos []taxonInfo
	taxaByMeta map[metaArchetypeID][]taxaByMetaEntry
	nextTaxon  TaxonID

	bus *EventBus
}

// NewWorld creates an uninitialized World. Declare every Archetype with
// AddArchetype, then call Initialize before creating entities.
func NewWorld(cfg Config, logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &World{
		logger:              logger,
		cfg:                 cfg,
		entities:            newEntityAllocator(cfg.InitialEntityCapacity),
		compTypes:           newComponentTypeRegistry(),
		pools:               make(map[ComponentType]Pool),
		dirty:               make(map[uint32]struct{}),
		metaArchetypeIndex:  make(map[string]metaArchetypeID),
		superArchetypeIndex: make(map[string]metaArchetypeID),
		filterInstances:     make(map[filterInstanceKey]FilterInstanceIndex),
		combinations:        make(map[string]FilterCombinationID),
		taxa:                make(map[taxonKey]TaxonID),
		taxaByMeta:          make(map[metaArchetypeID][]taxaByMetaEntry),
		nextTaxon:           TaxonDefault + 1,
		bus:                 newEventBus(),
	}
}

// Events returns the World's event bus.
func (w *World) Events() *EventBus { return w.bus }

func (w *World) registerComponentType(t reflect.Type, kind ComponentKind) ComponentType {
	if w.initialized {
		panic(ErrAlreadyInitialized)
	}
	return w.compTypes.intern(t, kind)
}

func (w *World) registerPool(ct ComponentType, p Pool) { w.pools[ct] = p }

// AddArchetype declares a bag of component and filter types that are
// expected to co-occur on the same entities. Every type named here must
// already have a pool registered (a New*Pool call). Fatal after Initialize.
func (w *World) AddArchetype(components, filters []ComponentType) *Archetype {
	if w.initialized {
		panic(ErrAlreadyInitialized)
	}
	var cb, fb bitset
	for _, ct := range components {
		cb.set(int(ct))
	}
	for _, ct := range filters {
		fb.set(int(ct))
	}
	idx := ArchetypeIndex(len(w.archetypes))
	w.archetypes = append(w.archetypes, Archetype{index: idx, components: cb, filters: fb})
	return &w.archetypes[idx]
}

// Initialize locks the World for entity creation. Meta-archetypes are not
// precomputed here: they are derived per dirty entity during reconciliation
// (see computeEntityMetaAssignment), since which archetypes an entity
// matches depends on its own live component set, not a fixed global
// partition over every declared Archetype. Fatal if called twice.
func (w *World) Initialize() {
	if w.initialized {
		panic(ErrAlreadyInitialized)
	}
	w.initialized = true
}

func (w *World) requireInitialized() {
	if !w.initialized {
		panic(ErrNotInitialized)
	}
}

// internMetaArchetype returns the interned id for the meta-archetype with
// exactly this (components, filters) signature, creating it on first use.
// Because this is keyed by signature rather than by which entity asked,
// entities whose matched-archetype closures (or whose uncovered leftover
// component types) produce the same shape land on the same meta-archetype —
// this is what gives the "default meta-archetype" fallback in
// computeEntityMetaAssignment real, shared identity instead of being an
// unregistered special case.
func (w *World) internMetaArchetype(components, filters bitset) metaArchetypeID {
	key := components.key() + "\x00" + filters.key()
	if id, ok := w.metaArchetypeIndex[key]; ok {
		return id
	}
	id := metaArchetypeID(len(w.metaArchetypes))
	w.metaArchetypes = append(w.metaArchetypes, metaArchetype{id: id, components: components.clone(), filters: filters.clone()})
	w.metaArchetypeIndex[key] = id
	return id
}

// computeEntityMetaAssignment implements the per-entity half of
// reconciliation: find every declared Archetype the entity's current
// component set satisfies (components ⊆ comps), then greedily merge those
// matched archetypes that share a component or filter type until no two
// overlap — the minimal partition in which each matched type belongs to
// exactly one meta-archetype, for this entity. Component types the entity
// carries that no matched archetype covers are grouped into their own
// leftover meta-archetype instead of silently joining one of the matched
// groups; interning folds entities with an identical leftover shape onto the
// same meta-archetype, which is the fallback the rest of the engine treats
// as "the default".
func (w *World) computeEntityMetaAssignment(comps bitset) (touchedMetas, allowedFilters bitset) {
	var matched []int
	for i := range w.archetypes {
		if comps.supersetOf(w.archetypes[i].components) {
			matched = append(matched, i)
		}
	}

	sigs := make([]bitset, len(matched))
	for i, idx := range matched {
		a := &w.archetypes[idx]
		sigs[i] = a.components.union(a.filters)
	}
	uf := newUnionFind(len(matched))
	for i := range sigs {
		for j := i + 1; j < len(sigs); j++ {
			if sigs[i].intersects(sigs[j]) {
				uf.union(i, j)
			}
		}
	}

	groups := make(map[int]*metaArchetype)
	for i, idx := range matched {
		root := uf.find(i)
		g, ok := groups[root]
		if !ok {
			g = &metaArchetype{}
			groups[root] = g
		}
		a := &w.archetypes[idx]
		g.components = g.components.union(a.components)
		g.filters = g.filters.union(a.filters)
	}

	covered := make(map[int]metaArchetypeID)
	for _, g := range groups {
		id := w.internMetaArchetype(g.components, g.filters)
		touchedMetas.set(int(id))
		g.components.forEach(func(bit int) { covered[bit] = id })
		g.filters.forEach(func(bit int) { covered[bit] = id })
	}

	var leftoverComponents, leftoverFilters bitset
	comps.forEach(func(bit int) {
		if _, ok := covered[bit]; ok {
			return
		}
		if w.compTypes.kindOf(ComponentType(bit)) == ComponentKindFilter {
			leftoverFilters.set(bit)
		} else {
			leftoverComponents.set(bit)
		}
	})
	if len(leftoverComponents) > 0 || len(leftoverFilters) > 0 {
		id := w.internMetaArchetype(leftoverComponents, leftoverFilters)
		touchedMetas.set(int(id))
	}

	touchedMetas.forEach(func(m int) {
		allowedFilters = allowedFilters.union(w.metaArchetypes[m].filters)
	})
	return touchedMetas, allowedFilters
}

// unionFind is a plain disjoint-set structure. computeEntityMetaAssignment
// allocates one per call, sized to that entity's matched-archetype count, to
// compute the greedy overlap closure for that entity alone.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &unionFind{parent: p}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

func (w *World) ensureComponentSets(id uint32) {
	for uint32(len(w.componentSets)) <= id {
		w.componentSets = append(w.componentSets, nil)
	}
}

func (w *World) markDirty(e Entity) {
	if e.IsPrototype() {
		return
	}
	w.dirty[e.ID()] = struct{}{}
}

func (w *World) registerComponentAdd(e Entity, ct ComponentType) {
	w.ensureComponentSets(e.ID())
	w.componentSets[e.ID()].set(int(ct))
	w.markDirty(e)
}

func (w *World) registerComponentRemove(e Entity, ct ComponentType) {
	w.ensureComponentSets(e.ID())
	w.componentSets[e.ID()].unset(int(ct))
	w.markDirty(e)
}

func (w *World) registerFilterChange(e Entity, ct ComponentType, oldLocal, newLocal int) {
	w.markDirty(e)
}

// CreateEntity allocates a live, empty entity ready to receive components.
func (w *World) CreateEntity() Entity {
	w.requireInitialized()
	e, err := w.entities.allocate(false)
	if err != nil {
		panic(err)
	}
	w.ensureComponentSets(e.ID())
	return e
}

// CreatePrototype allocates a reusable template entity. Components attached
// to it live in TaxonPrototype and are never reconciled into a live taxon.
func (w *World) CreatePrototype() Entity {
	w.requireInitialized()
	e, err := w.entities.allocate(true)
	if err != nil {
		panic(err)
	}
	return e
}

// Instantiate creates a new live entity carrying a copy of every component
// proto currently has, via each pool's InstantiateFrom.
func (w *World) Instantiate(proto Entity) Entity {
	w.requireInitialized()
	e := w.CreateEntity()
	for _, p := range w.pools {
		if p.HasComponent(proto) {
			p.InstantiateFrom(proto, e)
		}
	}
	w.markDirty(e)
	return e
}

// Destroy removes every component e has and frees its id for reuse.
func (w *World) Destroy(e Entity) {
	for _, p := range w.pools {
		p.Destroy(e)
	}
	if int(e.ID()) < len(w.componentSets) {
		w.componentSets[e.ID()] = nil
	}
	delete(w.dirty, e.ID())
	w.entities.free(e)
}

func (w *World) internSuperArchetype(touched bitset) metaArchetypeID {
	key := touched.key()
	if id, ok := w.superArchetypeIndex[key]; ok {
		return id
	}
	id := metaArchetypeID(len(w.superArchetypes))
	w.superArchetypes = append(w.superArchetypes, touched.clone())
	var comps bitset
	touched.forEach(func(m int) { comps = comps.union(w.metaArchetypes[m].components) })
	w.superArchetypeComponents = append(w.superArchetypeComponents, comps)
	w.superArchetypeIndex[key] = id
	return id
}

func (w *World) internFilterInstance(ct ComponentType, local int) FilterInstanceIndex {
	key := filterInstanceKey{compType: ct, local: local}
	if id, ok := w.filterInstances[key]; ok {
		return id
	}
	id := w.nextFilterInstance
	w.nextFilterInstance++
	w.filterInstances[key] = id
	return id
}

func (w *World) internCombination(b bitset) FilterCombinationID {
	key := b.key()
	if id, ok := w.combinations[key]; ok {
		return id
	}
	id := FilterCombinationID(len(w.combinationBits))
	w.combinationBits = append(w.combinationBits, b.clone())
	w.combinations[key] = id
	return id
}

func (w *World) internTaxon(meta metaArchetypeID, combo FilterCombinationID) TaxonID {
	key := taxonKey{meta: meta, combo: combo}
	if t, ok := w.taxa[key]; ok {
		return t
	}
	t := w.nextTaxon
	w.nextTaxon++
	w.taxa[key] = t
	w.taxonInfos = append(w.taxonInfos, taxonInfo{meta: meta, combo: combo})
	w.taxaByMeta[meta] = append(w.taxaByMeta[meta], taxaByMetaEntry{combo: combo, taxon: t})
	return t
}

// reconcileEntity runs the taxon migration for one dirty entity: recompute
// its matched-archetype set and greedy meta-archetype closure fresh (since
// which archetypes it matches depends on its own current component set, not
// a fixed global partition), restrict its filter values to the ones those
// meta-archetypes actually discriminate on, intern the resulting taxon, then
// migrate every attached pool to it.
func (w *World) reconcileEntity(id uint32) {
	e := w.entities.slots[id]
	if !w.entities.isAlive(e) {
		return
	}
	comps := w.componentSets[id]

	touchedMetas, allowedFilters := w.computeEntityMetaAssignment(comps)
	sa := w.internSuperArchetype(touchedMetas)

	var comboInstances bitset
	comps.forEach(func(bit int) {
		ct := ComponentType(bit)
		if w.compTypes.kindOf(ct) != ComponentKindFilter {
			return
		}
		if !allowedFilters.contains(bit) {
			return
		}
		local, ok := w.pools[ct].FilterLocalID(e)
		if !ok {
			return
		}
		inst := w.internFilterInstance(ct, local)
		comboInstances.set(int(inst))
	})
	combo := w.internCombination(comboInstances)

	taxon := w.internTaxon(sa, combo)

	comps.forEach(func(bit int) {
		w.pools[ComponentType(bit)].UpdateTaxon(e, taxon)
	})
}

// Reconcile migrates every entity touched since the last call into its
// correct taxon. Callers that query mid-frame without reconciling first will
// see stale taxa; neither MakeQuery nor CreateEntity checks the dirty set, and
// Pending reports whether a Reconcile is due.
func (w *World) Reconcile() {
	if len(w.dirty) == 0 {
		return
	}
	for id := range w.dirty {
		w.reconcileEntity(id)
	}
	w.dirty = make(map[uint32]struct{})
}

// Pending reports whether any entity is awaiting reconciliation.
func (w *World) Pending() bool { return len(w.dirty) > 0 }
