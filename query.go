package taxonecs

// Query is the result of a World query: the dense list of taxa whose stored
// entities satisfy the requested component/filter requirement. Grounded on
// teishoku's Filter[T], but since storage here is per-pool rather than
// per-archetype, a Query carries taxon ids for callers to hand to each
// relevant pool's ForEach/Slice/EntitiesIn rather than iterating itself.
type Query struct {
	Taxa []TaxonID
}

// FilterValue names one concrete value of one filter component type, built
// via Value, for use as a MakeQueryFiltered argument.
type FilterValue interface {
	componentType() ComponentType
	localID() (int, bool)
}

type filterValueOf[T comparable] struct {
	ct ComponentType
	id int
	ok bool
}

func (f filterValueOf[T]) componentType() ComponentType { return f.ct }
func (f filterValueOf[T]) localID() (int, bool)         { return f.id, f.ok }

// Value builds a FilterValue clause for MakeQueryFiltered from a concrete
// T stored in pool p. If v has never been observed by p, the resulting
// clause can never match, and the query returns an empty result.
func Value[T comparable](p *FilterPool[T], v T) FilterValue {
	id, ok := p.LocalIDFor(v)
	return filterValueOf[T]{ct: p.compType, id: id, ok: ok}
}

// MakeQuery returns every taxon whose meta-archetype carries at least the
// given component types.
func (w *World) MakeQuery(required ...ComponentType) Query {
	w.requireInitialized()
	return w.makeQuery(required, nil)
}

// MakeQueryFiltered is MakeQuery further restricted to taxa whose filter
// combination carries every given FilterValue.
func (w *World) MakeQueryFiltered(required []ComponentType, filters ...FilterValue) Query {
	w.requireInitialized()
	return w.makeQuery(required, filters)
}

func (w *World) makeQuery(required []ComponentType, filters []FilterValue) Query {
	var requiredBits bitset
	for _, ct := range required {
		requiredBits.set(int(ct))
	}

	var wantInstances bitset
	for _, fv := range filters {
		local, ok := fv.localID()
		if !ok {
			return Query{}
		}
		inst := w.internFilterInstance(fv.componentType(), local)
		wantInstances.set(int(inst))
	}

	var taxa []TaxonID
	for sa, comps := range w.superArchetypeComponents {
		if !comps.supersetOf(requiredBits) {
			continue
		}
		for _, entry := range w.taxaByMeta[metaArchetypeID(sa)] {
			if len(filters) > 0 {
				combo := w.combinationBits[entry.combo]
				if !combo.supersetOf(wantInstances) {
					continue
				}
			}
			taxa = append(taxa, entry.taxon)
		}
	}
	return Query{Taxa: taxa}
}
