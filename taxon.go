package taxonecs

// TaxonID names the storage bucket — a (meta-archetype, filter-combination)
// pair — in which a set of co-located component records live.
type TaxonID uint16

const (
	TaxonNull      TaxonID = 0
	TaxonPrototype TaxonID = 1
	TaxonDefault   TaxonID = 2
)

const (
	componentIndexEntryBits = 20
	componentIndexEntryMask = (1 << componentIndexEntryBits) - 1
)

// ComponentIndex packs (taxon:12, entry:20) into 32 bits, addressing a
// component record inside one pool. The zero value is the NULL sentinel: no
// real record is ever stored at (TaxonNull, 0).
type ComponentIndex uint32

// NullComponentIndex is the sentinel stored in a pool's index_map for an
// entity without a record in that pool.
const NullComponentIndex ComponentIndex = 0

func newComponentIndex(taxon TaxonID, entry int) ComponentIndex {
	return ComponentIndex(uint32(taxon)<<componentIndexEntryBits | uint32(entry)&componentIndexEntryMask)
}

// Taxon returns the taxon component of a ComponentIndex.
func (ci ComponentIndex) Taxon() TaxonID { return TaxonID(uint32(ci) >> componentIndexEntryBits) }

// Entry returns the entry (position within the taxon) component.
func (ci ComponentIndex) Entry() int { return int(uint32(ci) & componentIndexEntryMask) }

// IsNull reports whether ci is the NULL sentinel.
func (ci ComponentIndex) IsNull() bool { return ci == NullComponentIndex }

// ArchetypeIndex references a user-declared Archetype.
type ArchetypeIndex int

// Archetype is a user-declared bag of component types and filter types,
// interned once via World.AddArchetype.
type Archetype struct {
	index      ArchetypeIndex
	components bitset
	filters    bitset
}

// Index returns the archetype's interned index.
func (a *Archetype) Index() ArchetypeIndex { return a.index }

type metaArchetypeID int

// metaArchetype is an internally derived (components, filters) bag: the
// union-closure of every user archetype that overlaps on some entity.
type metaArchetype struct {
	id         metaArchetypeID
	components bitset
	filters    bitset
}

// FilterInstanceIndex names a unique value ever observed for some filter
// component type, world-wide. Once allocated, never reused (SPEC_FULL.md
// invariant 4).
type FilterInstanceIndex uint32

type filterInstanceKey struct {
	compType ComponentType
	local    int
}

// FilterCombinationID is an interned set of FilterInstanceIndex values. The
// empty set (no filter components, or all erased by projection) is the
// default combination.
type FilterCombinationID int

type taxonKey struct {
	meta  metaArchetypeID
	combo FilterCombinationID
}

type taxonInfo struct {
	meta  metaArchetypeID
	combo FilterCombinationID
}

// taxaByMetaEntry records one allocated taxon under a meta-archetype, paired
// with its filter-combination id, whose bitset query-time superset admission
// reads.
type taxaByMetaEntry struct {
	combo FilterCombinationID
	taxon TaxonID
}
