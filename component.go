package taxonecs

import "reflect"

// ComponentKind classifies a ComponentType as plain data, a variable-length
// list, or a filter/discriminator value.
type ComponentKind uint8

const (
	ComponentKindData ComponentKind = iota
	ComponentKindList
	ComponentKindFilter
)

// ComponentType is an interned type identity: a stable 16-bit registry index.
type ComponentType uint16

type componentTypeInfo struct {
	kind ComponentKind
	name string
}

// reflectTypeFor returns the reflect.Type for T, equivalent to the standard
// library's reflect.TypeFor (added in Go 1.22), for toolchains that predate it.
func reflectTypeFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// componentTypeRegistry interns reflect.Type values behind a stable
// ComponentType index, modeled on teishoku's componentRegistry but keyed to a
// richer per-type record (kind, display name) since this engine has three
// disjoint component kinds instead of one.
type componentTypeRegistry struct {
	byType map[reflect.Type]ComponentType
	infos  []componentTypeInfo
}

func newComponentTypeRegistry() *componentTypeRegistry {
	return &componentTypeRegistry{byType: make(map[reflect.Type]ComponentType)}
}

func (r *componentTypeRegistry) intern(t reflect.Type, kind ComponentKind) ComponentType {
	if id, ok := r.byType[t]; ok {
		return id
	}
	id := ComponentType(len(r.infos))
	r.byType[t] = id
	r.infos = append(r.infos, componentTypeInfo{kind: kind, name: t.String()})
	return id
}

func (r *componentTypeRegistry) kindOf(ct ComponentType) ComponentKind { return r.infos[ct].kind }
func (r *componentTypeRegistry) nameOf(ct ComponentType) string        { return r.infos[ct].name }
func (r *componentTypeRegistry) Len() int                              { return len(r.infos) }
