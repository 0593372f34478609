package core

import (
	"fmt"
	"strings"
)

// TypeRef identifies a connector type or a descriptor kind as a first-class
// value. Subtyping is declared explicitly at construction time; the zero value
// acts as a wildcard that matches anything.
type TypeRef struct {
	name    string
	parents []TypeRef
}

func NewTypeRef(name string, parents ...TypeRef) TypeRef {
	return TypeRef{name: strings.TrimSpace(name), parents: parents}
}

func (t TypeRef) Name() string {
	return t.name
}

func (t TypeRef) IsZero() bool {
	return t.name == ""
}

// AssignableFrom reports whether a value of the other type can be used where
// this type is expected. A zero receiver accepts anything.
func (t TypeRef) AssignableFrom(other TypeRef) bool {
	if t.IsZero() {
		return true
	}
	if other.IsZero() {
		return false
	}
	if t.name == other.name {
		return true
	}
	for _, parent := range other.parents {
		if t.AssignableFrom(parent) {
			return true
		}
	}
	return false
}

func (t TypeRef) String() string {
	if t.IsZero() {
		return "<any>"
	}
	return t.name
}

// KindService is the root of the descriptor kind hierarchy. Every resolved
// descriptor kind extends it, directly or transitively.
var KindService = NewTypeRef("service")

type DeclaredProperty struct {
	Category string
	Name     string
	Accessor string
	Value    any
}

// Key returns the name segment used during projection: the explicit name when
// present, otherwise the lowercased accessor.
func (p DeclaredProperty) Key() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return strings.ToLower(strings.TrimSpace(p.Accessor))
}

// Descriptor is one resolved bound service. Implementations are immutable
// after construction; a descriptor is owned by the resolution pass that
// produced it and is never retained by a registry.
type Descriptor interface {
	ID() string
	Kind() TypeRef
	Label() string
	Properties() []DeclaredProperty
}

// Composite groups constituent descriptors presented by the platform as a
// single binding. Composites never survive flattening.
type Composite interface {
	Descriptor
	Constituents() []Descriptor
}

type BaseDescriptor struct {
	id    string
	kind  TypeRef
	label string
	props []DeclaredProperty
}

func NewBaseDescriptor(id string) *BaseDescriptor {
	return &BaseDescriptor{id: strings.TrimSpace(id), kind: KindService}
}

func NewDescriptor(id string, kind TypeRef, label string, props ...DeclaredProperty) *BaseDescriptor {
	if kind.IsZero() {
		kind = KindService
	}
	return &BaseDescriptor{
		id:    strings.TrimSpace(id),
		kind:  kind,
		label: strings.TrimSpace(label),
		props: props,
	}
}

func (d *BaseDescriptor) ID() string {
	if d == nil {
		return ""
	}
	return d.id
}

func (d *BaseDescriptor) Kind() TypeRef {
	if d == nil {
		return KindService
	}
	return d.kind
}

func (d *BaseDescriptor) Label() string {
	if d == nil {
		return ""
	}
	return d.label
}

func (d *BaseDescriptor) Properties() []DeclaredProperty {
	if d == nil {
		return nil
	}
	return append([]DeclaredProperty(nil), d.props...)
}

func (d *BaseDescriptor) String() string {
	return fmt.Sprintf("%s[%s]", d.Kind(), d.ID())
}

// KindComposite tags descriptors that only exist to group constituents.
var KindComposite = NewTypeRef("composite", KindService)

type CompositeDescriptor struct {
	id           string
	label        string
	constituents []Descriptor
}

func NewCompositeDescriptor(id, label string, constituents ...Descriptor) *CompositeDescriptor {
	return &CompositeDescriptor{
		id:           strings.TrimSpace(id),
		label:        strings.TrimSpace(label),
		constituents: constituents,
	}
}

func (d *CompositeDescriptor) ID() string {
	if d == nil {
		return ""
	}
	return d.id
}

func (d *CompositeDescriptor) Kind() TypeRef {
	return KindComposite
}

func (d *CompositeDescriptor) Label() string {
	if d == nil {
		return ""
	}
	return d.label
}

func (d *CompositeDescriptor) Properties() []DeclaredProperty {
	return nil
}

func (d *CompositeDescriptor) Constituents() []Descriptor {
	if d == nil {
		return nil
	}
	return append([]Descriptor(nil), d.constituents...)
}

// RawDescriptor is the platform-supplied shape for one bound service before
// resolution. Data is opaque to the core; recognizers inspect it without
// mutating it.
type RawDescriptor struct {
	ID     string
	Tag    string
	Data   map[string]any
	Nested []RawDescriptor
}

func (r RawDescriptor) IsComposite() bool {
	return len(r.Nested) > 0
}

type ApplicationInstanceInfo struct {
	AppID      string
	InstanceID string
	Properties map[string]any
}
