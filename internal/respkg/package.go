// Package respkg provides an in-memory implementation of the resource
// package contract. Packages are built programmatically or from cache
// descriptors; parsing the on-disk binary table is out of scope here.
package respkg

import (
	"fmt"

	"github.com/apkforge/restable/internal/resid"
	"github.com/apkforge/restable/internal/restable"
)

// Value is a scalar resource value.
type Value string

func (v Value) String() string { return string(v) }

// Package is a namespace of resource types and entries.
type Package struct {
	id        uint8
	name      string
	types     map[string]*Type
	typesByID map[uint8]*Type
	specCount int
}

// New creates an empty package.
func New(id uint8, name string) *Package {
	return &Package{
		id:        id,
		name:      name,
		types:     make(map[string]*Type),
		typesByID: make(map[uint8]*Type),
	}
}

// ID returns the package's numeric id.
func (p *Package) ID() uint8 { return p.id }

// Name returns the package's name.
func (p *Package) Name() string { return p.name }

// SpecCount returns the number of resource specs across all types.
func (p *Package) SpecCount() int { return p.specCount }

// AddSpec registers one resource spec, creating its type on first use.
// Duplicate entry ids or names within a type are rejected.
func (p *Package) AddSpec(typeID uint8, typeName string, entryID uint16, name string, def Value) error {
	typ, ok := p.typesByID[typeID]
	if !ok {
		typ = &Type{
			id:      typeID,
			name:    typeName,
			byName:  make(map[string]*Spec),
			byEntry: make(map[uint16]*Spec),
		}
		p.types[typeName] = typ
		p.typesByID[typeID] = typ
	}

	if _, ok := typ.byEntry[entryID]; ok {
		return fmt.Errorf("duplicate entry id=0x%04x in type %s", entryID, typeName)
	}
	if _, ok := typ.byName[name]; ok {
		return fmt.Errorf("duplicate resource name=%s in type %s", name, typeName)
	}

	spec := &Spec{
		id:   resid.New(p.id, typeID, entryID),
		name: name,
		def:  def,
	}
	typ.byEntry[entryID] = spec
	typ.byName[name] = spec
	p.specCount++
	return nil
}

// Spec looks a spec up by its full identifier.
func (p *Package) Spec(id resid.ID) (restable.Spec, error) {
	typ, ok := p.typesByID[id.Type]
	if !ok {
		return nil, fmt.Errorf("type id=0x%02x in package %s: %w", id.Type, p.name, restable.ErrUndefinedType)
	}
	spec, ok := typ.byEntry[id.Entry]
	if !ok {
		return nil, fmt.Errorf("resource %s: %w", id, restable.ErrUndefinedResource)
	}
	return spec, nil
}

// Type looks a resource type up by name.
func (p *Package) Type(name string) (restable.Type, error) {
	typ, ok := p.types[name]
	if !ok {
		return nil, fmt.Errorf("type name=%s in package %s: %w", name, p.name, restable.ErrUndefinedType)
	}
	return typ, nil
}

// Type groups the specs of one resource type.
type Type struct {
	id      uint8
	name    string
	byName  map[string]*Spec
	byEntry map[uint16]*Spec
}

// Name returns the type's name.
func (t *Type) Name() string { return t.name }

// Spec looks a spec up by resource name.
func (t *Type) Spec(name string) (restable.Spec, error) {
	spec, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("resource name=%s in type %s: %w", name, t.name, restable.ErrUndefinedResource)
	}
	return spec, nil
}

// Spec is one named resource entry with its default value.
type Spec struct {
	id   resid.ID
	name string
	def  Value
}

// ID returns the spec's full resource identifier.
func (s *Spec) ID() resid.ID { return s.id }

// Name returns the resource name.
func (s *Spec) Name() string { return s.name }

// Default returns the spec's default value.
func (s *Spec) Default() restable.Value { return s.def }
