package restable

import "github.com/apkforge/restable/internal/resid"

// Package is the contract a loaded resource package exposes to the table.
// How a package is populated (binary table parsing, cache descriptors) is
// not the table's concern.
type Package interface {
	// ID returns the package's numeric id (1-255).
	ID() uint8

	// Name returns the package's unique name.
	Name() string

	// SpecCount returns the number of resource specs the package defines.
	SpecCount() int

	// Spec looks a spec up by its full identifier. Fails with
	// ErrUndefinedType or ErrUndefinedResource.
	Spec(id resid.ID) (Spec, error)

	// Type looks a resource type up by name. Fails with ErrUndefinedType.
	Type(name string) (Type, error)
}

// Type is a named group of resource specs within a package.
type Type interface {
	Name() string

	// Spec looks a spec up by resource name. Fails with ErrUndefinedResource.
	Spec(name string) (Spec, error)
}

// Spec is a single named resource entry.
type Spec interface {
	ID() resid.ID
	Name() string

	// Default returns the spec's default value.
	Default() Value
}

// Value is a resolved resource value.
type Value interface {
	String() string
}

// FrameworkLoader supplies framework packages the table does not hold yet.
// Implementations typically register the loaded package into the table as a
// side effect before returning it.
type FrameworkLoader interface {
	LoadPackage(t *Table, id uint8) (Package, error)
}
