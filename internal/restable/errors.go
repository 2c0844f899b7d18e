package restable

import "errors"

// Registration and lookup failures. Callers match with errors.Is; the
// wrapped message always carries the offending id or name.
var (
	// ErrDuplicateID is returned when a package with the same numeric id
	// is already registered.
	ErrDuplicateID = errors.New("multiple packages with same id")

	// ErrDuplicateName is returned when a package with the same name is
	// already registered.
	ErrDuplicateName = errors.New("multiple packages with same name")

	// ErrUndefinedPackage is returned when no package matches a lookup
	// and no framework loader could supply one.
	ErrUndefinedPackage = errors.New("undefined package")

	// ErrUndefinedType is returned when a package has no type with the
	// requested name.
	ErrUndefinedType = errors.New("undefined type")

	// ErrUndefinedResource is returned when a type has no resource entry
	// with the requested name or entry id.
	ErrUndefinedResource = errors.New("undefined resource")
)
