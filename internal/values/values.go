// Package values defines the placeholder-value resolver used during
// metadata assembly. Manifest fields such as version names and SDK bounds
// may hold symbolic resource references instead of concrete values; a
// Resolver substitutes the concrete value when one is available.
package values

// Resolver substitutes concrete values for symbolic references found in
// manifest fields. Both methods report ok=false when the input is already
// concrete or no substitution is known; callers then keep the original.
type Resolver interface {
	// ResolveString resolves a string-typed reference against the
	// generated output under outDir.
	ResolveString(outDir, value string) (string, bool)

	// ResolveInteger resolves an integer-typed reference against the
	// generated output under outDir.
	ResolveInteger(outDir, value string) (string, bool)
}

// Nop is a Resolver that never substitutes anything.
type Nop struct{}

func (Nop) ResolveString(string, string) (string, bool)  { return "", false }
func (Nop) ResolveInteger(string, string) (string, bool) { return "", false }

// Static is a map-backed Resolver. Useful for tests and for callers that
// pre-extract reference values up front.
type Static struct {
	Strings  map[string]string
	Integers map[string]string
}

func (s Static) ResolveString(_ string, value string) (string, bool) {
	v, ok := s.Strings[value]
	return v, ok
}

func (s Static) ResolveInteger(_ string, value string) (string, bool) {
	v, ok := s.Integers[value]
	return v, ok
}
