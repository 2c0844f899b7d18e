// Package resid models 32-bit packed resource identifiers.
//
// A resource identifier addresses one resource entry and packs three
// fields into a single uint32:
//
//	0xPPTTEEEE
//	  PP   - package id (8 bits)
//	  TT   - type id (8 bits)
//	  EEEE - entry id (16 bits)
//
// Package id 0x00 is never a real package: it marks a shared-library
// self-reference and is rewritten by the table before lookup.
package resid

import "fmt"

// ID is an unpacked resource identifier.
type ID struct {
	Package uint8
	Type    uint8
	Entry   uint16
}

// New builds an ID from its three fields.
func New(pkg, typ uint8, entry uint16) ID {
	return ID{Package: pkg, Type: typ, Entry: entry}
}

// FromRaw unpacks a raw 32-bit identifier.
func FromRaw(raw uint32) ID {
	return ID{
		Package: uint8(raw >> 24),
		Type:    uint8(raw >> 16),
		Entry:   uint16(raw),
	}
}

// Raw packs the identifier back into its 32-bit form.
func (id ID) Raw() uint32 {
	return uint32(id.Package)<<24 | uint32(id.Type)<<16 | uint32(id.Entry)
}

// String renders the identifier in the conventional hex form, e.g. 0x7f010002.
func (id ID) String() string {
	return fmt.Sprintf("0x%08x", id.Raw())
}
