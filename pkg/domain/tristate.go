package domain

import (
	"bytes"
	"fmt"
)

// Tristate is a boolean annotation that may not have been computed yet.
type Tristate int8

const (
	// Unknown means the analysis producing the value has not run for the
	// current revision.
	Unknown Tristate = iota
	True
	False
)

// TristateOf converts a computed boolean.
func TristateOf(b bool) Tristate {
	if b {
		return True
	}
	return False
}

// Known reports whether the value has been computed.
func (t Tristate) Known() bool {
	return t != Unknown
}

// Bool returns true only for True.
func (t Tristate) Bool() bool {
	return t == True
}

func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes Unknown as null.
func (t Tristate) MarshalJSON() ([]byte, error) {
	switch t {
	case True:
		return []byte("true"), nil
	case False:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, true and false.
func (t *Tristate) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "null":
		*t = Unknown
	case "true":
		*t = True
	case "false":
		*t = False
	default:
		return fmt.Errorf("invalid tristate %s", data)
	}
	return nil
}
