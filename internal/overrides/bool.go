package overrides

import "fmt"

// Bool is an extension value for Rust's bool, read in a lazy block with bool_var.
type Bool bool

// ParseBool accepts exactly the spellings Rust's bool parser accepts.
func ParseBool(s string) (Bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%q is not a bool (want true or false)", s)
}

func (b Bool) TypeName() string { return TypeBool }

func (b Bool) RawValue() string {
	if b {
		return "true"
	}
	return "false"
}

func (b Bool) Literal() string  { return b.RawValue() }
func (b Bool) Accessor() string { return "bool_var" }
