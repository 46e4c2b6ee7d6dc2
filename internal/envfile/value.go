package envfile

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Kind identifies which variant of a Value is active.
type Kind int

const (
	KindI32 Kind = iota
	KindI64
	KindI128
	KindU32
	KindU128
	KindF32
	KindF64
	KindUSize
	KindString
	KindCustom
)

var kindNames = map[Kind]string{
	KindI32:    "i32",
	KindI64:    "i64",
	KindI128:   "i128",
	KindU32:    "u32",
	KindU128:   "u128",
	KindF32:    "f32",
	KindF64:    "f64",
	KindUSize:  "usize",
	KindString: "string",
	KindCustom: "custom",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a kind name (as returned by Kind.String) back to a Kind.
// The custom kind cannot be parsed since it has no text form.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name && k != KindCustom {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q", name)
}

// Custom is implemented by values whose type is not one of the built-in kinds.
type Custom interface {
	// TypeName is the Rust type of the value.
	TypeName() string
	// RawValue is the literal text of the value without a type suffix.
	RawValue() string
	// Literal is the fully typed literal expression.
	Literal() string
	// Accessor is the expression used to read the value inside a lazy block.
	Accessor() string
}

// Value is a classified env value. Exactly one variant is active, see Kind.
type Value struct {
	kind   Kind
	i      int64
	u      uint64
	big    *big.Int
	f      float64
	s      string
	custom Custom
}

// I32 returns a 32-bit signed value.
func I32(v int32) Value { return Value{kind: KindI32, i: int64(v)} }

// I64 returns a 64-bit signed value.
func I64(v int64) Value { return Value{kind: KindI64, i: v} }

// U32 returns a 32-bit unsigned value.
func U32(v uint32) Value { return Value{kind: KindU32, u: uint64(v)} }

// USize returns a usize value.
func USize(v uint64) Value { return Value{kind: KindUSize, u: v} }

// F32 returns a 32-bit float value.
func F32(v float32) Value { return Value{kind: KindF32, f: float64(v)} }

// F64 returns a 64-bit float value.
func F64(v float64) Value { return Value{kind: KindF64, f: v} }

// String returns a string value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// I128 returns a 128-bit signed value. It panics if v does not fit.
func I128(v *big.Int) Value {
	if v.Cmp(minI128) < 0 || v.Cmp(maxI128) > 0 {
		panic(fmt.Sprintf("envfile: %s overflows i128", v))
	}
	return Value{kind: KindI128, big: new(big.Int).Set(v)}
}

// U128 returns a 128-bit unsigned value. It panics if v does not fit.
func U128(v *big.Int) Value {
	if v.Sign() < 0 || v.Cmp(maxU128) > 0 {
		panic(fmt.Sprintf("envfile: %s overflows u128", v))
	}
	return Value{kind: KindU128, big: new(big.Int).Set(v)}
}

// CustomValue wraps an extension type.
func CustomValue(c Custom) Value { return Value{kind: KindCustom, custom: c} }

var (
	maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	maxI128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minI128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// Kind reports which variant is active.
func (v Value) Kind() Kind { return v.kind }

// Int returns the value of a signed variant that fits in 64 bits.
func (v Value) Int() int64 { return v.i }

// Uint returns the value of U32 and USize variants.
func (v Value) Uint() uint64 { return v.u }

// Big returns a copy of the value of I128 and U128 variants, nil otherwise.
func (v Value) Big() *big.Int {
	if v.big == nil {
		return nil
	}
	return new(big.Int).Set(v.big)
}

// Float returns the value of F32 and F64 variants.
func (v Value) Float() float64 { return v.f }

// Str returns the value of the String variant.
func (v Value) Str() string { return v.s }

// Custom returns the extension of a KindCustom value, nil otherwise.
func (v Value) Custom() Custom { return v.custom }

// RustType is the type used in a declaration of the value.
func (v Value) RustType() string {
	var t string
	switch v.kind {
	case KindString:
		t = "&'static str"
	case KindCustom:
		t = v.custom.TypeName()
	default:
		t = v.kind.String()
	}
	return strings.ReplaceAll(t, `"`, "")
}

// RawValue is the value as text. Strings are wrapped in double quotes as-is.
// Non-finite floats read inf, -inf and NaN.
func (v Value) RawValue() string {
	if v.IsNonFinite() {
		switch {
		case math.IsNaN(v.f):
			return "NaN"
		case v.f < 0:
			return "-inf"
		}
		return "inf"
	}
	switch v.kind {
	case KindI32, KindI64:
		return strconv.FormatInt(v.i, 10)
	case KindU32, KindUSize:
		return strconv.FormatUint(v.u, 10)
	case KindI128, KindU128:
		return v.big.String()
	case KindF32:
		return strconv.FormatFloat(v.f, 'f', -1, 32)
	case KindF64:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindString:
		return `"` + v.s + `"`
	case KindCustom:
		return v.custom.RawValue()
	}
	return ""
}

// IsNonFinite reports whether v is an F32 or F64 holding ±Inf or NaN.
func (v Value) IsNonFinite() bool {
	return (v.kind == KindF32 || v.kind == KindF64) && (math.IsInf(v.f, 0) || math.IsNaN(v.f))
}

// Literal is the raw value followed by its type, so 1 declared as f32 reads 1f32.
func (v Value) Literal() string {
	switch v.kind {
	case KindString:
		return v.RawValue()
	case KindCustom:
		return v.custom.Literal()
	}
	return v.RawValue() + v.RustType()
}

// text is the unquoted source text of the value, used when re-parsing.
func (v Value) text() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindCustom:
		return v.custom.RawValue()
	}
	return v.RawValue()
}

// Retag re-parses the value as kind. It fails if the value's text does not
// fit the requested kind.
func Retag(v Value, kind Kind) (Value, error) {
	if v.kind == kind && kind != KindCustom {
		return v, nil
	}
	s := v.text()
	switch kind {
	case KindI32:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return Value{}, retagError(s, kind, err)
		}
		return I32(int32(n)), nil
	case KindI64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, retagError(s, kind, err)
		}
		return I64(n), nil
	case KindU32:
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return Value{}, retagError(s, kind, err)
		}
		return U32(uint32(n)), nil
	case KindUSize:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Value{}, retagError(s, kind, err)
		}
		return USize(n), nil
	case KindI128, KindU128:
		n, ok := parseBigDecimal(s)
		if !ok {
			return Value{}, retagError(s, kind, strconv.ErrSyntax)
		}
		if kind == KindI128 {
			if n.Cmp(minI128) < 0 || n.Cmp(maxI128) > 0 {
				return Value{}, retagError(s, kind, strconv.ErrRange)
			}
			return I128(n), nil
		}
		if n.Sign() < 0 || n.Cmp(maxU128) > 0 {
			return Value{}, retagError(s, kind, strconv.ErrRange)
		}
		return U128(n), nil
	case KindF32:
		f, ok := parseFloat(s, 32)
		if !ok {
			return Value{}, retagError(s, kind, strconv.ErrSyntax)
		}
		return F32(float32(f)), nil
	case KindF64:
		f, ok := parseFloat(s, 64)
		if !ok {
			return Value{}, retagError(s, kind, strconv.ErrSyntax)
		}
		return F64(f), nil
	case KindString:
		return String(s), nil
	}
	return Value{}, fmt.Errorf("cannot retag %q as %s", s, kind)
}

func retagError(s string, kind Kind, err error) error {
	return fmt.Errorf("cannot retag %q as %s: %w", s, kind, err)
}

func parseBigDecimal(s string) (*big.Int, bool) {
	if s == "" || strings.ContainsRune(s, '_') {
		return nil, false
	}
	return new(big.Int).SetString(s, 10)
}
