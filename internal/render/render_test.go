package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AD7six/envgen/internal/envfile"
)

const wantPreamble = `fn string_var(v: &str) -> String {
    std::env::var(v).unwrap()
}

macro_rules! num_var {
    ($v: ident, $num: ty) => {
        #[allow(dead_code)]
        fn $v(v: &str) -> $num {
            string_var(v).parse().unwrap()
        }
    };
}

num_var!(i32_var, i32);
num_var!(i64_var, i64);
num_var!(i128_var, i128);
num_var!(u8_var, u8);
num_var!(u32_var, u32);
num_var!(u128_var, u128);
num_var!(f32_var, f32);
num_var!(f64_var, f64);
num_var!(usize_var, usize);
num_var!(bool_var, bool);

lazy_static::lazy_static! {
`

const sampleEnv = `SOME_KEY=hello
# this is a comment
SOME_KEY_WITH_COMMENT=1
SOME_I64_VAL=1
SOME_F32=1.5
# separated comment

ANOTHER_F32=2.25
`

// retagI64 widens SOME_I64_VAL the way a caller-supplied hook would.
type retagI64 struct{}

func (retagI64) KeyValue(_ []string, key string, v envfile.Value) (string, envfile.Value, error) {
	if key != "SOME_I64_VAL" {
		return key, v, nil
	}
	nv, err := envfile.Retag(v, envfile.KindI64)
	return key, nv, err
}

func TestRenderLazy(t *testing.T) {
	var buf bytes.Buffer
	if err := Render([]byte(sampleEnv), &buf, ModeLazy, Options{}); err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	want := wantPreamble + `    pub static ref SOME_KEY: String = string_var("SOME_KEY");
    // this is a comment
    pub static ref SOME_KEY_WITH_COMMENT: i32 = i32_var("SOME_KEY_WITH_COMMENT");
    pub static ref SOME_I64_VAL: i32 = i32_var("SOME_I64_VAL");
    pub static ref SOME_F32: f32 = f32_var("SOME_F32");
    pub static ref ANOTHER_F32: f32 = f32_var("ANOTHER_F32");
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderLazyEndToEnd(t *testing.T) {
	var buf bytes.Buffer
	if err := Render([]byte("SOME_KEY=hello\nSOME_FLOAT=1.5\n"), &buf, ModeLazy, Options{}); err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	out := buf.String()

	for _, line := range []string{
		`    pub static ref SOME_KEY: String = string_var("SOME_KEY");`,
		`    pub static ref SOME_FLOAT: f32 = f32_var("SOME_FLOAT");`,
	} {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("output missing %q:\n%s", line, out)
		}
	}
	if !strings.HasPrefix(out, wantPreamble) {
		t.Errorf("output does not start with the preamble:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n}\n") {
		t.Errorf("output does not end with the closing brace:\n%s", out)
	}
}

func TestRenderLazyOptions(t *testing.T) {
	opts := Options{
		KeepCommentsOnBlankLine: true,
		KeyValue:                retagI64{},
		CustomAccessors:         "fn duration_var(v: &str) -> Duration { todo!() }",
	}
	var buf bytes.Buffer
	if err := Render([]byte(sampleEnv), &buf, ModeLazy, opts); err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, opts.CustomAccessors+"\n"+wantPreamble) {
		t.Errorf("custom accessors should come first:\n%s", out)
	}
	if !strings.Contains(out, `    pub static ref SOME_I64_VAL: i64 = i64_var("SOME_I64_VAL");`) {
		t.Errorf("SOME_I64_VAL not retagged:\n%s", out)
	}
	if !strings.Contains(out, "    // separated comment\n    pub static ref ANOTHER_F32") {
		t.Errorf("comment before blank line should be kept:\n%s", out)
	}
}

func TestRenderLazyOmitComments(t *testing.T) {
	var buf bytes.Buffer
	if err := Render([]byte(sampleEnv), &buf, ModeLazy, Options{OmitComments: true}); err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "// this is a comment") {
		t.Errorf("comments should be omitted:\n%s", buf.String())
	}
}

func TestRenderConst(t *testing.T) {
	var buf bytes.Buffer
	if err := Render([]byte(sampleEnv), &buf, ModeConst, Options{KeyValue: retagI64{}}); err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	want := `pub const SOME_KEY: &'static str = "hello";
// this is a comment
pub const SOME_KEY_WITH_COMMENT: i32 = 1i32;
pub const SOME_I64_VAL: i64 = 1i64;
pub const SOME_F32: f32 = 1.5f32;
pub const ANOTHER_F32: f32 = 2.25f32;
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderConstNonFinite(t *testing.T) {
	input := "MAX=inf\nMIN=-Infinity\nMISSING=nan\nHUGE=1e50\n"

	var buf bytes.Buffer
	if err := Render([]byte(input), &buf, ModeConst, Options{}); err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	want := `pub const MAX: f32 = f32::INFINITY;
pub const MIN: f32 = f32::NEG_INFINITY;
pub const MISSING: f32 = f32::NAN;
pub const HUGE: f32 = f32::INFINITY;
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderLazyNonFinite(t *testing.T) {
	var buf bytes.Buffer
	if err := Render([]byte("MAX=inf\n"), &buf, ModeLazy, Options{}); err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `    pub static ref MAX: f32 = f32_var("MAX");`+"\n") {
		t.Errorf("missing f32 binding for MAX:\n%s", buf.String())
	}
}

func TestRenderErrors(t *testing.T) {
	t.Run("malformed line keeps earlier output", func(t *testing.T) {
		var buf bytes.Buffer
		err := Render([]byte("A=1\nBROKEN\n"), &buf, ModeConst, Options{})
		var mle *envfile.MalformedLineError
		if !errors.As(err, &mle) {
			t.Fatalf("Render() error = %v, want *MalformedLineError", err)
		}
		if buf.String() != "pub const A: i32 = 1i32;\n" {
			t.Errorf("partial output = %q", buf.String())
		}
	})

	t.Run("lazy block is not closed on failure", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Render([]byte("BROKEN\n"), &buf, ModeLazy, Options{}); err == nil {
			t.Fatal("Render() expected error")
		}
		if !strings.HasSuffix(buf.String(), "lazy_static::lazy_static! {\n") {
			t.Errorf("output should stop after the preamble:\n%s", buf.String())
		}
	})

	t.Run("key value hook error aborts", func(t *testing.T) {
		var buf bytes.Buffer
		err := Render([]byte("SOME_I64_VAL=abc\n"), &buf, ModeConst, Options{KeyValue: retagI64{}})
		if err == nil {
			t.Fatal("Render() expected retag error")
		}
	})

	t.Run("unknown mode", func(t *testing.T) {
		if err := Render(nil, &bytes.Buffer{}, Mode("yaml"), Options{}); err == nil {
			t.Fatal("Render() expected error for unknown mode")
		}
	})
}

type durationCustom struct{ secs string }

func (d durationCustom) TypeName() string { return "Duration" }
func (d durationCustom) RawValue() string { return d.secs }
func (d durationCustom) Literal() string  { return "Duration::from_secs(" + d.secs + ")" }
func (d durationCustom) Accessor() string { return "duration_var" }

func TestLazyBinding(t *testing.T) {
	tests := []struct {
		name         string
		value        envfile.Value
		wantType     string
		wantAccessor string
	}{
		{"string is owned", envfile.String("x"), "String", "string_var"},
		{"i32", envfile.I32(1), "i32", "i32_var"},
		{"classified integer", envfile.Classify("1"), "i32", "i32_var"},
		{"f64", envfile.F64(1), "f64", "f64_var"},
		{"usize", envfile.USize(1), "usize", "usize_var"},
		{"infinity is an f32", envfile.Classify("inf"), "f32", "f32_var"},
		{"nan is an f32", envfile.Classify("NaN"), "f32", "f32_var"},
		{"custom accessor used verbatim", envfile.CustomValue(durationCustom{"5"}), "Duration", "duration_var"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, acc := LazyBinding(tt.value)
			if typ != tt.wantType || acc != tt.wantAccessor {
				t.Errorf("LazyBinding() = (%q, %q), want (%q, %q)", typ, acc, tt.wantType, tt.wantAccessor)
			}
		})
	}
}

func TestModeSet(t *testing.T) {
	var m Mode
	if err := m.Set(" CONST "); err != nil || m != ModeConst {
		t.Errorf("Set(CONST) = %v, mode %q", err, m)
	}
	if err := m.Set("lazy"); err != nil || m != ModeLazy {
		t.Errorf("Set(lazy) = %v, mode %q", err, m)
	}
	if err := m.Set("json"); err == nil {
		t.Error("Set(json) expected error")
	}
	if m.Type() != "mode" || m.String() != "lazy" {
		t.Errorf("Type()/String() = %q/%q", m.Type(), m.String())
	}
}
