package render

import (
	"io"
	"text/template"

	"github.com/MakeNowJust/heredoc/v2"
)

// preambleKinds are the types that get a <type>_var accessor in the preamble.
var preambleKinds = []string{"i32", "i64", "i128", "u8", "u32", "u128", "f32", "f64", "usize", "bool"}

var preambleTemplate = template.Must(template.New("preamble").Parse(heredoc.Doc(`
	fn string_var(v: &str) -> String {
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
	{{range .}}
	num_var!({{.}}_var, {{.}});
	{{- end}}

	lazy_static::lazy_static! {
`)))

func writePreamble(w io.Writer) error {
	return preambleTemplate.Execute(w, preambleKinds)
}
