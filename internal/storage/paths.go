package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
)

var (
	// placeholderRegex matches placeholder patterns like {word}
	placeholderRegex = regexp.MustCompile(`\{([A-Za-z0-9_\-]+)\}`)

	// envVarRegex matches environment variable naming pattern (uppercase letters, numbers, underscores)
	envVarRegex = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
)

// pathData is the data available to output path templates.
type pathData struct {
	Dir  string // directory of the input file
	Name string // module name derived from the input file name
	Base string // input file name as-is
}

var builtins = map[string]string{
	"dir":  "{{.Dir}}",
	"name": "{{.Name}}",
	"base": "{{.Base}}",
}

// OutputPath expands an output path pattern for the given input file.
//
// {dir}, {name} and {base} refer to the input file; {ENV_VAR} placeholders
// are replaced by the variable's value. Unknown or unset placeholders are
// an error.
func OutputPath(pattern, input string) (string, error) {
	var unknown []string
	translated := placeholderRegex.ReplaceAllStringFunc(pattern, func(m string) string {
		name := placeholderRegex.FindStringSubmatch(m)[1]
		if expr, ok := builtins[name]; ok {
			return expr
		}
		if envVarRegex.MatchString(name) {
			if val := os.Getenv(name); val != "" {
				// Escape so template syntax in the value is kept literally.
				return strings.ReplaceAll(val, "{{", `{{"{{"}}`)
			}
		}
		unknown = append(unknown, m)
		return m
	})
	if len(unknown) > 0 {
		return "", fmt.Errorf("unknown placeholder(s) in output path %q: %s", pattern, strings.Join(unknown, ", "))
	}

	tmpl, err := template.New("path").Parse(translated)
	if err != nil {
		return "", fmt.Errorf("failed to parse output path template: %w", err)
	}

	base := filepath.Base(input)
	data := pathData{
		Dir:  filepath.Dir(input),
		Name: ModuleName(base),
		Base: base,
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute output path template: %w", err)
	}
	return filepath.Clean(buf.String()), nil
}
