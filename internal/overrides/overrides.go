// Package overrides retags or renames env keys before they are rendered.
//
// Rules come from a YAML types file:
//
//	SOME_I64_VAL:
//	  type: i64
//	FEATURE_ENABLED:
//	  type: bool
//	PORT:
//	  type: u32
//	  rename: HTTP_PORT
//
// or from KEY=type pairs given on the command line.
package overrides

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
	"github.com/spf13/afero"

	"github.com/AD7six/envgen/internal/envfile"
)

// TypeBool is the type name of the bool extension type.
const TypeBool = "bool"

// Rule describes how a single key is rewritten.
type Rule struct {
	Type   string `yaml:"type"`
	Rename string `yaml:"rename"`
}

// Set is a collection of rules keyed by the env key they apply to. It
// implements the KeyValue hook of the renderers.
type Set struct {
	rules map[string]Rule
	seen  map[string]struct{}
}

// New returns an empty Set.
func New() *Set {
	return &Set{rules: map[string]Rule{}, seen: map[string]struct{}{}}
}

// Load reads a YAML types file.
func Load(fs afero.Fs, path string) (*Set, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read types file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML rules.
func Parse(data []byte) (*Set, error) {
	var rules map[string]Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse types file: %w", err)
	}
	s := New()
	for key, r := range rules {
		if err := s.Add(key, r); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ParsePairs parses comma-separated KEY=type pairs, e.g. "PORT=u32,DEBUG=bool".
// Later pairs for the same key replace earlier ones.
func ParsePairs(s string) (*Set, error) {
	set := New()
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key, typ, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid type override %q, want KEY=type", p)
		}
		if err := set.Add(strings.TrimSpace(key), Rule{Type: strings.TrimSpace(typ)}); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Add validates r and stores it for key, replacing any existing rule.
func (s *Set) Add(key string, r Rule) error {
	if key == "" {
		return fmt.Errorf("type override with empty key")
	}
	if r.Type != "" && r.Type != TypeBool {
		if _, err := envfile.ParseKind(r.Type); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	s.rules[key] = r
	return nil
}

// Merge copies the rules of other into s; other wins on conflicts.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	for k, r := range other.rules {
		s.rules[k] = r
	}
}

// Len returns the number of rules.
func (s *Set) Len() int { return len(s.rules) }

// KeyValue applies the rule for key, if any.
func (s *Set) KeyValue(_ []string, key string, value envfile.Value) (string, envfile.Value, error) {
	r, ok := s.rules[key]
	if !ok {
		return key, value, nil
	}
	s.seen[key] = struct{}{}

	if r.Type != "" {
		var err error
		if value, err = retag(value, r.Type); err != nil {
			return "", envfile.Value{}, fmt.Errorf("%s: %w", key, err)
		}
	}
	if r.Rename != "" {
		key = r.Rename
	}
	return key, value, nil
}

// Unused returns, sorted, the keys that have a rule but were never seen by KeyValue.
func (s *Set) Unused() []string {
	unused := lo.Filter(lo.Keys(s.rules), func(k string, _ int) bool {
		_, ok := s.seen[k]
		return !ok
	})
	slices.Sort(unused)
	return unused
}

func retag(value envfile.Value, typ string) (envfile.Value, error) {
	if typ == TypeBool {
		text := value.RawValue()
		if value.Kind() == envfile.KindString {
			text = value.Str()
		}
		b, err := ParseBool(text)
		if err != nil {
			return envfile.Value{}, err
		}
		return envfile.CustomValue(b), nil
	}
	kind, err := envfile.ParseKind(typ)
	if err != nil {
		return envfile.Value{}, err
	}
	return envfile.Retag(value, kind)
}
