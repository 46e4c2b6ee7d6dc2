package envfile

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/AD7six/envgen/internal/logging"
)

// CommentToken replaces '#' when a comment is carried into the generated source.
const CommentToken = "//"

// Transform renders the units of an env file. Write is called once per
// key/value line, in file order. Returning an error aborts the read; units
// already written are not rolled back.
type Transform interface {
	Write(comments []string, key string, value Value) error
}

// BlankLinePolicy may be implemented by a Transform to keep comments that are
// separated from their key by a blank line. Transforms that don't implement
// it get the default: a blank line drops the pending comments.
type BlankLinePolicy interface {
	ClearCommentsOnBlankLine() bool
}

// TransformFunc adapts a function to the Transform interface.
type TransformFunc func(comments []string, key string, value Value) error

func (f TransformFunc) Write(comments []string, key string, value Value) error {
	return f(comments, key, value)
}

func clearCommentsOnBlankLine(t Transform) bool {
	if p, ok := t.(BlankLinePolicy); ok {
		return p.ClearCommentsOnBlankLine()
	}
	return true
}

// Read parses data as an env file and hands each entry to t.
//
// Lines are trimmed. Blank lines never produce an entry. Lines starting with
// '#' are collected as comments for the next entry. Any other line must
// contain '='; the key is the text before the first '=', the value is the
// rest of the line. Comments left over at the end of the input are dropped.
func Read(data []byte, t Transform) error {
	if !utf8.Valid(data) {
		return ErrInvalidEncoding
	}

	clearOnBlank := clearCommentsOnBlankLine(t)
	var comments []string

	for i, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			if clearOnBlank && len(comments) > 0 {
				logging.Logger.Debug("dropping comments before blank line", "line", i+1, "count", len(comments))
				comments = nil
			}
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			comments = append(comments, strings.ReplaceAll(trimmed, "#", CommentToken))
			continue
		}

		sep := strings.IndexByte(trimmed, '=')
		if sep < 0 {
			return &MalformedLineError{Line: i + 1, Text: trimmed}
		}
		key, raw := trimmed[:sep], trimmed[sep+1:]
		value := Classify(raw)

		logging.Logger.Debug("classified entry", "line", i+1, "key", key, "kind", value.Kind())

		// The slice handed to t is its own; start a fresh buffer for the next key.
		if err := t.Write(comments, key, value); err != nil {
			return fmt.Errorf("line %d: %s: %w", i+1, key, err)
		}
		comments = nil
	}

	if len(comments) > 0 {
		logging.Logger.Debug("dropping trailing comments", "count", len(comments))
	}
	return nil
}

// Unit is a single parsed entry.
type Unit struct {
	Comments []string
	Key      string
	Value    Value
}

type collector struct {
	units        []Unit
	clearOnBlank bool
}

func (c *collector) ClearCommentsOnBlankLine() bool { return c.clearOnBlank }

func (c *collector) Write(comments []string, key string, value Value) error {
	c.units = append(c.units, Unit{Comments: comments, Key: key, Value: value})
	return nil
}

// Parse reads data and returns its entries in file order.
func Parse(data []byte, clearCommentsOnBlankLine bool) ([]Unit, error) {
	c := &collector{clearOnBlank: clearCommentsOnBlankLine}
	if err := Read(data, c); err != nil {
		return nil, err
	}
	return c.units, nil
}
