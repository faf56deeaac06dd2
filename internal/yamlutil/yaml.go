// Package yamlutil wraps YAML parsing to isolate the external dependency.
// This allows swapping the underlying YAML library without modifying callers.
package yamlutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrNotMapping     = errors.New("yamlutil: document is not a mapping")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// MarshalFlow renders v on a single line using YAML flow style.
func MarshalFlow(v any) (string, error) {
	result, err := yaml.MarshalWithOptions(v, yaml.Flow(true))
	if err != nil {
		return "", fmt.Errorf("yamlutil: %w", err)
	}
	return string(trimNewline(result)), nil
}

// FlowMapping renders a decoded nested mapping as single-line YAML.
// It reports false when v is not a mapping.
func FlowMapping(v any) (string, bool) {
	ms, ok := v.(yaml.MapSlice)
	if !ok {
		return "", false
	}
	s, err := MarshalFlow(ms)
	if err != nil {
		return "", false
	}
	return s, true
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Entry is a top-level key of a YAML mapping with its decoded value.
//
// Value holds the generic decoding: string, bool, integer and float kinds,
// nil for null, []any for sequences and yaml.MapSlice for nested mappings.
// Unquoted scalars that read as timestamps decode to time.Time; quoted ones
// stay strings.
type Entry struct {
	Key   string
	Value any
}

// timestampFormats are the plain-scalar layouts promoted to time.Time.
var timestampFormats = []string{
	time.RFC3339Nano,
	"2006-01-02t15:04:05.999999999Z07:00",
	time.DateTime,
	time.DateOnly,
}

// Entries decodes a YAML mapping document and returns its keys in source order.
// Null keys are skipped. An empty document yields no entries and no error.
// Documents whose root is not a mapping return ErrNotMapping.
func Entries(data []byte) ([]Entry, error) {
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}

	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, nil
	}

	pairs, err := mappingValues(file.Docs[0].Body)
	if err != nil {
		return nil, err
	}

	var ms yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(data, &ms, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}

	timestamps := plainTimestamps(pairs)
	entries := make([]Entry, 0, len(ms))
	for _, item := range ms {
		if item.Key == nil {
			continue
		}
		key := fmt.Sprint(item.Key)
		value := item.Value
		if t, ok := timestamps[key]; ok {
			value = t
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}
	return entries, nil
}

// mappingValues returns the key/value pairs of a document body.
func mappingValues(body ast.Node) ([]*ast.MappingValueNode, error) {
	switch n := body.(type) {
	case *ast.MappingNode:
		return n.Values, nil
	case *ast.MappingValueNode:
		return []*ast.MappingValueNode{n}, nil
	case *ast.CommentGroupNode:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: got %s", ErrNotMapping, body.Type())
	}
}

// plainTimestamps finds top-level values written as unquoted timestamps.
func plainTimestamps(pairs []*ast.MappingValueNode) map[string]time.Time {
	found := make(map[string]time.Time)
	for _, mv := range pairs {
		str, ok := mv.Value.(*ast.StringNode)
		if !ok || str.Token == nil || str.Token.Type != token.StringType {
			continue
		}
		t, ok := parseTimestamp(str.Value)
		if !ok {
			continue
		}
		key := mv.Key.GetToken()
		if key == nil {
			continue
		}
		found[key.Value] = t
	}
	return found
}

func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}
