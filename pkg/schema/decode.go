package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// rawEntry is a section entry before typing: its key and its field map.
type rawEntry struct {
	key    string
	fields map[string]any
}

type rawDocument map[string][]rawEntry

func isSection(key string) bool {
	return key == SectionStates || key == SectionEvents || key == SectionTransitions
}

type stateSpec struct {
	IsInit  bool `mapstructure:"isInit"`
	IsFinal bool `mapstructure:"isFinal"`
}

type eventSpec struct {
	IsObservable   bool `mapstructure:"isObservable"`
	IsControllable bool `mapstructure:"isControllable"`
	IsFault        bool `mapstructure:"isFault"`
	IsFaulty       bool `mapstructure:"isFaulty"`
}

type transitionSpec struct {
	Start string `mapstructure:"start"`
	Name  string `mapstructure:"name"`
	Ends  string `mapstructure:"ends"`
}

// Decode parses a definition document. Field failures are collected and
// returned together as an *AggregateError.
func Decode(data []byte, format Format) (*Definition, error) {
	var (
		raw rawDocument
		err error
	)
	switch format {
	case FormatJSON:
		raw, err = readJSON(data)
	case FormatYAML:
		raw, err = readYAML(data)
	default:
		return nil, fmt.Errorf("unsupported definition format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return raw.typed()
}

// DecodeReader reads r fully and decodes it.
func DecodeReader(r io.Reader, format Format) (*Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	return Decode(data, format)
}

func (raw rawDocument) typed() (*Definition, error) {
	def := &Definition{}
	var errs []error

	for _, e := range raw[SectionStates] {
		var spec stateSpec
		if err := decodeFields(SectionStates, e, &spec); err != nil {
			errs = append(errs, err)
			continue
		}
		def.States = append(def.States, StateEntry{Label: e.key, IsInit: spec.IsInit, IsFinal: spec.IsFinal})
	}

	for _, e := range raw[SectionEvents] {
		var spec eventSpec
		if err := decodeFields(SectionEvents, e, &spec); err != nil {
			errs = append(errs, err)
			continue
		}
		def.Events = append(def.Events, EventEntry{
			Label:          e.key,
			IsObservable:   spec.IsObservable,
			IsControllable: spec.IsControllable,
			IsFault:        spec.IsFault || spec.IsFaulty,
		})
	}

	for _, e := range raw[SectionTransitions] {
		var spec transitionSpec
		if err := decodeFields(SectionTransitions, e, &spec); err != nil {
			errs = append(errs, err)
			continue
		}
		missing := false
		for _, f := range [...]struct{ name, value string }{
			{"start", spec.Start}, {"name", spec.Name}, {"ends", spec.Ends},
		} {
			if f.value == "" {
				missing = true
				errs = append(errs, &ValidationError{
					Key:    SectionTransitions + "." + e.key + "." + f.name,
					Reason: "required",
				})
			}
		}
		if missing {
			continue
		}
		def.Transitions = append(def.Transitions, TransitionEntry{
			Key: e.key, Start: spec.Start, Name: spec.Name, Ends: spec.Ends,
		})
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return def, nil
}

func decodeFields(section string, e rawEntry, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  flagHook,
		ErrorUnused: true,
		MatchName:   func(mapKey, fieldName string) bool { return mapKey == fieldName },
		Result:      out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(e.fields); err != nil {
		var msErr *mapstructure.Error
		reason := err.Error()
		if errors.As(err, &msErr) {
			reason = strings.Join(msErr.Errors, "; ")
		}
		return &ValidationError{Key: section + "." + e.key, Reason: reason}
	}
	return nil
}

// flagHook accepts real booleans and strings strconv.ParseBool understands.
// Everything else aimed at a bool field is rejected.
func flagHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Bool {
		return data, nil
	}
	switch v := data.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean", v)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%v (%T) is not a boolean", data, data)
	}
}

func readJSON(data []byte) (rawDocument, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, &ValidationError{Key: "", Reason: "definition must be an object", Value: tok}
	}

	doc := rawDocument{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
		}
		key, _ := tok.(string)
		if !isSection(key) {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
			}
			continue
		}
		if _, dup := doc[key]; dup {
			return nil, &ValidationError{Key: key, Reason: "duplicate section"}
		}
		entries, err := readJSONSection(dec, key)
		if err != nil {
			return nil, err
		}
		doc[key] = entries
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return doc, nil
}

func readJSONSection(dec *json.Decoder, section string) ([]rawEntry, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	if tok == nil {
		return []rawEntry{}, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, &ValidationError{Key: section, Reason: "must be an object", Value: tok}
	}

	entries := []rawEntry{}
	seen := map[string]bool{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
		}
		key, _ := tok.(string)
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
		}
		if seen[key] {
			return nil, &ValidationError{Key: section + "." + key, Reason: "duplicate key"}
		}
		seen[key] = true

		fields, err := entryFields(section, key, value)
		if err != nil {
			return nil, err
		}
		entries = append(entries, rawEntry{key: key, fields: fields})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return entries, nil
}

func readYAML(data []byte) (rawDocument, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	doc := rawDocument{}
	if root.Kind == 0 {
		return doc, nil
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, &ValidationError{Key: "", Reason: "definition must be a mapping", Value: node.Value}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		if !isSection(key) {
			continue
		}
		if _, dup := doc[key]; dup {
			return nil, &ValidationError{Key: key, Reason: "duplicate section"}
		}
		entries, err := readYAMLSection(key, value)
		if err != nil {
			return nil, err
		}
		doc[key] = entries
	}
	return doc, nil
}

func readYAMLSection(section string, node *yaml.Node) ([]rawEntry, error) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return []rawEntry{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, &ValidationError{Key: section, Reason: "must be a mapping", Value: node.Value}
	}

	entries := []rawEntry{}
	seen := map[string]bool{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if seen[key] {
			return nil, &ValidationError{Key: section + "." + key, Reason: "duplicate key"}
		}
		seen[key] = true

		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return nil, &ValidationError{Key: section + "." + key, Reason: err.Error()}
		}
		fields, err := entryFields(section, key, value)
		if err != nil {
			return nil, err
		}
		entries = append(entries, rawEntry{key: key, fields: fields})
	}
	return entries, nil
}

func entryFields(section, key string, value any) (map[string]any, error) {
	if value == nil {
		return map[string]any{}, nil
	}
	fields, ok := value.(map[string]any)
	if !ok {
		return nil, &ValidationError{Key: section + "." + key, Reason: "must be a mapping", Value: value}
	}
	return fields, nil
}
