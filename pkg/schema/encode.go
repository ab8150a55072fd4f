package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// field is one key/value of an ordered object.
type field struct {
	key   string
	value any // bool, string or ordered
}

// ordered is an object whose keys serialize in insertion order.
type ordered []field

func (o ordered) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o ordered) node() *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range o {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.key})
		switch v := f.value.(type) {
		case ordered:
			n.Content = append(n.Content, v.node())
		case bool:
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)})
		default:
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fmt.Sprint(v)})
		}
	}
	return n
}

func (d *Definition) document() ordered {
	states := ordered{}
	for _, s := range d.States {
		states = append(states, field{s.Label, ordered{
			{"isInit", s.IsInit},
			{"isFinal", s.IsFinal},
		}})
	}
	events := ordered{}
	for _, e := range d.Events {
		events = append(events, field{e.Label, ordered{
			{"isObservable", e.IsObservable},
			{"isControllable", e.IsControllable},
			{"isFault", e.IsFault},
		}})
	}
	delta := ordered{}
	for _, t := range d.Transitions {
		delta = append(delta, field{t.Key, ordered{
			{"start", t.Start},
			{"name", t.Name},
			{"ends", t.Ends},
		}})
	}
	return ordered{
		{SectionStates, states},
		{SectionEvents, events},
		{SectionTransitions, delta},
	}
}

// Encode serializes the definition, keeping entry order.
func (d *Definition) Encode(format Format) ([]byte, error) {
	doc := d.document()
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode definition: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc.node()); err != nil {
			return nil, fmt.Errorf("failed to encode definition: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode definition: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported definition format %q", format)
	}
}
