package schema_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/aretw0/fsa/pkg/domain"
	"github.com/aretw0/fsa/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile_Fixtures(t *testing.T) {
	for _, name := range []string{"plant.json", "plant.yaml"} {
		t.Run(name, func(t *testing.T) {
			def, err := schema.ReadFile(filepath.Join("testdata", name))
			require.NoError(t, err)

			require.Len(t, def.States, 4)
			assert.Equal(t, schema.StateEntry{Label: "s0", IsInit: true}, def.States[0])
			assert.Equal(t, schema.StateEntry{Label: "s1", IsFinal: true}, def.States[1])
			assert.Equal(t, schema.StateEntry{Label: "s3"}, def.States[3])

			require.Len(t, def.Events, 3)
			assert.Equal(t, schema.EventEntry{Label: "a", IsObservable: true, IsControllable: true}, def.Events[0])
			assert.Equal(t, schema.EventEntry{Label: "f", IsFault: true}, def.Events[2])

			keys := make([]string, 0, len(def.Transitions))
			for _, tr := range def.Transitions {
				keys = append(keys, tr.Key)
			}
			assert.Equal(t, []string{"t0", "t1", "t2", "t3"}, keys)
			assert.Equal(t, schema.TransitionEntry{Key: "t2", Start: "s0", Name: "f", Ends: "s2"}, def.Transitions[2])
		})
	}
}

func TestDecode_PreservesDocumentOrder(t *testing.T) {
	doc := `{"X": {"z": {}, "a": {}, "m": {}}, "E": {}, "delta": {}}`
	def, err := schema.Decode([]byte(doc), schema.FormatJSON)
	require.NoError(t, err)

	var got []string
	for _, s := range def.States {
		got = append(got, s.Label)
	}
	assert.Equal(t, []string{"z", "a", "m"}, got)
}

func TestDecode_Flags(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    bool
		wantErr bool
	}{
		{"Bool True", `true`, true, false},
		{"Bool False", `false`, false, false},
		{"String True", `"True"`, true, false},
		{"String False", `"False"`, false, false},
		{"String One", `"1"`, true, false},
		{"Null Is Absent", `null`, false, false},
		{"Number", `1`, false, true},
		{"Garbage String", `"maybe"`, false, true},
		{"Object", `{}`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"X": {"s0": {"isInit": ` + tt.value + `}}}`
			def, err := schema.Decode([]byte(doc), schema.FormatJSON)
			if tt.wantErr {
				require.Error(t, err)
				errs := schema.ValidationErrors(err)
				require.Len(t, errs, 1)
				var vErr *schema.ValidationError
				require.True(t, errors.As(errs[0], &vErr))
				assert.Equal(t, "X.s0", vErr.Key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, def.States[0].IsInit)
		})
	}
}

func TestDecode_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		format  schema.Format
		doc     string
		wantKey string
	}{
		{"Unknown Field", schema.FormatJSON, `{"X": {"s0": {"isInitial": true}}}`, "X.s0"},
		{"Field Name Case", schema.FormatJSON, `{"X": {"s0": {"ISINIT": true}}}`, "X.s0"},
		{"YAML Field Name Case", schema.FormatYAML, "X:\n  s0:\n    isfinal: true\n", "X.s0"},
		{"Transition Field Case", schema.FormatJSON, `{"delta": {"t0": {"Start": "a", "name": "e", "ends": "b"}}}`, "delta.t0"},
		{"Entry Not A Mapping", schema.FormatJSON, `{"X": {"s0": true}}`, "X.s0"},
		{"Section Not A Mapping", schema.FormatJSON, `{"X": ["s0"]}`, "X"},
		{"Duplicate Key", schema.FormatJSON, `{"X": {"s0": {}, "s0": {}}}`, "X.s0"},
		{"Missing Ends", schema.FormatJSON, `{"delta": {"t0": {"start": "a", "name": "e"}}}`, "delta.t0.ends"},
		{"YAML Duplicate Key", schema.FormatYAML, "E:\n  a: {}\n  a: {}\n", "E.a"},
		{"YAML Section Scalar", schema.FormatYAML, "X: nope\n", "X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.Decode([]byte(tt.doc), tt.format)
			require.Error(t, err)
			var vErr *schema.ValidationError
			require.True(t, errors.As(err, &vErr), "expected a ValidationError, got %v", err)
			assert.Equal(t, tt.wantKey, vErr.Key)
		})
	}
}

func TestDecode_CollectsAllFieldErrors(t *testing.T) {
	doc := `{
		"X": {"s0": {"isInit": 3}, "s1": {"isFinal": "nope"}},
		"delta": {"t0": {}}
	}`
	_, err := schema.Decode([]byte(doc), schema.FormatJSON)
	require.Error(t, err)
	// two bad flags plus three missing transition fields
	assert.Len(t, schema.ValidationErrors(err), 5)
}

func TestDecode_IgnoresUnknownSections(t *testing.T) {
	doc := `{"name": "plant", "meta": {"x": [1, 2]}, "X": {"s0": {"isInit": true}}}`
	def, err := schema.Decode([]byte(doc), schema.FormatJSON)
	require.NoError(t, err)
	assert.Len(t, def.States, 1)
}

func TestDecode_EmptyYAML(t *testing.T) {
	def, err := schema.Decode(nil, schema.FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, def.States)
}

func TestBuild(t *testing.T) {
	def, err := schema.ReadFile(filepath.Join("testdata", "plant.json"))
	require.NoError(t, err)

	a, err := def.Build()
	require.NoError(t, err)
	assert.Len(t, a.States(), 4)
	assert.Len(t, a.Events(), 3)
	require.Len(t, a.Transitions(), 4)
	assert.Equal(t, "s0 -f-> s2", a.Transitions()[2].String())

	f, ok := a.Event("f")
	require.True(t, ok)
	assert.True(t, f.IsFault())
	assert.False(t, f.IsObservable())
}

func TestBuild_InvalidReference(t *testing.T) {
	base := `"X": {"s0": {"isInit": true}, "s1": {}}, "E": {"a": {}}`
	tests := []struct {
		name      string
		delta     string
		wantKey   string
		wantField domain.ReferenceField
		wantLabel string
	}{
		{"Start", `"t0": {"start": "x", "name": "a", "ends": "s1"}`, "t0", domain.FieldStart, "x"},
		{"Event", `"t0": {"start": "s0", "name": "zz", "ends": "s1"}`, "t0", domain.FieldEvent, "zz"},
		{"End", `"t0": {"start": "s0", "name": "a", "ends": "s9"}`, "t0", domain.FieldEnd, "s9"},
		{
			"First In Document Order",
			`"t0": {"start": "s0", "name": "a", "ends": "s1"},
			 "t5": {"start": "s0", "name": "a", "ends": "q"},
			 "t1": {"start": "q", "name": "a", "ends": "s1"}`,
			"t5", domain.FieldEnd, "q",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := schema.Decode([]byte(`{`+base+`, "delta": {`+tt.delta+`}}`), schema.FormatJSON)
			require.NoError(t, err)

			_, err = def.Build()
			var refErr *domain.InvalidTransitionReferenceError
			require.True(t, errors.As(err, &refErr), "got %v", err)
			assert.Equal(t, tt.wantKey, refErr.Key)
			assert.Equal(t, tt.wantField, refErr.Field)
			assert.Equal(t, tt.wantLabel, refErr.Label)
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	src, err := schema.ReadFile(filepath.Join("testdata", "plant.yaml"))
	require.NoError(t, err)
	a, err := src.Build()
	require.NoError(t, err)

	for _, format := range []schema.Format{schema.FormatJSON, schema.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			out, err := schema.FromAutomaton(a).Encode(format)
			require.NoError(t, err)

			back, err := schema.Decode(out, format)
			require.NoError(t, err)
			assert.Equal(t, src.States, back.States)
			assert.Equal(t, src.Events, back.Events)
			assert.Equal(t, src.Transitions, back.Transitions)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, schema.FormatYAML, schema.FormatOf("a/b.yml"))
	assert.Equal(t, schema.FormatYAML, schema.FormatOf("b.YAML"))
	assert.Equal(t, schema.FormatJSON, schema.FormatOf("b.json"))
	assert.Equal(t, schema.FormatJSON, schema.FormatOf("b"))

	f, err := schema.ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, schema.FormatYAML, f)
	_, err = schema.ParseFormat("toml")
	assert.Error(t, err)
}

func TestDecode_Syntax(t *testing.T) {
	_, err := schema.Decode([]byte(`{"X": {`), schema.FormatJSON)
	assert.ErrorIs(t, err, schema.ErrSyntax)

	_, err = schema.Decode([]byte("X: [unclosed\n"), schema.FormatYAML)
	assert.ErrorIs(t, err, schema.ErrSyntax)
}
