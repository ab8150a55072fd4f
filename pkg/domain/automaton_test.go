package domain_test

import (
	"errors"
	"testing"

	"github.com/aretw0/fsa/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomaton_AddState(t *testing.T) {
	a := domain.New()

	s0, err := a.AddState("s0", true, false)
	require.NoError(t, err)
	assert.Equal(t, "s0", s0.Label())
	assert.True(t, s0.IsInitial())
	assert.False(t, s0.IsFinal())

	_, err = a.AddState("s1", false, true)
	require.NoError(t, err)

	t.Run("Duplicate Label", func(t *testing.T) {
		before := a.Revision()
		_, err := a.AddState("s0", false, true)

		var dup *domain.DuplicateLabelError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, domain.KindState, dup.Kind)
		assert.Equal(t, "s0", dup.Label)

		// Automaton unchanged.
		assert.Equal(t, before, a.Revision())
		assert.Len(t, a.States(), 2)
		assert.Equal(t, []string{"s1"}, labelsOf(a.FinalStates()))
	})

	assert.Equal(t, []string{"s0", "s1"}, labelsOf(a.States()))
	assert.Equal(t, []string{"s0"}, labelsOf(a.InitialStates()))
	assert.Equal(t, []string{"s1"}, labelsOf(a.FinalStates()))
}

func TestAutomaton_AddEvent(t *testing.T) {
	a := domain.New()

	e, err := a.AddEvent("f1", false, true, true)
	require.NoError(t, err)
	assert.False(t, e.IsObservable())
	assert.True(t, e.IsControllable())
	assert.True(t, e.IsFault())

	rev := a.Revision()
	_, err = a.AddEvent("f1", true, true, false)
	var dup *domain.DuplicateLabelError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, domain.KindEvent, dup.Kind)
	assert.Len(t, a.Events(), 1)
	assert.Equal(t, rev, a.Revision(), "alphabet changes never invalidate analyses")
}

func TestAutomaton_AddTransition(t *testing.T) {
	a := scenarioA().build(t)

	tests := []struct {
		name              string
		start, event, end string
		check             func(t *testing.T, err error)
	}{
		{
			name: "Unknown Start", start: "ghost", event: "a", end: "s1",
			check: func(t *testing.T, err error) {
				var e *domain.UnknownStateError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, "ghost", e.Label)
			},
		},
		{
			name: "Unknown Event", start: "s0", event: "zz", end: "s1",
			check: func(t *testing.T, err error) {
				var e *domain.UnknownEventError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, "zz", e.Label)
			},
		},
		{
			name: "Unknown End", start: "s0", event: "a", end: "nowhere",
			check: func(t *testing.T, err error) {
				var e *domain.UnknownStateError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, "nowhere", e.Label)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(a.Transitions())
			_, err := a.AddTransition(tt.start, tt.event, tt.end)
			tt.check(t, err)
			assert.Len(t, a.Transitions(), before)
		})
	}

	t.Run("No Deduplication", func(t *testing.T) {
		before := len(a.Transitions())
		_, err := a.AddTransition("s0", "a", "s1")
		require.NoError(t, err)
		assert.Len(t, a.Transitions(), before+1)

		matches, err := a.Filter(domain.TransitionFilter{Start: "s0", End: "s1"})
		require.NoError(t, err)
		assert.Len(t, matches, 2)
	})
}

func TestAutomaton_Filter(t *testing.T) {
	a := fixture{
		states:  []string{"s0", "s1", "s2"},
		initial: []string{"s0"},
		edges: [][3]string{
			{"s0", "a", "s1"},
			{"s0", "b", "s2"},
			{"s1", "a", "s2"},
			{"s2", "b", "s0"},
			{"s0", "a", "s2"},
		},
	}.build(t)

	tests := []struct {
		name   string
		filter domain.TransitionFilter
		want   []string
	}{
		{"No Filter", domain.TransitionFilter{}, []string{
			"s0 -a-> s1", "s0 -b-> s2", "s1 -a-> s2", "s2 -b-> s0", "s0 -a-> s2",
		}},
		{"By Start", domain.TransitionFilter{Start: "s0"}, []string{
			"s0 -a-> s1", "s0 -b-> s2", "s0 -a-> s2",
		}},
		{"By Event", domain.TransitionFilter{Event: "b"}, []string{
			"s0 -b-> s2", "s2 -b-> s0",
		}},
		{"By End", domain.TransitionFilter{End: "s2"}, []string{
			"s0 -b-> s2", "s1 -a-> s2", "s0 -a-> s2",
		}},
		{"Start And Event", domain.TransitionFilter{Start: "s0", Event: "a"}, []string{
			"s0 -a-> s1", "s0 -a-> s2",
		}},
		{"All Fields", domain.TransitionFilter{Start: "s1", Event: "a", End: "s2"}, []string{
			"s1 -a-> s2",
		}},
		{"No Match", domain.TransitionFilter{Start: "s1", Event: "b"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rev := a.Revision()
			got, err := a.Filter(tt.filter)
			require.NoError(t, err)

			var rendered []string
			for _, tr := range got {
				rendered = append(rendered, tr.String())
			}
			assert.Equal(t, tt.want, rendered)
			assert.Equal(t, rev, a.Revision(), "Filter must be side-effect free")
		})
	}

	t.Run("Unknown Labels", func(t *testing.T) {
		_, err := a.Filter(domain.TransitionFilter{Start: "ghost"})
		var us *domain.UnknownStateError
		assert.ErrorAs(t, err, &us)

		_, err = a.Filter(domain.TransitionFilter{Event: "ghost"})
		var ue *domain.UnknownEventError
		assert.ErrorAs(t, err, &ue)
	})
}

func TestAutomaton_AccessorsReturnCopies(t *testing.T) {
	a := scenarioA().build(t)

	states := a.States()
	states[0] = nil
	assert.NotNil(t, a.States()[0])

	rel := a.Transitions()
	first := rel[0]
	rel[0] = domain.Transition{}
	assert.NotNil(t, a.Transitions()[0].Start)

	ix := a.Index()
	out := ix.Outgoing(first.Start.Label())
	require.NotEmpty(t, out)
	out[0] = domain.Transition{}
	assert.Equal(t, first, ix.Outgoing(first.Start.Label())[0])

	in := ix.Incoming(first.End.Label())
	require.NotEmpty(t, in)
	in[0] = domain.Transition{}
	assert.Equal(t, first.End, ix.Incoming(first.End.Label())[0].End)
	assert.Contains(t, ix.Successors(first.Start.Label()), first.End.Label())
}

func TestInvalidTransitionReferenceError_Unwrap(t *testing.T) {
	err := &domain.InvalidTransitionReferenceError{
		Key:   "t3",
		Field: domain.FieldEnd,
		Label: "x9",
		Err:   &domain.UnknownStateError{Label: "x9"},
	}
	assert.Equal(t, `transition "t3": invalid end reference "x9"`, err.Error())

	var us *domain.UnknownStateError
	assert.True(t, errors.As(err, &us))
}
