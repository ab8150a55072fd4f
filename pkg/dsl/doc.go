/*
Package dsl provides a fluent Go builder for automata.

It is the programmatic twin of definition documents: useful for tests,
generated automata and anywhere a JSON or YAML file would be noise.

Example usage:

	b := dsl.New()

	b.State("idle").Initial().Final().
		On("start", "busy")

	b.State("busy").
		On("done", "idle").
		On("crash", "broken")

	b.State("broken")

	b.Event("crash").Fault()

	automaton, err := b.Build()

Events named by On are declared on first use with every flag off; call
Event to set their flags. Transition targets are not declared implicitly, so
a typo in a target surfaces as an invalid reference when Build runs.
*/
package dsl
