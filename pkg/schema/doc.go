// Package schema reads and writes automaton definition documents.
//
// A definition has three top-level mappings:
//
//	X:      state label -> {isInit, isFinal}
//	E:      event label -> {isObservable, isControllable, isFault}
//	delta:  any key     -> {start, name, ends}
//
// Documents may be JSON or YAML. Document order is preserved, so states,
// events and transitions keep the order in which they were written. Flags
// must be booleans or strings that spell a boolean ("True", "false", "1");
// any other value fails the load instead of being guessed at.
//
// Basic usage:
//
//	def, err := schema.ReadFile("plant.json")
//	if err != nil {
//	    return err
//	}
//	automaton, err := def.Build()
//
// Build validates every transition reference in document order and fails
// on the first invalid one with a *domain.InvalidTransitionReferenceError
// naming the entry key and the offending field.
package schema
