/*
Package workspace serializes analyses per automaton name and persists their
reports.

An Automaton is single-writer. The Manager holds a reference-counted
in-process mutex per name and, when configured, a distributed lock, so that
replicas sharing a ReportStore never interleave analyses of the same name.
*/
package workspace
