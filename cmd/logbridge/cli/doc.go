// Package cli implements the logbridge command.
//
//	logbridge probe [backend...]
//	logbridge emit [flags] message...
//
// probe binds each backend and prints how the facade levels map onto it.
// emit selects a backend the same way a program using logfactory would and
// writes a single message through it.
package cli
