// Package core defines the logging facade shared by every logbridge package.
//
// Application code depends on the Log interface and the six Level values
// (trace, debug, info, warn, error, fatal). Nothing in this package writes
// output: a Log is always backed by an adapter that forwards to a concrete
// logging library.
//
// FindCaller lets backends report the source location of the application
// code that called the adapter, skipping the adapter's own frames. The
// adapter passes its qualified identity as the origin of every call.
package core
