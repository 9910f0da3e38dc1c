// Package bridgetest provides test support for the bridge adapter.
//
// Recorder is an in-memory backend whose severity constants come in three
// variants: with TRACE, without TRACE, and incompatibly ordered. It records
// every forwarded call so tests can assert on the exact message, cause,
// ordinal and origin the adapter passed.
//
// Run is a conformance suite for real backends. Each backend package calls
// it from its own tests, which means every run happens in a test binary
// that links exactly one logging library.
package bridgetest
