// Package output opens the destinations logfactory hands to backends:
// stdout, stderr or a log file with optional rotation.
//
// A rotating File is an io.WriteCloser safe for concurrent use. Each Write
// is passed to the file unbuffered, so a record is never split across a
// rotation. When the file exceeds MaxSize bytes, or has been open longer
// than MaxAge, it is renamed with a timestamp suffix and a new file is
// opened. MaxBackups bounds how many renamed files are kept.
package output
