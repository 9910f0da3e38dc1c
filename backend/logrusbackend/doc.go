// Package logrusbackend binds the adapter to github.com/sirupsen/logrus.
//
// logrus defines TraceLevel, so trace calls keep their own severity.
package logrusbackend
