// Package zerologbackend binds the adapter to github.com/rs/zerolog.
package zerologbackend
