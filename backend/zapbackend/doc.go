// Package zapbackend binds the adapter to go.uber.org/zap.
//
// zap defines no trace level, so an adapter bound here writes trace calls
// at DebugLevel. Fatal records are written without zap's exit hook.
package zapbackend
