package core

import (
	"path/filepath"
	"runtime"
	"strings"
)

// maxCallerDepth bounds the stack walk in FindCaller
const maxCallerDepth = 32

// CallerInfo contains information about the caller. PC is the return
// address of the frame as reported by runtime.Callers, suitable for
// slog.NewRecord and runtime.CallersFrames.
type CallerInfo struct {
	PC        uintptr
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// FindCaller walks the stack and returns the first frame following the
// frames whose function name starts with origin. Backends use it to attribute
// a log call to the code that called the adapter rather than to the adapter
// itself. An undefined CallerInfo is returned when origin is not on the stack.
func FindCaller(origin string) CallerInfo {
	if origin == "" {
		return CallerInfo{}
	}

	var pcs [maxCallerDepth]uintptr
	// skip runtime.Callers and FindCaller
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	// runtime.Callers yields one pc per logical frame, inlined ones included,
	// so the i-th frame belongs to pcs[i]
	inOrigin := false
	for i := 0; i < n; i++ {
		frame, more := frames.Next()
		if strings.HasPrefix(frame.Function, origin) {
			inOrigin = true
		} else if inOrigin {
			return callerFromFrame(pcs[i], frame)
		}
		if !more {
			break
		}
	}
	return CallerInfo{}
}

func callerFromFrame(pc uintptr, frame runtime.Frame) CallerInfo {
	return CallerInfo{
		PC:        pc,
		File:      frame.File,
		ShortFile: filepath.Base(frame.File),
		Line:      frame.Line,
		Function:  frame.Function,
		Defined:   true,
	}
}
