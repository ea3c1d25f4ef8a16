package dragmerge

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// globalDebug enables invariant assertions. Node operations and controllers
// read it without holding a reference to anything.
var globalDebug bool

// debugLog receives debug-mode warnings.
var debugLog = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Str("pkg", "dragmerge").Logger()

// SetDebugMode enables or disables debug mode. When enabled, session
// invariant violations and disposed-node access panic, and deep trees are
// reported on stderr.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// DebugMode reports whether debug mode is on.
func DebugMode() bool {
	return globalDebug
}

// debugCheckSession panics when the session breaks an invariant. Only a bug
// in this package can get here.
func debugCheckSession(s *session, op string) {
	if v := s.violation(); v != "" {
		panic(fmt.Sprintf("dragmerge debug: %s: %s (mode %s)", op, v, s.mode))
	}
}

func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("dragmerge debug: %s on disposed node %q", op, n.Name))
	}
}

const debugMaxTreeDepth = 16

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLog.Warn().Int("depth", depth).Int("max", debugMaxTreeDepth).
			Str("node", n.Name).Msg("scene tree too deep")
	}
}
