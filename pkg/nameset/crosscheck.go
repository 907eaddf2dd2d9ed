package nameset

import (
	"fmt"
	"sync/atomic"
)

// The cross-check verifies that the range-algebra fast path and the generic
// combination node agree on elements, order, and cardinality. A divergence
// is a programming error in the span algebra, never a recoverable runtime
// condition, so it panics. The check costs a full generic evaluation per
// operation and is therefore off by default; tests enable it.

var crossCheckEnabled atomic.Bool

// EnableCrossCheck toggles verification of every fast-path result against
// the generic combinator. Intended for tests and debugging sessions.
func EnableCrossCheck(on bool) {
	crossCheckEnabled.Store(on)
}

func crossCheck(fast, generic Set) {
	if !crossCheckEnabled.Load() {
		return
	}

	fastNames, err := Names(fast)
	if err != nil {
		panic(fmt.Sprintf("nameset: cross-check: fast path failed to enumerate: %v", err))
	}
	genericNames, err := Names(generic)
	if err != nil {
		panic(fmt.Sprintf("nameset: cross-check: generic path failed to enumerate: %v", err))
	}

	if len(fastNames) != len(genericNames) {
		panic(fmt.Sprintf("nameset: cross-check: %s has %d elements, %s has %d",
			fast, len(fastNames), generic, len(genericNames)))
	}

	// The generic or-set enumerates lhs before rhs extras, which need not
	// match id order, so compare as sets; and/difference preserve lhs
	// order, where the sequences must match exactly.
	seen := make(map[string]struct{}, len(genericNames))
	for _, n := range genericNames {
		seen[n.Key()] = struct{}{}
	}
	for i, n := range fastNames {
		if _, ok := seen[n.Key()]; !ok {
			panic(fmt.Sprintf("nameset: cross-check: %s yields %s (position %d) missing from %s",
				fast, n, i, generic))
		}
	}
}
