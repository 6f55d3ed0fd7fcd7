package interp

import (
	"github.com/automeka/boost-regex/backtrack"
	"github.com/automeka/boost-regex/program"
)

// MatchPrefix runs one prefix attempt starting at the matcher's current
// position, per spec.md §4.2's five-step procedure. It returns
// has_found_match; Err reports memory_exhausted / complexity_exceeded /
// invalid_program if the attempt aborted rather than simply failing.
func (m *Matcher) MatchPrefix() bool {
	m.hasPartialMatch = false
	m.hasFoundMatch = false
	m.err = nil
	m.pstate = m.prog.Entry()
	m.resetCaptures()
	m.captures[0].First = m.position
	m.restart = m.position
	m.stack.Reset()
	m.resetRepCounts()

	ok := m.run()

	if !ok && m.haveBest {
		copy(m.captures, m.best)
		m.hasFoundMatch = true
		ok = true
	}
	if !ok && m.hasPartialMatch && m.flags.Has(MatchPartial) {
		m.captures[0].Last = m.last
		m.captures[0].Matched = true
		m.hasFoundMatch = true
		ok = true
	}
	if !ok {
		m.position = m.restart
	}
	return m.hasFoundMatch
}

// run is the main dispatch loop: while pstate is not null, dispatch the
// current node's handler; on failure, unwind to the most recent
// choice-point. It returns false if the attempt fails outright (stack
// exhausted with no more alternatives) or aborts with an error.
func (m *Matcher) run() bool {
	handlers := dispatchTable()
	for m.pstate != program.InvalidNodeID {
		m.stateCount++
		if m.stateCount > m.maxStateCount {
			m.err = ErrComplexityExceeded
			return false
		}
		id := m.pstate
		n := m.prog.Node(id)
		if int(n.Op) >= len(handlers) || handlers[n.Op] == nil {
			m.err = ErrInvalidProgram
			return false
		}
		if handlers[n.Op](m, id, n) {
			continue
		}
		if m.err != nil {
			return false
		}
		if !m.backtrackOnce() {
			return false
		}
	}
	return true
}

// backtrackOnce pops frames until it finds a choice-point (alt or
// rep_iteration) to resume at, applying every undo frame (start_capture,
// position_restore, assertion) it passes along the way. It returns false
// once the stack is exhausted with no choice-point found.
func (m *Matcher) backtrackOnce() bool {
	for {
		f, ok := m.stack.Pop()
		if !ok {
			return false
		}
		switch f.Kind {
		case backtrack.KindStartCapture:
			m.captures[f.Index].First = f.PriorFirst
			m.captures[f.Index].Matched = f.PriorMatch
		case backtrack.KindPositionRestore:
			m.position = f.Position
		case backtrack.KindAssertion:
			m.pstate = f.PriorPState
			m.position = f.PriorPosition
		case backtrack.KindAlt:
			m.pstate = f.Target
			m.position = f.Position
			return true
		case backtrack.KindRepIteration:
			if !m.resumeRepIteration(f) {
				return false
			}
			return true
		}
	}
}

// resumeRepIteration applies the alternative recorded by a rep_iteration
// frame (spec.md §5): for a greedy choice, stop the loop and proceed to
// tail; for a lazy choice, attempt one more iteration of the body (or, for
// the specialized single-unit opcodes, consume one more unit inline).
func (m *Matcher) resumeRepIteration(f backtrack.Frame) bool {
	node := m.prog.Node(f.RepNode)
	if f.RepGreedy {
		m.setRepCount(f.RepNode, f.Count)
		m.pstate = node.Next
		return true
	}
	if node.Op == program.OpRep {
		if !m.pushPositionRestore() {
			return false
		}
		m.setRepCount(f.RepNode, f.Count+1)
		m.pstate = node.Rep.Body
		return true
	}
	consumed, ok := m.matchPrimitiveUnit(node)
	if !ok {
		m.setRepCount(f.RepNode, f.Count)
		m.pstate = node.Next
		return true
	}
	if !m.pushPositionRestore() {
		return false
	}
	m.position += consumed
	m.setRepCount(f.RepNode, f.Count+1)
	m.pstate = f.RepNode
	return true
}

// runNested runs the dispatch loop from entry against a fresh backtracking
// stack of its own (with no frame limit), restoring the outer stack
// afterward. It is the
// mechanism behind OpLookahead and OpAtomicGroup: both run a sub-program
// to completion (or failure) without letting its internal choice-points
// leak into the caller's backtracking (spec.md's lookahead/atomic-group
// supplements, SPEC_FULL.md items 1-2).
func (m *Matcher) runNested(entry program.NodeID) bool {
	savedStack := m.stack
	savedPState := m.pstate
	savedRestart := m.restart

	nested := backtrack.NewIterativeStack(0)
	nested.Push(backtrack.Frame{Kind: backtrack.KindAssertion, PriorPState: savedPState, PriorPosition: m.position})
	m.stack = nested
	m.pstate = entry

	ok := m.run()

	m.stack = savedStack
	m.pstate = savedPState
	m.restart = savedRestart
	return ok
}
