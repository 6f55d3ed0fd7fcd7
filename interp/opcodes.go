package interp

import (
	"github.com/automeka/boost-regex/backtrack"
	"github.com/automeka/boost-regex/program"
)

// handler dispatches one instruction node. It returns true to advance
// (having set m.pstate itself, usually to n.Next) or false to signal
// backtrack. Grounded on spec.md §4.2's "table indexed by opcode" dispatch
// model: a slice indexed by Opcode, not a map or type switch.
type handler func(m *Matcher, id program.NodeID, n *program.Node) bool

// handlerTable is built once at package init and never mutated afterward,
// so every Matcher shares it without allocation per attempt. It is filled
// in init rather than by its declaration because handleLookahead reaches
// run, which reads the table, and a declaration initializer would form an
// initialization cycle.
var handlerTable []handler

func init() { handlerTable = buildDispatchTable() }

// dispatchTable returns the shared opcode -> handler table.
func dispatchTable() []handler { return handlerTable }

// buildDispatchTable constructs the opcode -> handler array. It is a
// function rather than a package-level var literal so every entry can be
// written next to its opcode's constant without relying on iota
// arithmetic lining up with array order.
func buildDispatchTable() []handler {
	t := make([]handler, program.NumOpcodes())
	t[program.OpStartMark] = handleStartMark
	t[program.OpEndMark] = handleEndMark
	t[program.OpLiteral] = handleLiteral
	t[program.OpStartLine] = handleStartLine
	t[program.OpEndLine] = handleEndLine
	t[program.OpWild] = handleWild
	t[program.OpMatch] = handleMatch
	t[program.OpWordBoundary] = handleWordBoundary
	t[program.OpWithinWord] = handleWithinWord
	t[program.OpWordStart] = handleWordStart
	t[program.OpWordEnd] = handleWordEnd
	t[program.OpBufferStart] = handleBufferStart
	t[program.OpBufferEnd] = handleBufferEnd
	t[program.OpSoftBufferEnd] = handleSoftBufferEnd
	t[program.OpBackref] = handleBackref
	t[program.OpSet] = handleSet
	t[program.OpLongSet] = handleLongSet
	t[program.OpJump] = handleJump
	t[program.OpAlt] = handleAlt
	t[program.OpRep] = handleRep
	t[program.OpDotRepeatFast] = handleCountedRepeat
	t[program.OpDotRepeatSlow] = handleCountedRepeat
	t[program.OpCharRepeat] = handleCountedRepeat
	t[program.OpSetRepeat] = handleCountedRepeat
	t[program.OpLongSetRepeat] = handleCountedRepeat
	t[program.OpCombining] = handleCombining
	t[program.OpRestartContinue] = handleRestartContinue
	t[program.OpLookahead] = handleLookahead
	t[program.OpAtomicGroup] = handleAtomicGroup
	return t
}

func handleStartMark(m *Matcher, _ program.NodeID, n *program.Node) bool {
	idx := n.Mark
	prior := m.captures[idx]
	if !m.stack.Push(backtrack.Frame{Kind: backtrack.KindStartCapture, Index: idx, PriorFirst: prior.First, PriorMatch: prior.Matched}) {
		m.err = ErrMemoryExhausted
		return false
	}
	m.captures[idx].First = m.position
	m.pstate = n.Next
	return true
}

func handleEndMark(m *Matcher, _ program.NodeID, n *program.Node) bool {
	if n.Mark < 0 {
		m.pstate = program.InvalidNodeID
		return true
	}
	m.captures[n.Mark].Last = m.position
	m.captures[n.Mark].Matched = true
	m.pstate = n.Next
	return true
}

func handleLiteral(m *Matcher, _ program.NodeID, n *program.Node) bool {
	start := m.position
	for _, want := range n.Literal {
		got, ok := m.byteAt(m.position)
		if !ok {
			m.hasPartialMatch = true
			m.position = start
			return false
		}
		if got != m.oracle.Translate(want, m.icase) {
			m.position = start
			return false
		}
		m.position++
	}
	m.pstate = n.Next
	return true
}

func handleStartLine(m *Matcher, _ program.NodeID, n *program.Node) bool {
	if m.atBase() {
		if m.flags.Has(MatchNotBOL) {
			return false
		}
		m.pstate = n.Next
		return true
	}
	prev, ok := m.rawByteAt(m.position - 1)
	if !ok || !m.oracle.IsSeparator(prev) {
		return false
	}
	if prev == '\r' {
		if cur, ok2 := m.rawByteAt(m.position); ok2 && cur == '\n' {
			return false
		}
	}
	m.pstate = n.Next
	return true
}

func handleEndLine(m *Matcher, _ program.NodeID, n *program.Node) bool {
	if m.atLast() {
		if m.flags.Has(MatchNotEOL) {
			return false
		}
		m.pstate = n.Next
		return true
	}
	cur, ok := m.rawByteAt(m.position)
	if !ok || !m.oracle.IsSeparator(cur) {
		return false
	}
	if cur == '\n' {
		if prev, ok2 := m.rawByteAt(m.position - 1); ok2 && prev == '\r' {
			return false
		}
	}
	m.pstate = n.Next
	return true
}

func handleWild(m *Matcher, _ program.NodeID, n *program.Node) bool {
	b, ok := m.rawByteAt(m.position)
	if !ok {
		return false
	}
	if m.oracle.IsSeparator(b) && m.flags.Has(MatchNotDotNewline) {
		return false
	}
	if b == 0 && m.flags.Has(MatchNotDotNull) {
		return false
	}
	m.position++
	m.pstate = n.Next
	return true
}

func handleMatch(m *Matcher, _ program.NodeID, _ *program.Node) bool {
	if m.flags.Has(MatchNotNull) && m.position == m.captures[0].First {
		return false
	}
	if m.flags.Has(MatchAll) && m.position != m.last {
		return false
	}
	m.captures[0].Last = m.position
	m.captures[0].Matched = true

	if m.flags.Has(MatchPosix) && !m.flags.Has(MatchAny) {
		if !m.haveBest || m.captures[0].Last > m.best[0].Last {
			m.haveBest = true
			m.best = append(m.best[:0], m.captures...)
		}
		return false
	}

	m.pstate = program.InvalidNodeID
	m.hasFoundMatch = true
	return true
}

func handleWordBoundary(m *Matcher, _ program.NodeID, n *program.Node) bool {
	before := m.wordBefore()
	at := m.wordAt()
	boundary := before != at
	if boundary {
		if m.atBase() && m.flags.Has(MatchNotBOW) {
			boundary = false
		}
		if m.atLast() && m.flags.Has(MatchNotEOW) {
			boundary = false
		}
	}
	if !boundary {
		return false
	}
	m.pstate = n.Next
	return true
}

func handleWithinWord(m *Matcher, _ program.NodeID, n *program.Node) bool {
	if !m.wordBefore() || !m.wordAt() {
		return false
	}
	m.pstate = n.Next
	return true
}

func handleWordStart(m *Matcher, _ program.NodeID, n *program.Node) bool {
	if !m.wordAt() || m.wordBefore() {
		return false
	}
	m.pstate = n.Next
	return true
}

func handleWordEnd(m *Matcher, _ program.NodeID, n *program.Node) bool {
	if !m.wordBefore() || m.wordAt() {
		return false
	}
	m.pstate = n.Next
	return true
}

func handleBufferStart(m *Matcher, _ program.NodeID, n *program.Node) bool {
	if !m.atBase() || m.flags.Has(MatchNotBOB) {
		return false
	}
	m.pstate = n.Next
	return true
}

func handleBufferEnd(m *Matcher, _ program.NodeID, n *program.Node) bool {
	if !m.atLast() || m.flags.Has(MatchNotEOB) {
		return false
	}
	m.pstate = n.Next
	return true
}

func handleSoftBufferEnd(m *Matcher, _ program.NodeID, n *program.Node) bool {
	if m.flags.Has(MatchNotEOB) {
		return false
	}
	for i := m.position; i < m.last; i++ {
		b, ok := m.rawByteAt(i)
		if !ok || !m.oracle.IsSeparator(b) {
			return false
		}
	}
	m.pstate = n.Next
	return true
}

func handleBackref(m *Matcher, _ program.NodeID, n *program.Node) bool {
	ref := m.captures[n.BackrefIndex]
	if !ref.Matched {
		return false
	}
	length := ref.Last - ref.First
	for i := 0; i < length; i++ {
		got, ok := m.byteAt(m.position + i)
		if !ok {
			m.hasPartialMatch = true
			return false
		}
		want, _ := m.byteAt(ref.First + i)
		if got != want {
			return false
		}
	}
	m.position += length
	m.pstate = n.Next
	return true
}

func handleSet(m *Matcher, _ program.NodeID, n *program.Node) bool {
	b, ok := m.byteAt(m.position)
	if !ok || !n.Set.Contains(b) {
		return false
	}
	m.position++
	m.pstate = n.Next
	return true
}

func handleLongSet(m *Matcher, _ program.NodeID, n *program.Node) bool {
	consumed, ok := n.LongSet.Match(m.input, m.position)
	if !ok {
		return false
	}
	m.position += consumed
	m.pstate = n.Next
	return true
}

func handleJump(m *Matcher, _ program.NodeID, n *program.Node) bool {
	m.pstate = n.Alt
	return true
}

func handleAlt(m *Matcher, _ program.NodeID, n *program.Node) bool {
	if !m.stack.Push(backtrack.Frame{Kind: backtrack.KindAlt, Target: n.Alt, Position: m.position}) {
		m.err = ErrMemoryExhausted
		return false
	}
	m.pstate = n.Next
	return true
}

// handleRep implements the generic counted repetition of spec.md §4.4.
// The node's body sub-program must loop back to this node's own id on
// completion of one iteration, so repeated entry here (whether forced by
// min or chosen greedily/lazily) can track iteration count and offer the
// correct backtracking choice at each step.
func handleRep(m *Matcher, id program.NodeID, n *program.Node) bool {
	rep := n.Rep
	count := m.repCount(id)

	if count < rep.Min {
		if !m.pushPositionRestore() {
			return false
		}
		m.setRepCount(id, count+1)
		m.pstate = rep.Body
		return true
	}

	atMax := rep.Max >= 0 && count >= rep.Max

	if rep.Greedy {
		if atMax {
			m.pstate = n.Next
			return true
		}
		if !m.stack.Push(backtrack.Frame{Kind: backtrack.KindRepIteration, RepNode: id, Count: count, RepGreedy: true}) {
			m.err = ErrMemoryExhausted
			return false
		}
		if !m.pushPositionRestore() {
			return false
		}
		m.setRepCount(id, count+1)
		m.pstate = rep.Body
		return true
	}

	if !atMax {
		if !m.stack.Push(backtrack.Frame{Kind: backtrack.KindRepIteration, RepNode: id, Count: count, RepGreedy: false}) {
			m.err = ErrMemoryExhausted
			return false
		}
	}
	m.pstate = n.Next
	return true
}

// handleCountedRepeat implements the specialized single-unit repetitions
// (spec.md §4.2: dot_repeat_fast/slow, char_repeat, set_repeat,
// long_set_repeat) as a counted scan with no inner body dispatch: each
// iteration tests and consumes exactly one unit via matchPrimitiveUnit.
func handleCountedRepeat(m *Matcher, id program.NodeID, n *program.Node) bool {
	rep := n.Rep
	count := m.repCount(id)

	if count < rep.Min {
		consumed, ok := m.matchPrimitiveUnit(n)
		if !ok {
			return false
		}
		if !m.pushPositionRestore() {
			return false
		}
		m.position += consumed
		m.setRepCount(id, count+1)
		m.pstate = id
		return true
	}

	atMax := rep.Max >= 0 && count >= rep.Max
	var consumed int
	var canConsume bool
	if !atMax {
		consumed, canConsume = m.matchPrimitiveUnit(n)
	}

	if rep.Greedy {
		if atMax || !canConsume {
			m.pstate = n.Next
			return true
		}
		if !m.stack.Push(backtrack.Frame{Kind: backtrack.KindRepIteration, RepNode: id, Count: count, RepGreedy: true}) {
			m.err = ErrMemoryExhausted
			return false
		}
		if !m.pushPositionRestore() {
			return false
		}
		m.position += consumed
		m.setRepCount(id, count+1)
		m.pstate = id
		return true
	}

	if !atMax && canConsume {
		if !m.stack.Push(backtrack.Frame{Kind: backtrack.KindRepIteration, RepNode: id, Count: count, RepGreedy: false}) {
			m.err = ErrMemoryExhausted
			return false
		}
	}
	m.pstate = n.Next
	return true
}

func handleCombining(m *Matcher, _ program.NodeID, n *program.Node) bool {
	if _, ok := m.rawByteAt(m.position); !ok {
		return false
	}
	m.position++
	for {
		b, ok := m.rawByteAt(m.position)
		if !ok || !m.oracle.IsCombining(b) {
			break
		}
		m.position++
	}
	m.pstate = n.Next
	return true
}

func handleRestartContinue(m *Matcher, _ program.NodeID, n *program.Node) bool {
	if m.position != m.searchBase {
		return false
	}
	m.pstate = n.Next
	return true
}

func handleLookahead(m *Matcher, _ program.NodeID, n *program.Node) bool {
	posBefore := m.position
	ok := m.runNested(n.Sub)
	m.position = posBefore
	if ok == n.Negative {
		return false
	}
	m.pstate = n.Next
	return true
}

func handleAtomicGroup(m *Matcher, _ program.NodeID, n *program.Node) bool {
	posBefore := m.position
	if !m.runNested(n.Sub) {
		m.position = posBefore
		return false
	}
	m.pstate = n.Next
	return true
}
