package program

// Builder constructs a Program incrementally using a low-level, one-node-
// at-a-time API. It is the arena-building counterpart to nfa/builder.go's
// Builder: each Add* call appends a Node to the arena and returns its
// NodeID, so callers wire up Next/Alt/Body pointers explicitly.
//
// Builder is meant for hand-assembling programs in tests, and is the
// target of package compile, which parses regex source outside the
// execution core (spec.md §1).
type Builder struct {
	nodes     []Node
	entry     NodeID
	markCount int
	startSet  [256]bool
	anyStart  bool
	canBeNull bool
	restart   RestartType
	kmp       *KMPTable
	icase     bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{entry: InvalidNodeID, markCount: 1}
}

func (b *Builder) add(n Node) NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, n)
	return id
}

// AddMatch appends an accepting `match` node.
func (b *Builder) AddMatch() NodeID {
	return b.add(Node{Op: OpMatch, Next: InvalidNodeID})
}

// AddLiteral appends a `literal` node comparing lit against input, falling
// through to next on success.
func (b *Builder) AddLiteral(lit []byte, next NodeID) NodeID {
	return b.add(Node{Op: OpLiteral, Literal: lit, Next: next})
}

// AddStartMark appends a `startmark` node for capture group index,
// falling through to next.
func (b *Builder) AddStartMark(index int, next NodeID) NodeID {
	if index+1 > b.markCount {
		b.markCount = index + 1
	}
	return b.add(Node{Op: OpStartMark, Mark: index, Next: next})
}

// AddEndMark appends an `endmark` node. A negative index marks a
// lookahead closure (spec.md §4.2/§4.3); next is only followed for
// non-negative indices (lookahead closures set pstate to null themselves).
func (b *Builder) AddEndMark(index int, next NodeID) NodeID {
	if index >= 0 && index+1 > b.markCount {
		b.markCount = index + 1
	}
	return b.add(Node{Op: OpEndMark, Mark: index, Next: next})
}

// AddStartLine appends a `start_line` (`^`) node.
func (b *Builder) AddStartLine(next NodeID) NodeID {
	return b.add(Node{Op: OpStartLine, Next: next})
}

// AddEndLine appends an `end_line` (`$`) node.
func (b *Builder) AddEndLine(next NodeID) NodeID {
	return b.add(Node{Op: OpEndLine, Next: next})
}

// AddWild appends a `.` node.
func (b *Builder) AddWild(next NodeID) NodeID {
	return b.add(Node{Op: OpWild, Next: next})
}

// AddWordBoundary appends a `\b` node.
func (b *Builder) AddWordBoundary(next NodeID) NodeID {
	return b.add(Node{Op: OpWordBoundary, Next: next})
}

// AddWithinWord appends a `within_word` node.
func (b *Builder) AddWithinWord(next NodeID) NodeID {
	return b.add(Node{Op: OpWithinWord, Next: next})
}

// AddWordStart appends a `word_start` node.
func (b *Builder) AddWordStart(next NodeID) NodeID {
	return b.add(Node{Op: OpWordStart, Next: next})
}

// AddWordEnd appends a `word_end` node.
func (b *Builder) AddWordEnd(next NodeID) NodeID {
	return b.add(Node{Op: OpWordEnd, Next: next})
}

// AddBufferStart appends a `\A` node.
func (b *Builder) AddBufferStart(next NodeID) NodeID {
	return b.add(Node{Op: OpBufferStart, Next: next})
}

// AddBufferEnd appends a `\z` node.
func (b *Builder) AddBufferEnd(next NodeID) NodeID {
	return b.add(Node{Op: OpBufferEnd, Next: next})
}

// AddSoftBufferEnd appends a `\Z` node.
func (b *Builder) AddSoftBufferEnd(next NodeID) NodeID {
	return b.add(Node{Op: OpSoftBufferEnd, Next: next})
}

// AddBackref appends a `backref` node comparing input against capture
// group index.
func (b *Builder) AddBackref(index int, next NodeID) NodeID {
	return b.add(Node{Op: OpBackref, BackrefIndex: index, Next: next})
}

// AddSet appends a `set` node testing membership in set.
func (b *Builder) AddSet(set *SmallSet, next NodeID) NodeID {
	return b.add(Node{Op: OpSet, Set: set, Next: next})
}

// AddLongSet appends a `long_set` node delegating to set.
func (b *Builder) AddLongSet(set LongSet, next NodeID) NodeID {
	return b.add(Node{Op: OpLongSet, LongSet: set, Next: next})
}

// AddJump appends an unconditional `jump` to alt.
func (b *Builder) AddJump(alt NodeID) NodeID {
	return b.add(Node{Op: OpJump, Alt: alt, Next: InvalidNodeID})
}

// AddAlt appends an `alt` node: pushes a backtrack frame at alt, continues
// on next.
func (b *Builder) AddAlt(alt, next NodeID) NodeID {
	return b.add(Node{Op: OpAlt, Alt: alt, Next: next})
}

// AddRep appends a generic `rep` node (spec.md §4.4). max < 0 means
// unbounded. The body subgraph's terminal node(s) must loop back to the
// returned id (via SetNext once it is known) rather than falling through
// to tail directly; the interpreter uses re-entry at this id to count
// completed iterations.
func (b *Builder) AddRep(min, max int, greedy bool, body, tail NodeID) NodeID {
	return b.add(Node{Op: OpRep, Rep: RepInfo{Min: min, Max: max, Greedy: greedy, Body: body}, Next: tail})
}

// AddDotRepeatFast appends a specialized `.` repetition for random-access
// input.
func (b *Builder) AddDotRepeatFast(min, max int, greedy bool, tail NodeID) NodeID {
	return b.add(Node{Op: OpDotRepeatFast, Rep: RepInfo{Min: min, Max: max, Greedy: greedy}, Next: tail})
}

// AddDotRepeatSlow appends a specialized `.` repetition without random
// access.
func (b *Builder) AddDotRepeatSlow(min, max int, greedy bool, tail NodeID) NodeID {
	return b.add(Node{Op: OpDotRepeatSlow, Rep: RepInfo{Min: min, Max: max, Greedy: greedy}, Next: tail})
}

// AddCharRepeat appends a specialized single-character repetition.
func (b *Builder) AddCharRepeat(ch byte, min, max int, greedy bool, tail NodeID) NodeID {
	return b.add(Node{Op: OpCharRepeat, Char: ch, Rep: RepInfo{Min: min, Max: max, Greedy: greedy}, Next: tail})
}

// AddSetRepeat appends a specialized small-set repetition.
func (b *Builder) AddSetRepeat(set *SmallSet, min, max int, greedy bool, tail NodeID) NodeID {
	return b.add(Node{Op: OpSetRepeat, Set: set, Rep: RepInfo{Min: min, Max: max, Greedy: greedy}, Next: tail})
}

// AddLongSetRepeat appends a specialized long-set repetition.
func (b *Builder) AddLongSetRepeat(set LongSet, min, max int, greedy bool, tail NodeID) NodeID {
	return b.add(Node{Op: OpLongSetRepeat, LongSet: set, Rep: RepInfo{Min: min, Max: max, Greedy: greedy}, Next: tail})
}

// AddCombining appends a `combining` node.
func (b *Builder) AddCombining(next NodeID) NodeID {
	return b.add(Node{Op: OpCombining, Next: next})
}

// AddRestartContinue appends a `restart_continue` (`\G`) node.
func (b *Builder) AddRestartContinue(next NodeID) NodeID {
	return b.add(Node{Op: OpRestartContinue, Next: next})
}

// AddLookahead appends an `OpLookahead` node (SPEC_FULL.md item 1): runs
// the nested program starting at sub, and succeeds iff its outcome
// matches !negative.
func (b *Builder) AddLookahead(sub NodeID, negative bool, next NodeID) NodeID {
	return b.add(Node{Op: OpLookahead, Sub: sub, Negative: negative, Next: next})
}

// AddAtomicGroup appends an `OpAtomicGroup` node (SPEC_FULL.md item 2).
func (b *Builder) AddAtomicGroup(sub NodeID, next NodeID) NodeID {
	return b.add(Node{Op: OpAtomicGroup, Sub: sub, Next: next})
}

// ReserveRep appends a `rep` node whose body is not yet known, for
// compilers that build the body after the rep node itself (the body's
// terminal node loops back to this node's own id, per AddRep's doc).
// SetRepBody must be called with the body's entry id before Build.
func (b *Builder) ReserveRep(min, max int, greedy bool, tail NodeID) NodeID {
	return b.add(Node{Op: OpRep, Rep: RepInfo{Min: min, Max: max, Greedy: greedy, Body: InvalidNodeID}, Next: tail})
}

// SetRepBody patches a rep node reserved via ReserveRep with its body's
// entry id.
func (b *Builder) SetRepBody(id, body NodeID) { b.nodes[id].Rep.Body = body }

// SetNext patches node id's Next pointer after construction. Needed to
// wire a repetition body's terminal node back to the owning rep node's own
// id (see AddRep), since that id isn't known until after the body is
// built.
func (b *Builder) SetNext(id, next NodeID) { b.nodes[id].Next = next }

// SetEntry sets the program's entry node.
func (b *Builder) SetEntry(id NodeID) { b.entry = id }

// SetCanBeNull sets the entry node's can_be_null flag (spec.md §3).
func (b *Builder) SetCanBeNull(v bool) { b.canBeNull = v }

// SetStartSet installs the precomputed start-character bitmap.
func (b *Builder) SetStartSet(bytes []byte) {
	b.anyStart = false
	for _, c := range bytes {
		b.startSet[c] = true
	}
}

// SetAnyStart marks that every byte can begin a match (no useful bitmap).
func (b *Builder) SetAnyStart() { b.anyStart = true }

// SetRestartType sets the compiled restart strategy hint.
func (b *Builder) SetRestartType(r RestartType) { b.restart = r }

// SetKMP installs a precomputed KMP table for RestartLit/RestartFixedLit
// programs.
func (b *Builder) SetKMP(t *KMPTable) { b.kmp = t }

// SetICase sets the program's case-insensitivity flag.
func (b *Builder) SetICase(v bool) { b.icase = v }

// Build finalizes the Program. The Builder must not be reused afterward.
func (b *Builder) Build() *Program {
	p := &Program{
		nodes:     b.nodes,
		entry:     b.entry,
		markCount: b.markCount,
		startSet:  b.startSet,
		anyStart:  b.anyStart,
		canBeNull: b.canBeNull,
		restart:   b.restart,
		kmp:       b.kmp,
		icase:     b.icase,
	}
	return p
}
