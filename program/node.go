package program

// NodeID indexes a Node within a Program's arena. Using an integer index
// rather than a pointer avoids an ownership graph with cycles and makes a
// compiled Program trivially copyable/cacheable, per spec.md §9's note on
// representing the instruction graph as an arena indexed by integer ID.
// Grounded on nfa/nfa.go's StateID.
type NodeID int32

// InvalidNodeID is the null node: pstate == InvalidNodeID means "match
// complete" (spec.md §3).
const InvalidNodeID NodeID = -1

// RepInfo carries the payload of a generic repetition node (spec.md §4.4):
// match Body at least Min times, at most Max times (Max < 0 means
// unbounded), then proceed to the node's Next ("tail"). Greedy controls
// whether additional Body iterations are preferred over Next on choice.
type RepInfo struct {
	Min    int
	Max    int // < 0 means unbounded
	Greedy bool
	Body   NodeID
}

// Node is one instruction in the compiled program: an opcode plus its
// linear successor and opcode-specific payload. Only the fields relevant
// to Op are meaningful; this mirrors nfa/nfa.go's State, which stores all
// payload inline on one struct rather than using an interface per kind, to
// keep the arena contiguous and allocation-free to walk.
type Node struct {
	Op   Opcode
	Next NodeID

	// OpLiteral
	Literal []byte

	// OpStartMark / OpEndMark: capture index. OpEndMark uses a negative
	// index to mean "this is a lookahead closure" (spec.md §4.2/§4.3).
	Mark int

	// OpJump / OpAlt: alternative target. For OpAlt, a backtrack frame is
	// pushed pointing at Alt before continuing on Next.
	Alt NodeID

	// OpSet
	Set *SmallSet

	// OpLongSet / OpLongSetRepeat
	LongSet LongSet

	// OpRep / OpDotRepeatFast / OpDotRepeatSlow / OpCharRepeat /
	// OpSetRepeat / OpLongSetRepeat
	Rep RepInfo

	// OpCharRepeat
	Char byte

	// OpBackref
	BackrefIndex int

	// OpLookahead / OpAtomicGroup
	Sub      NodeID
	Negative bool
}
