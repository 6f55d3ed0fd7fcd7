package program

// Opcode identifies the operation an instruction Node performs. The
// catalogue matches spec.md §4.2 exactly; handlers are dispatched through
// a table indexed by Opcode (see interp's dispatch table), not a type
// switch, per spec.md §9's function-pointer-table recommendation.
type Opcode uint8

const (
	// OpStartMark opens capture group Node.Mark.
	OpStartMark Opcode = iota
	// OpEndMark closes capture group Node.Mark (positive index), or
	// terminates a lookahead sub-program (negative index).
	OpEndMark
	// OpLiteral compares Node.Literal against input under Translate(·, icase).
	OpLiteral
	// OpStartLine is `^`.
	OpStartLine
	// OpEndLine is `$`.
	OpEndLine
	// OpWild is `.`.
	OpWild
	// OpMatch is the accepting opcode.
	OpMatch
	// OpWordBoundary is `\b`.
	OpWordBoundary
	// OpWithinWord succeeds between two word characters.
	OpWithinWord
	// OpWordStart succeeds at a non-word-to-word transition.
	OpWordStart
	// OpWordEnd succeeds at a word-to-non-word transition.
	OpWordEnd
	// OpBufferStart is `\A`.
	OpBufferStart
	// OpBufferEnd is `\z`.
	OpBufferEnd
	// OpSoftBufferEnd is `\Z`.
	OpSoftBufferEnd
	// OpBackref compares input against a previously closed capture.
	OpBackref
	// OpSet is a small (byte-indexed) bitmap membership test.
	OpSet
	// OpLongSet delegates to a LongSet descriptor (ranges, classes,
	// equivalents); may consume more than one byte.
	OpLongSet
	// OpJump is an unconditional jump to Node.Alt.
	OpJump
	// OpAlt pushes a backtrack frame at Node.Alt and continues on Node.Next.
	OpAlt
	// OpRep is a generic counted repetition; see Node.Rep.
	OpRep
	// OpDotRepeatFast is a specialized `.` repetition over random-access input.
	OpDotRepeatFast
	// OpDotRepeatSlow is a specialized `.` repetition without random access.
	OpDotRepeatSlow
	// OpCharRepeat is a specialized single-character repetition.
	OpCharRepeat
	// OpSetRepeat is a specialized small-set repetition.
	OpSetRepeat
	// OpLongSetRepeat is a specialized long-set repetition.
	OpLongSetRepeat
	// OpCombining matches a base character followed by zero or more
	// combining characters.
	OpCombining
	// OpRestartContinue succeeds iff position == search_base (used by \G).
	OpRestartContinue
	// OpLookahead runs a nested program at the unchanged position and
	// succeeds iff its outcome matches !Node.Negative. Supplements spec.md's
	// catalogue with the lookahead mechanism spec.md §4.2's OpEndMark
	// negative-index contract implies; see SPEC_FULL.md item 1.
	OpLookahead
	// OpAtomicGroup runs a nested program greedily to its first success and
	// discards any backtrack frames pushed during that run. Supplements
	// spec.md's catalogue per SPEC_FULL.md item 2.
	OpAtomicGroup

	numOpcodes
)

var opcodeNames = [...]string{
	OpStartMark:        "startmark",
	OpEndMark:          "endmark",
	OpLiteral:          "literal",
	OpStartLine:        "start_line",
	OpEndLine:          "end_line",
	OpWild:             "wild",
	OpMatch:            "match",
	OpWordBoundary:     "word_boundary",
	OpWithinWord:       "within_word",
	OpWordStart:        "word_start",
	OpWordEnd:          "word_end",
	OpBufferStart:      "buffer_start",
	OpBufferEnd:        "buffer_end",
	OpSoftBufferEnd:    "soft_buffer_end",
	OpBackref:          "backref",
	OpSet:              "set",
	OpLongSet:          "long_set",
	OpJump:             "jump",
	OpAlt:              "alt",
	OpRep:              "rep",
	OpDotRepeatFast:    "dot_repeat_fast",
	OpDotRepeatSlow:    "dot_repeat_slow",
	OpCharRepeat:       "char_repeat",
	OpSetRepeat:        "set_repeat",
	OpLongSetRepeat:    "long_set_repeat",
	OpCombining:        "combining",
	OpRestartContinue:  "restart_continue",
	OpLookahead:        "lookahead",
	OpAtomicGroup:      "atomic_group",
}

// NumOpcodes returns the number of distinct opcodes, for sizing a
// dispatch table indexed by Opcode.
func NumOpcodes() int { return int(numOpcodes) }

// String returns the opcode's spec.md name.
func (op Opcode) String() string {
	if int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return "invalid"
}
