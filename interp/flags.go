// Package interp implements the Interpreter (component I) of spec.md §6:
// opcode dispatch over a program.Program, driving match_prefix in one
// iterative dispatch loop against a backtrack.Stack.
package interp

// Flags is the match-time flags bitset (spec.md §6), controlling anchor
// semantics, capture suppression, and search-versus-match mode. Named and
// valued after the match_* flags Boost.Regex passes to regex_search /
// regex_match; kept as a single bitset rather than a struct of bools so a
// caller can pass it through unchanged from a prior call the way \G
// continuation does.
type Flags uint32

const (
	// MatchDefault selects Perl-style capture semantics with no
	// restrictions; a caller rarely needs anything else.
	MatchDefault Flags = 0

	// MatchPerl selects Perl-compatible semantics explicitly (the default).
	MatchPerl Flags = 1 << iota
	// MatchPosix selects POSIX leftmost-longest semantics instead.
	MatchPosix
	// MatchNotBOL means position is not to be treated as the start of a line.
	MatchNotBOL
	// MatchNotEOL means the end of the buffer is not to be treated as the
	// end of a line.
	MatchNotEOL
	// MatchNotBOB means position is not the start of the buffer, even if
	// it numerically is base.
	MatchNotBOB
	// MatchNotEOB means the end of the buffer is not to be treated as the
	// buffer end for \z / \Z.
	MatchNotEOB
	// MatchNotBOW suppresses a word-boundary match at the search start.
	MatchNotBOW
	// MatchNotEOW suppresses a word-boundary match at the search end.
	MatchNotEOW
	// MatchNotNull forbids a zero-length overall match.
	MatchNotNull
	// MatchNotDotNewline makes `.` refuse to match a line separator (any
	// byte the oracle's IsSeparator accepts, e.g. '\n' and '\r').
	MatchNotDotNewline
	// MatchNotDotNull makes `.` refuse to match '\0'.
	MatchNotDotNull
	// MatchAll requires the match to consume the entire buffer.
	MatchAll
	// MatchPartial permits a partial match at the end of input to be
	// reported instead of failing outright (spec.md §7's partial_match).
	MatchPartial
	// MatchAny means any match is acceptable, not only the leftmost-longest
	// (search may stop at the first successful attempt position).
	MatchAny
	// MatchContinuous requires the match to start exactly at position
	// (used by restart_continue / \G-driven tokenizers).
	MatchContinuous
	// MatchPrevAvail means the byte before position is available for
	// lookbehind-style boundary checks even though position may equal base.
	MatchPrevAvail
	// MatchInit is set internally on every find call of a find loop after
	// the first (search.Iter.Next); callers do not set it themselves.
	MatchInit
)

// Has reports whether all bits in want are set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }
