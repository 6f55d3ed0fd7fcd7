package program

// SmallSet is a 256-bit membership bitmap over byte values, used by the
// `set` opcode (spec.md §4.2). It favors a flat bit-table over a slice of
// ranges for O(1) membership testing, the same trade-off
// nfa/alphabet.go's ByteClasses makes for DFA alphabet reduction.
type SmallSet struct {
	bits [4]uint64
}

// NewSmallSet returns an empty SmallSet.
func NewSmallSet() *SmallSet {
	return &SmallSet{}
}

// Add inserts a single byte into the set.
func (s *SmallSet) Add(b byte) {
	s.bits[b>>6] |= 1 << (b & 63)
}

// AddRange inserts every byte in [lo, hi] into the set.
func (s *SmallSet) AddRange(lo, hi byte) {
	for b := int(lo); b <= int(hi); b++ {
		s.Add(byte(b))
	}
}

// Contains reports whether b is a member of the set.
func (s *SmallSet) Contains(b byte) bool {
	return s.bits[b>>6]&(1<<(b&63)) != 0
}

// LongSet is the descriptor contract for the `long_set` opcode: full
// membership delegated to ranges, named classes, or equivalence classes,
// consuming as many input bytes as the match requires (spec.md §4.2).
// Grounded on nfa/charclass_searcher.go's membership-table contract,
// generalized to variable-width consumption.
type LongSet interface {
	// Match reports whether data[pos:] begins with a member of the set,
	// and if so how many bytes were consumed (>= 1). A return of
	// consumed == 0 means no match at pos.
	Match(data []byte, pos int) (consumed int, ok bool)
}

// RangeSet is a LongSet implementation over byte ranges, each consuming
// exactly one byte. It covers the common case (character classes over a
// byte-oriented alphabet); Unicode-range classes can supply their own
// LongSet implementation without any change to the interpreter.
type RangeSet struct {
	Ranges []ByteRange
	Negate bool
}

// ByteRange is an inclusive [Lo, Hi] byte range.
type ByteRange struct {
	Lo, Hi byte
}

// NewRangeSet returns a RangeSet over the given ranges.
func NewRangeSet(negate bool, ranges ...ByteRange) *RangeSet {
	return &RangeSet{Ranges: ranges, Negate: negate}
}

// Match implements LongSet.
func (r *RangeSet) Match(data []byte, pos int) (int, bool) {
	if pos >= len(data) {
		return 0, false
	}
	c := data[pos]
	in := false
	for _, rg := range r.Ranges {
		if c >= rg.Lo && c <= rg.Hi {
			in = true
			break
		}
	}
	if in != r.Negate {
		return 1, true
	}
	return 0, false
}
