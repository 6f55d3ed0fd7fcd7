package search

import (
	"github.com/coregx/ahocorasick"
	"github.com/automeka/boost-regex/program"
)

// maxACStartBytes bounds how many single-byte patterns acMatcher will feed
// to the automaton builder. Past this the 256-bool bitmap scan in restart.go
// is already nearly as dense as scanning every byte, so building the
// automaton buys nothing.
const maxACStartBytes = 64

// acMatcher accelerates restart_any/restart_word's start-position scan with
// an Aho-Corasick automaton over the program's start-character set, in
// place of a per-byte bitmap test. Grounded on meta/compile.go's
// ahocorasick.NewBuilder()/AddPattern/Build and meta/find.go's
// findAhoCorasick (generalized here from literal-alternation patterns to
// single-byte start-set patterns, since this core never sees a multi-byte
// literal alternation — only one optional literal prefix, spec.md §2).
type acMatcher struct {
	automaton *ahocorasick.Automaton
}

// buildACMatcher returns an acMatcher for prog's start-character set, or
// nil if the set isn't useful for acceleration (any-start programs have no
// set to build from; oversized sets gain nothing over the bitmap scan).
func buildACMatcher(prog *program.Program) *acMatcher {
	bytes := prog.StartBytes()
	if len(bytes) == 0 || len(bytes) > maxACStartBytes {
		return nil
	}

	builder := ahocorasick.NewBuilder()
	for _, b := range bytes {
		builder.AddPattern([]byte{b})
	}
	automaton, err := builder.Build()
	if err != nil {
		return nil
	}
	return &acMatcher{automaton: automaton}
}

// find returns the position of the next start-set byte at or after pos, or
// -1 if none remains.
func (a *acMatcher) find(haystack []byte, pos int) int {
	if pos >= len(haystack) {
		return -1
	}
	m := a.automaton.Find(haystack, pos)
	if m == nil {
		return -1
	}
	return m.Start
}
