// Package boostregex is the root facade tying the execution core's five
// components together: the Classification Oracle (oracle), the Compiled
// Program (program), the Backtracking Stack (backtrack), the Interpreter
// (interp), and the Search Driver (search) — spec.md §2's components C,
// P, B, I, S. Pattern compilation is out of scope for the core itself
// (spec.md §1); Compile below delegates to the compile package, a thin
// regexp/syntax-based front end, so this package still offers a
// stdlib-shaped string-pattern API.
//
// Basic usage:
//
//	re, err := boostregex.Compile(`\d+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	loc := re.FindIndex([]byte("age: 42"))
//	println(loc[0], loc[1]) // 5, 7
package boostregex

import (
	"github.com/automeka/boost-regex/compile"
	"github.com/automeka/boost-regex/interp"
	"github.com/automeka/boost-regex/oracle"
	"github.com/automeka/boost-regex/program"
	"github.com/automeka/boost-regex/search"
)

// Regexp is a compiled pattern bound to a Search Driver. A *Regexp is safe
// for concurrent use by multiple goroutines (search.Driver pools its
// per-search scratch state); it is not safe to mutate a single in-flight
// Find call's iterator from two goroutines at once.
type Regexp struct {
	prog    *program.Program
	driver  *search.Driver
	pattern string
}

// New wraps an already-compiled *program.Program in a Regexp, using oc for
// character classification and cfg for the search driver's resource
// limits. This is the entry point for programs hand-assembled via
// program.Builder — backreferences, lookahead, and atomic groups, which
// Compile's regexp/syntax front end cannot express (package compile's doc
// comment), are only reachable this way.
func New(prog *program.Program, oc oracle.Oracle, cfg search.Config) *Regexp {
	return &Regexp{prog: prog, driver: search.NewDriver(prog, oc, cfg)}
}

// Compile compiles a regular expression pattern using the standard
// library's regexp/syntax parser (package compile). Returns an error if
// the pattern is invalid or uses a construct compile does not implement
// (backreferences, lookahead, atomic groups).
func Compile(pattern string) (*Regexp, error) {
	prog, err := compile.Compile(pattern)
	if err != nil {
		return nil, err
	}
	r := New(prog, oracle.ASCII{}, search.DefaultConfig())
	r.pattern = pattern
	return r, nil
}

// MustCompile compiles pattern and panics if it fails, for patterns known
// to be valid at compile time.
func MustCompile(pattern string) *Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic("boostregex: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// String returns the source text used to compile the regular expression,
// or "" for a Regexp built directly from a program via New.
func (r *Regexp) String() string { return r.pattern }

// NumSubexp returns the number of parenthesized capture groups (not
// counting the implicit group 0).
func (r *Regexp) NumSubexp() int { return r.prog.MarkCount() - 1 }

// Stats returns a snapshot of the search driver's execution counters.
func (r *Regexp) Stats() search.Stats { return r.driver.Stats() }

// Match reports whether the pattern matches the entire input, per spec.md
// §4.1's match(flags).
func (r *Regexp) Match(input []byte, flags interp.Flags) bool {
	ok, _ := r.driver.Match(input, flags)
	return ok
}

// MatchString is Match over a string.
func (r *Regexp) MatchString(s string, flags interp.Flags) bool {
	return r.Match([]byte(s), flags)
}

// Find returns the leftmost match's capture array, or nil if none exists,
// per spec.md §4.1's find(flags). Capture 0 delimits the overall match;
// indices 1..N are the pattern's parenthesized groups.
func (r *Regexp) Find(input []byte, flags interp.Flags) []interp.Capture {
	caps, ok := r.driver.Find(input, flags)
	if !ok {
		return nil
	}
	return caps
}

// FindIndex returns the [start, end) byte offsets of the leftmost match,
// or nil if none exists.
func (r *Regexp) FindIndex(input []byte) []int {
	caps := r.Find(input, interp.MatchDefault)
	if caps == nil {
		return nil
	}
	return []int{caps[0].First, caps[0].Last}
}

// FindAllIndex returns the [start, end) offsets of every non-overlapping
// match in input. If n >= 0, at most n matches are returned.
func (r *Regexp) FindAllIndex(input []byte, n int) [][]int {
	if n == 0 {
		return nil
	}
	it := r.driver.NewIter(input, interp.MatchDefault)
	defer it.Close()

	var out [][]int
	for {
		caps, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, []int{caps[0].First, caps[0].Last})
		if n > 0 && len(out) >= n {
			break
		}
	}
	return out
}

// FindAll returns the byte slices of every non-overlapping match in
// input. If n >= 0, at most n matches are returned.
func (r *Regexp) FindAll(input []byte, n int) [][]byte {
	idx := r.FindAllIndex(input, n)
	if idx == nil {
		return nil
	}
	out := make([][]byte, len(idx))
	for i, loc := range idx {
		out[i] = input[loc[0]:loc[1]]
	}
	return out
}

// FindSubmatchIndex returns the [start, end) offsets for the leftmost
// match and every capture group. Unmatched groups report [-1, -1].
// Result[0:2] is the overall match.
func (r *Regexp) FindSubmatchIndex(input []byte) []int {
	caps := r.Find(input, interp.MatchDefault)
	if caps == nil {
		return nil
	}
	out := make([]int, 0, len(caps)*2)
	for _, c := range caps {
		if c.Matched {
			out = append(out, c.First, c.Last)
		} else {
			out = append(out, -1, -1)
		}
	}
	return out
}

// FindSubmatch returns the leftmost match and its capture groups as byte
// slices. Unmatched groups are nil.
func (r *Regexp) FindSubmatch(input []byte) [][]byte {
	caps := r.Find(input, interp.MatchDefault)
	if caps == nil {
		return nil
	}
	out := make([][]byte, len(caps))
	for i, c := range caps {
		if c.Matched {
			out[i] = input[c.First:c.Last]
		}
	}
	return out
}
