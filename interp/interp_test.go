package interp

import (
	"testing"

	"github.com/automeka/boost-regex/backtrack"
	"github.com/automeka/boost-regex/oracle"
	"github.com/automeka/boost-regex/program"
)

func newStack() backtrack.Stack { return backtrack.NewIterativeStack(0) }

// buildAlternationProgram builds a(b|c)d: startmark(0) -> literal("a") ->
// startmark(1) -> alt{ literal("b"), literal("c") } -> endmark(1) ->
// literal("d") -> endmark(0) -> match.
func buildAlternationProgram(t *testing.T) *program.Program {
	t.Helper()
	b := program.NewBuilder()

	match := b.AddMatch()
	end0 := b.AddEndMark(0, match)
	litD := b.AddLiteral([]byte("d"), end0)
	end1 := b.AddEndMark(1, litD)
	litC := b.AddLiteral([]byte("c"), end1)
	litB := b.AddLiteral([]byte("b"), end1)
	alt := b.AddAlt(litC, litB)
	start1 := b.AddStartMark(1, alt)
	litA := b.AddLiteral([]byte("a"), start1)
	start0 := b.AddStartMark(0, litA)

	b.SetEntry(start0)
	b.SetStartSet([]byte{'a'})
	return b.Build()
}

func TestMatchPrefix_Alternation(t *testing.T) {
	prog := buildAlternationProgram(t)
	input := []byte("xabdxacdy")

	m := NewMatcher(prog, oracle.ASCII{}, input, newStack(), MatchDefault)
	m.SetSearchBase(1)
	if !m.MatchPrefix() {
		t.Fatal("MatchPrefix() at offset 1 = false, want true")
	}
	c := m.Captures()
	if string(input[c[0].First:c[0].Last]) != "abd" {
		t.Errorf("captures[0] = %q, want %q", input[c[0].First:c[0].Last], "abd")
	}
	if string(input[c[1].First:c[1].Last]) != "b" {
		t.Errorf("captures[1] = %q, want %q", input[c[1].First:c[1].Last], "b")
	}

	m2 := NewMatcher(prog, oracle.ASCII{}, input, newStack(), MatchDefault)
	m2.SetSearchBase(5)
	if !m2.MatchPrefix() {
		t.Fatal("MatchPrefix() at offset 5 = false, want true")
	}
	c2 := m2.Captures()
	if string(input[c2[0].First:c2[0].Last]) != "acd" {
		t.Errorf("captures[0] = %q, want %q", input[c2[0].First:c2[0].Last], "acd")
	}
	if string(input[c2[1].First:c2[1].Last]) != "c" {
		t.Errorf("captures[1] = %q, want %q", input[c2[1].First:c2[1].Last], "c")
	}
}

// buildAltFirstBranchConsumesProgram builds (xy|x)z: startmark(0) ->
// startmark(1) -> alt{ literal("x") -> literal("y"), literal("x") } ->
// endmark(1) -> literal("z") -> endmark(0) -> match. The first alt branch
// is two chained literal nodes rather than one multi-byte literal, so a
// failure partway through it leaves m.position advanced past the node
// where the alt choice-point was pushed; backtracking into the second
// branch must restore that saved cursor, not just the pstate.
func buildAltFirstBranchConsumesProgram(t *testing.T) *program.Program {
	t.Helper()
	b := program.NewBuilder()

	match := b.AddMatch()
	end0 := b.AddEndMark(0, match)
	litZ := b.AddLiteral([]byte("z"), end0)
	end1 := b.AddEndMark(1, litZ)
	branchX := b.AddLiteral([]byte("x"), end1)
	litY := b.AddLiteral([]byte("y"), end1)
	litXY := b.AddLiteral([]byte("x"), litY)
	alt := b.AddAlt(branchX, litXY)
	start1 := b.AddStartMark(1, alt)
	start0 := b.AddStartMark(0, start1)

	b.SetEntry(start0)
	b.SetStartSet([]byte{'x'})
	return b.Build()
}

func TestMatchPrefix_AltRestoresPositionOnBacktrack(t *testing.T) {
	prog := buildAltFirstBranchConsumesProgram(t)
	input := []byte("xz")

	m := NewMatcher(prog, oracle.ASCII{}, input, newStack(), MatchDefault)
	m.SetSearchBase(0)
	if !m.MatchPrefix() {
		t.Fatal("MatchPrefix() on \"xz\" = false, want true via the second alt branch")
	}
	c := m.Captures()
	if string(input[c[0].First:c[0].Last]) != "xz" {
		t.Errorf("captures[0] = %q, want %q", input[c[0].First:c[0].Last], "xz")
	}
	if string(input[c[1].First:c[1].Last]) != "x" {
		t.Errorf("captures[1] = %q, want %q", input[c[1].First:c[1].Last], "x")
	}
}

// buildBackrefProgram builds (.)\1: startmark(0) -> startmark(1) -> wild ->
// endmark(1) -> backref(1) -> endmark(0) -> match.
func buildBackrefProgram(t *testing.T) *program.Program {
	t.Helper()
	b := program.NewBuilder()
	match := b.AddMatch()
	end0 := b.AddEndMark(0, match)
	backref := b.AddBackref(1, end0)
	end1 := b.AddEndMark(1, backref)
	wild := b.AddWild(end1)
	start1 := b.AddStartMark(1, wild)
	start0 := b.AddStartMark(0, start1)
	b.SetEntry(start0)
	b.SetAnyStart()
	return b.Build()
}

func TestMatchPrefix_Backref(t *testing.T) {
	prog := buildBackrefProgram(t)
	input := []byte("abccba")

	for start := 0; start < len(input); start++ {
		m := NewMatcher(prog, oracle.ASCII{}, input, newStack(), MatchDefault)
		m.SetSearchBase(start)
		if m.MatchPrefix() {
			c := m.Captures()
			if string(input[c[0].First:c[0].Last]) == "cc" {
				return
			}
		}
	}
	t.Fatal("no prefix attempt in \"abccba\" found the \"cc\" backreference match")
}

// buildDotProgram builds a.b with configurable match_not_dot_newline.
func buildDotProgram(t *testing.T) *program.Program {
	t.Helper()
	b := program.NewBuilder()
	match := b.AddMatch()
	litB := b.AddLiteral([]byte("b"), match)
	wild := b.AddWild(litB)
	litA := b.AddLiteral([]byte("a"), wild)
	b.SetEntry(litA)
	b.SetStartSet([]byte{'a'})
	return b.Build()
}

func TestMatchPrefix_DotNewline(t *testing.T) {
	prog := buildDotProgram(t)
	input := []byte("a\nb")

	m := NewMatcher(prog, oracle.ASCII{}, input, newStack(), MatchNotDotNewline)
	m.SetSearchBase(0)
	if m.MatchPrefix() {
		t.Fatal("MatchPrefix() with match_not_dot_newline = true, want false")
	}

	m2 := NewMatcher(prog, oracle.ASCII{}, input, newStack(), MatchDefault)
	m2.SetSearchBase(0)
	if !m2.MatchPrefix() {
		t.Fatal("MatchPrefix() without match_not_dot_newline = false, want true")
	}
}

// buildGreedyStarProgram builds a*b (or a*?b when greedy is false):
// char_repeat{char:'a',min:0,max:-1,greedy} -> literal("b") -> match.
func buildGreedyStarProgram(t *testing.T, greedy bool) *program.Program {
	t.Helper()
	b := program.NewBuilder()
	match := b.AddMatch()
	litB := b.AddLiteral([]byte("b"), match)
	rep := b.AddCharRepeat('a', 0, -1, greedy, litB)
	b.SetEntry(rep)
	b.SetAnyStart()
	return b.Build()
}

func TestMatchPrefix_GreedyStar(t *testing.T) {
	prog := buildGreedyStarProgram(t, true)
	input := []byte("aaab")
	m := NewMatcher(prog, oracle.ASCII{}, input, newStack(), MatchDefault)
	m.SetSearchBase(0)
	if !m.MatchPrefix() {
		t.Fatal("MatchPrefix() = false, want true")
	}
	c := m.Captures()
	if string(input[c[0].First:c[0].Last]) != "aaab" {
		t.Errorf("captures[0] = %q, want %q", input[c[0].First:c[0].Last], "aaab")
	}
}

func TestMatchPrefix_LazyStar(t *testing.T) {
	prog := buildGreedyStarProgram(t, false)
	input := []byte("aaab")
	m := NewMatcher(prog, oracle.ASCII{}, input, newStack(), MatchDefault)
	m.SetSearchBase(0)
	if !m.MatchPrefix() {
		t.Fatal("MatchPrefix() = false, want true")
	}
	c := m.Captures()
	if string(input[c[0].First:c[0].Last]) != "aaab" {
		t.Errorf("captures[0] = %q, want %q (lazy * still must reach b)", input[c[0].First:c[0].Last], "aaab")
	}
}

func TestMatchPrefix_ComplexityExceeded(t *testing.T) {
	// (a*)* against a long run of 'a' with no trailing match: nested stars
	// explore exponentially many ways to partition the run.
	b := program.NewBuilder()
	match := b.AddMatch()
	innerRep := b.AddCharRepeat('a', 0, -1, true, program.InvalidNodeID)
	outerRep := b.AddRep(0, -1, true, innerRep, match)
	b.SetNext(innerRep, outerRep)
	b.SetEntry(outerRep)
	b.SetAnyStart()
	prog := b.Build()

	input := make([]byte, 30)
	for i := range input {
		input[i] = 'a'
	}
	input = append(input, 'X')

	m := NewMatcher(prog, oracle.ASCII{}, input, newStack(), MatchDefault)
	m.maxStateCount = 5000
	m.SetSearchBase(0)
	if m.MatchPrefix() {
		t.Fatal("MatchPrefix() succeeded, want complexity_exceeded")
	}
	if m.Err() != ErrComplexityExceeded {
		t.Fatalf("Err() = %v, want %v", m.Err(), ErrComplexityExceeded)
	}
}
