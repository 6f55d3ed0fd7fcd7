package search_test

import (
	"testing"

	"github.com/automeka/boost-regex/compile"
	"github.com/automeka/boost-regex/interp"
	"github.com/automeka/boost-regex/oracle"
	"github.com/automeka/boost-regex/program"
	"github.com/automeka/boost-regex/search"
)

func literalProgram(lit string, restart program.RestartType, starts ...byte) *program.Program {
	b := program.NewBuilder()
	match := b.AddMatch()
	end0 := b.AddEndMark(0, match)
	body := b.AddLiteral([]byte(lit), end0)
	start0 := b.AddStartMark(0, body)
	b.SetEntry(start0)
	if len(starts) > 0 {
		b.SetStartSet(starts)
	} else {
		b.SetAnyStart()
	}
	b.SetRestartType(restart)
	return b.Build()
}

func findIndex(t *testing.T, d *search.Driver, input string, flags interp.Flags) []int {
	t.Helper()
	caps, ok := d.Find([]byte(input), flags)
	if !ok {
		return nil
	}
	return []int{caps[0].First, caps[0].Last}
}

func TestRestartAny(t *testing.T) {
	prog := literalProgram("ab", program.RestartAny, 'a')
	d := search.NewDriver(prog, oracle.ASCII{}, search.DefaultConfig())

	if loc := findIndex(t, d, "xxabxxaby", interp.MatchDefault); loc == nil || loc[0] != 2 || loc[1] != 4 {
		t.Fatalf("restart_any: FindIndex = %v, want [2 4]", loc)
	}
	if loc := findIndex(t, d, "xxxx", interp.MatchDefault); loc != nil {
		t.Fatalf("restart_any: FindIndex = %v, want nil", loc)
	}
}

func TestRestartWord(t *testing.T) {
	prog := literalProgram("cat", program.RestartWord, 'c')
	d := search.NewDriver(prog, oracle.ASCII{}, search.DefaultConfig())

	// "cat" at index 1 is glued to a preceding word byte ('s' in "scat")
	// and must be skipped; the one at index 5, following a space, matches.
	loc := findIndex(t, d, "scat cat", interp.MatchDefault)
	if loc == nil || loc[0] != 5 || loc[1] != 8 {
		t.Fatalf("restart_word: FindIndex = %v, want [5 8]", loc)
	}
}

func TestRestartLine(t *testing.T) {
	prog := literalProgram("start", program.RestartLine)
	d := search.NewDriver(prog, oracle.ASCII{}, search.DefaultConfig())

	loc := findIndex(t, d, "xstart\nstart\n", interp.MatchDefault)
	if loc == nil || loc[0] != 7 || loc[1] != 12 {
		t.Fatalf("restart_line: FindIndex = %v, want [7 12]", loc)
	}
}

func TestRestartBuf(t *testing.T) {
	prog := literalProgram("hi", program.RestartBuf)
	d := search.NewDriver(prog, oracle.ASCII{}, search.DefaultConfig())

	if loc := findIndex(t, d, "hi there", interp.MatchDefault); loc == nil || loc[0] != 0 || loc[1] != 2 {
		t.Fatalf("restart_buf: FindIndex = %v, want [0 2]", loc)
	}
	if loc := findIndex(t, d, "hi there", interp.MatchNotBOB); loc != nil {
		t.Fatalf("restart_buf with MatchNotBOB: FindIndex = %v, want nil", loc)
	}
	if loc := findIndex(t, d, "xhi there", interp.MatchDefault); loc != nil {
		t.Fatalf("restart_buf: FindIndex = %v, want nil (not anchored at base)", loc)
	}
}

func TestRestartContinue(t *testing.T) {
	// An otherwise unanchored program forced into restart_continue by
	// match_continuous: only the starting position itself is tried.
	prog := literalProgram("ab", program.RestartAny, 'a')
	d := search.NewDriver(prog, oracle.ASCII{}, search.DefaultConfig())

	if loc := findIndex(t, d, "xxab", interp.MatchContinuous); loc != nil {
		t.Fatalf("match_continuous: FindIndex = %v, want nil", loc)
	}
	if loc := findIndex(t, d, "abxx", interp.MatchContinuous); loc == nil || loc[0] != 0 || loc[1] != 2 {
		t.Fatalf("match_continuous: FindIndex = %v, want [0 2]", loc)
	}
}

func TestRestartFixedLit(t *testing.T) {
	prog, err := compile.Compile("hello")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if prog.RestartType() != program.RestartFixedLit {
		t.Fatalf("RestartType() = %v, want RestartFixedLit", prog.RestartType())
	}
	d := search.NewDriver(prog, oracle.ASCII{}, search.DefaultConfig())
	loc := findIndex(t, d, "xxhelloyy", interp.MatchDefault)
	if loc == nil || loc[0] != 2 || loc[1] != 7 {
		t.Fatalf("restart_fixed_lit: FindIndex = %v, want [2 7]", loc)
	}
}

func TestRestartLit(t *testing.T) {
	prog, err := compile.Compile(`cat\d+`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if prog.RestartType() != program.RestartLit {
		t.Fatalf("RestartType() = %v, want RestartLit", prog.RestartType())
	}
	d := search.NewDriver(prog, oracle.ASCII{}, search.DefaultConfig())

	// The literal scan finds "cat" at index 1 first, but match_prefix
	// there fails (no digit follows); it must resume the KMP scan and
	// succeed at the second occurrence, index 4.
	loc := findIndex(t, d, "xcatcat123y", interp.MatchDefault)
	if loc == nil || loc[0] != 4 || loc[1] != 10 {
		t.Fatalf("restart_lit: FindIndex = %v, want [4 10]", loc)
	}
}

func TestIterFindAll(t *testing.T) {
	prog := literalProgram("ab", program.RestartAny, 'a')
	d := search.NewDriver(prog, oracle.ASCII{}, search.DefaultConfig())

	it := d.NewIter([]byte("ababab"), interp.MatchDefault)
	defer it.Close()

	var matches []int
	for {
		caps, ok := it.Next()
		if !ok {
			break
		}
		matches = append(matches, caps[0].First)
	}
	if len(matches) != 3 || matches[0] != 0 || matches[1] != 2 || matches[2] != 4 {
		t.Fatalf("Iter matches = %v, want [0 2 4]", matches)
	}
}
