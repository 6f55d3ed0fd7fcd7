// Package compile turns a regex source string into a *program.Program,
// the "Compiled Program (P)" external collaborator spec.md §1 declares
// out of scope for the execution core itself. It exists so the root
// facade (regex.go) has a real string-pattern entry point; the core
// packages (oracle, program, backtrack, interp, search) never import it.
//
// Parsing is delegated to the standard library's regexp/syntax, the same
// parser the teacher's nfa.Compiler parses with (nfa/compile.go) before
// walking the AST into its own Thompson-NFA states; this package walks the
// same AST into program.Builder calls instead, emitting the opcode
// catalogue of spec.md §4.2.
//
// Scope: this compiler covers the subset of Perl syntax regexp/syntax
// itself parses. Two spec.md features have no regexp/syntax AST node to
// drive them and so are unreachable from Compile: backreferences
// (`\1`) and lookahead/atomic groups (`(?=...)`, `(?>...)`)  — regexp/syntax
// rejects all three at parse time, matching RE2's feature set. Programs
// using them are hand-assembled via program.Builder directly (the root
// package's TestBackrefViaBuilder does so for a backreference); Compile is
// the convenience path for everything else.
//
// Character classes and literals are compiled on the assumption of a
// byte-oriented, ASCII-range alphabet, matching oracle.ASCII (spec.md §6):
// class members outside [0, 255] are dropped from the compiled RangeSet
// rather than emitting a multi-byte UTF-8 matcher, since this core's data
// model is a byte cursor, not a rune cursor.
package compile

import (
	"fmt"
	"regexp/syntax"

	"github.com/automeka/boost-regex/program"
)

// ErrUnsupported reports a regexp/syntax construct this compiler does not
// implement (none are expected from syntax.Parse's own output today, but
// the check guards against a future regexp/syntax addition).
type ErrUnsupported struct {
	Op syntax.Op
}

func (e *ErrUnsupported) Error() string {
	return fmt.Sprintf("compile: unsupported regexp/syntax operator %v", e.Op)
}

// maxDepth bounds recursive descent over the parsed AST, the same defense
// nfa/compile.go's Compiler.depth guards against a pathologically nested
// pattern.
const maxDepth = 1000

// Compiler walks one parsed pattern into a program.Builder. Compiler
// values are not reusable across patterns; Compile constructs a fresh one
// per call.
type compiler struct {
	b     *program.Builder
	depth int
}

// parseFlags is syntax.Perl with syntax.OneLine cleared: spec.md §4.2's
// start_line/end_line opcodes give `^`/`$` their Perl multi-line meaning
// (start/end of a line, not just of the whole buffer) by default, but
// syntax.Perl sets OneLine, which would instead parse them as
// buffer-anchored OpBeginText/OpEndText — `\A`/`\z`'s behavior, not `^`/`$`'s.
const parseFlags = syntax.Perl &^ syntax.OneLine

// Compile parses pattern as a Perl-syntax regular expression and compiles
// it into a *program.Program.
func Compile(pattern string) (*program.Program, error) {
	re, err := syntax.Parse(pattern, parseFlags)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return CompileSyntax(re)
}

// CompileSyntax compiles an already-parsed regexp/syntax.Regexp, for
// callers that want to apply their own syntax.Flags.
func CompileSyntax(re *syntax.Regexp) (*program.Program, error) {
	re = re.Simplify()

	c := &compiler{b: program.NewBuilder()}
	match := c.b.AddMatch()
	end0 := c.b.AddEndMark(0, match)

	body, err := c.compile(re, end0)
	if err != nil {
		return nil, err
	}
	start0 := c.b.AddStartMark(0, body)

	c.b.SetEntry(start0)
	c.b.SetICase(containsFold(re))
	c.b.SetCanBeNull(nullable(re))

	bytes, any := firstBytes(re)
	if any {
		c.b.SetAnyStart()
	} else {
		c.b.SetStartSet(bytes)
	}

	restart, lit := chooseRestart(re)
	c.b.SetRestartType(restart)
	if lit != nil {
		c.b.SetKMP(program.BuildKMPTable(lit))
	}

	return c.b.Build(), nil
}

// compile walks one AST node, emitting instructions whose accepting path
// falls through to next. It returns the entry node id of the emitted
// fragment.
func (c *compiler) compile(re *syntax.Regexp, next program.NodeID) (program.NodeID, error) {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > maxDepth {
		return program.InvalidNodeID, fmt.Errorf("compile: pattern nesting exceeds %d", maxDepth)
	}

	switch re.Op {
	case syntax.OpNoMatch:
		// Never matches: compile as an empty set that no byte satisfies.
		return c.b.AddSet(program.NewSmallSet(), next), nil
	case syntax.OpEmptyMatch:
		return next, nil
	case syntax.OpLiteral:
		return c.compileLiteral(re, next)
	case syntax.OpCharClass:
		return c.compileCharClass(re, next), nil
	case syntax.OpAnyCharNotNL, syntax.OpAnyChar:
		return c.b.AddWild(next), nil
	case syntax.OpBeginLine:
		return c.b.AddStartLine(next), nil
	case syntax.OpEndLine:
		return c.b.AddEndLine(next), nil
	case syntax.OpBeginText:
		return c.b.AddBufferStart(next), nil
	case syntax.OpEndText:
		return c.b.AddBufferEnd(next), nil
	case syntax.OpWordBoundary:
		return c.b.AddWordBoundary(next), nil
	case syntax.OpNoWordBoundary:
		return c.compileNoWordBoundary(next), nil
	case syntax.OpCapture:
		return c.compileCapture(re, next)
	case syntax.OpStar:
		return c.compileRepeat(re.Sub[0], 0, -1, re.Flags&syntax.NonGreedy == 0, next)
	case syntax.OpPlus:
		return c.compileRepeat(re.Sub[0], 1, -1, re.Flags&syntax.NonGreedy == 0, next)
	case syntax.OpQuest:
		return c.compileRepeat(re.Sub[0], 0, 1, re.Flags&syntax.NonGreedy == 0, next)
	case syntax.OpRepeat:
		return c.compileRepeat(re.Sub[0], re.Min, re.Max, re.Flags&syntax.NonGreedy == 0, next)
	case syntax.OpConcat:
		return c.compileConcat(re.Sub, next)
	case syntax.OpAlternate:
		return c.compileAlternate(re.Sub, next)
	default:
		return program.InvalidNodeID, &ErrUnsupported{Op: re.Op}
	}
}

// compileLiteral emits a single literal node holding the bytes of every
// rune in the [0, 255] range, in sequence (fold-cased literals are represented case-insensitively via the
// program's global icase flag, matched at Program-compile time in
// CompileSyntax's containsFold scan).
func (c *compiler) compileLiteral(re *syntax.Regexp, next program.NodeID) (program.NodeID, error) {
	if len(re.Rune) == 0 {
		return next, nil
	}
	var buf []byte
	for _, r := range re.Rune {
		if r < 0 || r > 0xFF {
			continue // outside the byte-oriented alphabet this core targets
		}
		buf = append(buf, byte(r))
	}
	if len(buf) == 0 {
		return next, nil
	}
	return c.b.AddLiteral(buf, next), nil
}

// compileCharClass emits a long_set node over the class's rune ranges,
// clipped to the byte range [0, 255] (package doc).
func (c *compiler) compileCharClass(re *syntax.Regexp, next program.NodeID) program.NodeID {
	var ranges []program.ByteRange
	for i := 0; i+1 < len(re.Rune); i += 2 {
		lo, hi := re.Rune[i], re.Rune[i+1]
		if lo > 0xFF {
			continue
		}
		if hi > 0xFF {
			hi = 0xFF
		}
		ranges = append(ranges, program.ByteRange{Lo: byte(lo), Hi: byte(hi)})
	}
	set := program.NewRangeSet(false, ranges...)
	return c.b.AddLongSet(set, next)
}

// compileNoWordBoundary realizes \B as a negative zero-width lookahead
// over \b (SPEC_FULL.md item 1), since spec.md's opcode catalogue has no
// direct "not a word boundary" primitive of its own.
func (c *compiler) compileNoWordBoundary(next program.NodeID) program.NodeID {
	closure := c.b.AddEndMark(-1, program.InvalidNodeID)
	wb := c.b.AddWordBoundary(closure)
	return c.b.AddLookahead(wb, true, next)
}

func (c *compiler) compileCapture(re *syntax.Regexp, next program.NodeID) (program.NodeID, error) {
	index := re.Cap
	endMark := c.b.AddEndMark(index, next)
	body, err := c.compile(re.Sub[0], endMark)
	if err != nil {
		return program.InvalidNodeID, err
	}
	return c.b.AddStartMark(index, body), nil
}

// compileRepeat emits a generic rep node for min/max bounds that cannot be
// represented by a single specialized opcode, except for the common
// single-byte-unit cases (literal byte, char class, `.`), which go through
// the specialized counted-repeat opcodes spec.md §4.2 lists precisely so
// inner backtracking isn't needed for them.
func (c *compiler) compileRepeat(body *syntax.Regexp, min, max int, greedy bool, next program.NodeID) (program.NodeID, error) {
	if id, ok := c.compileSpecializedRepeat(body, min, max, greedy, next); ok {
		return id, nil
	}
	rep := c.b.ReserveRep(min, max, greedy, next)
	sub, err := c.compile(body, rep)
	if err != nil {
		return program.InvalidNodeID, err
	}
	c.b.SetRepBody(rep, sub)
	return rep, nil
}

// compileSpecializedRepeat recognizes the single-consuming-unit bodies
// spec.md §4.2's dot_repeat_fast/char_repeat/long_set_repeat opcodes exist
// for. Input here is always a random-access []byte (regex.go's facade),
// so dot repeats always compile to the fast variant; dot_repeat_slow has
// no code path from this compiler (it exists for non-random-access
// cursors, spec.md §3's note, which this module never constructs).
func (c *compiler) compileSpecializedRepeat(body *syntax.Regexp, min, max int, greedy bool, next program.NodeID) (program.NodeID, bool) {
	switch body.Op {
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		return c.b.AddDotRepeatFast(min, max, greedy, next), true
	case syntax.OpLiteral:
		if len(body.Rune) == 1 && body.Rune[0] >= 0 && body.Rune[0] <= 0xFF {
			return c.b.AddCharRepeat(byte(body.Rune[0]), min, max, greedy, next), true
		}
	case syntax.OpCharClass:
		ranges := make([]program.ByteRange, 0, len(body.Rune)/2)
		for i := 0; i+1 < len(body.Rune); i += 2 {
			lo, hi := body.Rune[i], body.Rune[i+1]
			if lo > 0xFF {
				continue
			}
			if hi > 0xFF {
				hi = 0xFF
			}
			ranges = append(ranges, program.ByteRange{Lo: byte(lo), Hi: byte(hi)})
		}
		return c.b.AddLongSetRepeat(program.NewRangeSet(false, ranges...), min, max, greedy, next), true
	}
	return program.InvalidNodeID, false
}

// compileConcat threads sub-fragments right-to-left: each element's entry
// becomes the next element's target, so the whole chain falls through to
// the outer next exactly once, at the tail.
func (c *compiler) compileConcat(sub []*syntax.Regexp, next program.NodeID) (program.NodeID, error) {
	id := next
	for i := len(sub) - 1; i >= 0; i-- {
		var err error
		id, err = c.compile(sub[i], id)
		if err != nil {
			return program.InvalidNodeID, err
		}
	}
	return id, nil
}

// compileAlternate builds the chain of alt nodes spec.md §4.2 describes:
// each alt pushes a backtrack frame at its fallback and continues on its
// preferred branch, so trying branches[0] first, branches[1] on
// backtrack, and so on.
func (c *compiler) compileAlternate(sub []*syntax.Regexp, next program.NodeID) (program.NodeID, error) {
	branches := make([]program.NodeID, len(sub))
	for i, s := range sub {
		id, err := c.compile(s, next)
		if err != nil {
			return program.InvalidNodeID, err
		}
		branches[i] = id
	}
	chain := branches[len(branches)-1]
	for i := len(branches) - 2; i >= 0; i-- {
		chain = c.b.AddAlt(chain, branches[i])
	}
	return chain, nil
}
