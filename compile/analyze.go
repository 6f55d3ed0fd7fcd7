package compile

import (
	"regexp/syntax"

	"github.com/automeka/boost-regex/program"
)

// nullable reports whether re can match the empty string, feeding
// program.Builder.SetCanBeNull (spec.md §3's entry-node can_be_null flag).
func nullable(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpEmptyMatch, syntax.OpBeginLine, syntax.OpEndLine,
		syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return true
	case syntax.OpLiteral:
		return len(re.Rune) == 0
	case syntax.OpCharClass, syntax.OpAnyChar, syntax.OpAnyCharNotNL, syntax.OpNoMatch:
		return false
	case syntax.OpCapture:
		return nullable(re.Sub[0])
	case syntax.OpStar, syntax.OpQuest:
		return true
	case syntax.OpPlus:
		return nullable(re.Sub[0])
	case syntax.OpRepeat:
		return re.Min == 0 || nullable(re.Sub[0])
	case syntax.OpConcat:
		for _, s := range re.Sub {
			if !nullable(s) {
				return false
			}
		}
		return true
	case syntax.OpAlternate:
		for _, s := range re.Sub {
			if nullable(s) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// containsFold reports whether any node in re's tree carries
// syntax.FoldCase, used as a coarse stand-in for the program's single
// global icase flag (spec.md §3 caches one icase bit per Program, not per
// node; a pattern that mixes `(?i:...)` and case-sensitive text cannot be
// represented exactly and folds globally here).
func containsFold(re *syntax.Regexp) bool {
	if re.Flags&syntax.FoldCase != 0 {
		switch re.Op {
		case syntax.OpLiteral, syntax.OpCharClass:
			return true
		}
	}
	for _, s := range re.Sub {
		if containsFold(s) {
			return true
		}
	}
	return false
}

// maxFirstBytes bounds how many distinct leading bytes firstBytes will
// enumerate before giving up and reporting "any byte can start" (anyStart
// in program.Builder); past this point a precise bitmap buys restart_any
// nothing over a linear scan.
const maxFirstBytes = 64

// firstBytes computes (a conservative superset of) the bytes a match of
// re could begin with, for the program's start-character bitmap (spec.md
// §2). any=true means no useful bitmap could be determined (the caller
// should treat every byte as a possible start).
func firstBytes(re *syntax.Regexp) (bytes []byte, any bool) {
	set := map[byte]bool{}
	ok := collectFirstBytes(re, set)
	if !ok || len(set) == 0 || len(set) > maxFirstBytes {
		return nil, true
	}
	out := make([]byte, 0, len(set))
	for b := range set {
		out = append(out, b)
	}
	return out, false
}

// collectFirstBytes adds re's possible leading bytes to set. It returns
// false when re's leading byte set cannot be bounded precisely (e.g. `.`,
// an unconstrained class, or a zero-width assertion that admits any
// following byte), signaling the caller to fall back to anyStart.
func collectFirstBytes(re *syntax.Regexp, set map[byte]bool) bool {
	switch re.Op {
	case syntax.OpLiteral:
		if len(re.Rune) == 0 {
			return false // nullable: whatever follows can start the match too
		}
		r := re.Rune[0]
		if r < 0 || r > 0xFF {
			return false
		}
		set[byte(r)] = true
		if re.Flags&syntax.FoldCase != 0 {
			set[foldByte(byte(r))] = true
		}
		return true
	case syntax.OpCharClass:
		for i := 0; i+1 < len(re.Rune); i += 2 {
			lo, hi := re.Rune[i], re.Rune[i+1]
			if lo > 0xFF {
				continue
			}
			if hi > 0xFF {
				hi = 0xFF
			}
			for b := int(lo); b <= int(hi); b++ {
				set[byte(b)] = true
			}
		}
		return true
	case syntax.OpCapture:
		return collectFirstBytes(re.Sub[0], set)
	case syntax.OpPlus:
		return collectFirstBytes(re.Sub[0], set)
	case syntax.OpConcat:
		for _, s := range re.Sub {
			if !collectFirstBytes(s, set) {
				return false
			}
			if !nullable(s) {
				return true
			}
		}
		return true
	case syntax.OpAlternate:
		for _, s := range re.Sub {
			if !collectFirstBytes(s, set) {
				return false
			}
		}
		return true
	case syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary, syntax.OpEmptyMatch:
		return false
	default:
		return false
	}
}

// foldByte returns the other-case ASCII letter for b, or b unchanged.
func foldByte(b byte) byte {
	switch {
	case b >= 'a' && b <= 'z':
		return b - ('a' - 'A')
	case b >= 'A' && b <= 'Z':
		return b + ('a' - 'A')
	default:
		return b
	}
}

// minLiteralLen is the shortest leading literal chooseRestart will bother
// accelerating with a KMP table; below this a bitmap scan is just as fast
// and cheaper to build.
const minLiteralLen = 2

// chooseRestart selects a restart strategy hint for the compiled program
// (spec.md §4.1). It recognizes the common cases a literal-extraction pass
// would: an anchored pattern, an exact literal, and a pattern with a
// required literal prefix; everything else defaults to restart_any, which
// is always correct (spec.md §8 property 5, restart equivalence).
func chooseRestart(re *syntax.Regexp) (program.RestartType, []byte) {
	if isBeginTextAnchored(re) {
		return program.RestartBuf, nil
	}
	if lit, exact := exactLiteral(re); lit != nil {
		if len(lit) >= minLiteralLen {
			if exact {
				return program.RestartFixedLit, lit
			}
			return program.RestartLit, lit
		}
	}
	return program.RestartAny, nil
}

// isBeginTextAnchored reports whether re must begin with \A (or ^ outside
// multiline mode, which regexp/syntax also represents as OpBeginText when
// the pattern has no (?m) flag on that node).
func isBeginTextAnchored(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpBeginText:
		return true
	case syntax.OpCapture:
		return isBeginTextAnchored(re.Sub[0])
	case syntax.OpConcat:
		return len(re.Sub) > 0 && isBeginTextAnchored(re.Sub[0])
	default:
		return false
	}
}

// exactLiteral extracts a required leading literal from re, if the whole
// pattern begins with one. exact reports whether the literal IS the
// entire pattern (enabling restart_fixed_lit); otherwise it is only a
// required prefix (restart_lit, rewound and re-verified via match_prefix).
func exactLiteral(re *syntax.Regexp) (lit []byte, exact bool) {
	switch re.Op {
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase != 0 {
			return nil, false
		}
		return literalBytes(re), true
	case syntax.OpConcat:
		if len(re.Sub) == 0 {
			return nil, false
		}
		first := re.Sub[0]
		if first.Op != syntax.OpLiteral || first.Flags&syntax.FoldCase != 0 {
			return nil, false
		}
		return literalBytes(first), len(re.Sub) == 1
	default:
		return nil, false
	}
}

// literalBytes converts a syntax.OpLiteral node's runes to bytes, dropping
// any outside the byte-oriented alphabet this core targets (package doc).
func literalBytes(re *syntax.Regexp) []byte {
	buf := make([]byte, 0, len(re.Rune))
	for _, r := range re.Rune {
		if r >= 0 && r <= 0xFF {
			buf = append(buf, byte(r))
		}
	}
	return buf
}
