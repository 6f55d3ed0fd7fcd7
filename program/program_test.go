package program

import "testing"

// buildLiteralProgram builds a program matching the literal "ab" exactly:
// literal("ab") -> match.
func buildLiteralProgram(t *testing.T) *Program {
	t.Helper()
	b := NewBuilder()
	m := b.AddMatch()
	lit := b.AddLiteral([]byte("ab"), m)
	b.SetEntry(lit)
	b.SetStartSet([]byte{'a'})
	return b.Build()
}

func TestBuilder_Build(t *testing.T) {
	p := buildLiteralProgram(t)

	if p.Entry() == InvalidNodeID {
		t.Fatal("entry node not set")
	}
	if p.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", p.Size())
	}
	if p.Node(p.Entry()).Op != OpLiteral {
		t.Fatalf("entry op = %v, want literal", p.Node(p.Entry()).Op)
	}
	if !p.CanStartWith('a') {
		t.Error("CanStartWith('a') = false, want true")
	}
	if p.CanStartWith('z') {
		t.Error("CanStartWith('z') = true, want false")
	}
}

func TestOpcode_String(t *testing.T) {
	tests := map[Opcode]string{
		OpStartMark: "startmark",
		OpMatch:     "match",
		OpRep:       "rep",
		numOpcodes:  "invalid",
	}
	for op, want := range tests {
		if got := op.String(); got != want {
			t.Errorf("Opcode(%d).String() = %q, want %q", op, got, want)
		}
	}
}

func TestSmallSet(t *testing.T) {
	s := NewSmallSet()
	s.AddRange('a', 'z')
	s.Add('_')

	if !s.Contains('m') {
		t.Error("Contains('m') = false, want true")
	}
	if !s.Contains('_') {
		t.Error("Contains('_') = false, want true")
	}
	if s.Contains('A') {
		t.Error("Contains('A') = true, want false")
	}
}

func TestRangeSet(t *testing.T) {
	set := NewRangeSet(false, ByteRange{Lo: '0', Hi: '9'})

	consumed, ok := set.Match([]byte("5x"), 0)
	if !ok || consumed != 1 {
		t.Fatalf("Match(\"5x\", 0) = (%d, %v), want (1, true)", consumed, ok)
	}
	_, ok = set.Match([]byte("x5"), 0)
	if ok {
		t.Fatal("Match(\"x5\", 0) matched, want no match")
	}

	negated := NewRangeSet(true, ByteRange{Lo: '0', Hi: '9'})
	consumed, ok = negated.Match([]byte("x5"), 0)
	if !ok || consumed != 1 {
		t.Fatalf("negated Match(\"x5\", 0) = (%d, %v), want (1, true)", consumed, ok)
	}
}

func TestBuildKMPTable(t *testing.T) {
	table := BuildKMPTable([]byte("ababc"))
	want := []int{0, 0, 1, 2, 0}
	if len(table.Failure) != len(want) {
		t.Fatalf("Failure = %v, want len %d", table.Failure, len(want))
	}
	for i, f := range want {
		if table.Failure[i] != f {
			t.Errorf("Failure[%d] = %d, want %d", i, table.Failure[i], f)
		}
	}
}
