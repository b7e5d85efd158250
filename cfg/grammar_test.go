package cfg

import (
	"testing"

	"github.com/npillmayer/grampa"
	"github.com/npillmayer/grampa/cfg/fixpoint"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFromString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.cfg")
	defer teardown()
	//
	g, err := FromString(`
E -> E + E | E * E | i
`)
	if err != nil {
		t.Fatal(err)
	}
	if g.Start() != "E" {
		t.Errorf("expected start symbol E, have %q", g.Start())
	}
	if g.Size() != 3 {
		t.Errorf("expected 3 productions, have %d", g.Size())
	}
	if n := g.Nonterminals(); len(n) != 1 || n[0] != "E" {
		t.Errorf("expected N = {E}, have %v", n)
	}
	terms := fixpoint.New(g.Terminals()...)
	if !terms.Equal(fixpoint.New[grampa.Symbol]("+", "*", "i")) {
		t.Errorf("expected T = {+ * i}, have %v", g.Terminals())
	}
	if !g.IsContextFree() {
		t.Error("expected grammar to be context-free")
	}
}

func TestFromStringEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.cfg")
	defer teardown()
	//
	g, err := FromString("A -> a A | ε")
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 2 {
		t.Fatalf("expected 2 productions, have %d", g.Size())
	}
	if !g.Prod(1).isEpsilon() {
		t.Errorf("expected production 1 to be an ε-production, is %v", g.Prod(1))
	}
	if terms := g.Terminals(); len(terms) != 1 || terms[0] != "a" {
		t.Errorf("ε leaked into the terminal set: %v", terms)
	}
}

func TestFromStringErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.cfg")
	defer teardown()
	//
	for _, text := range []string{
		"",                // no productions
		"A B -> a",        // multi-symbol lefthand side
		"-> a",            // missing lefthand side
		"A -> a |",        // empty alternative
		"A -> a -> b",     // second arrow
		"A",               // no arrow at all
		"A -> a ε",        // ε inside a longer word
	} {
		if _, err := FromString(text); err == nil {
			t.Errorf("expected error for notation %q, got none", text)
		} else {
			t.Logf("%q: %v", text, err)
		}
	}
}

func TestFromStringWithTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.cfg")
	defer teardown()
	//
	g, err := FromStringWithTerminals(`
S -> a b c | a S Q
b Q c -> b b c c
c Q -> Q c
`, "a", "b", "c")
	if err != nil {
		t.Fatal(err)
	}
	if g.IsContextFree() {
		t.Error("grammar with multi-symbol lefthand sides reported as context-free")
	}
	if g.Start() != "S" {
		t.Errorf("expected start symbol S, have %q", g.Start())
	}
	nset := fixpoint.New(g.Nonterminals()...)
	if !nset.Equal(fixpoint.New[grampa.Symbol]("S", "Q")) {
		t.Errorf("expected N = {S Q}, have %v", g.Nonterminals())
	}
	if lhs := g.Prod(2).Lhs; !lhs.Equal(grampa.ParseWord("b Q c")) {
		t.Errorf("expected lefthand word 'b Q c', have %v", lhs)
	}
}

func TestNewValidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.cfg")
	defer teardown()
	//
	pAa := prod("A", grampa.Word{"a"})
	cases := []struct {
		name string
		N, T []grampa.Symbol
		P    []Production
		S    grampa.Symbol
	}{
		{"overlap", []grampa.Symbol{"A"}, []grampa.Symbol{"A", "a"}, []Production{pAa}, "A"},
		{"start not nonterminal", []grampa.Symbol{"A"}, []grampa.Symbol{"a"}, []Production{pAa}, "a"},
		{"unknown rhs symbol", []grampa.Symbol{"A"}, []grampa.Symbol{}, []Production{pAa}, "A"},
		{"lhs not nonterminal", []grampa.Symbol{"B"}, []grampa.Symbol{"a"}, []Production{pAa}, "B"},
	}
	for _, c := range cases {
		if _, err := New(c.N, c.T, c.P, c.S); err == nil {
			t.Errorf("case %q: expected constructor error, got none", c.name)
		} else {
			t.Logf("case %q: %v", c.name, err)
		}
	}
	if _, err := New([]grampa.Symbol{"A"}, []grampa.Symbol{"a"}, []Production{pAa}, "A"); err != nil {
		t.Errorf("valid grammar rejected: %v", err)
	}
}

func TestGrammarIndexing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.cfg")
	defer teardown()
	//
	g, err := FromString("S -> a S | b")
	if err != nil {
		t.Fatal(err)
	}
	p := g.Prod(1)
	if i := g.IndexOf(p); i != 1 {
		t.Errorf("expected index 1 for %v, have %d", p, i)
	}
	if i := g.IndexOf(prod("S", grampa.Word{"c"})); i != -1 {
		t.Errorf("expected -1 for unknown production, have %d", i)
	}
	alts := g.Alternatives("S")
	if len(alts) != 2 || !alts[0].Equal(grampa.ParseWord("a S")) {
		t.Errorf("unexpected alternatives for S: %v", alts)
	}
	if alts := g.Alternatives("X"); len(alts) != 0 {
		t.Errorf("expected no alternatives for unknown symbol, have %v", alts)
	}
}

func TestGrammarDedup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.cfg")
	defer teardown()
	//
	g, err := FromString("S -> a | a | b")
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 2 {
		t.Errorf("duplicate production not dropped, size is %d", g.Size())
	}
}

func TestProdsWhere(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.cfg")
	defer teardown()
	//
	g, err := FromString(`
S -> A B | a
A -> a
B -> a B | ε
`)
	if err != nil {
		t.Fatal(err)
	}
	long := g.ProdsWhere(Filter{RhsLen: 2})
	if len(long) != 2 {
		t.Errorf("expected 2 productions with |rhs| = 2, have %v", long)
	}
	ofA := g.ProdsWhere(Filter{Lhs: grampa.Word{"A"}})
	if len(ofA) != 1 || !ofA[0].Rhs.Equal(grampa.Word{"a"}) {
		t.Errorf("expected exactly A -> a, have %v", ofA)
	}
}

func TestFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.cfg")
	defer teardown()
	//
	g1, _ := FromString("S -> a S | b")
	g2, _ := FromString("S -> a S | b")
	g3, _ := FromString("S -> a S | c")
	if g1.Fingerprint() != g2.Fingerprint() {
		t.Error("equal grammars have different fingerprints")
	}
	if g1.Fingerprint() == g3.Fingerprint() {
		t.Error("different grammars share a fingerprint")
	}
}

func TestRestrictTo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.cfg")
	defer teardown()
	//
	g, err := FromString(`
S -> A | b
A -> a
`)
	if err != nil {
		t.Fatal(err)
	}
	r := g.RestrictTo(fixpoint.New[grampa.Symbol]("S", "b"))
	if r.Size() != 1 || !r.Prod(0).Rhs.Equal(grampa.Word{"b"}) {
		t.Errorf("expected the restricted grammar to be S -> b, have %v", r.Prods())
	}
	// the start symbol survives any restriction
	r = g.RestrictTo(fixpoint.New[grampa.Symbol]())
	if !r.IsNonterminal("S") {
		t.Error("start symbol dropped by restriction")
	}
	if r.Size() != 0 {
		t.Errorf("expected no productions to survive, have %v", r.Prods())
	}
}
