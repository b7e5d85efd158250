package cyk

import (
	"testing"

	"github.com/npillmayer/grampa"
	"github.com/npillmayer/grampa/cfg"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// A grammar for decimal numbers with optional fraction and scale part,
// where Scale may derive ε.
func numberGrammar(t *testing.T) *cfg.Grammar {
	g, err := cfg.FromString(`
Number -> Integer | Real
Integer -> Digit | Integer Digit
Real -> Integer Fraction Scale
Fraction -> . Integer
Scale -> e Sign Integer | ε
Digit -> 0 | 1 | 2 | 3 | 4 | 5 | 6 | 7 | 8 | 9
Sign -> + | -
`)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestOracleRecognizes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.cyk")
	defer teardown()
	//
	g := numberGrammar(t)
	for _, c := range []struct {
		input string
		inL   bool
	}{
		{"3 2 . 5 e + 1", true},
		{"3 2 . 5", true},
		{"3 2", true},
		{"3 2 .", false},
		{". 5", false},
	} {
		oracle, err := NewOracle(g, grampa.ParseWord(c.input))
		if err != nil {
			t.Fatal(err)
		}
		if got := oracle.Recognizes(); got != c.inL {
			t.Errorf("expected recognition of %q to be %v, is %v", c.input, c.inL, got)
		}
	}
}

func TestOracleDerives(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.cyk")
	defer teardown()
	//
	g := numberGrammar(t)
	oracle, err := NewOracle(g, grampa.ParseWord("3 2 . 5 e + 1"))
	if err != nil {
		t.Fatal(err)
	}
	// over the prefix '3 2 . 5' the nullable Scale consumes length 0
	lens := oracle.Derives(grampa.ParseWord("Integer Fraction Scale"), 1, 4)
	if !equalInts(lens, []int{2, 2, 0}) {
		t.Errorf("expected split [2 2 0], have %v", lens)
	}
	// over the full input Scale consumes 'e + 1'
	lens = oracle.Derives(grampa.ParseWord("Integer Fraction Scale"), 1, 7)
	if !equalInts(lens, []int{2, 2, 3}) {
		t.Errorf("expected split [2 2 3], have %v", lens)
	}
	// terminals consume themselves
	lens = oracle.Derives(grampa.ParseWord("Integer . Integer"), 1, 4)
	if !equalInts(lens, []int{2, 1, 1}) {
		t.Errorf("expected split [2 1 1], have %v", lens)
	}
	// words that do not derive the span yield nil
	if lens = oracle.Derives(grampa.ParseWord("Fraction"), 1, 2); lens != nil {
		t.Errorf("expected nil for a non-deriving word, have %v", lens)
	}
	if lens = oracle.Derives(grampa.ParseWord("Integer"), 1, 3); lens != nil {
		t.Errorf("expected nil, '3 2 .' is no Integer, have %v", lens)
	}
}

func TestOracleOriginalLeftmostProds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.cyk")
	defer teardown()
	//
	g := numberGrammar(t)
	input := grampa.ParseWord("3 2 . 5 e + 1")
	oracle, err := NewOracle(g, input)
	if err != nil {
		t.Fatal(err)
	}
	prods, err := oracle.OriginalLeftmostProds()
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("reconstructed production sequence: %v", prods)
	if len(prods) == 0 || g.Prod(prods[0]).Lhs[0] != g.Start() {
		t.Fatalf("reconstruction must start at the start symbol, have %v", prods)
	}
	d, err := cfg.NewDerivation(g).Leftmost(prods...)
	if err != nil {
		t.Fatal(err)
	}
	if !d.SententialForm().Equal(input) {
		t.Errorf("replaying the reconstruction yields %v, expected %v", d.SententialForm(), input)
	}
}

func TestOracleLeftmostWithEpsilonStep(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.cyk")
	defer teardown()
	//
	// deriving '3 2 . 5' forces an ε-step for Scale
	g := numberGrammar(t)
	input := grampa.ParseWord("3 2 . 5")
	oracle, err := NewOracle(g, input)
	if err != nil {
		t.Fatal(err)
	}
	prods, err := oracle.OriginalLeftmostProds()
	if err != nil {
		t.Fatal(err)
	}
	epsIdx := g.IndexOf(g.ProdsWhere(cfg.Filter{Lhs: grampa.Word{"Scale"}, Rhs: grampa.Word{grampa.Epsilon}})[0])
	used := false
	for _, i := range prods {
		if i == epsIdx {
			used = true
		}
	}
	if !used {
		t.Errorf("expected the ε-production of Scale in %v", prods)
	}
	d, err := cfg.NewDerivation(g).Leftmost(prods...)
	if err != nil {
		t.Fatal(err)
	}
	if !d.SententialForm().Equal(input) {
		t.Errorf("replaying the reconstruction yields %v, expected %v", d.SententialForm(), input)
	}
}

func TestOracleEmptyInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grampa.cyk")
	defer teardown()
	//
	g, err := cfg.FromString("S -> ε | a")
	if err != nil {
		t.Fatal(err)
	}
	oracle, err := NewOracle(g, grampa.Word{})
	if err != nil {
		t.Fatal(err)
	}
	if !oracle.Recognizes() {
		t.Fatal("a nullable start symbol must recognize the empty input")
	}
	prods, err := oracle.OriginalLeftmostProds()
	if err != nil {
		t.Fatal(err)
	}
	d, err := cfg.NewDerivation(g).Leftmost(prods...)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.SententialForm()) != 0 {
		t.Errorf("expected the empty word, have %v", d.SententialForm())
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
