package cfg

import (
	"fmt"
	"strings"

	"github.com/npillmayer/grampa"
)

// DerivStep records the application of a single production: the production's
// index in the grammar and the position in the sentential form where its
// lefthand side was matched.
type DerivStep struct {
	Prod int // production index
	Pos  int // match position in the sentential form
}

func (d DerivStep) String() string {
	return fmt.Sprintf("(%d,%d)", d.Prod, d.Pos)
}

// Derivation is a sequence of production applications, starting from the
// one-symbol sentential form (S). Derivations are immutable: Step, Leftmost
// and Rightmost return new derivations and leave the receiver untouched, so
// a derivation prefix can be extended along several branches.
//
// Derivations work on any grammar whose productions have non-empty lefthand
// words, which includes monotonic grammars; only the Leftmost and Rightmost
// conveniences are restricted to context-free grammars.
type Derivation struct {
	g     *Grammar
	steps []DerivStep
	form  grampa.Word // sentential form after steps, replayed eagerly
}

// NewDerivation starts a derivation at the grammar's start symbol.
func NewDerivation(g *Grammar) *Derivation {
	return &Derivation{
		g:    g,
		form: grampa.Word{g.Start()},
	}
}

// SententialForm returns the current sentential form. The returned word is a
// copy and may be modified freely.
func (d *Derivation) SententialForm() grampa.Word {
	return append(grampa.Word{}, d.form...)
}

// Steps returns the steps taken so far, oldest first.
func (d *Derivation) Steps() []DerivStep {
	return append([]DerivStep{}, d.steps...)
}

// Step applies production i at position pos of the current sentential form
// and returns the extended derivation. The production's lefthand word must
// occur at exactly that position; its righthand side is substituted in
// place, with an ε righthand side substituting the empty word.
func (d *Derivation) Step(i int, pos int) (*Derivation, error) {
	if i < 0 || i >= d.g.Size() {
		return nil, fmt.Errorf("no production with index %d, grammar has %d productions", i, d.g.Size())
	}
	p := d.g.Prod(i)
	if !matchesAt(d.form, p.Lhs, pos) {
		return nil, fmt.Errorf("cannot apply %v at position %d of %v", p, pos, d.form)
	}
	return d.extend(i, pos), nil
}

// Leftmost applies each given production at the leftmost occurrence of its
// lefthand symbol, in sequence. Restricted to context-free grammars.
func (d *Derivation) Leftmost(prods ...int) (*Derivation, error) {
	return d.directed(prods, false)
}

// Rightmost applies each given production at the rightmost occurrence of its
// lefthand symbol, in sequence. Restricted to context-free grammars.
func (d *Derivation) Rightmost(prods ...int) (*Derivation, error) {
	return d.directed(prods, true)
}

func (d *Derivation) directed(prods []int, rightmost bool) (*Derivation, error) {
	if !d.g.IsContextFree() {
		return nil, fmt.Errorf("directed derivation steps require a context-free grammar")
	}
	cur := d
	for _, i := range prods {
		if i < 0 || i >= cur.g.Size() {
			return nil, fmt.Errorf("no production with index %d, grammar has %d productions", i, cur.g.Size())
		}
		p := cur.g.Prod(i)
		pos := -1
		for j, sym := range cur.form {
			if sym == p.Lhs[0] {
				pos = j
				if !rightmost {
					break
				}
			}
		}
		if pos < 0 {
			return nil, fmt.Errorf("lefthand side of %v does not occur in %v", p, cur.form)
		}
		cur = cur.extend(i, pos)
	}
	return cur, nil
}

// PossibleSteps enumerates every step applicable to the current sentential
// form, ordered by production index, then by position. The result is
// computed afresh on every call.
func (d *Derivation) PossibleSteps() []DerivStep {
	var steps []DerivStep
	for i, p := range d.g.Prods() {
		for pos := 0; pos+len(p.Lhs) <= len(d.form); pos++ {
			if matchesAt(d.form, p.Lhs, pos) {
				steps = append(steps, DerivStep{Prod: i, Pos: pos})
			}
		}
	}
	return steps
}

// IsDone returns true when the sentential form consists of terminals only,
// i.e. no further step is possible on a clean grammar.
func (d *Derivation) IsDone() bool {
	for _, sym := range d.form {
		if !d.g.IsTerminal(sym) {
			return false
		}
	}
	return true
}

func (d *Derivation) String() string {
	var b strings.Builder
	for _, step := range d.steps {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(step.String())
	}
	return b.String()
}

// extend returns a new derivation with the (pre-validated) step applied.
func (d *Derivation) extend(i int, pos int) *Derivation {
	p := d.g.Prod(i)
	form := append(grampa.Word{}, d.form[:pos]...)
	if !p.Rhs.IsEpsilon() {
		form = append(form, p.Rhs...)
	}
	form = append(form, d.form[pos+len(p.Lhs):]...)
	steps := append(append([]DerivStep{}, d.steps...), DerivStep{Prod: i, Pos: pos})
	return &Derivation{g: d.g, steps: steps, form: form}
}

// matchesAt tests whether lhs occurs as a subword of form at position pos.
func matchesAt(form grampa.Word, lhs grampa.Word, pos int) bool {
	if pos < 0 || pos+len(lhs) > len(form) {
		return false
	}
	return form[pos : pos+len(lhs)].Equal(lhs)
}
