package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/grampa"
	"github.com/npillmayer/grampa/cfg"
	"github.com/npillmayer/grampa/cyk"
	"github.com/pterm/pterm"
)

// Grammar renders a grammar as a table of indexed productions, preceded by
// a header line with the symbol sets and the start symbol.
func Grammar(g *cfg.Grammar) string {
	var b strings.Builder
	fmt.Fprintf(&b, "G: S = %s\n", g.Start())
	fmt.Fprintf(&b, "   N = { %s }\n", symbolList(g.Nonterminals()))
	fmt.Fprintf(&b, "   T = { %s }\n", symbolList(g.Terminals()))
	data := pterm.TableData{{"#", "LHS", "", "RHS"}}
	for i, p := range g.Prods() {
		data = append(data, []string{
			strconv.Itoa(i), p.Lhs.String(), "→", p.Rhs.String(),
		})
	}
	b.WriteString(renderTable(data, true))
	return b.String()
}

// Derivation renders a derivation step by step, replaying it on the given
// grammar: one line per step with the production applied and the resulting
// sentential form.
func Derivation(g *cfg.Grammar, d *cfg.Derivation) string {
	data := pterm.TableData{{"Step", "Production", "@", "Sentential Form"}}
	data = append(data, []string{"", "", "", grampa.Word{g.Start()}.String()})
	replay := cfg.NewDerivation(g)
	for no, step := range d.Steps() {
		next, err := replay.Step(step.Prod, step.Pos)
		if err != nil {
			tracer().Errorf("derivation replay out of sync: %v", err)
			break
		}
		replay = next
		data = append(data, []string{
			strconv.Itoa(no + 1),
			g.Prod(step.Prod).String(),
			strconv.Itoa(step.Pos),
			replay.SententialForm().String(),
		})
	}
	return renderTable(data, true)
}

// CYKTable renders a recognition table as the usual triangle: the bottom
// row holds the length-1 spans, the top row the full input span.
func CYKTable(t *cyk.Table, input grampa.Word) string {
	n := t.InputLength()
	data := pterm.TableData{}
	for l := n; l >= 1; l-- {
		row := []string{strconv.Itoa(l)}
		for i := 1; i+l-1 <= n; i++ {
			row = append(row, cellText(t, i, l))
		}
		for len(row) < n+1 {
			row = append(row, "")
		}
		data = append(data, row)
	}
	footer := []string{""}
	for _, sym := range input {
		footer = append(footer, string(sym))
	}
	data = append(data, footer)
	return renderTable(data, false)
}

func cellText(t *cyk.Table, i, l int) string {
	syms := t.Span(i, l)
	if len(syms) == 0 {
		return "∅"
	}
	return symbolList(syms)
}

func symbolList(syms []grampa.Symbol) string {
	parts := make([]string, len(syms))
	for i, sym := range syms {
		parts[i] = string(sym)
	}
	return strings.Join(parts, " ")
}

func renderTable(data pterm.TableData, header bool) string {
	table := pterm.DefaultTable.WithData(data)
	if header {
		table = table.WithHasHeader(true)
	}
	s, err := table.Srender()
	if err != nil {
		tracer().Errorf("cannot render table: %v", err)
		return ""
	}
	return s + "\n"
}
