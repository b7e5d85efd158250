package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/grampa"
	"github.com/npillmayer/grampa/cfg"
	"github.com/npillmayer/grampa/cyk"
	"github.com/npillmayer/grampa/display"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// tracer traces with key 'grampa.repl'.
func tracer() tracing.Trace {
	return tracing.Select("grampa.repl")
}

// main() starts an interactive CLI, a sandbox for experimenting with
// context-free grammars: load a grammar from its textual notation, inspect
// and clean it, transform it to Chomsky Normal Form, run CYK recognition
// and replay derivations step by step.
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	gfile := flag.String("grammar", "", "Grammar file to load on startup")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	pterm.Info.Println("Welcome to the grampa grammar workbench")
	tracer().Infof("Trace level is %s", *tlevel)
	//
	repl, err := readline.New("grampa> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	if *gfile != "" {
		if err := intp.loadGrammar(*gfile); err != nil {
			tracer().Errorf("%v", err)
			os.Exit(2)
		}
	}
	tracer().Infof("Quit with <ctrl>D")
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object, holding the current grammar, the table of
// the last CYK run and the derivation under construction.
type Intp struct {
	repl  *readline.Instance
	g     *cfg.Grammar
	input grampa.Word
	table *cyk.Table
	deriv *cfg.Derivation
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		args := strings.Fields(line)
		quit, err := intp.Execute(args[0], args[1:])
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Execute dispatches a single REPL command.
func (intp *Intp) Execute(cmd string, args []string) (bool, error) {
	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		intp.help()
		return false, nil
	case "load":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: load <file>")
		}
		return false, intp.loadGrammar(args[0])
	case "show":
		if err := intp.needGrammar(); err != nil {
			return false, err
		}
		pterm.Println(display.Grammar(intp.g))
		return false, nil
	case "clean":
		return false, intp.transform(cmd, (*cfg.Grammar).Clean)
	case "cnf":
		return false, intp.transform(cmd, (*cfg.Grammar).ToCNF)
	case "check":
		return false, intp.check()
	case "cyk":
		return false, intp.cyk(args)
	case "derive":
		return false, intp.derive(args)
	case "step":
		return false, intp.step(args)
	case "steps":
		return false, intp.possibleSteps()
	case "form":
		if err := intp.needDerivation(); err != nil {
			return false, err
		}
		pterm.Info.Println(intp.deriv.SententialForm().String())
		return false, nil
	case "reset":
		if err := intp.needGrammar(); err != nil {
			return false, err
		}
		intp.deriv = cfg.NewDerivation(intp.g)
		pterm.Info.Println(intp.deriv.SententialForm().String())
		return false, nil
	}
	return false, fmt.Errorf("unknown command %q, try 'help'", cmd)
}

func (intp *Intp) help() {
	pterm.Println(`Commands:
  load <file>         load a grammar in textual notation
  show                list symbols and indexed productions
  check               report grammar properties and hygiene findings
  clean               drop non-productive and unreachable symbols
  cnf                 transform to Chomsky Normal Form
  cyk <word>          run CYK recognition (grammar must be in CNF)
  derive <word>       reconstruct a leftmost derivation of the word
  reset               start a fresh derivation at the start symbol
  step <prod> <pos>   apply production <prod> at position <pos>
  steps               list all applicable derivation steps
  form                print the current sentential form
  quit                leave`)
}

func (intp *Intp) loadGrammar(filename string) error {
	text, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("unable to read grammar file: %v", err)
	}
	g, err := cfg.FromString(string(text))
	if err != nil {
		return err
	}
	intp.g = g
	intp.deriv = cfg.NewDerivation(g)
	intp.table = nil
	g.Dump() // only visible in debug mode
	pterm.Info.Printfln("loaded grammar with %d productions, S = %s", g.Size(), g.Start())
	return nil
}

func (intp *Intp) transform(name string, f func(*cfg.Grammar) *cfg.Grammar) error {
	if err := intp.needGrammar(); err != nil {
		return err
	}
	before := intp.g.Fingerprint()
	intp.g = f(intp.g)
	intp.deriv = cfg.NewDerivation(intp.g)
	intp.table = nil
	if intp.g.Fingerprint() == before {
		pterm.Info.Printfln("%s: grammar unchanged", name)
	} else {
		pterm.Info.Printfln("%s: grammar now has %d productions", name, intp.g.Size())
	}
	return nil
}

func (intp *Intp) check() error {
	if err := intp.needGrammar(); err != nil {
		return err
	}
	pterm.Info.Printfln("context-free: %v", intp.g.IsContextFree())
	pterm.Info.Printfln("CNF:          %v", cfg.IsCNF(intp.g))
	productive := cfg.ProductiveSymbols(intp.g)
	reachable := cfg.ReachableSymbols(intp.g)
	var bad []string
	for _, sym := range intp.g.Nonterminals() {
		switch {
		case !productive.Contains(sym):
			bad = append(bad, fmt.Sprintf("%s is non-productive", sym))
		case !reachable.Contains(sym):
			bad = append(bad, fmt.Sprintf("%s is unreachable", sym))
		}
	}
	if len(bad) == 0 {
		pterm.Info.Println("grammar is clean")
		return nil
	}
	for _, finding := range bad {
		pterm.Info.Println(finding)
	}
	return nil
}

func (intp *Intp) cyk(args []string) error {
	if err := intp.needGrammar(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: cyk <word>")
	}
	input := grampa.ParseWord(strings.Join(args, " "))
	table, err := cyk.Parse(intp.g, input)
	if err != nil {
		return err
	}
	intp.table = table
	intp.input = input
	pterm.Println(display.CYKTable(table, input))
	if table.Recognizes(intp.g.Start()) {
		pterm.Info.Printfln("%v is in L(G)", input)
	} else {
		pterm.Info.Printfln("%v is not in L(G)", input)
	}
	return nil
}

func (intp *Intp) derive(args []string) error {
	if err := intp.needGrammar(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: derive <word>")
	}
	input := grampa.ParseWord(strings.Join(args, " "))
	oracle, err := cyk.NewOracle(intp.g, input)
	if err != nil {
		return err
	}
	prods, err := oracle.OriginalLeftmostProds()
	if err != nil {
		return err
	}
	d, err := cfg.NewDerivation(intp.g).Leftmost(prods...)
	if err != nil {
		return err
	}
	intp.deriv = d
	pterm.Println(display.Derivation(intp.g, d))
	return nil
}

func (intp *Intp) step(args []string) error {
	if err := intp.needDerivation(); err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: step <prod> <pos>")
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("production index: %v", err)
	}
	pos, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("position: %v", err)
	}
	d, err := intp.deriv.Step(i, pos)
	if err != nil {
		return err
	}
	intp.deriv = d
	pterm.Info.Println(d.SententialForm().String())
	return nil
}

func (intp *Intp) possibleSteps() error {
	if err := intp.needDerivation(); err != nil {
		return err
	}
	steps := intp.deriv.PossibleSteps()
	if len(steps) == 0 {
		pterm.Info.Println("no applicable steps")
		return nil
	}
	for _, step := range steps {
		pterm.Info.Printfln("step %d %d   applies %v", step.Prod, step.Pos, intp.g.Prod(step.Prod))
	}
	return nil
}

func (intp *Intp) needGrammar() error {
	if intp.g == nil {
		return fmt.Errorf("no grammar loaded, use 'load <file>'")
	}
	return nil
}

func (intp *Intp) needDerivation() error {
	if err := intp.needGrammar(); err != nil {
		return err
	}
	if intp.deriv == nil {
		intp.deriv = cfg.NewDerivation(intp.g)
	}
	return nil
}
