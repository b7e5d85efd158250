package cfg

import (
	"fmt"
	"sync"

	"github.com/npillmayer/grampa"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Scanner for the textual grammar notation, built on lexmachine. The
// notation is line-oriented, so newlines are tokens rather than skipped
// whitespace.

// Token categories of the notation.
const (
	symbolTok = iota + 1
	arrowTok
	pipeTok
	epsilonTok
	newlineTok
)

var (
	lexerOnce     sync.Once
	notationLexer *lexmachine.Lexer
	lexerErr      error
)

// notation returns the compiled notation lexer. The DFA is compiled once;
// patterns added first win ties, so '->' and 'ε' take precedence over the
// catch-all symbol pattern.
func notation() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		l := lexmachine.NewLexer()
		l.Add([]byte("->"), scanToken(arrowTok))
		l.Add([]byte("ε"), scanToken(epsilonTok))
		l.Add([]byte("\\|"), scanToken(pipeTok))
		l.Add([]byte("\n"), scanToken(newlineTok))
		l.Add([]byte("( |\t|\r)+"), scanSkip)
		l.Add([]byte("[^ \t\n\r|]+"), scanToken(symbolTok))
		if err := l.Compile(); err != nil {
			tracer().Errorf("error compiling notation DFA: %v", err)
			lexerErr = err
			return
		}
		notationLexer = l
	})
	return notationLexer, lexerErr
}

// scanSkip ignores the scanned match.
func scanSkip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// scanToken wraps a scanned match into a token of the given category.
func scanToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// ParseProductions scans a notation string and returns the productions in
// source order. Parse failures are reported with their line number;
// scanning aborts on the first error. With contextFree set, lefthand sides
// must be single symbols; otherwise multi-symbol lefthand sides (monotonic
// productions) are accepted.
func ParseProductions(text string, contextFree bool) ([]Production, error) {
	lexer, err := notation()
	if err != nil {
		return nil, fmt.Errorf("cannot initialize grammar scanner: %v", err)
	}
	scan, err := lexer.Scanner([]byte(text))
	if err != nil {
		return nil, err
	}
	var prods []Production
	var line []*lexmachine.Token
	lineno := 1
	for tok, err, eof := scan.Next(); !eof; tok, err, eof = scan.Next() {
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				return nil, fmt.Errorf("line %d: unexpected input at offset %d", lineno, ui.FailTC)
			}
			return nil, err
		}
		t := tok.(*lexmachine.Token)
		if t.Type == newlineTok {
			P, err := parseLine(lineno, line, contextFree)
			if err != nil {
				return nil, err
			}
			prods = append(prods, P...)
			line = line[:0]
			lineno++
			continue
		}
		line = append(line, t)
	}
	P, err := parseLine(lineno, line, contextFree)
	if err != nil {
		return nil, err
	}
	return append(prods, P...), nil
}

// parseLine turns the tokens of a single notation line into productions,
// one per alternative. Blank lines yield no productions.
func parseLine(lineno int, toks []*lexmachine.Token, contextFree bool) ([]Production, error) {
	if len(toks) == 0 {
		return nil, nil
	}
	arrow := -1
	for i, t := range toks {
		if t.Type == arrowTok {
			arrow = i
			break
		}
	}
	switch {
	case arrow < 0:
		return nil, fmt.Errorf("line %d: missing '->'", lineno)
	case arrow == 0:
		return nil, fmt.Errorf("line %d: missing lefthand side before '->'", lineno)
	case arrow > 1 && contextFree:
		return nil, fmt.Errorf("line %d: lefthand side of a context-free production must be a single symbol", lineno)
	}
	lhs := grampa.Word{}
	for _, t := range toks[:arrow] {
		if t.Type != symbolTok {
			return nil, fmt.Errorf("line %d: lefthand side may not contain %q", lineno, string(t.Lexeme))
		}
		lhs = append(lhs, grampa.Symbol(t.Lexeme))
	}
	var prods []Production
	alt := grampa.Word{}
	flush := func() error {
		if len(alt) == 0 {
			return fmt.Errorf("line %d: empty alternative for %v, use ε for the empty word", lineno, lhs)
		}
		prod, err := NewProduction(lhs, alt)
		if err != nil {
			return fmt.Errorf("line %d: %v", lineno, err)
		}
		prods = append(prods, prod)
		alt = grampa.Word{}
		return nil
	}
	for _, t := range toks[arrow+1:] {
		switch t.Type {
		case symbolTok:
			alt = append(alt, grampa.Symbol(t.Lexeme))
		case epsilonTok:
			alt = append(alt, grampa.Epsilon)
		case pipeTok:
			if err := flush(); err != nil {
				return nil, err
			}
		case arrowTok:
			return nil, fmt.Errorf("line %d: unexpected second '->'", lineno)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return prods, nil
}
