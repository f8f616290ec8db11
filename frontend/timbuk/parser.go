package timbuk

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/limigo/limigo/errs"
)

var validate = validator.New()

type nameTag struct {
	Name string `validate:"required,alphanum"`
}

func checkName(name string, line int) error {
	if name == "init" {
		return errs.NewParse(line, "%q is a reserved word and cannot be used as a symbol or state name", name)
	}
	if err := validate.Struct(nameTag{Name: name}); err != nil {
		return errs.NewParse(line, "%q is not a valid alphanumeric name", name)
	}
	return nil
}

// Parse reads one automaton definition from r against st, which may
// already hold symbols and independence pairs declared by a previously
// parsed sibling automaton.
func Parse(r io.Reader, st *SymbolTable) (*Automaton, error) {
	scanner := bufio.NewScanner(r)
	var aut *Automaton
	inTransitions := false
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := stripComment(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch {
		case fields[0] == "Ops":
			if err := parseOps(fields[1:], st, lineNo); err != nil {
				return nil, err
			}
		case fields[0] == "Independence":
			if err := parseIndependence(fields[1:], st, lineNo); err != nil {
				return nil, err
			}
		case fields[0] == "Automaton":
			if len(fields) != 2 {
				return nil, errs.NewParse(lineNo, "Automaton declaration needs exactly one name")
			}
			aut = NewAutomaton(fields[1], st)
		case fields[0] == "States":
			if aut == nil {
				return nil, errs.NewParse(lineNo, "States declared before Automaton")
			}
			for _, name := range fields[1:] {
				if err := checkName(name, lineNo); err != nil {
					return nil, err
				}
				aut.State(name)
			}
		case fields[0] == "Final" && len(fields) > 1 && fields[1] == "States":
			if aut == nil {
				return nil, errs.NewParse(lineNo, "Final States declared before Automaton")
			}
			for _, name := range fields[2:] {
				if err := checkName(name, lineNo); err != nil {
					return nil, err
				}
				aut.MarkFinal(aut.State(name))
			}
		case fields[0] == "Transitions":
			inTransitions = true
		case inTransitions:
			if aut == nil {
				return nil, errs.NewParse(lineNo, "transition declared before Automaton")
			}
			if err := parseTransition(aut, st, fields, lineNo); err != nil {
				return nil, err
			}
		default:
			return nil, errs.NewParse(lineNo, "unrecognized directive %q", fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.NewParse(lineNo, "read error: %v", err)
	}
	if aut == nil {
		return nil, errs.NewParse(lineNo, "input declares no Automaton")
	}
	if err := aut.Validate(); err != nil {
		return nil, err
	}
	return aut, nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// parseOps handles "Ops a:2 b:2 ...".
func parseOps(tokens []string, st *SymbolTable, line int) error {
	for _, tok := range tokens {
		name, arityStr, ok := strings.Cut(tok, ":")
		if !ok {
			return errs.NewParse(line, "expected name:arity in Ops declaration, got %q", tok)
		}
		if err := checkName(name, line); err != nil {
			return err
		}
		arity, err := strconv.Atoi(arityStr)
		if err != nil {
			return errs.NewParse(line, "expected integer arity in %q", tok)
		}
		if _, err := st.AddSymbol(name, arity, line); err != nil {
			return err
		}
	}
	return nil
}

// parseIndependence handles "Independence (a b) (c d) ...".
func parseIndependence(tokens []string, st *SymbolTable, line int) error {
	joined := strings.Join(tokens, " ")
	for {
		joined = strings.TrimSpace(joined)
		if joined == "" {
			return nil
		}
		if !strings.HasPrefix(joined, "(") {
			return errs.NewParse(line, "expected '(' in Independence declaration near %q", joined)
		}
		closeIdx := strings.IndexByte(joined, ')')
		if closeIdx < 0 {
			return errs.NewParse(line, "unterminated independence pair")
		}
		inner := strings.Fields(joined[1:closeIdx])
		if len(inner) != 2 {
			return errs.NewParse(line, "independence pair must name exactly two symbols, got %v", inner)
		}
		a, ok := st.Find(inner[0])
		if !ok {
			return errs.NewParse(line, "symbol %q in Independence declaration was never declared via Ops", inner[0])
		}
		b, ok := st.Find(inner[1])
		if !ok {
			return errs.NewParse(line, "symbol %q in Independence declaration was never declared via Ops", inner[1])
		}
		st.AddIndependence(a, b)
		joined = joined[closeIdx+1:]
	}
}

// parseTransition handles "init -> q" and "sigma(p) -> q".
func parseTransition(aut *Automaton, st *SymbolTable, fields []string, line int) error {
	if len(fields) != 3 || fields[1] != "->" {
		return errs.NewParse(line, "expected \"lhs -> state\", got %q", strings.Join(fields, " "))
	}
	lhs, target := fields[0], fields[2]
	if err := checkName(target, line); err != nil {
		return err
	}
	q := aut.State(target)

	if lhs == "init" {
		aut.MarkInitial(q)
		return nil
	}

	open := strings.IndexByte(lhs, '(')
	if open < 0 || !strings.HasSuffix(lhs, ")") {
		return errs.NewParse(line, "expected \"init\" or \"symbol(state)\" on the left of ->, got %q", lhs)
	}
	symName, stateName := lhs[:open], lhs[open+1:len(lhs)-1]
	if err := checkName(symName, line); err != nil {
		return err
	}
	if err := checkName(stateName, line); err != nil {
		return err
	}
	sigma, ok := st.Find(symName)
	if !ok {
		return errs.NewParse(line, "symbol %q used in a transition was never declared via Ops", symName)
	}
	p := aut.State(stateName)
	aut.AddTransition(p, sigma, q)
	return nil
}
