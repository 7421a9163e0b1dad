// Package gqlparse extracts the requested operation from a GraphQL
// request without guessing from raw text. It lexes the document, walks
// operation definitions and returns the first top-level field of the
// selected operation — keyword mentions inside comments, string
// literals, aliases or arguments never influence the result.
package gqlparse

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrEmptyQuery       = errors.New("empty query")
	ErrNoOperation      = errors.New("no operation definition in query")
	ErrAmbiguous        = errors.New("multiple operations require operationName")
	ErrUnknownOperation = errors.New("operationName does not match any operation")
	ErrIndeterminate    = errors.New("cannot determine the operation's first field")
)

// Operation returns the name of the first top-level field of the
// requested operation. If operationName is non-empty it selects the
// matching named operation; otherwise the document must contain exactly
// one operation definition.
func Operation(query, operationName string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyQuery
	}

	toks, err := lex(query)
	if err != nil {
		return "", err
	}

	ops, err := parseDocument(toks)
	if err != nil {
		return "", err
	}
	if len(ops) == 0 {
		return "", ErrNoOperation
	}

	if operationName != "" {
		for _, op := range ops {
			if op.name == operationName {
				return op.firstField, nil
			}
		}
		return "", fmt.Errorf("%w: %q", ErrUnknownOperation, operationName)
	}

	if len(ops) > 1 {
		return "", ErrAmbiguous
	}
	return ops[0].firstField, nil
}

// ============================================================
// Lexer
// ============================================================

type tokenKind int

const (
	tokName tokenKind = iota
	tokPunct
	tokString
	tokNumber
)

type token struct {
	kind tokenKind
	text string
}

func lex(src string) ([]token, error) {
	runes := []rune(src)
	var toks []token

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		// Ignored: whitespace, commas, BOM
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ',' || r == '\ufeff':
			i++
		// Comment runs to end of line
		case r == '#':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
		case r == '"':
			end, err := scanString(runes, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{tokString, ""})
			i = end
		case r == '.':
			if i+2 < len(runes) && runes[i+1] == '.' && runes[i+2] == '.' {
				toks = append(toks, token{tokPunct, "..."})
				i += 3
			} else {
				return nil, fmt.Errorf("unexpected character %q", r)
			}
		case isNameStart(r):
			j := i + 1
			for j < len(runes) && isNameCont(runes[j]) {
				j++
			}
			toks = append(toks, token{tokName, string(runes[i:j])})
			i = j
		case r == '-' || unicode.IsDigit(r):
			j := i + 1
			for j < len(runes) && (unicode.IsDigit(runes[j]) || strings.ContainsRune(".eE+-", runes[j])) {
				j++
			}
			toks = append(toks, token{tokNumber, string(runes[i:j])})
			i = j
		case strings.ContainsRune("!$():=@[]{}|&", r):
			toks = append(toks, token{tokPunct, string(r)})
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q", r)
		}
	}

	return toks, nil
}

// scanString consumes a quoted or block string starting at pos and
// returns the index just past it. String contents are discarded.
func scanString(runes []rune, pos int) (int, error) {
	// Block string """..."""
	if pos+2 < len(runes) && runes[pos+1] == '"' && runes[pos+2] == '"' {
		for i := pos + 3; i+2 < len(runes); i++ {
			if runes[i] == '\\' {
				i++
				continue
			}
			if runes[i] == '"' && runes[i+1] == '"' && runes[i+2] == '"' {
				return i + 3, nil
			}
		}
		return 0, errors.New("unterminated block string")
	}
	for i := pos + 1; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			i++ // skip escaped character
		case '"':
			return i + 1, nil
		case '\n':
			return 0, errors.New("unterminated string")
		}
	}
	return 0, errors.New("unterminated string")
}

func isNameStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isNameCont(r rune) bool {
	return isNameStart(r) || (r >= '0' && r <= '9')
}

// ============================================================
// Parser
// ============================================================

type opDef struct {
	name       string
	firstField string
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) nextTok() (token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func parseDocument(toks []token) ([]opDef, error) {
	p := &parser{toks: toks}
	var ops []opDef

	for {
		t, ok := p.peek()
		if !ok {
			return ops, nil
		}
		switch {
		// Shorthand operation: bare selection set
		case t.kind == tokPunct && t.text == "{":
			op, err := p.parseSelection("")
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
		case t.kind == tokName && (t.text == "query" || t.text == "mutation"):
			p.pos++
			name := ""
			if n, ok := p.peek(); ok && n.kind == tokName {
				name = n.text
				p.pos++
			}
			if err := p.skipVariableDefs(); err != nil {
				return nil, err
			}
			if err := p.skipDirectives(); err != nil {
				return nil, err
			}
			op, err := p.parseSelection(name)
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
		case t.kind == tokName && t.text == "subscription":
			return nil, errors.New("subscriptions are not supported")
		case t.kind == tokName && t.text == "fragment":
			if err := p.skipFragment(); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unexpected token %q at top level", t.text)
		}
	}
}

// parseSelection consumes a selection set, extracting the first field.
// An alias resolves to the actual field name after the colon.
func (p *parser) parseSelection(opName string) (opDef, error) {
	t, ok := p.nextTok()
	if !ok || t.kind != tokPunct || t.text != "{" {
		return opDef{}, errors.New("expected selection set")
	}

	first, ok := p.nextTok()
	if !ok {
		return opDef{}, errors.New("unterminated selection set")
	}
	if first.kind == tokPunct && first.text == "..." {
		// Fragment spread as the first selection hides the field name
		return opDef{}, ErrIndeterminate
	}
	if first.kind != tokName {
		return opDef{}, fmt.Errorf("expected field name, got %q", first.text)
	}

	field := first.text
	if colon, ok := p.peek(); ok && colon.kind == tokPunct && colon.text == ":" {
		p.pos++
		actual, ok := p.nextTok()
		if !ok || actual.kind != tokName {
			return opDef{}, errors.New("expected field name after alias")
		}
		field = actual.text
	}

	if err := p.skipBalanced("{", "}", 1); err != nil {
		return opDef{}, err
	}
	return opDef{name: opName, firstField: field}, nil
}

func (p *parser) skipVariableDefs() error {
	if t, ok := p.peek(); ok && t.kind == tokPunct && t.text == "(" {
		p.pos++
		return p.skipBalanced("(", ")", 1)
	}
	return nil
}

func (p *parser) skipDirectives() error {
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokPunct || t.text != "@" {
			return nil
		}
		p.pos++
		if n, ok := p.nextTok(); !ok || n.kind != tokName {
			return errors.New("expected directive name")
		}
		if t, ok := p.peek(); ok && t.kind == tokPunct && t.text == "(" {
			p.pos++
			if err := p.skipBalanced("(", ")", 1); err != nil {
				return err
			}
		}
	}
}

func (p *parser) skipFragment() error {
	p.pos++ // "fragment"
	if n, ok := p.nextTok(); !ok || n.kind != tokName {
		return errors.New("expected fragment name")
	}
	if on, ok := p.nextTok(); !ok || on.kind != tokName || on.text != "on" {
		return errors.New("expected 'on' in fragment definition")
	}
	if n, ok := p.nextTok(); !ok || n.kind != tokName {
		return errors.New("expected fragment type condition")
	}
	if err := p.skipDirectives(); err != nil {
		return err
	}
	t, ok := p.nextTok()
	if !ok || t.kind != tokPunct || t.text != "{" {
		return errors.New("expected fragment selection set")
	}
	return p.skipBalanced("{", "}", 1)
}

// skipBalanced consumes tokens until the open/close pair started at
// depth is balanced.
func (p *parser) skipBalanced(open, close string, depth int) error {
	for depth > 0 {
		t, ok := p.nextTok()
		if !ok {
			return fmt.Errorf("unbalanced %q", open)
		}
		if t.kind != tokPunct {
			continue
		}
		switch t.text {
		case open:
			depth++
		case close:
			depth--
		}
	}
	return nil
}
