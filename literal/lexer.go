package literal

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenString
	tokenNumber
	tokenPunct
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) String() string {
	switch t.kind {
	case tokenEOF:
		return "end of input"
	case tokenString:
		return fmt.Sprintf("string '%s'", t.text)
	}
	return fmt.Sprintf("'%s'", t.text)
}

func lex(input string) ([]token, error) {
	var tokens []token
	runes := []rune(input)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case r == '\'':
			// Quotes are escaped by doubling them.
			builder := &strings.Builder{}
			start := i
			i++
			for {
				if i >= len(runes) {
					return nil, errors.Errorf("unterminated string starting at position %d", start)
				}
				if runes[i] == '\'' {
					if i+1 < len(runes) && runes[i+1] == '\'' {
						builder.WriteRune('\'')
						i += 2
						continue
					}
					i++
					break
				}
				builder.WriteRune(runes[i])
				i++
			}
			tokens = append(tokens, token{kind: tokenString, text: builder.String(), pos: start})

		case unicode.IsDigit(r) || (r == '.' && i+1 < len(runes) && unicode.IsDigit(runes[i+1])):
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.' || runes[i] == 'e' || runes[i] == 'E' ||
				((runes[i] == '+' || runes[i] == '-') && (runes[i-1] == 'e' || runes[i-1] == 'E'))) {
				i++
			}
			tokens = append(tokens, token{kind: tokenNumber, text: string(runes[start:i]), pos: start})

		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdent, text: string(runes[start:i]), pos: start})

		case r == '"':
			start := i
			end := strings.IndexRune(string(runes[i+1:]), '"')
			if end == -1 {
				return nil, errors.Errorf("unterminated quoted identifier starting at position %d", start)
			}
			text := string(runes[i+1:])[:end]
			i += len([]rune(text)) + 2
			tokens = append(tokens, token{kind: tokenIdent, text: text, pos: start})

		case strings.ContainsRune("()[]{},:-", r):
			tokens = append(tokens, token{kind: tokenPunct, text: string(r), pos: i})
			i++

		default:
			return nil, errors.Errorf("unexpected character '%c' at position %d", r, i)
		}
	}
	return append(tokens, token{kind: tokenEOF, pos: len(runes)}), nil
}

type parser struct {
	tokens []token
	pos    int
}

func newParser(input string) (*parser, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}
	return &parser{tokens: tokens}, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokenEOF {
		p.pos++
	}
	return t
}

func (p *parser) isPunct(text string) bool {
	t := p.peek()
	return t.kind == tokenPunct && t.text == text
}

func (p *parser) isKeyword(keyword string) bool {
	t := p.peek()
	return t.kind == tokenIdent && strings.EqualFold(t.text, keyword)
}

func (p *parser) expectPunct(text string) error {
	if !p.isPunct(text) {
		return p.unexpected(fmt.Sprintf("'%s'", text))
	}
	p.next()
	return nil
}

func (p *parser) expectEOF() error {
	if p.peek().kind != tokenEOF {
		return p.unexpected("end of input")
	}
	return nil
}

func (p *parser) unexpected(expected string) error {
	t := p.peek()
	return errors.Errorf("syntax error at position %d: expected %s, got %s", t.pos, expected, t)
}
