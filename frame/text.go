package frame

import (
	"strings"
	"unicode/utf8"
)

// Format renders labels as a bracketed list of quoted strings, e.g. ['a', 'b'].
// Labels are emitted in the given order. Parse reverses Format.
func Format(labels []string) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, l := range labels {
		if i > 0 {
			sb.WriteString(", ")
		}
		quote := byte('\'')
		if strings.ContainsRune(l, '\'') && !strings.ContainsRune(l, '"') {
			quote = '"'
		}
		sb.WriteByte(quote)
		for j := 0; j < len(l); j++ {
			c := l[j]
			if c == '\\' || c == quote {
				sb.WriteByte('\\')
			}
			sb.WriteByte(c)
		}
		sb.WriteByte(quote)
	}
	sb.WriteByte(']')
	return sb.String()
}

// Parse reads the textual form of a proposition.
//
// The grammar is deliberately tiny:
//
//	list  = "[" [ item { "," item } [ "," ] ] "]"
//	item  = "'" { char } "'" | `"` { char } `"`
//
// Whitespace is allowed between tokens. Inside a quoted item the only escapes
// are \\, \' and \". Any other input yields a *MalformedPropositionError.
func Parse(s string) ([]string, error) {
	p := parser{in: s}
	return p.list()
}

type parser struct {
	in  string
	pos int
}

func (p *parser) fail(reason string) error {
	return &MalformedPropositionError{Input: p.in, Offset: p.pos, Reason: reason}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.in) {
		switch p.in[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.in) {
		return 0, false
	}
	return p.in[p.pos], true
}

func (p *parser) list() ([]string, error) {
	p.skipSpace()
	if c, ok := p.peek(); !ok || c != '[' {
		return nil, p.fail("expected '['")
	}
	p.pos++

	labels := []string{}
	for {
		p.skipSpace()
		c, ok := p.peek()
		if !ok {
			return nil, p.fail("unterminated list")
		}
		if c == ']' {
			p.pos++
			break
		}
		item, err := p.item()
		if err != nil {
			return nil, err
		}
		labels = append(labels, item)

		p.skipSpace()
		c, ok = p.peek()
		switch {
		case !ok:
			return nil, p.fail("unterminated list")
		case c == ',':
			p.pos++
		case c == ']':
			// closed on the next iteration
		default:
			return nil, p.fail("expected ',' or ']'")
		}
	}

	p.skipSpace()
	if p.pos != len(p.in) {
		return nil, p.fail("trailing input")
	}
	return labels, nil
}

func (p *parser) item() (string, error) {
	quote, _ := p.peek()
	if quote != '\'' && quote != '"' {
		return "", p.fail("expected quoted string")
	}
	p.pos++

	var sb strings.Builder
	for {
		c, ok := p.peek()
		if !ok {
			return "", p.fail("unterminated string")
		}
		switch c {
		case quote:
			p.pos++
			if !utf8.ValidString(sb.String()) {
				return "", p.fail("invalid utf-8")
			}
			return sb.String(), nil
		case '\\':
			p.pos++
			esc, ok := p.peek()
			if !ok || (esc != '\\' && esc != '\'' && esc != '"') {
				return "", p.fail("unsupported escape")
			}
			sb.WriteByte(esc)
			p.pos++
		case '\n', '\r':
			return "", p.fail("newline in string")
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
}
