package parse

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"src.rambutan.dev/pkg/diag"
	"src.rambutan.dev/pkg/eval/vals"
)

// reader scans the source once from left to right. Open lists are kept on a
// stack; the innermost one receives the values read.
type reader struct {
	src   *Source
	code  string
	pos   int
	stack []*vals.List
	forms []vals.Value
	err   *Error

	// Quoting prefixes read but not yet attached, and where they start.
	quoting    vals.Quoting
	quotingPos int
}

const eof rune = -1

func newReader(src *Source) *reader {
	return &reader{src: src, code: src.Code}
}

func (r *reader) peek() rune {
	if r.pos == len(r.code) {
		return eof
	}
	c, _ := utf8.DecodeRuneInString(r.code[r.pos:])
	return c
}

func (r *reader) next() rune {
	if r.pos == len(r.code) {
		return eof
	}
	c, n := utf8.DecodeRuneInString(r.code[r.pos:])
	r.pos += n
	return c
}

func (r *reader) read() {
	for r.err == nil {
		c := r.peek()
		switch {
		case c == eof:
			r.finish()
			return
		case isSpace(c):
			if r.quoting != 0 {
				r.errorAt(r.quotingPos, r.pos, errDanglingQuoting, false)
				return
			}
			r.next()
		case c == ';':
			if r.quoting != 0 {
				r.errorAt(r.quotingPos, r.pos, errDanglingQuoting, false)
				return
			}
			r.skipComment()
		case vals.QuotingOf(c) != 0:
			if r.quoting == 0 {
				r.quotingPos = r.pos
			}
			r.quoting |= vals.QuotingOf(c)
			r.next()
		case c == '(':
			l := &vals.List{Quoting: r.takeQuoting(), Src: r.src}
			l.From = r.pos
			if l.Quoting != 0 {
				l.From = r.quotingPos
			}
			r.next()
			r.stack = append(r.stack, l)
		case c == ')':
			if r.quoting != 0 {
				r.errorAt(r.quotingPos, r.pos, errDanglingQuoting, false)
				return
			}
			if len(r.stack) == 0 {
				r.errorAt(r.pos, r.pos+1, errUnexpectedRParen, false)
				return
			}
			r.next()
			l := r.stack[len(r.stack)-1]
			l.To = r.pos
			r.stack = r.stack[:len(r.stack)-1]
			r.emit(l)
		case c == '"':
			r.readString()
		default:
			r.readToken()
		}
	}
}

func (r *reader) finish() {
	if r.quoting != 0 {
		r.errorAt(r.quotingPos, r.pos, errDanglingQuoting, true)
	} else if len(r.stack) > 0 {
		l := r.stack[len(r.stack)-1]
		r.errorAt(l.From, l.From+1, errUnclosedParen, true)
	}
}

// Adds a completed value to the innermost open list, or to the top-level
// forms if no list is open.
func (r *reader) emit(v vals.Value) {
	if len(r.stack) == 0 {
		r.forms = append(r.forms, v)
		return
	}
	r.stack[len(r.stack)-1].Adopt(v)
}

func (r *reader) takeQuoting() vals.Quoting {
	q := r.quoting
	r.quoting = 0
	return q
}

func (r *reader) skipComment() {
	for c := r.next(); c != eof && c != '\n'; c = r.next() {
	}
}

func (r *reader) readString() {
	// Quoting prefixes have no effect on strings.
	r.takeQuoting()
	begin := r.pos
	r.next()
	var sb strings.Builder
	for {
		c := r.next()
		switch c {
		case eof:
			r.errorAt(begin, begin+1, errUnterminatedString, true)
			return
		case '"':
			r.emit(vals.Str(sb.String()))
			return
		case '\\':
			switch e := r.next(); e {
			case eof:
				r.errorAt(begin, begin+1, errUnterminatedString, true)
				return
			case '"', '\\':
				sb.WriteRune(e)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteByte('\\')
				sb.WriteRune(e)
			}
		default:
			sb.WriteRune(c)
		}
	}
}

func (r *reader) readToken() {
	quoting := r.takeQuoting()
	begin := r.pos
	for c := r.peek(); c != eof && !terminatesToken(c); c = r.peek() {
		r.next()
	}
	token := r.code[begin:r.pos]

	switch {
	case token == "t":
		r.emit(vals.Bool(true))
	case token == "nil":
		r.emit(vals.Nil)
	case isNumber(token):
		// isNumber only accepts what ParseFloat can parse.
		f, _ := strconv.ParseFloat(token, 64)
		r.emit(vals.Num(f))
	default:
		a := &vals.Atom{Name: token, Quoting: quoting, Src: r.src}
		a.From, a.To = begin, r.pos
		if quoting != 0 {
			a.From = r.quotingPos
		}
		r.emit(a)
	}
}

func (r *reader) errorAt(from, to int, err error, partial bool) {
	r.err = &Error{
		Type:    errorType,
		Message: err.Error(),
		Context: *diag.NewContext(r.src.Name, r.code, diag.Ranging{From: from, To: to}),
		Partial: partial,
	}
}

func isSpace(c rune) bool {
	return unicode.IsSpace(c) || unicode.IsControl(c)
}

func terminatesToken(c rune) bool {
	return isSpace(c) || c == '(' || c == ')' || c == '"' || c == ';'
}

// Reports whether s matches [+-]?(digits[.digits*]|.digits).
func isNumber(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	intPart := len(s) - len(strings.TrimLeft(s, "0123456789"))
	s = s[intPart:]
	if s == "" {
		return intPart > 0
	}
	if s[0] != '.' {
		return false
	}
	s = s[1:]
	fracPart := len(s) - len(strings.TrimLeft(s, "0123456789"))
	return fracPart == len(s) && intPart+fracPart > 0
}
