package syntax

import (
	"github.com/byteglush/rex/ast"
	"github.com/byteglush/rex/rxopt"
)

// Lexer turns a byte-slice pattern into a stream of Tokens (component A). It
// never allocates expression nodes — that is the parser's job; the lexer's
// job ends at classifying bytes.
type Lexer struct {
	pattern []byte
	pos     int
	opts    rxopt.Options
}

// NewLexer creates a Lexer over pattern.
func NewLexer(pattern []byte, opts rxopt.Options) *Lexer {
	return &Lexer{pattern: pattern, opts: opts}
}

// Pos returns the lexer's current byte offset, for error reporting.
func (l *Lexer) Pos() int { return l.pos }

func (l *Lexer) eof() bool { return l.pos >= len(l.pattern) }

func (l *Lexer) peek() byte { return l.pattern[l.pos] }

func (l *Lexer) advance() byte {
	b := l.pattern[l.pos]
	l.pos++
	return b
}

// Next returns the next token in the stream, or a TEOP token once the
// pattern is exhausted.
func (l *Lexer) Next() (Token, error) {
	if l.eof() {
		return Token{Kind: TEOP, Pos: l.pos}, nil
	}
	start := l.pos
	b := l.advance()

	switch b {
	case '|':
		return Token{Kind: TUnion, Pos: start}, nil
	case '&':
		if !l.eof() && l.peek() == '&' {
			l.advance()
			return Token{Kind: TXOR, Pos: start}, nil
		}
		return Token{Kind: TIntersection, Pos: start}, nil
	case '!':
		return Token{Kind: TComplement, Pos: start}, nil
	case '?':
		return Token{Kind: TQmark, Pos: start}, nil
	case '*':
		return Token{Kind: TStar, Pos: start}, nil
	case '+':
		return Token{Kind: TPlus, Pos: start}, nil
	case '.':
		return Token{Kind: TDot, Pos: start}, nil
	case '^':
		return Token{Kind: TBegLine, Pos: start}, nil
	case '$':
		return Token{Kind: TEndLine, Pos: start}, nil
	case ')':
		return Token{Kind: TRpar, Pos: start}, nil
	case '(':
		if l.matchRecursive() {
			return Token{Kind: TRecursive, Pos: start}, nil
		}
		return Token{Kind: TLpar, Pos: start}, nil
	case '[':
		return l.lexClass(start)
	case '{':
		return l.lexRepetition(start)
	case '\\':
		return l.lexEscape(start)
	default:
		return Token{Kind: TLiteral, Pos: start, Byte: b}, nil
	}
}

// matchRecursive consumes "?R)" if it immediately follows the '(' just
// read, recognizing the "(?R)" recursive-inclusion token as a unit.
func (l *Lexer) matchRecursive() bool {
	if l.pos+2 >= len(l.pattern) {
		return false
	}
	if l.pattern[l.pos] == '?' && l.pattern[l.pos+1] == 'R' && l.pattern[l.pos+2] == ')' {
		l.pos += 3
		return true
	}
	return false
}

// lexEscape handles every token that can follow a backslash: metacharacter
// classes, literal control bytes, \xHH, and \N/\_N backreferences. Unknown
// escapes yield the literal byte that follows the backslash.
func (l *Lexer) lexEscape(start int) (Token, error) {
	if l.eof() {
		return Token{}, &LexError{Pos: start, Err: ErrBadEscape}
	}
	b := l.advance()
	switch b {
	case 'd':
		return Token{Kind: TCharClass, Pos: start, Class: digitClass()}, nil
	case 'D':
		return Token{Kind: TCharClass, Pos: start, Class: digitClass().Complement()}, nil
	case 's':
		return Token{Kind: TCharClass, Pos: start, Class: spaceClass()}, nil
	case 'S':
		return Token{Kind: TCharClass, Pos: start, Class: spaceClass().Complement()}, nil
	case 'w':
		return Token{Kind: TCharClass, Pos: start, Class: wordClass()}, nil
	case 'W':
		return Token{Kind: TCharClass, Pos: start, Class: wordClass().Complement()}, nil
	case 'a':
		return Token{Kind: TLiteral, Pos: start, Byte: '\a'}, nil
	case 'f':
		return Token{Kind: TLiteral, Pos: start, Byte: '\f'}, nil
	case 'n':
		return Token{Kind: TLiteral, Pos: start, Byte: '\n'}, nil
	case 'r':
		return Token{Kind: TLiteral, Pos: start, Byte: '\r'}, nil
	case 't':
		return Token{Kind: TLiteral, Pos: start, Byte: '\t'}, nil
	case 'v':
		return Token{Kind: TLiteral, Pos: start, Byte: '\v'}, nil
	case 'x':
		return l.lexHexByte(start), nil
	case '_':
		return l.lexBackRef(start, true)
	default:
		if b >= '1' && b <= '9' {
			l.pos-- // re-consume the digit for lexBackRef
			return l.lexBackRef(start, false)
		}
		return Token{Kind: TLiteral, Pos: start, Byte: b}, nil
	}
}

// lexHexByte reads \xHH, accepting 0, 1, or 2 hex digits; an invalid or
// absent digit is not consumed (the lexer rewinds to it).
func (l *Lexer) lexHexByte(start int) Token {
	var v int
	n := 0
	for n < 2 && !l.eof() && isHexDigit(l.peek()) {
		v = v*16 + hexVal(l.advance())
		n++
	}
	return Token{Kind: TLiteral, Pos: start, Byte: byte(v)}
}

// lexBackRef reads the decimal group number following \ or \_ and returns a
// TBackRef token carrying N-1 (0-based), per spec section 4.A.
func (l *Lexer) lexBackRef(start int, weak bool) (Token, error) {
	if l.eof() || l.peek() < '1' || l.peek() > '9' {
		return Token{}, &LexError{Pos: start, Err: ErrBadEscape}
	}
	n := 0
	for !l.eof() && l.peek() >= '0' && l.peek() <= '9' {
		n = n*10 + int(l.advance()-'0')
	}
	return Token{Kind: TBackRef, Pos: start, N: n - 1, Weak: weak}, nil
}

// lexClass parses a `[...]` character class into a single ByteSet,
// supporting `^` negation, `a-z` ranges, and the `\d \s \w` (and their
// complements) shorthands nested inside the class.
func (l *Lexer) lexClass(start int) (Token, error) {
	var set ast.ByteSet
	negate := false
	if !l.eof() && l.peek() == '^' {
		negate = true
		l.advance()
	}
	first := true
	for {
		if l.eof() {
			return Token{}, &LexError{Pos: start, Err: ErrUnterminatedClass}
		}
		if l.peek() == ']' && !first {
			l.advance()
			break
		}
		first = false
		lo, err := l.lexClassByte(start)
		if err != nil {
			return Token{}, err
		}
		if lo.isShorthand {
			set = set.Union(lo.class)
			continue
		}
		hi := lo.b
		if !l.eof() && l.peek() == '-' && l.pos+1 < len(l.pattern) && l.pattern[l.pos+1] != ']' {
			l.advance()
			hiTok, err := l.lexClassByte(start)
			if err != nil {
				return Token{}, err
			}
			if hiTok.isShorthand {
				return Token{}, &LexError{Pos: start, Err: ErrBadEscape}
			}
			hi = hiTok.b
		}
		set.SetRange(lo.b, hi)
	}
	if negate {
		set = set.Complement()
	}
	return Token{Kind: TCharClass, Pos: start, Class: set}, nil
}

// classByte is either a plain byte (for ranges) or a shorthand class (\d
// etc, which cannot participate in a a-b range).
type classByte struct {
	b           byte
	isShorthand bool
	class       ast.ByteSet
}

func (l *Lexer) lexClassByte(start int) (classByte, error) {
	b := l.advance()
	if b != '\\' {
		return classByte{b: b}, nil
	}
	if l.eof() {
		return classByte{}, &LexError{Pos: start, Err: ErrBadEscape}
	}
	e := l.advance()
	switch e {
	case 'd':
		return classByte{isShorthand: true, class: digitClass()}, nil
	case 'D':
		return classByte{isShorthand: true, class: digitClass().Complement()}, nil
	case 's':
		return classByte{isShorthand: true, class: spaceClass()}, nil
	case 'S':
		return classByte{isShorthand: true, class: spaceClass().Complement()}, nil
	case 'w':
		return classByte{isShorthand: true, class: wordClass()}, nil
	case 'W':
		return classByte{isShorthand: true, class: wordClass().Complement()}, nil
	case 'n':
		return classByte{b: '\n'}, nil
	case 'r':
		return classByte{b: '\r'}, nil
	case 't':
		return classByte{b: '\t'}, nil
	case 'x':
		return classByte{b: l.lexHexByte(start).Byte}, nil
	default:
		return classByte{b: e}, nil
	}
}

// lexRepetition parses `{lo,hi}` (or `{n}`), rewriting the common cases
// into their dedicated tokens on the fly per spec section 4.A.
func (l *Lexer) lexRepetition(start int) (Token, error) {
	lo, ok := l.lexInt()
	if !ok {
		return Token{}, &LexError{Pos: start, Err: ErrBadRepetition}
	}
	hi := lo
	if !l.eof() && l.peek() == ',' {
		l.advance()
		if !l.eof() && l.peek() == '}' {
			hi = -1
		} else {
			h, ok := l.lexInt()
			if !ok {
				return Token{}, &LexError{Pos: start, Err: ErrBadRepetition}
			}
			hi = h
		}
	}
	if l.eof() || l.peek() != '}' {
		return Token{}, &LexError{Pos: start, Err: ErrUnterminatedRepetition}
	}
	l.advance()
	if hi != -1 && hi < lo {
		return Token{}, &RepetitionRangeError{Lo: lo, Hi: hi}
	}

	switch {
	case lo == 0 && hi == -1:
		return Token{Kind: TStar, Pos: start}, nil
	case lo == 1 && hi == -1:
		return Token{Kind: TPlus, Pos: start}, nil
	case lo == 0 && hi == 1:
		return Token{Kind: TQmark, Pos: start}, nil
	case lo == 1 && hi == 1:
		// Re-consume: a {1,1} repetition is a no-op, so the lexer simply
		// returns the next token after it instead of emitting one of its
		// own.
		return l.Next()
	default:
		return Token{Kind: TRepetition, Pos: start, Lo: lo, Hi: hi}, nil
	}
}

func (l *Lexer) lexInt() (int, bool) {
	if l.eof() || l.peek() < '0' || l.peek() > '9' {
		return 0, false
	}
	n := 0
	for !l.eof() && l.peek() >= '0' && l.peek() <= '9' {
		n = n*10 + int(l.advance()-'0')
	}
	return n, true
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b-'A') + 10
	}
}

func digitClass() ast.ByteSet {
	var s ast.ByteSet
	s.SetRange('0', '9')
	return s
}

func spaceClass() ast.ByteSet {
	var s ast.ByteSet
	s.Set(' ')
	s.Set('\t')
	s.Set('\n')
	s.Set('\r')
	s.Set('\f')
	s.Set('\v')
	return s
}

func wordClass() ast.ByteSet {
	var s ast.ByteSet
	s.SetRange('0', '9')
	s.SetRange('a', 'z')
	s.SetRange('A', 'Z')
	s.Set('_')
	return s
}
