package compiler

import (
	"fmt"
	"unicode"

	"github.com/jsound-go/jsound/smt"
)

// regexParser translates the closed regex subset spec §4.3/SPEC_FULL.md
// §4.3 document into Z3 string-regex terms: literals, escapes, classes
// (including negation), alternation, grouping (including non-capturing
// groups), *, +, ?, and bounded {m,n} repetition. Anchors ^/$ are
// no-ops, since Z3's InRe already requires a full-string match.
//
// Unsupported and rejected with an error: backreferences, lookaround
// assertions, named groups, and Unicode property escapes — silently
// under- or over-approximating any of these would break soundness
// (spec §4.3 "Silent over-approximation is forbidden").
type regexParser struct {
	ctx     *smt.Context
	strSort smt.Sort
	runes   []rune
	pos     int
}

// TranslatePattern compiles a JSON Schema "pattern" regex into a Z3
// regex AST suitable for use with smt.InRe.
func TranslatePattern(ctx *smt.Context, strSort smt.Sort, pattern string) (smt.AST, error) {
	p := &regexParser{ctx: ctx, strSort: strSort, runes: []rune(pattern)}
	re, err := p.parseAlt()
	if err != nil {
		return smt.AST{}, err
	}
	if p.pos != len(p.runes) {
		return smt.AST{}, fmt.Errorf("unexpected character %q at position %d", p.runes[p.pos], p.pos)
	}
	return re, nil
}

func (p *regexParser) peek() (rune, bool) {
	if p.pos >= len(p.runes) {
		return 0, false
	}
	return p.runes[p.pos], true
}

func (p *regexParser) peekAt(off int) (rune, bool) {
	if p.pos+off >= len(p.runes) {
		return 0, false
	}
	return p.runes[p.pos+off], true
}

func (p *regexParser) next() rune {
	r := p.runes[p.pos]
	p.pos++
	return r
}

func (p *regexParser) emptyRe() smt.AST { return smt.StrToRe(p.ctx.StringVal("")) }

func (p *regexParser) parseAlt() (smt.AST, error) {
	branches := []smt.AST{}
	first, err := p.parseConcat()
	if err != nil {
		return smt.AST{}, err
	}
	branches = append(branches, first)
	for {
		c, ok := p.peek()
		if !ok || c != '|' {
			break
		}
		p.next()
		next, err := p.parseConcat()
		if err != nil {
			return smt.AST{}, err
		}
		branches = append(branches, next)
	}
	if len(branches) == 1 {
		return branches[0], nil
	}
	return smt.ReUnion(branches...), nil
}

func (p *regexParser) parseConcat() (smt.AST, error) {
	var parts []smt.AST
	for {
		c, ok := p.peek()
		if !ok || c == '|' || c == ')' {
			break
		}
		atom, err := p.parseRepeat()
		if err != nil {
			return smt.AST{}, err
		}
		parts = append(parts, atom)
	}
	if len(parts) == 0 {
		return p.emptyRe(), nil
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return smt.ReConcat(parts...), nil
}

func (p *regexParser) parseRepeat() (smt.AST, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return smt.AST{}, err
	}
	for {
		c, ok := p.peek()
		if !ok {
			break
		}
		switch c {
		case '*':
			p.next()
			atom = smt.ReStar(atom)
		case '+':
			p.next()
			atom = smt.RePlus(atom)
		case '?':
			p.next()
			atom = smt.ReOption(atom)
		case '{':
			lo, hi, consumed, err := p.tryParseBounds()
			if err != nil {
				return smt.AST{}, err
			}
			if !consumed {
				return atom, nil
			}
			atom = smt.ReLoop(atom, lo, hi)
		default:
			return atom, nil
		}
	}
	return atom, nil
}

// tryParseBounds parses "{m,n}", "{m,}", or "{m}" at the current
// position. If the braces don't form a valid bound expression, the
// parser position is left unchanged and consumed is false — a bare
// '{' is then treated as a literal by the caller's atom parser.
func (p *regexParser) tryParseBounds() (lo, hi uint, consumed bool, err error) {
	start := p.pos
	p.next() // '{'
	var digits1, digits2 string
	for {
		c, ok := p.peek()
		if !ok || !unicode.IsDigit(c) {
			break
		}
		digits1 += string(p.next())
	}
	if digits1 == "" {
		p.pos = start
		return 0, 0, false, nil
	}
	hasComma := false
	if c, ok := p.peek(); ok && c == ',' {
		hasComma = true
		p.next()
		for {
			c, ok := p.peek()
			if !ok || !unicode.IsDigit(c) {
				break
			}
			digits2 += string(p.next())
		}
	}
	if c, ok := p.peek(); !ok || c != '}' {
		p.pos = start
		return 0, 0, false, nil
	}
	p.next() // '}'
	loN := parseUint(digits1)
	hiN := loN
	if hasComma {
		if digits2 == "" {
			hiN = loN + 64 // unbounded-above repetition approximated with a generous cap
		} else {
			hiN = parseUint(digits2)
		}
	}
	return loN, hiN, true, nil
}

func parseUint(s string) uint {
	var v uint
	for _, c := range s {
		v = v*10 + uint(c-'0')
	}
	return v
}

func (p *regexParser) parseAtom() (smt.AST, error) {
	c := p.next()
	switch c {
	case '(':
		return p.parseGroup()
	case '.':
		return p.ctx.ReAllChar(p.strSort), nil
	case '[':
		return p.parseClass()
	case '^', '$':
		return p.emptyRe(), nil // anchors are no-ops under full-match InRe
	case '\\':
		return p.parseEscape()
	default:
		return smt.StrToRe(p.ctx.StringVal(string(c))), nil
	}
}

func (p *regexParser) parseGroup() (smt.AST, error) {
	if c, ok := p.peek(); ok && c == '?' {
		n, ok2 := p.peekAt(1)
		switch {
		case ok2 && n == ':':
			p.pos += 2 // consume "?:"
		case ok2 && (n == '=' || n == '!'):
			return smt.AST{}, fmt.Errorf("lookahead assertions are not supported")
		case ok2 && n == '<':
			n2, ok3 := p.peekAt(2)
			if ok3 && (n2 == '=' || n2 == '!') {
				return smt.AST{}, fmt.Errorf("lookbehind assertions are not supported")
			}
			return smt.AST{}, fmt.Errorf("named capture groups are not supported")
		default:
			return smt.AST{}, fmt.Errorf("unsupported group syntax at position %d", p.pos)
		}
	}
	inner, err := p.parseAlt()
	if err != nil {
		return smt.AST{}, err
	}
	c, ok := p.peek()
	if !ok || c != ')' {
		return smt.AST{}, fmt.Errorf("unbalanced group: expected ')'")
	}
	p.next()
	return inner, nil
}

func (p *regexParser) parseClass() (smt.AST, error) {
	negate := false
	if c, ok := p.peek(); ok && c == '^' {
		negate = true
		p.next()
	}
	var pieces []smt.AST
	first := true
	for {
		c, ok := p.peek()
		if !ok {
			return smt.AST{}, fmt.Errorf("unterminated character class")
		}
		if c == ']' && !first {
			p.next()
			break
		}
		first = false
		var lo string
		if c == '\\' {
			p.next()
			re, err := p.parseClassEscape()
			if err != nil {
				return smt.AST{}, err
			}
			pieces = append(pieces, re)
			continue
		}
		lo = string(p.next())
		if nc, ok := p.peek(); ok && nc == '-' {
			if after, ok2 := p.peekAt(1); ok2 && after != ']' {
				p.next() // '-'
				hi := string(p.next())
				pieces = append(pieces, p.ctx.ReRange(lo, hi))
				continue
			}
		}
		pieces = append(pieces, smt.StrToRe(p.ctx.StringVal(lo)))
	}
	var class smt.AST
	if len(pieces) == 0 {
		class = p.emptyRe()
	} else if len(pieces) == 1 {
		class = pieces[0]
	} else {
		class = smt.ReUnion(pieces...)
	}
	if negate {
		return smt.ReDiff(p.ctx.ReAllChar(p.strSort), class), nil
	}
	return class, nil
}

// parseClassEscape handles \d \w \s (and negations) and literal
// escapes inside a [...] class.
func (p *regexParser) parseClassEscape() (smt.AST, error) {
	if p.pos >= len(p.runes) {
		return smt.AST{}, fmt.Errorf("trailing backslash in character class")
	}
	e := p.next()
	switch e {
	case 'd':
		return p.ctx.ReRange("0", "9"), nil
	case 'D':
		return smt.ReDiff(p.ctx.ReAllChar(p.strSort), p.ctx.ReRange("0", "9")), nil
	case 'w':
		return p.wordClass(), nil
	case 'W':
		return smt.ReDiff(p.ctx.ReAllChar(p.strSort), p.wordClass()), nil
	case 's':
		return p.spaceClass(), nil
	case 'S':
		return smt.ReDiff(p.ctx.ReAllChar(p.strSort), p.spaceClass()), nil
	default:
		return p.literalEscape(e)
	}
}

func (p *regexParser) parseEscape() (smt.AST, error) {
	if p.pos >= len(p.runes) {
		return smt.AST{}, fmt.Errorf("trailing backslash")
	}
	e := p.next()
	switch e {
	case 'd':
		return p.ctx.ReRange("0", "9"), nil
	case 'D':
		return smt.ReDiff(p.ctx.ReAllChar(p.strSort), p.ctx.ReRange("0", "9")), nil
	case 'w':
		return p.wordClass(), nil
	case 'W':
		return smt.ReDiff(p.ctx.ReAllChar(p.strSort), p.wordClass()), nil
	case 's':
		return p.spaceClass(), nil
	case 'S':
		return smt.ReDiff(p.ctx.ReAllChar(p.strSort), p.spaceClass()), nil
	case 'p', 'P':
		return smt.AST{}, fmt.Errorf("unicode property escapes are not supported")
	default:
		if unicode.IsDigit(e) {
			return smt.AST{}, fmt.Errorf("backreferences are not supported")
		}
		return p.literalEscape(e)
	}
}

func (p *regexParser) literalEscape(e rune) (smt.AST, error) {
	switch e {
	case 'n':
		return smt.StrToRe(p.ctx.StringVal("\n")), nil
	case 't':
		return smt.StrToRe(p.ctx.StringVal("\t")), nil
	case 'r':
		return smt.StrToRe(p.ctx.StringVal("\r")), nil
	case '.', '\\', '+', '*', '?', '(', ')', '[', ']', '{', '}', '|', '^', '$', '/', '-':
		return smt.StrToRe(p.ctx.StringVal(string(e))), nil
	default:
		return smt.StrToRe(p.ctx.StringVal(string(e))), nil
	}
}

func (p *regexParser) wordClass() smt.AST {
	return smt.ReUnion(
		p.ctx.ReRange("a", "z"),
		p.ctx.ReRange("A", "Z"),
		p.ctx.ReRange("0", "9"),
		smt.StrToRe(p.ctx.StringVal("_")),
	)
}

func (p *regexParser) spaceClass() smt.AST {
	return smt.ReUnion(
		smt.StrToRe(p.ctx.StringVal(" ")),
		smt.StrToRe(p.ctx.StringVal("\t")),
		smt.StrToRe(p.ctx.StringVal("\n")),
		smt.StrToRe(p.ctx.StringVal("\r")),
	)
}
