package fakedriver

import (
	"fmt"
	"strconv"
	"strings"
)

// UniformDecl is one uniform declared by a shader. Size is the array length,
// or 1 for a non-array uniform.
type UniformDecl struct {
	Name string
	Type string
	Size int
}

// Result is the outcome of compiling one shader. Functions lists the names of
// the functions the shader defines, which the linker uses to find main.
type Result struct {
	OK        bool
	Log       string
	Uniforms  []UniformDecl
	Functions []string
}

// Compiler turns shader source into a Result. stage is the driver stage enum.
type Compiler interface {
	Compile(stage uint32, source string) Result
}

// CompilerFunc adapts a function to the Compiler interface.
type CompilerFunc func(stage uint32, source string) Result

func (f CompilerFunc) Compile(stage uint32, source string) Result { return f(stage, source) }

// Syntax is the built-in Compiler. It tokenizes GLSL, checks bracket
// balance and statement termination, and collects uniform declarations and
// function definitions. It does not type-check.
type Syntax struct{}

func (Syntax) Compile(_ uint32, source string) Result {
	c := &checker{}
	c.run(lex(source, c))
	if len(c.errs) > 0 {
		return Result{Log: strings.Join(c.errs, "\n") + "\n"}
	}
	return Result{OK: true, Uniforms: c.uniforms, Functions: c.functions}
}

type tokKind uint8

const (
	tokIdent tokKind = iota
	tokNumber
	tokPunct
)

type token struct {
	kind tokKind
	text string
	line int
	col  int
}

var multiPunct = []string{
	"<<=", ">>=", "++", "--", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"==", "!=", "<=", ">=", "&&", "||", "^^", "<<", ">>",
}

const singlePunct = "{}()[];,.=+-*/%<>!~&|^?:"

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// lex splits src into tokens, dropping comments and preprocessor lines.
// Unexpected characters are reported on c.
func lex(src string, c *checker) []token {
	var toks []token
	line, col := 1, 1
	lineStart := true
	advance := func(n int) {
		for _, r := range src[:n] {
			if r == '\n' {
				line++
				col = 1
				lineStart = true
			} else {
				col++
			}
		}
		src = src[n:]
	}
	for len(src) > 0 {
		b := src[0]
		switch {
		case b == '\n':
			advance(1)
			continue
		case b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v':
			advance(1)
			continue
		case b == '#' && lineStart:
			// Directives run to the end of the line, honoring continuations.
			n := 0
			for n < len(src) && src[n] != '\n' {
				if src[n] == '\\' && n+1 < len(src) && src[n+1] == '\n' {
					n++
				}
				n++
			}
			advance(n)
			continue
		case strings.HasPrefix(src, "//"):
			n := strings.IndexByte(src, '\n')
			if n < 0 {
				n = len(src)
			}
			advance(n)
			continue
		case strings.HasPrefix(src, "/*"):
			n := strings.Index(src[2:], "*/")
			if n < 0 {
				c.errorf(line, col, "unterminated comment")
				return toks
			}
			advance(n + 4)
			continue
		}
		lineStart = false
		tok := token{line: line, col: col}
		switch {
		case isIdentStart(b):
			n := 1
			for n < len(src) && (isIdentStart(src[n]) || isDigit(src[n])) {
				n++
			}
			tok.kind, tok.text = tokIdent, src[:n]
		case isDigit(b) || (b == '.' && len(src) > 1 && isDigit(src[1])):
			n := 1
			for n < len(src) {
				ch := src[n]
				if isDigit(ch) || ch == '.' || isIdentStart(ch) {
					n++
					continue
				}
				if (ch == '+' || ch == '-') && (src[n-1] == 'e' || src[n-1] == 'E') && !strings.HasPrefix(src, "0x") {
					n++
					continue
				}
				break
			}
			tok.kind, tok.text = tokNumber, src[:n]
		default:
			tok.kind = tokPunct
			for _, p := range multiPunct {
				if strings.HasPrefix(src, p) {
					tok.text = p
					break
				}
			}
			if tok.text == "" {
				if !strings.ContainsRune(singlePunct, rune(b)) {
					c.errorf(line, col, "syntax error, unexpected character '%c'", b)
					advance(1)
					continue
				}
				tok.text = src[:1]
			}
		}
		toks = append(toks, tok)
		advance(len(tok.text))
	}
	return toks
}

// Keywords that never end a statement and are not counted as declarators.
var qualifiers = map[string]bool{
	"in": true, "out": true, "inout": true, "uniform": true, "buffer": true,
	"attribute": true, "varying": true, "const": true, "layout": true,
	"precision": true, "highp": true, "mediump": true, "lowp": true,
	"flat": true, "smooth": true, "noperspective": true, "centroid": true,
	"sample": true, "patch": true, "invariant": true, "precise": true,
	"shared": true, "coherent": true, "volatile": true, "restrict": true,
	"readonly": true, "writeonly": true,
}

// storage marks the qualifiers that must start a top-level declaration.
var storage = map[string]bool{
	"in": true, "out": true, "uniform": true, "buffer": true, "attribute": true,
	"varying": true, "const": true, "layout": true, "precision": true,
}

var statementKeywords = map[string]bool{
	"return": true, "else": true, "do": true, "case": true, "default": true,
	"break": true, "continue": true, "discard": true, "struct": true,
}

var control = map[string]bool{"if": true, "for": true, "while": true, "switch": true}

type frameKind uint8

const (
	frameTop frameKind = iota
	frameBody
	frameAggregate
	frameParen
	frameBracket
)

// frame is one open bracket, or the file itself. Statement state is kept
// on block frames (top, body, aggregate).
type frame struct {
	kind frameKind
	open token

	stmt     []token // tokens of the statement in progress at this level
	idents   int     // declarator identifiers seen before the first '(' or '='
	assign   bool
	paren    bool // a '(' has been opened in this statement
	control  bool // statement started with if/for/while/switch
	caseStmt bool // statement started with case/default
	function string
}

func (f *frame) reset() {
	f.stmt = f.stmt[:0]
	f.idents = 0
	f.assign = false
	f.paren = false
	f.control = false
	f.caseStmt = false
	f.function = ""
}

type checker struct {
	errs      []string
	stack     []*frame
	uniforms  []UniformDecl
	functions []string
	prev      *token
}

func (c *checker) errorf(line, col int, format string, args ...any) {
	c.errs = append(c.errs, fmt.Sprintf("0:%d(%d): error: %s", line, col, fmt.Sprintf(format, args...)))
}

func (c *checker) top() *frame { return c.stack[len(c.stack)-1] }

// block returns the innermost block frame.
func (c *checker) block() *frame {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if k := c.stack[i].kind; k <= frameAggregate {
			return c.stack[i]
		}
	}
	return c.stack[0]
}

func endsExpression(t *token) bool {
	switch t.kind {
	case tokNumber:
		return true
	case tokIdent:
		return !qualifiers[t.text] && !statementKeywords[t.text] && !control[t.text] && !isKnownType(t.text)
	}
	return t.text == ")" || t.text == "]" || t.text == "++" || t.text == "--"
}

func (c *checker) run(toks []token) {
	c.stack = []*frame{{kind: frameTop}}
	for i := range toks {
		t := &toks[i]
		c.step(t)
		c.prev = t
		if len(c.errs) > 0 {
			// One diagnostic is enough; later ones are mostly noise.
			return
		}
	}
	if len(c.stack) > 1 {
		open := c.top().open
		c.errorf(open.line, open.col, "syntax error, unexpected end of file, unclosed '%s'", open.text)
		return
	}
	if f := c.top(); len(f.stmt) > 0 {
		last := f.stmt[len(f.stmt)-1]
		c.errorf(last.line, last.col, "syntax error, unexpected end of file, expecting ';' after '%s'", last.text)
	}
}

func (c *checker) step(t *token) {
	cur := c.top()
	blk := c.block()
	direct := cur == blk

	if direct && cur.kind == frameBody && len(cur.stmt) > 0 && c.prev != nil &&
		t.line > c.prev.line && t.kind == tokIdent && endsExpression(c.prev) && !qualifiers[t.text] {
		c.errorf(c.prev.line, c.prev.col+len(c.prev.text), "syntax error, unexpected IDENTIFIER '%s', expecting ';'", t.text)
		return
	}

	switch t.text {
	case "(", "[":
		if t.text == "(" && direct && !cur.assign && !cur.paren {
			if cur.idents > 2 {
				c.errorf(t.line, t.col, "syntax error, unexpected '(', expecting ';' (missing ';' before this declaration?)")
				return
			}
			cur.paren = true
			if cur.kind == frameTop && len(cur.stmt) > 0 {
				if p := cur.stmt[len(cur.stmt)-1]; p.kind == tokIdent {
					cur.function = p.text
				}
			}
		}
		blk.stmt = append(blk.stmt, *t)
		kind := frameParen
		if t.text == "[" {
			kind = frameBracket
		}
		c.stack = append(c.stack, &frame{kind: kind, open: *t})
		return

	case ")", "]":
		want := frameParen
		if t.text == "]" {
			want = frameBracket
		}
		if cur.kind != want {
			c.errorf(t.line, t.col, "syntax error, unexpected '%s'", t.text)
			return
		}
		c.stack = c.stack[:len(c.stack)-1]
		blk.stmt = append(blk.stmt, *t)
		if t.text == ")" && c.top() == blk && blk.control && blk.kind == frameBody {
			// The condition is closed; what follows is a new statement.
			blk.reset()
		}
		return

	case "{":
		kind := frameAggregate
		if direct && (len(cur.stmt) == 0 || (c.prev != nil && (c.prev.text == ")" || c.prev.text == "else" || c.prev.text == "do"))) {
			kind = frameBody
		}
		if kind == frameBody && cur.kind == frameTop && cur.function != "" {
			c.functions = append(c.functions, cur.function)
		}
		if kind == frameAggregate {
			blk.stmt = append(blk.stmt, *t)
		}
		c.stack = append(c.stack, &frame{kind: kind, open: *t})
		return

	case "}":
		if cur.kind != frameBody && cur.kind != frameAggregate {
			c.errorf(t.line, t.col, "syntax error, unexpected '}'")
			return
		}
		if cur.kind == frameBody && len(cur.stmt) > 0 {
			c.errorf(c.prev.line, c.prev.col+len(c.prev.text), "syntax error, unexpected '}', expecting ';' after '%s'", c.prev.text)
			return
		}
		c.stack = c.stack[:len(c.stack)-1]
		parent := c.block()
		if cur.kind == frameBody {
			parent.reset()
		} else {
			parent.stmt = append(parent.stmt, *t)
		}
		return

	case ";":
		if !direct {
			blk.stmt = append(blk.stmt, *t)
			return
		}
		if cur.kind == frameTop {
			c.declaration(cur.stmt)
		}
		cur.reset()
		return

	case ":":
		if direct && cur.caseStmt {
			cur.reset()
			return
		}

	case "=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=":
		if direct {
			cur.assign = true
		}
	}

	if t.kind == tokIdent && direct {
		if len(cur.stmt) == 0 {
			switch {
			case control[t.text]:
				cur.control = true
			case t.text == "case" || t.text == "default":
				cur.caseStmt = true
			case t.text == "else" || t.text == "do":
				return
			}
		}
		if cur.kind == frameTop && storage[t.text] && cur.idents > 0 && !cur.assign {
			c.errorf(t.line, t.col, "syntax error, unexpected '%s', expecting ';'", t.text)
			return
		}
		if !qualifiers[t.text] && !statementKeywords[t.text] && !control[t.text] && !cur.assign && !cur.paren {
			cur.idents++
		}
	}
	blk.stmt = append(blk.stmt, *t)
}

// declaration records the uniforms of one top-level statement.
func (c *checker) declaration(stmt []token) {
	isUniform := false
	i := 0
	for i < len(stmt) {
		t := stmt[i]
		if t.kind != tokIdent || !qualifiers[t.text] {
			break
		}
		if t.text == "uniform" {
			isUniform = true
		}
		i++
		if t.text == "layout" && i < len(stmt) && stmt[i].text == "(" {
			for i < len(stmt) && stmt[i].text != ")" {
				i++
			}
			i++
		}
	}
	if !isUniform || i >= len(stmt) {
		return
	}
	typ := stmt[i]
	if typ.kind != tokIdent {
		return
	}
	rest := stmt[i+1:]
	for _, t := range rest {
		if t.text == "{" {
			// Interface blocks carry no default-block uniforms.
			return
		}
	}
	for j := 0; j < len(rest); j++ {
		if rest[j].kind != tokIdent {
			continue
		}
		decl := UniformDecl{Name: rest[j].text, Type: typ.text, Size: 1}
		if j+2 < len(rest) && rest[j+1].text == "[" && rest[j+2].kind == tokNumber {
			if n, err := strconv.Atoi(strings.TrimRight(rest[j+2].text, "uU")); err == nil && n > 0 {
				decl.Size = n
			}
		}
		c.uniforms = append(c.uniforms, decl)
		// Skip to the next declarator.
		for j < len(rest) && rest[j].text != "," {
			j++
		}
	}
}
