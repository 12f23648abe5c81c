package essence

import (
	"fmt"
	"strconv"
	"strings"
)

// Formula — разобранное выражение эффекта заклинания.
//
// Контент описывает величины эффектов строками вида "fire * 0.6 + air / 2":
// четыре имени стихий, числовые литералы, операторы + - * /, унарный минус
// и скобки. Строка разбирается ОДИН раз при загрузке контента; во время
// каста по дереву только ходят. Никакой код из контента не исполняется.
//
// Деление на ноль определено как ноль для всего частного: эффект, у
// которого нет подходящей стихии, просто не имеет величины, а не роняет
// весь каст.
type Formula struct {
	src  string
	root node
}

// Parse разбирает исходную строку формулы в дерево выражения.
func Parse(src string) (*Formula, error) {
	p := &parser{src: src}
	p.next()
	root, err := p.parseExpr()
	if err != nil {
		return nil, fmt.Errorf("formula %q: %w", src, err)
	}
	if p.tok.kind != tokEOF {
		return nil, fmt.Errorf("formula %q: unexpected %q", src, p.tok.text)
	}
	return &Formula{src: src, root: root}, nil
}

// MustParse — Parse для статического контента, ошибки в котором являются
// дефектом сборки, а не пользовательским вводом.
func MustParse(src string) *Formula {
	f, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return f
}

// Eval вычисляет формулу относительно конкретного вектора.
// Вектор не изменяется.
func (f *Formula) Eval(v Vector) float64 {
	if f == nil || f.root == nil {
		return 0
	}
	return f.root.eval(v)
}

// String возвращает исходный текст формулы.
func (f *Formula) String() string {
	if f == nil {
		return ""
	}
	return f.src
}

// MarshalJSON сериализует формулу обратно в исходную строку.
func (f *Formula) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(f.String())), nil
}

// UnmarshalJSON разбирает формулу из JSON-строки. Ошибка разбора
// всплывает к загрузчику контента и валит старт сервера.
func (f *Formula) UnmarshalJSON(data []byte) error {
	src, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("formula must be a string: %w", err)
	}
	parsed, err := Parse(src)
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}

// --- ДЕРЕВО ВЫРАЖЕНИЯ ---

type node interface {
	eval(v Vector) float64
}

type literalNode float64

func (n literalNode) eval(Vector) float64 { return float64(n) }

type componentNode Element

func (n componentNode) eval(v Vector) float64 { return float64(v.Component(Element(n))) }

type negateNode struct{ inner node }

func (n negateNode) eval(v Vector) float64 { return -n.inner.eval(v) }

type binaryNode struct {
	op    byte // '+', '-', '*', '/'
	left  node
	right node
}

func (n binaryNode) eval(v Vector) float64 {
	l := n.left.eval(v)
	r := n.right.eval(v)
	switch n.op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	default:
		if r == 0 {
			// Нулевая стихия в знаменателе гасит подвыражение целиком.
			return 0
		}
		return l / r
	}
}

// --- РАЗБОР ---

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp     // + - * /
	tokLParen // (
	tokRParen // )
)

type token struct {
	kind tokenKind
	text string
}

type parser struct {
	src string
	pos int
	tok token
}

func (p *parser) next() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
	if p.pos >= len(p.src) {
		p.tok = token{kind: tokEOF}
		return
	}

	c := p.src[p.pos]
	switch {
	case c == '+' || c == '-' || c == '*' || c == '/':
		p.tok = token{kind: tokOp, text: string(c)}
		p.pos++
	case c == '(':
		p.tok = token{kind: tokLParen, text: "("}
		p.pos++
	case c == ')':
		p.tok = token{kind: tokRParen, text: ")"}
		p.pos++
	case c >= '0' && c <= '9' || c == '.':
		start := p.pos
		for p.pos < len(p.src) && (p.src[p.pos] >= '0' && p.src[p.pos] <= '9' || p.src[p.pos] == '.') {
			p.pos++
		}
		p.tok = token{kind: tokNumber, text: p.src[start:p.pos]}
	case isIdentChar(c):
		start := p.pos
		for p.pos < len(p.src) && isIdentChar(p.src[p.pos]) {
			p.pos++
		}
		p.tok = token{kind: tokIdent, text: p.src[start:p.pos]}
	default:
		// Неизвестный символ превращаем в именной токен, чтобы ошибка
		// разбора назвала его явно.
		p.tok = token{kind: tokIdent, text: string(c)}
		p.pos++
	}
}

func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOp && (p.tok.text == "+" || p.tok.text == "-") {
		op := p.tok.text[0]
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOp && (p.tok.text == "*" || p.tok.text == "/") {
		op := p.tok.text[0]
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.tok.kind == tokOp && p.tok.text == "-" {
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return negateNode{inner: inner}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	switch p.tok.kind {
	case tokNumber:
		val, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", p.tok.text)
		}
		p.next()
		return literalNode(val), nil

	case tokIdent:
		elem, err := ParseElement(strings.ToLower(p.tok.text))
		if err != nil {
			return nil, fmt.Errorf("unknown identifier %q (expected fire, water, earth or air)", p.tok.text)
		}
		p.next()
		return componentNode(elem), nil

	case tokLParen:
		p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		p.next()
		return inner, nil

	case tokEOF:
		return nil, fmt.Errorf("unexpected end of expression")

	default:
		return nil, fmt.Errorf("unexpected %q", p.tok.text)
	}
}
