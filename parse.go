package rowset

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Statement grammar: a SELECT subset, just enough to project stored columns
// with optional conjunctive comparisons and a row limit. This is not a SQL
// validator; anything outside the subset is a parse error.
type selectAST struct {
	Star    bool       `parser:"'SELECT' ( @'*'"`
	Columns []string   `parser:"| @Ident (',' @Ident)* )"`
	Table   string     `parser:"'FROM' @Ident"`
	Where   []*condAST `parser:"('WHERE' @@ ('AND' @@)*)?"`
	Limit   *int       `parser:"('LIMIT' @Number)?"`
}

type condAST struct {
	Column string      `parser:"@Ident"`
	Op     string      `parser:"@('='|'!='|'<'|'<='|'>'|'>=')"`
	Value  *literalAST `parser:"@@"`
}

type literalAST struct {
	Number *float64 `parser:"@Number"`
	Str    *string  `parser:"| @String"`
	Bool   *bool    `parser:"| @('TRUE'|'FALSE')"`
}

func (l *literalAST) value() any {
	switch {
	case l.Number != nil:
		return *l.Number
	case l.Str != nil:
		return *l.Str
	case l.Bool != nil:
		return *l.Bool
	}
	return nil
}

var (
	selectLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Keyword", Pattern: `(?i)\b(SELECT|FROM|WHERE|AND|LIMIT|TRUE|FALSE)\b`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Number", Pattern: `[-+]?\d*\.?\d+`},
		{Name: "String", Pattern: `'[^']*'|"[^"]*"`},
		{Name: "Operator", Pattern: `>=|<=|!=|[=<>]`},
		{Name: "Punct", Pattern: `[,*]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	selectParser = participle.MustBuild[selectAST](
		participle.Lexer(selectLexer),
		participle.Unquote("String"),
		participle.CaseInsensitive("Keyword"),
		participle.Elide("Whitespace"),
	)
)

func parseSelect(query string) (*selectAST, error) {
	return selectParser.ParseString("", query)
}

func (c *condAST) op() (Op, error) {
	v := c.Value.value()
	switch c.Op {
	case "=":
		return Eq(c.Column, v), nil
	case "!=":
		return Ne(c.Column, v), nil
	case ">":
		return Gt(c.Column, v), nil
	case "<":
		return Lt(c.Column, v), nil
	case ">=":
		return Ge(c.Column, v), nil
	case "<=":
		return Le(c.Column, v), nil
	}
	return Op{}, errUnsupportedOp(0)
}
