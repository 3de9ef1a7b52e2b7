// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ebnf

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ExpressionString renders an expression in grammar notation.
func ExpressionString(e SyntaxExpression) string {
	var sb strings.Builder
	e.print(&sb, PriorTop)
	return sb.String()
}

// ConstString renders a constant expression in grammar notation.
func ConstString(e ConstExpression) string {
	var sb strings.Builder
	printConst(&sb, e)
	return sb.String()
}

// Print renders the whole grammar, one declaration per line.
func (g *Grammar) Print(w io.Writer) {
	for _, p := range g.declarations {
		switch d := p.Get().(type) {
		case *TypeDeclaration:
			fmt.Fprintf(w, "type %v;\n", d.Name())
		case *TerminalDeclaration:
			if !d.rawType.IsNull() {
				fmt.Fprintf(w, "token %v : %v;\n", d.Name(), d.rawType.Get().Name())
			} else {
				fmt.Fprintf(w, "token %v;\n", d.Name())
			}
		case *NonterminalDeclaration:
			prefix := ""
			if d.start {
				prefix = "@"
			}
			fmt.Fprintf(w, "%s%v : ", prefix, d.Name())
			d.Expression().print(w, PriorTop)
			fmt.Fprint(w, ";\n")
		case *CustomTerminalTypeDeclaration:
			fmt.Fprintf(w, "token type %v;\n", d.rawType.Get().Name())
		}
	}
}

// printParens wraps body in parentheses when the node's own priority
// binds weaker than the context requires.
func printParens(w io.Writer, own, enclosing SyntaxPriority, body func()) {
	if own < enclosing {
		fmt.Fprint(w, "(")
		body()
		fmt.Fprint(w, ")")
		return
	}
	body()
}

func (e *EmptySyntaxExpression) print(w io.Writer, prior SyntaxPriority) {}

func (e *SyntaxOrExpression) print(w io.Writer, prior SyntaxPriority) {
	printParens(w, PriorOr, prior, func() {
		for i, sub := range e.subs {
			if i > 0 {
				fmt.Fprint(w, " | ")
			}
			sub.Get().print(w, PriorOr)
		}
	})
}

func (e *SyntaxAndExpression) print(w io.Writer, prior SyntaxPriority) {
	printParens(w, PriorAnd, prior, func() {
		for i, sub := range e.subs {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			sub.Get().print(w, PriorAnd)
		}
		if !e.rawType.IsNull() {
			fmt.Fprintf(w, " : %v", e.rawType.Get().Name())
		}
	})
}

func (e *NameSyntaxElement) print(w io.Writer, prior SyntaxPriority) {
	if !e.name.Empty() {
		fmt.Fprintf(w, "%v=", e.name)
	}
	e.Expression().print(w, PriorTerm)
}

func (e *ThisSyntaxElement) print(w io.Writer, prior SyntaxPriority) {
	io.WriteString(w, "%this=")
	e.Expression().print(w, PriorTerm)
}

func (e *NameSyntaxExpression) print(w io.Writer, prior SyntaxPriority) {
	fmt.Fprintf(w, "%v", e.name)
}

func (e *StringSyntaxExpression) print(w io.Writer, prior SyntaxPriority) {
	fmt.Fprint(w, strconv.Quote(e.str.String()))
}

func (e *CastSyntaxExpression) print(w io.Writer, prior SyntaxPriority) {
	fmt.Fprintf(w, "<%v : ", e.rawType.Get().Name())
	e.Expression().print(w, PriorTop)
	fmt.Fprint(w, ">")
}

func (e *ZeroOneSyntaxExpression) print(w io.Writer, prior SyntaxPriority) {
	e.SubExpression().print(w, PriorTerm)
	fmt.Fprint(w, "?")
}

func (b *LoopBody) print(w io.Writer, suffix string) {
	if sep := b.Separator(); sep != nil {
		fmt.Fprint(w, "(")
		b.Expression().print(w, PriorTop)
		fmt.Fprint(w, " : ")
		sep.print(w, PriorTop)
		fmt.Fprint(w, ")")
	} else {
		b.Expression().print(w, PriorTerm)
	}
	fmt.Fprint(w, suffix)
}

func (e *ZeroManySyntaxExpression) print(w io.Writer, prior SyntaxPriority) {
	e.Body().print(w, "*")
}

func (e *OneManySyntaxExpression) print(w io.Writer, prior SyntaxPriority) {
	e.Body().print(w, "+")
}

func (e *ConstSyntaxExpression) print(w io.Writer, prior SyntaxPriority) {
	fmt.Fprint(w, "<")
	printConst(w, e.ConstExpr())
	fmt.Fprint(w, ">")
}

func printConst(w io.Writer, e ConstExpression) {
	switch c := e.(type) {
	case *IntegerConstExpression:
		fmt.Fprintf(w, "%d", c.value)
	case *StringConstExpression:
		fmt.Fprint(w, strconv.Quote(c.value.String()))
	case *BooleanConstExpression:
		fmt.Fprintf(w, "%t", c.value)
	case *NativeConstExpression:
		for _, q := range c.qualifiers {
			fmt.Fprintf(w, "%v.", q)
		}
		printNativeName(w, c.NativeName())
		for _, r := range c.references {
			ref := r.Get()
			if ref.IsPointer() {
				fmt.Fprint(w, "->")
			} else {
				fmt.Fprint(w, ".")
			}
			printNativeName(w, ref.NativeName())
		}
	default:
		fmt.Fprintf(w, "<unknown const %T>", e)
	}
}

func printNativeName(w io.Writer, n NativeName) {
	switch name := n.(type) {
	case *NativeVariableName:
		fmt.Fprintf(w, "%v", name.Name())
	case *NativeFunctionName:
		fmt.Fprintf(w, "%v(", name.Name())
		for i, arg := range name.arguments {
			if i > 0 {
				fmt.Fprint(w, ", ")
			}
			printConst(w, arg.Get())
		}
		fmt.Fprint(w, ")")
	}
}
