// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ebnf

import (
	"io"

	"github.com/synbin/synbin/v1/mptr"
	"github.com/synbin/synbin/v1/types"
	"github.com/synbin/synbin/v1/util"
)

// SyntaxPriority orders the syntax operators for printing. The order
// of constants is important.
type SyntaxPriority int

const (
	PriorNt SyntaxPriority = iota
	PriorTop
	PriorOr
	PriorAnd
	PriorTerm
)

// SyntaxExpression is a node of a nonterminal's syntax tree. Analysis
// results live in the install-once extension record.
type SyntaxExpression interface {
	isSyntaxExpression()

	// InstallExtension attaches the extension record; installing twice
	// is a programming error.
	InstallExtension(ext *SyntaxExpressionExtension)

	// Extension returns the installed extension record.
	Extension() *SyntaxExpressionExtension

	print(w io.Writer, prior SyntaxPriority)
}

// exprBase carries the extension slot shared by every expression kind.
type exprBase struct {
	ext *SyntaxExpressionExtension
}

func (*exprBase) isSyntaxExpression() {}

func (b *exprBase) InstallExtension(ext *SyntaxExpressionExtension) {
	if ext == nil {
		panic(util.Invariantf("ebnf: nil extension"))
	}
	if b.ext != nil {
		panic(util.Invariantf("ebnf: extension already installed on expression"))
	}
	b.ext = ext
}

func (b *exprBase) Extension() *SyntaxExpressionExtension {
	if b.ext == nil {
		panic(util.Invariantf("ebnf: no extension installed on expression"))
	}
	return b.ext
}

// EmptySyntaxExpression matches the empty string.
type EmptySyntaxExpression struct {
	exprBase
}

// NewEmpty creates an empty expression.
func NewEmpty() *EmptySyntaxExpression {
	return &EmptySyntaxExpression{}
}

// compoundExpr carries the sub-expressions of OR and AND nodes.
type compoundExpr struct {
	exprBase
	subs []mptr.Ptr[SyntaxExpression]
}

// SubExpressions returns the sub-expressions in source order.
func (e *compoundExpr) SubExpressions() []mptr.Ptr[SyntaxExpression] {
	return e.subs
}

// SyntaxOrExpression is an alternative of sub-expressions.
type SyntaxOrExpression struct {
	compoundExpr
}

// NewOr creates an OR expression.
func NewOr(subs []mptr.Ptr[SyntaxExpression]) *SyntaxOrExpression {
	return &SyntaxOrExpression{compoundExpr{subs: subs}}
}

// SyntaxAndExpression is a sequence of sub-expressions, optionally
// producing a class value. Its meaning is attached later by the
// analysis passes through the AND extension.
type SyntaxAndExpression struct {
	compoundExpr
	rawType mptr.Ptr[*RawType] // may be null

	typ    types.ClassType // resolved by a later pass; may be nil
	andExt *SyntaxAndExpressionExtension
}

// NewAnd creates an AND expression.
func NewAnd(subs []mptr.Ptr[SyntaxExpression], rawType mptr.Ptr[*RawType]) *SyntaxAndExpression {
	return &SyntaxAndExpression{compoundExpr: compoundExpr{subs: subs}, rawType: rawType}
}

// RawType returns the declared result class name, or null.
func (e *SyntaxAndExpression) RawType() mptr.Ptr[*RawType] {
	return e.rawType
}

// SetType installs the resolved class type. Setting twice is a
// programming error.
func (e *SyntaxAndExpression) SetType(t types.ClassType) {
	if t == nil {
		panic(util.Invariantf("ebnf: nil class type"))
	}
	if e.typ != nil {
		panic(util.Invariantf("ebnf: class type already set on AND expression"))
	}
	e.typ = t
}

// Type returns the resolved class type, or nil.
func (e *SyntaxAndExpression) Type() types.ClassType {
	return e.typ
}

// InstallAndExtension attaches the AND extension record.
func (e *SyntaxAndExpression) InstallAndExtension(ext *SyntaxAndExpressionExtension) {
	if ext == nil {
		panic(util.Invariantf("ebnf: nil AND extension"))
	}
	if e.andExt != nil {
		panic(util.Invariantf("ebnf: AND extension already installed"))
	}
	e.andExt = ext
}

// AndExtension returns the installed AND extension record.
func (e *SyntaxAndExpression) AndExtension() *SyntaxAndExpressionExtension {
	if e.andExt == nil {
		panic(util.Invariantf("ebnf: no AND extension installed"))
	}
	return e.andExt
}

// elementExpr carries the wrapped expression of element nodes.
type elementExpr struct {
	exprBase
	expr mptr.Ptr[SyntaxExpression]
}

// Expression returns the wrapped expression.
func (e *elementExpr) Expression() SyntaxExpression {
	return e.expr.Get()
}

// NameSyntaxElement binds a sub-expression's value to an attribute
// name inside an AND expression.
type NameSyntaxElement struct {
	elementExpr
	name SyntaxString // may be empty
}

// NewNameElement creates a named element.
func NewNameElement(expr mptr.Ptr[SyntaxExpression], name SyntaxString) *NameSyntaxElement {
	return &NameSyntaxElement{elementExpr: elementExpr{expr: expr}, name: name}
}

// ElementName returns the attribute name; it may be empty.
func (e *NameSyntaxElement) ElementName() SyntaxString {
	return e.name
}

// ThisSyntaxElement marks a sub-expression as the result of the
// enclosing AND expression.
type ThisSyntaxElement struct {
	elementExpr
	pos FilePos
}

// NewThisElement creates a this-element.
func NewThisElement(pos FilePos, expr mptr.Ptr[SyntaxExpression]) *ThisSyntaxElement {
	return &ThisSyntaxElement{elementExpr: elementExpr{expr: expr}, pos: pos}
}

// Pos returns the source position of the element.
func (e *ThisSyntaxElement) Pos() FilePos {
	return e.pos
}

// NameSyntaxExpression references a symbol by name. The referenced
// declaration is resolved by a later pass.
type NameSyntaxExpression struct {
	exprBase
	name SyntaxString

	sym SymbolDeclaration
}

// NewNameRef creates a symbol reference.
func NewNameRef(name SyntaxString) *NameSyntaxExpression {
	return &NameSyntaxExpression{name: name}
}

// RefName returns the referenced symbol name.
func (e *NameSyntaxExpression) RefName() SyntaxString {
	return e.name
}

// SetSym installs the resolved symbol declaration. Setting twice is a
// programming error.
func (e *NameSyntaxExpression) SetSym(sym SymbolDeclaration) {
	if sym == nil {
		panic(util.Invariantf("ebnf: nil symbol for reference %v", e.name))
	}
	if e.sym != nil {
		panic(util.Invariantf("ebnf: symbol already resolved for reference %v", e.name))
	}
	e.sym = sym
}

// Sym returns the resolved symbol declaration, or nil.
func (e *NameSyntaxExpression) Sym() SymbolDeclaration {
	return e.sym
}

// StringSyntaxExpression matches a literal token.
type StringSyntaxExpression struct {
	exprBase
	str SyntaxString
}

// NewStringLiteral creates a literal token expression.
func NewStringLiteral(str SyntaxString) *StringSyntaxExpression {
	return &StringSyntaxExpression{str: str}
}

// Literal returns the literal text.
func (e *StringSyntaxExpression) Literal() SyntaxString {
	return e.str
}

// CastSyntaxExpression casts the value of a sub-expression to a
// declared type.
type CastSyntaxExpression struct {
	exprBase
	rawType mptr.Ptr[*RawType]
	expr    mptr.Ptr[SyntaxExpression]

	typ mptr.Ptr[types.Type]
}

// NewCast creates a cast expression.
func NewCast(rawType mptr.Ptr[*RawType], expr mptr.Ptr[SyntaxExpression]) *CastSyntaxExpression {
	return &CastSyntaxExpression{rawType: rawType, expr: expr}
}

// RawType returns the target type name.
func (e *CastSyntaxExpression) RawType() mptr.Ptr[*RawType] {
	return e.rawType
}

// Expression returns the casted sub-expression.
func (e *CastSyntaxExpression) Expression() SyntaxExpression {
	return e.expr.Get()
}

// SetType installs the resolved target type. Setting twice is a
// programming error.
func (e *CastSyntaxExpression) SetType(t mptr.Ptr[types.Type]) {
	if !e.typ.IsNull() {
		panic(util.Invariantf("ebnf: cast type already set"))
	}
	e.typ = t
}

// Type returns the resolved target type, or null.
func (e *CastSyntaxExpression) Type() mptr.Ptr[types.Type] {
	return e.typ
}

// ZeroOneSyntaxExpression matches its sub-expression zero or one time.
type ZeroOneSyntaxExpression struct {
	exprBase
	sub mptr.Ptr[SyntaxExpression]
}

// NewZeroOne creates an optional expression.
func NewZeroOne(sub mptr.Ptr[SyntaxExpression]) *ZeroOneSyntaxExpression {
	return &ZeroOneSyntaxExpression{sub: sub}
}

// SubExpression returns the optional sub-expression.
func (e *ZeroOneSyntaxExpression) SubExpression() SyntaxExpression {
	return e.sub.Get()
}

// LoopBody is the body of a repetition: the repeated expression plus
// an optional separator.
type LoopBody struct {
	expr         mptr.Ptr[SyntaxExpression]
	separator    mptr.Ptr[SyntaxExpression] // may be null
	separatorPos FilePos
}

// NewLoopBody creates a loop body.
func NewLoopBody(
	expr mptr.Ptr[SyntaxExpression],
	separator mptr.Ptr[SyntaxExpression],
	separatorPos FilePos,
) *LoopBody {
	return &LoopBody{expr: expr, separator: separator, separatorPos: separatorPos}
}

// Expression returns the repeated expression.
func (b *LoopBody) Expression() SyntaxExpression {
	return b.expr.Get()
}

// Separator returns the separator expression, or nil.
func (b *LoopBody) Separator() SyntaxExpression {
	return b.separator.Get()
}

// SeparatorPos returns the source position of the separator.
func (b *LoopBody) SeparatorPos() FilePos {
	return b.separatorPos
}

// loopExpr carries the body shared by the repetition kinds.
type loopExpr struct {
	exprBase
	body mptr.Ptr[*LoopBody]
}

// Body returns the loop body.
func (e *loopExpr) Body() *LoopBody {
	return e.body.Get()
}

// ZeroManySyntaxExpression matches its body zero or more times.
type ZeroManySyntaxExpression struct {
	loopExpr
}

// NewZeroMany creates a zero-or-more repetition.
func NewZeroMany(body mptr.Ptr[*LoopBody]) *ZeroManySyntaxExpression {
	return &ZeroManySyntaxExpression{loopExpr{body: body}}
}

// OneManySyntaxExpression matches its body one or more times.
type OneManySyntaxExpression struct {
	loopExpr
}

// NewOneMany creates a one-or-more repetition.
func NewOneMany(body mptr.Ptr[*LoopBody]) *OneManySyntaxExpression {
	return &OneManySyntaxExpression{loopExpr{body: body}}
}

// ConstSyntaxExpression produces a constant value without consuming
// input.
type ConstSyntaxExpression struct {
	exprBase
	expr mptr.Ptr[ConstExpression]
}

// NewConst creates a constant expression node.
func NewConst(expr mptr.Ptr[ConstExpression]) *ConstSyntaxExpression {
	return &ConstSyntaxExpression{expr: expr}
}

// ConstExpr returns the constant expression.
func (e *ConstSyntaxExpression) ConstExpr() ConstExpression {
	return e.expr.Get()
}
