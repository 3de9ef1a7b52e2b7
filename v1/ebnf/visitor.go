// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ebnf

import (
	"fmt"

	"github.com/synbin/synbin/v1/mptr"
)

// DeclarationVisitor dispatches over the declaration kinds.
type DeclarationVisitor[T any] interface {
	VisitTypeDeclaration(*TypeDeclaration) T
	VisitTerminalDeclaration(*TerminalDeclaration) T
	VisitNonterminalDeclaration(*NonterminalDeclaration) T
	VisitCustomTerminalTypeDeclaration(*CustomTerminalTypeDeclaration) T
}

// VisitDeclaration dispatches d to the matching visitor method.
func VisitDeclaration[T any](d Declaration, v DeclarationVisitor[T]) T {
	switch n := d.(type) {
	case *TypeDeclaration:
		return v.VisitTypeDeclaration(n)
	case *TerminalDeclaration:
		return v.VisitTerminalDeclaration(n)
	case *NonterminalDeclaration:
		return v.VisitNonterminalDeclaration(n)
	case *CustomTerminalTypeDeclaration:
		return v.VisitCustomTerminalTypeDeclaration(n)
	default:
		panic(fmt.Sprintf("ebnf: unknown declaration %T", d))
	}
}

// DefaultDeclarationVisitor returns the zero value for every
// declaration kind. Embed it to implement only the cases a pass cares
// about.
type DefaultDeclarationVisitor[T any] struct{}

func (DefaultDeclarationVisitor[T]) VisitTypeDeclaration(*TypeDeclaration) T {
	var zero T
	return zero
}

func (DefaultDeclarationVisitor[T]) VisitTerminalDeclaration(*TerminalDeclaration) T {
	var zero T
	return zero
}

func (DefaultDeclarationVisitor[T]) VisitNonterminalDeclaration(*NonterminalDeclaration) T {
	var zero T
	return zero
}

func (DefaultDeclarationVisitor[T]) VisitCustomTerminalTypeDeclaration(*CustomTerminalTypeDeclaration) T {
	var zero T
	return zero
}

// SyntaxExpressionVisitor dispatches over the expression kinds.
type SyntaxExpressionVisitor[T any] interface {
	VisitEmpty(*EmptySyntaxExpression) T
	VisitOr(*SyntaxOrExpression) T
	VisitAnd(*SyntaxAndExpression) T
	VisitNameElement(*NameSyntaxElement) T
	VisitThisElement(*ThisSyntaxElement) T
	VisitNameRef(*NameSyntaxExpression) T
	VisitStringLiteral(*StringSyntaxExpression) T
	VisitCast(*CastSyntaxExpression) T
	VisitZeroOne(*ZeroOneSyntaxExpression) T
	VisitZeroMany(*ZeroManySyntaxExpression) T
	VisitOneMany(*OneManySyntaxExpression) T
	VisitConst(*ConstSyntaxExpression) T
}

// VisitExpression dispatches e to the matching visitor method.
func VisitExpression[T any](e SyntaxExpression, v SyntaxExpressionVisitor[T]) T {
	switch n := e.(type) {
	case *EmptySyntaxExpression:
		return v.VisitEmpty(n)
	case *SyntaxOrExpression:
		return v.VisitOr(n)
	case *SyntaxAndExpression:
		return v.VisitAnd(n)
	case *NameSyntaxElement:
		return v.VisitNameElement(n)
	case *ThisSyntaxElement:
		return v.VisitThisElement(n)
	case *NameSyntaxExpression:
		return v.VisitNameRef(n)
	case *StringSyntaxExpression:
		return v.VisitStringLiteral(n)
	case *CastSyntaxExpression:
		return v.VisitCast(n)
	case *ZeroOneSyntaxExpression:
		return v.VisitZeroOne(n)
	case *ZeroManySyntaxExpression:
		return v.VisitZeroMany(n)
	case *OneManySyntaxExpression:
		return v.VisitOneMany(n)
	case *ConstSyntaxExpression:
		return v.VisitConst(n)
	default:
		panic(fmt.Sprintf("ebnf: unknown syntax expression %T", e))
	}
}

// VisitAllExpressions dispatches every expression of the list.
func VisitAllExpressions[T any](exprs []mptr.Ptr[SyntaxExpression], v SyntaxExpressionVisitor[T]) {
	for _, e := range exprs {
		VisitExpression(e.Get(), v)
	}
}

// CollectAllExpressions dispatches every expression of the list and
// collects the results.
func CollectAllExpressions[T any](exprs []mptr.Ptr[SyntaxExpression], v SyntaxExpressionVisitor[T]) []T {
	result := make([]T, 0, len(exprs))
	for _, e := range exprs {
		result = append(result, VisitExpression(e.Get(), v))
	}
	return result
}

// DefaultExpressionVisitor returns the zero value for every expression
// kind. Embed it to implement only the cases a pass cares about.
type DefaultExpressionVisitor[T any] struct{}

func (DefaultExpressionVisitor[T]) VisitEmpty(*EmptySyntaxExpression) T { var zero T; return zero }
func (DefaultExpressionVisitor[T]) VisitOr(*SyntaxOrExpression) T       { var zero T; return zero }
func (DefaultExpressionVisitor[T]) VisitAnd(*SyntaxAndExpression) T     { var zero T; return zero }
func (DefaultExpressionVisitor[T]) VisitNameElement(*NameSyntaxElement) T {
	var zero T
	return zero
}
func (DefaultExpressionVisitor[T]) VisitThisElement(*ThisSyntaxElement) T {
	var zero T
	return zero
}
func (DefaultExpressionVisitor[T]) VisitNameRef(*NameSyntaxExpression) T {
	var zero T
	return zero
}
func (DefaultExpressionVisitor[T]) VisitStringLiteral(*StringSyntaxExpression) T {
	var zero T
	return zero
}
func (DefaultExpressionVisitor[T]) VisitCast(*CastSyntaxExpression) T { var zero T; return zero }
func (DefaultExpressionVisitor[T]) VisitZeroOne(*ZeroOneSyntaxExpression) T {
	var zero T
	return zero
}
func (DefaultExpressionVisitor[T]) VisitZeroMany(*ZeroManySyntaxExpression) T {
	var zero T
	return zero
}
func (DefaultExpressionVisitor[T]) VisitOneMany(*OneManySyntaxExpression) T {
	var zero T
	return zero
}
func (DefaultExpressionVisitor[T]) VisitConst(*ConstSyntaxExpression) T { var zero T; return zero }

// ConstExpressionVisitor dispatches over the constant expression
// kinds.
type ConstExpressionVisitor[T any] interface {
	VisitIntegerConst(*IntegerConstExpression) T
	VisitStringConst(*StringConstExpression) T
	VisitBooleanConst(*BooleanConstExpression) T
	VisitNativeConst(*NativeConstExpression) T
}

// VisitConstExpression dispatches e to the matching visitor method.
func VisitConstExpression[T any](e ConstExpression, v ConstExpressionVisitor[T]) T {
	switch n := e.(type) {
	case *IntegerConstExpression:
		return v.VisitIntegerConst(n)
	case *StringConstExpression:
		return v.VisitStringConst(n)
	case *BooleanConstExpression:
		return v.VisitBooleanConst(n)
	case *NativeConstExpression:
		return v.VisitNativeConst(n)
	default:
		panic(fmt.Sprintf("ebnf: unknown const expression %T", e))
	}
}

// DefaultConstExpressionVisitor returns the zero value for every
// constant kind.
type DefaultConstExpressionVisitor[T any] struct{}

func (DefaultConstExpressionVisitor[T]) VisitIntegerConst(*IntegerConstExpression) T {
	var zero T
	return zero
}

func (DefaultConstExpressionVisitor[T]) VisitStringConst(*StringConstExpression) T {
	var zero T
	return zero
}

func (DefaultConstExpressionVisitor[T]) VisitBooleanConst(*BooleanConstExpression) T {
	var zero T
	return zero
}

func (DefaultConstExpressionVisitor[T]) VisitNativeConst(*NativeConstExpression) T {
	var zero T
	return zero
}

// MeaningVisitor dispatches over the AND-expression meaning kinds.
type MeaningVisitor[T any] interface {
	VisitVoidMeaning(*VoidAndExpressionMeaning) T
	VisitThisMeaning(*ThisAndExpressionMeaning) T
	VisitClassMeaning(*ClassAndExpressionMeaning) T
}

// VisitMeaning dispatches m to the matching visitor method.
func VisitMeaning[T any](m AndExpressionMeaning, v MeaningVisitor[T]) T {
	switch n := m.(type) {
	case *VoidAndExpressionMeaning:
		return v.VisitVoidMeaning(n)
	case *ThisAndExpressionMeaning:
		return v.VisitThisMeaning(n)
	case *ClassAndExpressionMeaning:
		return v.VisitClassMeaning(n)
	default:
		panic(fmt.Sprintf("ebnf: unknown meaning %T", m))
	}
}
