// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ebnf

import (
	"github.com/synbin/synbin/v1/mptr"
	"github.com/synbin/synbin/v1/types"
	"github.com/synbin/synbin/v1/util"
)

// GeneralType is the coarse classification of an expression's value.
type GeneralType int

const (
	GeneralTypeVoid GeneralType = iota
	GeneralTypePrimitive
	GeneralTypeArray
	GeneralTypeClass
)

// Conversion is the operation a later emission pass attaches to an
// expression. The pass lives outside this module; the slot only
// guarantees install-once semantics.
type Conversion interface{}

// AbstractExtension holds the single-assignment slots shared by
// nonterminal declaration extensions and syntax expression extensions.
// A second write to any slot is a programming error.
type AbstractExtension struct {
	isVoid       util.AssignOnce[bool]
	generalType  util.AssignOnce[GeneralType]
	concreteType util.AssignOnce[mptr.Ptr[types.Type]]
}

// SetIsVoid records whether the expression produces no value.
func (x *AbstractExtension) SetIsVoid(isVoid bool) {
	x.isVoid.Set(isVoid)
}

// IsVoidDefined reports whether the void slot has been assigned.
func (x *AbstractExtension) IsVoidDefined() bool {
	return x.isVoid.Defined()
}

// IsVoid returns the void slot.
func (x *AbstractExtension) IsVoid() bool {
	return x.isVoid.Get()
}

// SetGeneralType records the general type. It must be void exactly
// when the void slot says so.
func (x *AbstractExtension) SetGeneralType(generalType GeneralType) {
	if x.isVoid.Get() != (generalType == GeneralTypeVoid) {
		panic(util.Invariantf("ebnf: general type %v contradicts the void slot", generalType))
	}
	x.generalType.Set(generalType)
}

// GeneralTypeDefined reports whether the general type has been
// assigned.
func (x *AbstractExtension) GeneralTypeDefined() bool {
	return x.generalType.Defined()
}

// GeneralType returns the general type slot.
func (x *AbstractExtension) GeneralType() GeneralType {
	return x.generalType.Get()
}

// SetConcreteType records the resolved concrete type.
func (x *AbstractExtension) SetConcreteType(t mptr.Ptr[types.Type]) {
	x.concreteType.Set(t)
}

// ConcreteTypeDefined reports whether the concrete type has been
// assigned.
func (x *AbstractExtension) ConcreteTypeDefined() bool {
	return x.concreteType.Defined()
}

// ConcreteType returns the concrete type slot.
func (x *AbstractExtension) ConcreteType() mptr.Ptr[types.Type] {
	return x.concreteType.Get()
}

// NonterminalDeclarationExtension is the analysis record of a
// nonterminal declaration.
type NonterminalDeclarationExtension struct {
	AbstractExtension

	// visiting guards cyclic traversal of mutually recursive
	// nonterminals.
	visiting bool

	classType util.AssignOnce[mptr.Ptr[types.ClassType]]
}

// NewNonterminalDeclarationExtension creates an empty extension.
func NewNonterminalDeclarationExtension() *NonterminalDeclarationExtension {
	return &NonterminalDeclarationExtension{}
}

// SetVisiting sets the re-entrancy guard to visiting and returns its
// old value.
func (x *NonterminalDeclarationExtension) SetVisiting(visiting bool) bool {
	old := x.visiting
	x.visiting = visiting
	return old
}

// SetClassType records the resolved class type.
func (x *NonterminalDeclarationExtension) SetClassType(t mptr.Ptr[types.ClassType]) {
	x.classType.Set(t)
}

// ClassType returns the class type slot.
func (x *NonterminalDeclarationExtension) ClassType() mptr.Ptr[types.ClassType] {
	return x.classType.Get()
}

// ClassTypeOpt returns the class type slot, or null when unassigned.
func (x *NonterminalDeclarationExtension) ClassTypeOpt() mptr.Ptr[types.ClassType] {
	if !x.classType.Defined() {
		return mptr.Null[types.ClassType]()
	}
	return x.classType.Get()
}

// SyntaxExpressionExtension is the analysis record of a syntax
// expression.
type SyntaxExpressionExtension struct {
	AbstractExtension

	expectedType util.AssignOnce[mptr.Ptr[types.Type]]

	// andResult is true if there is a 'this=' element related to this
	// expression.
	andResult util.AssignOnce[bool]

	// andAttributes lists all semantic attributes related to this
	// expression. For a syntax expression 'a=A (b=B | (c=C)?)', all
	// three attributes are related to it.
	andAttributes []*NameSyntaxElement

	conversion Conversion
}

// NewSyntaxExpressionExtension creates an empty extension.
func NewSyntaxExpressionExtension() *SyntaxExpressionExtension {
	return &SyntaxExpressionExtension{}
}

// SetExpectedType records the type this expression must fit into.
func (x *SyntaxExpressionExtension) SetExpectedType(t mptr.Ptr[types.Type]) {
	x.expectedType.Set(t)
}

// ExpectedType returns the expected type slot.
func (x *SyntaxExpressionExtension) ExpectedType() mptr.Ptr[types.Type] {
	return x.expectedType.Get()
}

// AddAndAttribute appends one attribute. Duplicated attributes are
// allowed (and expected) in this list.
func (x *SyntaxExpressionExtension) AddAndAttribute(attribute *NameSyntaxElement) {
	x.andAttributes = append(x.andAttributes, attribute)
}

// AddAndAttributes appends a batch of attributes.
func (x *SyntaxExpressionExtension) AddAndAttributes(attributes []*NameSyntaxElement) {
	x.andAttributes = append(x.andAttributes, attributes...)
}

// ClearAndAttributes drops the accumulated attributes.
func (x *SyntaxExpressionExtension) ClearAndAttributes() {
	x.andAttributes = nil
}

// AndAttributes returns the accumulated attributes.
func (x *SyntaxExpressionExtension) AndAttributes() []*NameSyntaxElement {
	return x.andAttributes
}

// SetAndResult records whether an enclosing AND has a 'this=' element.
func (x *SyntaxExpressionExtension) SetAndResult(andResult bool) {
	x.andResult.Set(andResult)
}

// IsAndResult returns the and-result slot.
func (x *SyntaxExpressionExtension) IsAndResult() bool {
	return x.andResult.Get()
}

// SetConversion installs the emitted conversion operation. Installing
// twice is a programming error.
func (x *SyntaxExpressionExtension) SetConversion(conversion Conversion) {
	if conversion == nil {
		panic(util.Invariantf("ebnf: nil conversion"))
	}
	if x.conversion != nil {
		panic(util.Invariantf("ebnf: conversion already set"))
	}
	x.conversion = conversion
}

// Conversion returns the installed conversion operation.
func (x *SyntaxExpressionExtension) Conversion() Conversion {
	if x.conversion == nil {
		panic(util.Invariantf("ebnf: no conversion set"))
	}
	return x.conversion
}

// SyntaxAndExpressionExtension is the analysis record of an AND
// expression, holding its install-once meaning.
type SyntaxAndExpressionExtension struct {
	meaning AndExpressionMeaning
}

// NewSyntaxAndExpressionExtension creates an empty extension.
func NewSyntaxAndExpressionExtension() *SyntaxAndExpressionExtension {
	return &SyntaxAndExpressionExtension{}
}

// SetMeaning installs the meaning. Installing twice is a programming
// error.
func (x *SyntaxAndExpressionExtension) SetMeaning(meaning AndExpressionMeaning) {
	if meaning == nil {
		panic(util.Invariantf("ebnf: nil meaning"))
	}
	if x.meaning != nil {
		panic(util.Invariantf("ebnf: meaning already set"))
	}
	x.meaning = meaning
}

// Meaning returns the installed meaning.
func (x *SyntaxAndExpressionExtension) Meaning() AndExpressionMeaning {
	if x.meaning == nil {
		panic(util.Invariantf("ebnf: no meaning set"))
	}
	return x.meaning
}

// AndExpressionMeaning defines what kind of result an AND expression
// produces.
type AndExpressionMeaning interface {
	isMeaning()

	// NonResultSubExpressions returns the sub-expressions that do not
	// contribute to the result value.
	NonResultSubExpressions() []mptr.Ptr[SyntaxExpression]
}

// meaningBase carries the non-result sub-expressions shared by the
// meaning kinds.
type meaningBase struct {
	nonResult []mptr.Ptr[SyntaxExpression]
}

func (m *meaningBase) NonResultSubExpressions() []mptr.Ptr[SyntaxExpression] {
	return m.nonResult
}

// VoidAndExpressionMeaning: the expression does not produce any
// result.
type VoidAndExpressionMeaning struct {
	meaningBase
}

// NewVoidMeaning creates a void meaning.
func NewVoidMeaning(nonResult []mptr.Ptr[SyntaxExpression]) *VoidAndExpressionMeaning {
	return &VoidAndExpressionMeaning{meaningBase{nonResult}}
}

func (*VoidAndExpressionMeaning) isMeaning() {}

// ThisAndExpressionMeaning: the expression contains 'this=' elements
// which define its result.
type ThisAndExpressionMeaning struct {
	meaningBase
	resultElements []mptr.Ptr[*ThisSyntaxElement]
}

// NewThisMeaning creates a this-meaning.
func NewThisMeaning(
	nonResult []mptr.Ptr[SyntaxExpression],
	resultElements []mptr.Ptr[*ThisSyntaxElement],
) *ThisAndExpressionMeaning {
	return &ThisAndExpressionMeaning{meaningBase: meaningBase{nonResult}, resultElements: resultElements}
}

func (*ThisAndExpressionMeaning) isMeaning() {}

// ResultElements returns the elements defining the result.
func (m *ThisAndExpressionMeaning) ResultElements() []mptr.Ptr[*ThisSyntaxElement] {
	return m.resultElements
}

// ClassAndExpressionMeaning: the expression produces a class value,
// with or without attribute elements.
type ClassAndExpressionMeaning struct {
	meaningBase
	hasAttributes bool
}

// NewClassMeaning creates a class meaning.
func NewClassMeaning(nonResult []mptr.Ptr[SyntaxExpression], hasAttributes bool) *ClassAndExpressionMeaning {
	return &ClassAndExpressionMeaning{meaningBase: meaningBase{nonResult}, hasAttributes: hasAttributes}
}

func (*ClassAndExpressionMeaning) isMeaning() {}

// HasAttributes reports whether the expression has attribute elements.
func (m *ClassAndExpressionMeaning) HasAttributes() bool {
	return m.hasAttributes
}
