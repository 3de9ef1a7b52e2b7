// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ebnf

import (
	"github.com/synbin/synbin/v1/mptr"
)

// ConstExpression is a constant attached to a grammar rule: an
// integer, string or boolean literal, or a reference to a native
// entity of the target runtime.
type ConstExpression interface {
	isConstExpression()
}

// IntegerConstExpression is an integer constant.
type IntegerConstExpression struct {
	value SyntaxNumber
}

// NewIntegerConst creates an integer constant.
func NewIntegerConst(value SyntaxNumber) *IntegerConstExpression {
	return &IntegerConstExpression{value: value}
}

func (*IntegerConstExpression) isConstExpression() {}

// Value returns the constant value.
func (e *IntegerConstExpression) Value() SyntaxNumber {
	return e.value
}

// StringConstExpression is a string constant.
type StringConstExpression struct {
	value SyntaxString
}

// NewStringConst creates a string constant.
func NewStringConst(value SyntaxString) *StringConstExpression {
	return &StringConstExpression{value: value}
}

func (*StringConstExpression) isConstExpression() {}

// Value returns the constant value.
func (e *StringConstExpression) Value() SyntaxString {
	return e.value
}

// BooleanConstExpression is a boolean constant.
type BooleanConstExpression struct {
	value bool
}

// NewBooleanConst creates a boolean constant.
func NewBooleanConst(value bool) *BooleanConstExpression {
	return &BooleanConstExpression{value: value}
}

func (*BooleanConstExpression) isConstExpression() {}

// Value returns the constant value.
func (e *BooleanConstExpression) Value() bool {
	return e.value
}

// NativeConstExpression references a native entity of the target
// runtime: a possibly qualified name plus a chain of member
// references.
type NativeConstExpression struct {
	qualifiers []SyntaxString // may be empty
	name       mptr.Ptr[NativeName]
	references []mptr.Ptr[NativeReference] // may be empty
}

// NewNativeConst creates a native constant reference.
func NewNativeConst(
	qualifiers []SyntaxString,
	name mptr.Ptr[NativeName],
	references []mptr.Ptr[NativeReference],
) *NativeConstExpression {
	return &NativeConstExpression{qualifiers: qualifiers, name: name, references: references}
}

func (*NativeConstExpression) isConstExpression() {}

// Qualifiers returns the name qualifiers in source order.
func (e *NativeConstExpression) Qualifiers() []SyntaxString {
	return e.qualifiers
}

// NativeName returns the referenced name.
func (e *NativeConstExpression) NativeName() NativeName {
	return e.name.Get()
}

// References returns the member reference chain.
func (e *NativeConstExpression) References() []mptr.Ptr[NativeReference] {
	return e.references
}

// NativeName is a native variable or function name.
type NativeName interface {
	Name() SyntaxString
	isNativeName()
}

// nativeNameBase carries the name shared by the native name kinds.
type nativeNameBase struct {
	name SyntaxString
}

func (n *nativeNameBase) Name() SyntaxString {
	return n.name
}

// NativeVariableName names a native variable.
type NativeVariableName struct {
	nativeNameBase
}

// NewNativeVariableName creates a native variable name.
func NewNativeVariableName(name SyntaxString) *NativeVariableName {
	return &NativeVariableName{nativeNameBase{name}}
}

func (*NativeVariableName) isNativeName() {}

// NativeFunctionName names a native function call with constant
// arguments.
type NativeFunctionName struct {
	nativeNameBase
	arguments []mptr.Ptr[ConstExpression] // may be empty
}

// NewNativeFunctionName creates a native function name.
func NewNativeFunctionName(name SyntaxString, arguments []mptr.Ptr[ConstExpression]) *NativeFunctionName {
	return &NativeFunctionName{nativeNameBase: nativeNameBase{name}, arguments: arguments}
}

func (*NativeFunctionName) isNativeName() {}

// Arguments returns the call arguments in source order.
func (n *NativeFunctionName) Arguments() []mptr.Ptr[ConstExpression] {
	return n.arguments
}

// NativeReference is one member access in a native reference chain,
// either through a pointer or through a reference.
type NativeReference interface {
	NativeName() NativeName
	IsPointer() bool
	isNativeReference()
}

// nativeRefBase carries the referenced name.
type nativeRefBase struct {
	name mptr.Ptr[NativeName]
}

func (r *nativeRefBase) NativeName() NativeName {
	return r.name.Get()
}

// NativePointerReference is a member access through a pointer.
type NativePointerReference struct {
	nativeRefBase
}

// NewNativePointerReference creates a pointer member access.
func NewNativePointerReference(name mptr.Ptr[NativeName]) *NativePointerReference {
	return &NativePointerReference{nativeRefBase{name}}
}

func (*NativePointerReference) isNativeReference() {}

// IsPointer implements NativeReference.
func (*NativePointerReference) IsPointer() bool { return true }

// NativeReferenceReference is a member access through a reference.
type NativeReferenceReference struct {
	nativeRefBase
}

// NewNativeReferenceReference creates a reference member access.
func NewNativeReferenceReference(name mptr.Ptr[NativeName]) *NativeReferenceReference {
	return &NativeReferenceReference{nativeRefBase{name}}
}

func (*NativeReferenceReference) isNativeReference() {}

// IsPointer implements NativeReference.
func (*NativeReferenceReference) IsPointer() bool { return false }
