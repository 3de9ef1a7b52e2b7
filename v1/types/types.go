// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package types defines the semantic types attached to grammar
// declarations and expressions by the analysis passes.
package types

import (
	"fmt"
)

// Type is a semantic grammar type. Equality is identity except for
// array types, which compare structurally by element type.
type Type interface {
	isType()
	Equals(other Type) bool
	String() string
}

// PrimitiveType groups the user- and system-defined primitive types.
type PrimitiveType interface {
	Type
	PrimitiveName() string
}

// ClassType groups the class-valued types.
type ClassType interface {
	Type
	ClassName() string
}

// Nonterminal is the view of a grammar nonterminal declaration needed
// by NonterminalClassType. It is implemented by the ebnf package;
// keeping it an interface avoids a dependency cycle.
type Nonterminal interface {
	NonterminalName() string
}

// VoidType is the type of expressions producing no value.
type VoidType struct{}

// UserPrimitiveType is a primitive type declared in the grammar.
type UserPrimitiveType struct {
	name string
}

// SystemPrimitiveType is a built-in primitive type.
type SystemPrimitiveType struct {
	name string
}

// NonterminalClassType is the class type generated for a nonterminal.
type NonterminalClassType struct {
	nt Nonterminal
}

// NameClassType is a class type referenced by explicit name.
type NameClassType struct {
	name string
}

// ArrayType is the type of repetition results.
type ArrayType struct {
	elem Type
}

// NewVoid returns the void type.
func NewVoid() *VoidType {
	return &VoidType{}
}

// NewUserPrimitive creates a user primitive type.
func NewUserPrimitive(name string) *UserPrimitiveType {
	return &UserPrimitiveType{name: name}
}

// NewSystemPrimitive creates a system primitive type.
func NewSystemPrimitive(name string) *SystemPrimitiveType {
	return &SystemPrimitiveType{name: name}
}

// NewNonterminalClass creates the class type of a nonterminal.
func NewNonterminalClass(nt Nonterminal) *NonterminalClassType {
	if nt == nil {
		panic("types: nil nonterminal")
	}
	return &NonterminalClassType{nt: nt}
}

// NewNameClass creates a class type with an explicit name.
func NewNameClass(name string) *NameClassType {
	return &NameClassType{name: name}
}

// NewArray creates an array type over the given element type.
func NewArray(elem Type) *ArrayType {
	if elem == nil {
		panic("types: nil array element type")
	}
	return &ArrayType{elem: elem}
}

func (*VoidType) isType()             {}
func (*UserPrimitiveType) isType()    {}
func (*SystemPrimitiveType) isType()  {}
func (*NonterminalClassType) isType() {}
func (*NameClassType) isType()       {}
func (*ArrayType) isType()           {}

func (t *VoidType) Equals(other Type) bool            { return Type(t) == other }
func (t *UserPrimitiveType) Equals(other Type) bool   { return Type(t) == other }
func (t *SystemPrimitiveType) Equals(other Type) bool { return Type(t) == other }
func (t *NonterminalClassType) Equals(other Type) bool { return Type(t) == other }
func (t *NameClassType) Equals(other Type) bool       { return Type(t) == other }

// Equals on arrays is structural: two array types are equal when their
// element types are.
func (t *ArrayType) Equals(other Type) bool {
	o, ok := other.(*ArrayType)
	return ok && t.elem.Equals(o.elem)
}

// PrimitiveName returns the primitive type name.
func (t *UserPrimitiveType) PrimitiveName() string { return t.name }

// PrimitiveName returns the primitive type name.
func (t *SystemPrimitiveType) PrimitiveName() string { return t.name }

// ClassName returns the generated class name of the nonterminal.
func (t *NonterminalClassType) ClassName() string { return t.nt.NonterminalName() }

// ClassName returns the explicit class name.
func (t *NameClassType) ClassName() string { return t.name }

// Nt returns the nonterminal behind the class type.
func (t *NonterminalClassType) Nt() Nonterminal { return t.nt }

// Element returns the array element type.
func (t *ArrayType) Element() Type { return t.elem }

func (*VoidType) String() string               { return "void" }
func (t *UserPrimitiveType) String() string    { return "user:" + t.name }
func (t *SystemPrimitiveType) String() string  { return "sys:" + t.name }
func (t *NonterminalClassType) String() string { return "nt:" + t.nt.NonterminalName() }
func (t *NameClassType) String() string        { return "cl:" + t.name }
func (t *ArrayType) String() string            { return fmt.Sprintf("array[%v]", t.elem) }

// Visitor dispatches over the concrete type kinds.
type Visitor[T any] interface {
	VisitVoid(*VoidType) T
	VisitUserPrimitive(*UserPrimitiveType) T
	VisitSystemPrimitive(*SystemPrimitiveType) T
	VisitNonterminalClass(*NonterminalClassType) T
	VisitNameClass(*NameClassType) T
	VisitArray(*ArrayType) T
}

// Visit dispatches t to the matching visitor method.
func Visit[T any](t Type, v Visitor[T]) T {
	switch n := t.(type) {
	case *VoidType:
		return v.VisitVoid(n)
	case *UserPrimitiveType:
		return v.VisitUserPrimitive(n)
	case *SystemPrimitiveType:
		return v.VisitSystemPrimitive(n)
	case *NonterminalClassType:
		return v.VisitNonterminalClass(n)
	case *NameClassType:
		return v.VisitNameClass(n)
	case *ArrayType:
		return v.VisitArray(n)
	default:
		panic(fmt.Sprintf("types: unknown type %T", t))
	}
}
