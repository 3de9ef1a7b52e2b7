// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package types

import (
	"testing"
)

type fakeNt struct {
	name string
}

func (n *fakeNt) NonterminalName() string { return n.name }

func TestIdentityEquality(t *testing.T) {
	a := NewUserPrimitive("value")
	b := NewUserPrimitive("value")

	if !a.Equals(a) {
		t.Fatal("a type must equal itself")
	}
	if a.Equals(b) {
		t.Fatal("distinct primitive instances must not be equal")
	}
	if NewVoid().Equals(NewVoid()) {
		t.Fatal("distinct void instances must not be equal")
	}
}

func TestArrayStructuralEquality(t *testing.T) {
	elem := NewSystemPrimitive("str")
	a := NewArray(elem)
	b := NewArray(elem)
	c := NewArray(NewSystemPrimitive("str"))

	if !a.Equals(b) {
		t.Fatal("arrays over the same element type must be equal")
	}
	if a.Equals(c) {
		t.Fatal("arrays over distinct element instances must not be equal")
	}
	if a.Equals(elem) {
		t.Fatal("an array must not equal a non-array")
	}

	nested1 := NewArray(a)
	nested2 := NewArray(b)
	if !nested1.Equals(nested2) {
		t.Fatal("nested arrays must compare structurally")
	}
}

func TestNames(t *testing.T) {
	nt := &fakeNt{name: "Expression"}

	tests := []struct {
		typ Type
		str string
	}{
		{NewVoid(), "void"},
		{NewUserPrimitive("value"), "user:value"},
		{NewSystemPrimitive("str"), "sys:str"},
		{NewNonterminalClass(nt), "nt:Expression"},
		{NewNameClass("Node"), "cl:Node"},
		{NewArray(NewSystemPrimitive("str")), "array[sys:str]"},
	}
	for _, tc := range tests {
		if got := tc.typ.String(); got != tc.str {
			t.Fatalf("String() = %q, expected %q", got, tc.str)
		}
	}

	if NewNonterminalClass(nt).ClassName() != "Expression" {
		t.Fatal("nonterminal class name must come from the declaration")
	}
}

type kindVisitor struct{}

func (kindVisitor) VisitVoid(*VoidType) string                       { return "void" }
func (kindVisitor) VisitUserPrimitive(*UserPrimitiveType) string     { return "user" }
func (kindVisitor) VisitSystemPrimitive(*SystemPrimitiveType) string { return "system" }
func (kindVisitor) VisitNonterminalClass(*NonterminalClassType) string {
	return "ntclass"
}
func (kindVisitor) VisitNameClass(*NameClassType) string { return "nameclass" }
func (kindVisitor) VisitArray(*ArrayType) string         { return "array" }

func TestVisitDispatch(t *testing.T) {
	nt := &fakeNt{name: "N"}
	tests := []struct {
		typ  Type
		kind string
	}{
		{NewVoid(), "void"},
		{NewUserPrimitive("p"), "user"},
		{NewSystemPrimitive("s"), "system"},
		{NewNonterminalClass(nt), "ntclass"},
		{NewNameClass("C"), "nameclass"},
		{NewArray(NewVoid()), "array"},
	}
	for _, tc := range tests {
		if got := Visit[string](tc.typ, kindVisitor{}); got != tc.kind {
			t.Fatalf("Visit(%v) = %q, expected %q", tc.typ, got, tc.kind)
		}
	}
}
