// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ebnf

import (
	"strings"
	"testing"

	"github.com/synbin/synbin/v1/mptr"
	"github.com/synbin/synbin/v1/types"
)

func syn(s string) SyntaxString {
	return NewSyntaxString(s, FilePos{})
}

// buildArithGrammar assembles a small grammar the way the parser
// front-end would:
//
//	token NUM : num;
//	@expr : %this=term ("+" term)* ;
//	term : value=NUM : Term ;
func buildArithGrammar(heap *mptr.Heap) (*Grammar, []SyntaxExpression) {
	exprs := NewContainer[SyntaxExpression](heap)
	decls := NewContainer[Declaration](heap)
	raws := NewContainer[*RawType](heap)
	bodies := NewContainer[*LoopBody](heap)

	num := NewTerminalDeclaration(syn("NUM"), raws.Add(NewRawType(syn("num"))))

	numRef := asExpr(exprs.Add(NewNameRef(syn("NUM"))))
	valueElem := asExpr(exprs.Add(NewNameElement(numRef, syn("value"))))
	termAnd := asExpr(exprs.Add(NewAnd(
		[]mptr.Ptr[SyntaxExpression]{valueElem},
		raws.Add(NewRawType(syn("Term"))),
	)))
	term := NewNonterminalDeclaration(false, syn("term"), termAnd, mptr.Null[*RawType]())

	termRef := asExpr(exprs.Add(NewNameRef(syn("term"))))
	thisPtr := exprs.Add(NewThisElement(FilePos{Line: 2, Column: 9}, termRef))
	plus := asExpr(exprs.Add(NewStringLiteral(syn("+"))))
	termRef2 := asExpr(exprs.Add(NewNameRef(syn("term"))))
	loopAnd := asExpr(exprs.Add(NewAnd(
		[]mptr.Ptr[SyntaxExpression]{plus, termRef2},
		mptr.Null[*RawType](),
	)))
	loop := asExpr(exprs.Add(NewZeroMany(bodies.Add(NewLoopBody(loopAnd, mptr.Null[SyntaxExpression](), FilePos{})))))
	exprAnd := asExpr(exprs.Add(NewAnd(
		[]mptr.Ptr[SyntaxExpression]{asExpr(thisPtr), loop},
		mptr.Null[*RawType](),
	)))
	expr := NewNonterminalDeclaration(true, syn("expr"), exprAnd, mptr.Null[*RawType]())

	g := NewGrammar([]mptr.Ptr[Declaration]{
		asDecl(decls.Add(num)),
		asDecl(decls.Add(expr)),
		asDecl(decls.Add(term)),
	})

	var all []SyntaxExpression
	exprs.ForEach(func(e SyntaxExpression) {
		all = append(all, e)
	})
	return g, all
}

// NewContainer is a test shorthand for a heap-owned container.
func NewContainer[T any](heap *mptr.Heap) *mptr.Container[T] {
	return mptr.NewContainerIn[T](heap).Get()
}

func asExpr[T SyntaxExpression](p mptr.Ptr[T]) mptr.Ptr[SyntaxExpression] {
	return mptr.MakePtr[SyntaxExpression](p.Get())
}

func asDecl[T Declaration](p mptr.Ptr[T]) mptr.Ptr[Declaration] {
	return mptr.MakePtr[Declaration](p.Get())
}

func TestGrammarEnumeration(t *testing.T) {
	heap := mptr.NewHeap()
	defer heap.Drop()

	g, _ := buildArithGrammar(heap)

	if g.TrCount() != 1 || g.NtCount() != 2 {
		t.Fatalf("unexpected symbol counts: %d terminals, %d nonterminals", g.TrCount(), g.NtCount())
	}
	if g.Terminals()[0].Name().String() != "NUM" || g.Terminals()[0].TrIndex() != 0 {
		t.Fatal("terminal enumeration broken")
	}
	nts := g.Nonterminals()
	if nts[0].Name().String() != "expr" || nts[0].NtIndex() != 0 {
		t.Fatal("first nonterminal must be expr with index 0")
	}
	if nts[1].Name().String() != "term" || nts[1].NtIndex() != 1 {
		t.Fatal("second nonterminal must be term with index 1")
	}
	if !nts[0].IsStart() || nts[1].IsStart() {
		t.Fatal("start flags broken")
	}
	if len(g.Declarations()) != 3 {
		t.Fatal("declarations lost")
	}
}

func TestSyntaxStringEquality(t *testing.T) {
	a := NewSyntaxString("name", FilePos{Line: 1, Column: 2})
	b := NewSyntaxString("name", FilePos{Line: 9, Column: 9})
	c := NewSyntaxString("other", FilePos{})

	if !a.Equal(b) {
		t.Fatal("positions must not affect equality")
	}
	if a.Equal(c) {
		t.Fatal("distinct names must not be equal")
	}
	if a.Pos().Line != 1 || a.Pos().Column != 2 {
		t.Fatal("position lost")
	}
	var empty SyntaxString
	if !empty.Empty() || empty.String() != "" {
		t.Fatal("zero syntax string must be empty")
	}
}

func TestNameRefResolution(t *testing.T) {
	ref := NewNameRef(syn("term"))
	if ref.Sym() != nil {
		t.Fatal("fresh reference must be unresolved")
	}

	nt := NewNonterminalDeclaration(false, syn("term"), mptr.Null[SyntaxExpression](), mptr.Null[*RawType]())
	ref.SetSym(nt)
	if ref.Sym() != SymbolDeclaration(nt) {
		t.Fatal("resolution lost")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on re-resolution")
		}
	}()
	ref.SetSym(nt)
}

func TestExtensionSingleAssignment(t *testing.T) {
	ext := NewSyntaxExpressionExtension()

	ext.SetIsVoid(false)
	if ext.IsVoid() {
		t.Fatal("void slot lost")
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected a panic on the second void assignment")
			}
		}()
		ext.SetIsVoid(true)
	}()

	// The general type must agree with the void slot.
	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected a panic on a void general type for a non-void expression")
			}
		}()
		ext.SetGeneralType(GeneralTypeVoid)
	}()

	ext.SetGeneralType(GeneralTypeClass)
	if ext.GeneralType() != GeneralTypeClass {
		t.Fatal("general type lost")
	}

	ct := mptr.MakePtr[types.Type](types.NewNameClass("Term"))
	ext.SetConcreteType(ct)
	if !ext.ConcreteTypeDefined() || ext.ConcreteType().Get() != ct.Get() {
		t.Fatal("concrete type lost")
	}
}

func TestExpressionExtensionInstall(t *testing.T) {
	e := NewEmpty()
	e.InstallExtension(NewSyntaxExpressionExtension())
	e.Extension().SetIsVoid(true)

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on the second install")
		}
	}()
	e.InstallExtension(NewSyntaxExpressionExtension())
}

func TestAndAttributes(t *testing.T) {
	ext := NewSyntaxExpressionExtension()
	attr := NewNameElement(mptr.Null[SyntaxExpression](), syn("a"))

	ext.AddAndAttribute(attr)
	ext.AddAndAttributes([]*NameSyntaxElement{attr, attr})
	if len(ext.AndAttributes()) != 3 {
		t.Fatal("attributes must accumulate, duplicates included")
	}

	ext.ClearAndAttributes()
	if len(ext.AndAttributes()) != 0 {
		t.Fatal("attributes must clear")
	}
}

func TestAndMeaning(t *testing.T) {
	and := NewAnd(nil, mptr.Null[*RawType]())
	and.InstallAndExtension(NewSyntaxAndExpressionExtension())

	meaning := NewClassMeaning(nil, true)
	and.AndExtension().SetMeaning(meaning)

	got := VisitMeaning[string](and.AndExtension().Meaning(), meaningKind{})
	if got != "class" {
		t.Fatalf("expected class meaning, got %q", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on the second meaning")
		}
	}()
	and.AndExtension().SetMeaning(NewVoidMeaning(nil))
}

type meaningKind struct{}

func (meaningKind) VisitVoidMeaning(*VoidAndExpressionMeaning) string   { return "void" }
func (meaningKind) VisitThisMeaning(*ThisAndExpressionMeaning) string   { return "this" }
func (meaningKind) VisitClassMeaning(*ClassAndExpressionMeaning) string { return "class" }

func TestNonterminalExtension(t *testing.T) {
	nt := NewNonterminalDeclaration(false, syn("n"), mptr.Null[SyntaxExpression](), mptr.Null[*RawType]())
	nt.InstallExtension(NewNonterminalDeclarationExtension())

	ext := nt.Extension()
	if ext.SetVisiting(true) {
		t.Fatal("visiting guard must start clear")
	}
	if !ext.SetVisiting(false) {
		t.Fatal("visiting guard lost its value")
	}

	if !ext.ClassTypeOpt().IsNull() {
		t.Fatal("class type must start null")
	}
	ct := mptr.MakePtr[types.ClassType](types.NewNameClass("N"))
	ext.SetClassType(ct)
	if ext.ClassType().Get().ClassName() != "N" {
		t.Fatal("class type lost")
	}
}

type countRefs struct {
	DefaultExpressionVisitor[int]
}

func (countRefs) VisitNameRef(*NameSyntaxExpression) int { return 1 }

func TestVisitorDispatch(t *testing.T) {
	heap := mptr.NewHeap()
	defer heap.Drop()

	_, exprs := buildArithGrammar(heap)

	total := 0
	for _, e := range exprs {
		total += VisitExpression[int](e, countRefs{})
	}
	if total != 3 {
		t.Fatalf("expected 3 name references in the grammar, got %d", total)
	}
}

type constKind struct {
	DefaultConstExpressionVisitor[string]
}

func (constKind) VisitNativeConst(*NativeConstExpression) string { return "native" }
func (constKind) VisitIntegerConst(*IntegerConstExpression) string {
	return "integer"
}

func TestConstExpressions(t *testing.T) {
	heap := mptr.NewHeap()
	defer heap.Drop()

	names := NewContainer[NativeName](heap)
	refs := NewContainer[NativeReference](heap)
	consts := NewContainer[ConstExpression](heap)

	arg := consts.Add(NewIntegerConst(3))
	fn := names.Add(NewNativeFunctionName(syn("make"), []mptr.Ptr[ConstExpression]{
		mptr.MakePtr[ConstExpression](arg.Get()),
	}))
	member := refs.Add(NewNativePointerReference(
		mptr.MakePtr[NativeName](names.Add(NewNativeVariableName(syn("value"))).Get()),
	))
	native := NewNativeConst(
		[]SyntaxString{syn("ns")},
		mptr.MakePtr[NativeName](fn.Get()),
		[]mptr.Ptr[NativeReference]{mptr.MakePtr[NativeReference](member.Get())},
	)

	if got := ConstString(native); got != `ns.make(3)->value` {
		t.Fatalf("unexpected native rendering %q", got)
	}
	if got := VisitConstExpression[string](native, constKind{}); got != "native" {
		t.Fatalf("dispatch returned %q", got)
	}
	if got := VisitConstExpression[string](arg.Get(), constKind{}); got != "integer" {
		t.Fatalf("dispatch returned %q", got)
	}
	if got := VisitConstExpression[string](NewBooleanConst(true), constKind{}); got != "" {
		t.Fatalf("default visitor must return the zero value, got %q", got)
	}
}

type declName struct {
	DefaultDeclarationVisitor[string]
}

func (declName) VisitTerminalDeclaration(d *TerminalDeclaration) string {
	return "tr:" + d.Name().String()
}
func (declName) VisitNonterminalDeclaration(d *NonterminalDeclaration) string {
	return "nt:" + d.Name().String()
}

func TestDeclarationDispatch(t *testing.T) {
	heap := mptr.NewHeap()
	defer heap.Drop()

	g, _ := buildArithGrammar(heap)

	var kinds []string
	for _, d := range g.Declarations() {
		kinds = append(kinds, VisitDeclaration[string](d.Get(), declName{}))
	}
	expected := []string{"tr:NUM", "nt:expr", "nt:term"}
	for i := range expected {
		if kinds[i] != expected[i] {
			t.Fatalf("unexpected dispatch results %v", kinds)
		}
	}
}

func TestPrintGrammar(t *testing.T) {
	heap := mptr.NewHeap()
	defer heap.Drop()

	g, _ := buildArithGrammar(heap)

	var sb strings.Builder
	g.Print(&sb)
	out := sb.String()

	for _, want := range []string{
		"token NUM : num;",
		"@expr :",
		"%this=term",
		`"+" term`,
		"value=NUM : Term",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendering lacks %q:\n%s", want, out)
		}
	}
}
