// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package ebnf defines the intermediate representation of an EBNF
// grammar: declarations, syntax expressions, constant expressions and
// the extension records populated by the analysis passes.
//
// Nodes are built by the grammar parser into mptr containers, so the
// whole tree is owned in bulk by a single mptr.Root; references
// between nodes are unowning handles. Mutable analysis results live in
// install-once extension records with single-assignment slots.
package ebnf

import (
	"fmt"

	"github.com/synbin/synbin/v1/mptr"
	"github.com/synbin/synbin/v1/types"
	"github.com/synbin/synbin/v1/util"
)

// FilePos is a position in the grammar source text.
type FilePos struct {
	Line   int
	Column int
}

func (p FilePos) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// SyntaxString is a name or literal taken from the grammar text: an
// interned string together with its source position. Equal syntax
// strings share a handle, so comparison is a single word compare.
type SyntaxString struct {
	h   util.StringHandle
	pos FilePos
}

// NewSyntaxString interns s at the given position.
func NewSyntaxString(s string, pos FilePos) SyntaxString {
	return SyntaxString{h: util.Intern(s), pos: pos}
}

func (s SyntaxString) String() string {
	return util.HandleString(s.h)
}

// Pos returns the source position.
func (s SyntaxString) Pos() FilePos {
	return s.pos
}

// Empty reports whether the string is absent.
func (s SyntaxString) Empty() bool {
	return s.h == util.EmptyHandle()
}

// Equal compares by interned value, ignoring positions.
func (s SyntaxString) Equal(o SyntaxString) bool {
	return s.h == o.h
}

// SyntaxNumber is an integer literal taken from the grammar text.
type SyntaxNumber = int64

// Declaration is a top-level grammar declaration.
type Declaration interface {
	isDeclaration()
}

// SymbolDeclaration is a declaration of a grammar symbol: a terminal
// or a nonterminal.
type SymbolDeclaration interface {
	Declaration
	Name() SyntaxString
	isSymbolDeclaration()
}

// namedDecl carries the declared name.
type namedDecl struct {
	name SyntaxString
}

// Name returns the declared name.
func (d *namedDecl) Name() SyntaxString {
	return d.name
}

// RawType is a type name as written in the grammar, before resolution.
// The concept is referenced from several node kinds, so it is a
// separate arena-owned object rather than a bare SyntaxString.
type RawType struct {
	name SyntaxString
}

// NewRawType creates a raw type reference.
func NewRawType(name SyntaxString) *RawType {
	return &RawType{name: name}
}

// Name returns the type name as written.
func (t *RawType) Name() SyntaxString {
	return t.name
}

// TypeDeclaration declares a user primitive type.
type TypeDeclaration struct {
	namedDecl
}

// NewTypeDeclaration creates a type declaration.
func NewTypeDeclaration(name SyntaxString) *TypeDeclaration {
	return &TypeDeclaration{namedDecl{name}}
}

func (*TypeDeclaration) isDeclaration() {}

// TerminalDeclaration declares a terminal symbol, optionally carrying
// a raw value type.
type TerminalDeclaration struct {
	namedDecl
	rawType mptr.Ptr[*RawType] // may be null

	trIndex int
	typ     types.PrimitiveType // resolved by a later pass; may be nil
}

// NewTerminalDeclaration creates a terminal declaration.
func NewTerminalDeclaration(name SyntaxString, rawType mptr.Ptr[*RawType]) *TerminalDeclaration {
	return &TerminalDeclaration{namedDecl: namedDecl{name}, rawType: rawType}
}

func (*TerminalDeclaration) isDeclaration()       {}
func (*TerminalDeclaration) isSymbolDeclaration() {}

// RawType returns the declared value type, or null.
func (d *TerminalDeclaration) RawType() mptr.Ptr[*RawType] {
	return d.rawType
}

// SetType installs the resolved primitive type.
func (d *TerminalDeclaration) SetType(t types.PrimitiveType) {
	d.typ = t
}

// Type returns the resolved primitive type, or nil.
func (d *TerminalDeclaration) Type() types.PrimitiveType {
	return d.typ
}

// TrIndex returns the terminal's stable index in its grammar.
func (d *TerminalDeclaration) TrIndex() int {
	return d.trIndex
}

// NonterminalDeclaration declares a nonterminal with its syntax
// expression. Analysis results live in the install-once extension.
type NonterminalDeclaration struct {
	namedDecl
	start           bool
	expr            mptr.Ptr[SyntaxExpression]
	explicitRawType mptr.Ptr[*RawType] // may be null

	explicitType mptr.Ptr[types.Type]
	ntIndex      int
	ext          *NonterminalDeclarationExtension
}

// NewNonterminalDeclaration creates a nonterminal declaration.
func NewNonterminalDeclaration(
	start bool,
	name SyntaxString,
	expr mptr.Ptr[SyntaxExpression],
	explicitRawType mptr.Ptr[*RawType],
) *NonterminalDeclaration {
	return &NonterminalDeclaration{
		namedDecl:       namedDecl{name},
		start:           start,
		expr:            expr,
		explicitRawType: explicitRawType,
	}
}

func (*NonterminalDeclaration) isDeclaration()       {}
func (*NonterminalDeclaration) isSymbolDeclaration() {}

// IsStart reports whether this is the start nonterminal.
func (d *NonterminalDeclaration) IsStart() bool {
	return d.start
}

// Expression returns the nonterminal's syntax expression.
func (d *NonterminalDeclaration) Expression() SyntaxExpression {
	return d.expr.Get()
}

// ExplicitRawType returns the declared result type, or null.
func (d *NonterminalDeclaration) ExplicitRawType() mptr.Ptr[*RawType] {
	return d.explicitRawType
}

// SetExplicitType installs the resolved explicit type.
func (d *NonterminalDeclaration) SetExplicitType(t mptr.Ptr[types.Type]) {
	d.explicitType = t
}

// ExplicitType returns the resolved explicit type, or null.
func (d *NonterminalDeclaration) ExplicitType() mptr.Ptr[types.Type] {
	return d.explicitType
}

// NtIndex returns the nonterminal's stable index in its grammar.
func (d *NonterminalDeclaration) NtIndex() int {
	return d.ntIndex
}

// NonterminalName implements types.Nonterminal.
func (d *NonterminalDeclaration) NonterminalName() string {
	return d.name.String()
}

// InstallExtension attaches the extension record. Installing twice is
// a programming error.
func (d *NonterminalDeclaration) InstallExtension(ext *NonterminalDeclarationExtension) {
	if ext == nil {
		panic(util.Invariantf("ebnf: nil extension"))
	}
	if d.ext != nil {
		panic(util.Invariantf("ebnf: extension already installed on nonterminal %v", d.name))
	}
	d.ext = ext
}

// Extension returns the installed extension record.
func (d *NonterminalDeclaration) Extension() *NonterminalDeclarationExtension {
	if d.ext == nil {
		panic(util.Invariantf("ebnf: no extension installed on nonterminal %v", d.name))
	}
	return d.ext
}

// CustomTerminalTypeDeclaration declares the value type of custom
// terminals. The raw type is never null.
type CustomTerminalTypeDeclaration struct {
	rawType mptr.Ptr[*RawType]
}

// NewCustomTerminalTypeDeclaration creates a custom terminal type
// declaration.
func NewCustomTerminalTypeDeclaration(rawType mptr.Ptr[*RawType]) *CustomTerminalTypeDeclaration {
	if rawType.IsNull() {
		panic(util.Invariantf("ebnf: null raw type in custom terminal type declaration"))
	}
	return &CustomTerminalTypeDeclaration{rawType: rawType}
}

func (*CustomTerminalTypeDeclaration) isDeclaration() {}

// RawType returns the declared type.
func (d *CustomTerminalTypeDeclaration) RawType() mptr.Ptr[*RawType] {
	return d.rawType
}

// Grammar is the root of the IR: the declaration list plus the
// enumerated terminals and nonterminals with their stable indices.
type Grammar struct {
	declarations []mptr.Ptr[Declaration]
	terminals    []*TerminalDeclaration
	nonterminals []*NonterminalDeclaration
}

// NewGrammar builds a grammar from its declarations, assigning
// terminal and nonterminal indices in declaration order.
func NewGrammar(declarations []mptr.Ptr[Declaration]) *Grammar {
	g := &Grammar{declarations: declarations}
	for _, p := range declarations {
		switch d := p.Get().(type) {
		case *TerminalDeclaration:
			d.trIndex = len(g.terminals)
			g.terminals = append(g.terminals, d)
		case *NonterminalDeclaration:
			d.ntIndex = len(g.nonterminals)
			g.nonterminals = append(g.nonterminals, d)
		}
	}
	return g
}

// Declarations returns all declarations in source order.
func (g *Grammar) Declarations() []mptr.Ptr[Declaration] {
	return g.declarations
}

// Terminals returns the terminal declarations in index order.
func (g *Grammar) Terminals() []*TerminalDeclaration {
	return g.terminals
}

// Nonterminals returns the nonterminal declarations in index order.
func (g *Grammar) Nonterminals() []*NonterminalDeclaration {
	return g.nonterminals
}

// TrCount returns the number of terminals.
func (g *Grammar) TrCount() int {
	return len(g.terminals)
}

// NtCount returns the number of nonterminals.
func (g *Grammar) NtCount() int {
	return len(g.nonterminals)
}
