// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package scan builds the literal-token scanner tree: a deterministic
// prefix trie over the non-name terminals of a grammar.
package scan

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// TokenDescriptor describes one terminal: its literal text and whether
// it is a named identifier token rather than a literal string.
type TokenDescriptor interface {
	Literal() string
	IsName() bool
}

// StrToken is a plain TokenDescriptor.
type StrToken struct {
	Text      string
	NameToken bool
}

// Literal implements TokenDescriptor.
func (t *StrToken) Literal() string { return t.Text }

// IsName implements TokenDescriptor.
func (t *StrToken) IsName() bool { return t.NameToken }

// DuplicateTokenErr is the code of the error reported when two
// descriptors carry identical literal strings.
const DuplicateTokenErr = "scan_duplicate_token_error"

// Error is the error type returned by the trie builder.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%v: %v", e.Code, e.Message)
}

// IsDuplicateToken returns true if the error reports a duplicated
// literal token.
func IsDuplicateToken(err error) bool {
	var serr *Error
	return errors.As(err, &serr) && serr.Code == DuplicateTokenErr
}

// Node is a state of the literal-token scanner tree. The tree
// exclusively owns its children.
type Node struct {
	// token accepted in this state, or nil if the state does not
	// accept any token.
	token TokenDescriptor

	edges []Edge
}

// Edge is a transition of the scanner tree.
type Edge struct {
	ch   byte
	node *Node
}

// Token returns the token accepted in this state, or nil.
func (n *Node) Token() TokenDescriptor {
	return n.token
}

// Edges returns the outgoing edges in character order.
func (n *Node) Edges() []Edge {
	return n.edges
}

func (n *Node) addEdge(ch byte) *Node {
	n.edges = append(n.edges, Edge{ch: ch, node: &Node{}})
	return n.edges[len(n.edges)-1].node
}

// Ch returns the character associated with the edge.
func (e Edge) Ch() byte {
	return e.ch
}

// Target returns the destination state.
func (e Edge) Target() *Node {
	return e.node
}

// Print renders the tree, one edge per line, indented by depth.
func (n *Node) Print(w io.Writer) {
	n.print(w, 0)
}

func (n *Node) print(w io.Writer, indent int) {
	for _, edge := range n.edges {
		fmt.Fprintf(w, "%s%q", strings.Repeat("\t", indent), edge.ch)
		if edge.node.token != nil {
			fmt.Fprintf(w, " : %q", edge.node.token.Literal())
		}
		fmt.Fprintln(w)
		edge.node.print(w, indent+1)
	}
}

// Build constructs the scanner tree from the given terminals. Named
// tokens are skipped; the remaining literals are sorted, so the result
// is independent of input order. Two descriptors with identical
// literal strings yield a DuplicateTokenErr error.
func Build(tokens []TokenDescriptor) (*Node, error) {
	literals := make([]TokenDescriptor, 0, len(tokens))
	for _, token := range tokens {
		if !token.IsName() {
			literals = append(literals, token)
		}
	}

	// Sort the tokens, so tokens which start with the same characters
	// are together.
	sort.SliceStable(literals, func(i, j int) bool {
		return literals[i].Literal() < literals[j].Literal()
	})

	root := &Node{}
	if err := buildSubNodes(root, literals, 0, len(literals), 0); err != nil {
		return nil, err
	}
	return root, nil
}

// buildSubNodes builds the sub-tree for the sorted token range
// [start, end) at string offset ofs. The first token may terminate at
// this node; the rest partition into contiguous groups by the
// character at ofs.
func buildSubNodes(node *Node, tokens []TokenDescriptor, start, end, ofs int) error {
	pos := start
	if pos < end {
		token := tokens[pos]
		if len(token.Literal()) == ofs {
			if node.token != nil {
				return &Error{Code: DuplicateTokenErr, Message: fmt.Sprintf("duplicated literal token %q", token.Literal())}
			}
			node.token = token
			pos++
		}
	}

	for pos < end {
		subStart := pos

		s := tokens[pos].Literal()
		if ofs >= len(s) {
			// The same literal string terminated at this node already.
			return &Error{Code: DuplicateTokenErr, Message: fmt.Sprintf("duplicated literal token %q", s)}
		}
		c := s[ofs]
		pos++
		for pos < end {
			p := tokens[pos].Literal()
			if ofs >= len(p) || c != p[ofs] {
				break
			}
			pos++
		}

		subNode := node.addEdge(c)
		if err := buildSubNodes(subNode, tokens, subStart, pos, ofs+1); err != nil {
			return err
		}
	}
	return nil
}
