// Copyright 2026 The Hype Archive Tools Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package script

import "errors"

// ErrEmptyScript is returned by BuildTree for a zero-node script (§8(d):
// "the zero-node script corner case is rejected because empty").
var ErrEmptyScript = errors.New("script: empty script")

// ErrMalformedIndents is returned when a node sequence fails the §8
// validation properties: the final node's indent must be 0, and every
// indent must be at most one greater than the previous node's.
var ErrMalformedIndents = errors.New("script: malformed indent sequence")

// Tree is one script node plus its children, reconstructed from the flat,
// indent-encoded node array (§4.9: "Nodes at indent N+1 are children of
// the preceding node at indent N").
type Tree struct {
	Node     Node
	Children []*Tree
}

// ValidateIndents reports whether nodes satisfies the §8 well-formedness
// properties: non-empty, final indent == 0, and every indent at most one
// greater than its predecessor.
func ValidateIndents(nodes []Node) bool {
	if len(nodes) == 0 {
		return false
	}
	if nodes[len(nodes)-1].Indent != 0 {
		return false
	}
	for i := 1; i < len(nodes); i++ {
		if nodes[i].Indent > nodes[i-1].Indent+1 {
			return false
		}
	}
	return true
}

// BuildTree reconstructs the node forest from a flat, indent-encoded
// sequence. The final node (required by ValidateIndents to have indent 0)
// is the script's terminator, not content, and is dropped; every
// remaining node's parent is the most recently seen node at one shallower
// indent level, or a new root if no such node has been seen yet. This
// does not assume the content's own top level is indent 0 — §8(d)'s
// `[1, 2, 3, 2, 3, 0]` example starts its real content at indent 1.
func BuildTree(nodes []Node) ([]*Tree, error) {
	if len(nodes) == 0 {
		return nil, ErrEmptyScript
	}
	if !ValidateIndents(nodes) {
		return nil, ErrMalformedIndents
	}

	content := nodes[:len(nodes)-1]

	var roots []*Tree
	parentAt := make(map[uint8]*Tree)
	for _, n := range content {
		t := &Tree{Node: n}
		if n.Indent == 0 {
			roots = append(roots, t)
		} else if parent, ok := parentAt[n.Indent-1]; ok {
			parent.Children = append(parent.Children, t)
		} else {
			roots = append(roots, t)
		}
		parentAt[n.Indent] = t
	}
	return roots, nil
}
