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

import (
	"fmt"
	"math"
	"strings"
)

// categoryPrefix maps a Category to its S-expression symbol prefix.
// Categories with no canonical prefix (§4.9 only names four) get no
// prefix, and the entry's name is rendered bare.
func categoryPrefix(c Category) (string, bool) {
	switch c {
	case CategoryProcedure:
		return "proc-", true
	case CategoryCondition:
		return "cond-", true
	case CategoryFunction:
		return "func-", true
	case CategoryOperator:
		return "op-", true
	default:
		return "", false
	}
}

// renderParam formats a node's Param word per its declared ParamKind.
func renderParam(param uint32, kind ParamKind) string {
	switch kind {
	case ParamFloat:
		return fmt.Sprintf("%g", math.Float32frombits(param))
	case ParamDsgVar:
		return fmt.Sprintf("dsgvar_%d", param)
	case ParamText:
		return fmt.Sprintf("text_%d", param)
	case ParamPointer:
		return fmt.Sprintf("0x%08x", param)
	default:
		return fmt.Sprintf("%d", param)
	}
}

// symbolFor renders a single node's head symbol: its category prefix (or
// "type-N" if the type byte does not resolve in table) followed by its
// name, or just the raw type index when the table has no entry.
func symbolFor(n Node, table TypeTable) string {
	entry, ok := table.Lookup(n.Type)
	if !ok {
		return fmt.Sprintf("type-%d", n.Type)
	}
	prefix, _ := categoryPrefix(entry.Category)
	return prefix + entry.Name
}

// WriteSExpr renders one tree (and its descendants) as an S-expression
// into sb, using table to resolve category prefixes and param rendering
// (§4.9). Nodes whose type does not resolve in table render as
// (type-N <param>) so the output degrades gracefully without the real
// per-game table.
func WriteSExpr(sb *strings.Builder, t *Tree, table TypeTable) {
	writeSExpr(sb, t, table, 0)
}

func writeSExpr(sb *strings.Builder, t *Tree, table TypeTable, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteByte('(')
	sb.WriteString(symbolFor(t.Node, table))

	entry, ok := table.Lookup(t.Node.Type)
	kind := ParamLiteral
	if ok {
		kind = entry.Param
	}
	sb.WriteByte(' ')
	sb.WriteString(renderParam(t.Node.Param, kind))

	for _, child := range t.Children {
		sb.WriteByte('\n')
		writeSExpr(sb, child, table, depth+1)
	}
	sb.WriteByte(')')
}

// SExpr renders a forest of trees, one top-level S-expression per root
// separated by blank lines.
func SExpr(roots []*Tree, table TypeTable) string {
	var sb strings.Builder
	for i, r := range roots {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		WriteSExpr(&sb, r, table)
	}
	return sb.String()
}
