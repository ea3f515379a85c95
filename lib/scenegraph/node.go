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

// ----------------

// Package scenegraph walks SuperObject records into an arena-indexed scene
// tree, seeded from the Global Pointer Table (§4.6).
package scenegraph

// TypeCode is the SuperObject type_code discriminant (§9 "Polymorphism
// across SuperObject types").
type TypeCode uint32

const (
	TypeWorld  TypeCode = 0x00
	TypePerso  TypeCode = 0x04
	TypeSector TypeCode = 0x08
	TypeIPO    TypeCode = 0x0D
	TypeIPO2   TypeCode = 0x15
)

// NoIndex is the sentinel arena index meaning "no such link" (§9 "Cyclic
// parent/child pointers" — unresolved links use a sentinel rather than a
// null pointer into the arena).
const NoIndex = -1

// Node is one SuperObject, with all pointer-valued links replaced by arena
// indices into Graph.Nodes. When Type does not match a known
// constant, it still carries the raw type_code value verbatim (§9's
// "Unknown carrying the raw code").
type Node struct {
	Type TypeCode

	DataAddr           uint32
	MatrixAddr         uint32
	StaticMatrixAddr   uint32
	BoundingVolumeAddr uint32
	DrawFlags, Flags   uint32

	Parent      int
	ChildHead   int
	ChildTail   int
	ChildCount  int
	SiblingNext int
	SiblingPrev int

	Children []int // populated by Walk via ChildHead/SiblingNext traversal.
}

// IsKnownType reports whether t is one of the Montreal type codes this
// decoder recognises.
func (t TypeCode) IsKnownType() bool {
	switch t {
	case TypeWorld, TypePerso, TypeSector, TypeIPO, TypeIPO2:
		return true
	}
	return false
}
