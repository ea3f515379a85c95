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

// Package level is the in-process API §6 describes: one Level ties the
// Memory Map, the scene graph, and the typed walkers (geometry, family,
// script) together over a single decoded SNA, so a caller addresses one
// level by name instead of wiring every layer itself. Package-level
// helpers under lib/ remain independently usable; Level is a convenience
// composition, not a new decoder.
package level

import (
	"errors"

	"github.com/undersampled/hypearchive/internal/diag"
	"github.com/undersampled/hypearchive/lib/dsgvar"
	"github.com/undersampled/hypearchive/lib/family"
	"github.com/undersampled/hypearchive/lib/geometry"
	"github.com/undersampled/hypearchive/lib/memmap"
	"github.com/undersampled/hypearchive/lib/scenegraph"
	"github.com/undersampled/hypearchive/lib/script"
	"github.com/undersampled/hypearchive/lib/text"
)

// ErrNoGPT is returned by OpenLevel when gptRaw is too short to carry the
// three entry-point addresses ParseGPT requires.
var ErrNoGPT = errors.New("level: missing or malformed GPT")

// Level is one decoded game level: its Memory Map, its Global Pointer
// Table (with gravity/ambient-light metadata, §9 SUPPLEMENTED FEATURES),
// and the scene graph walked from the GPT's three roots. Text and DsgVar
// tables are optional companions, attached separately with SetText/
// SetDsgVars since not every level directory carries them.
type Level struct {
	MM    *memmap.Context
	GPT   scenegraph.GPT
	Scene *scenegraph.Graph

	text    *text.Table
	dsgvars *dsgvar.Table
}

// OpenLevel decodes an SNA body (already outer-XOR-unmasked) into blocks,
// builds the Memory Map, parses the GPT, and walks the scene graph from
// its three roots. reloc may be nil.
func OpenLevel(snaBody []byte, reloc *memmap.RelocTable, gptRaw []byte) (*Level, error) {
	blocks, err := memmap.ParseSNABlocks(snaBody)
	if err != nil {
		return nil, err
	}
	mm := memmap.NewContext(blocks, reloc)

	gpt, err := scenegraph.ParseGPT(gptRaw)
	if err != nil {
		return nil, ErrNoGPT
	}

	graph, err := scenegraph.Walk(mm, gpt)
	if err != nil {
		return nil, err
	}

	return &Level{MM: mm, GPT: gpt, Scene: graph}, nil
}

// SetLogger attaches a diagnostics sink to this level's Memory Map (see
// memmap.Context.SetLogger). Call it before concurrent use, same as the
// underlying Context method.
func (l *Level) SetLogger(log diag.Logger) { l.MM.SetLogger(log) }

// SetText attaches a decoded LNG table, making Text available.
func (l *Level) SetText(t *text.Table) { l.text = t }

// Text returns the level's attached LNG table, or nil if none was set.
func (l *Level) Text() *text.Table { return l.text }

// SetDsgVars attaches a decoded DsgVar table, making DsgVars available.
func (l *Level) SetDsgVars(t *dsgvar.Table) { l.dsgvars = t }

// DsgVars returns the level's attached DsgVar table, or nil if none was
// set.
func (l *Level) DsgVars() *dsgvar.Table { return l.dsgvars }

// Mesh decodes the GeometricObject at addr within this level's Memory
// Map.
func (l *Level) Mesh(addr uint32) (*geometry.Object, error) {
	return geometry.Decode(l.MM, addr)
}

// Family decodes the Family record (object_lists) at addr.
func (l *Level) Family(addr uint32) (*family.Family, error) {
	return family.DecodeFamily(l.MM, addr)
}

// Animation decodes the AnimationMontreal record at addr.
func (l *Level) Animation(addr uint32) (*family.Animation, error) {
	return family.DecodeAnimation(l.MM, addr)
}

// Script decodes the node array at addr and reconstructs its tree
// forest.
func (l *Level) Script(addr uint32) ([]*script.Tree, error) {
	nodes, err := script.DecodeNodes(l.MM, addr)
	if err != nil {
		return nil, err
	}
	return script.BuildTree(nodes)
}
