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

package family

import (
	"github.com/undersampled/hypearchive/lib/memmap"
)

const animationHeaderSize = 4 + 1 + 1 + 1 + 1 + 4 + 4 + 4 + 16*4

// HierarchyLink is one (child, parent) channel index pair.
type HierarchyLink struct {
	Child, Parent int
}

// Channel is one animated bone/object channel for a single frame. Kind
// distinguishes a no-transform channel, an identity channel, and a
// channel carrying a compressed matrix.
type Channel struct {
	Kind        ChannelKind
	Matrix      Matrix // valid when Kind == ChannelMatrix.
	ObjectIndex int32  // selects the rendered ObjectList entry; -1 means invisible.
}

// ChannelKind tags a Channel's first-word discriminant (§4.8).
type ChannelKind int

const (
	ChannelNone ChannelKind = iota
	ChannelIdentity
	ChannelMatrix
)

// Frame is one decoded animation frame: one Channel per animated object,
// plus that frame's hierarchy links.
type Frame struct {
	Channels    []Channel
	Hierarchies []HierarchyLink
}

// Animation is a decoded AnimationMontreal: every frame, plus the
// first-frame hierarchy taken as the animation's static skeleton (§4.8:
// "a graceful implementation takes the first frame's hierarchy as the
// static skeleton and does not promise animated reparenting").
type Animation struct {
	NumFrames      int
	Speed          uint8
	NumChannels    int
	Frames         []Frame
	StaticSkeleton []HierarchyLink
}

// DecodeAnimation reads the AnimationMontreal header at addr and every
// frame it declares.
func DecodeAnimation(mm *memmap.Context, addr uint32) (*Animation, error) {
	cur, err := mm.At(addr)
	if err != nil {
		return nil, err
	}
	hdr, err := cur.Bytes(animationHeaderSize)
	if err != nil {
		return nil, err
	}

	offFrames := le32(hdr[0x00:])
	numFrames := int(hdr[0x04])
	speed := hdr[0x05]
	numChannels := int(hdr[0x06])
	// hdr[0x07] is padding.
	// hdr[0x08:0x0C] off_unk, hdr[0x0C:0x10] and hdr[0x10:0x14] unknown u32s,
	// hdr[0x14:0x54] speed_matrix (16 f32) are not surfaced by this decoder.

	anim := &Animation{NumFrames: numFrames, Speed: speed, NumChannels: numChannels}

	framesCur, err := mm.At(offFrames)
	if err != nil {
		return anim, nil // header decoded; frames unreachable — return what we have (§7 UnmappedAddress policy).
	}
	for f := 0; f < numFrames; f++ {
		frameRaw, err := framesCur.Bytes(16) // channels_ptr, mat_ptr, vec_ptr, hierarchies_ptr.
		if err != nil {
			break
		}
		channelsPtr := le32(frameRaw[0x00:])
		hierarchiesPtr := le32(frameRaw[0x0C:])

		channels, err := decodeChannels(mm, channelsPtr, numChannels)
		if err != nil {
			continue
		}
		hierarchies := decodeHierarchies(mm, hierarchiesPtr, numChannels)

		anim.Frames = append(anim.Frames, Frame{Channels: channels, Hierarchies: hierarchies})
		if f == 0 {
			anim.StaticSkeleton = hierarchies
		}
	}
	return anim, nil
}

func decodeChannels(mm *memmap.Context, addr uint32, numChannels int) ([]Channel, error) {
	cur, err := mm.At(addr)
	if err != nil {
		return nil, err
	}
	channels := make([]Channel, numChannels)
	for i := 0; i < numChannels; i++ {
		raw, err := cur.Bytes(8) // first_word:u32, object_index:i32.
		if err != nil {
			break
		}
		firstWord := le32(raw[0:4])
		objectIndex := int32(le32(raw[4:8]))

		ch := Channel{ObjectIndex: objectIndex}
		switch firstWord {
		case 0:
			ch.Kind = ChannelNone
		case 1:
			ch.Kind = ChannelIdentity
		default:
			m, err := DecodeCompressedMatrix(mm, firstWord)
			if err != nil {
				ch.Kind = ChannelNone
			} else {
				ch.Kind = ChannelMatrix
				ch.Matrix = m
			}
		}
		channels[i] = ch
	}
	return channels, nil
}

func decodeHierarchies(mm *memmap.Context, addr uint32, numChannels int) []HierarchyLink {
	if addr == 0 {
		return nil
	}
	cur, err := mm.At(addr)
	if err != nil {
		return nil
	}
	links := make([]HierarchyLink, 0, numChannels)
	for i := 0; i < numChannels; i++ {
		raw, err := cur.Bytes(4)
		if err != nil {
			break
		}
		child := int(le16(raw[0:2]))
		parent := int(le16(raw[2:4]))
		links = append(links, HierarchyLink{Child: child, Parent: parent})
	}
	return links
}

func le16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}
