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

package main

import (
	"bytes"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/undersampled/hypearchive/internal/audio"
	"github.com/undersampled/hypearchive/lib/containers"
)

func doAudio(args []string) error {
	fs := flag.NewFlagSet("audio", flag.ExitOnError)
	output := fs.String("output", OutputDefault, OutputUsage)
	fs.Parse(args)
	if fs.NArg() < 1 {
		return fmt.Errorf("audio: missing <apm|bnm>")
	}

	path := fs.Arg(0)
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*output, 0o755); err != nil {
		return err
	}

	switch strings.ToUpper(filepath.Ext(path)) {
	case ".APM":
		return extractAPM(raw, *output, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	case ".BNM":
		return extractBNM(raw, *output)
	default:
		return fmt.Errorf("audio: unrecognized extension for %s (want .apm or .bnm)", path)
	}
}

func extractAPM(raw []byte, output, name string) error {
	f, err := containers.ParseAPM(raw)
	if err != nil {
		return err
	}
	samples := f.DecodePCM16()

	var buf bytes.Buffer
	if err := audio.WritePCM16(&buf, f.Header.SampleRate, f.Header.Channels, samples); err != nil {
		return err
	}
	return writeFile(output, name+".wav", buf.Bytes())
}

func extractBNM(raw []byte, output string) error {
	bank, err := containers.ParseBNM(raw)
	if err != nil {
		return err
	}
	for i, e := range bank.Entries {
		off := bank.Header.ResolveOffset(e)
		end := off + e.StreamSize
		if end > uint32(len(raw)) {
			fmt.Fprintf(os.Stderr, "audio: skipping %s: stream out of range\n", e.Name)
			continue
		}
		streamBytes := raw[off:end]

		name := e.Name
		if name == "" {
			name = fmt.Sprintf("entry_%d", i)
		}

		var samples []int16
		switch e.StreamType {
		case containers.StreamTypeAPM:
			apm, err := containers.ParseAPM(streamBytes)
			if err != nil {
				fmt.Fprintf(os.Stderr, "audio: skipping %s: %v\n", name, err)
				continue
			}
			samples = apm.DecodePCM16()
		case containers.StreamTypePCM:
			samples = pcmBytesToSamples(streamBytes)
		default:
			fmt.Fprintf(os.Stderr, "audio: skipping %s: unsupported stream type %d\n", name, e.StreamType)
			continue
		}

		var buf bytes.Buffer
		if err := audio.WritePCM16(&buf, e.SampleRate, e.Channels, samples); err != nil {
			return err
		}
		if err := writeFile(output, name+".wav", buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func pcmBytesToSamples(raw []byte) []int16 {
	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
	}
	return samples
}
