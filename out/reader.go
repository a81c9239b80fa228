// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/io"

	"github.com/dinner-group/afines-go/ensemble"
	"github.com/dinner-group/afines-go/simerr"
)

// BeadRecord is one parsed line of actins.txt
type BeadRecord struct {
	X, Y, R float64
	FilIdx  int
}

// ActinsFrame is one parsed frame of actins.txt
type ActinsFrame struct {
	T     float64
	Beads []BeadRecord
}

// ReadActins parses every frame of an actins.txt file, per spec.md §6's
// format: a "t = <time>  N = <nbeads>" header line followed by N
// "x y r fil_idx" lines.
func ReadActins(path string) ([]ActinsFrame, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, simerr.New(simerr.IOError, -1, io.Sf("cannot open %q: %v", path, err))
	}
	defer fh.Close()

	var frames []ActinsFrame
	scanner := bufio.NewScanner(fh)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		t, n, err := parseFrameHeader(line)
		if err != nil {
			return nil, simerr.New(simerr.IOError, -1, io.Sf("%s: %v", path, err))
		}
		frame := ActinsFrame{T: t, Beads: make([]BeadRecord, 0, n)}
		for i := 0; i < n; i++ {
			if !scanner.Scan() {
				return nil, simerr.New(simerr.IOError, -1, io.Sf("%s: truncated frame at t=%g", path, t))
			}
			fields := strings.Fields(scanner.Text())
			if len(fields) != 4 {
				return nil, simerr.New(simerr.IOError, -1, io.Sf("%s: malformed bead line %q", path, scanner.Text()))
			}
			x, _ := strconv.ParseFloat(fields[0], 64)
			y, _ := strconv.ParseFloat(fields[1], 64)
			r, _ := strconv.ParseFloat(fields[2], 64)
			fi, _ := strconv.Atoi(fields[3])
			frame.Beads = append(frame.Beads, BeadRecord{X: x, Y: y, R: r, FilIdx: fi})
		}
		frames = append(frames, frame)
	}
	if err := scanner.Err(); err != nil {
		return nil, simerr.New(simerr.IOError, -1, io.Sf("reading %q: %v", path, err))
	}
	return frames, nil
}

// parseFrameHeader parses "t = <time>  N = <n>"
func parseFrameHeader(line string) (t float64, n int, err error) {
	parts := strings.Split(line, "N")
	if len(parts) != 2 {
		return 0, 0, io.Sf("malformed frame header %q", line)
	}
	tPart := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(parts[0]), "t"))
	tPart = strings.TrimSpace(strings.TrimPrefix(tPart, "="))
	nPart := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(parts[1]), "="))
	t, err = strconv.ParseFloat(tPart, 64)
	if err != nil {
		return 0, 0, io.Sf("malformed frame time in %q: %v", line, err)
	}
	n, err = strconv.Atoi(nPart)
	if err != nil {
		return 0, 0, io.Sf("malformed frame count in %q: %v", line, err)
	}
	return t, n, nil
}

// ApplyRestart overwrites every bead position in net's filaments (assumed
// already built with the right bead counts per filament, e.g. via
// inp.Build) with the positions recorded in frame, matched by FilIdx and
// per-filament order (spec.md §9 restart note).
func ApplyRestart(net *ensemble.Network, frame ActinsFrame) error {
	byFil := make(map[int][]BeadRecord)
	for _, b := range frame.Beads {
		byFil[b.FilIdx] = append(byFil[b.FilIdx], b)
	}
	for fi, f := range net.Filaments {
		recs, ok := byFil[fi]
		if !ok || len(recs) != len(f.Beads) {
			return simerr.New(simerr.IOError, -1, io.Sf("restart frame has %d beads for filament %d, want %d", len(recs), fi, len(f.Beads)))
		}
		for i, b := range f.Beads {
			b.X, b.Y = recs[i].X, recs[i].Y
		}
	}
	return nil
}
