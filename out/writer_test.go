// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinner-group/afines-go/box"
	"github.com/dinner-group/afines-go/ensemble"
	"github.com/dinner-group/afines-go/filament"
)

func TestWriteFrameProducesExpectedFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := Open(dir)
	require.NoError(t, err)

	bx := box.New(box.Open, 10, 10)
	f := filament.New(0, [][2]float64{{0, 0}, {1, 0}}, 0.1, 1e-3, 1.0, 10.0, 1)
	net := ensemble.NewNetwork(bx, 1.0, false, false, 0, 0, nil, nil, ensemble.External{}, 1e-3, 1)
	net.AddFilament(f)
	require.NoError(t, net.Step())

	require.NoError(t, w.WriteFrame(net.T, net, 0))
	require.NoError(t, w.Close())

	for _, name := range []string{"actins.txt", "links.txt", "filament_e.txt", "pe.txt", "ke.txt"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
}

func TestReadActinsRoundTripsWrittenFrame(t *testing.T) {
	dir := t.TempDir()
	w, err := Open(dir)
	require.NoError(t, err)

	bx := box.New(box.Open, 10, 10)
	f := filament.New(0, [][2]float64{{1, 2}, {3, 4}}, 0.1, 1e-3, 1.0, 10.0, 1)
	net := ensemble.NewNetwork(bx, 1.0, false, false, 0, 0, nil, nil, ensemble.External{}, 1e-3, 1)
	net.AddFilament(f)
	f.RefreshGeometry(bx)

	require.NoError(t, w.WriteFrame(0, net, 0))
	require.NoError(t, w.Close())

	frames, err := ReadActins(filepath.Join(dir, "actins.txt"))
	require.NoError(t, err)
	require.Len(t, frames, 1)
	require.Len(t, frames[0].Beads, 2)
	assert.Equal(t, 1.0, frames[0].Beads[0].X)
	assert.Equal(t, 2.0, frames[0].Beads[0].Y)
}

func TestApplyRestartOverwritesBeadPositions(t *testing.T) {
	bx := box.New(box.Open, 10, 10)
	f := filament.New(0, [][2]float64{{0, 0}, {1, 0}}, 0.1, 1e-3, 1.0, 10.0, 1)
	net := &ensemble.Network{Box: bx}
	net.AddFilament(f)

	frame := ActinsFrame{T: 1, Beads: []BeadRecord{
		{X: 5, Y: 6, R: 0.05, FilIdx: 0},
		{X: 7, Y: 8, R: 0.05, FilIdx: 0},
	}}
	require.NoError(t, ApplyRestart(net, frame))
	assert.Equal(t, 5.0, f.Beads[0].X)
	assert.Equal(t, 8.0, f.Beads[1].Y)
}
