// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quadrants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinner-group/afines-go/box"
)

func TestGetAttachListFindsNearbySpring(t *testing.T) {
	bx := box.New(box.Periodic, 10, 10)
	g := New(bx, 1.0, false, true)
	id := SpringId{FilIdx: 0, SpringIdx: 0}
	g.AddSpring(id, -0.5, 0, 0.5, 0)

	list := g.GetAttachList(0, 0)
	require.Contains(t, list, id)
}

func TestDisabledGridReturnsFlatList(t *testing.T) {
	bx := box.New(box.Periodic, 10, 10)
	g := New(bx, 1.0, true, false)
	id := SpringId{FilIdx: 2, SpringIdx: 3}
	g.AddSpring(id, 0, 0, 1, 1)

	list := g.GetAttachList(4.9, -4.9)
	assert.Equal(t, []SpringId{id}, list)
}

func TestLeesEdwardsWrapAppearsInBothYCells(t *testing.T) {
	bx := box.New(box.LeesEdwards, 10, 10)
	bx.DrX = 3.0
	g := New(bx, 1.0, false, true)
	id := SpringId{FilIdx: 0, SpringIdx: 0}
	// a spring straddling the top boundary should populate a cell near y=+5
	// and (after the x-shift) a cell near y=-5
	g.AddSpring(id, -0.2, 4.8, 0.2, 5.2)

	top := g.GetAttachList(0, 4.9)
	bottom := g.GetAttachList(-3.0, -4.9)
	assert.Contains(t, top, id)
	assert.Contains(t, bottom, id)
}

func TestCheckDupPanicsOnDuplicateInsert(t *testing.T) {
	bx := box.New(box.Open, 10, 10)
	g := New(bx, 1.0, false, true)
	id := SpringId{FilIdx: 0, SpringIdx: 0}
	assert.Panics(t, func() {
		g.insert(0, 0, id)
		g.insert(0, 0, id)
	})
}
