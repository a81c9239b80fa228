// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, body string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "network.cfg")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestParseFileAcceptsKeyEqualsValueAndKeySpaceValue(t *testing.T) {
	path := writeTempConfig(t, "bnd_cnd=PERIODIC\nnpolymer 5\n# a comment\n\ndt 0.001\n")
	cfg, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "PERIODIC", cfg.BndCnd)
	assert.Equal(t, 5, cfg.Npolymer)
	assert.InDelta(t, 0.001, cfg.Dt, 1e-12)
}

func TestParseFileRejectsUnknownKey(t *testing.T) {
	path := writeTempConfig(t, "not_a_real_option 1\n")
	_, err := ParseFile(path)
	assert.Error(t, err)
}

func TestParseFileRejectsMalformedValue(t *testing.T) {
	path := writeTempConfig(t, "dt not_a_number\n")
	_, err := ParseFile(path)
	assert.Error(t, err)
}

func TestBoundaryKindRoundTrips(t *testing.T) {
	cfg := Default()
	cfg.BndCnd = "LEES-EDWARDS"
	kind, err := cfg.BoundaryKind()
	require.NoError(t, err)
	assert.Equal(t, "LEES_EDWARDS", kind.String())
}
