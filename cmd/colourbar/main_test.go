package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/couchcryptid/design-value-explorer/internal/colorscale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) ([]byte, error) {
	t.Helper()
	var buf bytes.Buffer
	err := newApp(&buf).Run(append([]string{"colourbar"}, args...))
	return buf.Bytes(), err
}

func TestBoundaries(t *testing.T) {
	out, err := runApp(t, "boundaries", "--min", "0", "--max", "10", "--num-values", "6", "--target", "3")
	require.NoError(t, err)

	var got []float64
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, []float64{-1, 1, 3, 5, 7, 9, 11}, got)
}

func TestBuild(t *testing.T) {
	out, err := runApp(t, "build", "--min", "0.2", "--max", "12.5", "--bins", "10", "--scale", "log", "--colour-map", "Blues")
	require.NoError(t, err)

	var cb colorscale.Colourbar
	require.NoError(t, json.Unmarshal(out, &cb))
	assert.Equal(t, colorscale.Logarithmic, cb.Mode)
	assert.Len(t, cb.Colours, 10)
	assert.Nil(t, cb.Target)
}

func TestBuild_RejectsBadScale(t *testing.T) {
	_, err := runApp(t, "build", "--min", "0", "--max", "1", "--scale", "cubic")
	require.ErrorIs(t, err, colorscale.ErrConfiguration)
}

func TestBuild_RequiresRange(t *testing.T) {
	_, err := runApp(t, "build", "--min", "0")
	require.Error(t, err)
}

func TestTicks(t *testing.T) {
	out, err := runApp(t, "ticks", "--min", "0", "--max", "10", "--bins", "10", "--max-ticks", "6", "--target", "3")
	require.NoError(t, err)

	var got []float64
	require.NoError(t, json.Unmarshal(out, &got))
	assert.LessOrEqual(t, len(got), 6)
	assert.Contains(t, got, 3.0)
}

func TestColours(t *testing.T) {
	out, err := runApp(t, "colours", "--colour-map", "magma", "--n", "4")
	require.NoError(t, err)

	var got []string
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Len(t, got, 4)

	out, err = runApp(t, "colours", "--list")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, colorscale.ColourMapNames(), got)

	_, err = runApp(t, "colours", "--colour-map", "jet")
	require.ErrorIs(t, err, colorscale.ErrUnknownColourMap)
}

func TestSigFigs(t *testing.T) {
	out, err := runApp(t, "sigfigs", "--n", "2", "0.012345", "98765")
	require.NoError(t, err)

	var got []float64
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, []float64{0.012, 99000}, got)

	_, err = runApp(t, "sigfigs")
	require.Error(t, err)
	_, err = runApp(t, "sigfigs", "abc")
	require.Error(t, err)
}
