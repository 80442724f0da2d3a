package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gofe/fe"
)

func TestInputParameters(t *testing.T) {
	fileInput := []byte(`
Title: Test Case
Dimension: 2
Elements:
  - Name: stokes
    Packing: interleaved
    Bases:
      - Element: FE_Q(2)
        Multiplicity: 2
      - Element: FE_DGQ(1)
  - Name: flux
    Bases:
      - Element: FE_RaviartThomas(0)
  - Name: blocked
    Packing: blocked
    Bases:
      - Element: FE_Q<2>(1)
        Multiplicity: 3
`)
	var input InputParameters
	require.NoError(t, input.Parse(fileInput))
	assert.Equal(t, "Test Case", input.Title)
	assert.Equal(t, 2, input.Dimension)
	assert.Equal(t, DefaultTolerance, input.Tolerance)
	require.Len(t, input.Elements, 3)
	assert.Equal(t, 1, input.Elements[0].Bases[1].Multiplicity)
	assert.Equal(t, "[FE_Q(2)^2-FE_DGQ(1)] interleaved", input.Elements[0].String())
	input.Print()

	els, err := input.BuildAll()
	require.NoError(t, err)
	assert.Equal(t, "FESystem<2>[FE_Q<2>(2)^2-FE_DGQ<2>(1)]", els[0].Name())
	assert.Equal(t, "FE_RaviartThomas<2>(0)", els[1].Name())
	sys, ok := els[2].(*fe.FESystem)
	require.True(t, ok)
	assert.Equal(t, fe.PackBlocked, sys.Packing())
	assert.Equal(t, 3, sys.NComponents())

	bad := ElementParameters{Name: "bad", Packing: "striped", Bases: []BaseParameters{{"FE_Q(1)", 2}}}
	_, err = bad.Build(2)
	assert.ErrorIs(t, err, fe.ErrInvalidElementData)
	_, err = ElementParameters{Name: "empty"}.Build(2)
	assert.ErrorIs(t, err, fe.ErrInvalidElementData)
	_, err = ElementParameters{Bases: []BaseParameters{{"FE_Q<3>(1)", 1}}}.Build(2)
	assert.ErrorIs(t, err, fe.ErrDimensionMismatch)
}
