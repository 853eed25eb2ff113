package geom

import (
	"testing"

	"github.com/gekko3d/painter/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripIndices2x2(t *testing.T) {
	assert.Equal(t, []uint32{0, 2, 1, 3, 3}, StripIndices(2, 2))
}

func TestStripIndices(t *testing.T) {
	cases := []struct{ nx, ny int }{{2, 3}, {3, 3}, {30, 10}, {5, 2}}
	for _, tc := range cases {
		idx := StripIndices(tc.nx, tc.ny)
		assert.Len(t, idx, 1+2*(tc.nx-1)*(tc.ny-1)+2*(tc.ny-1))
		for _, i := range idx {
			if int(i) >= tc.nx*tc.ny {
				t.Fatalf("%dx%d: index %d out of range", tc.nx, tc.ny, i)
			}
		}
		// Every non-degenerate triangle spans exactly two adjacent rows.
		for k := 2; k < len(idx); k++ {
			a, b, c := idx[k-2], idx[k-1], idx[k]
			if a == b || b == c || a == c {
				continue
			}
			rows := map[int]bool{int(a) / tc.nx: true, int(b) / tc.nx: true, int(c) / tc.nx: true}
			assert.Len(t, rows, 2, "%dx%d triangle %v %v %v", tc.nx, tc.ny, a, b, c)
		}
	}
	assert.Nil(t, StripIndices(1, 5))
}

func TestHeightMap(t *testing.T) {
	s, err := buildHeightMap(HeightMapParams{
		NodesX:  3,
		NodesY:  2,
		Spacing: 2,
		Heights: []float32{0, 1, 2, -3, 4, 5},
		Filled:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, core.TriangleStrip, s.Geometry.Primitive)
	assert.Equal(t, [3]float32{2, 2, 4}, s.Geometry.Vertices[4].Pos)
	assert.Equal(t, float32(-3), s.Uniforms["height_min"])
	assert.Equal(t, float32(5), s.Uniforms["height_max"])
	assert.True(t, s.Filled)
	assert.Equal(t, StripIndices(3, 2), s.Geometry.Indices)
}

func TestHeightMapInvalid(t *testing.T) {
	_, err := buildHeightMap(HeightMapParams{NodesX: 1, NodesY: 4, Heights: make([]float32, 4)})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = buildHeightMap(HeightMapParams{NodesX: 2, NodesY: 2, Heights: make([]float32, 3)})
	assert.ErrorIs(t, err, ErrInvalidParams)
}
