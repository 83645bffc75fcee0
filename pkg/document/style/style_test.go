package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ResolvesAllNames(t *testing.T) {
	reg := Default()

	for _, name := range []Name{Title, H1, H2, Normal, Muted, Cell, CellHeader, Link, Bullet} {
		t.Run(string(name), func(t *testing.T) {
			s, err := reg.Resolve(name)
			require.NoError(t, err)
			assert.Equal(t, name, s.Name)
			assert.Equal(t, "Helvetica", s.Font)
			assert.Greater(t, s.Leading, s.Size)
		})
	}
	assert.Len(t, reg.Names(), 9)
}

func TestDefault_UnknownName(t *testing.T) {
	_, err := Default().Resolve("caption")
	assert.ErrorIs(t, err, ErrUnknownStyle)
	assert.Panics(t, func() { Default().MustResolve("caption") })
}

func TestDefault_Attributes(t *testing.T) {
	reg := Default()

	header := reg.MustResolve(CellHeader)
	assert.True(t, header.Bold)
	assert.Equal(t, "B", header.FontStyle())
	assert.Equal(t, WrapChar, header.Wrap)

	cell := reg.MustResolve(Cell)
	assert.False(t, cell.Bold)
	assert.Equal(t, "", cell.FontStyle())
	assert.Equal(t, 9.5, cell.Size)

	assert.Equal(t, Color{0x55, 0x55, 0x55}, reg.MustResolve(Muted).Color)
	assert.Equal(t, Blue, reg.MustResolve(Link).Color)
	assert.Equal(t, 14.0, reg.MustResolve(Bullet).LeftIndent)
}

func TestHex(t *testing.T) {
	assert.Equal(t, Color{0xE6, 0xE6, 0xE6}, Hex("#E6E6E6"))
	assert.Panics(t, func() { Hex("grey") })
}
