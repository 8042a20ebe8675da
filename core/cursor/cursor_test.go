package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankit-chaubey/formula-metrics/core"
)

func TestCursor_ReadUint32(t *testing.T) {
	c := New([]byte{0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x01, 0x2C})

	v, err := c.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x49484452), v)

	v, err = c.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(300), v)
	assert.Equal(t, 8, c.Pos())
	assert.Equal(t, 0, c.Remaining())
}

func TestCursor_ReadByteAndBytes(t *testing.T) {
	c := New([]byte{1, 2, 3, 4, 5})

	b, err := c.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(1), b)

	span, err := c.ReadBytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 3, 4}, span)
	assert.Equal(t, 1, c.Remaining())
}

func TestCursor_OutOfBounds(t *testing.T) {
	c := New([]byte{1, 2, 3})

	_, err := c.ReadUint32()
	require.ErrorIs(t, err, core.ErrOutOfBounds)
	assert.Equal(t, 0, c.Pos(), "failed read must not advance")

	require.NoError(t, c.Skip(3))
	_, err = c.ReadByte()
	assert.ErrorIs(t, err, core.ErrOutOfBounds)

	_, err = c.ReadBytes(-1)
	assert.ErrorIs(t, err, core.ErrOutOfBounds)
}

func TestCursor_ZeroLengthRead(t *testing.T) {
	c := New(nil)
	b, err := c.ReadBytes(0)
	require.NoError(t, err)
	assert.Empty(t, b)
}
