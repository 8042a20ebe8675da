// Package cursor provides a bounds-checked, forward-only reader over a byte
// slice, used to walk PNG chunk streams.
package cursor

import (
	"encoding/binary"
	"fmt"

	"github.com/ankit-chaubey/formula-metrics/core"
)

// Cursor reads sequentially from an owned byte slice. A failed read leaves
// the position unchanged.
type Cursor struct {
	buf []byte
	pos int
}

// New returns a Cursor positioned at the start of b. The caller must not
// modify b while the cursor is in use.
func New(b []byte) *Cursor { return &Cursor{buf: b} }

// Pos returns the number of bytes consumed so far.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

func (c *Cursor) need(n int) error {
	if n < 0 || c.Remaining() < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			core.ErrOutOfBounds, n, c.pos, c.Remaining())
	}
	return nil
}

// ReadBytes returns the next n bytes. The result aliases the cursor's buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadByte returns the next byte.
func (c *Cursor) ReadByte() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// ReadUint32 reads a big-endian unsigned 32-bit integer.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Skip advances past n bytes.
func (c *Cursor) Skip(n int) error {
	_, err := c.ReadBytes(n)
	return err
}
