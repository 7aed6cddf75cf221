package mrr

// cursor is a forward-only reader over an in-memory buffer.
// take and peek are the only places that check bounds.
type cursor struct {
	data []byte
	off  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

// take returns the next n bytes and advances past them.
// The returned slice aliases the buffer; callers copy what they keep.
func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || n > len(c.data)-c.off {
		return nil, ErrUnexpectedEOF
	}
	b := c.data[c.off : c.off+n : c.off+n]
	c.off += n
	return b, nil
}

// peek is take without advancing.
func (c *cursor) peek(n int) ([]byte, error) {
	if n < 0 || n > len(c.data)-c.off {
		return nil, ErrUnexpectedEOF
	}
	return c.data[c.off : c.off+n : c.off+n], nil
}

func (c *cursor) remaining() int {
	return len(c.data) - c.off
}

func (c *cursor) offset() int {
	return c.off
}
