package mrr

import (
	"encoding/binary"
	"math"
)

// span reads a length prefix and takes len*width bytes for the elements.
// The multiplication is checked before anything is taken or allocated.
func (c *cursor) span(width int) (int, []byte, error) {
	n, err := c.readLength()
	if err != nil {
		return 0, nil, err
	}
	if n > uint64(math.MaxInt/width) {
		return 0, nil, ErrLengthOverflow
	}
	b, err := c.take(int(n) * width)
	if err != nil {
		return 0, nil, err
	}
	return int(n), b, nil
}

func (c *cursor) readBytes() ([]byte, error) {
	_, b, err := c.span(1)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (c *cursor) readUint32s() ([]uint32, error) {
	n, b, err := c.span(4)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return out, nil
}

func (c *cursor) readInt32s() ([]int32, error) {
	n, b, err := c.span(4)
	if err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out, nil
}

func (c *cursor) readFloat32s() ([]float32, error) {
	n, b, err := c.span(4)
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out, nil
}
