package checksum

import (
	"fmt"
	"hash/fnv"
	"io"
)

// Calculate computes the FNV-1a checksum of data as an 8-character hex string
func Calculate(data []byte) string {
	h := fnv.New32a()
	h.Write(data)
	return fmt.Sprintf("%08x", h.Sum32())
}

// Reader wraps an io.Reader and hashes everything read through it, so a
// file can be counted and fingerprinted in one pass.
type Reader struct {
	r io.Reader
	h interface {
		io.Writer
		Sum32() uint32
	}
}

// NewReader creates a hashing reader around r
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, h: fnv.New32a()}
}

func (c *Reader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.h.Write(p[:n])
	return n, err
}

// Sum returns the checksum of the bytes read so far
func (c *Reader) Sum() string {
	return fmt.Sprintf("%08x", c.h.Sum32())
}
