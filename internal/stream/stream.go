// Package stream drives text from an io.Reader into a consumer chunk by
// chunk without splitting UTF-8 sequences.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// DefaultChunkSize is the read size used when Options.ChunkSize is unset.
const DefaultChunkSize = 64 * 1024

// Sink receives decoded text chunks in source order.
type Sink interface {
	Add(text string)
}

// Options tunes Feed
type Options struct {
	ChunkSize int
}

func (o Options) chunkSize() int {
	if o.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return o.ChunkSize
}

// Feed reads r until EOF and hands every chunk to sink. A multi-byte
// character cut off at the end of a read is held back and prefixed to the
// next chunk. It returns the number of bytes read. Chunks already passed
// to sink stay there when Feed fails or ctx is cancelled.
func Feed(ctx context.Context, r io.Reader, sink Sink, opts Options) (int64, error) {
	buf := make([]byte, opts.chunkSize())
	var pending []byte
	var total int64

	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		n, err := r.Read(buf)
		if n > 0 {
			total += int64(n)
			pending = append(pending, buf[:n]...)

			cut := completePrefix(pending)
			if cut > 0 {
				sink.Add(string(pending[:cut]))
				pending = append(pending[:0], pending[cut:]...)
			}
		}

		if errors.Is(err, io.EOF) {
			// A truncated sequence at EOF is decoded as U+FFFD by the sink.
			if len(pending) > 0 {
				sink.Add(string(pending))
			}
			return total, nil
		}
		if err != nil {
			return total, fmt.Errorf("failed to read input: %w", err)
		}
	}
}

// completePrefix returns the length of the longest prefix of b that does
// not end inside an unfinished UTF-8 sequence.
func completePrefix(b []byte) int {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(b[i]) {
			continue
		}
		if utf8.FullRune(b[i:]) {
			return len(b)
		}
		return i
	}
	return len(b)
}
