package stream

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/rail44/charfreq/internal/histogram"
)

type recorder struct {
	chunks []string
}

func (r *recorder) Add(text string) {
	r.chunks = append(r.chunks, text)
}

func TestFeedKeepsCharactersWhole(t *testing.T) {
	text := "héllo 日本語 wörld ß"
	rec := &recorder{}

	// OneByteReader forces every multi-byte character across reads.
	n, err := Feed(context.Background(), iotest.OneByteReader(strings.NewReader(text)), rec, Options{ChunkSize: 2})
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if n != int64(len(text)) {
		t.Errorf("Expected %d bytes, got %d", len(text), n)
	}
	if got := strings.Join(rec.chunks, ""); got != text {
		t.Errorf("Expected %q, got %q", text, got)
	}
	for _, c := range rec.chunks {
		if strings.ContainsRune(c, '\uFFFD') {
			t.Errorf("Chunk %q contains a replacement character", c)
		}
	}
}

func TestFeedMatchesSingleAdd(t *testing.T) {
	text := strings.Repeat("Ünïcödé text, 12345 ", 50)

	whole := histogram.New()
	whole.Add(text)

	streamed := histogram.New()
	if _, err := Feed(context.Background(), iotest.HalfReader(strings.NewReader(text)), streamed, Options{ChunkSize: 7}); err != nil {
		t.Fatalf("Feed failed: %v", err)
	}

	if whole.Format() != streamed.Format() {
		t.Errorf("Expected identical reports, got\n%s\nand\n%s", whole.Format(), streamed.Format())
	}
	if whole.Total() != streamed.Total() {
		t.Errorf("Expected total %d, got %d", whole.Total(), streamed.Total())
	}
}

func TestFeedTruncatedSequenceAtEOF(t *testing.T) {
	rec := &recorder{}
	// First two bytes of a three-byte character.
	if _, err := Feed(context.Background(), strings.NewReader("a\xe6\x97"), rec, Options{}); err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if got := strings.Join(rec.chunks, ""); got != "a\xe6\x97" {
		t.Errorf("Expected raw bytes to be flushed, got %q", got)
	}
}

func TestFeedEmpty(t *testing.T) {
	rec := &recorder{}
	n, err := Feed(context.Background(), strings.NewReader(""), rec, Options{})
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if n != 0 || len(rec.chunks) != 0 {
		t.Errorf("Expected nothing, got n=%d chunks=%v", n, rec.chunks)
	}
}

func TestFeedReadError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("abc"), iotest.ErrReader(boom))
	h := histogram.New()

	_, err := Feed(context.Background(), r, h, Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected wrapped read error, got %v", err)
	}
	if h.Total() != 3 {
		t.Errorf("Expected chunks before the failure to be kept, total = %d", h.Total())
	}
}

func TestFeedCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &recorder{}
	_, err := Feed(ctx, strings.NewReader("abc"), rec, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if len(rec.chunks) != 0 {
		t.Errorf("Expected no chunks, got %v", rec.chunks)
	}
}

func TestCompletePrefix(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "abc", 3},
		{"complete multibyte", "a日", 4},
		{"cut after lead byte", "a\xe6", 1},
		{"cut after two bytes", "a\xe6\x97", 1},
		{"stray continuation", "a\x97", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := completePrefix([]byte(tt.in)); got != tt.want {
				t.Errorf("completePrefix(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
