// Package histogram counts characters in text and renders the counts as
// a percentage bar chart.
package histogram

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rail44/charfreq/internal/counter"
)

// MinPercent is the share of the total below which a character is left
// out of the report.
const MinPercent = 1.0

// BarGlyph is repeated once per rounded percentage point.
const BarGlyph = "#"

// Entry is one row of the report.
type Entry struct {
	Char    rune
	Count   int
	Percent float64
}

// Histogram accumulates character counts across any number of Add calls.
// It is not safe for concurrent use.
type Histogram struct {
	letterCounts *counter.Counter[rune]
	totalLetters int
	upper        cases.Caser
}

// New creates an empty histogram
func New() *Histogram {
	return &Histogram{
		letterCounts: counter.New[rune](),
		upper:        cases.Upper(language.Und),
	}
}

// Add strips whitespace from text, maps it to upper case and counts
// every remaining code point. Invalid UTF-8 is counted as U+FFFD.
func (h *Histogram) Add(text string) {
	text = h.upper.String(strings.Map(dropSpace, text))

	for _, r := range text {
		h.letterCounts.Inc(r)
		h.totalLetters++
	}
}

// dropSpace removes Unicode White_Space and the byte order mark.
func dropSpace(r rune) rune {
	if unicode.IsSpace(r) || r == '\uFEFF' {
		return -1
	}
	return r
}

// Total returns the number of characters counted so far
func (h *Histogram) Total() int {
	return h.totalLetters
}

// Count returns how often r has been seen. r must already be upper case
// to match anything.
func (h *Histogram) Count(r rune) int {
	return h.letterCounts.Get(r)
}

// Len returns the number of distinct characters seen
func (h *Histogram) Len() int {
	return h.letterCounts.Len()
}

// Entries returns the report rows: most frequent first, ties in code
// point order, and without characters under MinPercent.
func (h *Histogram) Entries() []Entry {
	if h.totalLetters == 0 {
		return nil
	}

	entries := make([]Entry, 0, h.letterCounts.Len())
	for char, count := range h.letterCounts.All() {
		entries = append(entries, Entry{Char: char, Count: count})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Char, b.Char)
	})

	kept := entries[:0]
	for _, e := range entries {
		e.Percent = float64(e.Count) / float64(h.totalLetters) * 100
		if e.Percent < MinPercent {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// Bar returns the bar drawn for a percentage.
func Bar(percent float64) string {
	return strings.Repeat(BarGlyph, BarWidth(percent))
}

// BarWidth rounds percent to the nearest integer, halves rounding up.
func BarWidth(percent float64) int {
	return int(math.Floor(percent + 0.5))
}

// FormatPercent renders percent with two decimals, rounding the exact
// binary value half up: 3.125 becomes "3.13" where %.2f gives "3.12".
func FormatPercent(percent float64) string {
	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		return strconv.FormatFloat(percent, 'f', 2, 64)
	}

	// Every finite float64 has a terminating decimal expansion; 1100
	// digits cover the smallest subnormal.
	exact := strconv.FormatFloat(math.Abs(percent), 'f', 1100, 64)
	dot := strings.IndexByte(exact, '.')

	cents, err := strconv.ParseInt(exact[:dot]+exact[dot+1:dot+3], 10, 64)
	if err != nil {
		return strconv.FormatFloat(percent, 'f', 2, 64)
	}
	if exact[dot+3] >= '5' {
		cents++
	}

	sign := ""
	if percent < 0 && cents != 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// FormatEntry renders a single report line without a newline
func FormatEntry(e Entry) string {
	return fmt.Sprintf("%c: %s %s%%", e.Char, Bar(e.Percent), FormatPercent(e.Percent))
}

// Format renders the report, one line per entry joined by newlines with
// no trailing newline. An empty histogram renders as "".
func (h *Histogram) Format() string {
	entries := h.Entries()

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = FormatEntry(e)
	}
	return strings.Join(lines, "\n")
}

// String is the same as Format
func (h *Histogram) String() string {
	return h.Format()
}
