// Package text measures text for intrinsic component sizing. It wraps a
// golang.org/x/image/font face; no glyphs are rasterized here.
package text

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-tabletop/tabletop/pkg/geometry"
)

// Line represents a single laid-out line of text.
type Line struct {
	Text  string
	Width float64
}

// Layout contains measured text metrics.
type Layout struct {
	Text       string
	Size       geometry.Size
	Ascent     float64
	Descent    float64
	LineHeight float64
	Lines      []Line
}

// Measurer measures strings against a fixed font face.
type Measurer struct {
	face       font.Face
	ascent     float64
	descent    float64
	lineHeight float64
}

var (
	defaultMeasurer *Measurer
	defaultOnce     sync.Once
)

// Default returns the shared measurer backed by the bundled fixed-size
// face.
func Default() *Measurer {
	defaultOnce.Do(func() {
		defaultMeasurer = NewMeasurer(basicfont.Face7x13)
	})
	return defaultMeasurer
}

// NewMeasurer creates a measurer for face. A nil face selects the bundled
// fixed-size face.
func NewMeasurer(face font.Face) *Measurer {
	if face == nil {
		face = basicfont.Face7x13
	}
	metrics := face.Metrics()
	ascent := fixedToFloat(metrics.Ascent)
	descent := fixedToFloat(metrics.Descent)
	lineHeight := fixedToFloat(metrics.Height)
	if lineHeight == 0 {
		lineHeight = ascent + descent
	}
	return &Measurer{
		face:       face,
		ascent:     ascent,
		descent:    descent,
		lineHeight: lineHeight,
	}
}

// LineHeight returns the face's inter-line height in pixels.
func (m *Measurer) LineHeight() float64 {
	return m.lineHeight
}

// Measure returns the size of text laid out without a width constraint.
func (m *Measurer) Measure(text string) geometry.Size {
	return m.Layout(text).Size
}

// Layout measures text without a width constraint. Newlines split lines;
// no wrapping occurs.
func (m *Measurer) Layout(text string) *Layout {
	return m.LayoutWithWidth(text, 0)
}

// LayoutWithWidth measures text wrapped to maxWidth pixels. A maxWidth of
// zero disables wrapping.
func (m *Measurer) LayoutWithWidth(text string, maxWidth float64) *Layout {
	lines := layoutLines(text, maxWidth, m.measureString)
	maxLineWidth := 0.0
	for _, line := range lines {
		if line.Width > maxLineWidth {
			maxLineWidth = line.Width
		}
	}
	return &Layout{
		Text:       text,
		Size:       geometry.Size{Width: maxLineWidth, Height: m.lineHeight * float64(len(lines))},
		Ascent:     m.ascent,
		Descent:    m.descent,
		LineHeight: m.lineHeight,
		Lines:      lines,
	}
}

func (m *Measurer) measureString(s string) float64 {
	return fixedToFloat(font.MeasureString(m.face, s))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func layoutLines(text string, maxWidth float64, measure func(string) float64) []Line {
	if maxWidth < 0 {
		maxWidth = 0
	}
	paragraphs := strings.Split(text, "\n")
	lines := make([]Line, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		if paragraph == "" {
			lines = append(lines, Line{})
			continue
		}
		if maxWidth == 0 {
			lines = append(lines, Line{Text: paragraph, Width: measure(paragraph)})
			continue
		}
		for _, line := range wrapParagraph(paragraph, maxWidth, measure) {
			lines = append(lines, Line{Text: line, Width: measure(line)})
		}
	}
	if len(lines) == 0 {
		lines = []Line{{}}
	}
	return lines
}

// wrapParagraph breaks a single paragraph into lines no wider than
// maxWidth, preferring whitespace break points and falling back to
// mid-word breaks. A line always holds at least one rune so layout makes
// progress on over-narrow constraints.
func wrapParagraph(text string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	start := 0
	for start < len(text) {
		lastBreak := -1
		lastFit := -1
		for i := start; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			next := i + size
			if measure(text[start:next]) > maxWidth {
				break
			}
			lastFit = next
			if unicode.IsSpace(r) {
				lastBreak = next
			}
			i = next
		}
		if lastFit == -1 {
			_, size := utf8.DecodeRuneInString(text[start:])
			lastFit = start + size
		}
		cut := lastFit
		if lastFit < len(text) && lastBreak > start && lastBreak < lastFit {
			cut = lastBreak
		}
		line := strings.TrimRightFunc(text[start:cut], unicode.IsSpace)
		lines = append(lines, line)
		start = cut
		for start < len(text) {
			r, size := utf8.DecodeRuneInString(text[start:])
			if !unicode.IsSpace(r) {
				break
			}
			start += size
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
