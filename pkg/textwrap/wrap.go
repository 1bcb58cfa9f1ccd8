// Package textwrap breaks words into lines that fit a pixel width.
package textwrap

import (
	"strings"

	"golang.org/x/image/font"
)

// Line is one rendered row of words.
type Line []string

// String joins the line's words with single spaces.
func (l Line) String() string {
	return strings.Join(l, " ")
}

// MeasureFunc returns the rendered width of s. It must not return negative values.
type MeasureFunc func(s string) float64

// Wrap packs words greedily into lines whose measured width is strictly less
// than maxWidth. Words are never split or reordered: a single word wider than
// maxWidth is emitted on a line of its own.
func Wrap(words []string, maxWidth float64, measure MeasureFunc) []Line {
	var lines []Line
	var current Line

	for _, word := range words {
		candidate := append(current[:len(current):len(current)], word)
		if measure(candidate.String()) < maxWidth {
			current = candidate
			continue
		}
		if len(current) == 0 {
			// Oversized word on an empty line stays as-is.
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = Line{word}
	}

	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

// WrapString splits text on whitespace and wraps the resulting words.
func WrapString(text string, maxWidth float64, measure MeasureFunc) []Line {
	return Wrap(strings.Fields(text), maxWidth, measure)
}

// Strings renders each line to its space-joined form.
func Strings(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

// FaceMeasure measures the pixel advance of a string drawn with face.
func FaceMeasure(face font.Face) MeasureFunc {
	return func(s string) float64 {
		adv := font.MeasureString(face, s)
		return float64(adv) / 64
	}
}
