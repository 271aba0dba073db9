package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// eighths of a cell, left to right
var levels = []string{"", "▏", "▎", "▍", "▌", "▋", "▊", "▉", "█"}

type Bar struct {
	Label string
	Value float64
	Style lipgloss.Style
}

// Bars draws one horizontal bar per item, scaled to the largest value.
type Bars struct {
	Items      []Bar
	Width      int // cells available to the longest bar
	LabelWidth int
	Unit       string
}

func NewBars(width, labelWidth int, unit string) Bars {
	return Bars{Width: width, LabelWidth: labelWidth, Unit: unit}
}

func (b *Bars) Add(label string, value float64, style lipgloss.Style) {
	b.Items = append(b.Items, Bar{Label: label, Value: value, Style: style})
}

func (b Bars) Max() float64 {
	max := 0.0
	for _, it := range b.Items {
		if it.Value > max {
			max = it.Value
		}
	}
	return max
}

func (b Bars) View() string {
	if b.Width <= 0 || len(b.Items) == 0 {
		return ""
	}

	max := b.Max()
	out := strings.Builder{}
	for i, it := range b.Items {
		if i > 0 {
			out.WriteString("\n")
		}
		label := it.Label
		if b.LabelWidth > 0 && len(label) > b.LabelWidth {
			label = label[:b.LabelWidth]
		}
		out.WriteString(fmt.Sprintf("%-*s ", b.LabelWidth, label))
		out.WriteString(it.Style.Render(Segment(it.Value, max, b.Width)))
		out.WriteString(fmt.Sprintf(" %.1f %s", it.Value, b.Unit))
	}
	return out.String()
}

// Segment renders value/max of width cells using eighth-cell blocks.
func Segment(value, max float64, width int) string {
	if max <= 0 || value <= 0 || width <= 0 {
		return ""
	}
	if value > max {
		value = max
	}
	eighths := int(value / max * float64(width*8))
	full, rem := eighths/8, eighths%8
	return strings.Repeat(levels[8], full) + levels[rem]
}
