// Package wordcloud places ranked words on a fixed canvas. It consumes a
// WordFrequencyTable and knows nothing about how the ranking was built.
package wordcloud

import (
	"math"
	"math/rand"

	"tablens/domain/analysis"
)

const (
	DefaultWidth    = 800
	DefaultHeight   = 400
	DefaultAttempts = 50
	DefaultScheme   = "default"

	minFontSize = 12
	maxFontSize = 60
)

// Schemes maps a scheme name to its palette. Words cycle through the
// palette in rank order.
var Schemes = map[string][]string{
	"default": {"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA726", "#AB47BC", "#66BB6A", "#FF7043", "#42A5F5"},
	"blue":    {"#E3F2FD", "#BBDEFB", "#90CAF9", "#64B5F6", "#42A5F5", "#2196F3", "#1E88E5", "#1976D2"},
	"green":   {"#E8F5E8", "#C8E6C9", "#A5D6A7", "#81C784", "#66BB6A", "#4CAF50", "#43A047", "#388E3C"},
	"purple":  {"#F3E5F5", "#E1BEE7", "#CE93D8", "#BA68C8", "#AB47BC", "#9C27B0", "#8E24AA", "#7B1FA2"},
	"rainbow": {"#FF5722", "#FF9800", "#FFC107", "#8BC34A", "#4CAF50", "#00BCD4", "#03A9F4", "#3F51B5"},
}

// Options controls canvas size, placement retries, palette and the RNG seed.
// Zero fields fall back to the defaults.
type Options struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Attempts int     `json:"attempts"`
	Scheme   string  `json:"scheme"`
	Seed     int64   `json:"seed"`
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Attempts <= 0 {
		o.Attempts = DefaultAttempts
	}
	if _, ok := Schemes[o.Scheme]; !ok {
		o.Scheme = DefaultScheme
	}
	return o
}

// Placement is one positioned word. Y is the text baseline; the box spans
// [X, X+Width] horizontally and [Y-Height, Y] vertically.
type Placement struct {
	Token    string  `json:"token"`
	Count    int     `json:"count"`
	FontSize float64 `json:"font_size"`
	Color    string  `json:"color"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	// Placed is false when every attempt overlapped and the last random
	// position was kept anyway.
	Placed bool `json:"placed"`
}

// Layout is the arranged cloud for one column.
type Layout struct {
	analysis.Status
	Column string      `json:"column"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Scheme string      `json:"scheme"`
	Words  []Placement `json:"words"`
}

// FontSize scales count against the largest count into [12, 60].
func FontSize(count, maxCount int) float64 {
	if maxCount <= 0 {
		return minFontSize
	}
	size := float64(count)/float64(maxCount)*50 + 10
	return math.Max(minFontSize, math.Min(maxFontSize, size))
}

// TextWidth estimates rendered width: CJK ideographs are square, other
// characters take 0.6 em.
func TextWidth(token string, fontSize float64) float64 {
	w := 0.0
	for _, r := range token {
		if r >= 0x4e00 && r <= 0x9fa5 {
			w += fontSize
		} else {
			w += fontSize * 0.6
		}
	}
	return w
}

func (p Placement) overlaps(o Placement) bool {
	return !(p.X+p.Width < o.X ||
		o.X+o.Width < p.X ||
		p.Y-p.Height > o.Y ||
		o.Y-o.Height > p.Y)
}

// Arrange places every ranked word at a random position, retrying up to
// Attempts times to avoid overlapping earlier words. The same table and
// options always produce the same layout.
func Arrange(freq analysis.WordFrequencyTable, opts Options) Layout {
	opts = opts.withDefaults()
	layout := Layout{
		Status: freq.Status,
		Column: freq.Column,
		Width:  opts.Width,
		Height: opts.Height,
		Scheme: opts.Scheme,
		Words:  []Placement{},
	}
	if !freq.OK() {
		return layout
	}
	if len(freq.Words) == 0 {
		layout.Status = analysis.InsufficientData("no words to arrange")
		return layout
	}

	palette := Schemes[opts.Scheme]
	maxCount := 0
	for _, w := range freq.Words {
		if w.Count > maxCount {
			maxCount = w.Count
		}
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	position := func(p *Placement) {
		p.X = rng.Float64() * math.Max(0, opts.Width-p.Width)
		p.Y = rng.Float64()*math.Max(0, opts.Height-p.Height) + p.Height
	}

	for i, w := range freq.Words {
		size := FontSize(w.Count, maxCount)
		p := Placement{
			Token:    w.Token,
			Count:    w.Count,
			FontSize: size,
			Color:    palette[i%len(palette)],
			Width:    TextWidth(w.Token, size),
			Height:   size,
		}
		for attempt := 0; attempt < opts.Attempts && !p.Placed; attempt++ {
			position(&p)
			p.Placed = true
			for _, other := range layout.Words {
				if p.overlaps(other) {
					p.Placed = false
					break
				}
			}
		}
		if !p.Placed {
			position(&p)
		}
		layout.Words = append(layout.Words, p)
	}

	layout.Status = analysis.Ok()
	return layout
}
