package netviz

import "image/color"

// GroupStyle is the color triple assigned to a styling bucket.
type GroupStyle struct {
	Stroke    color.RGBA
	Fill      color.RGBA
	Highlight color.RGBA
}

// groupPalette is the fixed palette handed out round-robin. The order
// follows the social-domain legend colors of the collecting application.
var groupPalette = []GroupStyle{
	{Stroke: color.RGBA{43, 124, 233, 255}, Fill: color.RGBA{151, 194, 252, 255}, Highlight: color.RGBA{210, 229, 255, 255}},
	{Stroke: color.RGBA{255, 0, 0, 255}, Fill: color.RGBA{251, 168, 168, 255}, Highlight: color.RGBA{255, 210, 210, 255}},
	{Stroke: color.RGBA{0, 0, 255, 255}, Fill: color.RGBA{160, 160, 255, 255}, Highlight: color.RGBA{210, 210, 255, 255}},
	{Stroke: color.RGBA{0, 128, 0, 255}, Fill: color.RGBA{150, 220, 150, 255}, Highlight: color.RGBA{205, 245, 205, 255}},
	{Stroke: color.RGBA{255, 0, 255, 255}, Fill: color.RGBA{250, 170, 250, 255}, Highlight: color.RGBA{255, 215, 255, 255}},
	{Stroke: color.RGBA{165, 42, 42, 255}, Fill: color.RGBA{220, 170, 150, 255}, Highlight: color.RGBA{245, 215, 200, 255}},
	{Stroke: color.RGBA{255, 165, 0, 255}, Fill: color.RGBA{255, 210, 140, 255}, Highlight: color.RGBA{255, 235, 195, 255}},
	{Stroke: color.RGBA{148, 0, 211, 255}, Fill: color.RGBA{210, 150, 240, 255}, Highlight: color.RGBA{240, 205, 255, 255}},
	{Stroke: color.RGBA{50, 205, 50, 255}, Fill: color.RGBA{170, 240, 170, 255}, Highlight: color.RGBA{215, 255, 215, 255}},
}

// Groups assigns palette entries to arbitrary group identifiers. The first
// lookup of an unseen key claims the next palette slot (wrapping around);
// repeated lookups of the same key are memoized.
type Groups struct {
	assigned map[string]GroupStyle
	next     int
}

func NewGroups() *Groups {
	return &Groups{assigned: make(map[string]GroupStyle)}
}

func (g *Groups) Get(key string) GroupStyle {
	if style, ok := g.assigned[key]; ok {
		return style
	}
	style := groupPalette[g.next%len(groupPalette)]
	g.next++
	g.assigned[key] = style
	return style
}

// Len reports how many distinct groups have been assigned.
func (g *Groups) Len() int { return len(g.assigned) }
