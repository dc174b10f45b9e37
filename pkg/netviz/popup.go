package netviz

// Popup is the hover tooltip: a positioned text box shown near the cursor
// once the pointer has idled over an entity with a title.
type Popup struct {
	Visible bool
	X, Y    float64
	Text    string

	// target is the entity the popup currently describes; the tooltip is
	// hidden once the pointer no longer overlaps it.
	target any
}

func (p *Popup) Show(target any, text string, x, y float64) {
	p.target = target
	p.Text = text
	p.X = x
	p.Y = y
	p.Visible = true
}

func (p *Popup) Hide() {
	p.Visible = false
	p.target = nil
}

func (p *Popup) Target() any { return p.target }
