package split

// RGB is a palette color.
type RGB struct {
	R, G, B uint8
}

// Palette is the fixed set of split container colors, chosen to stay
// distinct and readable in both light and dark terminals.
var Palette = [...]RGB{
	{0x35, 0x84, 0xe4}, // blue
	{0x2e, 0xc2, 0x7e}, // green
	{0xff, 0x78, 0x00}, // orange
	{0x91, 0x41, 0xac}, // purple
	{0x00, 0xb4, 0xd8}, // cyan
	{0xe0, 0x1b, 0x24}, // red
}

// PaletteRGB returns the RGB values for a color ID, or false if the ID is
// outside the palette.
func PaletteRGB(c ColorID) (RGB, bool) {
	if c < 0 || int(c) >= len(Palette) {
		return RGB{}, false
	}
	return Palette[c], true
}

// ColorPool hands out palette indices so concurrently open split containers
// get visually distinct coloring. Allocation never fails: once the palette
// is exhausted the pool keeps handing out indices that are already in use,
// trading distinctness for availability.
//
// The pool does no locking; callers sharing it across goroutines must
// serialize access themselves.
type ColorPool struct {
	allocated map[ColorID]bool
	next      int // scan cursor; advances on every allocate, never reset
}

// NewColorPool creates an empty pool over the standard palette.
func NewColorPool() *ColorPool {
	return &ColorPool{allocated: make(map[ColorID]bool)}
}

// Allocate returns the next free color scanning forward from the cursor,
// wrapping once. If every color is taken it returns the color under the
// cursor anyway. The cursor always advances, so a released slot is only
// reused after the cursor wraps back around to it.
func (p *ColorPool) Allocate() ColorID {
	start := p.next
	for {
		color := ColorID(p.next)
		p.next = (p.next + 1) % len(Palette)
		if !p.allocated[color] {
			p.allocated[color] = true
			return color
		}
		if p.next == start {
			// Full scan found nothing free; reuse the current color.
			return color
		}
	}
}

// Release returns a color to the pool. Releasing a color that was never
// allocated is a no-op.
func (p *ColorPool) Release(c ColorID) {
	delete(p.allocated, c)
}

// IsAllocated reports whether the color is currently handed out.
func (p *ColorPool) IsAllocated(c ColorID) bool {
	return p.allocated[c]
}

// AllocatedCount returns the number of colors currently handed out.
func (p *ColorPool) AllocatedCount() int {
	return len(p.allocated)
}

// PaletteSize returns the number of colors in the palette.
func (p *ColorPool) PaletteSize() int {
	return len(Palette)
}
