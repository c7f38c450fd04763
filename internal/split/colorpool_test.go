package split

import "testing"

func TestNewColorPoolIsEmpty(t *testing.T) {
	pool := NewColorPool()
	if pool.AllocatedCount() != 0 {
		t.Errorf("AllocatedCount() = %d, want 0", pool.AllocatedCount())
	}
	if pool.PaletteSize() != 6 {
		t.Errorf("PaletteSize() = %d, want 6", pool.PaletteSize())
	}
}

func TestAllocateReturnsSequentialColors(t *testing.T) {
	pool := NewColorPool()
	for want := 0; want < pool.PaletteSize(); want++ {
		got := pool.Allocate()
		if got != ColorID(want) {
			t.Errorf("Allocate() #%d = %d, want %d", want, got, want)
		}
		if !pool.IsAllocated(got) {
			t.Errorf("IsAllocated(%d) = false after Allocate", got)
		}
	}
	if pool.AllocatedCount() != pool.PaletteSize() {
		t.Errorf("AllocatedCount() = %d, want %d", pool.AllocatedCount(), pool.PaletteSize())
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	pool := NewColorPool()
	c := pool.Allocate()

	pool.Release(c)
	if pool.IsAllocated(c) {
		t.Error("IsAllocated after Release = true, want false")
	}

	// Releasing again, or releasing something never allocated, is a no-op.
	pool.Release(c)
	pool.Release(ColorID(5))
	if pool.AllocatedCount() != 0 {
		t.Errorf("AllocatedCount() = %d, want 0", pool.AllocatedCount())
	}
}

func TestAllocateWrapsWhenExhausted(t *testing.T) {
	pool := NewColorPool()
	for i := 0; i < pool.PaletteSize(); i++ {
		pool.Allocate()
	}

	// Palette fully allocated: the call still succeeds with a collision.
	c := pool.Allocate()
	if c < 0 || int(c) >= pool.PaletteSize() {
		t.Errorf("Allocate() on exhausted pool = %d, want a palette index", c)
	}
	if pool.AllocatedCount() != pool.PaletteSize() {
		t.Errorf("AllocatedCount() = %d, want %d", pool.AllocatedCount(), pool.PaletteSize())
	}
}

// A released slot is only reused once the cursor naturally wraps back to
// it: allocate 0 and 1, release 0, then the next allocations are 2..5 and
// only then 0 again.
func TestReleasedColorReusedOnlyAfterWrap(t *testing.T) {
	pool := NewColorPool()

	c0 := pool.Allocate()
	c1 := pool.Allocate()
	if c0 != 0 || c1 != 1 {
		t.Fatalf("Allocate() x2 = %d, %d, want 0, 1", c0, c1)
	}

	pool.Release(c0)

	for _, want := range []ColorID{2, 3, 4, 5} {
		if got := pool.Allocate(); got != want {
			t.Errorf("Allocate() = %d, want %d", got, want)
		}
	}

	// Cursor has cycled through every other index; now 0 comes back.
	if got := pool.Allocate(); got != 0 {
		t.Errorf("Allocate() after wrap = %d, want 0", got)
	}
}

func TestReleaseDoesNotResetCursor(t *testing.T) {
	pool := NewColorPool()
	c0 := pool.Allocate()
	c1 := pool.Allocate()
	pool.Release(c0)
	pool.Release(c1)

	// The cursor continues from index 2 even though 0 and 1 are free.
	if got := pool.Allocate(); got != 2 {
		t.Errorf("Allocate() = %d, want 2", got)
	}
	if got := pool.Allocate(); got != 3 {
		t.Errorf("Allocate() = %d, want 3", got)
	}
}

func TestPaletteRGB(t *testing.T) {
	tests := []struct {
		color  ColorID
		want   RGB
		wantOK bool
	}{
		{0, RGB{0x35, 0x84, 0xe4}, true},
		{1, RGB{0x2e, 0xc2, 0x7e}, true},
		{5, RGB{0xe0, 0x1b, 0x24}, true},
		{6, RGB{}, false},
		{-1, RGB{}, false},
	}
	for _, tt := range tests {
		got, ok := PaletteRGB(tt.color)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("PaletteRGB(%d) = %v, %v, want %v, %v", tt.color, got, ok, tt.want, tt.wantOK)
		}
	}
}
