package viewer

import "testing"

func TestComputeLayout(t *testing.T) {
	chrome := DefaultChrome()
	indicator := Size{W: 30, H: 14}

	tests := []struct {
		name           string
		viewport       Size
		pages          int
		current        int
		expectedOffset Point
		expectedClose  Frame
		expectedDelete Frame
		expectedInd    Frame
	}{
		{
			name:           "Portrait centers the indicator",
			viewport:       Size{W: 375, H: 667},
			pages:          3,
			current:        1,
			expectedOffset: Point{X: 375},
			expectedClose:  Frame{X: 375 - 60 - 17, Y: 16, W: 60, H: 25},
			expectedDelete: Frame{X: 17, Y: 16, W: 70, H: 25},
			expectedInd:    Frame{X: (375 - 30) / 2.0, Y: 667 - 14 - 20, W: 30, H: 14},
		},
		{
			name:           "Landscape aligns the indicator with delete",
			viewport:       Size{W: 667, H: 375},
			pages:          3,
			current:        2,
			expectedOffset: Point{X: 1334},
			expectedClose:  Frame{X: 667 - 60 - 17, Y: 16, W: 60, H: 25},
			expectedDelete: Frame{X: 17, Y: 16, W: 70, H: 25},
			expectedInd:    Frame{X: 17 + 35, Y: 375 - 14 - 20, W: 30, H: 14},
		},
		{
			name:           "Square counts as landscape",
			viewport:       Size{W: 500, H: 500},
			pages:          1,
			current:        0,
			expectedOffset: Point{},
			expectedClose:  Frame{X: 500 - 60 - 17, Y: 16, W: 60, H: 25},
			expectedDelete: Frame{X: 17, Y: 16, W: 70, H: 25},
			expectedInd:    Frame{X: 52, Y: 500 - 14 - 20, W: 30, H: 14},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ComputeLayout(LayoutInput{
				Viewport:      tt.viewport,
				PageCount:     tt.pages,
				CurrentPage:   tt.current,
				Chrome:        chrome,
				IndicatorSize: indicator,
			})

			if l.ContentSize != (Size{W: tt.viewport.W * float64(tt.pages), H: tt.viewport.H}) {
				t.Errorf("Unexpected content size %+v", l.ContentSize)
			}
			if l.ScrollOffset != tt.expectedOffset {
				t.Errorf("Expected offset %+v, got %+v", tt.expectedOffset, l.ScrollOffset)
			}
			if len(l.PageFrames) != tt.pages {
				t.Fatalf("Expected %d page frames, got %d", tt.pages, len(l.PageFrames))
			}
			for i, f := range l.PageFrames {
				want := Frame{X: float64(i) * tt.viewport.W, W: tt.viewport.W, H: tt.viewport.H}
				if f != want {
					t.Errorf("Page %d: expected %+v, got %+v", i, want, f)
				}
			}
			if l.CloseFrame != tt.expectedClose {
				t.Errorf("Expected close %+v, got %+v", tt.expectedClose, l.CloseFrame)
			}
			if l.DeleteFrame != tt.expectedDelete {
				t.Errorf("Expected delete %+v, got %+v", tt.expectedDelete, l.DeleteFrame)
			}
			if l.IndicatorFrame != tt.expectedInd {
				t.Errorf("Expected indicator %+v, got %+v", tt.expectedInd, l.IndicatorFrame)
			}
		})
	}
}

func TestComputeLayoutNoPages(t *testing.T) {
	l := ComputeLayout(LayoutInput{Viewport: Size{W: 320, H: 480}, Chrome: DefaultChrome()})

	if len(l.PageFrames) != 0 {
		t.Errorf("Expected no page frames, got %d", len(l.PageFrames))
	}
	if l.ContentSize.W != 0 {
		t.Errorf("Expected zero content width, got %.0f", l.ContentSize.W)
	}
}

func TestFrameContains(t *testing.T) {
	f := Frame{X: 10, Y: 10, W: 20, H: 10}

	tests := []struct {
		p        Point
		expected bool
	}{
		{Point{X: 10, Y: 10}, true},
		{Point{X: 29.9, Y: 19.9}, true},
		{Point{X: 30, Y: 15}, false},
		{Point{X: 5, Y: 15}, false},
	}

	for _, tt := range tests {
		if got := f.Contains(tt.p); got != tt.expected {
			t.Errorf("Contains(%+v) = %t, want %t", tt.p, got, tt.expected)
		}
	}
}

func TestPageForOffset(t *testing.T) {
	tests := []struct {
		offset   float64
		width    float64
		expected int
	}{
		{0, 320, 0},
		{319.9, 320, 0},
		{320, 320, 1},
		{959, 320, 2},
		{-1, 320, -1},
	}

	for _, tt := range tests {
		if got := PageForOffset(tt.offset, tt.width); got != tt.expected {
			t.Errorf("PageForOffset(%.1f, %.0f) = %d, want %d", tt.offset, tt.width, got, tt.expected)
		}
	}
}
