package image

import "testing"

// checker2x2 returns a 2x2 image: black, white / white, black.
func checker2x2(t *testing.T) *ImageBuf {
	t.Helper()
	img, err := NewImageBuf(2, 2)
	if err != nil {
		t.Fatalf("NewImageBuf: %v", err)
	}
	_ = img.SetRGBA(0, 0, 0, 0, 0, 255)
	_ = img.SetRGBA(1, 0, 255, 255, 255, 255)
	_ = img.SetRGBA(0, 1, 255, 255, 255, 255)
	_ = img.SetRGBA(1, 1, 0, 0, 0, 255)
	return img
}

func TestSampleNearest(t *testing.T) {
	img := checker2x2(t)

	tests := []struct {
		name  string
		u, v  float64
		wantR byte
	}{
		{"top-left", 0.1, 0.1, 0},
		{"top-right", 0.9, 0.1, 255},
		{"bottom-left", 0.1, 0.9, 255},
		{"bottom-right", 0.9, 0.9, 0},
		{"clamped low", -5, -5, 0},
		{"clamped high", 5, 5, 0},
		{"exactly one", 1, 0, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _, a := SampleNearest(img, tt.u, tt.v)
			if r != tt.wantR || a != 255 {
				t.Errorf("SampleNearest(%v, %v) = r%d a%d, want r%d a255", tt.u, tt.v, r, a, tt.wantR)
			}
		})
	}
}

func TestSampleBilinear_Center(t *testing.T) {
	img := checker2x2(t)

	// The center is equidistant from all four texels.
	r, g, b, a := SampleBilinear(img, 0.5, 0.5)
	if r != 128 || g != 128 || b != 128 || a != 255 {
		t.Errorf("SampleBilinear(0.5, 0.5) = (%d, %d, %d, %d), want (128, 128, 128, 255)", r, g, b, a)
	}
}

func TestSampleBilinear_TexelCenterIsExact(t *testing.T) {
	img := checker2x2(t)

	// Texel (1, 0) center is at u=0.75, v=0.25.
	r, _, _, _ := SampleBilinear(img, 0.75, 0.25)
	if r != 255 {
		t.Errorf("SampleBilinear at texel center = %d, want 255", r)
	}
}

func TestSample_Dispatch(t *testing.T) {
	img := checker2x2(t)
	if r, _, _, _ := Sample(img, 0.9, 0.1, InterpNearest); r != 255 {
		t.Errorf("Sample nearest = %d, want 255", r)
	}
	if r, _, _, _ := Sample(img, 0.5, 0.5, InterpBilinear); r != 128 {
		t.Errorf("Sample bilinear = %d, want 128", r)
	}
	if _, _, _, a := Sample(img, 0.5, 0.5, InterpolationMode(99)); a != 0 {
		t.Errorf("Sample unknown mode alpha = %d, want 0", a)
	}
}

func TestInterpolationMode_String(t *testing.T) {
	if InterpNearest.String() != "Nearest" || InterpBilinear.String() != "Bilinear" {
		t.Error("unexpected mode names")
	}
	if InterpolationMode(42).String() != "Unknown" {
		t.Error("unknown mode should stringify as Unknown")
	}
}
