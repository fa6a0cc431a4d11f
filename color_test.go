package luvatrix

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   Color
		wantOK bool
	}{
		{"long hex with alpha", "#11223344", Color{17, 34, 51, 68}, true},
		{"long hex opaque", "#112233", Color{17, 34, 51, 255}, true},
		{"short hex", "#abc", Color{170, 187, 204, 255}, true},
		{"short hex with alpha", "#abcd", Color{170, 187, 204, 221}, true},
		{"rgb func", "rgb(10, 20, 30)", Color{10, 20, 30, 255}, true},
		{"rgb func no spaces", "rgb(255,0,255)", Color{255, 0, 255, 255}, true},
		{"none", "none", Color{}, false},
		{"empty", "", Color{}, false},
		{"garbage", "fuchsia", Color{}, false},
		{"bad hex digit", "#11g233", Color{}, false},
		{"bad length", "#12345", Color{}, false},
		{"rgb out of range", "rgb(300,0,0)", Color{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseColor(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseBackground(t *testing.T) {
	got, err := ParseBackground("#102030")
	if err != nil {
		t.Fatalf("ParseBackground: %v", err)
	}
	if got != (Color{16, 32, 48, 255}) {
		t.Errorf("ParseBackground(#102030) = %+v", got)
	}

	if _, err := ParseBackground("#fff"); err == nil {
		t.Error("short hex accepted as background")
	}
	if _, err := ParseBackground("102030"); err == nil {
		t.Error("missing # accepted as background")
	}
	if _, err := ParseBackground("#10203z"); err == nil {
		t.Error("non-hex digit accepted as background")
	}
}

func TestColorWithOpacity(t *testing.T) {
	c := Color{10, 20, 30, 200}
	if got := c.WithOpacity(1.5); got != c {
		t.Errorf("opacity >= 1 must not change the color, got %+v", got)
	}
	if got := c.WithOpacity(0.5); got.A != 100 {
		t.Errorf("WithOpacity(0.5).A = %d, want 100", got.A)
	}
	if got := c.WithOpacity(-1); got.A != 0 {
		t.Errorf("negative opacity must clamp to 0, got %d", got.A)
	}
}
