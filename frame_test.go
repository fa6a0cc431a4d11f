package luvatrix

import (
	"math"
	"testing"
)

const frameTol = 1e-9

func pointsClose(a, b Point) bool {
	return math.Abs(a.X-b.X) < frameTol && math.Abs(a.Y-b.Y) < frameTol
}

func TestNewRegistryRejectsBadSize(t *testing.T) {
	for _, wh := range [][2]int{{0, 10}, {10, 0}, {-1, 5}, {0, 0}} {
		if _, err := NewRegistry(wh[0], wh[1]); err == nil {
			t.Errorf("NewRegistry(%d, %d) succeeded, want ConfigError", wh[0], wh[1])
		}
	}
}

func TestPresetMappings(t *testing.T) {
	reg, err := NewRegistry(100, 50)
	if err != nil {
		t.Fatal(err)
	}

	// screen_tl -> cartesian_bl on 100x50 maps (0,0) to (0,49).
	got, err := reg.TransformPoint(Point{0, 0}, FrameScreenTL, FrameCartesianBL)
	if err != nil {
		t.Fatal(err)
	}
	if !pointsClose(got, Point{0, 49}) {
		t.Errorf("screen_tl (0,0) -> cartesian_bl = %+v, want (0,49)", got)
	}

	// ...and the inverse maps it back.
	back, err := reg.TransformPoint(got, FrameCartesianBL, FrameScreenTL)
	if err != nil {
		t.Fatal(err)
	}
	if !pointsClose(back, Point{0, 0}) {
		t.Errorf("round trip = %+v, want (0,0)", back)
	}
}

func TestCartesianCenterOrigin(t *testing.T) {
	reg, err := NewRegistry(101, 51)
	if err != nil {
		t.Fatal(err)
	}
	got, err := reg.TransformPoint(Point{0, 0}, FrameCartesianCenter, FrameScreenTL)
	if err != nil {
		t.Fatal(err)
	}
	if !pointsClose(got, Point{50, 25}) {
		t.Errorf("cartesian_center origin in screen_tl = %+v, want (50,25)", got)
	}
}

func TestTransformComposability(t *testing.T) {
	reg, err := NewRegistry(640, 360)
	if err != nil {
		t.Fatal(err)
	}
	if err := reg.DefineFrame("skew", Point{3, 7}, Point{2, 1}, Point{-1, 2}); err != nil {
		t.Fatal(err)
	}

	frames := []string{FrameScreenTL, FrameCartesianBL, FrameCartesianCenter, "skew"}
	p := Point{12.5, -3.75}
	for _, f1 := range frames {
		for _, f2 := range frames {
			for _, f3 := range frames {
				ab, err := reg.TransformPoint(p, f1, f2)
				if err != nil {
					t.Fatal(err)
				}
				abc, err := reg.TransformPoint(ab, f2, f3)
				if err != nil {
					t.Fatal(err)
				}
				direct, err := reg.TransformPoint(p, f1, f3)
				if err != nil {
					t.Fatal(err)
				}
				if math.Abs(abc.X-direct.X) > 1e-6 || math.Abs(abc.Y-direct.Y) > 1e-6 {
					t.Errorf("%s->%s->%s = %+v, direct %s->%s = %+v", f1, f2, f3, abc, f1, f3, direct)
				}
			}
		}
	}
}

func TestTransformRoundTrip(t *testing.T) {
	reg, err := NewRegistry(320, 240)
	if err != nil {
		t.Fatal(err)
	}
	if err := reg.DefineFrame("shift", Point{10, 10}, Point{0, 2}, Point{2, 0}); err != nil {
		t.Fatal(err)
	}
	frames := []string{FrameScreenTL, FrameCartesianBL, FrameCartesianCenter, "shift"}
	p := Point{7.25, 99}
	for _, f1 := range frames {
		for _, f2 := range frames {
			there, err := reg.TransformPoint(p, f1, f2)
			if err != nil {
				t.Fatal(err)
			}
			back, err := reg.TransformPoint(there, f2, f1)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(back.X-p.X) > 1e-6 || math.Abs(back.Y-p.Y) > 1e-6 {
				t.Errorf("%s<->%s round trip = %+v, want %+v", f1, f2, back, p)
			}
		}
	}
}

func TestTransformVectorIgnoresTranslation(t *testing.T) {
	reg, err := NewRegistry(100, 100)
	if err != nil {
		t.Fatal(err)
	}
	// cartesian_bl differs from screen_tl only by origin and y flip; a
	// vector must see the flip but not the origin shift.
	got, err := reg.TransformVector(Point{3, 4}, FrameCartesianBL, FrameScreenTL)
	if err != nil {
		t.Fatal(err)
	}
	if !pointsClose(got, Point{3, -4}) {
		t.Errorf("vector (3,4) cartesian_bl->screen_tl = %+v, want (3,-4)", got)
	}
}

func TestDefineFrameErrors(t *testing.T) {
	reg, err := NewRegistry(10, 10)
	if err != nil {
		t.Fatal(err)
	}

	if err := reg.DefineFrame("zero_det", Point{0, 0}, Point{1, 2}, Point{2, 4}); err == nil {
		t.Error("zero-determinant basis accepted")
	}
	if err := reg.DefineFrame("screen_tl", Point{0, 0}, Point{1, 0}, Point{0, 1}); err == nil {
		t.Error("reserved preset name accepted")
	}
	if err := reg.DefineFrame("", Point{0, 0}, Point{1, 0}, Point{0, 1}); err == nil {
		t.Error("empty frame name accepted")
	}
}

func TestUnknownFrame(t *testing.T) {
	reg, err := NewRegistry(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reg.TransformPoint(Point{0, 0}, "nope", FrameScreenTL); err == nil {
		t.Error("unknown source frame accepted")
	}
	if err := reg.SetDefaultFrame("nope"); err == nil {
		t.Error("SetDefaultFrame accepted unknown frame")
	}
}

func TestRenderCoordConvenience(t *testing.T) {
	reg, err := NewRegistry(100, 50)
	if err != nil {
		t.Fatal(err)
	}
	got, err := reg.ToRenderCoords(Point{0, 0}, FrameCartesianBL)
	if err != nil {
		t.Fatal(err)
	}
	if !pointsClose(got, Point{0, 49}) {
		t.Errorf("ToRenderCoords = %+v, want (0,49)", got)
	}
	back, err := reg.FromRenderCoords(got, FrameCartesianBL)
	if err != nil {
		t.Fatal(err)
	}
	if !pointsClose(back, Point{0, 0}) {
		t.Errorf("FromRenderCoords = %+v, want (0,0)", back)
	}
}

func TestListFrames(t *testing.T) {
	reg, err := NewRegistry(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if err := reg.DefineFrame("bbb", Point{0, 0}, Point{1, 0}, Point{0, 1}); err != nil {
		t.Fatal(err)
	}
	if err := reg.DefineFrame("aaa", Point{0, 0}, Point{1, 0}, Point{0, 1}); err != nil {
		t.Fatal(err)
	}
	got := reg.ListFrames()
	want := []string{FrameScreenTL, FrameCartesianBL, FrameCartesianCenter, "aaa", "bbb"}
	if len(got) != len(want) {
		t.Fatalf("ListFrames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ListFrames = %v, want %v", got, want)
		}
	}
}
