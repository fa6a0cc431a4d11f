package text

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Source shapes and draws text. The zero value is not usable; construct
// with NewSource. A Source is safe for concurrent use.
type Source struct {
	mu sync.Mutex

	// otf rasterizes glyphs; shaped measures them. Both are nil until a
	// TTF is loaded, in which case the bitmap fallback face is used.
	otf    *opentype.Font
	shaped *gtfont.Font

	shaper shaping.HarfbuzzShaper
	faces  map[fixed.Int26_6]font.Face
}

// NewSource returns a source backed by the built-in bitmap face.
func NewSource() *Source {
	return &Source{faces: make(map[fixed.Int26_6]font.Face)}
}

// LoadTTF parses TTF/OTF data and switches the source to outline
// rendering. The previous font, if any, is replaced.
func (s *Source) LoadTTF(data []byte) error {
	otf, err := opentype.Parse(data)
	if err != nil {
		return err
	}
	// font.ParseTTF returns a *Face embedding the thread-safe *Font;
	// only the Font is retained, faces are created per shaping call.
	shapedFace, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otf = otf
	s.shaped = shapedFace.Font
	s.faces = make(map[fixed.Int26_6]font.Face)
	return nil
}

// Loaded reports whether an outline font has been loaded.
func (s *Source) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.otf != nil
}

// Measure returns the advance width and line height of a single line at
// the given pixel size. With no font loaded the fixed 7x13 face is
// measured and sizePx is ignored.
func (s *Source) Measure(str string, sizePx float64) (width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shaped == nil {
		w := font.MeasureString(basicfont.Face7x13, str)
		return fixedToFloat(w), float64(basicfont.Face7x13.Height)
	}
	out := s.shape(str, sizePx)
	ascent := fixedToFloat(out.LineBounds.Ascent)
	descent := fixedToFloat(-out.LineBounds.Descent)
	return fixedToFloat(out.Advance), ascent + descent
}

// Draw renders a single line with its baseline at (x, y).
func (s *Source) Draw(dst draw.Image, str string, x, y int, sizePx float64, c color.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: s.face(sizePx),
		Dot:  fixed.P(x, y),
	}
	d.DrawString(str)
}

// shape runs HarfBuzz shaping over the whole string as one LTR run.
// Callers hold s.mu.
func (s *Source) shape(str string, sizePx float64) shaping.Output {
	runes := []rune(str)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gtfont.NewFace(s.shaped),
		Size:      floatToFixed(sizePx),
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	}
	return s.shaper.Shape(input)
}

// face returns a rasterization face for the pixel size, cached per size.
// Callers hold s.mu.
func (s *Source) face(sizePx float64) font.Face {
	if s.otf == nil {
		return basicfont.Face7x13
	}
	key := floatToFixed(sizePx)
	if f, ok := s.faces[key]; ok {
		return f
	}
	f, err := opentype.NewFace(s.otf, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	s.faces[key] = f
	return f
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
