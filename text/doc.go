// Package text measures and rasterizes single-line text for framebuffer
// rendering.
//
// A Source starts with a built-in 7x13 bitmap face so text always draws,
// even with no font loaded. Loading a TTF upgrades it: measurement goes
// through HarfBuzz shaping (kerning, ligatures) and drawing rasterizes
// the outline font at the requested pixel size.
package text
