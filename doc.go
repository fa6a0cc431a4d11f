// Package luvatrix is the render core of the Luvatrix UI runtime.
//
// # Overview
//
// Luvatrix renders a declaratively described user interface onto a
// fixed-resolution RGBA surface in real time and exposes that surface, plus
// an input/event channel, to a driving host process.
//
// The root package holds the shared numeric core:
//   - Color: 8-bit straight-alpha RGBA colors and CSS-style color parsing
//   - FrameBuffer: the owned pixel store with clipped, alpha-blended
//     drawing primitives
//   - Registry: named affine coordinate frames resolved through one
//     canonical space
//
// Subsystems build on it:
//   - svg: a small-subset vector document model and rasterizer
//   - ir: the validated, unit-resolved UI intermediate representation
//   - planes: the declarative "Planes" document compiler producing IR
//   - engine: the paced render loop publishing immutable frame snapshots
//   - hostproto: the line-oriented JSON host protocol
//   - display: display backend registry and capability probing
//   - text: font loading, measurement and framebuffer text drawing
//
// # Coordinate System
//
// The render surface is always top-left origin, y-down ("screen_tl").
// Authors may place elements in any registered affine frame; the Registry
// converts between frames by routing through a shared canonical space.
//
// # Logging
//
// The library is silent by default. Call SetLogger to direct diagnostics
// from all subsystems to a slog.Logger of your choice.
package luvatrix
