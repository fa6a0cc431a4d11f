// Package svg implements a small-subset SVG document model and software
// rasterizer for Luvatrix vector assets.
//
// Only four primitive kinds are recognized: rect, circle, line and polygon.
// Unsupported elements are silently ignored, and malformed attributes
// degrade to "draw nothing" rather than erroring — the rasterizer is total
// over its inputs. Full SVG fidelity is an explicit non-goal.
//
// Documents are parsed once from markup and are read-only afterward;
// callers that render repeatedly should cache parsed documents by source
// identity (the engine does this per instance).
package svg
