// Package display routes frame snapshots to presentation backends.
//
// Backends register themselves on import and are selected by name or by
// priority, with the software backend always available as a fallback.
// A backend is a pure sink: the engine renders, the backend presents.
package display
