// Package engine runs the paced render loop and publishes frame
// snapshots.
//
// An Engine owns one framebuffer and one render goroutine. Input events
// arrive through a non-blocking push from any goroutine and are drained
// once per tick; the latest completed frame is available to any number
// of concurrent readers via Snapshot. The engine's lightweight page
// model draws elements in declaration order; the z-ordered path over
// compiled IR pages is RenderIR.
package engine
