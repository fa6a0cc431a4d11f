// Package planes validates Planes app manifests and compiles them into
// UI IR pages.
//
// A manifest declares an app, a plane, components with unit-bearing
// sizes, and optional scripts. Validation and compilation never produce
// a partial result: the first offending field aborts with an error
// naming its path. Compilation resolves every dimension to logical
// pixels against the target matrix, so the resulting page carries no
// units.
package planes
