// Package ir defines the validated, unit-resolved intermediate
// representation of a Luvatrix UI page.
//
// Pages and components enforce their invariants eagerly at construction:
// non-empty identifiers, non-negative dimensions, opacity in [0, 1],
// non-singular custom frame bases, unique component ids. A constructor
// error means nothing was built; no partially-valid page ever exists.
//
// The page round-trips losslessly through ToMap/FromMap, and the embedded
// JSON Schema (ui_ir.page.schema.json) is the machine-checkable contract
// for the external document form.
package ir
