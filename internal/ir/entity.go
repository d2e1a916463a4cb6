// Package ir holds the entity-oriented intermediate representation shared by
// every compiler pass: an opaque Entity handle plus one sparse aspect table
// per kind of fact a pass can attach to it.
package ir

// Entity is an opaque handle into a Store. It carries no data itself — every
// fact about an entity lives in some Table[T], keyed by this handle.
type Entity uint32
