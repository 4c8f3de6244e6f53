// Package tre implements the TRE (Tagged Record Extension) engine: a
// descriptor-driven encoder/decoder for the variable-structure payloads
// NITF carries in subheader extension sections.
//
// A Descriptor is a flat, ordered list of Elements — typed fields, loop
// start/end pairs, conditional start/end pairs — walked with a cursor over
// the payload bytes and a frame stack for loops/conditionals. The engine
// itself never knows what a TRE tag "means"; all semantics live in the
// Descriptor a Registry hands back for a given tag and on-the-wire length.
// An unresolved tag degrades to an opaque byte blob rather than failing
// the surrounding Record parse.
package tre
