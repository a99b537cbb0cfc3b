// Package fieldtype is the closed catalogue of field-type descriptors: the
// single source of truth mapping a field type to its display label, default
// label/placeholder, category tag, and default option set. It is a pure leaf
// package with no mutation and no I/O; every other engine component depends
// on it.
package fieldtype
