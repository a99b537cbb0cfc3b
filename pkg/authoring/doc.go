// Package authoring implements the form authoring engine: an Editor that
// maintains the ordered field list of a FormDefinition under operator edits,
// guarantees the ordering and uniqueness invariants, and delegates
// persistence to the forms API. Mutations are synchronous and side-effect
// free; rejected mutations leave the prior state intact.
package authoring
