// Package schema defines the form definition data model shared by the
// authoring engine and the runtime renderer: field types, options, fields,
// and the FormDefinition document that is the wire contract with the forms
// persistence API. The field type set is closed; predicates such as
// ChoiceLike and FetchSourced are exhaustive switches so new kinds surface at
// compile time everywhere they matter.
package schema
