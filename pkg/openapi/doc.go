// Package openapi imports OpenAPI 3 operations as form definitions. The
// request body of an operation maps to a field list: property names become
// field IDs, JSON types and formats pick the field type, enums become
// options and the x-formkit extension pins anything the shape alone cannot
// express.
package openapi
