// Package languages provides a deterministic language catalogue, search
// helpers, and a small net/http handler that returns JSON options for
// fetch-sourced form fields.
//
// The default handler responds to GET and HEAD requests and supports query
// and limit parameters to filter results. The backing data is loaded from
// the embedded ISO 639-1 list under data/languages.txt.
package languages
