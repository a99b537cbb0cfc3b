// Package runtime renders and fills published form definitions. A Session
// tracks the value map for one form being filled out, derives computed
// fields from their dependencies, loads remote option lists for
// fetch-sourced fields, drives the file-or-url input mode machine and
// assembles the validated submission payload.
package runtime
