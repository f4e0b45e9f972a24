// Package catalog holds the selectable dependent resources of a machine
// request: one Catalog per resource type (images, sizes).
//
// A catalog is owned and filled by its caller. Consumers only read its
// condition and items. Each fetch is tagged with a Ticket so that a result
// arriving after the catalog was invalidated is dropped instead of applied.
package catalog
