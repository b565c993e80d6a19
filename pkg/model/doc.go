// Package model defines the field descriptions a form controller is built
// from. A Field couples an identifier with its declared Kind, its current
// Value and the ordered Validators run against it. Fields keeps insertion
// order, which is also the presentation order renderers follow.
//
// Value is a closed union of string and bool: checkbox fields carry booleans,
// every other kind carries text. Kind is an open string so definitions loaded
// from configuration can name kinds this package does not know; ParseKind and
// the widgets package treat those as plain text inputs.
package model
