// Package assets provides the page stylesheets embedded in standalone HTML
// exports.
//
// Styles live under styles/{name}.css and are compiled into the binary.
// Names are validated before lookup so a user-supplied name can never
// reach outside the styles directory.
package assets
