// Package template defines the template engine seam the HTML renderer relies
// on. The pongo2-backed implementation lives in the gotemplate subpackage.
package template
