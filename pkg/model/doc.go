// Package model defines the gallery record cached by the client, the image
// slots edited by the record form, and the transient edit buffer that backs a
// create or edit session. Decoding from host data is lenient: the status flag
// accepts booleans, numbers, and numeric strings, while missing descriptions
// and image lists collapse to their zero values.
package model
