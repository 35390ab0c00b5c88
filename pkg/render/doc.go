// Package render defines the renderer contract shared by the HTML and text
// front ends, along with the options, hidden form fields and label
// localisation they consume.
package render
