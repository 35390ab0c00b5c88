// Package client talks to the gallery backend over HTTP. It posts form
// submissions as multipart bodies and issues delete requests carrying the
// security token header. Redirects returned by the backend are reported, not
// followed.
package client
