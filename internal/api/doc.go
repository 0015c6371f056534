// Package api is the HTTP client for the translation service. It speaks
// the three JSON endpoints (translate, text-to-speech, translate-and-speak)
// and turns non-2xx responses into *Error values carrying the server's
// detail message when one is present.
package api
