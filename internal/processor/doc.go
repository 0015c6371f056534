// Package processor runs the localtranslator commands. It builds the API
// client, the session form and the providers from the effective settings
// and connects them to the terminal, the GUI or the API server.
package processor
