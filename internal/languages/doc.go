// Package languages defines the fixed set of target languages the
// translator supports. The set is read-only and ordered; the first
// entry is the default selection.
package languages
