// Package session holds the translator form's transient state and the
// three user operations that mutate it: translate, speak and the
// combined translate-and-speak. It is independent of any UI toolkit;
// the GUI and the CLI both drive a Form and render its snapshots.
package session
