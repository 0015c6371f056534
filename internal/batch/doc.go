// Package batch reads batch files of phrases to translate.
package batch
