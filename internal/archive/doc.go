// Package archive moves previous batch output out of the way.
package archive
