// Package session resolves where restage keeps its manifest and scratch
// directory and serializes the operations that touch them.
package session
