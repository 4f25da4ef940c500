package model

// Package is one discovered workspace package: a manifest-carrying
// directory plus the source files selected for analysis. Finalized during
// workspace loading and not mutated afterwards.
type Package struct {
	Name  string
	Root  string
	Files []string
}
