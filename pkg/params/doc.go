// Package params binds the k-mer length K at build time and derives the
// word widths the rest of the module is instantiated with. K is fixed
// for the lifetime of a build; changing it means regenerating the
// constants file and recompiling.
//
//go:generate go run github.com/kmerlab/lmer/cmd/genparams -k 31 -o params.go
package params
