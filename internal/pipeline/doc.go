// Package pipeline fans work out to a pool of goroutines and hands the
// results back in input order, so parallel decoding never reorders output.
package pipeline
