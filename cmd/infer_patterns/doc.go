// Package main provides a demo program for evaluating a multiclass Tsetlin
// machine trained by train_patterns. It regenerates the same synthetic
// dataset from the seed, loads the saved state buffers and reports accuracy.
package main
