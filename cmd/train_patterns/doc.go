// Package main provides a demo program for training a multiclass Tsetlin
// machine on a synthetic noisy bit-pattern dataset. It reports training-set
// accuracy and can save the trained state buffers for infer_patterns.
package main
