// Package tsetlin implements multiclass Tsetlin machine classifiers over
// bit-packed boolean inputs.
//
// A Tsetlin machine learns propositional clauses over input literals with
// teams of bounded-state automata. This module composes one binary engine
// per class into a multiclass classifier trained with the one-vs-other
// pairwise scheme: each example trains its own class positively and one
// randomly sampled other class negatively.
//
// # Package Structure
//
//   - bitset: chunked 32-bit bitsets used for clause outputs and drop masks
//   - machine: the single-class engine (automaton state, clause evaluation,
//     Type I/II feedback, clause weighting)
//   - multiclass: the ensemble classifier (predict, fit with per-epoch
//     shuffling and clause/literal dropout, clause-output transform, bulk
//     state access)
//   - datasets: literal encoding into the fixed-stride chunk layout
//   - datasets/patterns: seeded synthetic noisy bit-pattern datasets
//   - cmd: train_patterns and infer_patterns demo tools
//
// Inputs are packed as number_of_patches * ta_chunks uint32 words per
// example, where each feature contributes its original and its negated
// literal. The datasets package produces this layout.
package tsetlin
