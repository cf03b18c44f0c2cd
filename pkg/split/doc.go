// Package split partitions labelled rows into train and test sets.
//
// Stratified keeps each label's share of the test set close to the requested
// fraction. Rows are drawn with math/rand seeded from Options.Seed, so a run
// can be repeated exactly. Allocation per label uses the largest remainder
// method, with the extra rule that every label lands in both partitions
// whenever the partition sizes make that possible.
package split
