package split

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"vaeprep/pkg/dataprep"
)

// DefaultSeed keeps unconfigured runs reproducible.
const DefaultSeed int64 = 42

// Options controls a stratified split.
type Options struct {
	TestSize float64 // fraction of rows in the test partition, in (0, 1)
	Seed     int64
	// RequireCoverage fails the split when the partition sizes cannot give
	// every stratum a row on both sides.
	RequireCoverage bool
}

// DefaultOptions returns a 15% test split with DefaultSeed.
func DefaultOptions() Options {
	return Options{TestSize: 0.15, Seed: DefaultSeed}
}

// Result holds row positions of the two partitions. Together they cover every
// input position exactly once.
type Result struct {
	Train []int
	Test  []int
}

// Stratified splits positions 0..len(labels)-1 into train and test so that each
// label keeps roughly the same test fraction.
//
// The test partition has ceil(TestSize*n) rows. A label with fewer than two
// rows is rejected with a *StratumError. When both partitions have at least as
// many rows as there are labels, every label appears in both; otherwise rows
// are allocated proportionally, or ErrInsufficientCoverage is returned if
// RequireCoverage is set. This default differs on purpose from a strict
// stratified splitter, which refuses a test partition smaller than the number
// of labels. The same seed always yields the same split.
func Stratified(labels []string, opts Options) (Result, error) {
	if !(opts.TestSize > 0 && opts.TestSize < 1) {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidTestSize, opts.TestSize)
	}
	nTest, nTrain, err := partitionSizes(len(labels), opts.TestSize)
	if err != nil {
		return Result{}, err
	}

	codes, classes := dataprep.LabelEncode(labels)
	members := make([][]int, len(classes))
	for i, c := range codes {
		members[c] = append(members[c], i)
	}
	counts := make([]int, len(classes))
	for c, m := range members {
		if len(m) < 2 {
			return Result{}, &StratumError{Label: classes[c], Count: len(m)}
		}
		counts[c] = len(m)
	}

	k := len(classes)
	b := bounds{minTest: nTest >= k, minTrain: nTrain >= k}
	if opts.RequireCoverage && !(b.minTest && b.minTrain) {
		return Result{}, fmt.Errorf("%w: %d test and %d train rows for %d strata",
			ErrInsufficientCoverage, nTest, nTrain, k)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	alloc := allocate(counts, nTest, b, rng)

	res := Result{
		Train: make([]int, 0, nTrain),
		Test:  make([]int, 0, nTest),
	}
	for c, idx := range members {
		for j, p := range rng.Perm(len(idx)) {
			if j < alloc[c] {
				res.Test = append(res.Test, idx[p])
			} else {
				res.Train = append(res.Train, idx[p])
			}
		}
	}
	rng.Shuffle(len(res.Train), func(i, j int) { res.Train[i], res.Train[j] = res.Train[j], res.Train[i] })
	rng.Shuffle(len(res.Test), func(i, j int) { res.Test[i], res.Test[j] = res.Test[j], res.Test[i] })
	return res, nil
}

// partitionSizes rounds the test partition up. The epsilon keeps products such
// as 0.15*100 = 15.000000000000002 from rounding to 16.
func partitionSizes(n int, testSize float64) (nTest, nTrain int, err error) {
	nTest = int(math.Ceil(testSize*float64(n) - 1e-9))
	nTrain = n - nTest
	if nTest < 1 || nTrain < 1 {
		return 0, 0, fmt.Errorf("%w: %d rows with test size %v gives %d test and %d train rows",
			ErrEmptyPartition, n, testSize, nTest, nTrain)
	}
	return nTest, nTrain, nil
}

// bounds records which per-stratum minimums the partition sizes allow.
type bounds struct {
	minTest  bool // every stratum keeps one test row
	minTrain bool // every stratum keeps one train row
}

func (b bounds) lower() int {
	if b.minTest {
		return 1
	}
	return 0
}

func (b bounds) upper(count int) int {
	if b.minTrain {
		return count - 1
	}
	return count
}

// allocate distributes nTest rows over strata by largest remainder: each
// stratum gets floor(count*nTest/n) clamped to its bounds, then the shortfall
// or surplus is settled one row at a time in remainder order. Ties are broken
// by rng.
func allocate(counts []int, nTest int, b bounds, rng *rand.Rand) []int {
	total := 0
	for _, c := range counts {
		total += c
	}

	alloc := make([]int, len(counts))
	rem := make([]float64, len(counts))
	assigned := 0
	for i, c := range counts {
		ideal := float64(c) * float64(nTest) / float64(total)
		a := int(math.Floor(ideal))
		a = max(a, b.lower())
		a = min(a, b.upper(c))
		alloc[i] = a
		rem[i] = ideal - float64(a)
		assigned += a
	}

	order := rng.Perm(len(counts))
	sort.SliceStable(order, func(i, j int) bool { return rem[order[i]] > rem[order[j]] })

	for assigned < nTest {
		moved := false
		for _, i := range order {
			if assigned == nTest {
				break
			}
			if alloc[i] < b.upper(counts[i]) {
				alloc[i]++
				assigned++
				moved = true
			}
		}
		if !moved {
			break
		}
	}
	for assigned > nTest {
		moved := false
		for j := len(order) - 1; j >= 0; j-- {
			i := order[j]
			if assigned == nTest {
				break
			}
			if alloc[i] > b.lower() {
				alloc[i]--
				assigned--
				moved = true
			}
		}
		if !moved {
			break
		}
	}
	return alloc
}
