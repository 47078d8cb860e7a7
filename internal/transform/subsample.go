// internal/transform/subsample.go
package transform

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/mwiater/mteb/internal/datasets"
)

// DefaultSampleSize is the per-split budget used when tasks subsample.
const DefaultSampleSize = 2048

// StratifiedSubsample shrinks each named split that exceeds n rows to exactly n
// rows, keeping label proportions as close to the original as possible. The
// selection depends only on the input order and seed. Kept rows stay in their
// original relative order. Splits not named are copied unchanged.
func StratifiedSubsample(dd datasets.DatasetDict, seed int64, splits []string, labelCol string, n int) (datasets.DatasetDict, error) {
	if n <= 0 {
		return nil, fmt.Errorf("stratified subsample: sample size must be positive, got %d", n)
	}

	out := make(datasets.DatasetDict, len(dd))
	for _, name := range dd.SplitNames() {
		tbl, err := dd.Split(name)
		if err != nil {
			return nil, fmt.Errorf("stratified subsample: %w", err)
		}
		out[name] = tbl.Clone()
	}

	for _, split := range splits {
		tbl, err := dd.Split(split)
		if err != nil {
			return nil, fmt.Errorf("stratified subsample: %w", err)
		}
		if tbl.Len() <= n {
			continue
		}
		labels, err := tbl.Column(labelCol)
		if err != nil {
			return nil, fmt.Errorf("stratified subsample split %s: %w", split, err)
		}
		indices, err := stratifiedIndices(labels, n, seed, split)
		if err != nil {
			return nil, err
		}
		sub, err := tbl.Select(indices)
		if err != nil {
			return nil, fmt.Errorf("stratified subsample split %s: %w", split, err)
		}
		out[split] = sub
	}
	return out, nil
}

func stratifiedIndices(labels []any, n int, seed int64, split string) ([]int, error) {
	groups, err := groupByLabel(labels)
	if err != nil {
		return nil, fmt.Errorf("stratified subsample split %s: %w", split, err)
	}
	if err := checkGroups(groups, split); err != nil {
		return nil, err
	}
	if n < len(groups) {
		return nil, fmt.Errorf("stratified subsample split %s: sample size %d is smaller than the %d label classes", split, n, len(groups))
	}

	sizes := make([]int, len(groups))
	for i, g := range groups {
		sizes[i] = len(g.indices)
	}
	quotas := allocateQuotas(sizes, len(labels), n)

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	picked := make([]int, 0, n)
	for i, g := range groups {
		idx := make([]int, len(g.indices))
		copy(idx, g.indices)
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
		picked = append(picked, idx[:quotas[i]]...)
	}
	sort.Ints(picked)
	return picked, nil
}

// allocateQuotas splits n slots across classes by largest remainder. Ties on the
// remainder go to the class seen first.
func allocateQuotas(sizes []int, total, n int) []int {
	quotas := make([]int, len(sizes))
	type remainder struct {
		class int
		frac  float64
	}
	rems := make([]remainder, len(sizes))
	assigned := 0
	for i, size := range sizes {
		exact := float64(size) * float64(n) / float64(total)
		quotas[i] = int(exact)
		if quotas[i] > size {
			quotas[i] = size
		}
		assigned += quotas[i]
		rems[i] = remainder{class: i, frac: exact - float64(quotas[i])}
	}
	sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for left := n - assigned; left > 0; {
		progressed := false
		for _, r := range rems {
			if left == 0 {
				break
			}
			if quotas[r.class] < sizes[r.class] {
				quotas[r.class]++
				left--
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return quotas
}
