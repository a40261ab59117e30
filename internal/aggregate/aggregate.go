// =============================================================================
// AVC Purchase-Order Processor - Result Aggregation and Ordering
// =============================================================================
//
// This module computes the accepted-bucket price total and puts every bucket
// into its deterministic report order: CASE lines first, then BOX, then EA,
// then anything unresolved, with ties kept in original batch-file order.
//
// The comparator is an explicit rank lookup rather than pairwise branching;
// pairwise three-way comparisons over the codes are easy to get
// non-transitive, which breaks sort contracts.
//
// =============================================================================

package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bazic-ecom/avc-po-processor/internal/classify"
)

// uomRank is the report ordering of unit-of-measure codes. Codes not listed
// (including empty) sort last.
var uomRank = map[string]int{
	"CASE": 0,
	"BOX":  1,
	"EA":   2,
}

// unrankedUOM is the rank of any code missing from uomRank.
const unrankedUOM = 3

// rankOf returns the sort rank for a UOM code.
func rankOf(uomCode string) int {
	if r, ok := uomRank[uomCode]; ok {
		return r
	}
	return unrankedUOM
}

// AcceptedTotal sums TotalPrice across the accepted bucket.
func AcceptedTotal(accepted []classify.AcceptedEntry) decimal.Decimal {
	total := decimal.Zero
	for i := range accepted {
		total = total.Add(accepted[i].TotalPrice)
	}
	return total
}

// SortBuckets orders each bucket by UOM rank, in place. The sort is stable,
// so entries with equal rank keep their original batch-file order.
func SortBuckets(buckets *classify.Buckets) {
	sortAccepted(buckets.Accepted)
	sortRejected(buckets.Rejected)
	sortRejected(buckets.Suggested)
}

func sortAccepted(entries []classify.AcceptedEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return rankOf(entries[i].UOMCode) < rankOf(entries[j].UOMCode)
	})
}

func sortRejected(entries []classify.RejectedEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return rankOf(entries[i].UOMCode) < rankOf(entries[j].UOMCode)
	})
}
