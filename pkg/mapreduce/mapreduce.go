package mapreduce

import "iter"

// Map counts the tokens of a single worker.
func Map(tokens iter.Seq[[]byte]) map[string]uint32 {
	counts := make(map[string]uint32)
	for tok := range tokens {
		counts[string(tok)]++
	}
	return counts
}

// Reduce aggregates a slice of word frequency maps into a single map.
func Reduce(intermediate []map[string]uint32) map[string]uint32 {
	finalResults := make(map[string]uint32)

	for _, counts := range intermediate {
		for word, count := range counts {
			finalResults[word] += count
		}
	}

	return finalResults
}

// Total returns the number of words counted.
func Total(counts map[string]uint32) uint64 {
	var total uint64
	for _, c := range counts {
		total += uint64(c)
	}
	return total
}
