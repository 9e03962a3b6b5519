package mapreduce

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// RankedEntry is one line of the final ranking.
type RankedEntry struct {
	Word  string
	Count uint32
}

// Rank orders word counts by count descending. Ties are broken by word,
// ascending, so the output is the same however the counts were merged.
func Rank(wordCounts map[string]uint32) []RankedEntry {
	ranked := make([]RankedEntry, 0, len(wordCounts))
	for k, v := range wordCounts {
		ranked = append(ranked, RankedEntry{Word: k, Count: v})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Word < ranked[j].Word
	})

	return ranked
}

// TopKeywords returns the first n ranked entries as formatted strings.
// Each string is formatted as "word:count" (e.g., "learning:1153").
func TopKeywords(ranked []RankedEntry, n int) []string {
	limit := n
	if len(ranked) < n {
		limit = len(ranked)
	}
	if limit < 0 {
		limit = 0
	}

	keywords := make([]string, limit)
	for i := 0; i < limit; i++ {
		keywords[i] = fmt.Sprintf("%s:%d", ranked[i].Word, ranked[i].Count)
	}

	return keywords
}

// WriteRanking writes one "word<TAB>count" line per entry.
// It stops at the first write error.
func WriteRanking(w io.Writer, ranked []RankedEntry) error {
	bw := bufio.NewWriter(w)
	for _, e := range ranked {
		if _, err := fmt.Fprintf(bw, "%s\t%d\n", e.Word, e.Count); err != nil {
			return err
		}
	}
	return bw.Flush()
}
