package keywords

import (
	"sort"
	"strings"
)

const (
	leadWeight  = 1.2
	trailWeight = 1.1
)

// Summarize picks the n highest scoring sentences and joins them in document order.
// Text with n or fewer sentences is returned unchanged.
func Summarize(text string, n int) string {
	sentences := Sentences(text)
	if len(sentences) <= n {
		return text
	}
	if n <= 0 {
		return ""
	}

	tokenized := make([][]string, len(sentences))
	counts := make(map[string]int)
	maxCount := 0
	for i, sentence := range sentences {
		tokenized[i] = Words(strings.ToLower(sentence))
		for _, word := range tokenized[i] {
			if englishStopWords.has(word) {
				continue
			}
			counts[word]++
			if counts[word] > maxCount {
				maxCount = counts[word]
			}
		}
	}

	total := float64(len(sentences))
	scores := make([]float64, len(sentences))
	for i, words := range tokenized {
		var score float64
		for _, word := range words {
			if c, ok := counts[word]; ok {
				score += float64(c) / float64(maxCount)
			}
		}

		switch {
		case float64(i) < total*0.2:
			score *= leadWeight
		case float64(i) > total*0.8:
			score *= trailWeight
		}
		scores[i] = score
	}

	indices := make([]int, len(sentences))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return scores[indices[a]] > scores[indices[b]]
	})

	picked := indices[:n]
	sort.Ints(picked)

	var b strings.Builder
	for k, i := range picked {
		if k > 0 {
			b.WriteString(separatorAfter(sentences[picked[k-1]]))
		}
		b.WriteString(sentences[i])
	}
	return b.String()
}

// separatorAfter keeps unpunctuated lines such as headings in their own paragraph.
func separatorAfter(sentence string) string {
	switch sentence[len(sentence)-1] {
	case '.', '!', '?':
		return " "
	}
	return "\n\n"
}
