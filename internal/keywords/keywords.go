// Package keywords implements frequency based text utilities: keyword and phrase extraction,
// extractive summaries, bag-of-words similarity and requirement scraping.
package keywords

import (
	"sort"
	"strings"
)

const minKeywordLength = 3

// Keywords returns the topN most frequent non stop-word tokens of text, lowercased.
// Tokens shorter than three characters are ignored. Ties keep first-occurrence order.
func Keywords(text string, topN int) []string {
	var counter frequency
	for _, word := range Words(strings.ToLower(text)) {
		if len([]rune(word)) < minKeywordLength || documentStopWords.has(word) {
			continue
		}
		counter.add(word)
	}
	return counter.top(topN)
}

// KeyPhrases returns the topN most frequent two and three word phrases. Phrases are built
// from the stop-word filtered tokens of each sentence and never span sentences.
func KeyPhrases(text string, topN int) []string {
	var counter frequency
	for _, sentence := range Sentences(text) {
		var tokens []string
		for _, word := range Words(strings.ToLower(sentence)) {
			if !phraseStopWords.has(word) {
				tokens = append(tokens, word)
			}
		}

		for size := 2; size <= 3; size++ {
			for i := 0; i+size <= len(tokens); i++ {
				counter.add(strings.Join(tokens[i:i+size], " "))
			}
		}
	}
	return counter.top(topN)
}

// frequency counts terms and remembers the order they were first seen in.
type frequency struct {
	order  []string
	counts map[string]int
}

func (f *frequency) add(term string) {
	if f.counts == nil {
		f.counts = make(map[string]int)
	}
	if _, seen := f.counts[term]; !seen {
		f.order = append(f.order, term)
	}
	f.counts[term]++
}

func (f *frequency) top(n int) []string {
	if n <= 0 || len(f.order) == 0 {
		return []string{}
	}

	ranked := make([]string, len(f.order))
	copy(ranked, f.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return f.counts[ranked[i]] > f.counts[ranked[j]]
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
