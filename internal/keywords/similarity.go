package keywords

import "strings"

const similarityKeywords = 50

// Similarity returns the share, in percent, of the job description's top keywords that also
// occur in the CV. The result is 0 when the job description has no keywords and never exceeds 100.
func Similarity(jdText, cvText string) float64 {
	jdKeywords := Keywords(jdText, similarityKeywords)
	if len(jdKeywords) == 0 {
		return 0
	}

	cvWords := make(set)
	for _, word := range Words(strings.ToLower(cvText)) {
		cvWords[word] = struct{}{}
	}

	matched := 0
	for _, keyword := range jdKeywords {
		if cvWords.has(keyword) {
			matched++
		}
	}

	score := float64(matched) / float64(len(jdKeywords)) * 100
	if score > 100 {
		return 100
	}
	return score
}
