package keywords

import (
	"regexp"
	"strings"
	"unicode"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// abbreviations never end a sentence even when followed by whitespace.
var abbreviations = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {}, "sr": {}, "jr": {},
	"inc": {}, "ltd": {}, "co": {}, "corp": {}, "vs": {}, "etc": {}, "approx": {},
	"dept": {}, "no": {}, "st": {},
}

// Words returns the alphanumeric tokens of text in order. Case is preserved.
func Words(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// Sentences splits text on terminal punctuation followed by whitespace and on blank lines.
// Dotted abbreviations such as "Ph.D." or "e.g." and common titles do not end a sentence.
func Sentences(text string) []string {
	runes := []rune(text)

	var (
		sentences []string
		start     int
	)

	flush := func(end int) {
		sentence := strings.TrimSpace(string(runes[start:end]))
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = end
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\n' && blankLineFollows(runes, i) {
			flush(i)
			continue
		}

		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if r == '.' && isAbbreviation(runes[start:i]) {
			continue
		}

		flush(i + 1)
	}

	flush(len(runes))

	return sentences
}

func blankLineFollows(runes []rune, i int) bool {
	for j := i + 1; j < len(runes); j++ {
		switch runes[j] {
		case '\n':
			return true
		case ' ', '\t', '\r':
			continue
		default:
			return false
		}
	}
	return false
}

// isAbbreviation inspects the token right before a period.
func isAbbreviation(prefix []rune) bool {
	end := len(prefix)
	begin := end
	for begin > 0 && !unicode.IsSpace(prefix[begin-1]) {
		begin--
	}

	token := string(prefix[begin:end])
	if token == "" {
		return false
	}

	if strings.Contains(token, ".") {
		return dottedAbbreviation(token)
	}

	if len([]rune(token)) == 1 && unicode.IsLetter([]rune(token)[0]) {
		return initialFollows(prefix[:begin])
	}

	_, ok := abbreviations[strings.ToLower(token)]
	return ok
}

// dottedAbbreviation accepts tokens like "Ph.D", "e.g" or "B.Sc" but not "Node.js".
func dottedAbbreviation(token string) bool {
	for _, part := range strings.Split(token, ".") {
		if len([]rune(part)) > 2 {
			return false
		}
	}
	return true
}

// initialFollows reports whether the token before a single letter marks it as a name initial,
// as in "John F. Kennedy" or "J. R. Tolkien". A letter opening the sentence counts as well.
func initialFollows(prefix []rune) bool {
	end := len(prefix)
	for end > 0 && unicode.IsSpace(prefix[end-1]) {
		end--
	}
	begin := end
	for begin > 0 && !unicode.IsSpace(prefix[begin-1]) {
		begin--
	}

	prev := []rune(strings.TrimSuffix(string(prefix[begin:end]), "."))
	if len(prev) == 0 {
		return true
	}
	for _, r := range prev {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return unicode.IsUpper(prev[0])
}
