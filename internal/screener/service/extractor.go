package service

import (
	"regexp"
	"strconv"
	"strings"

	"golang-stock-screener/internal/screener/dto"
)

var (
	limitPattern = regexp.MustCompile(`(top|first)\s*(\d+)`)
	// directionLimitPattern catches a count written after a direction word,
	// as in "low 10 stocks". It is only consulted when limitPattern misses.
	directionLimitPattern = regexp.MustCompile(`\b(bottom|last|high|highest|low|lowest|cheap|cheapest|expensive|costliest)\s*(\d+)\b`)
	wordPattern           = regexp.MustCompile(`[a-z]+`)
	synonymPhrasePattern  = buildPhrasePattern()
)

type intentSynonyms struct {
	intent   dto.Intent
	synonyms []string
}

// intentTable is checked in order; the first intent with a matching synonym wins.
var intentTable = []intentSynonyms{
	{dto.IntentHighPrice, []string{"high", "highest", "top", "expensive", "costliest"}},
	{dto.IntentLowPrice, []string{"low", "lowest", "cheap", "cheapest", "lowet"}},
	{dto.IntentHighVolume, []string{"most traded", "high volume", "top volume"}},
	{dto.IntentLowVolume, []string{"low volume", "least traded"}},
}

var genericWords = map[string]struct{}{
	"stock": {}, "stocks": {}, "market": {}, "nse": {}, "shares": {},
	"show": {}, "me": {}, "get": {}, "find": {}, "give": {}, "list": {},
}

var smallTalkPhrases = map[string]struct{}{
	"hi": {}, "hello": {}, "hey": {}, "hii": {}, "hlo": {},
	"good morning": {}, "good evening": {}, "good afternoon": {},
}

var synonymWords = func() map[string]struct{} {
	words := make(map[string]struct{})
	for _, entry := range intentTable {
		for _, s := range entry.synonyms {
			words[s] = struct{}{}
		}
	}
	return words
}()

// buildPhrasePattern matches the multi-word synonyms as whole words.
func buildPhrasePattern() *regexp.Regexp {
	var phrases []string
	for _, entry := range intentTable {
		for _, s := range entry.synonyms {
			if strings.Contains(s, " ") {
				phrases = append(phrases, regexp.QuoteMeta(s))
			}
		}
	}
	return regexp.MustCompile(`\b(` + strings.Join(phrases, "|") + `)\b`)
}

// QueryExtractor is the rule-based pass over a raw query.
type QueryExtractor interface {
	// Extract returns the structured query and true when the rules matched.
	// When they did not, the returned query still carries the extracted
	// limit so the translator can back-fill it.
	Extract(query string) (dto.StructuredQuery, bool)
}

type queryExtractor struct{}

// NewQueryExtractor creates a new rule-based query extractor.
func NewQueryExtractor() QueryExtractor {
	return queryExtractor{}
}

func (queryExtractor) Extract(query string) (dto.StructuredQuery, bool) {
	text := strings.ToLower(strings.TrimSpace(query))

	if _, ok := smallTalkPhrases[text]; ok {
		return dto.StructuredQuery{Ignore: true}, true
	}

	q := dto.StructuredQuery{
		Intent:   DetectIntent(text),
		Keywords: ExtractKeywords(text),
		Filters:  []dto.Filter{},
		Limit:    ExtractLimit(text),
	}
	if q.Intent != dto.IntentNone || len(q.Keywords) > 0 {
		return q, true
	}
	return q, false
}

// ExtractLimit finds the first "top N" or "first N" in lower-cased text.
// Without one, a count following a direction word ("low 10") is used.
func ExtractLimit(text string) *int {
	m := limitPattern.FindStringSubmatch(text)
	if m == nil {
		m = directionLimitPattern.FindStringSubmatch(text)
	}
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return nil
	}
	return &n
}

// DetectIntent returns the first intent whose synonym occurs in lower-cased text.
func DetectIntent(text string) dto.Intent {
	for _, entry := range intentTable {
		for _, s := range entry.synonyms {
			if strings.Contains(text, s) {
				return entry.intent
			}
		}
	}
	return dto.IntentNone
}

// ExtractKeywords returns the alphabetic words of text that are neither
// generic market words nor intent synonyms. Multi-word synonyms such as
// "most traded" are removed as a whole before splitting.
func ExtractKeywords(text string) []string {
	text = synonymPhrasePattern.ReplaceAllString(strings.ToLower(text), " ")
	keywords := []string{}
	for _, w := range wordPattern.FindAllString(text, -1) {
		if _, generic := genericWords[w]; generic {
			continue
		}
		if _, synonym := synonymWords[w]; synonym {
			continue
		}
		keywords = append(keywords, w)
	}
	return keywords
}
