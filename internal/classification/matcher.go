package classification

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Veraticus/feedback-topics/internal/common"
	"github.com/Veraticus/feedback-topics/internal/model"
	"golang.org/x/text/unicode/norm"
)

// MinTokenLength is the shortest run of letters considered a token.
const MinTokenLength = 3

var (
	// English tables only see ASCII letters.
	asciiToken = regexp.MustCompile(fmt.Sprintf(`(?i)[a-z]{%d,}`, MinTokenLength))
	// Other languages include accented letters.
	unicodeToken = regexp.MustCompile(fmt.Sprintf(`(?i)\p{L}{%d,}`, MinTokenLength))
)

// pluralSuffixes lets a keyword match its plural form ("producto" -> "productos").
var pluralSuffixes = []string{"s", "es"}

// MatchKind says how a text was attributed to a category.
type MatchKind string

const (
	// MatchNone means the category did not match.
	MatchNone MatchKind = ""
	// MatchPhrase means a configured phrase appeared in the text.
	MatchPhrase MatchKind = "phrase"
	// MatchKeyword means a configured keyword appeared as a token.
	MatchKeyword MatchKind = "keyword"
)

// CategoryMatcher is the compiled form of a TopicCategory.
type CategoryMatcher struct {
	tokenRegex *regexp.Regexp
	keywords   map[string]struct{}
	model.TopicCategory
}

// NewCategoryMatcher compiles a category definition. Every keyword must be a
// single token the language's token pattern can produce.
func NewCategoryMatcher(tc model.TopicCategory) (*CategoryMatcher, error) {
	if len(tc.Keywords) == 0 {
		return nil, fmt.Errorf("%w: category %s (%s)", common.ErrEmptyKeywords, tc.Category, tc.Language)
	}

	tokenRegex := TokenPattern(tc.Language)
	keywords := make(map[string]struct{}, len(tc.Keywords))
	for _, kw := range tc.Keywords {
		kw = Normalize(kw)
		if tokenRegex.FindString(kw) != kw {
			return nil, fmt.Errorf("%w: keyword %q of category %s (%s) is not a single token of at least %d letters",
				common.ErrInvalidConfig, kw, tc.Category, tc.Language, MinTokenLength)
		}
		keywords[kw] = struct{}{}
	}

	phrases := make([]string, 0, len(tc.Phrases))
	for _, phrase := range tc.Phrases {
		phrases = append(phrases, Normalize(phrase))
	}
	tc.Phrases = phrases

	return &CategoryMatcher{
		TopicCategory: tc,
		tokenRegex:    tokenRegex,
		keywords:      keywords,
	}, nil
}

// TokenPattern returns the token regex used for a language.
func TokenPattern(language model.Language) *regexp.Regexp {
	if language == model.LanguageEnglish {
		return asciiToken
	}
	return unicodeToken
}

// Normalize composes accents (NFC) and lower-cases text, the form Match expects.
func Normalize(text string) string {
	return strings.ToLower(norm.NFC.String(text))
}

// Tokens extracts the tokens of an already lower-cased text.
func (m *CategoryMatcher) Tokens(lowered string) []string {
	return m.tokenRegex.FindAllString(lowered, -1)
}

// Match reports whether the lower-cased text belongs to the category. Decomposed
// accents are composed first so "o" + U+0301 still reads as "ó". Phrases are
// checked before keywords. A panic during evaluation counts as no match.
func (m *CategoryMatcher) Match(lowered string) (kind MatchKind) {
	defer func() {
		if r := recover(); r != nil {
			common.LogWarn("Category match failed, treating as no match", common.Fields{
				"category": m.Category,
				"language": m.Language,
				"panic":    r,
			})
			kind = MatchNone
		}
	}()

	lowered = norm.NFC.String(lowered)
	if m.matchPhrase(lowered) {
		return MatchPhrase
	}
	if m.matchKeyword(m.Tokens(lowered)) {
		return MatchKeyword
	}
	return MatchNone
}

func (m *CategoryMatcher) matchPhrase(lowered string) bool {
	for _, phrase := range m.Phrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

func (m *CategoryMatcher) matchKeyword(tokens []string) bool {
	for _, token := range tokens {
		if m.isKeyword(token) {
			return true
		}
	}
	return false
}

func (m *CategoryMatcher) isKeyword(token string) bool {
	if _, ok := m.keywords[token]; ok {
		return true
	}
	for _, suffix := range pluralSuffixes {
		stem, found := strings.CutSuffix(token, suffix)
		if !found {
			continue
		}
		if _, ok := m.keywords[stem]; ok {
			return true
		}
	}
	return false
}
