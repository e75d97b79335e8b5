// Package sentiment provides a local fallback scorer for feedback that reached
// the topic engine without a sentiment label.
package sentiment

import (
	"bytes"
	"math"
	"regexp"
	"strings"

	"github.com/Veraticus/feedback-topics/internal/model"
	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
	"golang.org/x/net/html"
)

var (
	markdownLink = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURL      = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// Compound score boundaries between star ratings.
const (
	veryNegativeMax = -0.6
	negativeMax     = -0.2
	neutralMax      = 0.2
	positiveMax     = 0.6
)

// VaderScorer maps VADER compound scores onto the five star labels.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer creates a scorer. The analyzer loads its lexicon once.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the star label for text and the absolute compound score as confidence.
func (v *VaderScorer) Score(text string) (model.SentimentLabel, float64) {
	compound := v.analyzer.PolarityScores(PlainText(text)).Compound
	return LabelForCompound(compound), math.Min(math.Abs(compound), 1)
}

// LabelForCompound buckets a compound score in [-1, 1].
func LabelForCompound(compound float64) model.SentimentLabel {
	switch {
	case compound <= veryNegativeMax:
		return model.SentimentVeryNegative
	case compound <= negativeMax:
		return model.SentimentNegative
	case compound < neutralMax:
		return model.SentimentNeutral
	case compound < positiveMax:
		return model.SentimentPositive
	default:
		return model.SentimentVeryPositive
	}
}

// PlainText renders markdown to text and drops links, keeping link labels.
// Entities escaped by the renderer are decoded back.
func PlainText(input string) string {
	input = markdownLink.ReplaceAllString(input, "$1")
	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())

	var b strings.Builder
	z := html.NewTokenizer(bytes.NewReader(rendered))
	for {
		switch z.Next() {
		case html.ErrorToken:
			plain := bareURL.ReplaceAllString(b.String(), "")
			return strings.Join(strings.Fields(plain), " ")
		case html.TextToken:
			b.Write(z.Text())
		default:
			b.WriteByte(' ')
		}
	}
}
