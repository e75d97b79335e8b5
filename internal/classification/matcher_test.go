package classification

import (
	"strings"
	"testing"

	"github.com/Veraticus/feedback-topics/internal/common"
	"github.com/Veraticus/feedback-topics/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategoryMatcher(t *testing.T) {
	tests := []struct {
		wantErr  error
		name     string
		category model.TopicCategory
	}{
		{
			name: "valid english category",
			category: model.TopicCategory{
				Category: model.CategoryPrice,
				Language: model.LanguageEnglish,
				Keywords: []string{"price", "cost"},
			},
		},
		{
			name: "accented spanish keyword",
			category: model.TopicCategory{
				Category: model.CategoryDelivery,
				Language: model.LanguageSpanish,
				Keywords: []string{"envío"},
			},
		},
		{
			name: "decomposed spanish keyword",
			category: model.TopicCategory{
				Category: model.CategoryDelivery,
				Language: model.LanguageSpanish,
				Keywords: []string{"envi\u0301o"},
			},
		},
		{
			name: "empty keywords",
			category: model.TopicCategory{
				Category: model.CategoryPrice,
				Language: model.LanguageEnglish,
			},
			wantErr: common.ErrEmptyKeywords,
		},
		{
			name: "keyword shorter than a token",
			category: model.TopicCategory{
				Category: model.CategoryPrice,
				Language: model.LanguageEnglish,
				Keywords: []string{"ok"},
			},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name: "multi word keyword",
			category: model.TopicCategory{
				Category: model.CategoryPrice,
				Language: model.LanguageEnglish,
				Keywords: []string{"too much"},
			},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name: "accented keyword in english table",
			category: model.TopicCategory{
				Category: model.CategoryPrice,
				Language: model.LanguageEnglish,
				Keywords: []string{"café"},
			},
			wantErr: common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewCategoryMatcher(tt.category)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, m)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.category.Category, m.Category)
		})
	}
}

func TestCategoryMatcher_Match(t *testing.T) {
	service := model.MustTopicCategory(model.CategoryService, model.LanguageSpanish,
		[]string{"servicio", "atención", "atencion"},
		[]string{"mal servicio", "mala atención"})
	product := model.MustTopicCategory(model.CategoryProduct, model.LanguageEnglish,
		[]string{"product", "quality"},
		[]string{"stopped working"})

	tests := []struct {
		category model.TopicCategory
		name     string
		text     string
		want     MatchKind
	}{
		{name: "phrase wins over keyword", category: service, text: "Mal servicio en la tienda", want: MatchPhrase},
		{name: "accented phrase", category: service, text: "Una MALA ATENCIÓN", want: MatchPhrase},
		{name: "accented keyword", category: service, text: "la atención fue correcta", want: MatchKeyword},
		{name: "decomposed accented keyword", category: service, text: "la atenci\u0301n fue pésima", want: MatchKeyword},
		{name: "decomposed accented phrase", category: service, text: "una mala atenci\u0301n", want: MatchPhrase},
		{name: "plain keyword", category: service, text: "buen servicio", want: MatchKeyword},
		{name: "plural keyword", category: service, text: "los servicios son lentos", want: MatchKeyword},
		{name: "keyword inside a longer word does not match", category: service, text: "servicioso", want: MatchNone},
		{name: "no match", category: service, text: "todo bien", want: MatchNone},
		{name: "empty text", category: service, text: "", want: MatchNone},
		{name: "english keyword", category: product, text: "great product", want: MatchKeyword},
		{name: "english plural", category: product, text: "their products rock", want: MatchKeyword},
		{name: "english phrase", category: product, text: "it stopped working", want: MatchPhrase},
		{name: "substring of keyword is not a token", category: product, text: "reproduction", want: MatchNone},
		{name: "punctuation around keyword", category: product, text: "quality!!!", want: MatchKeyword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewCategoryMatcher(tt.category)
			require.NoError(t, err)

			assert.Equal(t, tt.want, m.Match(strings.ToLower(tt.text)))
		})
	}
}

func TestCategoryMatcher_MatchRecoversFromPanic(t *testing.T) {
	m := &CategoryMatcher{
		TopicCategory: model.TopicCategory{
			Category: model.CategoryPrice,
			Language: model.LanguageEnglish,
			Keywords: []string{"price"},
		},
	}

	// A matcher without a compiled token pattern panics inside Tokens.
	assert.Equal(t, MatchNone, m.Match("the price"))
}

func TestTokenPattern(t *testing.T) {
	assert.Equal(t, []string{"caf", "good"}, TokenPattern(model.LanguageEnglish).FindAllString("café is good", -1))
	assert.Equal(t, []string{"café", "bueno"}, TokenPattern(model.LanguageSpanish).FindAllString("café es bueno", -1))
}
