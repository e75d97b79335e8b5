package classification

import (
	"sync"
	"testing"

	"github.com/Veraticus/feedback-topics/internal/common"
	"github.com/Veraticus/feedback-topics/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTables_OneEntryPerCategory(t *testing.T) {
	for _, table := range DefaultTables() {
		t.Run(table.Language.String(), func(t *testing.T) {
			got := make([]model.BusinessCategory, 0, len(table.Categories))
			for _, tc := range table.Categories {
				got = append(got, tc.Category)
				assert.Equal(t, table.Language, tc.Language)
				assert.GreaterOrEqual(t, len(tc.Keywords), 4, "category %s", tc.Category)
				assert.LessOrEqual(t, len(tc.Keywords), 8, "category %s", tc.Category)
				assert.NotEmpty(t, tc.Phrases, "category %s", tc.Category)
				assert.LessOrEqual(t, len(tc.Phrases), 2, "category %s", tc.Category)
			}
			assert.Equal(t, model.AllBusinessCategories(), got)
		})
	}
}

func TestSpanishCategories_DurabilityAndValue(t *testing.T) {
	tests := []struct {
		text string
		want model.BusinessCategory
	}{
		{text: "la durabilidad deja mucho que desear", want: model.CategoryProduct},
		{text: "no vale su valor", want: model.CategoryPrice},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			var matched []model.BusinessCategory
			for _, tc := range SpanishCategories() {
				m, err := NewCategoryMatcher(tc)
				require.NoError(t, err)
				if m.Match(tt.text) != MatchNone {
					matched = append(matched, tc.Category)
				}
			}
			assert.Equal(t, []model.BusinessCategory{tt.want}, matched)
		})
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, []model.Language{model.LanguageSpanish, model.LanguageEnglish}, r.Languages())
	assert.True(t, r.Supports(model.LanguageSpanish))
	assert.False(t, r.Supports(model.LanguageAuto))

	es, err := r.Lookup(model.LanguageSpanish)
	require.NoError(t, err)
	assert.Len(t, es, 4)

	matchers, err := r.Matchers(model.LanguageEnglish)
	require.NoError(t, err)
	require.Len(t, matchers, 4)
	assert.Equal(t, model.CategoryProduct, matchers[0].Category)

	_, err = r.Lookup(model.LanguageAuto)
	assert.ErrorIs(t, err, common.ErrUnsupportedLanguage)
	_, err = r.Matchers(model.Language("fr"))
	assert.ErrorIs(t, err, common.ErrUnsupportedLanguage)
}

func TestRegistry_LookupReturnsCopy(t *testing.T) {
	r := DefaultRegistry()

	es, err := r.Lookup(model.LanguageSpanish)
	require.NoError(t, err)
	es[0] = model.TopicCategory{}

	again, err := r.Lookup(model.LanguageSpanish)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryProduct, again[0].Category)
}

func TestNewRegistry_Validation(t *testing.T) {
	price := model.MustTopicCategory(model.CategoryPrice, model.LanguageEnglish, []string{"price"}, nil)
	spanishPrice := model.MustTopicCategory(model.CategoryPrice, model.LanguageSpanish, []string{"precio"}, nil)

	tests := []struct {
		name    string
		errMsg  string
		tables  []Table
		wantErr bool
	}{
		{
			name:   "single valid table",
			tables: []Table{{Language: model.LanguageEnglish, Categories: []model.TopicCategory{price}}},
		},
		{
			name: "duplicate language",
			tables: []Table{
				{Language: model.LanguageEnglish, Categories: []model.TopicCategory{price}},
				{Language: model.LanguageEnglish, Categories: []model.TopicCategory{price}},
			},
			wantErr: true,
			errMsg:  "duplicate table",
		},
		{
			name:    "empty table",
			tables:  []Table{{Language: model.LanguageEnglish}},
			wantErr: true,
			errMsg:  "has no categories",
		},
		{
			name:    "duplicate category",
			tables:  []Table{{Language: model.LanguageEnglish, Categories: []model.TopicCategory{price, price}}},
			wantErr: true,
			errMsg:  "defined twice",
		},
		{
			name:    "language mismatch",
			tables:  []Table{{Language: model.LanguageEnglish, Categories: []model.TopicCategory{spanishPrice}}},
			wantErr: true,
			errMsg:  "inside the en table",
		},
		{
			name: "empty keywords built by hand",
			tables: []Table{{Language: model.LanguageEnglish, Categories: []model.TopicCategory{
				{Category: model.CategoryPrice, Language: model.LanguageEnglish},
			}}},
			wantErr: true,
			errMsg:  "at least one keyword",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRegistry(tt.tables...)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, r)
		})
	}
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	r := DefaultRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			matchers, err := r.Matchers(model.LanguageSpanish)
			assert.NoError(t, err)
			for _, m := range matchers {
				m.Match("el precio del envío")
			}
		}()
	}
	wg.Wait()
}
