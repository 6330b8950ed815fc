package classify

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// For any content string, the local classifier must always produce a
// non-empty title of at most 50 runes without ever returning an error —
// it is the last line of defense behind the remote provider.
func TestProperty_KeywordTitleAlwaysUsable(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	k := NewKeywordClassifier()

	properties.Property("Suggested title is non-empty and at most 50 runes", prop.ForAll(
		func(content string) bool {
			title, err := k.SuggestTitle(context.Background(), content)
			if err != nil {
				return false
			}
			n := len([]rune(title))
			return n > 0 && n <= MaxTitleLength
		},
		gen.AnyString(),
	))

	properties.Property("Suggested category is always one of the closed set", prop.ForAll(
		func(content string) bool {
			category, err := k.SuggestCategory(context.Background(), content)
			if err != nil {
				return false
			}
			switch category {
			case "역무지원", "안전관리", "시설물관리":
				return true
			}
			return false
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
