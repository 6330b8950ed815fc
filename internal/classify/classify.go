// Package classify provides best-effort AI suggestions for error reports:
// a short descriptive title, a system-category label, and a free-text image
// diagnosis. Suggestions are advisory; a provider outage must never block
// report submission.
package classify

import "context"

// MaxTitleLength is the maximum length of a suggested title in runes
const MaxTitleLength = 50

// MinTitleContentLength is the minimum content length for title suggestion
const MinTitleContentLength = 10

// MinCategoryContentLength is the minimum content length for category suggestion
const MinCategoryContentLength = 5

// TitleSuggester produces a short descriptive title for report content
type TitleSuggester interface {
	SuggestTitle(ctx context.Context, content string) (string, error)
}

// CategoryClassifier labels report content with a system category
type CategoryClassifier interface {
	SuggestCategory(ctx context.Context, content string) (string, error)
}

// ImageAnalyzer produces a free-text diagnosis of an attached image
type ImageAnalyzer interface {
	AnalyzeImage(ctx context.Context, image []byte) (string, error)
}

// Suggester is the full classification-assist capability surface
type Suggester interface {
	TitleSuggester
	CategoryClassifier
	ImageAnalyzer
}

// ProviderError marks a failure of the external provider (network, HTTP
// status, malformed output). The fallback decorator absorbs exactly this
// class of error; anything else propagates.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return "classify provider: " + e.Op + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// TruncateTitle limits a title to MaxTitleLength runes, marking the cut
func TruncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= MaxTitleLength {
		return title
	}
	return string(runes[:MaxTitleLength-3]) + "..."
}
