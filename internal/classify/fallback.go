package classify

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// FallbackCounter counts suggestions served by the local fallback
type FallbackCounter interface {
	IncrementClassifyFallback(operation string)
}

// FallbackSuggester composes a primary (remote) suggester with a local
// deterministic fallback. Provider-class errors are absorbed and delegated;
// any other error propagates unchanged so programming errors stay visible.
type FallbackSuggester struct {
	primary  Suggester
	fallback Suggester
	counter  FallbackCounter
	logger   *zap.Logger
}

// NewFallbackSuggester creates a new FallbackSuggester. A nil primary means
// no remote provider is configured and every call goes to the fallback.
// The counter may be nil.
func NewFallbackSuggester(primary, fallback Suggester, counter FallbackCounter, logger *zap.Logger) *FallbackSuggester {
	return &FallbackSuggester{
		primary:  primary,
		fallback: fallback,
		counter:  counter,
		logger:   logger,
	}
}

func (f *FallbackSuggester) countFallback(operation string) {
	if f.counter != nil {
		f.counter.IncrementClassifyFallback(operation)
	}
}

// SuggestTitle tries the remote provider, falling back to keyword matching
func (f *FallbackSuggester) SuggestTitle(ctx context.Context, content string) (string, error) {
	if f.primary == nil {
		return f.fallback.SuggestTitle(ctx, content)
	}

	title, err := f.primary.SuggestTitle(ctx, content)
	if err != nil {
		if !isProviderError(err) {
			return "", err
		}
		f.logger.Warn("Title provider failed, using local fallback", zap.Error(err))
		f.countFallback("title")
		return f.fallback.SuggestTitle(ctx, content)
	}
	return title, nil
}

// SuggestCategory tries the remote provider, falling back to keyword matching
func (f *FallbackSuggester) SuggestCategory(ctx context.Context, content string) (string, error) {
	if f.primary == nil {
		return f.fallback.SuggestCategory(ctx, content)
	}

	category, err := f.primary.SuggestCategory(ctx, content)
	if err != nil {
		if !isProviderError(err) {
			return "", err
		}
		f.logger.Warn("Category provider failed, using local fallback", zap.Error(err))
		f.countFallback("category")
		return f.fallback.SuggestCategory(ctx, content)
	}
	return category, nil
}

// AnalyzeImage tries the remote provider, falling back to the fixed guidance
func (f *FallbackSuggester) AnalyzeImage(ctx context.Context, image []byte) (string, error) {
	if f.primary == nil {
		return f.fallback.AnalyzeImage(ctx, image)
	}

	analysis, err := f.primary.AnalyzeImage(ctx, image)
	if err != nil {
		if !isProviderError(err) {
			return "", err
		}
		f.countFallback("image")
		return f.fallback.AnalyzeImage(ctx, image)
	}
	return analysis, nil
}

func isProviderError(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return true
	}
	// A provider exceeding its deadline is an availability failure too
	return errors.Is(err, context.DeadlineExceeded)
}
