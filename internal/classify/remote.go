package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"error-report-api/internal/domain"
)

// RemoteClassifier delegates suggestions to a hosted text-generation model
// behind an HTTP proxy. It is text-only; image analysis is not supported
// and always reports a provider error so the fallback guidance is used.
type RemoteClassifier struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewRemoteClassifier creates a new RemoteClassifier
func NewRemoteClassifier(baseURL, model string, timeout time.Duration) *RemoteClassifier {
	return &RemoteClassifier{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// SuggestTitle asks the model for a concise Korean title
func (r *RemoteClassifier) SuggestTitle(ctx context.Context, content string) (string, error) {
	prompt := fmt.Sprintf(`Create a concise Korean error title (max 30 characters) based on the content below. Only respond with the title.

Content: %s

Title:`, clip(content, 200))

	out, err := r.generate(ctx, "title", prompt)
	if err != nil {
		return "", err
	}

	title := cleanLine(out)
	title = strings.TrimPrefix(title, "제목:")
	title = strings.TrimPrefix(title, "Title:")
	title = strings.TrimSpace(title)
	if title == "" {
		return "", &ProviderError{Op: "title", Err: fmt.Errorf("empty model output")}
	}

	return TruncateTitle(title), nil
}

// SuggestCategory asks the model to pick one of the three system categories
func (r *RemoteClassifier) SuggestCategory(ctx context.Context, content string) (string, error) {
	prompt := fmt.Sprintf(`Classify this Korean error content into one of three categories. Respond only with the exact category name:

Categories:
- 역무지원 (for tickets, reservations, customer service)
- 안전관리 (for security, safety, risk management)
- 시설물관리 (for buildings, facilities, infrastructure)

Content: %s

Category:`, clip(content, 150))

	out, err := r.generate(ctx, "category", prompt)
	if err != nil {
		return "", err
	}

	category := cleanLine(out)
	switch {
	case strings.Contains(category, domain.CategoryTicketing):
		return domain.CategoryTicketing, nil
	case strings.Contains(category, domain.CategorySafety):
		return domain.CategorySafety, nil
	case strings.Contains(category, domain.CategoryFacility):
		return domain.CategoryFacility, nil
	}

	return "", &ProviderError{Op: "category", Err: fmt.Errorf("model output %q outside category set", category)}
}

// AnalyzeImage is unsupported by the text-only provider
func (r *RemoteClassifier) AnalyzeImage(_ context.Context, _ []byte) (string, error) {
	return "", &ProviderError{Op: "image", Err: fmt.Errorf("provider has no vision capability")}
}

func (r *RemoteClassifier) generate(ctx context.Context, op, prompt string) (string, error) {
	reqBody, err := json.Marshal(generateRequest{
		Model:  r.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/generate", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &ProviderError{Op: op, Err: fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(body))}
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ProviderError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return result.Response, nil
}

// cleanLine keeps the first non-empty line of model output, trimmed
func cleanLine(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
