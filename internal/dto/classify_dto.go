package dto

// SuggestTitleRequest asks for an AI-suggested report title
type SuggestTitleRequest struct {
	Content string `json:"content"`
}

// SuggestTitleResponse carries the suggested title (possibly a local fallback)
type SuggestTitleResponse struct {
	Title string `json:"title"`
}

// SuggestCategoryRequest asks for a system-category suggestion
type SuggestCategoryRequest struct {
	Content string `json:"content"`
}

// SuggestCategoryResponse carries the suggested category label
type SuggestCategoryResponse struct {
	System string `json:"system"`
}

// AnalyzeImageRequest carries a base64-encoded attachment image
type AnalyzeImageRequest struct {
	Image string `json:"image"`
}

// AnalyzeImageResponse carries the free-text diagnostic description
type AnalyzeImageResponse struct {
	Analysis string `json:"analysis"`
}
