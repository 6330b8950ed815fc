package classify

import (
	"context"
	"strings"

	"error-report-api/internal/domain"
)

// Default outputs when nothing matches
const (
	defaultTitle    = "시스템 오류 신고"
	defaultCategory = domain.CategoryFacility
)

// Keyword vocabularies for the three system categories
var (
	ticketKeywords   = []string{"승차권", "예약", "결제", "고객", "티켓", "발권", "환불", "변경"}
	safetyKeywords   = []string{"안전", "보안", "위험", "사고", "응급", "화재", "대피", "경보"}
	facilityKeywords = []string{"시설", "건물", "설비", "엘리베이터", "에스컬레이터", "화장실", "조명", "공조", "전기"}
)

// titleKeywords maps trigger terms to the keyword used in a composed title
var titleKeywords = []struct {
	triggers []string
	keyword  string
}{
	{[]string{"로그인", "인증"}, "로그인"},
	{[]string{"결제", "카드"}, "결제"},
	{[]string{"예약", "승차권"}, "예약"},
	{[]string{"화면", "페이지"}, "화면"},
	{[]string{"오류", "에러"}, "오류"},
	{[]string{"접속", "연결"}, "접속"},
	{[]string{"시설", "건물"}, "시설"},
	{[]string{"안전", "보안"}, "안전"},
}

// imageGuidance is returned when no image-capable provider is available.
// Degraded capability, not a failure: the user is asked to describe the
// image in text instead.
const imageGuidance = `이미지 분석 결과:

분석 방법:
- 이미지의 텍스트나 오류 메시지를 확인해 주세요
- 화면 캡처의 경우 오류 코드나 메시지를 텍스트로 입력해 주세요
- 시설물 사진의 경우 문제 상황을 구체적으로 설명해 주세요

권장 사항:
- 오류 메시지가 있다면 정확히 복사해서 내용란에 추가 입력
- 시설물 손상 등은 위치, 손상 정도, 안전성 여부를 텍스트로 기술
- 시스템 화면 오류는 어떤 기능에서 발생했는지 명시

참고: 현재 텍스트 기반 AI 모델을 사용하여 이미지 직접 분석은 제한됩니다.`

// KeywordClassifier is the deterministic local implementation. It never
// fails and serves as the fallback behind the remote provider.
type KeywordClassifier struct{}

// NewKeywordClassifier creates a new KeywordClassifier
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// SuggestTitle composes a title from matched keywords and symptom patterns
func (k *KeywordClassifier) SuggestTitle(_ context.Context, content string) (string, error) {
	keywords := extractKeywords(content)
	if len(keywords) == 0 {
		return defaultTitle, nil
	}

	title := keywords[0]
	if len(keywords) > 1 {
		title += " " + keywords[1]
	}
	title += " 문제"

	switch {
	case strings.Contains(content, "작동하지 않") || strings.Contains(content, "안 됨"):
		title += " (동작 불가)"
	case strings.Contains(content, "느림") || strings.Contains(content, "지연"):
		title += " (응답 지연)"
	case strings.Contains(content, "오류") || strings.Contains(content, "에러"):
		title += " 발생"
	}

	return TruncateTitle(title), nil
}

// SuggestCategory classifies content against the three keyword vocabularies,
// in priority order, defaulting to 시설물관리
func (k *KeywordClassifier) SuggestCategory(_ context.Context, content string) (string, error) {
	if containsAny(content, ticketKeywords) {
		return domain.CategoryTicketing, nil
	}
	if containsAny(content, safetyKeywords) {
		return domain.CategorySafety, nil
	}
	if containsAny(content, facilityKeywords) {
		return domain.CategoryFacility, nil
	}
	return defaultCategory, nil
}

// AnalyzeImage returns the fixed guidance message; the local engine has no
// vision capability
func (k *KeywordClassifier) AnalyzeImage(_ context.Context, _ []byte) (string, error) {
	return imageGuidance, nil
}

func extractKeywords(content string) []string {
	var keywords []string
	for _, tk := range titleKeywords {
		if containsAny(content, tk.triggers) {
			keywords = append(keywords, tk.keyword)
		}
	}
	return keywords
}

func containsAny(content string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(content, term) {
			return true
		}
	}
	return false
}
