package genai

import (
	"fmt"
	"strings"
)

// Style tags accepted for draft generation. Unrecognized tags fall back to casual.
var styleGuides = map[string]string{
	"casual":    "친근하고 일상적인 블로그 글",
	"formal":    "전문적이고 정중한 리뷰",
	"emotional": "감성적이고 따뜻한 일기",
	"funny":     "유머러스하고 재치있는 글",
}

// NormalizeStyle maps an arbitrary style tag onto a supported one.
func NormalizeStyle(style string) string {
	if _, ok := styleGuides[style]; ok {
		return style
	}
	return "casual"
}

// BuildDraftPrompt produces the draft generation prompt. When hasImage is
// true the image is attached separately and the wording changes accordingly.
func BuildDraftPrompt(text, style string, hasImage bool) string {
	guide := styleGuides[NormalizeStyle(style)]

	var intro string
	switch {
	case hasImage && text != "":
		intro = fmt.Sprintf("이 이미지와 다음 텍스트를 바탕으로 한국어 게시글을 작성해주세요.\n\n텍스트: %s", text)
	case hasImage:
		intro = "이 이미지를 보고 한국어로 커뮤니티 게시글을 작성해주세요."
	default:
		intro = fmt.Sprintf("다음 텍스트를 바탕으로 한국어 게시글을 작성해주세요.\n\n텍스트: %s", text)
	}

	return fmt.Sprintf(`%s

스타일: %s

**출력 형식:**
제목: [20자 이내, 이모지 포함]
---
[본문 300자 이내]

**필수:** 제목과 본문을 반드시 위 형식대로 구분해주세요.`, intro, guide)
}

// BuildGardenerPrompt produces the gardener commentary prompt. At most 5
// prior comments are included for context.
func BuildGardenerPrompt(title, content string, comments []string) string {
	if len(comments) > 5 {
		comments = comments[:5]
	}

	var sb strings.Builder
	sb.WriteString("당신은 커뮤니티의 'AI 정원사'입니다. 아래 게시물을 읽고 아이디어를 발전시키는 짧은 의견이나 질문을 한국어로 작성해주세요.\n\n")
	fmt.Fprintf(&sb, "제목: %s\n내용: %s\n", title, content)
	if len(comments) > 0 {
		sb.WriteString("\n기존 댓글:\n")
		for _, c := range comments {
			fmt.Fprintf(&sb, "- %s\n", c)
		}
	}
	sb.WriteString("\n**조건:** 150자 이내, 격려하는 톤, 질문 형태로 마무리해주세요.")
	return sb.String()
}

// BuildSummaryPrompt produces the discussion summarization prompt. At most
// 15 comments are included.
func BuildSummaryPrompt(title, content string, comments []string) string {
	if len(comments) > 15 {
		comments = comments[:15]
	}

	var sb strings.Builder
	sb.WriteString("아래 게시물과 댓글들을 분석해서 토론을 정리해주세요.\n\n")
	fmt.Fprintf(&sb, "제목: %s\n내용: %s\n", title, content)
	if len(comments) > 0 {
		sb.WriteString("\n댓글:\n")
		for _, c := range comments {
			fmt.Fprintf(&sb, "- %s\n", c)
		}
	}
	sb.WriteString(`
**출력 형식 (반드시 지켜주세요):**
핵심 아이디어
- [항목]
---
공통된 생각
- [항목]
---
더 이야기해볼 점
- [항목]`)
	return sb.String()
}
