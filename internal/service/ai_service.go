package service

import (
	"context"
	"strings"
	"time"

	"seedbed/internal/genai"
	"seedbed/internal/models"
	"seedbed/internal/observability"
	"seedbed/internal/repository"
)

// AIService orchestrates draft generation, gardener commentary, and
// discussion summarization around the external completion service.
type AIService struct {
	generator   genai.Generator
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	images      *ImageService
	model       string
}

func NewAIService(
	generator genai.Generator,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	images *ImageService,
	model string,
) *AIService {
	return &AIService{
		generator:   generator,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		images:      images,
		model:       model,
	}
}

type DraftInput struct {
	UserID      uint
	Image       []byte
	Filename    string
	ContentType string
	Text        string
	Style       string
}

type DraftResult struct {
	Success   bool              `json:"success"`
	Draft     genai.Draft       `json:"draft"`
	Style     string            `json:"style"`
	ImageInfo map[string]string `json:"image_info,omitempty"`
}

type GardenerInput struct {
	UserID           uint
	PostID           uint
	PostTitle        string
	PostContent      string
	ExistingComments []string
}

type GardenerResult struct {
	Success bool   `json:"success"`
	Comment string `json:"comment"`
	Type    string `json:"type"`
}

type SummarizeInput struct {
	UserID      uint
	PostTitle   string
	PostContent string
	Comments    []string
}

type SummaryResult struct {
	Success      bool          `json:"success"`
	Summary      genai.Summary `json:"summary"`
	CommentCount int           `json:"comment_count"`
}

// GenerateDraft stores the image (if any) before calling the completion
// service and removes it again when generation fails, so a successful draft
// always points at a resolvable URL and a failed one leaves no orphan.
func (s *AIService) GenerateDraft(ctx context.Context, in DraftInput) (*DraftResult, error) {
	if _, err := resolveActiveUser(ctx, s.userRepo, in.UserID); err != nil {
		return nil, err
	}

	hasImage := len(in.Image) > 0
	text := strings.TrimSpace(in.Text)
	if !hasImage && text == "" {
		return nil, models.NewBadRequestError("Either an image or text is required")
	}

	style := genai.NormalizeStyle(in.Style)

	var imageURL string
	if hasImage {
		url, err := s.images.Save(SaveImageInput{
			Kind:        ImageKindPost,
			Filename:    in.Filename,
			ContentType: in.ContentType,
			Content:     in.Image,
		})
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	prompt := genai.BuildDraftPrompt(text, style, hasImage)

	start := time.Now()
	ctx, span := observability.GetTraceLayer().TraceAICall(ctx, "draft", s.model)
	defer span.End()

	var raw string
	var err error
	if hasImage {
		raw, err = s.generator.GenerateWithImage(ctx, prompt, in.Image, in.ContentType)
	} else {
		raw, err = s.generator.GenerateText(ctx, prompt)
	}
	if err != nil {
		span.RecordError(err)
		observability.RecordAIGeneration("draft", "error", start)
		if imageURL != "" {
			s.images.Delete(imageURL)
		}
		return nil, models.NewAIGenerationError(err)
	}
	observability.RecordAIGeneration("draft", "success", start)

	draft := genai.ParseDraft(raw)
	draft.ImageURL = imageURL

	result := &DraftResult{
		Success: true,
		Draft:   draft,
		Style:   style,
	}
	if hasImage {
		result.ImageInfo = map[string]string{
			"filename":     in.Filename,
			"content_type": in.ContentType,
		}
	}
	return result, nil
}

// GardenerComment generates an encouraging reply for a post. The per-post
// quota is checked before the upstream call so exhausted posts never cost a
// generation.
func (s *AIService) GardenerComment(ctx context.Context, in GardenerInput) (*GardenerResult, error) {
	if _, err := resolveActiveUser(ctx, s.userRepo, in.UserID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.PostTitle) == "" || strings.TrimSpace(in.PostContent) == "" {
		return nil, models.NewBadRequestError("Post title and content are required")
	}

	count, err := s.commentRepo.CountAIByPost(ctx, in.PostID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if count >= genai.MaxGardenerComments {
		observability.AIQuotaRejectionsTotal.Inc()
		return nil, models.NewRateLimitedError("이 씨앗에는 AI 정원사를 3번까지만 부를 수 있어요! 🌱")
	}

	prompt := genai.BuildGardenerPrompt(in.PostTitle, in.PostContent, in.ExistingComments)

	start := time.Now()
	ctx, span := observability.GetTraceLayer().TraceAICall(ctx, "gardener", s.model)
	defer span.End()

	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		observability.RecordAIGeneration("gardener", "error", start)
		return nil, models.NewAIGenerationError(err)
	}
	observability.RecordAIGeneration("gardener", "success", start)

	// The sentinel prefix is what the quota counts, so it is applied here
	// rather than trusting callers to add it when saving.
	comment := models.AICommentPrefix + genai.TruncateComment(raw)

	return &GardenerResult{
		Success: true,
		Comment: comment,
		Type:    "gardener",
	}, nil
}

// Summarize distills a post and its comments into the three fixed sections.
func (s *AIService) Summarize(ctx context.Context, in SummarizeInput) (*SummaryResult, error) {
	if _, err := resolveActiveUser(ctx, s.userRepo, in.UserID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.PostTitle) == "" || strings.TrimSpace(in.PostContent) == "" {
		return nil, models.NewBadRequestError("Post title and content are required")
	}

	prompt := genai.BuildSummaryPrompt(in.PostTitle, in.PostContent, in.Comments)

	start := time.Now()
	ctx, span := observability.GetTraceLayer().TraceAICall(ctx, "summarize", s.model)
	defer span.End()

	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		observability.RecordAIGeneration("summarize", "error", start)
		return nil, models.NewAIGenerationError(err)
	}
	observability.RecordAIGeneration("summarize", "success", start)

	return &SummaryResult{
		Success:      true,
		Summary:      genai.ParseSummary(raw),
		CommentCount: len(in.Comments),
	}, nil
}
