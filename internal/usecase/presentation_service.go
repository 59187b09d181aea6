package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/menuscan/backend/internal/domain"
	"github.com/menuscan/backend/internal/infrastructure/gemini"
	"github.com/rs/zerolog"
)

const maxHighlights = 5

// PresentationService generates business presentation copy with the creative model settings
type PresentationService struct {
	client domain.ModelClient
	logger zerolog.Logger
}

// NewPresentationService creates a new presentation service
func NewPresentationService(client domain.ModelClient, logger zerolog.Logger) *PresentationService {
	return &PresentationService{
		client: client,
		logger: logger,
	}
}

type presentationDraft struct {
	Headline     string   `json:"headline"`
	Tagline      string   `json:"tagline"`
	About        string   `json:"about"`
	Highlights   []string `json:"highlights"`
	CallToAction string   `json:"call_to_action"`
}

// Generate asks the model for presentation copy and validates it.
// Unlike menu extraction there is no heuristic fallback: bad output is an error.
func (s *PresentationService) Generate(ctx context.Context, profile domain.BusinessProfile) (*domain.Presentation, error) {
	if strings.TrimSpace(profile.Name) == "" {
		return nil, fmt.Errorf("%w: business name is required", domain.ErrInvalidRequest)
	}

	raw, err := s.client.Send(ctx, gemini.BuildPresentationRequest(profile))
	if err != nil {
		return nil, err
	}

	candidate := extractJSONCandidate(raw)
	if candidate == "" {
		return nil, fmt.Errorf("%w: no JSON object in model output", domain.ErrInvalidPresentation)
	}

	var draft presentationDraft
	if err := json.Unmarshal([]byte(candidate), &draft); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPresentation, err)
	}

	presentation, err := validatePresentation(draft)
	if err != nil {
		s.logger.Warn().Err(err).Str("business", profile.Name).Msg("presentation rejected")
		return nil, err
	}

	return presentation, nil
}

// validatePresentation enforces required fields and trims the optional ones
func validatePresentation(draft presentationDraft) (*domain.Presentation, error) {
	headline := strings.TrimSpace(draft.Headline)
	if headline == "" {
		return nil, fmt.Errorf("%w: headline is missing", domain.ErrInvalidPresentation)
	}
	about := strings.TrimSpace(draft.About)
	if about == "" {
		return nil, fmt.Errorf("%w: about is missing", domain.ErrInvalidPresentation)
	}

	highlights := make([]string, 0, maxHighlights)
	for _, h := range draft.Highlights {
		if h = strings.TrimSpace(h); h != "" {
			highlights = append(highlights, h)
		}
		if len(highlights) == maxHighlights {
			break
		}
	}

	return &domain.Presentation{
		Headline:     headline,
		Tagline:      strings.TrimSpace(draft.Tagline),
		About:        about,
		Highlights:   highlights,
		CallToAction: strings.TrimSpace(draft.CallToAction),
	}, nil
}
