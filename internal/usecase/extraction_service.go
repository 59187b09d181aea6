package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/menuscan/backend/internal/domain"
	"github.com/menuscan/backend/internal/infrastructure/gemini"
	"github.com/menuscan/backend/internal/infrastructure/imaging"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// ExtractionServiceConfig holds configuration for the extraction pipeline
type ExtractionServiceConfig struct {
	// Locale drives category sort order, e.g. "fr" or "en". Empty means root collation.
	Locale string
}

// ExtractionInput is one uploaded menu image
type ExtractionInput struct {
	Image    []byte
	MIMEType string
}

// ExtractionService runs the menu image extraction pipeline.
// Every call is independent: nothing is cached or shared between extractions.
type ExtractionService struct {
	client domain.ModelClient
	logger zerolog.Logger
	locale language.Tag
	newID  func() string
}

// NewExtractionService creates a new extraction service with dependencies
func NewExtractionService(
	client domain.ModelClient,
	logger zerolog.Logger,
	config ExtractionServiceConfig,
) *ExtractionService {
	locale := language.Und
	if config.Locale != "" {
		if tag, err := language.Parse(config.Locale); err == nil {
			locale = tag
		} else {
			logger.Warn().Str("locale", config.Locale).Msg("unknown locale, using root collation")
		}
	}

	return &ExtractionService{
		client: client,
		logger: logger,
		locale: locale,
		newID:  uuid.NewString,
	}
}

// Extract runs encode -> request -> parse -> group for one image.
// Flow: validate -> encode (10) -> send (30) -> receive (50) -> parse (80) -> group (100)
// The progress stream, if any, is closed when Extract returns.
func (s *ExtractionService) Extract(
	ctx context.Context,
	input ExtractionInput,
	progress *ProgressStream,
) (*domain.ExtractionResult, error) {
	defer progress.Close()

	if len(input.Image) == 0 {
		return nil, domain.ErrMissingImage
	}
	mimeType := imaging.NormalizeMIMEType(input.MIMEType)
	if !imaging.IsAcceptedMIMEType(mimeType) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMIMEType, input.MIMEType)
	}

	id := s.newID()
	start := time.Now()
	report := func(stage domain.ProgressStage) {
		progress.publish(domain.ProgressEvent{
			ExtractionID: id,
			Stage:        stage,
			Percent:      domain.StagePercent[stage],
		})
	}

	encoded, err := imaging.EncodeBytes(input.Image)
	if err != nil {
		return nil, err
	}
	report(domain.StageEncoded)

	payload := gemini.BuildExtractionRequest(encoded, mimeType)
	report(domain.StageRequestSent)

	raw, err := s.client.Send(ctx, payload)
	if err != nil {
		s.logger.Warn().Err(err).Str("extraction_id", id).Msg("model request failed")
		return nil, err
	}
	report(domain.StageResponseReceived)

	items, strategy, err := parseWithStrategy(raw)
	if err != nil {
		return nil, err
	}
	report(domain.StageParsed)

	groups := GroupProductsWithLocale(items, s.locale)

	outcome := domain.OutcomeSuccess
	if len(items) == 0 {
		outcome = domain.OutcomeEmpty
	}

	result := &domain.ExtractionResult{
		ExtractionID: id,
		Outcome:      outcome,
		Strategy:     strategy,
		Groups:       groups,
		ProductCount: len(items),
	}
	report(domain.StageComplete)

	s.logger.Info().
		Str("extraction_id", id).
		Str("strategy", strategy).
		Int("products", result.ProductCount).
		Int("categories", len(groups)).
		Dur("elapsed", time.Since(start)).
		Msg("menu extraction finished")

	return result, nil
}
