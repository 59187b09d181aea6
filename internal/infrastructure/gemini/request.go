package gemini

import (
	"strings"

	"github.com/menuscan/backend/internal/domain"
)

// Fixed generation settings. They are never tuned per call.
var (
	// ExtractionConfig keeps sampling tight to maximise JSON compliance
	ExtractionConfig = domain.GenerationConfig{
		Temperature:     0.2,
		TopP:            0.8,
		TopK:            20,
		MaxOutputTokens: 8192,
	}

	// PresentationConfig favours varied, creative copy
	PresentationConfig = domain.GenerationConfig{
		Temperature:     0.9,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 2048,
	}
)

// ExtractionPrompt is the fixed instruction sent with every menu image
const ExtractionPrompt = `You are a menu digitization engine.
Read the attached menu image and list every product you can see.

Return ONLY this JSON, with no explanations and no markdown:
{"products":[{"product_name":"string","price":number,"category":"string"}]}

Rules:
- product_name: the product name exactly as written on the menu
- price: a plain number without currency symbols; use 0 if no price is visible
- category: the menu section the product belongs to, exactly as written
- If the menu contains no products, return {"products":[]}`

// BuildExtractionRequest builds the model payload for a base64 encoded menu image.
// Identical inputs always produce an identical payload.
func BuildExtractionRequest(base64Image, mimeType string) domain.RequestPayload {
	return domain.RequestPayload{
		Contents: []domain.RequestContent{{
			Parts: []domain.RequestPart{
				{Text: ExtractionPrompt},
				{InlineData: &domain.InlineData{MIMEType: mimeType, Data: base64Image}},
			},
		}},
		GenerationConfig: ExtractionConfig,
	}
}

// BuildPresentationRequest builds a text-only payload asking for presentation copy
func BuildPresentationRequest(profile domain.BusinessProfile) domain.RequestPayload {
	return domain.RequestPayload{
		Contents: []domain.RequestContent{{
			Parts: []domain.RequestPart{{Text: presentationPrompt(profile)}},
		}},
		GenerationConfig: PresentationConfig,
	}
}

func presentationPrompt(profile domain.BusinessProfile) string {
	var b strings.Builder
	b.WriteString("You write short, warm marketing copy for restaurant and cafe menu pages.\n")
	b.WriteString("Return ONLY this JSON, with no explanations and no markdown:\n")
	b.WriteString(`{"headline":"string","tagline":"string","about":"string","highlights":["string"],"call_to_action":"string"}`)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- headline: at most 8 words\n")
	b.WriteString("- about: 2 to 4 sentences\n")
	b.WriteString("- highlights: at most 5 short items\n")

	language := strings.TrimSpace(profile.Language)
	if language == "" {
		language = "the same language as the business name"
	}
	b.WriteString("- write in " + language + "\n\nBusiness:\n")
	b.WriteString("Name: " + strings.TrimSpace(profile.Name) + "\n")
	if profile.Type != "" {
		b.WriteString("Type: " + profile.Type + "\n")
	}
	if profile.City != "" {
		b.WriteString("City: " + profile.City + "\n")
	}
	if profile.Description != "" {
		b.WriteString("Description: " + profile.Description + "\n")
	}
	if len(profile.Specialties) > 0 {
		b.WriteString("Specialties: " + strings.Join(profile.Specialties, ", ") + "\n")
	}

	return b.String()
}
