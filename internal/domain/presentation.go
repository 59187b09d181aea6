package domain

// BusinessProfile describes the business a presentation is generated for
type BusinessProfile struct {
	Name        string   `json:"name" binding:"required"`
	Type        string   `json:"type,omitempty"` // e.g. "cafe", "restaurant"
	City        string   `json:"city,omitempty"`
	Description string   `json:"description,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
	Language    string   `json:"language,omitempty"`
}

// Presentation is validated marketing copy for a business page
type Presentation struct {
	Headline     string   `json:"headline"`
	Tagline      string   `json:"tagline"`
	About        string   `json:"about"`
	Highlights   []string `json:"highlights"`
	CallToAction string   `json:"call_to_action"`
}
