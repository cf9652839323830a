package dto

import "github.com/pratik-mahalle/bizdesk/internal/domain/portfolio"

// CreatePaymentRequest submits a plan purchase
type CreatePaymentRequest struct {
	Tier      string `json:"tier" validate:"required,oneof=starter professional business"`
	Method    string `json:"method" validate:"omitempty,oneof=bank_transfer card wallet"`
	Reference string `json:"reference" validate:"max=120"`
}

// PaymentStatusRequest confirms or rejects a payment
type PaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed failed"`
}

// FeatureCheckResponse answers a pre-flight feature check
type FeatureCheckResponse struct {
	Feature string `json:"feature"`
	Allowed bool   `json:"allowed"`
}

// PortfolioRequest creates or replaces the user's portfolio page
type PortfolioRequest struct {
	Slug         string                  `json:"slug" validate:"omitempty,slug,max=80"`
	BusinessName string                  `json:"business_name" validate:"required,max=160"`
	Tagline      string                  `json:"tagline" validate:"max=200"`
	Description  string                  `json:"description" validate:"max=4000"`
	Services     []string                `json:"services" validate:"max=50"`
	Tools        []string                `json:"tools" validate:"max=50"`
	Contact      portfolio.ContactInfo   `json:"contact_info"`
	SocialLinks  map[string]string       `json:"social_links"`
	Stats        portfolio.Stats         `json:"stats"`
	Testimonials []portfolio.Testimonial `json:"testimonials" validate:"max=50"`
	IsPublic     bool                    `json:"is_public"`
}

// ToPortfolio builds userID's portfolio
func (r *PortfolioRequest) ToPortfolio(userID int64) *portfolio.Portfolio {
	return &portfolio.Portfolio{
		UserID:       userID,
		Slug:         r.Slug,
		BusinessName: r.BusinessName,
		Tagline:      r.Tagline,
		Description:  r.Description,
		Services:     r.Services,
		Tools:        r.Tools,
		Contact:      r.Contact,
		SocialLinks:  r.SocialLinks,
		Stats:        r.Stats,
		Testimonials: r.Testimonials,
		IsPublic:     r.IsPublic,
	}
}
