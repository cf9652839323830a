package portfolio

import "time"

// Portfolio is a user's public business page. A user has at most one.
type Portfolio struct {
	ID           int64             `json:"id"`
	UserID       int64             `json:"user_id"`
	Slug         string            `json:"slug"`
	BusinessName string            `json:"business_name"`
	Tagline      string            `json:"tagline"`
	Description  string            `json:"description"`
	Services     []string          `json:"services"`
	Tools        []string          `json:"tools"`
	Contact      ContactInfo       `json:"contact_info"`
	SocialLinks  map[string]string `json:"social_links"`
	Stats        Stats             `json:"stats"`
	Testimonials []Testimonial     `json:"testimonials"`
	IsPublic     bool              `json:"is_public"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ContactInfo is shown in the contact section
type ContactInfo struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Stats are headline numbers
type Stats struct {
	ProjectsCompleted int `json:"projects_completed"`
	ClientsServed     int `json:"clients_served"`
	YearsExperience   int `json:"years_experience"`
	SuccessRate       int `json:"success_rate"`
}

// Testimonial is a client quote
type Testimonial struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
}
