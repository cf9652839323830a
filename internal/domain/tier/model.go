// Package tier defines subscription plans and the feature gate that meters
// plan-limited operations.
//
// The gate is usage guidance, not authorization. It answers "has this user
// exhausted the plan allowance for a feature this period"; it never decides
// whether a user may touch a record. Ownership checks live in the
// repositories, which scope every query by user id.
package tier

import (
	"time"
)

// ID identifies a subscription plan
type ID string

// Plans
const (
	Free         ID = "free"
	Starter      ID = "starter"
	Professional ID = "professional"
	Business     ID = "business"
)

// Feature names a metered capability
type Feature string

// Metered features
const (
	FeatureInvoices    Feature = "invoices"
	FeaturePDFExports  Feature = "pdfExports"
	FeatureLeads       Feature = "leads"
	FeatureTeamMembers Feature = "teamMembers"
)

// Features lists every metered feature in display order
var Features = []Feature{FeatureInvoices, FeaturePDFExports, FeatureLeads, FeatureTeamMembers}

// Standing reports whether f caps how many records exist at once rather
// than how many uses happen per period. Standing features are counted live
// and never reset at a month boundary.
func (f Feature) Standing() bool {
	return f == FeatureLeads || f == FeatureTeamMembers
}

// Limit is a per-period allowance. Unlimited disables metering.
type Limit int64

// Unlimited marks a feature as not capped on a plan
const Unlimited Limit = -1

// IsUnlimited reports whether l caps nothing
func (l Limit) IsUnlimited() bool {
	return l < 0
}

// Allows reports whether one more use fits after used
func (l Limit) Allows(used int64) bool {
	return l.IsUnlimited() || used < int64(l)
}

// Tier is a named plan bundling feature limits
type Tier struct {
	ID         ID                `json:"id"`
	Name       string            `json:"name"`
	PriceCents int64             `json:"price_cents"`
	Limits     map[Feature]Limit `json:"limits"`
	Highlights []string          `json:"highlights"`
}

// Limit returns the allowance for f. Features a plan does not list are unmetered.
func (t Tier) Limit(f Feature) Limit {
	if l, ok := t.Limits[f]; ok {
		return l
	}
	return Unlimited
}

// Catalog holds every plan, cheapest first
var Catalog = []Tier{
	{
		ID:         Free,
		Name:       "Free",
		PriceCents: 0,
		Limits: map[Feature]Limit{
			FeatureInvoices:    5,
			FeaturePDFExports:  3,
			FeatureLeads:       25,
			FeatureTeamMembers: 1,
		},
		Highlights: []string{"5 invoices per month", "3 PDF exports per month", "25 leads"},
	},
	{
		ID:         Starter,
		Name:       "Starter",
		PriceCents: 1900,
		Limits: map[Feature]Limit{
			FeatureInvoices:    50,
			FeaturePDFExports:  50,
			FeatureLeads:       250,
			FeatureTeamMembers: 3,
		},
		Highlights: []string{"50 invoices per month", "50 PDF exports per month", "3 team members"},
	},
	{
		ID:         Professional,
		Name:       "Professional",
		PriceCents: 4900,
		Limits: map[Feature]Limit{
			FeatureInvoices:    Unlimited,
			FeaturePDFExports:  Unlimited,
			FeatureLeads:       Unlimited,
			FeatureTeamMembers: 10,
		},
		Highlights: []string{"Unlimited invoices", "Unlimited PDF exports", "10 team members"},
	},
	{
		ID:         Business,
		Name:       "Business",
		PriceCents: 9900,
		Limits: map[Feature]Limit{
			FeatureInvoices:    Unlimited,
			FeaturePDFExports:  Unlimited,
			FeatureLeads:       Unlimited,
			FeatureTeamMembers: Unlimited,
		},
		Highlights: []string{"Everything in Professional", "Unlimited team members"},
	},
}

// Lookup returns the plan for id, defaulting to Free for unknown ids
func Lookup(id ID) Tier {
	for _, t := range Catalog {
		if t.ID == id {
			return t
		}
	}
	return Catalog[0]
}

// Known reports whether id names a plan in the catalog
func Known(id ID) bool {
	for _, t := range Catalog {
		if t.ID == id {
			return true
		}
	}
	return false
}

// KnownFeature reports whether f is metered
func KnownFeature(f Feature) bool {
	for _, k := range Features {
		if k == f {
			return true
		}
	}
	return false
}

// Usage maps features to their count in the current period
type Usage map[Feature]int64

// PeriodLayout formats usage periods as calendar months
const PeriodLayout = "2006-01"

// Period returns the usage period containing t. Counters restart at zero
// at the first instant of each UTC calendar month.
func Period(t time.Time) string {
	return t.UTC().Format(PeriodLayout)
}

// PeriodMonthsBefore returns the period n months before t's period
func PeriodMonthsBefore(t time.Time, n int) string {
	u := t.UTC()
	first := time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period(first.AddDate(0, -n, 0))
}

// FeatureStatus describes one feature on a user's plan
type FeatureStatus struct {
	Feature   Feature `json:"feature"`
	Used      int64   `json:"used"`
	Limit     Limit   `json:"limit"`
	Unlimited bool    `json:"unlimited"`
	Allowed   bool    `json:"allowed"`
}

// Status is a user's plan and usage for the current period
type Status struct {
	Tier     Tier            `json:"tier"`
	Period   string          `json:"period"`
	Features []FeatureStatus `json:"features"`
}
