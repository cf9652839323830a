package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pratik-mahalle/bizdesk/internal/domain/campaign"
	"github.com/pratik-mahalle/bizdesk/internal/domain/invoice"
	"github.com/pratik-mahalle/bizdesk/internal/domain/lead"
	"github.com/pratik-mahalle/bizdesk/internal/domain/portfolio"
	"github.com/pratik-mahalle/bizdesk/internal/domain/post"
	"github.com/pratik-mahalle/bizdesk/internal/domain/task"
	"github.com/pratik-mahalle/bizdesk/internal/domain/team"
	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/domain/user"
)

// Store bundles every in-memory repository
type Store struct {
	Users      *UserRepository
	Invoices   *InvoiceRepository
	Leads      *LeadRepository
	Tasks      *TaskRepository
	Team       *TeamRepository
	Campaigns  *CampaignRepository
	Posts      *PostRepository
	Payments   *PaymentRepository
	Portfolios *PortfolioRepository
	Usage      *UsageRepository
}

// NewStore creates an empty store
func NewStore() *Store {
	users := NewUserRepository()
	return &Store{
		Users:      users,
		Invoices:   NewInvoiceRepository(),
		Leads:      NewLeadRepository(),
		Tasks:      NewTaskRepository(),
		Team:       NewTeamRepository(),
		Campaigns:  NewCampaignRepository(),
		Posts:      NewPostRepository(),
		Payments:   NewPaymentRepository(users),
		Portfolios: NewPortfolioRepository(),
		Usage:      NewUsageRepository(),
	}
}

// Counters returns the live counts of the standing plan features
func (s *Store) Counters() tier.Counters {
	return tier.Counters{
		tier.FeatureLeads:       s.Leads.Count,
		tier.FeatureTeamMembers: s.Team.CountSeats,
	}
}

// DemoEmail is the login of the seeded demo account
const DemoEmail = "demo@bizdesk.local"

// SeedDemo creates the demo account with a few records of every kind.
// passwordHash must already be hashed.
func (s *Store) SeedDemo(ctx context.Context, passwordHash string, today time.Time) (*user.User, error) {
	u := &user.User{
		Email:        DemoEmail,
		Name:         "Demo Owner",
		BusinessName: "Northwind Studio",
		PasswordHash: passwordHash,
		Role:         user.RoleUser,
		Tier:         tier.Starter,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}

	drafts := []struct {
		client string
		email  string
		status invoice.Status
		due    time.Time
		items  []invoice.LineItem
	}{
		{"Acme Corp", "ap@acme.test", invoice.StatusPaid, today.AddDate(0, 0, -20), []invoice.LineItem{
			invoice.NewLineItem("Website redesign", 1, decimal.NewFromInt(1200)),
		}},
		{"Globex", "billing@globex.test", invoice.StatusSent, today.AddDate(0, 0, 14), []invoice.LineItem{
			invoice.NewLineItem("Logo concepts", 3, decimal.NewFromInt(150)),
			invoice.NewLineItem("Brand guide", 1, decimal.NewFromInt(400)),
		}},
		{"Initech", "finance@initech.test", invoice.StatusDraft, today.AddDate(0, 1, 0), []invoice.LineItem{
			invoice.NewLineItem("Maintenance retainer", 10, decimal.NewFromInt(45)),
		}},
	}
	for i, d := range drafts {
		draft := invoice.NewDraft(decimal.NewFromInt(10))
		draft.Client = invoice.Client{Name: d.client, Email: d.email}
		draft.DueDate = d.due.Format(invoice.DueDateLayout)
		draft.Items = d.items
		draft.CompanyInfo = invoice.CompanyInfo{Name: u.BusinessName, Email: u.Email}
		inv := draft.ToStored(u.ID, invoice.DefaultNumberPrefix, today.Add(time.Duration(i)*time.Millisecond))
		inv.Status = d.status
		if _, err := s.Invoices.Create(ctx, inv); err != nil {
			return nil, err
		}
	}

	for _, l := range []*lead.Lead{
		{Name: "Jamie Fox", Email: "jamie@hooli.test", Company: "Hooli", Source: lead.SourceReferral, Status: lead.StatusQualified},
		{Name: "Riley Chen", Email: "riley@umbrella.test", Company: "Umbrella", Source: lead.SourceWebsite, Status: lead.StatusNew},
	} {
		l.UserID = u.ID
		if _, err := s.Leads.Create(ctx, l); err != nil {
			return nil, err
		}
	}

	for _, t := range []*task.Task{
		{Title: "Follow up with Globex", Status: task.StatusPending, Priority: task.PriorityHigh},
		{Title: "Update portfolio", Status: task.StatusInProgress, Priority: task.PriorityMedium},
	} {
		t.UserID = u.ID
		if _, err := s.Tasks.Create(ctx, t); err != nil {
			return nil, err
		}
	}

	owner := &team.Member{UserID: u.ID, Name: u.Name, Email: u.Email, Role: team.RoleOwner,
		Permissions: team.Permissions, Status: team.StatusActive}
	if _, err := s.Team.Create(ctx, owner); err != nil {
		return nil, err
	}

	launch := &campaign.Campaign{
		UserID:    u.ID,
		Name:      "Spring launch",
		Channel:   campaign.ChannelSocial,
		Status:    campaign.StatusActive,
		Budget:    decimal.NewFromInt(500),
		StartDate: today.AddDate(0, 0, -7).Format(campaign.DateLayout),
		EndDate:   today.AddDate(0, 0, 21).Format(campaign.DateLayout),
	}
	if _, err := s.Campaigns.Create(ctx, launch); err != nil {
		return nil, err
	}
	teaser := &post.Post{
		UserID:       u.ID,
		CampaignID:   launch.ID,
		Title:        "New season, new look",
		Content:      "A first peek at the studio's spring work.",
		Platform:     post.PlatformInstagram,
		Status:       post.StatusScheduled,
		ScheduledFor: today.AddDate(0, 0, 2).Format(campaign.DateLayout),
	}
	if _, err := s.Posts.Create(ctx, teaser); err != nil {
		return nil, err
	}

	p := &portfolio.Portfolio{
		UserID:       u.ID,
		Slug:         "northwind-studio",
		BusinessName: u.BusinessName,
		Tagline:      "Brand and web design for small teams",
		Services:     []string{"Branding", "Web design"},
		Contact:      portfolio.ContactInfo{Email: u.Email},
		Stats:        portfolio.Stats{ProjectsCompleted: 42, ClientsServed: 18, YearsExperience: 6, SuccessRate: 97},
		IsPublic:     true,
	}
	if err := s.Portfolios.Upsert(ctx, p); err != nil {
		return nil, err
	}

	return u, nil
}
