package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/pratik-mahalle/bizdesk/internal/domain/invoice"
	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/domain/user"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	mu          sync.Mutex
	Users       map[int64]*user.User
	EmailIndex  map[string]*user.User
	NextID      int64
	CreateError error
	GetError    error
	UpdateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[int64]*user.User),
		EmailIndex: make(map[string]*user.User),
		NextID:     1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, ok := m.EmailIndex[u.Email]; ok {
		return errors.DatabaseError("Failed to create user", nil)
	}
	u.ID = m.NextID
	m.NextID++
	cp := *u
	m.Users[u.ID] = &cp
	m.EmailIndex[u.Email] = &cp
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.EmailIndex[email]
	if !ok {
		return nil, errors.NotFound("User")
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	old, ok := m.Users[u.ID]
	if !ok {
		return errors.NotFound("User")
	}
	delete(m.EmailIndex, old.Email)
	cp := *u
	m.Users[u.ID] = &cp
	m.EmailIndex[u.Email] = &cp
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return errors.NotFound("User")
	}
	delete(m.EmailIndex, u.Email)
	delete(m.Users, id)
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*user.User, 0, len(m.Users))
	for _, u := range m.Users {
		cp := *u
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	total := int64(len(result))
	if offset >= len(result) {
		return []*user.User{}, total, nil
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, total, nil
}

// AddUser stores u directly and returns it with an ID
func (m *MockUserRepository) AddUser(u *user.User) *user.User {
	if u.Tier == "" {
		u.Tier = tier.Free
	}
	if u.Role == "" {
		u.Role = user.RoleUser
	}
	_ = m.Create(context.Background(), u)
	return u
}

// MockInvoiceRepository is a mock implementation of invoice.Repository
type MockInvoiceRepository struct {
	mu          sync.Mutex
	Invoices    map[int64]*invoice.Invoice
	NextID      int64
	CreateError error
	GetError    error
	ListError   error
	UpdateError error
}

func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{
		Invoices: make(map[int64]*invoice.Invoice),
		NextID:   1,
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	cp := *inv
	cp.Items = append([]invoice.LineItem(nil), inv.Items...)
	return &cp
}

func (m *MockInvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	inv.ID = m.NextID
	m.NextID++
	m.Invoices[inv.ID] = copyInvoice(inv)
	return inv.ID, nil
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, userID int64, id int64) (*invoice.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	inv, ok := m.Invoices[id]
	if !ok || inv.UserID != userID {
		return nil, errors.NotFound("Invoice")
	}
	return copyInvoice(inv), nil
}

func (m *MockInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	old, ok := m.Invoices[inv.ID]
	if !ok || old.UserID != inv.UserID {
		return errors.NotFound("Invoice")
	}
	m.Invoices[inv.ID] = copyInvoice(inv)
	return nil
}

func (m *MockInvoiceRepository) UpdateStatus(ctx context.Context, userID int64, id int64, status invoice.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	inv, ok := m.Invoices[id]
	if !ok || inv.UserID != userID {
		return errors.NotFound("Invoice")
	}
	inv.Status = status
	return nil
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, userID int64, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.Invoices[id]
	if !ok || inv.UserID != userID {
		return errors.NotFound("Invoice")
	}
	delete(m.Invoices, id)
	return nil
}

func (m *MockInvoiceRepository) List(ctx context.Context, userID int64, filter invoice.Filter) ([]*invoice.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	q := strings.ToLower(filter.Search)
	result := make([]*invoice.Invoice, 0)
	for _, inv := range m.Invoices {
		if inv.UserID != userID {
			continue
		}
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(inv.ClientName+" "+inv.InvoiceNumber), q) {
			continue
		}
		result = append(result, copyInvoice(inv))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *MockInvoiceRepository) CountByStatus(ctx context.Context, userID int64) (map[invoice.Status]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	counts := make(map[invoice.Status]int)
	for _, inv := range m.Invoices {
		if inv.UserID == userID {
			counts[inv.Status]++
		}
	}
	return counts, nil
}

func (m *MockInvoiceRepository) SumPaid(ctx context.Context, userID int64) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return decimal.Zero, m.ListError
	}
	total := decimal.Zero
	for _, inv := range m.Invoices {
		if inv.UserID == userID && inv.Status == invoice.StatusPaid {
			total = total.Add(inv.Amount)
		}
	}
	return total, nil
}

func (m *MockInvoiceRepository) MarkOverdue(ctx context.Context, asOf string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return 0, m.UpdateError
	}
	var n int64
	for _, inv := range m.Invoices {
		if inv.Status == invoice.StatusSent && inv.DueDate != "" && inv.DueDate < asOf {
			inv.Status = invoice.StatusOverdue
			n++
		}
	}
	return n, nil
}

// MockUsageRepository is a mock implementation of tier.UsageRepository
type MockUsageRepository struct {
	mu             sync.Mutex
	Counts         map[int64]map[string]tier.Usage
	GetError       error
	IncrementError error
	Increments     int
}

func NewMockUsageRepository() *MockUsageRepository {
	return &MockUsageRepository{Counts: make(map[int64]map[string]tier.Usage)}
}

func (m *MockUsageRepository) Get(ctx context.Context, userID int64, period string) (tier.Usage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	out := tier.Usage{}
	for f, n := range m.Counts[userID][period] {
		out[f] = n
	}
	return out, nil
}

func (m *MockUsageRepository) Increment(ctx context.Context, userID int64, feature tier.Feature, period string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IncrementError != nil {
		return 0, m.IncrementError
	}
	m.Increments++
	if m.Counts[userID] == nil {
		m.Counts[userID] = make(map[string]tier.Usage)
	}
	if m.Counts[userID][period] == nil {
		m.Counts[userID][period] = tier.Usage{}
	}
	m.Counts[userID][period][feature]++
	return m.Counts[userID][period][feature], nil
}

func (m *MockUsageRepository) Prune(ctx context.Context, before string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, periods := range m.Counts {
		for p, usage := range periods {
			if p < before {
				n += int64(len(usage))
				delete(periods, p)
			}
		}
	}
	return n, nil
}

// Set seeds a counter
func (m *MockUsageRepository) Set(userID int64, period string, feature tier.Feature, n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Counts[userID] == nil {
		m.Counts[userID] = make(map[string]tier.Usage)
	}
	if m.Counts[userID][period] == nil {
		m.Counts[userID][period] = tier.Usage{}
	}
	m.Counts[userID][period][feature] = n
}

// MockRenderer returns fixed bytes for any invoice
type MockRenderer struct {
	Output   []byte
	Err      error
	Rendered []*invoice.Invoice
}

func (m *MockRenderer) Render(inv *invoice.Invoice) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Rendered = append(m.Rendered, inv)
	if m.Output == nil {
		return []byte("%PDF-1.3 mock"), nil
	}
	return m.Output, nil
}

// MockArchive records archived documents
type MockArchive struct {
	mu   sync.Mutex
	Err  error
	Keys []string
}

func (m *MockArchive) Put(ctx context.Context, userID int64, doc *invoice.Document) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	key := "invoices/" + doc.Filename
	m.Keys = append(m.Keys, key)
	return key, nil
}
