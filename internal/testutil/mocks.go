package testutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/notify"
	"github.com/dafibh/paydue/paydue-backend/internal/util"
	"github.com/dafibh/paydue/paydue-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockPayableRepository is a mock implementation of domain.PayableRepository
type MockPayableRepository struct {
	Payables         map[uuid.UUID]*domain.Payable
	CreateFn         func(payable *domain.Payable) (*domain.Payable, error)
	UpdateSnapshotFn func(userID, id uuid.UUID, emi, remaining, extra decimal.Decimal) (*domain.Payable, error)
	GetAllByUserFn   func(userID uuid.UUID) ([]*domain.Payable, error)
	SnapshotCalls    int
}

// NewMockPayableRepository creates a new MockPayableRepository
func NewMockPayableRepository() *MockPayableRepository {
	return &MockPayableRepository{
		Payables: make(map[uuid.UUID]*domain.Payable),
	}
}

// AddPayable adds a payable to the mock repository (helper for tests)
func (m *MockPayableRepository) AddPayable(p *domain.Payable) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.Payables[p.ID] = p
}

// Create stores a new payable
func (m *MockPayableRepository) Create(payable *domain.Payable) (*domain.Payable, error) {
	if m.CreateFn != nil {
		return m.CreateFn(payable)
	}
	payable.ID = uuid.New()
	payable.Status = domain.PayableStatusActive
	payable.CreatedAt = time.Now()
	payable.UpdatedAt = payable.CreatedAt
	m.Payables[payable.ID] = payable
	return payable, nil
}

// GetByID retrieves a payable owned by the user
func (m *MockPayableRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.Payable, error) {
	if p, ok := m.Payables[id]; ok && p.UserID == userID {
		return p, nil
	}
	return nil, domain.ErrPayableNotFound
}

// List filters, sorts and pages the user's payables like the SQL query does
func (m *MockPayableRepository) List(userID uuid.UUID, filter domain.PayableFilter) ([]*domain.Payable, error) {
	var result []*domain.Payable
	for _, p := range m.byUser(userID) {
		if p.IsClosed && !filter.IncludeClosed {
			continue
		}
		if domain.HasPayeeFilter(filter.Payee) && p.Payee != filter.Payee {
			continue
		}
		result = append(result, p)
	}

	if filter.SortBy == domain.PayableSortRemaining {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].RemainingAmount.LessThan(result[j].RemainingAmount)
		})
	}

	if filter.Offset >= len(result) {
		return []*domain.Payable{}, nil
	}
	result = result[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	return result, nil
}

// GetOpenByUser returns the user's open payables
func (m *MockPayableRepository) GetOpenByUser(userID uuid.UUID) ([]*domain.Payable, error) {
	var result []*domain.Payable
	for _, p := range m.byUser(userID) {
		if !p.IsClosed {
			result = append(result, p)
		}
	}
	return result, nil
}

// GetAllByUser returns every payable of the user
func (m *MockPayableRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Payable, error) {
	if m.GetAllByUserFn != nil {
		return m.GetAllByUserFn(userID)
	}
	return m.byUser(userID), nil
}

// ListPayees returns the distinct non-empty payees of the user
func (m *MockPayableRepository) ListPayees(userID uuid.UUID) ([]string, error) {
	seen := make(map[string]bool)
	var payees []string
	for _, p := range m.byUser(userID) {
		if p.Payee != "" && !seen[p.Payee] {
			seen[p.Payee] = true
			payees = append(payees, p.Payee)
		}
	}
	sort.Strings(payees)
	return payees, nil
}

// Update replaces a stored payable
func (m *MockPayableRepository) Update(payable *domain.Payable) (*domain.Payable, error) {
	existing, err := m.GetByID(payable.UserID, payable.ID)
	if err != nil {
		return nil, err
	}
	payable.CreatedAt = existing.CreatedAt
	payable.IsClosed = existing.IsClosed
	payable.Status = existing.Status
	payable.ClosedAt = existing.ClosedAt
	payable.UpdatedAt = time.Now()
	m.Payables[payable.ID] = payable
	return payable, nil
}

// UpdateSnapshot overwrites the payable's denormalized amounts
func (m *MockPayableRepository) UpdateSnapshot(userID, id uuid.UUID, emi, remaining, extra decimal.Decimal) (*domain.Payable, error) {
	m.SnapshotCalls++
	if m.UpdateSnapshotFn != nil {
		return m.UpdateSnapshotFn(userID, id, emi, remaining, extra)
	}
	p, err := m.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	p.EmiAmount = emi
	p.RemainingAmount = remaining
	p.ExtraPay = extra
	p.UpdatedAt = time.Now()
	return p, nil
}

// Close marks a payable closed
func (m *MockPayableRepository) Close(userID, id uuid.UUID, closedAt time.Time) (*domain.Payable, error) {
	p, err := m.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if err := p.Close(closedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// byUser returns the user's payables ordered by emi day then title
func (m *MockPayableRepository) byUser(userID uuid.UUID) []*domain.Payable {
	var result []*domain.Payable
	for _, p := range m.Payables {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].EmiDay != result[j].EmiDay {
			return result[i].EmiDay < result[j].EmiDay
		}
		return result[i].Title < result[j].Title
	})
	return result
}

// MockPaymentRepository is a mock implementation of domain.PaymentRepository
type MockPaymentRepository struct {
	Payments []*domain.Payment
	// Payables lets Create fill the joined payable columns like the payment_details view
	Payables *MockPayableRepository
	CreateFn func(payment *domain.Payment) (*domain.Payment, error)
}

// NewMockPaymentRepository creates a new MockPaymentRepository
func NewMockPaymentRepository(payables *MockPayableRepository) *MockPaymentRepository {
	return &MockPaymentRepository{Payables: payables}
}

// Create appends a payment. There is no uniqueness check.
func (m *MockPaymentRepository) Create(payment *domain.Payment) (*domain.Payment, error) {
	if m.CreateFn != nil {
		return m.CreateFn(payment)
	}
	payment.ID = uuid.New()
	payment.CreatedAt = time.Now()
	if m.Payables != nil {
		if p, ok := m.Payables.Payables[payment.PayableID]; ok {
			payment.PayableTitle = p.Title
			payment.PayableType = p.Type
			payment.PayablePayee = p.Payee
		}
	}
	m.Payments = append(m.Payments, payment)
	return payment, nil
}

// AddPayment adds a payment to the mock repository (helper for tests)
func (m *MockPaymentRepository) AddPayment(p *domain.Payment) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.Payments = append(m.Payments, p)
}

// GetByUser returns the user's payments, oldest first
func (m *MockPaymentRepository) GetByUser(userID uuid.UUID) ([]*domain.Payment, error) {
	return m.filter(func(p *domain.Payment) bool { return p.UserID == userID }), nil
}

// GetByUserBetween returns the user's payments dated between from and to inclusive
func (m *MockPaymentRepository) GetByUserBetween(userID uuid.UUID, from, to time.Time) ([]*domain.Payment, error) {
	return m.filter(func(p *domain.Payment) bool {
		return p.UserID == userID && !p.PaymentDate.Before(from) && !p.PaymentDate.After(to)
	}), nil
}

// GetByPayable returns the payments recorded against one payable
func (m *MockPaymentRepository) GetByPayable(userID, payableID uuid.UUID) ([]*domain.Payment, error) {
	return m.filter(func(p *domain.Payment) bool {
		return p.UserID == userID && p.PayableID == payableID
	}), nil
}

// GetPaymentMonths returns the distinct first-of-month dates that have payments, newest first
func (m *MockPaymentRepository) GetPaymentMonths(userID uuid.UUID) ([]time.Time, error) {
	seen := make(map[string]bool)
	var months []time.Time
	for _, p := range m.Payments {
		if p.UserID != userID {
			continue
		}
		key := util.MonthKey(p.PaymentDate)
		if !seen[key] {
			seen[key] = true
			months = append(months, util.StartOfMonth(p.PaymentDate))
		}
	}
	sort.Slice(months, func(i, j int) bool { return months[i].After(months[j]) })
	return months, nil
}

func (m *MockPaymentRepository) filter(keep func(*domain.Payment) bool) []*domain.Payment {
	result := make([]*domain.Payment, 0)
	for _, p := range m.Payments {
		if keep(p) {
			result = append(result, p)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].PaymentDate.Before(result[j].PaymentDate)
	})
	return result
}

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	ByID     map[uuid.UUID]*domain.User
	CreateFn func(id uuid.UUID, email string) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		ByID: make(map[uuid.UUID]*domain.User),
	}
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.ByID[user.ID] = user
}

// GetByID retrieves a copy of the user, as a database read would
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGet creates a profile with default values or returns the existing one
func (m *MockUserRepository) CreateOrGet(id uuid.UUID, email string) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(id, email)
	}
	if user, ok := m.ByID[id]; ok {
		user.Email = email
		copied := *user
		return &copied, nil
	}
	now := time.Now()
	user := &domain.User{
		ID:          id,
		Email:       email,
		DisplayName: domain.DefaultDisplayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.ByID[id] = user
	copied := *user
	return &copied, nil
}

// UpdateDisplayName updates the user's display name
func (m *MockUserRepository) UpdateDisplayName(id uuid.UUID, name string) (*domain.User, error) {
	user, ok := m.ByID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.DisplayName = name
	copied := *user
	return &copied, nil
}

// UpdatePhotoURL updates the user's photo URL
func (m *MockUserRepository) UpdatePhotoURL(id uuid.UUID, photoURL string) (*domain.User, error) {
	user, ok := m.ByID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.PhotoURL = photoURL
	copied := *user
	return &copied, nil
}

// List returns every user ordered by email
func (m *MockUserRepository) List() ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(m.ByID))
	for _, u := range m.ByID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

// MockIdentityProvider is a mock implementation of domain.IdentityProvider.
// Accounts maps email to password.
type MockIdentityProvider struct {
	Accounts        map[string]string
	UserIDs         map[string]uuid.UUID
	Tokens          map[string]string
	ResetRequests   []string
	SignedOut       []string
	UpdatedPassword map[string]string
	SignUpErr       error
	SignInErr       error
	SignOutErr      error
	ResetErr        error
	UpdateErr       error
}

// NewMockIdentityProvider creates a new MockIdentityProvider
func NewMockIdentityProvider() *MockIdentityProvider {
	return &MockIdentityProvider{
		Accounts:        make(map[string]string),
		UserIDs:         make(map[string]uuid.UUID),
		Tokens:          make(map[string]string),
		UpdatedPassword: make(map[string]string),
	}
}

// SignUp registers an account
func (m *MockIdentityProvider) SignUp(email, password string) error {
	if m.SignUpErr != nil {
		return m.SignUpErr
	}
	if _, exists := m.Accounts[email]; exists {
		return errors.New("user already registered")
	}
	m.Accounts[email] = password
	m.UserIDs[email] = uuid.New()
	return nil
}

// SignIn checks the password and issues a session
func (m *MockIdentityProvider) SignIn(email, password string) (*domain.Session, error) {
	if m.SignInErr != nil {
		return nil, m.SignInErr
	}
	if pw, ok := m.Accounts[email]; !ok || pw != password {
		return nil, errors.New("invalid login credentials")
	}
	token := fmt.Sprintf("token-%s", m.UserIDs[email])
	m.Tokens[token] = email
	return &domain.Session{
		UserID:       m.UserIDs[email],
		Email:        email,
		AccessToken:  token,
		RefreshToken: "refresh-" + token,
		ExpiresAt:    time.Now().Add(time.Hour),
	}, nil
}

// SignOut revokes the session
func (m *MockIdentityProvider) SignOut(accessToken string) error {
	if m.SignOutErr != nil {
		return m.SignOutErr
	}
	m.SignedOut = append(m.SignedOut, accessToken)
	delete(m.Tokens, accessToken)
	return nil
}

// SendPasswordReset records the reset request
func (m *MockIdentityProvider) SendPasswordReset(email string) error {
	if m.ResetErr != nil {
		return m.ResetErr
	}
	m.ResetRequests = append(m.ResetRequests, email)
	return nil
}

// UpdatePassword changes the password of the session's account
func (m *MockIdentityProvider) UpdatePassword(accessToken, newPassword string) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	email, ok := m.Tokens[accessToken]
	if !ok {
		return errors.New("invalid session")
	}
	m.Accounts[email] = newPassword
	m.UpdatedPassword[email] = newPassword
	return nil
}

// MockPhotoStore is an in-memory storage.PhotoStore
type MockPhotoStore struct {
	Objects   map[string][]byte
	UploadErr error
}

// NewMockPhotoStore creates a new MockPhotoStore
func NewMockPhotoStore() *MockPhotoStore {
	return &MockPhotoStore{Objects: make(map[string][]byte)}
}

// Upload stores the object and returns a fake URL
func (m *MockPhotoStore) Upload(ctx context.Context, path string, reader io.Reader, contentType string, size int64) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	m.Objects[path] = data
	return "https://storage.test/photos/" + path, nil
}

// Delete removes the object
func (m *MockPhotoStore) Delete(ctx context.Context, path string) error {
	delete(m.Objects, path)
	return nil
}

// GeneratePresignedURL returns a fake signed URL
func (m *MockPhotoStore) GeneratePresignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/photos/%s?expires=%d", path, int(expiry.Seconds())), nil
}

// PublishedEvent is one event captured by MockEventPublisher
type PublishedEvent struct {
	UserID uuid.UUID
	Event  websocket.Event
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(userID uuid.UUID, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{UserID: userID, Event: event})
}

// Types returns the recorded event types in publish order
func (m *MockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Event.Type
	}
	return types
}

// MockSender records outgoing mail
type MockSender struct {
	Sent    []notify.Message
	SendErr error
}

// Send records the message
func (m *MockSender) Send(msg notify.Message) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.Sent = append(m.Sent, msg)
	return nil
}
