package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/casa-moreno/catalog-system/internal/core/domain"
	"github.com/casa-moreno/catalog-system/internal/core/ports"
)

// stubAccountStore is an in-memory AccountStore with the same atomic
// consume-reset semantics as the Mongo implementation.
type stubAccountStore struct {
	mu     sync.Mutex
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubAccountStore() *stubAccountStore {
	return &stubAccountStore{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.PasswordResetExpires != nil {
		t := *u.PasswordResetExpires
		clone.PasswordResetExpires = &t
	}
	return &clone
}

func (s *stubAccountStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}

	s.nextID++
	created := cloneUser(user)
	created.ID = "u" + strconv.Itoa(s.nextID)
	s.users[created.ID] = cloneUser(created)
	return cloneUser(created), nil
}

func (s *stubAccountStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubAccountStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return s.findBy(func(u *domain.User) bool { return u.Username == username })
}

func (s *stubAccountStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.findBy(func(u *domain.User) bool { return u.Email == email })
}

func (s *stubAccountStore) FindByLoginOrEmail(_ context.Context, login string) (*domain.User, error) {
	return s.findBy(func(u *domain.User) bool { return u.Username == login || u.Email == login })
}

func (s *stubAccountStore) FindByResetToken(_ context.Context, token string) (*domain.User, error) {
	return s.findBy(func(u *domain.User) bool { return u.PasswordResetToken != "" && u.PasswordResetToken == token })
}

func (s *stubAccountStore) FindAll(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (s *stubAccountStore) Save(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *stubAccountStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *stubAccountStore) SetResetToken(_ context.Context, userID, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordResetToken = token
	u.PasswordResetExpires = &expiresAt
	return nil
}

func (s *stubAccountStore) ConsumeResetToken(_ context.Context, token, newHash string, now time.Time) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.PasswordResetToken != "" && u.PasswordResetToken == token {
			u.PasswordHash = newHash
			u.PasswordResetToken = ""
			u.PasswordResetExpires = nil
			u.UpdatedAt = now
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrInvalidToken
}

func (s *stubAccountStore) findBy(match func(*domain.User) bool) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// stubNotifier records sends; fail makes every send error so callers can
// verify mail failures never propagate.
type stubNotifier struct {
	mu              sync.Mutex
	welcomes        []string
	oauthWelcomes   []string
	resetLinks      map[string]string // email -> token
	confirmations   []string
	failureInjected error
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{resetLinks: make(map[string]string)}
}

func (n *stubNotifier) SendWelcome(_ context.Context, to, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.welcomes = append(n.welcomes, to)
	return n.failureInjected
}

func (n *stubNotifier) SendOAuthWelcome(_ context.Context, to, _, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.oauthWelcomes = append(n.oauthWelcomes, to)
	return n.failureInjected
}

func (n *stubNotifier) SendPasswordResetLink(_ context.Context, to, _, token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resetLinks[to] = token
	return n.failureInjected
}

func (n *stubNotifier) SendPasswordChangeConfirmation(_ context.Context, to, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmations = append(n.confirmations, to)
	return n.failureInjected
}

func (n *stubNotifier) resetTokenFor(email string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.resetLinks[email]
}

// stubScraper implements ports.ScraperGateway with canned responses.
type stubScraper struct {
	listing    *ports.ScrapedListing
	listingErr error
	syncReport string
	syncErr    error
	syncDelay  time.Duration
}

func (s *stubScraper) GetListing(_ context.Context, _ string) (*ports.ScrapedListing, error) {
	if s.listingErr != nil {
		return nil, s.listingErr
	}
	return s.listing, nil
}

func (s *stubScraper) StartFullSync(ctx context.Context) (string, error) {
	if s.syncDelay > 0 {
		select {
		case <-time.After(s.syncDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if s.syncErr != nil {
		return "", s.syncErr
	}
	return s.syncReport, nil
}

// stubProductRepo is an in-memory ProductRepository.
type stubProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	nextID   int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	created := *p
	created.ID = "p" + strconv.Itoa(r.nextID)
	r.products[created.ID] = &created
	out := created
	return &out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		found := *p
		return &found, nil
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) FindByCategory(_ context.Context, category string, page, pageSize int) (*ports.ProductPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []domain.Product
	for _, p := range r.products {
		if p.Category == category {
			items = append(items, *p)
		}
	}
	return &ports.ProductPage{Items: items, Page: page, PageSize: pageSize, TotalItems: int64(len(items))}, nil
}

func (r *stubProductRepo) FindAll(_ context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []domain.Product
	for _, p := range r.products {
		items = append(items, *p)
	}
	return items, nil
}

func (r *stubProductRepo) FindPromotional(_ context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []domain.Product
	for _, p := range r.products {
		if p.Promotional {
			items = append(items, *p)
		}
	}
	return items, nil
}

func (r *stubProductRepo) ListCategories(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{})
	var out []string
	for _, p := range r.products {
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			out = append(out, p.Category)
		}
	}
	return out, nil
}

func (r *stubProductRepo) ExistsByTitleOrListingID(_ context.Context, title, listingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Title == title || p.ListingID == listingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProductRepo) Save(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	saved := *p
	r.products[p.ID] = &saved
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}
