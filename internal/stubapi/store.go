// Package stubapi is an in-memory stand-in for the eShop backend. It serves
// the same REST surface the real API exposes — auth, product listing and
// CRUD, relative image filenames — and backs both the integration tests and
// the eshop-stubd development server.
package stubapi

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/teslo-shop/storefront-go/internal/core/domain"
)

type account struct {
	user domain.User
	hash string
}

// store holds the backend state behind a single lock; handler load in tests
// and local development never needs anything finer.
type store struct {
	mu       sync.RWMutex
	accounts map[string]*account        // keyed by email
	products map[string]*domain.Product // keyed by id
	order    []string                   // insertion order of product ids
}

func newStore() *store {
	return &store{
		accounts: make(map[string]*account),
		products: make(map[string]*domain.Product),
	}
}

func (s *store) addUser(fullName, email, password string, roles []string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[email]; exists {
		return nil, domain.ErrUserExists
	}

	user := domain.User{
		ID:       newID("usr"),
		FullName: fullName,
		Email:    email,
		Roles:    roles,
	}
	s.accounts[email] = &account{user: user, hash: string(hash)}
	return &user, nil
}

func (s *store) authenticate(email, password string) (*domain.User, error) {
	s.mu.RLock()
	acc, ok := s.accounts[email]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.hash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user := acc.user
	return &user, nil
}

func (s *store) userByEmail(email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[email]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	user := acc.user
	return &user, nil
}

func (s *store) addProduct(p domain.Product) *domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" || p.ID == domain.DraftProductID {
		p.ID = newID("prod")
	}
	stored := p
	s.products[stored.ID] = &stored
	s.order = append(s.order, stored.ID)

	out := stored
	return &out
}

func (s *store) updateProduct(id string, apply func(p *domain.Product)) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	apply(p)

	out := *p
	return &out, nil
}

// findProduct looks a product up by id or slug, the same dual lookup the
// real backend offers on GET /products/:term.
func (s *store) findProduct(idSlug string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.products[idSlug]; ok {
		out := *p
		return &out, nil
	}
	for _, p := range s.products {
		if p.Slug == idSlug {
			out := *p
			return &out, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (s *store) slugTaken(slug, exceptID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.Slug == slug && p.ID != exceptID {
			return true
		}
	}
	return false
}

func (s *store) listProducts(gender domain.Gender, limit, offset int) (total int, page []domain.Product) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Product
	for _, id := range s.order {
		p := s.products[id]
		if gender != "" && p.Gender != gender {
			continue
		}
		matched = append(matched, *p)
	}

	total = len(matched)
	if offset >= total {
		return total, []domain.Product{}
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return total, matched[offset:end]
}

// newID returns a unique prefixed identifier, e.g. "prod_7A8B9C2D1E0F".
func newID(prefix string) string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%s_%012X", prefix, time.Now().UnixNano())
	}
	return fmt.Sprintf("%s_%s", prefix, strings.ToUpper(fmt.Sprintf("%X", b)))
}
