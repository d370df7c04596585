package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/models"
)

// NewMemoryStore returns an in-process Store with the same contracts as the
// Mongo implementation, including the conditional-update semantics of the
// lifecycle transitions. Used by tests; a single mutex per entity stands in
// for the store's single-document atomicity.
func NewMemoryStore() *Store {
	return &Store{
		Users:    &memUsers{byEmail: map[string]*models.User{}},
		Products: &memProducts{},
		Orders:   &memOrders{},
		Reviews:  &memReviews{},
	}
}

type memUsers struct {
	mu      sync.Mutex
	order   []string
	byEmail map[string]*models.User
}

func (s *memUsers) Upsert(_ context.Context, email string, profile models.Profile) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byEmail[email]
	if !ok {
		user = &models.User{ID: primitive.NewObjectID(), Email: email, Role: models.RoleUser}
		s.byEmail[email] = user
		s.order = append(s.order, email)
	}
	applyProfile(user, profile)
	return !ok, nil
}

func (s *memUsers) ByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memUsers) All(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]models.User, 0, len(s.order))
	for _, email := range s.order {
		users = append(users, *s.byEmail[email])
	}
	return users, nil
}

func (s *memUsers) UpdateProfile(_ context.Context, email string, profile models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byEmail[email]
	if !ok {
		return ErrNotFound
	}
	applyProfile(user, profile)
	return nil
}

func (s *memUsers) GrantAdmin(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byEmail[email]
	if !ok {
		return ErrNotFound
	}
	user.Role = models.RoleAdmin
	return nil
}

func (s *memUsers) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[email]; !ok {
		return ErrNotFound
	}
	delete(s.byEmail, email)
	for i, e := range s.order {
		if e == email {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func applyProfile(u *models.User, p models.Profile) {
	if p.Name != "" {
		u.Name = p.Name
	}
	if p.Address != "" {
		u.Address = p.Address
	}
	if p.Phone != "" {
		u.Phone = p.Phone
	}
	if p.Company != "" {
		u.Company = p.Company
	}
	if p.Education != "" {
		u.Education = p.Education
	}
	if p.Image != "" {
		u.Image = p.Image
	}
}

type memProducts struct {
	mu       sync.Mutex
	products []*models.Product
}

func (s *memProducts) Insert(_ context.Context, p *models.Product) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = primitive.NewObjectID()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	copied := *p
	s.products = append(s.products, &copied)
	return p.ID, nil
}

func (s *memProducts) All(_ context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0, len(s.products))
	for i := len(s.products) - 1; i >= 0; i-- {
		out = append(out, *s.products[i])
	}
	return out, nil
}

func (s *memProducts) ByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.lookup(id); p != nil {
		copied := *p
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (s *memProducts) AdjustQuantity(_ context.Context, id primitive.ObjectID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.lookup(id)
	if p == nil {
		return ErrNotFound
	}
	if p.AvailableQty+delta < 0 {
		return ErrInsufficientStock
	}
	p.AvailableQty += delta
	return nil
}

func (s *memProducts) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *memProducts) lookup(id primitive.ObjectID) *models.Product {
	for _, p := range s.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

type memOrders struct {
	mu     sync.Mutex
	orders []*models.Order
}

func (s *memOrders) Insert(_ context.Context, o *models.Order) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = primitive.NewObjectID()
	o.Status = models.StatusCreated
	o.IsPaid = false
	o.Shipment = false
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	copied := *o
	s.orders = append(s.orders, &copied)
	return o.ID, nil
}

func (s *memOrders) ByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o := s.lookup(id); o != nil {
		copied := *o
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (s *memOrders) ByBuyer(_ context.Context, buyer string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.orders {
		if o.Buyer == buyer {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *memOrders) All(_ context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (s *memOrders) MarkAwaitingPayment(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.lookup(id)
	if o == nil {
		return ErrNotFound
	}
	if models.CanTransition(o.Status, models.StatusAwaitingPayment) {
		o.Status = models.StatusAwaitingPayment
	}
	return nil
}

func (s *memOrders) MarkPaid(_ context.Context, id primitive.ObjectID, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.lookup(id)
	if o == nil {
		return ErrNotFound
	}
	if !models.CanTransition(o.Status, models.StatusPaid) {
		return ErrOrderShipped
	}
	o.Status = models.StatusPaid
	o.IsPaid = true
	o.TransactionID = transactionID
	return nil
}

func (s *memOrders) MarkShipped(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.lookup(id)
	if o == nil {
		return ErrNotFound
	}
	if o.Status == models.StatusShipped {
		return nil
	}
	if !models.CanTransition(o.Status, models.StatusShipped) {
		return ErrOrderNotPaid
	}
	o.Status = models.StatusShipped
	o.Shipment = true
	return nil
}

func (s *memOrders) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.orders {
		if o.ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *memOrders) lookup(id primitive.ObjectID) *models.Order {
	for _, o := range s.orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}

type memReviews struct {
	mu      sync.Mutex
	reviews []*models.Review
}

func (s *memReviews) Insert(_ context.Context, r *models.Review) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = primitive.NewObjectID()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	copied := *r
	s.reviews = append(s.reviews, &copied)
	return r.ID, nil
}

func (s *memReviews) All(_ context.Context) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Review, 0, len(s.reviews))
	for i := len(s.reviews) - 1; i >= 0; i-- {
		out = append(out, *s.reviews[i])
	}
	return out, nil
}
