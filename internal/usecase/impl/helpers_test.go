package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"sliceco/internal/domain/entity"
	"sliceco/internal/domain/repository"
	"sliceco/internal/domain/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; ok {
		return repository.ErrUserAlreadyExists
	}
	r.users[user.ID] = *user

	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return &user, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	r.users[user.ID] = *user

	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)

	return nil
}

// fakeTokenRepo is an in-memory TokenRepository.
type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]entity.Token
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]entity.Token)}
}

func (r *fakeTokenRepo) Create(ctx context.Context, token *entity.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token.ID]; ok {
		return repository.ErrTokenAlreadyExists
	}
	r.tokens[token.ID] = *token

	return nil
}

func (r *fakeTokenRepo) FindByID(ctx context.Context, id string) (*entity.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[id]
	if !ok {
		return nil, repository.ErrTokenNotFound
	}

	return &token, nil
}

func (r *fakeTokenRepo) Update(ctx context.Context, token *entity.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token.ID]; !ok {
		return repository.ErrTokenNotFound
	}
	r.tokens[token.ID] = *token

	return nil
}

func (r *fakeTokenRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[id]; !ok {
		return repository.ErrTokenNotFound
	}
	delete(r.tokens, id)

	return nil
}

// fakeCartRepo is an in-memory CartRepository. deleteErr, when set, makes
// Delete fail to exercise best-effort cleanup paths.
type fakeCartRepo struct {
	mu        sync.Mutex
	carts     map[string]entity.Cart
	deleteErr error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]entity.Cart)}
}

func (r *fakeCartRepo) Create(ctx context.Context, cart *entity.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[cart.ID]; ok {
		return repository.ErrCartAlreadyExists
	}
	r.carts[cart.ID] = *cart

	return nil
}

func (r *fakeCartRepo) FindByID(ctx context.Context, id string) (*entity.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[id]
	if !ok {
		return nil, repository.ErrCartNotFound
	}

	return &cart, nil
}

func (r *fakeCartRepo) Update(ctx context.Context, cart *entity.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[cart.ID]; !ok {
		return repository.ErrCartNotFound
	}
	r.carts[cart.ID] = *cart

	return nil
}

func (r *fakeCartRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.carts[id]; !ok {
		return repository.ErrCartNotFound
	}
	delete(r.carts, id)

	return nil
}

// fakeOrderRepo is an in-memory OrderRepository. createErr, when set, makes
// Create fail to exercise the charge-cleared-but-order-lost path.
type fakeOrderRepo struct {
	mu        sync.Mutex
	orders    map[string]entity.Order
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]entity.Order)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.orders[order.Number]; ok {
		return repository.ErrOrderAlreadyExists
	}
	r.orders[order.Number] = *order

	return nil
}

func (r *fakeOrderRepo) FindByNumber(ctx context.Context, number string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[number]
	if !ok {
		return nil, repository.ErrNotFound
	}

	return &order, nil
}

// fakeHasher hashes deterministically so tests can seed stored users.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeOplog records appended operational entries.
type fakeOplog struct {
	mu       sync.Mutex
	messages []string
	errors   []string
}

func (l *fakeOplog) Message(message string, data any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, message)

	return nil
}

func (l *fakeOplog) Error(message string, data any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, message)

	return nil
}

// fakePayment records the last charge and returns a configured result.
type fakePayment struct {
	chargeID  string
	err       error
	lastInput service.ChargeInput
	calls     int
}

func (p *fakePayment) Charge(ctx context.Context, input service.ChargeInput) (string, error) {
	p.calls++
	p.lastInput = input
	if p.err != nil {
		return "", p.err
	}

	return p.chargeID, nil
}

// fakeMail records sent messages and returns a configured result.
type fakeMail struct {
	err         error
	lastTo      string
	lastSubject string
	lastBody    string
	calls       int
}

func (m *fakeMail) Send(ctx context.Context, to, subject, body string) (string, error) {
	m.calls++
	m.lastTo = to
	m.lastSubject = subject
	m.lastBody = body
	if m.err != nil {
		return "", m.err
	}

	return "<msg.1@example.com>", nil
}
