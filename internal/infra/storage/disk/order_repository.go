package disk

import (
	"context"

	"sliceco/internal/domain/entity"
	"sliceco/internal/domain/repository"

	"github.com/pkg/errors"
)

// orderRepository implements repository.OrderRepository on the document store.
type orderRepository struct {
	store repository.DocumentStore
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(store repository.DocumentStore) repository.OrderRepository {
	return &orderRepository{store: store}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if err := r.store.Create(ctx, repository.CollectionOrders, order.Number, order); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return repository.ErrOrderAlreadyExists
		}

		return errors.Wrap(err, "failed to create order document")
	}

	return nil
}

func (r *orderRepository) FindByNumber(ctx context.Context, number string) (*entity.Order, error) {
	var order entity.Order
	if err := r.store.Read(ctx, repository.CollectionOrders, number, &order); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}

		return nil, errors.Wrap(err, "failed to read order document")
	}

	return &order, nil
}
