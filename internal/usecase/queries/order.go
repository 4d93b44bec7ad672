package queries

import (
	"context"

	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"
)

var (
	ErrOrderNotFound = errs.New("order not found for viewer")
	ErrOrderAccess   = errs.New("order access denied")
)

type OrderQueries interface {
	GetOrder(ctx context.Context, viewer Viewer, orderNumber string) (*OrderView, error)
}

type OrderReadStore interface {
	FindByNumber(ctx context.Context, orderNumber string) (*OrderView, error)
}

type orderQueriesImpl struct {
	readStore OrderReadStore
}

func NewOrderQueries(readStore OrderReadStore) OrderQueries {
	return &orderQueriesImpl{
		readStore: readStore,
	}
}

// GetOrder hides other buyers' orders behind ErrOrderNotFound unless the
// viewer is an admin.
func (q *orderQueriesImpl) GetOrder(ctx context.Context, viewer Viewer, orderNumber string) (*OrderView, error) {
	view, err := q.readStore.FindByNumber(ctx, orderNumber)
	if err != nil {
		if errs.Is(err, shared.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !viewer.IsAdmin && view.UserID != viewer.UserID {
		return nil, errs.Mark(ErrOrderAccess, ErrOrderNotFound)
	}

	return view, nil
}
