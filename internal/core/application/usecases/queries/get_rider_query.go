package queries

import (
	"errors"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/rider"
	"riderdispatch/internal/pkg/guard"
)

var ErrGetRiderQueryIsNotConstructed = errors.New(
	"GetRiderQuery must be created via NewGetRiderQuery constructor",
)

// GetRiderQuery reads one rider profile, used by the client to resynchronise.
type GetRiderQuery struct {
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetRiderQuery(riderID kernel.UUID) (GetRiderQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetRiderQuery{}, err
	}

	return GetRiderQuery{
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetRiderQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderQueryIsNotConstructed)
}

func (q GetRiderQuery) RiderID() kernel.UUID {
	return q.riderID
}

type RiderResponse struct {
	ID              kernel.UUID
	UserID          kernel.UUID
	Name            string
	Approval        rider.Approval
	IsOnline        bool
	CurrentOrderID  *kernel.UUID
	TotalDeliveries int
}
