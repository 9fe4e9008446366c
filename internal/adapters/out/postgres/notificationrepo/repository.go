package notificationrepo

import (
	"context"
	"errors"

	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/notification"
	"riderdispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormNotificationRepository(db *gorm.DB, tracker aggregateTracker) *GormNotificationRepository {
	return &GormNotificationRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormNotificationRepository) Add(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes only the decision columns; the display fields are immutable.
// Only an open row is written: a stored decision or withdrawal is never
// overwritten, and notification.ErrNotificationAlreadyDecided is returned instead.
func (r *GormNotificationRepository) Update(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ? AND NOT is_read AND is_accepted IS NULL", dto.ID).
		Select("is_read", "is_accepted").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		err := r.db.WithContext(ctx).Model(&NotificationDTO{}).Where("id = ?", dto.ID).Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("notification", aggregate.ID())
		}
		return notification.ErrNotificationAlreadyDecided
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves a notification with SELECT ... FOR UPDATE.
func (r *GormNotificationRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormNotificationRepository) get(db *gorm.DB, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListOpenForOrder returns unread, undecided notifications for the order and
// locks them. Rows decided by a transaction that commits while waiting for the
// lock drop out of the result.
func (r *GormNotificationRepository) ListOpenForOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*notification.Notification, error) {
	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ? AND NOT is_read AND is_accepted IS NULL", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	result := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}

	return result, nil
}

// ListRecipients returns every rider that was ever offered the order.
func (r *GormNotificationRepository) ListRecipients(ctx context.Context, orderID kernel.UUID) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Pluck("rider_id", &raw).Error
	if err != nil {
		return nil, err
	}

	riders := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		riderID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		riders = append(riders, riderID)
	}

	return riders, nil
}
