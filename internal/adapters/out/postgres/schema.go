package postgres

import (
	"riderdispatch/internal/adapters/out/postgres/notificationrepo"
	"riderdispatch/internal/adapters/out/postgres/orderrepo"
	"riderdispatch/internal/adapters/out/postgres/riderrepo"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the orders, riders and rider_notifications tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&riderrepo.RiderDTO{},
		&notificationrepo.NotificationDTO{},
	)
}
