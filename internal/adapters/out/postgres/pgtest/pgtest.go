// Package pgtest starts a disposable PostgreSQL for integration tests and
// builds valid aggregates filled with fake data.
package pgtest

import (
	"context"
	"time"

	"riderdispatch/internal/adapters/out/postgres"
	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/order"
	"riderdispatch/internal/core/domain/model/rider"

	"github.com/jaswdr/faker"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is a running container with a migrated schema.
type Database struct {
	Container *pgcontainer.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine and migrates the schema.
func Start(ctx context.Context) (*Database, error) {
	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err = postgres.AutoMigrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db}, nil
}

// Truncate empties every table.
func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE rider_notifications, riders, orders").Error
}

func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}

// Fixtures builds valid aggregates with fake display data.
type Fixtures struct {
	fake faker.Faker
}

func NewFixtures() Fixtures {
	return Fixtures{fake: faker.New()}
}

// PendingOrder returns a new order created at createdAt.
func (f Fixtures) PendingOrder(createdAt time.Time) (*order.Order, error) {
	items := make([]string, f.fake.IntBetween(1, 4))
	for i := range items {
		items[i] = f.fake.Lorem().Word()
	}

	return order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		f.fake.Company().Name(),
		items,
		int64(f.fake.IntBetween(100, 5000)),
		f.fake.Address().Address(),
		createdAt.UTC().Truncate(time.Microsecond),
	)
}

// AvailableRider returns an approved, online rider without an order.
func (f Fixtures) AvailableRider() (*rider.Rider, error) {
	r, err := rider.NewRider(kernel.NewUUID(), kernel.NewUUID(), f.fake.Person().Name())
	if err != nil {
		return nil, err
	}
	if err = r.Approve(); err != nil {
		return nil, err
	}
	if err = r.SetOnline(true); err != nil {
		return nil, err
	}
	return r, nil
}
