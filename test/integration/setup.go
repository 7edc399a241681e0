// Package integration exercises the PostgreSQL repositories against a
// real database running in a throwaway container. The tests skip under
// -short and need a reachable Docker daemon.
package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"shopfront/internal/config"
	"shopfront/internal/database"
	"shopfront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB is a containerized PostgreSQL instance with the shopfront
// schema applied.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
}

// SetupTestDB starts a PostgreSQL container, connects through the
// production pool constructor and applies db/schema.sql.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("shopfront_test"),
		postgres.WithUsername("shopfront"),
		postgres.WithPassword("shopfront"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to resolve container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to resolve container port: %v", err)
	}

	pool, err := database.NewPool(ctx, config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "shopfront",
		Password:        "shopfront",
		Database:        "shopfront_test",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	applySchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{Container: container, Pool: pool}
}

func applySchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	schema, err := os.ReadFile("../../db/schema.sql")
	if err != nil {
		t.Fatalf("failed to read schema file: %v", err)
	}
	if _, err := pool.Exec(context.Background(), string(schema)); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
}

// CleanupDB removes all rows between test cases. Deletion order follows
// the foreign keys.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	tables := []string{
		"contact_messages", "order_returns", "shipping_tracking",
		"wishlist_items", "product_reviews", "payment_transactions",
		"order_items", "orders", "coupons", "cart_items", "carts",
		"shipping_regions", "product_sizes", "products",
		"password_reset_tokens", "user_addresses", "users",
	}
	for _, table := range tables {
		if _, err := pool.Exec(context.Background(), "DELETE FROM "+table); err != nil {
			t.Fatalf("failed to clean table %s: %v", table, err)
		}
	}
}

// SeedUser inserts a customer row and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool) *model.User {
	t.Helper()

	user := &model.User{
		ID:        uuid.NewString(),
		Email:     uuid.NewString() + "@example.com",
		Name:      "Test Customer",
		Role:      model.RoleCustomer,
		CreatedAt: time.Now().UTC(),
	}
	_, err := pool.Exec(context.Background(),
		"INSERT INTO users (id, email, name, role, created_at) VALUES ($1, $2, $3, $4, $5)",
		user.ID, user.Email, user.Name, user.Role, user.CreatedAt)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

// SeedOrder inserts a minimal order row for tests that only need the
// foreign key to resolve.
func SeedOrder(t *testing.T, pool *pgxpool.Pool, userID string) uuid.UUID {
	t.Helper()

	orderID := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO orders (id, user_id, total_amount, shipping_cost, shipping_region,
			customer_name, customer_phone, shipping_address)
		VALUES ($1, $2, 100, 50, 'Istanbul', 'Test Customer', '+905550000000', '1 Test Street')
	`, orderID, userID)
	if err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	return orderID
}

// NewProduct builds a catalogue entry with a single "M" size row.
func NewProduct(price float64, stock int) *model.Product {
	id := uuid.NewString()
	return &model.Product{
		ID:          id,
		SKU:         "SKU-" + id[:8],
		Name:        map[string]string{"en": "Integration Product"},
		Description: map[string]string{"en": "integration test product"},
		Price:       price,
		Category:    model.CategoryMen,
		Images:      []string{},
		SizesStock:  []model.SizeStock{{Size: "M", Stock: stock}},
		CreatedAt:   time.Now().UTC(),
	}
}
