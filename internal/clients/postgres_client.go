package clients

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	postgresInstance Postgres
	postgresOnce     sync.Once
)

type Postgres struct {
	DB *pgxpool.Pool
}

// GetPostgresClient builds the shared connection pool from the DB_*
// environment. Fatal on failure: nothing in this service works without
// the store.
func GetPostgresClient(ctx context.Context) Postgres {
	postgresOnce.Do(func() {
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_NAME"))

		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			log.Fatalf("[PostgresClient] Failed to create pool: %v", err)
		}

		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("[PostgresClient] Failed to ping PostgreSQL: %v", err)
		}

		postgresInstance = Postgres{DB: pool}
	})

	return postgresInstance
}

func (p Postgres) Close() {
	if p.DB != nil {
		p.DB.Close()
	}
}
