package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"paygate/internal/db/migrations"
)

// Migrate applies all pending schema migrations. Goose keeps its own version
// table, so running it on every startup is safe.
func Migrate(ctx context.Context, addr string) error {
	conn, err := sql.Open("pgx", addr)
	if err != nil {
		return fmt.Errorf("migrate open: %w", err)
	}
	defer conn.Close()

	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrate dialect: %w", err)
	}

	if err := goose.UpContext(ctx, conn, "."); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}

	return nil
}
