package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

// Migrate applies the schema. Statements are idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Tables lists the tables Migrate creates, in an order safe to truncate.
var Tables = []string{
	"proposal_tickets",
	"slash_proposals",
	"slashers",
	"resolvers",
	"ncn_policies",
	"resolver_configs",
	"outbox",
	"audit_events",
}
