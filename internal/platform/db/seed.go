package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/domain/auth"
	"hrms/internal/platform/config"
)

// Seed makes sure an admin account and a starter scoring catalog exist.
// Every step is idempotent; running it on a populated database changes
// nothing.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureAdminUser(ctx, pool, cfg.SeedAdminUsername, cfg.SeedAdminPassword); err != nil {
		return err
	}
	return ensureScoringCatalog(ctx, pool)
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, username, password string) error {
	var id int64
	err := pool.QueryRow(ctx, `SELECT user_id FROM users WHERE username = $1`, username).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if password == "" {
		password = "admin"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (username, password_hash, role_name)
    VALUES ($1, $2, 'Admin')
  `, username, hash)
	return err
}

func ensureScoringCatalog(ctx context.Context, pool *pgxpool.Pool) error {
	var n int
	if err := pool.QueryRow(ctx, `SELECT COUNT(1) FROM groups`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	catalog := []struct {
		group     string
		weight    float64
		subgroups []string
	}{
		{"Job Performance", 60, []string{"Quality of Work", "Productivity"}},
		{"Professional Conduct", 40, []string{"Attendance", "Teamwork"}},
	}

	for _, g := range catalog {
		var groupID int64
		if err := pool.QueryRow(ctx, `
      INSERT INTO groups (name, weight) VALUES ($1, $2) RETURNING group_id
    `, g.group, g.weight).Scan(&groupID); err != nil {
			return err
		}
		for _, sub := range g.subgroups {
			if _, err := pool.Exec(ctx, `
        INSERT INTO subgroups (group_id, name) VALUES ($1, $2)
      `, groupID, sub); err != nil {
				return err
			}
		}
	}
	return nil
}
