package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gamebase/internal/domain"

	"github.com/rs/zerolog"
)

type AccountRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewAccountRepository(sqlDB *sql.DB, logger zerolog.Logger) *AccountRepository {
	return &AccountRepository{db: sqlDB, logger: logger}
}

// Upsert inserts or updates an account by steam id. The original created_at
// is preserved on update.
func (r *AccountRepository) Upsert(ctx context.Context, account *domain.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO steam_accounts
			(steam_id, persona_name, profile_url, avatar_url, real_name, country_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(steam_id) DO UPDATE SET
			persona_name = excluded.persona_name,
			profile_url  = excluded.profile_url,
			avatar_url   = excluded.avatar_url,
			real_name    = excluded.real_name,
			country_code = excluded.country_code`,
		account.SteamID,
		account.PersonaName,
		account.ProfileURL,
		account.AvatarURL,
		account.RealName,
		account.CountryCode,
		account.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("steam_id", account.SteamID).Msg("failed to upsert account")
		return fmt.Errorf("failed to upsert account %s: %w", account.SteamID, err)
	}
	return nil
}

// Get returns the account for steam id, or nil when none is stored.
func (r *AccountRepository) Get(ctx context.Context, steamID string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT steam_id, persona_name, profile_url, avatar_url, real_name, country_code, created_at
		FROM steam_accounts WHERE steam_id = ?`, steamID)

	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", steamID, err)
	}
	return account, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT steam_id, persona_name, profile_url, avatar_url, real_name, country_code, created_at
		FROM steam_accounts ORDER BY steam_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

// Delete removes the account and reports whether a row was actually deleted.
func (r *AccountRepository) Delete(ctx context.Context, steamID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM steam_accounts WHERE steam_id = ?`, steamID)
	if err != nil {
		return false, fmt.Errorf("failed to delete account %s: %w", steamID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.SteamID,
		&account.PersonaName,
		&account.ProfileURL,
		&account.AvatarURL,
		&account.RealName,
		&account.CountryCode,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
