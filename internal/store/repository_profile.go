package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/mintid/mintid/internal/logger"
	"github.com/mintid/mintid/models"
)

// profileRepository is the PostgreSQL-backed implementation of
// [ProfileRepository]. It handles profile creation and lookup against the
// "profiles" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type profileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProfileRepository constructs a [ProfileRepository] backed by the
// provided database connection and logger.
func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

// CreateProfile persists a new profile record and returns the fully populated
// [models.UserProfile] with server-assigned fields (ProfileID, timestamps).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUsernameAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → wrapped [ErrScanningRow].
func (r *profileRepository) CreateProfile(ctx context.Context, profile models.UserProfile) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	query, args, err := insertProfileQuery(profile)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*profileRepository.CreateProfile").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.UserProfile{}, ErrUsernameAlreadyExists
		default:
			return models.UserProfile{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	created, err := scanProfile(row)
	if err != nil {
		if code := postgresError(err); code == pgerrcode.UniqueViolation {
			return models.UserProfile{}, ErrUsernameAlreadyExists
		}
		log.Err(err).Str("func", "*profileRepository.CreateProfile").Msg("error: scanning error")
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return created, nil
}

// FindByUsername retrieves the profile whose username matches the one
// provided. With activeOnly set, a matching row whose active flag is cleared
// yields [ErrProfileInactive]; the lookup itself is unfiltered so that the
// caller can distinguish "not found" from "found but deactivated".
//
// The query is executed with a multi-row scan so a uniqueness-invariant
// violation surfaces as [ErrAmbiguousProfile] instead of silently returning
// an arbitrary row.
func (r *profileRepository) FindByUsername(ctx context.Context, username string, activeOnly bool) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectByUsernameQuery(username)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.FindByUsername").Msg("error executing query")
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var found models.UserProfile
	matches := 0
	for rows.Next() {
		profile, scanErr := scanProfile(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*profileRepository.FindByUsername").Msg("error: scanning error")
			return models.UserProfile{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		found = profile
		matches++
	}
	if err = rows.Err(); err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	switch {
	case matches == 0:
		return models.UserProfile{}, ErrProfileNotFound
	case matches > 1:
		log.Error().Str("username", username).Int("matches", matches).Msg("username uniqueness invariant violated")
		return models.UserProfile{}, ErrAmbiguousProfile
	}

	if activeOnly && !found.IsActive {
		return models.UserProfile{}, ErrProfileInactive
	}

	return found, nil
}

// FindByUserID retrieves the profile bound to an authenticated account id.
func (r *profileRepository) FindByUserID(ctx context.Context, userID string) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectByUserIDQuery(userID)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*profileRepository.FindByUserID").Msg("error: row is nil")
		return models.UserProfile{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	found, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserProfile{}, ErrProfileNotFound
		}
		log.Err(err).Str("func", "*profileRepository.FindByUserID").Msg("error: scanning error")
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// UpdateRole reassigns the role of an existing profile and returns the
// updated row.
func (r *profileRepository) UpdateRole(ctx context.Context, username string, role models.Role) (models.UserProfile, error) {
	return r.updateReturning(ctx, "*profileRepository.UpdateRole", func() (string, []any, error) {
		return updateRoleQuery(username, role)
	})
}

// SetActive flips the soft-delete flag and returns the updated row.
func (r *profileRepository) SetActive(ctx context.Context, username string, active bool) (models.UserProfile, error) {
	return r.updateReturning(ctx, "*profileRepository.SetActive", func() (string, []any, error) {
		return setActiveQuery(username, active)
	})
}

// TouchLastLogin stamps last_login_at for the account. A missing row is
// reported as [ErrProfileNotFound].
func (r *profileRepository) TouchLastLogin(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	query, args, err := touchLastLoginQuery(userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.TouchLastLogin").Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (r *profileRepository) updateReturning(ctx context.Context, funcName string, build func() (string, []any, error)) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	query, args, err := build()
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error: row is nil")
		return models.UserProfile{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	updated, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserProfile{}, ErrProfileNotFound
		}
		log.Err(err).Str("func", funcName).Msg("error: scanning error")
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return updated, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (models.UserProfile, error) {
	var p models.UserProfile
	var role string
	var organizationID, departmentID sql.NullString
	var lastLoginAt sql.NullTime

	err := row.Scan(
		&p.ProfileID,
		&p.UserID,
		&p.Username,
		&p.DisplayName,
		&role,
		&organizationID,
		&departmentID,
		&p.PasswordHash,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
		&lastLoginAt,
	)
	if err != nil {
		return models.UserProfile{}, err
	}

	p.Role = models.Role(role)
	p.OrganizationID = organizationID.String
	p.DepartmentID = departmentID.String
	if lastLoginAt.Valid {
		t := lastLoginAt.Time
		p.LastLoginAt = &t
	}

	return p, nil
}
