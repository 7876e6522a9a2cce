package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mintid/mintid/internal/logger"
	"github.com/mintid/mintid/models"
)

func newTestProfileRepo(t *testing.T) (*profileRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &profileRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func profileRows(profiles ...models.UserProfile) *sqlmock.Rows {
	rows := sqlmock.NewRows(profileColumns)
	for _, p := range profiles {
		rows.AddRow(
			p.ProfileID, p.UserID, p.Username, p.DisplayName, string(p.Role),
			p.OrganizationID, p.DepartmentID, p.PasswordHash, p.IsActive,
			p.CreatedAt, p.UpdatedAt, nil,
		)
	}
	return rows
}

var testProfile = models.UserProfile{
	ProfileID:      1,
	UserID:         "acct-1",
	Username:       "manager.test",
	DisplayName:    "Manager Test",
	Role:           models.RoleManager,
	OrganizationID: "org1",
	PasswordHash:   "$2a$10$hash",
	IsActive:       true,
	CreatedAt:      time.Now(),
	UpdatedAt:      time.Now(),
}

func TestCreateProfile_Success(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO profiles").
		WithArgs(testProfile.UserID, testProfile.Username, testProfile.DisplayName, string(testProfile.Role),
			testProfile.OrganizationID, nil, testProfile.PasswordHash, testProfile.IsActive).
		WillReturnRows(profileRows(testProfile))

	created, err := repo.CreateProfile(context.Background(), testProfile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ProfileID != 1 {
		t.Errorf("expected ProfileID=1, got %d", created.ProfileID)
	}
	if created.Username != testProfile.Username {
		t.Errorf("expected username %s, got %s", testProfile.Username, created.Username)
	}
}

func TestCreateProfile_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO profiles").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateProfile(context.Background(), testProfile)
	if !errors.Is(err, ErrUsernameAlreadyExists) {
		t.Fatalf("expected ErrUsernameAlreadyExists, got %v", err)
	}
}

func TestCreateProfile_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO profiles").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateProfile(context.Background(), testProfile)
	if err == nil || !strings.Contains(err.Error(), "db network error") {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFindByUsername_Success(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM profiles").
		WithArgs(testProfile.Username).
		WillReturnRows(profileRows(testProfile))

	found, err := repo.FindByUsername(context.Background(), testProfile.Username, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Role != models.RoleManager {
		t.Errorf("expected role manager, got %s", found.Role)
	}
}

// Usernames are keyed in lowercase: a mixed-case lookup must bind the
// normalized value, so it finds the same row the login email points at.
func TestFindByUsername_NormalizesLookupKey(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM profiles").
		WithArgs("manager.test").
		WillReturnRows(profileRows(testProfile))

	found, err := repo.FindByUsername(context.Background(), "  Manager.Test ", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != testProfile.UserID {
		t.Errorf("expected user %s, got %s", testProfile.UserID, found.UserID)
	}
}

func TestCreateProfile_NormalizesUsername(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	mixed := testProfile
	mixed.Username = "Shift.Lead"
	stored := testProfile
	stored.Username = "shift.lead"

	mock.ExpectQuery("INSERT INTO profiles").
		WithArgs(mixed.UserID, "shift.lead", mixed.DisplayName, string(mixed.Role),
			mixed.OrganizationID, nil, mixed.PasswordHash, mixed.IsActive).
		WillReturnRows(profileRows(stored))

	created, err := repo.CreateProfile(context.Background(), mixed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Username != "shift.lead" {
		t.Errorf("expected stored username shift.lead, got %s", created.Username)
	}
}

func TestFindByUsername_NotFound(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM profiles").
		WithArgs("ghost.user").
		WillReturnRows(profileRows())

	_, err := repo.FindByUsername(context.Background(), "ghost.user", true)
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

// An inactive row on an active-only lookup must be reported as inactive, not
// as missing: login gating needs to tell the two apart.
func TestFindByUsername_Inactive(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	inactive := testProfile
	inactive.IsActive = false

	mock.ExpectQuery("SELECT (.+) FROM profiles").
		WithArgs(inactive.Username).
		WillReturnRows(profileRows(inactive))

	_, err := repo.FindByUsername(context.Background(), inactive.Username, true)
	if !errors.Is(err, ErrProfileInactive) {
		t.Fatalf("expected ErrProfileInactive, got %v", err)
	}
}

func TestFindByUsername_InactiveAllowedWhenNotActiveOnly(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	inactive := testProfile
	inactive.IsActive = false

	mock.ExpectQuery("SELECT (.+) FROM profiles").
		WithArgs(inactive.Username).
		WillReturnRows(profileRows(inactive))

	found, err := repo.FindByUsername(context.Background(), inactive.Username, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.IsActive {
		t.Error("expected inactive profile")
	}
}

// Multiple rows for one username violate the uniqueness invariant and must
// surface as an internal consistency error.
func TestFindByUsername_Ambiguous(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM profiles").
		WithArgs(testProfile.Username).
		WillReturnRows(profileRows(testProfile, testProfile))

	_, err := repo.FindByUsername(context.Background(), testProfile.Username, true)
	if !errors.Is(err, ErrAmbiguousProfile) {
		t.Fatalf("expected ErrAmbiguousProfile, got %v", err)
	}
}

func TestFindByUserID_Success(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM profiles").
		WithArgs(testProfile.UserID).
		WillReturnRows(profileRows(testProfile))

	found, err := repo.FindByUserID(context.Background(), testProfile.UserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != testProfile.UserID {
		t.Errorf("expected user id %s, got %s", testProfile.UserID, found.UserID)
	}
}

func TestFindByUserID_NotFound(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM profiles").
		WithArgs("missing").
		WillReturnRows(profileRows())

	_, err := repo.FindByUserID(context.Background(), "missing")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestUpdateRole_Success(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	updated := testProfile
	updated.Role = models.RoleOrgAdmin

	mock.ExpectQuery("UPDATE profiles").
		WithArgs(string(models.RoleOrgAdmin), testProfile.Username).
		WillReturnRows(profileRows(updated))

	got, err := repo.UpdateRole(context.Background(), testProfile.Username, models.RoleOrgAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Role != models.RoleOrgAdmin {
		t.Errorf("expected role org_admin, got %s", got.Role)
	}
}

func TestSetActive_NotFound(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE profiles").
		WithArgs(false, "ghost.user").
		WillReturnRows(profileRows())

	_, err := repo.SetActive(context.Background(), "ghost.user", false)
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestTouchLastLogin(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE profiles").
		WithArgs(testProfile.UserID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.TouchLastLogin(context.Background(), testProfile.UserID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTouchLastLogin_NotFound(t *testing.T) {
	repo, mock, db := newTestProfileRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE profiles").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.TouchLastLogin(context.Background(), "missing")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
