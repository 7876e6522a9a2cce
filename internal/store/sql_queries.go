package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/mintid/mintid/internal/identity"
	"github.com/mintid/mintid/models"
)

// psql builds queries with PostgreSQL-style $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// profileColumns is the canonical column order scanned by scanProfile.
var profileColumns = []string{
	"profile_id",
	"user_id",
	"username",
	"display_name",
	"role",
	"organization_id",
	"department_id",
	"password_hash",
	"is_active",
	"created_at",
	"updated_at",
	"last_login_at",
}

// Usernames are stored and matched in normalized (lowercase) form. The
// username column is unique, so normalizing here keeps the stored key in
// step with the lowercased local part of the synthesized login email.
func insertProfileQuery(p models.UserProfile) (string, []any, error) {
	return psql.Insert(p.TableName()).
		Columns("user_id", "username", "display_name", "role", "organization_id", "department_id", "password_hash", "is_active").
		Values(p.UserID, identity.NormalizeUsername(p.Username), p.DisplayName, string(p.Role), nullable(p.OrganizationID), nullable(p.DepartmentID), p.PasswordHash, p.IsActive).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
}

func selectByUsernameQuery(username string) (string, []any, error) {
	return psql.Select(profileColumns...).
		From(models.UserProfile{}.TableName()).
		Where(sq.Eq{"username": identity.NormalizeUsername(username)}).
		ToSql()
}

func selectByUserIDQuery(userID string) (string, []any, error) {
	return psql.Select(profileColumns...).
		From(models.UserProfile{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func updateRoleQuery(username string, role models.Role) (string, []any, error) {
	return psql.Update(models.UserProfile{}.TableName()).
		Set("role", string(role)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"username": identity.NormalizeUsername(username)}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
}

func setActiveQuery(username string, active bool) (string, []any, error) {
	return psql.Update(models.UserProfile{}.TableName()).
		Set("is_active", active).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"username": identity.NormalizeUsername(username)}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
}

func touchLastLoginQuery(userID string) (string, []any, error) {
	return psql.Update(models.UserProfile{}.TableName()).
		Set("last_login_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func joinColumns() string {
	out := profileColumns[0]
	for _, c := range profileColumns[1:] {
		out += ", " + c
	}
	return out
}

// nullable maps an empty string to SQL NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
