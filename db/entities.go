// ABOUTME: Entity database operations for the search backend
// ABOUTME: Seeding from the catalog, single lookups, counts and case-insensitive substring search
package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/harperreed/nexus/models"
)

const entityColumns = `id, type, name, role, company, industry, location, avatar, status, group_name, source, coord_x, coord_y`

func InsertEntity(db *sql.DB, e models.Entity) error {
	_, err := db.Exec(`
		INSERT INTO entities (`+entityColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entityArgs(e)...)
	if err != nil {
		return fmt.Errorf("failed to insert entity %d: %w", e.ID, err)
	}
	return nil
}

func entityArgs(e models.Entity) []any {
	var x, y sql.NullInt64
	if e.Coords != nil {
		x = sql.NullInt64{Int64: int64(e.Coords.X), Valid: true}
		y = sql.NullInt64{Int64: int64(e.Coords.Y), Valid: true}
	}
	return []any{e.ID, e.Type, e.Name, nullString(e.Role), nullString(e.Company), nullString(e.Industry),
		nullString(e.Location), e.Avatar, e.Status, e.Group, nullString(e.Source), x, y}
}

// SeedEntities inserts entities only when the table is empty. It reports how many rows were written.
func SeedEntities(db *sql.DB, entities []models.Entity) (int, error) {
	count, err := CountEntities(db)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT INTO entities (` + entityColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range entities {
		if _, err := stmt.Exec(entityArgs(e)...); err != nil {
			return 0, fmt.Errorf("failed to seed entity %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(entities), nil
}

func CountEntities(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM entities`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func GetEntity(db *sql.DB, id int) (*models.Entity, error) {
	row := db.QueryRow(`SELECT `+entityColumns+` FROM entities WHERE id = ?`, id)
	e, err := scanEntity(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// SearchEntities matches term as a case-insensitive substring of name, role,
// company, industry or location. An empty term lists everything up to limit.
func SearchEntities(db *sql.DB, term string, limit int) ([]models.Entity, error) {
	if limit <= 0 {
		limit = 10
	}

	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	rows, err := db.Query(`
		SELECT `+entityColumns+` FROM entities
		WHERE LOWER(name) LIKE ?
		   OR LOWER(COALESCE(role, '')) LIKE ?
		   OR LOWER(COALESCE(company, '')) LIKE ?
		   OR LOWER(COALESCE(industry, '')) LIKE ?
		   OR LOWER(COALESCE(location, '')) LIKE ?
		ORDER BY id
		LIMIT ?
	`, pattern, pattern, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntity(s scanner) (*models.Entity, error) {
	var (
		e                                         models.Entity
		role, company, industry, location, source sql.NullString
		avatar, status, group                     sql.NullString
		x, y                                      sql.NullInt64
	)
	err := s.Scan(&e.ID, &e.Type, &e.Name, &role, &company, &industry, &location,
		&avatar, &status, &group, &source, &x, &y)
	if err != nil {
		return nil, err
	}
	e.Role = role.String
	e.Company = company.String
	e.Industry = industry.String
	e.Location = location.String
	e.Avatar = avatar.String
	e.Status = status.String
	e.Group = group.String
	e.Source = source.String
	if x.Valid && y.Valid {
		e.Coords = &models.Coords{X: int(x.Int64), Y: int(y.Int64)}
	}
	return &e, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
