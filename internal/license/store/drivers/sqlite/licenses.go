package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/keyward/internal/license/domain"
	"github.com/aussiebroadwan/keyward/internal/license/store"
)

type licensesRepo struct {
	db dbtx
}

const licenseColumns = `id, license_key, client_name, fingerprint, expiration_date, is_active, notes, created_at, updated_at`

func (r *licensesRepo) GetByKey(ctx context.Context, key string) (domain.License, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+licenseColumns+` FROM licenses WHERE license_key = ?`, key)
	return scanLicense(row)
}

func (r *licensesRepo) GetByFingerprint(ctx context.Context, fp string) (domain.License, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+licenseColumns+` FROM licenses WHERE fingerprint = ?`, fp)
	return scanLicense(row)
}

func (r *licensesRepo) Create(ctx context.Context, l domain.License) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO licenses (id, license_key, client_name, fingerprint, expiration_date, is_active, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID,
		l.Key,
		l.ClientName,
		mapOptionalString(l.Fingerprint),
		fmtDate(l.ExpirationDate),
		l.IsActive,
		l.Notes,
		fmtTime(l.CreatedAt),
		fmtTime(l.UpdatedAt),
	)
	return mapConstraint(err)
}

// BindFingerprint is the activation CAS: the WHERE clause only matches an
// unbound row, so concurrent activations race on RowsAffected rather than
// clobbering each other. The partial unique index on fingerprint additionally
// rejects binding one machine to two licenses.
func (r *licensesRepo) BindFingerprint(ctx context.Context, key, fp string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE licenses
		SET fingerprint = ?, updated_at = ?
		WHERE license_key = ? AND fingerprint IS NULL`,
		fp, fmtTime(time.Now()), key)
	if err != nil {
		return false, mapConstraint(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, mapUnavailable(err)
	}
	return n == 1, nil
}

// SetActive only writes when the flag actually changes, so a repeated revoke
// is a true no-op: updated_at stays put.
func (r *licensesRepo) SetActive(ctx context.Context, key string, active bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE licenses SET is_active = ?, updated_at = ?
		WHERE license_key = ? AND is_active <> ?`,
		active, fmtTime(time.Now()), key, active)
	if err != nil {
		return mapUnavailable(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return mapUnavailable(err)
	}
	if n == 1 {
		return nil
	}

	// Nothing matched: the flag already holds the target value, or the key
	// does not exist.
	var one int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM licenses WHERE license_key = ?`, key).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return mapUnavailable(err)
}

func (r *licensesRepo) UpdateDetails(ctx context.Context, key, clientName string, expires time.Time, notes string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE licenses
		SET client_name = ?, expiration_date = ?, notes = ?, updated_at = ?
		WHERE license_key = ?`,
		clientName, fmtDate(expires), notes, fmtTime(time.Now()), key)
	if err != nil {
		return mapUnavailable(err)
	}
	return requireRow(res)
}

func (r *licensesRepo) List(ctx context.Context, f store.ListFilter) ([]domain.License, error) {
	query := `SELECT ` + licenseColumns + ` FROM licenses`
	var (
		conds []string
		args  []any
	)

	if f.ClientName != "" {
		conds = append(conds, `client_name LIKE ? COLLATE NOCASE`)
		args = append(args, "%"+f.ClientName+"%")
	}
	if f.KeySubstring != "" {
		conds = append(conds, `license_key LIKE ?`)
		args = append(args, "%"+f.KeySubstring+"%")
	}
	switch f.Status {
	case domain.StatusActive:
		conds = append(conds, `is_active AND expiration_date > ?`)
		args = append(args, fmtDate(f.Today))
	case domain.StatusExpired:
		conds = append(conds, `expiration_date <= ?`)
		args = append(args, fmtDate(f.Today))
	case domain.StatusRevoked:
		conds = append(conds, `NOT is_active AND expiration_date > ?`)
		args = append(args, fmtDate(f.Today))
	}
	if f.ExpiringWithinDays > 0 {
		conds = append(conds, `is_active AND expiration_date > ? AND expiration_date <= ?`)
		args = append(args, fmtDate(f.Today), fmtDate(f.Today.AddDate(0, 0, f.ExpiringWithinDays)))
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}

	query += ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapUnavailable(err)
	}
	defer rows.Close()

	var out []domain.License
	for rows.Next() {
		l, err := scanLicense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, mapUnavailable(rows.Err())
}

// CountStats aggregates every lifecycle bucket in one pass. Comparisons are
// against ISO date strings, which order lexicographically. Buckets mirror the
// status derivation: expiry wins over revocation.
func (r *licensesRepo) CountStats(ctx context.Context, today time.Time) (store.Stats, error) {
	day := fmtDate(today)
	soon := fmtDate(today.AddDate(0, 0, 30))

	var s store.Stats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN is_active AND expiration_date > ?1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN expiration_date <= ?1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN is_active AND expiration_date > ?1 AND expiration_date <= ?2 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN NOT is_active AND expiration_date > ?1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN fingerprint IS NOT NULL THEN 1 ELSE 0 END), 0)
		FROM licenses`,
		day, soon,
	).Scan(&s.Total, &s.Active, &s.Expired, &s.ExpiringSoon, &s.Revoked, &s.Activated)
	if err != nil {
		return store.Stats{}, mapUnavailable(err)
	}
	return s, nil
}

func (r *licensesRepo) DeleteByKey(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM licenses WHERE license_key = ?`, key)
	if err != nil {
		return mapUnavailable(err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLicense(row rowScanner) (domain.License, error) {
	var (
		l          domain.License
		fp         sql.NullString
		expiration string
		createdAt  string
		updatedAt  string
	)

	err := row.Scan(&l.ID, &l.Key, &l.ClientName, &fp, &expiration, &l.IsActive, &l.Notes, &createdAt, &updatedAt)
	if err != nil {
		return domain.License{}, mapNotFound(err)
	}

	l.Fingerprint = mapNullStringPtr(fp)
	if l.ExpirationDate, err = parseDate(expiration); err != nil {
		return domain.License{}, fmt.Errorf("license %s: %w", l.Key, err)
	}
	if l.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.License{}, fmt.Errorf("license %s: %w", l.Key, err)
	}
	if l.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.License{}, fmt.Errorf("license %s: %w", l.Key, err)
	}
	return l, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return mapUnavailable(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
