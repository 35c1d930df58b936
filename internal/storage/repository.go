// Package storage persists contracts, pricing histories, tags and document
// references in SQLite. It is a plain pass-through repository: field
// validation beyond schema constraints happens in core, and all read-time
// interpretation (active periods, discontinuities, filtering) happens in the
// services layer.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"vertragsassistent/internal/core"
)

type SQLiteRepository struct {
	db  *sql.DB
	dir string
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// Foreign keys switched on per connection; contract deletion relies on
	// the ON DELETE CASCADE rules for pricing, documents and tag links.
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w: %w", core.ErrStorageUnavailable, err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, dir: filepath.Dir(dbPath)}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// BaseDir is the directory of the database file. Document paths are stored
// relative to it.
func (r *SQLiteRepository) BaseDir() string {
	return r.dir
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w: %w", core.ErrStorageUnavailable, err)
	}
	return nil
}

// ListContracts returns all contracts in no particular order; the aggregator
// sorts.
func (r *SQLiteRepository) ListContracts(ctx context.Context) ([]core.Contract, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, company, notes, reminder FROM contracts`)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	var out []core.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetContract(ctx context.Context, id int64) (core.Contract, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, company, notes, reminder FROM contracts WHERE id = ?`, id)
	c, err := scanContract(row)
	if err != nil {
		return core.Contract{}, fmt.Errorf("get contract %d: %w", id, err)
	}
	return c, nil
}

// SaveContract inserts when ID is zero, updates otherwise.
func (r *SQLiteRepository) SaveContract(ctx context.Context, c core.Contract) (core.Contract, error) {
	var reminder sql.NullString
	if c.Reminder != nil {
		reminder = sql.NullString{String: c.Reminder.String(), Valid: true}
	}

	if c.ID == 0 {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO contracts (name, company, notes, reminder) VALUES (?, ?, ?, ?)`,
			c.Name, c.Company, c.Notes, reminder)
		if err != nil {
			return core.Contract{}, fmt.Errorf("insert contract: %w", err)
		}
		c.ID, err = res.LastInsertId()
		if err != nil {
			return core.Contract{}, fmt.Errorf("contract insert id: %w", err)
		}
		slog.InfoContext(ctx, "Contract created", "id", c.ID, "name", c.Name)
		return c, nil
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE contracts SET name = ?, company = ?, notes = ?, reminder = ? WHERE id = ?`,
		c.Name, c.Company, c.Notes, reminder, c.ID)
	if err != nil {
		return core.Contract{}, fmt.Errorf("update contract %d: %w", c.ID, err)
	}
	return c, nil
}

// DeleteContract removes the contract; pricing, documents and tag links go
// with it, tags themselves stay.
func (r *SQLiteRepository) DeleteContract(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM contracts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete contract %d: %w", id, err)
	}
	slog.InfoContext(ctx, "Contract deleted", "id", id)
	return nil
}

func (r *SQLiteRepository) ListPricing(ctx context.Context, contractID int64) ([]core.PricingPeriod, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, contract_id, price, payment_interval_days, start_date, end_date
		 FROM contract_pricing WHERE contract_id = ?`, contractID)
	if err != nil {
		return nil, fmt.Errorf("list pricing for contract %d: %w", contractID, err)
	}
	defer rows.Close()

	var out []core.PricingPeriod
	for rows.Next() {
		var (
			p        core.PricingPeriod
			priceStr string
			startStr string
			endStr   sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.ContractID, &priceStr, &p.PaymentIntervalDays, &startStr, &endStr); err != nil {
			return nil, fmt.Errorf("scan pricing period: %w", err)
		}
		if p.Price, err = decimal.NewFromString(priceStr); err != nil {
			return nil, fmt.Errorf("parse stored price %q: %w", priceStr, err)
		}
		if p.Start, err = core.ParseDate(startStr); err != nil {
			return nil, fmt.Errorf("parse stored start date %q: %w", startStr, err)
		}
		if endStr.Valid {
			end, err := core.ParseDate(endStr.String)
			if err != nil {
				return nil, fmt.Errorf("parse stored end date %q: %w", endStr.String, err)
			}
			p.End = &end
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ReplacePricing swaps a contract's whole pricing history in one transaction.
// This mirrors the original save semantics: the editor always submits the
// full history.
func (r *SQLiteRepository) ReplacePricing(ctx context.Context, contractID int64, periods []core.PricingPeriod) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin pricing tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM contract_pricing WHERE contract_id = ?`, contractID); err != nil {
		return fmt.Errorf("clear pricing for contract %d: %w", contractID, err)
	}

	for _, p := range periods {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("pricing period for contract %d: %w", contractID, err)
		}
		var end sql.NullString
		if p.End != nil {
			end = sql.NullString{String: p.End.String(), Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO contract_pricing (contract_id, price, payment_interval_days, start_date, end_date)
			 VALUES (?, ?, ?, ?, ?)`,
			contractID, p.Price.String(), p.PaymentIntervalDays, p.Start.String(), end); err != nil {
			return fmt.Errorf("insert pricing period: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit pricing tx: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) TagsForContract(ctx context.Context, contractID int64) ([]core.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.name FROM tags t
		 JOIN contract_tags ct ON ct.tag_id = t.id
		 WHERE ct.contract_id = ?
		 ORDER BY t.name`, contractID)
	if err != nil {
		return nil, fmt.Errorf("tags for contract %d: %w", contractID, err)
	}
	defer rows.Close()

	var out []core.Tag
	for rows.Next() {
		var t core.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListTagsWithCount returns all tags ordered by name, each with the number of
// contracts referencing it.
func (r *SQLiteRepository) ListTagsWithCount(ctx context.Context) ([]core.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.name, COUNT(ct.contract_id)
		 FROM tags t
		 LEFT JOIN contract_tags ct ON ct.tag_id = t.id
		 GROUP BY t.id, t.name
		 ORDER BY t.name`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var out []core.Tag
	for rows.Next() {
		var t core.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Count); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CreateTag enforces name uniqueness; a duplicate reports
// core.ErrDuplicateTagName regardless of the driver's constraint error.
func (r *SQLiteRepository) CreateTag(ctx context.Context, name string) (core.Tag, error) {
	t := core.Tag{Name: name}
	if err := t.Validate(); err != nil {
		return core.Tag{}, err
	}

	var existing int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tags WHERE name = ?`, name).Scan(&existing)
	if err != nil {
		return core.Tag{}, fmt.Errorf("check tag name %q: %w", name, err)
	}
	if existing > 0 {
		return core.Tag{}, core.ErrDuplicateTagName
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO tags (name) VALUES (?)`, name)
	if err != nil {
		return core.Tag{}, fmt.Errorf("insert tag %q: %w", name, err)
	}
	if t.ID, err = res.LastInsertId(); err != nil {
		return core.Tag{}, fmt.Errorf("tag insert id: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) RenameTag(ctx context.Context, id int64, name string) error {
	if err := (core.Tag{Name: name}).Validate(); err != nil {
		return err
	}
	var existing int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tags WHERE name = ? AND id != ?`, name, id).Scan(&existing)
	if err != nil {
		return fmt.Errorf("check tag name %q: %w", name, err)
	}
	if existing > 0 {
		return core.ErrDuplicateTagName
	}
	if _, err := r.db.ExecContext(ctx, `UPDATE tags SET name = ? WHERE id = ?`, name, id); err != nil {
		return fmt.Errorf("rename tag %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteTag(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete tag %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) AssignTag(ctx context.Context, contractID, tagID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO contract_tags (contract_id, tag_id) VALUES (?, ?)`,
		contractID, tagID)
	if err != nil {
		return fmt.Errorf("assign tag %d to contract %d: %w", tagID, contractID, err)
	}
	return nil
}

func (r *SQLiteRepository) UnassignTag(ctx context.Context, contractID, tagID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM contract_tags WHERE contract_id = ? AND tag_id = ?`,
		contractID, tagID)
	if err != nil {
		return fmt.Errorf("unassign tag %d from contract %d: %w", tagID, contractID, err)
	}
	return nil
}

func (r *SQLiteRepository) ListDocuments(ctx context.Context, contractID int64) ([]core.ContractDocument, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, contract_id, file, description, date
		 FROM contract_documents WHERE contract_id = ? ORDER BY date, id`, contractID)
	if err != nil {
		return nil, fmt.Errorf("list documents for contract %d: %w", contractID, err)
	}
	defer rows.Close()

	var out []core.ContractDocument
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetDocument(ctx context.Context, id int64) (core.ContractDocument, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, contract_id, file, description, date FROM contract_documents WHERE id = ?`, id)
	d, err := scanDocument(row)
	if err != nil {
		return core.ContractDocument{}, fmt.Errorf("get document %d: %w", id, err)
	}
	return d, nil
}

func (r *SQLiteRepository) SaveDocument(ctx context.Context, d core.ContractDocument) (core.ContractDocument, error) {
	if err := d.Validate(); err != nil {
		return core.ContractDocument{}, err
	}

	if d.ID == 0 {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO contract_documents (contract_id, file, description, date) VALUES (?, ?, ?, ?)`,
			d.ContractID, d.File, d.Description, d.Date.String())
		if err != nil {
			return core.ContractDocument{}, fmt.Errorf("insert document: %w", err)
		}
		if d.ID, err = res.LastInsertId(); err != nil {
			return core.ContractDocument{}, fmt.Errorf("document insert id: %w", err)
		}
		return d, nil
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE contract_documents SET contract_id = ?, file = ?, description = ?, date = ? WHERE id = ?`,
		d.ContractID, d.File, d.Description, d.Date.String(), d.ID)
	if err != nil {
		return core.ContractDocument{}, fmt.Errorf("update document %d: %w", d.ID, err)
	}
	return d, nil
}

func (r *SQLiteRepository) DeleteDocument(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM contract_documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete document %d: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (core.Contract, error) {
	var (
		c        core.Contract
		reminder sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Company, &c.Notes, &reminder); err != nil {
		return core.Contract{}, err
	}
	if reminder.Valid {
		d, err := core.ParseDate(reminder.String)
		if err != nil {
			return core.Contract{}, fmt.Errorf("parse stored reminder %q: %w", reminder.String, err)
		}
		c.Reminder = &d
	}
	return c, nil
}

func scanDocument(row rowScanner) (core.ContractDocument, error) {
	var (
		d       core.ContractDocument
		dateStr string
	)
	if err := row.Scan(&d.ID, &d.ContractID, &d.File, &d.Description, &dateStr); err != nil {
		return core.ContractDocument{}, err
	}
	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.ContractDocument{}, fmt.Errorf("parse stored document date %q: %w", dateStr, err)
	}
	d.Date = date
	return d, nil
}
