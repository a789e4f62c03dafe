// Package storage persists block and page rows in SQLite. Block rows carry a
// dense zero-based order index; structured payloads are JSON-encoded into the
// content column.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/blocks"
	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/store"
)

// DB wraps the SQLite connection.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite file at path and runs migrations.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite only supports one writer; a single connection avoids SQLITE_BUSY
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS pages (
			project_id TEXT NOT NULL,
			page_id    TEXT NOT NULL,
			theme_html TEXT NOT NULL DEFAULT '',
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (project_id, page_id)
		)`,
		`CREATE TABLE IF NOT EXISTS blocks (
			project_id  TEXT NOT NULL,
			page_id     TEXT NOT NULL,
			block_id    TEXT NOT NULL,
			type        TEXT NOT NULL,
			content     TEXT NOT NULL DEFAULT '',
			order_index INTEGER NOT NULL,
			style_json  TEXT,
			PRIMARY KEY (project_id, page_id, block_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_blocks_page_order
			ON blocks(project_id, page_id, order_index)`,
	}
	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// ListBlocks returns a page's blocks ordered by their stored index.
func (db *DB) ListBlocks(ctx context.Context, project, page string) ([]blocks.Block, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT block_id, type, content, style_json
		 FROM blocks WHERE project_id = ? AND page_id = ?
		 ORDER BY order_index`, project, page)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	defer rows.Close()

	var out []blocks.Block
	for rows.Next() {
		var (
			id, typ, content string
			styleJSON        sql.NullString
		)
		if err := rows.Scan(&id, &typ, &content, &styleJSON); err != nil {
			return nil, fmt.Errorf("scan block row: %w", err)
		}
		t, ok := blocks.CanonicalType(typ)
		if !ok {
			return nil, fmt.Errorf("block %s: unknown type %q", id, typ)
		}
		b, err := blocks.DecodeContent(t, content)
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", id, err)
		}
		b.ID = id
		if styleJSON.Valid && styleJSON.String != "" {
			var s blocks.Styles
			if err := json.Unmarshal([]byte(styleJSON.String), &s); err != nil {
				return nil, fmt.Errorf("block %s: decode styles: %w", id, err)
			}
			b.Styles = &s
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ReplaceBlocks atomically replaces all block rows of a page with the given
// ordered sequence. Order indices are assigned densely from slice position.
func (db *DB) ReplaceBlocks(ctx context.Context, project, page string, list []blocks.Block) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM blocks WHERE project_id = ? AND page_id = ?`, project, page); err != nil {
		return fmt.Errorf("clear blocks: %w", err)
	}

	ins, err := tx.PrepareContext(ctx,
		`INSERT INTO blocks (project_id, page_id, block_id, type, content, order_index, style_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer ins.Close()

	for i, b := range list {
		content, err := b.EncodeContent()
		if err != nil {
			return fmt.Errorf("block %s: %w", b.ID, err)
		}
		var styleJSON any
		if !b.Styles.Empty() {
			raw, err := json.Marshal(b.Styles)
			if err != nil {
				return fmt.Errorf("block %s: encode styles: %w", b.ID, err)
			}
			styleJSON = string(raw)
		}
		if _, err := ins.ExecContext(ctx, project, page, b.ID, string(b.Type), content, i, styleJSON); err != nil {
			return fmt.Errorf("insert block %s: %w", b.ID, err)
		}
	}
	return tx.Commit()
}

// GetPage returns the page's theme. The second return is false when no page
// row exists.
func (db *DB) GetPage(ctx context.Context, project, page string) (blocks.Theme, bool, error) {
	var themeHTML string
	err := db.conn.QueryRowContext(ctx,
		`SELECT theme_html FROM pages WHERE project_id = ? AND page_id = ?`,
		project, page).Scan(&themeHTML)
	if errors.Is(err, sql.ErrNoRows) {
		return blocks.Theme{}, false, nil
	}
	if err != nil {
		return blocks.Theme{}, false, fmt.Errorf("get page: %w", err)
	}
	return blocks.Theme{HTML: themeHTML}, true, nil
}

// UpsertPage creates or updates the page row.
func (db *DB) UpsertPage(ctx context.Context, project, page string, theme blocks.Theme) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO pages (project_id, page_id, theme_html, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (project_id, page_id)
		 DO UPDATE SET theme_html = excluded.theme_html, updated_at = CURRENT_TIMESTAMP`,
		project, page, theme.HTML)
	if err != nil {
		return fmt.Errorf("upsert page: %w", err)
	}
	return nil
}

// DeletePage removes the page row and every block row belonging to it.
func (db *DB) DeletePage(ctx context.Context, project, page string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM blocks WHERE project_id = ? AND page_id = ?`, project, page); err != nil {
		return fmt.Errorf("delete blocks: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM pages WHERE project_id = ? AND page_id = ?`, project, page); err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return tx.Commit()
}

// PageStore binds the database to one page and satisfies store.Saver.
type PageStore struct {
	DB      *DB
	Project string
	Page    string
}

// SavePage persists a full page snapshot: block rows replaced wholesale,
// page row upserted.
func (p *PageStore) SavePage(ctx context.Context, snap store.Snapshot) error {
	if err := p.DB.ReplaceBlocks(ctx, p.Project, p.Page, snap.Blocks); err != nil {
		return err
	}
	return p.DB.UpsertPage(ctx, p.Project, p.Page, snap.Theme)
}
