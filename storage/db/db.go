// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db provides an index of extracted synthesis datasets in a
// SQL database. Each extraction is stored as a numbered snapshot so
// earlier results stay queryable after Summary.csv is overwritten.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/synthdc/ppa/synthfmt"
)

// DB is a high-level interface to a snapshot database. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertSnapshot *sql.Stmt
	insertRecord   *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
//
// The caller must import the driver, for example with
//
//	import _ "github.com/synthdc/ppa/storage/db/sqlite3"
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Snapshots (
	SnapshotID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Label VARCHAR(255),
	Created VARCHAR(64)
);
CREATE TABLE IF NOT EXISTS Records (
	SnapshotID BIGINT UNSIGNED,
	RecordID BIGINT UNSIGNED,
	Width VARCHAR(255),
	Config VARCHAR(255),
	Modification VARCHAR(255),
	Tech VARCHAR(255),
	Freq INTEGER,
	Delay DOUBLE,
	Area DOUBLE,
	PRIMARY KEY (SnapshotID, RecordID),
{{if not .sqlite3}}
	Index (Tech, Width, Config),
{{end}}
	FOREIGN KEY (SnapshotID) REFERENCES Snapshots(SnapshotID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS RecordsTechLabel ON Records(Tech, Width, Config);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertSnapshot, err = db.sql.Prepare("INSERT INTO Snapshots(Label, Created) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.insertRecord, err = db.sql.Prepare("INSERT INTO Records(SnapshotID, RecordID, Width, Config, Modification, Tech, Freq, Delay, Area) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// now is a hook for testing
var now = time.Now

// A Snapshot is one stored extraction.
type Snapshot struct {
	// ID is the numeric primary key of the snapshot.
	ID int64
	// Label describes the snapshot, such as the extraction root.
	Label string
	// Created is the time the snapshot was made, in UTC.
	Created time.Time

	// recordid is the index of the next record to insert.
	recordid int64
	// db is the underlying database that this snapshot is in.
	db *DB
}

// NewSnapshot returns an empty snapshot for storing records.
func (db *DB) NewSnapshot(ctx context.Context, label string) (*Snapshot, error) {
	created := now().UTC().Truncate(time.Second)
	res, err := db.insertSnapshot.ExecContext(ctx, label, created.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Snapshot{ID: id, Label: label, Created: created, db: db}, nil
}

// InsertRecords appends recs to s in a single transaction. Either
// all of recs are stored or none are.
func (s *Snapshot) InsertRecords(ctx context.Context, recs []*synthfmt.Record) (err error) {
	tx, err := s.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
		if err == nil {
			s.recordid += int64(len(recs))
		}
	}()
	stmt := tx.StmtContext(ctx, s.db.insertRecord)
	for i, r := range recs {
		if _, err := stmt.ExecContext(ctx, s.ID, s.recordid+int64(i), r.Width, r.Config, r.Mod, r.Tech, r.FreqMHz, r.DelayNs, r.AreaUm2); err != nil {
			return fmt.Errorf("insert %v: %w", r, err)
		}
	}
	return nil
}

// Records returns the records of snapshot id in insertion order.
func (db *DB) Records(ctx context.Context, id int64) ([]*synthfmt.Record, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT Width, Config, Modification, Tech, Freq, Delay, Area FROM Records WHERE SnapshotID = ? ORDER BY RecordID", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	recs := []*synthfmt.Record{}
	for rows.Next() {
		r := new(synthfmt.Record)
		if err := rows.Scan(&r.Width, &r.Config, &r.Mod, &r.Tech, &r.FreqMHz, &r.DelayNs, &r.AreaUm2); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Snapshots returns all snapshots, oldest first.
func (db *DB) Snapshots(ctx context.Context) ([]*Snapshot, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT SnapshotID, Label, Created FROM Snapshots ORDER BY SnapshotID")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var snaps []*Snapshot
	for rows.Next() {
		var created string
		s := &Snapshot{db: db}
		if err := rows.Scan(&s.ID, &s.Label, &created); err != nil {
			return nil, err
		}
		if s.Created, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("snapshot %d: %w", s.ID, err)
		}
		snaps = append(snaps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Later inserts continue after the stored records.
	for _, s := range snaps {
		if err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Records WHERE SnapshotID = ?", s.ID).Scan(&s.recordid); err != nil {
			return nil, err
		}
	}
	return snaps, nil
}

// CountSnapshots returns the number of snapshots stored in the
// database. This is intended for use by tests.
func (db *DB) CountSnapshots() (int, error) {
	var n int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Snapshots").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertSnapshot.Close(); err != nil {
		return err
	}
	if err := db.insertRecord.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
