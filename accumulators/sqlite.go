package accumulators

import (
	"database/sql"
	"fmt"

	uuid "github.com/gofrs/uuid"

	"github.com/tomzhang/tange"
	"github.com/tomzhang/tange/errors"
)

// SQLiteStore is an Accumulator which spills written elements into a
// database table, one encoded row per element, keyed by a per-session UUID.
// Finishing a session inserts all buffered rows inside a single transaction,
// so writes stay all-or-nothing; streaming selects the session's rows back
// in insertion order. The table is created on construction if absent.
//
// SQLiteStore works against any database/sql driver; tests use
// mattn/go-sqlite3 with an in-memory database.
type SQLiteStore[A any] struct {
	db      *sql.DB
	table   string
	codec   tange.Codec[A]
	session string // session id of the completed artifact; empty if never written
}

// NewSQLiteStore produces a SQLiteStore Accumulator over db, spilling
// sessions into table. The table name must be a plain identifier; it is
// interpolated into DDL and DML statements verbatim.
func NewSQLiteStore[A any](db *sql.DB, table string, codec tange.Codec[A]) (*SQLiteStore[A], error) {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		session TEXT NOT NULL,
		seq INTEGER NOT NULL,
		blob BLOB NOT NULL,
		PRIMARY KEY (session, seq)
	)`, table)
	if _, err := db.Exec(ddl); err != nil {
		return nil, errors.StoreWriteError{Target: table, Cause: err}
	}
	return &SQLiteStore[A]{db: db, table: table, codec: codec}, nil
}

// Writer starts a fresh write session against the backing table
func (s *SQLiteStore[A]) Writer() (tange.ValueWriter[A], error) {
	return &sqliteWriter[A]{store: s}, nil
}

// Stream materializes the element sequence written under this artifact's
// session. A SQLiteStore with no completed session streams as empty.
func (s *SQLiteStore[A]) Stream() ([]A, error) {
	if s.session == "" {
		return []A{}, nil
	}
	query := fmt.Sprintf("SELECT blob FROM %s WHERE session = ? ORDER BY seq", s.table)
	rows, err := s.db.Query(query, s.session)
	if err != nil {
		return nil, errors.StoreReadError{Target: s.table, Cause: err}
	}
	defer rows.Close()
	var items []A
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, errors.StoreReadError{Target: s.table, Cause: err}
		}
		decoded, err := s.codec.Decode(blob)
		if err != nil {
			return nil, err
		}
		items = append(items, decoded...)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.StoreReadError{Target: s.table, Cause: err}
	}
	if items == nil {
		items = []A{}
	}
	return items, nil
}

type sqliteWriter[A any] struct {
	store    *SQLiteStore[A]
	buffer   []A
	finished bool
}

func (w *sqliteWriter[A]) Add(item A) error {
	if w.finished {
		return errors.FinishedWriterError{}
	}
	w.buffer = append(w.buffer, item)
	return nil
}

func (w *sqliteWriter[A]) Extend(items []A) error {
	if w.finished {
		return errors.FinishedWriterError{}
	}
	w.buffer = append(w.buffer, items...)
	return nil
}

func (w *sqliteWriter[A]) Finish() (tange.Stream[A], error) {
	if w.finished {
		return nil, errors.FinishedWriterError{}
	}
	w.finished = true
	id, err := uuid.NewV4()
	if err != nil {
		return nil, errors.StoreWriteError{Target: w.store.table, Cause: err}
	}
	session := id.String()
	tx, err := w.store.db.Begin()
	if err != nil {
		return nil, errors.StoreWriteError{Target: w.store.table, Cause: err}
	}
	insert := fmt.Sprintf("INSERT INTO %s (session, seq, blob) VALUES (?, ?, ?)", w.store.table)
	for seq, item := range w.buffer {
		blob, err := w.store.codec.Encode([]A{item})
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if _, err := tx.Exec(insert, session, seq, blob); err != nil {
			tx.Rollback()
			return nil, errors.StoreWriteError{Target: w.store.table, Cause: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.StoreWriteError{Target: w.store.table, Cause: err}
	}
	return &SQLiteStore[A]{
		db:      w.store.db,
		table:   w.store.table,
		codec:   w.store.codec,
		session: session,
	}, nil
}
