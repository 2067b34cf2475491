// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb keeps the history of events emitted by registry operations.
package eventdb

import (
	"database/sql"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/vechain/supermajority/thor"
)

const eventTableSchema = `
create table if not exists event (
	op integer,
	eventIndex integer,
	kind text,
	time integer,
	sender blob(20),
	account blob(20),
	toAdd bool,
	voteRemoved bool,
	numVotes integer,
	numVotesNeeded integer,
	numValidators integer,
	primary key (op, eventIndex)
);

CREATE INDEX if not exists senderIndex on event(sender);
CREATE INDEX if not exists accountIndex on event(account);
`

// EventDB manages the event history.
type EventDB struct {
	path          string
	db            *sql.DB
	sqliteVersion string
}

// New opens an event db.
func New(path string) (*EventDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// a :memory: database lives in a single connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(eventTableSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create event table")
	}
	s, _, _ := sqlite3.Version()
	logger.Debug("event db opened", "path", path, "sqlite", s)
	return &EventDB{
		path:          path,
		db:            db,
		sqliteVersion: s,
	}, nil
}

// NewMem creates a memory sqlite db.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Insert stores the events of one operation under the next operation number, which is returned.
func (db *EventDB) Insert(events []*Event) (uint64, error) {
	if len(events) == 0 {
		return 0, nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return 0, err
	}

	var last sql.NullInt64
	if err := tx.QueryRow("SELECT MAX(op) FROM event").Scan(&last); err != nil {
		tx.Rollback()
		return 0, err
	}
	op := uint64(last.Int64) + 1

	for _, event := range events {
		if _, err = tx.Exec("INSERT INTO event(op, eventIndex, kind, time, sender, account, toAdd, voteRemoved, numVotes, numVotesNeeded, numValidators) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);",
			op,
			event.Index,
			string(event.Kind),
			event.Time,
			event.Sender.Bytes(),
			event.Account.Bytes(),
			event.ToAdd,
			event.VoteRemoved,
			event.NumVotes,
			event.NumVotesNeeded,
			event.NumValidators); err != nil {
			tx.Rollback()
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	for _, event := range events {
		event.Op = op
	}
	metricEventCounter().Add(int64(len(events)))
	return op, nil
}

// Filter returns the events matching filter, all of them when filter is nil.
func (db *EventDB) Filter(filter *Filter) ([]*Event, error) {
	if filter == nil {
		return db.query("SELECT * FROM event ORDER BY op ASC, eventIndex ASC")
	}
	var args []any
	stmt := "SELECT * FROM event WHERE 1"
	if filter.Account != nil {
		args = append(args, filter.Account.Bytes(), filter.Account.Bytes())
		stmt += " AND (sender = ? OR account = ?) "
	}
	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		stmt += " AND kind = ? "
	}

	if filter.Order == DESC {
		stmt += " ORDER BY op DESC, eventIndex DESC "
	} else {
		stmt += " ORDER BY op ASC, eventIndex ASC "
	}

	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(stmt, args...)
}

func (db *EventDB) query(stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			event   Event
			kind    string
			sender  []byte
			account []byte
		)
		if err := rows.Scan(
			&event.Op,
			&event.Index,
			&kind,
			&event.Time,
			&sender,
			&account,
			&event.ToAdd,
			&event.VoteRemoved,
			&event.NumVotes,
			&event.NumVotesNeeded,
			&event.NumValidators,
		); err != nil {
			return nil, err
		}
		event.Kind = Kind(kind)
		event.Sender = thor.BytesToAddress(sender)
		event.Account = thor.BytesToAddress(account)
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Path returns the db path.
func (db *EventDB) Path() string {
	return db.path
}

// Close closes sqlite.
func (db *EventDB) Close() error {
	return db.db.Close()
}
