package store

import (
	"context"
	"database/sql"
	"errors"
)

// Put inserts or replaces a record. Writes are whole-record replacements,
// so concurrent puts of the same id resolve last-write-wins.
func (s *Store) Put(ctx context.Context, partition, id string, body []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (partition, id, body)
		VALUES (?, ?, ?)
		ON CONFLICT(partition, id) DO UPDATE SET body = excluded.body
	`, partition, id, string(body))
	if err != nil {
		return writeFailed("put", partition, err)
	}
	return nil
}

// Get returns the record body for id, or (nil, nil) when absent.
func (s *Store) Get(ctx context.Context, partition, id string) ([]byte, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `
		SELECT body FROM records WHERE partition = ? AND id = ?
	`, partition, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, readFailed("get", partition, err)
	}
	return []byte(body), nil
}

// GetAll returns every record body in the partition.
//
// Results are ordered by id so listings are deterministic; callers that
// need a domain ordering (documents by savedAt) sort the decoded records.
func (s *Store) GetAll(ctx context.Context, partition string) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT body FROM records WHERE partition = ? ORDER BY id ASC
	`, partition)
	if err != nil {
		return nil, readFailed("getAll", partition, err)
	}
	defer rows.Close()

	var bodies [][]byte
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, readFailed("getAll", partition, err)
		}
		bodies = append(bodies, []byte(body))
	}
	if err := rows.Err(); err != nil {
		return nil, readFailed("getAll", partition, err)
	}
	return bodies, nil
}

// Delete removes a record. Deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, partition, id string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM records WHERE partition = ? AND id = ?
	`, partition, id)
	if err != nil {
		return writeFailed("delete", partition, err)
	}
	return nil
}

// Clear removes every record in the partition. Irreversible.
func (s *Store) Clear(ctx context.Context, partition string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM records WHERE partition = ?
	`, partition)
	if err != nil {
		return writeFailed("clear", partition, err)
	}
	return nil
}
