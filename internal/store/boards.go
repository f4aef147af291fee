// Package store persists boards and their document snapshots in postgres.
// A board is one row plus one snapshot row; snapshots are opaque JSONB and
// are only interpreted by pkg/diagram at grading time.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/johnkimo5/architect-design-ai/internal/util"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a board does not exist or is not owned by
// the requesting user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("board not found")

// Board is a user's whiteboard document without its snapshot payload.
type Board struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BoardStore provides board CRUD over a pgx pool.
type BoardStore struct {
	conn *pgxpool.Pool
}

func NewBoardStore(conn *pgxpool.Pool) *BoardStore {
	return &BoardStore{conn: conn}
}

// CreateBoard inserts a board and its empty snapshot row in one transaction.
func (s *BoardStore) CreateBoard(ctx context.Context, ownerID string, title string) (Board, error) {
	id, err := util.NewPublicID()
	if err != nil {
		return Board{}, fmt.Errorf("failed to generate board id: %w", err)
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return Board{}, err
	}
	defer tx.Rollback(ctx)

	var board Board
	err = tx.QueryRow(ctx,
		`INSERT INTO boards (id, owner_id, title)
		 VALUES ($1, $2, $3)
		 RETURNING id, title, updated_at`,
		id, ownerID, title,
	).Scan(&board.ID, &board.Title, &board.UpdatedAt)
	if err != nil {
		return Board{}, fmt.Errorf("failed to insert board: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO board_snapshots (board_id, data) VALUES ($1, '{}'::jsonb)`,
		board.ID,
	)
	if err != nil {
		return Board{}, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Board{}, err
	}
	return board, nil
}

// ListBoards returns the user's boards, most recently updated first.
func (s *BoardStore) ListBoards(ctx context.Context, ownerID string) ([]Board, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT id, title, updated_at
		 FROM boards
		 WHERE owner_id = $1
		 ORDER BY updated_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []Board{}
	for rows.Next() {
		var board Board
		if err := rows.Scan(&board.ID, &board.Title, &board.UpdatedAt); err != nil {
			return nil, err
		}
		boards = append(boards, board)
	}
	return boards, rows.Err()
}

// GetBoard returns a board and its snapshot payload, scoped to the owner.
func (s *BoardStore) GetBoard(ctx context.Context, id string, ownerID string) (Board, json.RawMessage, error) {
	var board Board
	var data []byte
	err := s.conn.QueryRow(ctx,
		`SELECT b.id, b.title, b.updated_at, s.data
		 FROM boards b
		 JOIN board_snapshots s ON s.board_id = b.id
		 WHERE b.id = $1 AND b.owner_id = $2`,
		id, ownerID,
	).Scan(&board.ID, &board.Title, &board.UpdatedAt, &data)
	if errors.Is(err, pgx.ErrNoRows) {
		return Board{}, nil, ErrNotFound
	}
	if err != nil {
		return Board{}, nil, err
	}
	return board, json.RawMessage(data), nil
}

// SaveSnapshot replaces a board's snapshot and touches its updated_at.
func (s *BoardStore) SaveSnapshot(ctx context.Context, id string, ownerID string, data json.RawMessage) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE boards SET updated_at = now()
		 WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	_, err = tx.Exec(ctx,
		`UPDATE board_snapshots SET data = $2 WHERE board_id = $1`,
		id, []byte(data),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return tx.Commit(ctx)
}

// RenameBoard updates a board's title, scoped to the owner.
func (s *BoardStore) RenameBoard(ctx context.Context, id string, ownerID string, title string) error {
	tag, err := s.conn.Exec(ctx,
		`UPDATE boards SET title = $3, updated_at = now()
		 WHERE id = $1 AND owner_id = $2`,
		id, ownerID, title,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBoard removes a board; its snapshot row goes with it via cascade.
func (s *BoardStore) DeleteBoard(ctx context.Context, id string, ownerID string) error {
	tag, err := s.conn.Exec(ctx,
		`DELETE FROM boards WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
