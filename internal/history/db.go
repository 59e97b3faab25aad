package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"parlay-fair-value/internal/analysis"
	"parlay-fair-value/internal/parlay"
)

// Leg is a journaled parlay leg
type Leg struct {
	Position     int
	Label        string
	Side         string
	HomePrice    string
	AwayPrice    string
	FairProb     float64
	FairDecimal  float64
	FairAmerican int
}

// Evaluation is a journaled parlay evaluation and its stake recommendation
type Evaluation struct {
	ID              string
	Offered         string // Offered odds as the user typed them
	FairProb        float64
	FairDecimal     float64
	OfferedDecimal  float64
	FullKelly       float64
	Fraction        float64
	FractionalKelly float64
	EV              float64
	BetSize         float64
	Legs            []Leg
	CreatedAt       time.Time
}

// NewEvaluation flattens a parlay and its recommendation for storage
func NewEvaluation(p parlay.Parlay, rec analysis.StakeRecommendation, offered string, betSize float64) Evaluation {
	legs := make([]Leg, len(p.Legs))
	for i, l := range p.Legs {
		legs[i] = Leg{
			Position:     i + 1,
			Label:        l.Label,
			Side:         string(l.Side),
			HomePrice:    l.Market.Home.String(),
			AwayPrice:    l.Market.Away.String(),
			FairProb:     l.FairProb,
			FairDecimal:  l.FairDecimal,
			FairAmerican: l.FairAmerican,
		}
	}

	return Evaluation{
		Offered:         offered,
		FairProb:        p.FairProb,
		FairDecimal:     p.FairDecimal,
		OfferedDecimal:  rec.OfferedDecimal,
		FullKelly:       rec.FullKelly,
		Fraction:        rec.Fraction,
		FractionalKelly: rec.FractionalKelly,
		EV:              rec.EV,
		BetSize:         betSize,
		Legs:            legs,
	}
}

// DB handles evaluation storage
type DB struct {
	db *sql.DB
}

// NewDB creates a new evaluation journal
func NewDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db: db}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS evaluations (
		id TEXT PRIMARY KEY,
		offered TEXT NOT NULL,
		fair_prob REAL NOT NULL,
		fair_decimal REAL NOT NULL,
		offered_decimal REAL NOT NULL,
		full_kelly REAL NOT NULL,
		fraction REAL NOT NULL,
		fractional_kelly REAL NOT NULL,
		ev REAL NOT NULL,
		bet_size REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS evaluation_legs (
		evaluation_id TEXT NOT NULL REFERENCES evaluations(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		label TEXT NOT NULL,
		side TEXT NOT NULL,
		home_price TEXT NOT NULL,
		away_price TEXT NOT NULL,
		fair_prob REAL NOT NULL,
		fair_decimal REAL NOT NULL,
		fair_american INTEGER NOT NULL,
		PRIMARY KEY (evaluation_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_evaluations_created ON evaluations(created_at);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// SaveEvaluation stores an evaluation and its legs, returning the new ID
func (d *DB) SaveEvaluation(e Evaluation) (string, error) {
	id := uuid.NewString()

	tx, err := d.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO evaluations (id, offered, fair_prob, fair_decimal, offered_decimal,
			full_kelly, fraction, fractional_kelly, ev, bet_size)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, e.Offered, e.FairProb, e.FairDecimal, e.OfferedDecimal,
		e.FullKelly, e.Fraction, e.FractionalKelly, e.EV, e.BetSize)
	if err != nil {
		return "", fmt.Errorf("inserting evaluation: %w", err)
	}

	for _, l := range e.Legs {
		_, err = tx.Exec(`
			INSERT INTO evaluation_legs (evaluation_id, position, label, side, home_price, away_price,
				fair_prob, fair_decimal, fair_american)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, l.Position, l.Label, l.Side, l.HomePrice, l.AwayPrice, l.FairProb, l.FairDecimal, l.FairAmerican)
		if err != nil {
			return "", fmt.Errorf("inserting leg %d: %w", l.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing evaluation: %w", err)
	}
	return id, nil
}

// GetEvaluation retrieves an evaluation and its legs by ID.
// Returns nil, nil when the ID is unknown.
func (d *DB) GetEvaluation(id string) (*Evaluation, error) {
	row := d.db.QueryRow(`
		SELECT id, offered, fair_prob, fair_decimal, offered_decimal,
			full_kelly, fraction, fractional_kelly, ev, bet_size, created_at
		FROM evaluations WHERE id = ?
	`, id)

	e, err := scanEvaluation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning evaluation: %w", err)
	}

	legs, err := d.getLegs(id)
	if err != nil {
		return nil, err
	}
	e.Legs = legs

	return &e, nil
}

// RecentEvaluations retrieves the latest evaluations, newest first, without legs
func (d *DB) RecentEvaluations(limit int) ([]Evaluation, error) {
	rows, err := d.db.Query(`
		SELECT id, offered, fair_prob, fair_decimal, offered_decimal,
			full_kelly, fraction, fractional_kelly, ev, bet_size, created_at
		FROM evaluations
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying evaluations: %w", err)
	}
	defer rows.Close()

	var evals []Evaluation
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning evaluation row: %w", err)
		}
		evals = append(evals, e)
	}

	return evals, rows.Err()
}

// DeleteEvaluation removes an evaluation and its legs
func (d *DB) DeleteEvaluation(id string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM evaluation_legs WHERE evaluation_id = ?", id); err != nil {
		return fmt.Errorf("deleting legs: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM evaluations WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting evaluation: %w", err)
	}
	return tx.Commit()
}

func (d *DB) getLegs(id string) ([]Leg, error) {
	rows, err := d.db.Query(`
		SELECT position, label, side, home_price, away_price, fair_prob, fair_decimal, fair_american
		FROM evaluation_legs
		WHERE evaluation_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying legs: %w", err)
	}
	defer rows.Close()

	var legs []Leg
	for rows.Next() {
		var l Leg
		if err := rows.Scan(&l.Position, &l.Label, &l.Side, &l.HomePrice, &l.AwayPrice,
			&l.FairProb, &l.FairDecimal, &l.FairAmerican); err != nil {
			return nil, fmt.Errorf("scanning leg row: %w", err)
		}
		legs = append(legs, l)
	}

	return legs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvaluation(s scanner) (Evaluation, error) {
	var e Evaluation
	err := s.Scan(&e.ID, &e.Offered, &e.FairProb, &e.FairDecimal, &e.OfferedDecimal,
		&e.FullKelly, &e.Fraction, &e.FractionalKelly, &e.EV, &e.BetSize, &e.CreatedAt)
	return e, err
}
