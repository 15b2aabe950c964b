package mess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MaheshKadam182/meals-spotter-new/internal/timeline"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectMess = `
	SELECT
		id,
		owner_id,
		name,
		type,
		cuisine,
		location,
		address,
		contact_number,
		image,
		description,
		plans,
		menu,
		created_at,
		updated_at
	FROM messes
`

// --------------------------------------------------
// Create a new mess
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, m *Mess) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}

	cuisine, plans, menu, err := encodeDocs(m)
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO messes (
			id,
			owner_id,
			name,
			type,
			cuisine,
			location,
			address,
			contact_number,
			image,
			description,
			plans,
			menu
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`,
		m.ID,
		m.OwnerID,
		m.Name,
		m.Type,
		cuisine,
		m.Location,
		m.Address,
		m.ContactNumber,
		m.Image,
		m.Description,
		plans,
		menu,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Mess, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return r.getOne(ctx, selectMess+` WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByOwner(ctx context.Context, ownerID string) (*Mess, error) {
	return r.getOne(ctx, selectMess+` WHERE owner_id = $1`, ownerID)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg string) (*Mess, error) {
	m, err := scanMess(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// --------------------------------------------------
// List all messes, newest first
// --------------------------------------------------
func (r *PostgresRepository) List(ctx context.Context) ([]*Mess, error) {
	rows, err := r.db.Query(ctx, selectMess+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messes []*Mess
	for rows.Next() {
		m, err := scanMess(rows)
		if err != nil {
			return nil, err
		}
		messes = append(messes, m)
	}

	return messes, rows.Err()
}

// --------------------------------------------------
// Profile update (menu untouched)
// --------------------------------------------------
func (r *PostgresRepository) UpdateProfile(ctx context.Context, m *Mess) error {
	cuisine, plans, _, err := encodeDocs(m)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, `
		UPDATE messes
		SET name = $2,
		    type = $3,
		    cuisine = $4,
		    location = $5,
		    address = $6,
		    contact_number = $7,
		    image = $8,
		    description = $9,
		    plans = $10,
		    updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`,
		m.ID,
		m.Name,
		m.Type,
		cuisine,
		m.Location,
		m.Address,
		m.ContactNumber,
		m.Image,
		m.Description,
		plans,
	).Scan(&m.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Menu write (single statement, last writer wins)
// --------------------------------------------------
func (r *PostgresRepository) SaveMenu(ctx context.Context, id string, menu timeline.Timeline) error {
	if menu == nil {
		menu = timeline.Timeline{}
	}
	data, err := json.Marshal(menu)
	if err != nil {
		return fmt.Errorf("encode menu: %w", err)
	}

	cmd, err := r.db.Exec(ctx, `
		UPDATE messes
		SET menu = $2,
		    updated_at = now()
		WHERE id = $1
	`, id, data)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM messes`)
	return err
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func encodeDocs(m *Mess) (cuisine, plans, menu []byte, err error) {
	c := m.Cuisine
	if c == nil {
		c = []string{}
	}
	p := m.Plans
	if p == nil {
		p = []timeline.SubscriptionPlan{}
	}
	t := m.Menu
	if t == nil {
		t = timeline.Timeline{}
	}

	if cuisine, err = json.Marshal(c); err != nil {
		return nil, nil, nil, fmt.Errorf("encode cuisine: %w", err)
	}
	if plans, err = json.Marshal(p); err != nil {
		return nil, nil, nil, fmt.Errorf("encode plans: %w", err)
	}
	if menu, err = json.Marshal(t); err != nil {
		return nil, nil, nil, fmt.Errorf("encode menu: %w", err)
	}
	return cuisine, plans, menu, nil
}

func scanMess(row pgx.Row) (*Mess, error) {
	var (
		m                    Mess
		cuisine, plans, menu []byte
	)

	if err := row.Scan(
		&m.ID,
		&m.OwnerID,
		&m.Name,
		&m.Type,
		&cuisine,
		&m.Location,
		&m.Address,
		&m.ContactNumber,
		&m.Image,
		&m.Description,
		&plans,
		&menu,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(cuisine, &m.Cuisine); err != nil {
		return nil, fmt.Errorf("decode cuisine: %w", err)
	}
	if err := json.Unmarshal(plans, &m.Plans); err != nil {
		return nil, fmt.Errorf("decode plans: %w", err)
	}
	if err := json.Unmarshal(menu, &m.Menu); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}

	return &m, nil
}
