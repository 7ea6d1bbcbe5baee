package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bar-website/models"
	"bar-website/services"
)

// Postgres implements the menu, message and admin stores on a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// menuColumns maps accepted sort fields to columns; anything else is rejected
// so no caller text reaches the SQL.
var menuColumns = map[string]string{
	"name":      "name",
	"price":     "price",
	"category":  "category",
	"createdAt": "created_at",
}

func menuOrderClause(orderBy []string) (string, error) {
	if len(orderBy) == 0 {
		return "ORDER BY created_at, id", nil
	}
	cols := make([]string, 0, len(orderBy)+1)
	for _, f := range orderBy {
		col, ok := menuColumns[f]
		if !ok {
			return "", fmt.Errorf("unknown sort field %q", f)
		}
		cols = append(cols, col)
	}
	cols = append(cols, "id")
	return "ORDER BY " + strings.Join(cols, ", "), nil
}

func (p *Postgres) ListMenuItems(ctx context.Context, orderBy ...string) ([]models.MenuItem, error) {
	order, err := menuOrderClause(orderBy)
	if err != nil {
		return nil, err
	}
	rows, err := p.pool.Query(ctx, `
		SELECT id, name, description, price::float8, category, image, created_at
		FROM menu_items `+order)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var it models.MenuItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Category, &it.Image, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (p *Postgres) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	it := models.MenuItem{ID: id}
	err := p.pool.QueryRow(ctx, `
		SELECT name, description, price::float8, category, image, created_at
		FROM menu_items WHERE id = $1`, id,
	).Scan(&it.Name, &it.Description, &it.Price, &it.Category, &it.Image, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (p *Postgres) CreateMenuItem(ctx context.Context, it models.MenuItem) (string, error) {
	id := uuid.NewString()
	_, err := p.pool.Exec(ctx, `
		INSERT INTO menu_items (id, name, description, price, category, image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, it.Name, it.Description, it.Price, it.Category, it.Image, it.CreatedAt,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (p *Postgres) UpdateMenuItem(ctx context.Context, it models.MenuItem) error {
	tag, err := p.pool.Exec(ctx, `
		UPDATE menu_items SET
			name = $2, description = $3, price = $4, category = $5, image = $6, created_at = $7
		WHERE id = $1`,
		it.ID, it.Name, it.Description, it.Price, it.Category, it.Image, it.CreatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteMenuItem(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (p *Postgres) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, name, email, message, timestamp, status
		FROM contact_messages
		ORDER BY timestamp DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		var status string
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Timestamp, &status); err != nil {
			return nil, err
		}
		m.Status = models.MessageStatus(status)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// CreateMessage lets the database assign the timestamp.
func (p *Postgres) CreateMessage(ctx context.Context, m models.ContactMessage) (models.ContactMessage, error) {
	m.ID = uuid.NewString()
	err := p.pool.QueryRow(ctx, `
		INSERT INTO contact_messages (id, name, email, message, timestamp, status)
		VALUES ($1, $2, $3, $4, now(), $5)
		RETURNING timestamp`,
		m.ID, m.Name, m.Email, m.Message, string(m.Status),
	).Scan(&m.Timestamp)
	if err != nil {
		return models.ContactMessage{}, err
	}
	return m, nil
}

func (p *Postgres) DeleteMessage(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (p *Postgres) FindAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	a := models.AdminUser{Email: email}
	err := p.pool.QueryRow(ctx, `
		SELECT id, password_hash, created_at FROM admin_users WHERE email = $1`, email,
	).Scan(&a.ID, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (p *Postgres) UpsertAdmin(ctx context.Context, email, passwordHash string) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO admin_users (id, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash`,
		uuid.NewString(), email, passwordHash,
	)
	return err
}
