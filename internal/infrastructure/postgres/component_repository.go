package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

var _ repository.ComponentRepository = (*ComponentRepo)(nil)

const componentColumns = `id, name, type, quality, status, location, created_at, updated_at`

// ComponentRepo implementación de ComponentRepository sobre PostgreSQL (usable con pool o tx).
type ComponentRepo struct {
	q Querier
}

// NewComponentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComponentRepository(q Querier) *ComponentRepo {
	return &ComponentRepo{q: q}
}

// NextSequence toma el siguiente valor de component_name_seq.
func (r *ComponentRepo) NextSequence(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('component_name_seq')`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next component sequence: %w", err)
	}
	return seq, nil
}

// Create persiste un componente.
func (r *ComponentRepo) Create(ctx context.Context, c *entity.Component) error {
	query := `INSERT INTO components (` + componentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Type, c.Quality, c.Status, c.Location, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert component: %w", err)
	}
	return nil
}

// GetByID obtiene un componente por ID.
func (r *ComponentRepo) GetByID(ctx context.Context, id string) (*entity.Component, error) {
	c, err := scanComponent(r.q.QueryRow(ctx, `SELECT `+componentColumns+` FROM components WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get component: %w", err)
	}
	return c, nil
}

// List lista componentes por orden de creación.
func (r *ComponentRepo) List(ctx context.Context, limit, offset int) ([]*entity.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components ORDER BY created_at, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	defer rows.Close()
	var list []*entity.Component
	for rows.Next() {
		var c entity.Component
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Quality, &c.Status, &c.Location, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza los campos mutables del componente.
func (r *ComponentRepo) Update(ctx context.Context, c *entity.Component) error {
	query := `
		UPDATE components SET type = $2, quality = $3, status = $4, location = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, c.ID, c.Type, c.Quality, c.Status, c.Location, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update component: %w", err)
	}
	return nil
}

// UpdateStatus cambia sólo el estado (rechazos durante el ensamblaje).
func (r *ComponentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.q.Exec(ctx, `UPDATE components SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update component status: %w", err)
	}
	return nil
}

// FindForAssembly toma el componente más antiguo del tipo que ya esté calificado y no rechazado;
// si no hay ninguno, el más antiguo del tipo. Bloquea la fila (FOR UPDATE) hasta el fin de la tx.
func (r *ComponentRepo) FindForAssembly(ctx context.Context, typ, excludeID string) (*entity.Component, error) {
	query := `
		SELECT ` + componentColumns + `
		FROM components
		WHERE type = $1 AND ($2::text = '' OR id::text <> $2::text)
		ORDER BY (quality <> 'null' AND status <> 'rejected') DESC, created_at, id
		LIMIT 1
		FOR UPDATE`
	c, err := scanComponent(r.q.QueryRow(ctx, query, typ, excludeID))
	if err != nil {
		return nil, fmt.Errorf("find component for assembly: %w", err)
	}
	return c, nil
}

// Delete elimina un componente por ID.
func (r *ComponentRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM components WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete component: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanComponent(row pgx.Row) (*entity.Component, error) {
	var c entity.Component
	err := row.Scan(&c.ID, &c.Name, &c.Type, &c.Quality, &c.Status, &c.Location, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
