package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

var _ repository.DeviceRepository = (*DeviceRepo)(nil)

const deviceColumns = `id, name, component_1, component_2, created_at, updated_at`

// DeviceRepo implementación de DeviceRepository sobre PostgreSQL (usable con pool o tx).
type DeviceRepo struct {
	q Querier
}

// NewDeviceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeviceRepository(q Querier) *DeviceRepo {
	return &DeviceRepo{q: q}
}

// Create persiste un dispositivo.
func (r *DeviceRepo) Create(ctx context.Context, d *entity.Device) error {
	query := `INSERT INTO devices (` + deviceColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, d.ID, d.Name, d.Component1, d.Component2, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert device: %w", err)
	}
	return nil
}

// GetByID obtiene un dispositivo por ID.
func (r *DeviceRepo) GetByID(ctx context.Context, id string) (*entity.Device, error) {
	var d entity.Device
	err := r.q.QueryRow(ctx, `SELECT `+deviceColumns+` FROM devices WHERE id = $1`, id).Scan(
		&d.ID, &d.Name, &d.Component1, &d.Component2, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get device: %w", err)
	}
	return &d, nil
}

// List lista dispositivos por orden de creación.
func (r *DeviceRepo) List(ctx context.Context, limit, offset int) ([]*entity.Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices ORDER BY created_at, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Device
	for rows.Next() {
		var d entity.Device
		if err := rows.Scan(&d.ID, &d.Name, &d.Component1, &d.Component2, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update actualiza nombre y tipos.
func (r *DeviceRepo) Update(ctx context.Context, d *entity.Device) error {
	query := `UPDATE devices SET name = $2, component_1 = $3, component_2 = $4, updated_at = $5 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, d.ID, d.Name, d.Component1, d.Component2, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update device: %w", err)
	}
	return nil
}

// Delete elimina un dispositivo por ID.
func (r *DeviceRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM devices WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete device: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
