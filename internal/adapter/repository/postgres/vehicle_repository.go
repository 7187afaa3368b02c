package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
)

type VehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleViewQuery = `
	SELECT v.vehicle_id, v.vehicle_spec_id, v.rental_rate, v.availability, v.created_at, v.updated_at,
		vs.vehicle_spec_id, vs.manufacturer, vs.model, vs.year, vs.fuel_type, vs.engine_capacity,
		vs.transmission, vs.seating_capacity, vs.color, vs.features, vs.image1, vs.image2, vs.image3
	FROM vehicles v
	JOIN vehicle_specifications vs ON v.vehicle_spec_id = vs.vehicle_spec_id
	`

func scanVehicleView(row interface{ Scan(...any) error }) (*domain.VehicleView, error) {
	var v domain.VehicleView
	var s specScan

	dest := append([]any{
		&v.ID, &v.SpecID, &v.RentalRate, &v.Availability, &v.CreatedAt, &v.UpdatedAt,
	}, s.dest(&v.Spec)...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	s.apply(&v.Spec)

	return &v, nil
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
	INSERT INTO vehicles (vehicle_id, vehicle_spec_id, rental_rate, availability)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at, updated_at
	`

	err := conn(ctx, r.db).QueryRowContext(ctx, query,
		vehicle.ID, vehicle.SpecID, vehicle.RentalRate, vehicle.Availability,
	).Scan(&vehicle.CreatedAt, &vehicle.UpdatedAt)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.ErrNotFound("Vehicle specification not found")
		}
		return fmt.Errorf("failed to insert vehicle: %w", err)
	}

	return nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, vehicleID uuid.UUID) (*domain.VehicleView, error) {
	v, err := scanVehicleView(conn(ctx, r.db).QueryRowContext(ctx, vehicleViewQuery+` WHERE v.vehicle_id = $1`, vehicleID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound("Vehicle not found")
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return v, nil
}

func (r *VehicleRepository) List(ctx context.Context) ([]domain.VehicleView, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, vehicleViewQuery+` ORDER BY v.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	defer rows.Close()

	vehicles := []domain.VehicleView{}
	for rows.Next() {
		v, err := scanVehicleView(rows)
		if err != nil {
			return nil, err
		}

		vehicles = append(vehicles, *v)
	}

	return vehicles, rows.Err()
}

func (r *VehicleRepository) Update(ctx context.Context, vehicleID uuid.UUID, update domain.VehicleUpdate) error {
	var sets []string
	var args []any

	if update.RentalRate != nil {
		args = append(args, *update.RentalRate)
		sets = append(sets, fmt.Sprintf("rental_rate = $%d", len(args)))
	}
	if update.Availability != nil {
		args = append(args, *update.Availability)
		sets = append(sets, fmt.Sprintf("availability = $%d", len(args)))
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, vehicleID)

	query := fmt.Sprintf(`UPDATE vehicles SET %s WHERE vehicle_id = $%d`, strings.Join(sets, ", "), len(args))

	res, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	return affected(res, "Vehicle not found")
}

func (r *VehicleRepository) Delete(ctx context.Context, vehicleID uuid.UUID) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM vehicles WHERE vehicle_id = $1`, vehicleID)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.ErrConflict("Vehicle still has bookings")
		}
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	return affected(res, "Vehicle not found")
}

func (r *VehicleRepository) MarkUnavailable(ctx context.Context, vehicleID uuid.UUID) error {
	query := `
	UPDATE vehicles
	SET availability = $1,
		updated_at = NOW()
	WHERE vehicle_id = $2 AND availability = $3
	`

	result, err := conn(ctx, r.db).ExecContext(ctx, query, domain.VehicleUnavailable, vehicleID, domain.VehicleAvailable)
	if err != nil {
		return fmt.Errorf("failed to claim vehicle: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrConflict("Vehicle was booked by another request")
	}

	return nil
}

func (r *VehicleRepository) SetAvailability(ctx context.Context, vehicleID uuid.UUID, availability domain.Availability) error {
	query := `
	UPDATE vehicles
	SET availability = $1,
		updated_at = NOW()
	WHERE vehicle_id = $2
	`

	_, err := conn(ctx, r.db).ExecContext(ctx, query, availability, vehicleID)
	if err != nil {
		return fmt.Errorf("failed to set vehicle availability: %w", err)
	}

	return nil
}
