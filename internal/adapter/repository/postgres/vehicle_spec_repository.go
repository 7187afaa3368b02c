package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
)

type VehicleSpecRepository struct {
	db *sql.DB
}

func NewVehicleSpecRepository(db *sql.DB) *VehicleSpecRepository {
	return &VehicleSpecRepository{db: db}
}

const specColumns = `vehicle_spec_id, manufacturer, model, year, fuel_type, engine_capacity,
	transmission, seating_capacity, color, features, image1, image2, image3`

// specScan collects the nullable columns of a specification row.
type specScan struct {
	fuelType, engineCapacity, transmission, color, features sql.NullString
	image1, image2, image3                                  sql.NullString
	seating                                                 sql.NullInt64
}

func (s *specScan) dest(spec *domain.VehicleSpec) []any {
	return []any{
		&spec.ID, &spec.Manufacturer, &spec.Model, &spec.Year,
		&s.fuelType, &s.engineCapacity, &s.transmission, &s.seating,
		&s.color, &s.features, &s.image1, &s.image2, &s.image3,
	}
}

func (s *specScan) apply(spec *domain.VehicleSpec) {
	spec.FuelType = nullString(s.fuelType)
	spec.EngineCapacity = nullString(s.engineCapacity)
	spec.Transmission = nullString(s.transmission)
	spec.Color = nullString(s.color)
	spec.Features = nullString(s.features)
	spec.Image1 = nullString(s.image1)
	spec.Image2 = nullString(s.image2)
	spec.Image3 = nullString(s.image3)
	if s.seating.Valid {
		n := int(s.seating.Int64)
		spec.SeatingCapacity = &n
	}
}

func (r *VehicleSpecRepository) Create(ctx context.Context, spec *domain.VehicleSpec) error {
	query := `
	INSERT INTO vehicle_specifications (` + specColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := conn(ctx, r.db).ExecContext(ctx, query, specArgs(spec)...)
	if err != nil {
		return fmt.Errorf("failed to insert vehicle specification: %w", err)
	}

	return nil
}

func (r *VehicleSpecRepository) GetByID(ctx context.Context, specID uuid.UUID) (*domain.VehicleSpec, error) {
	query := `SELECT ` + specColumns + ` FROM vehicle_specifications WHERE vehicle_spec_id = $1`

	var spec domain.VehicleSpec
	var s specScan

	err := conn(ctx, r.db).QueryRowContext(ctx, query, specID).Scan(s.dest(&spec)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound("Vehicle specification not found")
		}
		return nil, fmt.Errorf("failed to get vehicle specification: %w", err)
	}

	s.apply(&spec)

	return &spec, nil
}

func (r *VehicleSpecRepository) List(ctx context.Context) ([]domain.VehicleSpec, error) {
	query := `SELECT ` + specColumns + ` FROM vehicle_specifications ORDER BY manufacturer, model`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicle specifications: %w", err)
	}

	defer rows.Close()

	specs := []domain.VehicleSpec{}
	for rows.Next() {
		var spec domain.VehicleSpec
		var s specScan

		if err := rows.Scan(s.dest(&spec)...); err != nil {
			return nil, err
		}

		s.apply(&spec)
		specs = append(specs, spec)
	}

	return specs, rows.Err()
}

func (r *VehicleSpecRepository) Update(ctx context.Context, spec *domain.VehicleSpec) error {
	query := `
	UPDATE vehicle_specifications
	SET manufacturer = $2,
		model = $3,
		year = $4,
		fuel_type = $5,
		engine_capacity = $6,
		transmission = $7,
		seating_capacity = $8,
		color = $9,
		features = $10,
		image1 = $11,
		image2 = $12,
		image3 = $13
	WHERE vehicle_spec_id = $1
	`

	res, err := conn(ctx, r.db).ExecContext(ctx, query, specArgs(spec)...)
	if err != nil {
		return fmt.Errorf("failed to update vehicle specification: %w", err)
	}

	return affected(res, "Vehicle specification not found")
}

func (r *VehicleSpecRepository) Delete(ctx context.Context, specID uuid.UUID) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM vehicle_specifications WHERE vehicle_spec_id = $1`, specID)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.ErrConflict("Vehicle specification is still used by vehicles")
		}
		return fmt.Errorf("failed to delete vehicle specification: %w", err)
	}

	return affected(res, "Vehicle specification not found")
}

func specArgs(spec *domain.VehicleSpec) []any {
	return []any{
		spec.ID, spec.Manufacturer, spec.Model, spec.Year,
		spec.FuelType, spec.EngineCapacity, spec.Transmission, spec.SeatingCapacity,
		spec.Color, spec.Features, spec.Image1, spec.Image2, spec.Image3,
	}
}
