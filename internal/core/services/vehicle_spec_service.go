package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
	"github.com/srgjo27/vehicle_rental/internal/core/ports"
)

type VehicleSpecRequest struct {
	Manufacturer    string  `json:"manufacturer" validate:"required"`
	Model           string  `json:"model" validate:"required"`
	Year            int     `json:"year" validate:"required,gte=1886"`
	FuelType        *string `json:"fuel_type"`
	EngineCapacity  *string `json:"engine_capacity"`
	Transmission    *string `json:"transmission"`
	SeatingCapacity *int    `json:"seating_capacity" validate:"omitempty,gt=0"`
	Color           *string `json:"color"`
	Features        *string `json:"features"`
	Image1          *string `json:"image1"`
	Image2          *string `json:"image2"`
	Image3          *string `json:"image3"`
}

func (r VehicleSpecRequest) toDomain(id uuid.UUID) *domain.VehicleSpec {
	return &domain.VehicleSpec{
		ID:              id,
		Manufacturer:    r.Manufacturer,
		Model:           r.Model,
		Year:            r.Year,
		FuelType:        r.FuelType,
		EngineCapacity:  r.EngineCapacity,
		Transmission:    r.Transmission,
		SeatingCapacity: r.SeatingCapacity,
		Color:           r.Color,
		Features:        r.Features,
		Image1:          r.Image1,
		Image2:          r.Image2,
		Image3:          r.Image3,
	}
}

type VehicleSpecService struct {
	specs  ports.VehicleSpecRepository
	cache  *redis.Client
	logger *zap.Logger
}

func NewVehicleSpecService(specs ports.VehicleSpecRepository, cache *redis.Client, logger *zap.Logger) *VehicleSpecService {
	return &VehicleSpecService{specs: specs, cache: cache, logger: logger}
}

// invalidateVehicles drops every cached vehicle, since cached vehicles embed
// their specification.
func (s *VehicleSpecService) invalidateVehicles(ctx context.Context) {
	if s.cache == nil {
		return
	}

	keys := []string{vehicleListKey}
	var cursor uint64
	for {
		batch, next, err := s.cache.Scan(ctx, cursor, "vehicle:*", 100).Result()
		if err != nil {
			s.logger.Warn("failed to scan vehicle cache", zap.Error(err))
			break
		}
		keys = append(keys, batch...)
		if cursor = next; cursor == 0 {
			break
		}
	}

	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("failed to invalidate vehicle cache", zap.Error(err))
	}
}

func (s *VehicleSpecService) ListSpecs(ctx context.Context) ([]domain.VehicleSpec, error) {
	return s.specs.List(ctx)
}

func (s *VehicleSpecService) GetSpec(ctx context.Context, specID uuid.UUID) (*domain.VehicleSpec, error) {
	return s.specs.GetByID(ctx, specID)
}

func (s *VehicleSpecService) CreateSpec(ctx context.Context, req VehicleSpecRequest) (*domain.VehicleSpec, error) {
	spec := req.toDomain(uuid.New())
	if err := s.specs.Create(ctx, spec); err != nil {
		return nil, err
	}

	return spec, nil
}

// UpdateSpec replaces every field of the specification.
func (s *VehicleSpecService) UpdateSpec(ctx context.Context, specID uuid.UUID, req VehicleSpecRequest) (*domain.VehicleSpec, error) {
	spec := req.toDomain(specID)
	if err := s.specs.Update(ctx, spec); err != nil {
		return nil, err
	}

	s.invalidateVehicles(ctx)

	return spec, nil
}

func (s *VehicleSpecService) DeleteSpec(ctx context.Context, specID uuid.UUID) error {
	if err := s.specs.Delete(ctx, specID); err != nil {
		return err
	}

	s.invalidateVehicles(ctx)
	return nil
}
