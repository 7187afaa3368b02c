package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
	"github.com/srgjo27/vehicle_rental/internal/core/ports"
)

const (
	vehicleListKey  = "vehicles:all"
	vehicleCacheTTL = time.Minute
)

func vehicleKey(id uuid.UUID) string {
	return fmt.Sprintf("vehicle:%s", id)
}

// invalidateVehicle drops the cached list and the cached vehicle. A nil
// client means caching is disabled.
func invalidateVehicle(ctx context.Context, cache *redis.Client, logger *zap.Logger, vehicleID uuid.UUID) {
	if cache == nil {
		return
	}

	if err := cache.Del(ctx, vehicleListKey, vehicleKey(vehicleID)).Err(); err != nil {
		logger.Warn("failed to invalidate vehicle cache", zap.String("vehicle_id", vehicleID.String()), zap.Error(err))
	}
}

type CreateVehicleRequest struct {
	SpecID       uuid.UUID           `json:"vehicle_spec_id" validate:"required"`
	RentalRate   float64             `json:"rental_rate" validate:"required,gt=0"`
	Availability domain.Availability `json:"availability,omitempty"`
}

type UpdateVehicleRequest struct {
	RentalRate   *float64             `json:"rental_rate" validate:"omitempty,gt=0"`
	Availability *domain.Availability `json:"availability"`
}

type VehicleService struct {
	vehicles ports.VehicleRepository
	specs    ports.VehicleSpecRepository
	cache    *redis.Client
	logger   *zap.Logger
}

func NewVehicleService(vehicles ports.VehicleRepository, specs ports.VehicleSpecRepository, cache *redis.Client, logger *zap.Logger) *VehicleService {
	return &VehicleService{
		vehicles: vehicles,
		specs:    specs,
		cache:    cache,
		logger:   logger,
	}
}

func (s *VehicleService) ListVehicles(ctx context.Context) ([]domain.VehicleView, error) {
	var vehicles []domain.VehicleView
	if s.fromCache(ctx, vehicleListKey, &vehicles) {
		return vehicles, nil
	}

	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, vehicleListKey, vehicles)

	return vehicles, nil
}

func (s *VehicleService) GetVehicle(ctx context.Context, vehicleID uuid.UUID) (*domain.VehicleView, error) {
	key := vehicleKey(vehicleID)

	var cached domain.VehicleView
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, key, vehicle)

	return vehicle, nil
}

func (s *VehicleService) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*domain.VehicleView, error) {
	availability := domain.VehicleAvailable
	if req.Availability != "" {
		if !req.Availability.Valid() {
			return nil, domain.ErrValidation("Invalid availability")
		}
		availability = req.Availability
	}

	if _, err := s.specs.GetByID(ctx, req.SpecID); err != nil {
		return nil, err
	}

	vehicle := &domain.Vehicle{
		ID:           uuid.New(),
		SpecID:       req.SpecID,
		RentalRate:   req.RentalRate,
		Availability: availability,
	}

	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	invalidateVehicle(ctx, s.cache, s.logger, vehicle.ID)

	return s.vehicles.GetByID(ctx, vehicle.ID)
}

func (s *VehicleService) UpdateVehicle(ctx context.Context, vehicleID uuid.UUID, req UpdateVehicleRequest) (*domain.VehicleView, error) {
	if req.RentalRate == nil && req.Availability == nil {
		return nil, domain.ErrNoOp("No fields to update")
	}

	if req.Availability != nil && !req.Availability.Valid() {
		return nil, domain.ErrValidation("Invalid availability")
	}

	update := domain.VehicleUpdate{RentalRate: req.RentalRate, Availability: req.Availability}
	if err := s.vehicles.Update(ctx, vehicleID, update); err != nil {
		return nil, err
	}

	invalidateVehicle(ctx, s.cache, s.logger, vehicleID)

	return s.vehicles.GetByID(ctx, vehicleID)
}

func (s *VehicleService) DeleteVehicle(ctx context.Context, vehicleID uuid.UUID) error {
	if err := s.vehicles.Delete(ctx, vehicleID); err != nil {
		return err
	}

	invalidateVehicle(ctx, s.cache, s.logger, vehicleID)

	return nil
}

func (s *VehicleService) fromCache(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}

	val, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return false
	}

	return json.Unmarshal([]byte(val), dest) == nil
}

func (s *VehicleService) toCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, data, vehicleCacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache vehicles", zap.String("key", key), zap.Error(err))
	}
}
