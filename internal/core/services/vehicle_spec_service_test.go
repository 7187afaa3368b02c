package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
	"github.com/srgjo27/vehicle_rental/internal/core/ports/mocks"
	"github.com/srgjo27/vehicle_rental/internal/core/services"
)

func TestUpdateSpec_ReplacesEveryField(t *testing.T) {
	specs := mocks.NewVehicleSpecRepository(t)
	service := services.NewVehicleSpecService(specs, nil, zap.NewNop())

	ctx := context.Background()
	specID := uuid.New()

	specs.On("Update", ctx, mock.MatchedBy(func(s *domain.VehicleSpec) bool {
		return s.ID == specID && s.Model == "Yaris" && s.Color == nil && s.SeatingCapacity == nil
	})).Return(nil)

	spec, err := service.UpdateSpec(ctx, specID, services.VehicleSpecRequest{
		Manufacturer: "Toyota",
		Model:        "Yaris",
		Year:         2023,
	})

	require.NoError(t, err)
	assert.Equal(t, specID, spec.ID)
}

func TestCreateSpec_AssignsID(t *testing.T) {
	specs := mocks.NewVehicleSpecRepository(t)
	service := services.NewVehicleSpecService(specs, nil, zap.NewNop())
	ctx := context.Background()

	specs.On("Create", ctx, mock.AnythingOfType("*domain.VehicleSpec")).Return(nil)

	spec, err := service.CreateSpec(ctx, services.VehicleSpecRequest{Manufacturer: "Honda", Model: "Civic", Year: 2021})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, spec.ID)
	assert.Equal(t, "Honda", spec.Manufacturer)
}

func TestUpdateSpec_NotFound(t *testing.T) {
	specs := mocks.NewVehicleSpecRepository(t)
	service := services.NewVehicleSpecService(specs, nil, zap.NewNop())
	ctx := context.Background()
	specID := uuid.New()

	specs.On("Update", ctx, mock.AnythingOfType("*domain.VehicleSpec")).Return(domain.ErrNotFound("Vehicle specification not found"))

	_, err := service.UpdateSpec(ctx, specID, services.VehicleSpecRequest{Manufacturer: "Honda", Model: "Civic", Year: 2021})

	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestSpecWrites_InvalidateVehicleCache(t *testing.T) {
	ctx := context.Background()
	specID := uuid.New()
	cached := []string{"vehicle:" + uuid.NewString(), "vehicle:" + uuid.NewString()}

	t.Run("Update", func(t *testing.T) {
		specs := mocks.NewVehicleSpecRepository(t)
		db, mockRedis := redismock.NewClientMock()
		service := services.NewVehicleSpecService(specs, db, zap.NewNop())

		specs.On("Update", ctx, mock.AnythingOfType("*domain.VehicleSpec")).Return(nil)
		mockRedis.ExpectScan(0, "vehicle:*", 100).SetVal(cached[:1], 7)
		mockRedis.ExpectScan(7, "vehicle:*", 100).SetVal(cached[1:], 0)
		mockRedis.ExpectDel("vehicles:all", cached[0], cached[1]).SetVal(3)

		_, err := service.UpdateSpec(ctx, specID, services.VehicleSpecRequest{Manufacturer: "Toyota", Model: "Yaris", Year: 2023})

		require.NoError(t, err)
		assert.NoError(t, mockRedis.ExpectationsWereMet())
	})

	t.Run("Delete", func(t *testing.T) {
		specs := mocks.NewVehicleSpecRepository(t)
		db, mockRedis := redismock.NewClientMock()
		service := services.NewVehicleSpecService(specs, db, zap.NewNop())

		specs.On("Delete", ctx, specID).Return(nil)
		mockRedis.ExpectScan(0, "vehicle:*", 100).SetErr(errors.New("connection refused"))
		mockRedis.ExpectDel("vehicles:all").SetVal(1)

		require.NoError(t, service.DeleteSpec(ctx, specID))
		assert.NoError(t, mockRedis.ExpectationsWereMet())
	})

	t.Run("Failed Delete Keeps Cache", func(t *testing.T) {
		specs := mocks.NewVehicleSpecRepository(t)
		db, mockRedis := redismock.NewClientMock()
		service := services.NewVehicleSpecService(specs, db, zap.NewNop())

		specs.On("Delete", ctx, specID).Return(domain.ErrConflict("Vehicle specification is in use"))

		err := service.DeleteSpec(ctx, specID)

		assert.True(t, domain.IsKind(err, domain.KindConflict))
		assert.NoError(t, mockRedis.ExpectationsWereMet())
	})
}
