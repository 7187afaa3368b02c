package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

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

func TestListVehicles_CacheMissThenStore(t *testing.T) {
	vehicles := mocks.NewVehicleRepository(t)
	specs := mocks.NewVehicleSpecRepository(t)
	db, mockRedis := redismock.NewClientMock()

	service := services.NewVehicleService(vehicles, specs, db, zap.NewNop())

	ctx := context.Background()
	list := []domain.VehicleView{*availableVehicle(uuid.New())}
	data, err := json.Marshal(list)
	require.NoError(t, err)

	mockRedis.ExpectGet("vehicles:all").RedisNil()
	vehicles.On("List", ctx).Return(list, nil)
	mockRedis.ExpectSet("vehicles:all", data, time.Minute).SetVal("OK")

	got, err := service.ListVehicles(ctx)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestGetVehicle_CacheHit(t *testing.T) {
	vehicles := mocks.NewVehicleRepository(t)
	specs := mocks.NewVehicleSpecRepository(t)
	db, mockRedis := redismock.NewClientMock()

	service := services.NewVehicleService(vehicles, specs, db, zap.NewNop())

	vehicleID := uuid.New()
	data, err := json.Marshal(availableVehicle(vehicleID))
	require.NoError(t, err)

	mockRedis.ExpectGet(fmt.Sprintf("vehicle:%s", vehicleID)).SetVal(string(data))

	got, err := service.GetVehicle(context.Background(), vehicleID)

	require.NoError(t, err)
	assert.Equal(t, "Corolla", got.Spec.Model)
	vehicles.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetVehicle_WithoutCache(t *testing.T) {
	vehicles := mocks.NewVehicleRepository(t)
	specs := mocks.NewVehicleSpecRepository(t)

	service := services.NewVehicleService(vehicles, specs, nil, zap.NewNop())

	ctx := context.Background()
	vehicleID := uuid.New()
	vehicles.On("GetByID", ctx, vehicleID).Return(availableVehicle(vehicleID), nil)

	got, err := service.GetVehicle(ctx, vehicleID)

	require.NoError(t, err)
	assert.Equal(t, vehicleID, got.ID)
}

func TestCreateVehicle(t *testing.T) {
	ctx := context.Background()
	specID := uuid.New()

	t.Run("Success Defaults To Available", func(t *testing.T) {
		vehicles := mocks.NewVehicleRepository(t)
		specs := mocks.NewVehicleSpecRepository(t)
		db, mockRedis := redismock.NewClientMock()
		service := services.NewVehicleService(vehicles, specs, db, zap.NewNop())

		var createdID uuid.UUID
		specs.On("GetByID", ctx, specID).Return(&domain.VehicleSpec{ID: specID}, nil)
		vehicles.On("Create", ctx, mock.MatchedBy(func(v *domain.Vehicle) bool {
			createdID = v.ID
			return v.Availability == domain.VehicleAvailable && v.RentalRate == 45
		})).Return(nil)
		vehicles.On("GetByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(availableVehicle(uuid.New()), nil)
		mockRedis.Regexp().ExpectDel("vehicles:all", `vehicle:.*`).SetVal(1)

		_, err := service.CreateVehicle(ctx, services.CreateVehicleRequest{SpecID: specID, RentalRate: 45})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, createdID)
	})

	t.Run("Unknown Specification", func(t *testing.T) {
		vehicles := mocks.NewVehicleRepository(t)
		specs := mocks.NewVehicleSpecRepository(t)
		service := services.NewVehicleService(vehicles, specs, nil, zap.NewNop())

		specs.On("GetByID", ctx, specID).Return(nil, domain.ErrNotFound("Vehicle specification not found"))

		_, err := service.CreateVehicle(ctx, services.CreateVehicleRequest{SpecID: specID, RentalRate: 45})

		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}

func TestUpdateVehicle(t *testing.T) {
	ctx := context.Background()
	vehicleID := uuid.New()

	t.Run("No Fields", func(t *testing.T) {
		service := services.NewVehicleService(mocks.NewVehicleRepository(t), mocks.NewVehicleSpecRepository(t), nil, zap.NewNop())

		_, err := service.UpdateVehicle(ctx, vehicleID, services.UpdateVehicleRequest{})

		assert.True(t, domain.IsKind(err, domain.KindNoOp))
	})

	t.Run("Invalidates Cache", func(t *testing.T) {
		vehicles := mocks.NewVehicleRepository(t)
		db, mockRedis := redismock.NewClientMock()
		service := services.NewVehicleService(vehicles, mocks.NewVehicleSpecRepository(t), db, zap.NewNop())

		availability := domain.VehicleUnavailable
		vehicles.On("Update", ctx, vehicleID, domain.VehicleUpdate{Availability: &availability}).Return(nil)
		vehicles.On("GetByID", ctx, vehicleID).Return(availableVehicle(vehicleID), nil)
		mockRedis.ExpectDel("vehicles:all", fmt.Sprintf("vehicle:%s", vehicleID)).SetVal(2)

		_, err := service.UpdateVehicle(ctx, vehicleID, services.UpdateVehicleRequest{Availability: &availability})

		require.NoError(t, err)
		assert.NoError(t, mockRedis.ExpectationsWereMet())
	})
}
