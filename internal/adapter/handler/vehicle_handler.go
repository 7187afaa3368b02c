package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/srgjo27/vehicle_rental/internal/core/services"
)

type VehicleHandler struct {
	vehicles *services.VehicleService
	specs    *services.VehicleSpecService
	logger   *zap.Logger
}

func NewVehicleHandler(vehicles *services.VehicleService, specs *services.VehicleSpecService, logger *zap.Logger) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles, specs: specs, logger: logger}
}

func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.ListVehicles(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	vehicle, err := h.vehicles.GetVehicle(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req services.CreateVehicleRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	vehicle, err := h.vehicles.CreateVehicle(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: vehicle, Message: "Vehicle created successfully"})
}

func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req services.UpdateVehicleRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	vehicle, err := h.vehicles.UpdateVehicle(r.Context(), id, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Data: vehicle, Message: "Vehicle updated successfully"})
}

func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.vehicles.DeleteVehicle(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "Vehicle deleted successfully")
}

func (h *VehicleHandler) ListSpecs(w http.ResponseWriter, r *http.Request) {
	specs, err := h.specs.ListSpecs(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, specs)
}

func (h *VehicleHandler) GetSpec(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	spec, err := h.specs.GetSpec(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, spec)
}

func (h *VehicleHandler) CreateSpec(w http.ResponseWriter, r *http.Request) {
	var req services.VehicleSpecRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	spec, err := h.specs.CreateSpec(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: spec, Message: "Vehicle specification created successfully"})
}

func (h *VehicleHandler) UpdateSpec(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req services.VehicleSpecRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	spec, err := h.specs.UpdateSpec(r.Context(), id, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Data: spec, Message: "Vehicle specification updated successfully"})
}

func (h *VehicleHandler) DeleteSpec(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.specs.DeleteSpec(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "Vehicle specification deleted successfully")
}
