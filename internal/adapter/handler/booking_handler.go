package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/srgjo27/vehicle_rental/internal/core/services"
)

type BookingHandler struct {
	svc    *services.BookingService
	logger *zap.Logger
}

func NewBookingHandler(svc *services.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	caller, _ := PrincipalFrom(r.Context())

	bookings, err := h.svc.ListBookings(r.Context(), caller)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, bookings)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	caller, _ := PrincipalFrom(r.Context())

	booking, err := h.svc.GetBooking(r.Context(), caller, id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, booking)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req services.CreateBookingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	caller, _ := PrincipalFrom(r.Context())

	booking, err := h.svc.CreateBooking(r.Context(), caller, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: booking, Message: "Booking created successfully"})
}

func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req services.UpdateBookingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	booking, err := h.svc.UpdateBooking(r.Context(), id, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Data: booking, Message: "Booking updated successfully"})
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req services.CancelBookingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	caller, _ := PrincipalFrom(r.Context())

	resp, err := h.svc.CancelBooking(r.Context(), caller, id, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Data: resp, Message: "Booking cancelled successfully"})
}

func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.svc.DeleteBooking(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "Booking deleted successfully")
}
