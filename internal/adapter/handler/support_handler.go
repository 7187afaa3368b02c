package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
	"github.com/srgjo27/vehicle_rental/internal/core/services"
)

type SupportHandler struct {
	svc    *services.SupportService
	logger *zap.Logger
}

func NewSupportHandler(svc *services.SupportService, logger *zap.Logger) *SupportHandler {
	return &SupportHandler{svc: svc, logger: logger}
}

func ticketFilter(r *http.Request) domain.TicketFilter {
	q := r.URL.Query()
	return domain.TicketFilter{
		Status:    q.Get("status"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}
}

func (h *SupportHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	caller, _ := PrincipalFrom(r.Context())

	tickets, err := h.svc.ListTickets(r.Context(), caller, ticketFilter(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, tickets)
}

func (h *SupportHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	caller, _ := PrincipalFrom(r.Context())

	ticket, err := h.svc.GetTicket(r.Context(), caller, id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, ticket)
}

func (h *SupportHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req services.CreateTicketRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	caller, _ := PrincipalFrom(r.Context())

	ticket, err := h.svc.CreateTicket(r.Context(), caller, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: ticket, Message: "Support ticket created successfully"})
}

func (h *SupportHandler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req services.UpdateTicketRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	ticket, err := h.svc.UpdateTicket(r.Context(), id, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Data: ticket, Message: "Support ticket updated successfully"})
}

func (h *SupportHandler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.svc.DeleteTicket(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "Support ticket deleted successfully")
}

func (h *SupportHandler) AddReply(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req services.TicketReplyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	caller, _ := PrincipalFrom(r.Context())

	reply, err := h.svc.AddReply(r.Context(), caller, id, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: reply, Message: "Reply added successfully"})
}

func (h *SupportHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req services.TicketStatusRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	ticket, err := h.svc.UpdateStatus(r.Context(), id, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Data: ticket, Message: "Ticket status updated successfully"})
}
