package domain

import (
	"time"

	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "Open"
	TicketInProgress TicketStatus = "In Progress"
	TicketClosed     TicketStatus = "Closed"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketClosed:
		return true
	}
	return false
}

type SupportTicket struct {
	ID          uuid.UUID    `json:"ticket_id"`
	UserID      uuid.UUID    `json:"user_id"`
	Subject     string       `json:"subject"`
	Description string       `json:"description"`
	Status      TicketStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type TicketAuthor struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	Role         Role    `json:"role"`
}

type TicketReply struct {
	ID        uuid.UUID    `json:"reply_id"`
	TicketID  uuid.UUID    `json:"ticket_id"`
	UserID    uuid.UUID    `json:"user_id"`
	Message   string       `json:"message"`
	IsAdmin   bool         `json:"is_admin"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Author    TicketAuthor `json:"author"`
}

// TicketView is a ticket joined with its owner. Replies are only loaded for
// single-ticket reads.
type TicketView struct {
	SupportTicket
	Owner      TicketAuthor  `json:"user"`
	ReplyCount int           `json:"reply_count"`
	Replies    []TicketReply `json:"replies,omitempty"`
}

type TicketFilter struct {
	UserID    *uuid.UUID
	Status    string
	Search    string
	SortBy    string
	SortOrder string
}

type TicketUpdate struct {
	Subject     string
	Description string
	Status      TicketStatus
}
