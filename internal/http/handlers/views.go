package handlers

import (
	"time"

	"moa/internal/birthday"
	"moa/internal/domain"
)

type eventView struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	PooledAmount int64     `json:"pooled_amount"`
	Deadline     time.Time `json:"deadline"`
	Status       string    `json:"status"`
}

func newEventView(ev domain.Event) eventView {
	return eventView{
		ID:           ev.ID,
		OwnerID:      ev.OwnerID,
		Title:        ev.Title,
		PooledAmount: ev.PooledAmount,
		Deadline:     ev.Deadline,
		Status:       string(ev.Status),
	}
}

type participationView struct {
	ID             string    `json:"id"`
	EventID        string    `json:"event_id"`
	UserID         string    `json:"user_id"`
	Amount         int64     `json:"amount"`
	Type           string    `json:"type"`
	ParticipatedAt time.Time `json:"participated_at"`
}

func newParticipationView(p domain.Participation) participationView {
	return participationView{
		ID:             p.ID,
		EventID:        p.EventID,
		UserID:         p.UserID,
		Amount:         p.Amount,
		Type:           string(p.Type),
		ParticipatedAt: p.ParticipatedAt,
	}
}

type aggregateView struct {
	EventID          string `json:"event_id"`
	PooledAmount     int64  `json:"pooled_amount"`
	ParticipantCount int    `json:"participant_count"`
}

type proofView struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Images    []string  `json:"images"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func newProofView(p domain.PurchaseProof) proofView {
	return proofView{ID: p.ID, EventID: p.EventID, Images: p.Images, Message: p.Message, CreatedAt: p.CreatedAt}
}

type recipientView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type participationInfoView struct {
	Event            eventView                 `json:"event"`
	ParticipantCount int                       `json:"participant_count"`
	Countdown        birthday.Countdown        `json:"countdown"`
	Participation    *participationView        `json:"participation"`
	HasWrittenLetter bool                      `json:"has_written_letter"`
	Action           birthday.ActionDescriptor `json:"action"`
}
