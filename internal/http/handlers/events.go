package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"moa/internal/birthday"
	"moa/internal/domain"
)

// ParticipationInfo handles GET /v1/events/{eventID}/participation.
func (a *App) ParticipationInfo(w http.ResponseWriter, r *http.Request) {
	info, err := a.Engine.GetParticipationInfo(r.Context(), a.currentUserID(r), chi.URLParam(r, "eventID"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	view := participationInfoView{
		Event:            newEventView(info.Event),
		ParticipantCount: info.ParticipantCount,
		Countdown:        info.Countdown,
		HasWrittenLetter: info.HasWrittenLetter,
		Action:           info.Action,
	}
	if info.Participation != nil {
		p := newParticipationView(*info.Participation)
		view.Participation = &p
	}
	a.json(w, http.StatusOK, view)
}

type joinRequest struct {
	Type   string `json:"type"`
	Amount int64  `json:"amount"`
}

// Join handles POST /v1/events/{eventID}/participations.
func (a *App) Join(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := a.decode(r, &req); err != nil {
		a.badRequest(w, err)
		return
	}
	res, err := a.Engine.Join(r.Context(), birthday.JoinRequest{
		UserID:  a.currentUserID(r),
		EventID: chi.URLParam(r, "eventID"),
		Type:    domain.ParticipationType(req.Type),
		Amount:  req.Amount,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"participation": newParticipationView(res.Participation),
		"event": aggregateView{
			EventID:          res.Event.EventID,
			PooledAmount:     res.Event.PooledAmount,
			ParticipantCount: res.Event.ParticipantCount,
		},
	})
}

// Complete handles POST /v1/events/{eventID}/complete. Completing an event
// that is no longer active is not an error; completed is false instead.
func (a *App) Complete(w http.ResponseWriter, r *http.Request) {
	ev, err := a.Engine.ForceCompleteAs(r.Context(), a.currentUserID(r), chi.URLParam(r, "eventID"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if ev == nil {
		a.json(w, http.StatusOK, map[string]any{"completed": false})
		return
	}
	a.json(w, http.StatusOK, map[string]any{"completed": true, "event": newEventView(*ev)})
}

type proofRequest struct {
	Images  []string `json:"images"`
	Message string   `json:"message"`
}

// RegisterProof handles POST /v1/events/{eventID}/proof.
func (a *App) RegisterProof(w http.ResponseWriter, r *http.Request) {
	var req proofRequest
	if err := a.decode(r, &req); err != nil {
		a.badRequest(w, err)
		return
	}
	res, err := a.Engine.RegisterProof(r.Context(), birthday.ProofRequest{
		UserID:  a.currentUserID(r),
		EventID: chi.URLParam(r, "eventID"),
		Images:  req.Images,
		Message: req.Message,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	recipients := make([]recipientView, len(res.Recipients))
	for i, rc := range res.Recipients {
		recipients[i] = recipientView{ID: rc.ID, Name: rc.Name}
	}
	a.json(w, http.StatusCreated, map[string]any{
		"proof":      newProofView(res.Proof),
		"recipients": recipients,
	})
}

// GetProof handles GET /v1/events/{eventID}/proof.
func (a *App) GetProof(w http.ResponseWriter, r *http.Request) {
	proof, err := a.Engine.GetProof(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, newProofView(*proof))
}

type shareTokenRequest struct {
	ExpiresAt *time.Time `json:"expires_at"`
}

// CreateShareToken handles POST /v1/events/{eventID}/share-tokens.
func (a *App) CreateShareToken(w http.ResponseWriter, r *http.Request) {
	var req shareTokenRequest
	if err := a.decode(r, &req); err != nil {
		a.badRequest(w, err)
		return
	}
	var expiresAt time.Time
	if req.ExpiresAt != nil {
		expiresAt = *req.ExpiresAt
	}
	token, err := a.Engine.CreateShareToken(r.Context(), chi.URLParam(r, "eventID"), expiresAt)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"token":      token.Token,
		"event_id":   token.EventID,
		"expires_at": token.ExpiresAt,
		"path":       "/v1/share/" + token.Token,
	})
}

// ResolveShareToken handles GET /v1/share/{token}.
func (a *App) ResolveShareToken(w http.ResponseWriter, r *http.Request) {
	summary, err := a.Engine.ResolveShareToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"event":             newEventView(summary.Event),
		"owner_name":        summary.OwnerName,
		"participant_count": summary.ParticipantCount,
		"countdown":         summary.Countdown,
	})
}
