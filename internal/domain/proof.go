package domain

import "time"

// PurchaseProof is the owner's post-completion thank-you note.
type PurchaseProof struct {
	ID        string
	EventID   string
	Images    []string
	Message   string
	CreatedAt time.Time
}
