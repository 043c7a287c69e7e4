package domain

// NotificationType enumerates the intents emitted by the engine.
type NotificationType string

const (
	NotificationBirthdayReminder   NotificationType = "BIRTHDAY_REMINDER"
	NotificationFriendEventCreated NotificationType = "FRIEND_EVENT_CREATED"
	NotificationEventParticipation NotificationType = "EVENT_PARTICIPATION"
	NotificationMoaCompleted       NotificationType = "MOA_COMPLETED"
	NotificationEventCompleted     NotificationType = "EVENT_COMPLETED"
	NotificationPurchaseProof      NotificationType = "PURCHASE_PROOF"
)

// Notification is the payload handed to a sink.
type Notification struct {
	Type    NotificationType
	Title   string
	Message string
}

// NotificationIntent pairs a notification with its recipient.
type NotificationIntent struct {
	RecipientID string
	Notification
}
