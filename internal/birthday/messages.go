package birthday

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"moa/internal/domain"
)

var printer = message.NewPrinter(language.English)

// formatAmount renders an amount with thousands separators, e.g. 30,000.
func formatAmount(amount int64) string {
	return printer.Sprintf("%d", amount)
}

func eventTitle(ownerName string) string {
	return fmt.Sprintf("%s's Birthday Moa", ownerName)
}

func birthdayReminder(ownerName string, daysUntil int) domain.Notification {
	when := fmt.Sprintf("in %d days", daysUntil)
	switch daysUntil {
	case 0:
		when = "today"
	case 1:
		when = "tomorrow"
	}
	return domain.Notification{
		Type:    domain.NotificationBirthdayReminder,
		Title:   "Birthday coming up",
		Message: fmt.Sprintf("%s's birthday is %s.", ownerName, when),
	}
}

func friendEventCreated(ownerName string) domain.Notification {
	return domain.Notification{
		Type:    domain.NotificationFriendEventCreated,
		Title:   "A birthday moa has opened",
		Message: fmt.Sprintf("Join %s's birthday moa and send a gift or a letter.", ownerName),
	}
}

func participationReceived(joinerName string, p domain.Participation) domain.Notification {
	msg := fmt.Sprintf("%s joined your birthday moa.", joinerName)
	if p.Type == domain.ParticipationWithMoney {
		msg = fmt.Sprintf("%s joined your birthday moa with %s points.", joinerName, formatAmount(p.Amount))
	}
	return domain.Notification{
		Type:    domain.NotificationEventParticipation,
		Title:   "New participant",
		Message: msg,
	}
}

func moaCompleted(ev domain.Event) domain.Notification {
	return domain.Notification{
		Type:    domain.NotificationMoaCompleted,
		Title:   "Your birthday moa is complete",
		Message: fmt.Sprintf("Your friends pooled %s points for you.", formatAmount(ev.PooledAmount)),
	}
}

func eventCompleted(ownerName string) domain.Notification {
	return domain.Notification{
		Type:    domain.NotificationEventCompleted,
		Title:   "Birthday moa completed",
		Message: fmt.Sprintf("%s's birthday moa has been completed. Thank you for joining!", ownerName),
	}
}

func purchaseProofPosted(ownerName, note string) domain.Notification {
	return domain.Notification{
		Type:    domain.NotificationPurchaseProof,
		Title:   fmt.Sprintf("%s shared what the gift became", ownerName),
		Message: note,
	}
}
