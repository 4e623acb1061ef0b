package email

import (
	"context"
	"fmt"
	"log"
	"strings"

	"mapdex/internal/config"
	"mapdex/internal/models"
)

// ModeratorEmailGetter is an interface for getting moderator emails.
type ModeratorEmailGetter interface {
	GetModeratorEmails(ctx context.Context) ([]string, error)
}

// Notifier sends email notifications for submission events.
type Notifier struct {
	service *Service
	cfg     *config.Config
	db      ModeratorEmailGetter
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config, db ModeratorEmailGetter) *Notifier {
	return &Notifier{
		service: NewService(cfg),
		cfg:     cfg,
		db:      db,
	}
}

// NotifyEntryCreated notifies moderators that a new entry was created.
func (n *Notifier) NotifyEntryCreated(ctx context.Context, id, title string) {
	if !n.service.IsEnabled() || !n.cfg.EmailNotifyOnSubmit {
		return
	}

	emails, err := n.db.GetModeratorEmails(ctx)
	if err != nil {
		log.Printf("Failed to get moderator emails: %v", err)
		return
	}
	if len(emails) == 0 {
		return
	}

	subject := fmt.Sprintf("[%s] New entry: %s", n.cfg.SiteTitle, title)
	body := fmt.Sprintf("A new entry was created.\n\nTitle: %s\nDetail view: %s/maps/entities/%s\n",
		title, strings.TrimRight(n.cfg.BaseURL, "/"), id)
	n.service.SendAsync(emails, subject, body)
}

// NotifyDuplicateOverride notifies moderators that an entry was created even
// though the duplicate check had flagged candidates.
func (n *Notifier) NotifyDuplicateOverride(ctx context.Context, id, title string, candidates []models.DuplicatePayload) {
	if !n.service.IsEnabled() || !n.cfg.EmailNotifyOnDuplicateOverride {
		return
	}

	emails, err := n.db.GetModeratorEmails(ctx)
	if err != nil {
		log.Printf("Failed to get moderator emails: %v", err)
		return
	}
	if len(emails) == 0 {
		return
	}

	var list strings.Builder
	for _, c := range candidates {
		cid := ""
		if c.ID != nil {
			cid = *c.ID
		}
		fmt.Fprintf(&list, "  - %s (%s)\n", c.Title, cid)
	}

	subject := fmt.Sprintf("[%s] Possible duplicate confirmed: %s", n.cfg.SiteTitle, title)
	body := fmt.Sprintf(
		"An entry was created despite duplicate warnings.\n\nTitle: %s\nDetail view: %s/maps/entities/%s\n\nFlagged candidates:\n%s",
		title, strings.TrimRight(n.cfg.BaseURL, "/"), id, list.String())
	n.service.SendAsync(emails, subject, body)
}
