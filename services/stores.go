package services

import (
	"context"

	"bar-website/models"
)

// MenuStore persists menu_items. Update overwrites the whole record.
type MenuStore interface {
	ListMenuItems(ctx context.Context, orderBy ...string) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item models.MenuItem) (string, error)
	UpdateMenuItem(ctx context.Context, item models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error
}

// MessageStore persists contact_messages. List returns newest first. Create
// assigns the id and timestamp and returns the stored message.
type MessageStore interface {
	ListMessages(ctx context.Context) ([]models.ContactMessage, error)
	CreateMessage(ctx context.Context, msg models.ContactMessage) (models.ContactMessage, error)
	DeleteMessage(ctx context.Context, id string) error
}

// AdminStore persists dashboard accounts.
type AdminStore interface {
	FindAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	UpsertAdmin(ctx context.Context, email, passwordHash string) error
}

// ImageStore keeps menu images and hands out public URLs for them.
type ImageStore interface {
	PutImage(ctx context.Context, key, contentType string, data []byte) (string, error)
	DeleteImage(ctx context.Context, url string) error
}

// Notifier tells the staff about new contact messages.
type Notifier interface {
	NotifyContact(ctx context.Context, msg models.ContactMessage) error
}
