package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"bar-website/models"
	"bar-website/services"
)

// Memory is a process-local store for development and tests. Data is lost on
// restart.
type Memory struct {
	mu       sync.RWMutex
	menu     map[string]models.MenuItem
	seq      map[string]int // insertion order, used as the final tie-break
	next     int
	messages map[string]models.ContactMessage
	admins   map[string]models.AdminUser
	now      func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		menu:     make(map[string]models.MenuItem),
		seq:      make(map[string]int),
		messages: make(map[string]models.ContactMessage),
		admins:   make(map[string]models.AdminUser),
		now:      time.Now,
	}
}

func menuLess(field string, a, b models.MenuItem) (less, equal bool, err error) {
	switch field {
	case "name":
		return a.Name < b.Name, a.Name == b.Name, nil
	case "price":
		return a.Price < b.Price, a.Price == b.Price, nil
	case "category":
		return a.Category < b.Category, a.Category == b.Category, nil
	case "createdAt":
		return a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt), nil
	}
	return false, false, fmt.Errorf("unknown sort field %q", field)
}

func (m *Memory) ListMenuItems(_ context.Context, orderBy ...string) ([]models.MenuItem, error) {
	for _, f := range orderBy {
		if _, _, err := menuLess(f, models.MenuItem{}, models.MenuItem{}); err != nil {
			return nil, err
		}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]models.MenuItem, 0, len(m.menu))
	for _, it := range m.menu {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool {
		for _, f := range orderBy {
			less, equal, _ := menuLess(f, items[i], items[j])
			if !equal {
				return less
			}
		}
		return m.seq[items[i].ID] < m.seq[items[j].ID]
	})
	return items, nil
}

func (m *Memory) GetMenuItem(_ context.Context, id string) (*models.MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.menu[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return &it, nil
}

func (m *Memory) CreateMenuItem(_ context.Context, it models.MenuItem) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it.ID = uuid.NewString()
	m.menu[it.ID] = it
	m.seq[it.ID] = m.next
	m.next++
	return it.ID, nil
}

func (m *Memory) UpdateMenuItem(_ context.Context, it models.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.menu[it.ID]; !ok {
		return services.ErrNotFound
	}
	m.menu[it.ID] = it
	return nil
}

func (m *Memory) DeleteMenuItem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.menu[id]; !ok {
		return services.ErrNotFound
	}
	delete(m.menu, id)
	delete(m.seq, id)
	return nil
}

func (m *Memory) ListMessages(_ context.Context) ([]models.ContactMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msgs := make([]models.ContactMessage, 0, len(m.messages))
	for _, msg := range m.messages {
		msgs = append(msgs, msg)
	}
	sort.Slice(msgs, func(i, j int) bool {
		if !msgs[i].Timestamp.Equal(msgs[j].Timestamp) {
			return msgs[i].Timestamp.After(msgs[j].Timestamp)
		}
		return msgs[i].ID < msgs[j].ID
	})
	return msgs, nil
}

// CreateMessage stamps the message with the store's clock, as the database does.
func (m *Memory) CreateMessage(_ context.Context, msg models.ContactMessage) (models.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.ID = uuid.NewString()
	msg.Timestamp = m.now().UTC()
	m.messages[msg.ID] = msg
	return msg, nil
}

func (m *Memory) DeleteMessage(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.messages[id]; !ok {
		return services.ErrNotFound
	}
	delete(m.messages, id)
	return nil
}

func (m *Memory) FindAdminByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.admins[email]
	if !ok {
		return nil, services.ErrNotFound
	}
	return &a, nil
}

func (m *Memory) UpsertAdmin(_ context.Context, email, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.admins[email]
	if !ok {
		a = models.AdminUser{ID: uuid.NewString(), Email: email, CreatedAt: m.now().UTC()}
	}
	a.PasswordHash = passwordHash
	m.admins[email] = a
	return nil
}
