package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bar-website/models"
)

// callLog records store and image calls in the order they happen.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.mu.Lock()
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
	l.mu.Unlock()
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakeMenuStore struct {
	log     *callLog
	items   map[string]models.MenuItem
	next    int
	listErr error
	saveErr error
}

func newFakeMenuStore(log *callLog) *fakeMenuStore {
	return &fakeMenuStore{log: log, items: make(map[string]models.MenuItem)}
}

func (f *fakeMenuStore) ListMenuItems(_ context.Context, orderBy ...string) ([]models.MenuItem, error) {
	f.log.add("list %v", orderBy)
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.MenuItem, 0, len(f.items))
	for i := 0; i < f.next; i++ {
		if it, ok := f.items[fmt.Sprintf("item-%d", i)]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeMenuStore) GetMenuItem(_ context.Context, id string) (*models.MenuItem, error) {
	f.log.add("get %s", id)
	it, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &it, nil
}

func (f *fakeMenuStore) CreateMenuItem(_ context.Context, it models.MenuItem) (string, error) {
	f.log.add("create %s", it.Name)
	if f.saveErr != nil {
		return "", f.saveErr
	}
	it.ID = fmt.Sprintf("item-%d", f.next)
	f.next++
	f.items[it.ID] = it
	return it.ID, nil
}

func (f *fakeMenuStore) UpdateMenuItem(_ context.Context, it models.MenuItem) error {
	f.log.add("update %s", it.ID)
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, ok := f.items[it.ID]; !ok {
		return ErrNotFound
	}
	f.items[it.ID] = it
	return nil
}

func (f *fakeMenuStore) DeleteMenuItem(_ context.Context, id string) error {
	f.log.add("delete record %s", id)
	if _, ok := f.items[id]; !ok {
		return ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeImages struct {
	log       *callLog
	files     map[string][]byte
	putErr    error
	deleteErr error
}

func newFakeImages(log *callLog) *fakeImages {
	return &fakeImages{log: log, files: make(map[string][]byte)}
}

func (f *fakeImages) PutImage(_ context.Context, key, _ string, data []byte) (string, error) {
	f.log.add("put image")
	if f.putErr != nil {
		return "", f.putErr
	}
	url := "/uploads/" + key
	f.files[url] = data
	return url, nil
}

func (f *fakeImages) DeleteImage(_ context.Context, url string) error {
	f.log.add("delete image %s", url)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.files, url)
	return nil
}

type fakeMessageStore struct {
	msgs    []models.ContactMessage
	err     error
	deleted []string
	stamp   time.Time
}

func (f *fakeMessageStore) ListMessages(context.Context) ([]models.ContactMessage, error) {
	return f.msgs, f.err
}

func (f *fakeMessageStore) CreateMessage(_ context.Context, m models.ContactMessage) (models.ContactMessage, error) {
	if f.err != nil {
		return models.ContactMessage{}, f.err
	}
	m.ID = fmt.Sprintf("msg-%d", len(f.msgs))
	if !f.stamp.IsZero() {
		m.Timestamp = f.stamp
	}
	f.msgs = append(f.msgs, m)
	return m, nil
}

func (f *fakeMessageStore) DeleteMessage(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	for i, m := range f.msgs {
		if m.ID == id {
			f.msgs = append(f.msgs[:i], f.msgs[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return ErrNotFound
}

type fakeAdminStore struct {
	admins map[string]models.AdminUser
	err    error
}

func (f *fakeAdminStore) FindAdminByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.admins[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (f *fakeAdminStore) UpsertAdmin(_ context.Context, email, hash string) error {
	if f.err != nil {
		return f.err
	}
	if f.admins == nil {
		f.admins = make(map[string]models.AdminUser)
	}
	f.admins[email] = models.AdminUser{ID: "admin-" + email, Email: email, PasswordHash: hash}
	return nil
}

type fakeNotifier struct {
	got []models.ContactMessage
	err error
}

func (f *fakeNotifier) NotifyContact(_ context.Context, m models.ContactMessage) error {
	f.got = append(f.got, m)
	return f.err
}

var errBoom = errors.New("boom")
