package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bar-website/models"
)

const imagePrefix = "menu-images"

// Admin list sort keys.
const (
	SortByName     = "name"
	SortByPrice    = "price"
	SortByCategory = "category"
)

// AdminService is the dashboard's write path over menu items and contact messages.
type AdminService struct {
	menu     MenuStore
	messages MessageStore
	images   ImageStore
	log      *zap.Logger
	now      func() time.Time
}

func NewAdminService(menu MenuStore, messages MessageStore, images ImageStore, log *zap.Logger) *AdminService {
	return &AdminService{menu: menu, messages: messages, images: images, log: log, now: time.Now}
}

// ParsePrice parses a decimal price. Negative, NaN and infinite values are rejected.
func ParsePrice(raw string) (float64, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return 0, invalid("price", "required")
	}
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, invalid("price", "not a number")
	}
	if p < 0 {
		return 0, invalid("price", "must be >= 0")
	}
	return p, nil
}

func validateForm(form models.MenuItemForm) (models.MenuItem, error) {
	item := models.MenuItem{
		Name:        strings.TrimSpace(form.Name),
		Description: strings.TrimSpace(form.Description),
		Category:    strings.TrimSpace(form.Category),
	}
	if item.Name == "" {
		return item, invalid("name", "required")
	}
	if item.Category == "" {
		return item, invalid("category", "required")
	}
	price, err := ParsePrice(form.Price)
	if err != nil {
		return item, err
	}
	item.Price = price
	return item, nil
}

// imageKey salts the upload name with the current time so two uploads of
// "beer.jpg" never collide.
func imageKey(now time.Time, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, base)
	if safe == "" || safe == "." || safe == "/" {
		safe = "image"
	}
	return fmt.Sprintf("%s/%d-%s-%s", imagePrefix, now.UnixMilli(), uuid.NewString()[:8], safe)
}

// SaveMenuItem creates (empty id) or fully overwrites a menu item. Input is
// validated before the image upload and before any record write.
func (s *AdminService) SaveMenuItem(ctx context.Context, id string, form models.MenuItemForm) (*models.MenuItem, error) {
	item, err := validateForm(form)
	if err != nil {
		return nil, err
	}

	// On update the stored record decides which image is kept or replaced;
	// ImageURL is only honoured for new records.
	previous := ""
	if id == "" {
		item.Image = strings.TrimSpace(form.ImageURL)
	} else {
		cur, err := s.menu.GetMenuItem(ctx, id)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				s.log.Error("load menu item", zap.String("id", id), zap.Error(err))
			}
			return nil, fmt.Errorf("load menu item %s: %w", id, err)
		}
		previous = cur.Image
		item.Image = previous
	}
	uploaded := ""
	if form.Image != nil && len(form.Image.Data) > 0 {
		url, err := s.images.PutImage(ctx, imageKey(s.now(), form.Image.Filename), form.Image.ContentType, form.Image.Data)
		if err != nil {
			s.log.Error("upload menu image", zap.String("file", form.Image.Filename), zap.Error(err))
			return nil, fmt.Errorf("upload image: %w", err)
		}
		item.Image = url
		uploaded = url
	}
	item.CreatedAt = s.now().UTC()

	if id == "" {
		item.ID, err = s.menu.CreateMenuItem(ctx, item)
	} else {
		item.ID = id
		err = s.menu.UpdateMenuItem(ctx, item)
	}
	if err != nil {
		s.log.Error("save menu item", zap.String("id", id), zap.Error(err))
		if uploaded != "" {
			if derr := s.images.DeleteImage(ctx, uploaded); derr != nil {
				s.log.Warn("remove image of failed save", zap.String("image", uploaded), zap.Error(derr))
			}
		}
		return nil, fmt.Errorf("save menu item: %w", err)
	}
	if uploaded != "" && previous != "" && previous != uploaded {
		if derr := s.images.DeleteImage(ctx, previous); derr != nil {
			s.log.Warn("delete replaced image", zap.String("image", previous), zap.Error(derr))
		}
	}
	return &item, nil
}

// GetMenuItem loads one item for the edit form.
func (s *AdminService) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	item, err := s.menu.GetMenuItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load menu item %s: %w", id, err)
	}
	return item, nil
}

// DeleteMenuItem removes the item's image first and then the record. A failed
// image delete is logged and the record is deleted anyway.
func (s *AdminService) DeleteMenuItem(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	item, err := s.menu.GetMenuItem(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("load menu item", zap.String("id", id), zap.Error(err))
		}
		return fmt.Errorf("load menu item %s: %w", id, err)
	}
	if item.Image != "" {
		if err := s.images.DeleteImage(ctx, item.Image); err != nil {
			s.log.Warn("delete menu image, continuing", zap.String("id", id), zap.String("image", item.Image), zap.Error(err))
		}
	}
	if err := s.menu.DeleteMenuItem(ctx, id); err != nil {
		s.log.Error("delete menu item", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("delete menu item %s: %w", id, err)
	}
	return nil
}

// DeleteMessage removes a contact message.
func (s *AdminService) DeleteMessage(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := s.messages.DeleteMessage(ctx, id); err != nil {
		s.log.Error("delete contact message", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("delete contact message %s: %w", id, err)
	}
	return nil
}

// AdminListOptions filters and sorts the dashboard list.
type AdminListOptions struct {
	Category string // "" or "all" for every category
	SortBy   string
}

// AdminMenuList is the dashboard's view of the menu.
type AdminMenuList struct {
	Items      []models.MenuItem `json:"items"`
	Categories []string          `json:"categories"`
	Category   string            `json:"category"`
	SortBy     string            `json:"sortBy"`
}

// ListMenu fetches every item and applies the dashboard filter and sort.
func (s *AdminService) ListMenu(ctx context.Context, opts AdminListOptions) (AdminMenuList, error) {
	if opts.SortBy == "" {
		opts.SortBy = SortByName
	}
	list := AdminMenuList{Items: []models.MenuItem{}, Categories: []string{}, Category: opts.Category, SortBy: opts.SortBy}
	items, err := s.menu.ListMenuItems(ctx, SortByName)
	if err != nil {
		s.log.Error("fetch menu items", zap.Error(err))
		return list, fmt.Errorf("list menu items: %w", err)
	}
	list.Categories = DistinctCategories(items)
	list.Items = SortAdminItems(FilterByCategory(items, opts.Category), opts.SortBy)
	return list, nil
}

// ListMessages returns contact messages newest first.
func (s *AdminService) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	msgs, err := s.messages.ListMessages(ctx)
	if err != nil {
		s.log.Error("fetch contact messages", zap.Error(err))
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return msgs, nil
}

// DistinctCategories returns the categories present in items, first-seen order.
func DistinctCategories(items []models.MenuItem) []string {
	seen := make(map[string]bool)
	cats := []string{}
	for _, it := range items {
		if !seen[it.Category] {
			seen[it.Category] = true
			cats = append(cats, it.Category)
		}
	}
	return cats
}

// FilterByCategory keeps items of exactly category; "" and "all" keep everything.
func FilterByCategory(items []models.MenuItem, category string) []models.MenuItem {
	if category == "" || category == "all" {
		return items
	}
	out := make([]models.MenuItem, 0, len(items))
	for _, it := range items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// SortAdminItems returns a sorted copy. Unknown keys keep the input order.
func SortAdminItems(items []models.MenuItem, by string) []models.MenuItem {
	out := append([]models.MenuItem(nil), items...)
	col := newCollator()
	switch by {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool { return col.CompareString(out[i].Name, out[j].Name) < 0 })
	case SortByPrice:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortByCategory:
		sort.SliceStable(out, func(i, j int) bool { return col.CompareString(out[i].Category, out[j].Category) < 0 })
	}
	if out == nil {
		out = []models.MenuItem{}
	}
	return out
}
