package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"bar-website/models"
)

// MenuService serves the public menu.
type MenuService struct {
	store MenuStore
	log   *zap.Logger
	now   func() time.Time
}

func NewMenuService(store MenuStore, log *zap.Logger) *MenuService {
	return &MenuService{store: store, log: log, now: time.Now}
}

// MenuQuery carries the raw request parameters of the menu page.
type MenuQuery struct {
	Table    string
	Category string
}

// View fetches the menu and shapes it for display. A fetch failure is logged
// and yields an empty view; the error is returned too so handlers can show it.
func (s *MenuService) View(ctx context.Context, q MenuQuery) (models.MenuView, error) {
	opts := ShapeOptions{
		Now:      s.now(),
		Table:    ParseTableNumber(q.Table),
		Category: q.Category,
	}
	items, err := s.store.ListMenuItems(ctx, "category", "name")
	if err != nil {
		s.log.Error("fetch menu items", zap.Error(err))
		return Shape(nil, opts), err
	}
	return Shape(items, opts), nil
}
