package models

import "time"

// MenuItem is a row of menu_items.
type MenuItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image,omitempty"` // public URL, empty when absent
	CreatedAt   time.Time `json:"createdAt"`
}

// Upload is an image file posted with the admin menu form.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// MenuItemForm is the raw admin form payload. Price stays text until validated.
type MenuItemForm struct {
	Name        string
	Description string
	Price       string
	Category    string
	Image       *Upload
	ImageURL    string // image of a new record; updates keep the stored image
}

// CategoryGroup is one accordion section of the public menu.
type CategoryGroup struct {
	Category string     `json:"category"`
	Items    []MenuItem `json:"items"`
}

// MenuView is the shaped menu handed to templates and the JSON API.
type MenuView struct {
	Groups      []CategoryGroup `json:"groups"`
	Categories  []string        `json:"categories"`
	Selected    string          `json:"selected,omitempty"`
	TableNumber *int            `json:"tableNumber"`
	HappyHour   bool            `json:"happyHour"`
}
