package services

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"bar-website/models"
)

// CategoryOrder is the editorial order of the public menu. Categories not listed
// here follow all listed ones, in the order they first appear in the data.
var CategoryOrder = []string{"Fıçı Bira", "Şişe", "Atıştırmalık", "Shot", "Import", "Alkolsüz"}

const (
	happyHourTag   = "H.H"
	happyHourStart = 9
	happyHourEnd   = 19
	maxTableNumber = 99
)

// barZone is the bar's civil time (Istanbul, no DST).
var barZone = time.FixedZone("UTC+3", 3*60*60)

type sizeToken struct {
	token string
	rank  int
}

// Spelled-out sizes match anywhere in the name, longest first so "x-large"
// wins over "large".
var spelledSizes = []sizeToken{
	{"xxxx-large", 7}, {"xxxxlarge", 7}, {"4x-large", 7}, {"4xlarge", 7},
	{"xxx-large", 6}, {"xxxlarge", 6}, {"3x-large", 6}, {"3xlarge", 6},
	{"xx-large", 5}, {"xxlarge", 5}, {"2x-large", 5}, {"2xlarge", 5},
	{"x-large", 4}, {"xlarge", 4},
	{"medium", 2}, {"small", 1}, {"large", 3},
}

// Abbreviations only count as a whole word: "s" inside "Efes" or "Jack Daniel's"
// is not a size. Apostrophes are part of a word.
var abbreviatedSizes = map[string]int{
	"s": 1, "m": 2, "l": 3, "xl": 4,
	"2xl": 5, "xxl": 5,
	"3xl": 6, "xxxl": 6,
	"4xl": 7, "xxxxl": 7,
}

// SizeRank returns the size rank found in an item name, or 0 when the name
// carries no recognised size.
func SizeRank(name string) int {
	lower := strings.ToLower(name)
	for _, s := range spelledSizes {
		if strings.Contains(lower, s.token) {
			return s.rank
		}
	}
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '\'' && r != '’'
	})
	for _, w := range words {
		if rank, ok := abbreviatedSizes[w]; ok {
			return rank
		}
	}
	return 0
}

func newCollator() *collate.Collator {
	return collate.New(language.Turkish, collate.IgnoreCase)
}

// compareItems orders sized items by rank before unsized ones, which are
// compared by name using Turkish collation.
func compareItems(col *collate.Collator, a, b models.MenuItem) int {
	ra, rb := SizeRank(a.Name), SizeRank(b.Name)
	switch {
	case ra > 0 && rb > 0:
		if ra != rb {
			return ra - rb
		}
		return col.CompareString(a.Name, b.Name)
	case ra > 0:
		return -1
	case rb > 0:
		return 1
	}
	return col.CompareString(a.Name, b.Name)
}

// SortItems sorts one category's items in place.
func SortItems(items []models.MenuItem) {
	col := newCollator()
	sort.SliceStable(items, func(i, j int) bool {
		return compareItems(col, items[i], items[j]) < 0
	})
}

// CategoryRank is the position of category in CategoryOrder, or
// len(CategoryOrder) for categories outside the list.
func CategoryRank(category string) int {
	for i, c := range CategoryOrder {
		if c == category {
			return i
		}
	}
	return len(CategoryOrder)
}

// GroupByCategory partitions items by exact category, keeping first-seen order
// of categories and input order of items.
func GroupByCategory(items []models.MenuItem) []models.CategoryGroup {
	index := make(map[string]int)
	var groups []models.CategoryGroup
	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(groups)
			index[item.Category] = i
			groups = append(groups, models.CategoryGroup{Category: item.Category})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// OrderGroups sorts groups by CategoryRank. The sort is stable, so unknown
// categories keep first-appearance order.
func OrderGroups(groups []models.CategoryGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		return CategoryRank(groups[i].Category) < CategoryRank(groups[j].Category)
	})
}

// IsHappyHour reports whether t falls in [09:00, 19:00) bar time.
func IsHappyHour(t time.Time) bool {
	h := t.In(barZone).Hour()
	return h >= happyHourStart && h < happyHourEnd
}

// IsHappyHourItem reports whether the item is only served during happy hour.
func IsHappyHourItem(item models.MenuItem) bool {
	return strings.Contains(item.Name, happyHourTag)
}

// FilterHappyHour drops happy-hour-only items when now is outside the window.
func FilterHappyHour(items []models.MenuItem, now time.Time) []models.MenuItem {
	if IsHappyHour(now) {
		return items
	}
	kept := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if !IsHappyHourItem(item) {
			kept = append(kept, item)
		}
	}
	return kept
}

// ParseTableNumber reads the table query parameter. Only 0-99 is a table.
func ParseTableNumber(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 || n > maxTableNumber {
		return nil
	}
	return &n
}

// ShapeOptions are the runtime inputs of Shape.
type ShapeOptions struct {
	Now      time.Time
	Table    *int
	Category string // empty selects every category
}

// Shape turns a flat list of menu records into the grouped, ordered and
// filtered public menu. Table is display context only.
func Shape(items []models.MenuItem, opts ShapeOptions) models.MenuView {
	groups := GroupByCategory(items)
	OrderGroups(groups)

	view := models.MenuView{
		Groups:      []models.CategoryGroup{},
		Categories:  []string{},
		Selected:    opts.Category,
		TableNumber: opts.Table,
		HappyHour:   IsHappyHour(opts.Now),
	}
	for _, g := range groups {
		visible := FilterHappyHour(g.Items, opts.Now)
		if len(visible) == 0 {
			continue
		}
		SortItems(visible)
		view.Categories = append(view.Categories, g.Category)
		if opts.Category != "" && opts.Category != g.Category {
			continue
		}
		view.Groups = append(view.Groups, models.CategoryGroup{Category: g.Category, Items: visible})
	}
	return view
}
