package services

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"bar-website/models"
)

// MenuSeed is the YAML layout accepted by the seed command:
//
//	items:
//	  - name: Efes Pilsen 50cl
//	    category: Fıçı Bira
//	    price: 120
type MenuSeed struct {
	Items []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Price       string `yaml:"price"`
		Category    string `yaml:"category"`
		Image       string `yaml:"image"`
	} `yaml:"items"`
}

// ReadMenuSeed decodes a seed file into admin form payloads.
func ReadMenuSeed(r io.Reader) ([]models.MenuItemForm, error) {
	var seed MenuSeed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	forms := make([]models.MenuItemForm, 0, len(seed.Items))
	for _, it := range seed.Items {
		forms = append(forms, models.MenuItemForm{
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			Category:    it.Category,
			ImageURL:    it.Image,
		})
	}
	return forms, nil
}

// SeedMenu creates every item. It stops at the first invalid entry and
// reports its position; entries before it stay created.
func (s *AdminService) SeedMenu(ctx context.Context, forms []models.MenuItemForm) (int, error) {
	for i, f := range forms {
		if _, err := s.SaveMenuItem(ctx, "", f); err != nil {
			return i, fmt.Errorf("item %d (%q): %w", i+1, f.Name, err)
		}
	}
	return len(forms), nil
}
