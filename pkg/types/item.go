package types

import "slices"

type ProductId uint32

// Product is a catalog entry. Products are treated as immutable once loaded.
type Product struct {
	Id          ProductId `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Colors      []string  `json:"colors"`
	Sizes       []string  `json:"sizes"`
	Material    string    `json:"material"`
	Image       string    `json:"image,omitempty"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Subcategory string    `json:"subcategory,omitempty"`
}

func (p *Product) HasColor(color string) bool {
	return slices.Contains(p.Colors, color)
}

func (p *Product) HasSize(size string) bool {
	return slices.Contains(p.Sizes, size)
}
