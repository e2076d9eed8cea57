package datastore

import (
	"time"
)

// ItemCatalog maps to the item_catalogs table: one uploaded list of crop
// labels a session can be started from.
type ItemCatalog struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Language  string    `json:"language"`
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

// CatalogItem maps to the catalog_items table: one crop label within a
// catalog, ordered by serial number.
type CatalogItem struct {
	ID           int    `json:"id"`
	CatalogID    int    `json:"catalog_id"`
	SerialNumber int    `json:"serial_number"`
	Code         string `json:"code,omitempty"`
	Label        string `json:"label"`
	Language     string `json:"language"`
}
