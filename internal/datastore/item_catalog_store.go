package datastore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateItemCatalog inserts a catalog and its items in one transaction and
// returns the catalog ID. Items are stored in the given order.
func CreateItemCatalog(catalog *ItemCatalog, items []CatalogItem) (int, error) {
	if DB == nil {
		return 0, errors.New("database connection not initialized")
	}
	if len(items) == 0 {
		return 0, errors.New("catalog must contain at least one item")
	}

	tx, err := DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	catalog.CreatedAt = time.Now()
	catalog.ItemCount = len(items)

	var catalogID int
	err = tx.QueryRow(
		`INSERT INTO item_catalogs (name, language, item_count, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		catalog.Name,
		catalog.Language,
		catalog.ItemCount,
		catalog.CreatedAt,
	).Scan(&catalogID)
	if err != nil {
		return 0, fmt.Errorf("failed to create item catalog: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO catalog_items (catalog_id, serial_number, code, label, language)
		 VALUES ($1, $2, $3, $4, $5)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare catalog item insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		if _, err := stmt.Exec(catalogID, item.SerialNumber, item.Code, item.Label, item.Language); err != nil {
			return 0, fmt.Errorf("failed to insert catalog item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit item catalog: %w", err)
	}
	catalog.ID = catalogID
	return catalogID, nil
}

// GetItemCatalog retrieves a catalog header by ID.
func GetItemCatalog(id int) (*ItemCatalog, error) {
	if DB == nil {
		return nil, errors.New("database connection not initialized")
	}

	catalog := &ItemCatalog{}
	err := DB.QueryRow(
		`SELECT id, name, language, item_count, created_at
		 FROM item_catalogs
		 WHERE id = $1`, id).Scan(
		&catalog.ID,
		&catalog.Name,
		&catalog.Language,
		&catalog.ItemCount,
		&catalog.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item catalog with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to get item catalog: %w", err)
	}
	return catalog, nil
}

// ListItemCatalogs lists catalog headers, newest first.
func ListItemCatalogs() ([]*ItemCatalog, error) {
	if DB == nil {
		return nil, errors.New("database connection not initialized")
	}

	rows, err := DB.Query(
		`SELECT id, name, language, item_count, created_at
		 FROM item_catalogs
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list item catalogs: %w", err)
	}
	defer rows.Close()

	catalogs := []*ItemCatalog{}
	for rows.Next() {
		catalog := &ItemCatalog{}
		if err := rows.Scan(
			&catalog.ID,
			&catalog.Name,
			&catalog.Language,
			&catalog.ItemCount,
			&catalog.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item catalog row: %w", err)
		}
		catalogs = append(catalogs, catalog)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration for item catalogs: %w", err)
	}
	return catalogs, nil
}

// GetCatalogItems retrieves a catalog's items ordered by serial number.
func GetCatalogItems(catalogID int) ([]*CatalogItem, error) {
	if DB == nil {
		return nil, errors.New("database connection not initialized")
	}

	rows, err := DB.Query(
		`SELECT id, catalog_id, serial_number, code, label, language
		 FROM catalog_items
		 WHERE catalog_id = $1
		 ORDER BY serial_number ASC, id ASC`, catalogID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items for catalog %d: %w", catalogID, err)
	}
	defer rows.Close()

	items := []*CatalogItem{}
	for rows.Next() {
		item := &CatalogItem{}
		if err := rows.Scan(
			&item.ID,
			&item.CatalogID,
			&item.SerialNumber,
			&item.Code,
			&item.Label,
			&item.Language,
		); err != nil {
			return nil, fmt.Errorf("failed to scan catalog item row: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration for catalog items: %w", err)
	}
	return items, nil
}
