package datastore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// CreateProviderConfig inserts a new provider config and returns its ID.
func CreateProviderConfig(pc *ProviderConfig) (int, error) {
	if DB == nil {
		return 0, errors.New("database connection not initialized")
	}

	query := `
		INSERT INTO provider_configs (name, api_key, api_secret, api_endpoint, other_configs, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	pc.CreatedAt = time.Now()
	pc.UpdatedAt = time.Now()

	otherConfigs := pc.OtherConfigs
	if len(otherConfigs) == 0 {
		otherConfigs = json.RawMessage("null")
	}

	var id int
	err := DB.QueryRow(
		query,
		pc.Name,
		pc.APIKey,
		pc.APISecret,
		pc.APIEndpoint,
		[]byte(otherConfigs),
		pc.CreatedAt,
		pc.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create provider config: %w", err)
	}
	pc.ID = id
	return id, nil
}

// GetProviderConfig retrieves a provider config by ID.
func GetProviderConfig(id int) (*ProviderConfig, error) {
	if DB == nil {
		return nil, errors.New("database connection not initialized")
	}

	query := `
		SELECT id, name, api_key, api_secret, api_endpoint, other_configs, created_at, updated_at
		FROM provider_configs
		WHERE id = $1
	`
	pc := &ProviderConfig{}
	var otherConfigs []byte
	err := DB.QueryRow(query, id).Scan(
		&pc.ID,
		&pc.Name,
		&pc.APIKey,
		&pc.APISecret,
		&pc.APIEndpoint,
		&otherConfigs,
		&pc.CreatedAt,
		&pc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("provider config with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to get provider config: %w", err)
	}
	if otherConfigs != nil && string(otherConfigs) != "null" {
		pc.OtherConfigs = json.RawMessage(otherConfigs)
	}
	return pc, nil
}

// GetProviderConfigByName retrieves a provider config by its unique name.
func GetProviderConfigByName(name string) (*ProviderConfig, error) {
	if DB == nil {
		return nil, errors.New("database connection not initialized")
	}

	query := `
		SELECT id, name, api_key, api_secret, api_endpoint, other_configs, created_at, updated_at
		FROM provider_configs
		WHERE name = $1
	`
	pc := &ProviderConfig{}
	var otherConfigs []byte
	err := DB.QueryRow(query, name).Scan(
		&pc.ID,
		&pc.Name,
		&pc.APIKey,
		&pc.APISecret,
		&pc.APIEndpoint,
		&otherConfigs,
		&pc.CreatedAt,
		&pc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("provider config %q not found: %w", name, err)
		}
		return nil, fmt.Errorf("failed to get provider config: %w", err)
	}
	if otherConfigs != nil && string(otherConfigs) != "null" {
		pc.OtherConfigs = json.RawMessage(otherConfigs)
	}
	return pc, nil
}

// ListProviderConfigs lists all provider configs, newest first.
func ListProviderConfigs() ([]*ProviderConfig, error) {
	if DB == nil {
		return nil, errors.New("database connection not initialized")
	}

	query := `
		SELECT id, name, api_key, api_secret, api_endpoint, other_configs, created_at, updated_at
		FROM provider_configs
		ORDER BY created_at DESC
	`
	rows, err := DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list provider configs: %w", err)
	}
	defer rows.Close()

	configs := []*ProviderConfig{}
	for rows.Next() {
		pc := &ProviderConfig{}
		var otherConfigs []byte
		if err := rows.Scan(
			&pc.ID,
			&pc.Name,
			&pc.APIKey,
			&pc.APISecret,
			&pc.APIEndpoint,
			&otherConfigs,
			&pc.CreatedAt,
			&pc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan provider config row: %w", err)
		}
		if otherConfigs != nil && string(otherConfigs) != "null" {
			pc.OtherConfigs = json.RawMessage(otherConfigs)
		}
		configs = append(configs, pc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration for provider configs: %w", err)
	}
	return configs, nil
}

// UpdateProviderConfig updates an existing provider config in place.
func UpdateProviderConfig(pc *ProviderConfig) error {
	if DB == nil {
		return errors.New("database connection not initialized")
	}

	query := `
		UPDATE provider_configs
		SET name = $1, api_key = $2, api_secret = $3, api_endpoint = $4, other_configs = $5, updated_at = $6
		WHERE id = $7
	`
	pc.UpdatedAt = time.Now()

	otherConfigs := pc.OtherConfigs
	if len(otherConfigs) == 0 {
		otherConfigs = json.RawMessage("null")
	}

	result, err := DB.Exec(
		query,
		pc.Name,
		pc.APIKey,
		pc.APISecret,
		pc.APIEndpoint,
		[]byte(otherConfigs),
		pc.UpdatedAt,
		pc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update provider config with ID %d: %w", pc.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for provider config ID %d: %w", pc.ID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("provider config with ID %d not found for update", pc.ID)
	}
	return nil
}

// DeleteProviderConfig deletes a provider config by ID.
func DeleteProviderConfig(id int) error {
	if DB == nil {
		return errors.New("database connection not initialized")
	}

	result, err := DB.Exec("DELETE FROM provider_configs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete provider config with ID %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for provider config ID %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("provider config with ID %d not found for deletion", id)
	}
	return nil
}
