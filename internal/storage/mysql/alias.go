package mysql

import (
	"context"
	"fmt"

	"flotilla-golang/internal/storage"
)

func (s *Storage) GetAssetAliases(ctx context.Context, sourceSystem string) ([]*storage.AssetAlias, error) {
	const op = "storage.alias.GetAssetAliases.sql"

	stmt := `
		SELECT id, source_system, external_name, asset_id
		FROM asset_aliases
		WHERE source_system = ?
	`

	rows, err := s.db.QueryContext(ctx, stmt, sourceSystem)
	if err != nil {
		return nil, fmt.Errorf("%s: error consultando alias %w", op, err)
	}
	defer rows.Close()

	var aliases []*storage.AssetAlias
	for rows.Next() {
		var a storage.AssetAlias
		if err := rows.Scan(&a.ID, &a.SourceSystem, &a.ExternalName, &a.AssetID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		aliases = append(aliases, &a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return aliases, nil
}

func (s *Storage) GetAllAliases(ctx context.Context) ([]*storage.AssetAlias, error) {
	const op = "storage.alias.GetAllAliases.sql"

	stmt := `
		SELECT id, source_system, external_name, asset_id
		FROM asset_aliases
		ORDER BY source_system, external_name
	`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var aliases []*storage.AssetAlias
	for rows.Next() {
		var a storage.AssetAlias
		if err := rows.Scan(&a.ID, &a.SourceSystem, &a.ExternalName, &a.AssetID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		aliases = append(aliases, &a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return aliases, nil
}

// UpsertAssetAlias — alta o corrección manual de un alias desde el panel admin.
func (s *Storage) UpsertAssetAlias(ctx context.Context, alias storage.AssetAlias) error {
	const op = "storage.alias.UpsertAssetAlias.sql"

	stmt := `
		INSERT INTO asset_aliases (source_system, external_name, asset_id)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE asset_id = VALUES(asset_id)
	`

	_, err := s.db.ExecContext(ctx, stmt, alias.SourceSystem, alias.ExternalName, alias.AssetID)
	if err != nil {
		return fmt.Errorf("%s: error guardando alias %w", op, err)
	}

	return nil
}
