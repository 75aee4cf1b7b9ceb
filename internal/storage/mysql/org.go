package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"flotilla-golang/internal/storage"
)

func (s *Storage) GetBusinessUnits(ctx context.Context) ([]*storage.BusinessUnit, error) {
	const op = "storage.org.GetBusinessUnits.sql"

	stmt := `
		SELECT id, name, code
		FROM business_units
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: error consultando unidades de negocio %w", op, err)
	}
	defer rows.Close()

	var units []*storage.BusinessUnit
	for rows.Next() {
		var bu storage.BusinessUnit
		if err := rows.Scan(&bu.ID, &bu.Name, &bu.Code); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		units = append(units, &bu)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return units, nil
}

func (s *Storage) GetPlants(ctx context.Context, businessUnitID *int) ([]*storage.Plant, error) {
	const op = "storage.org.GetPlants.sql"

	stmt := `
		SELECT p.id, p.name, p.code, p.business_unit_id, b.name
		FROM plants p
		JOIN business_units b ON b.id = p.business_unit_id
	`
	var args []interface{}

	if businessUnitID != nil {
		stmt += " WHERE p.business_unit_id = ?"
		args = append(args, *businessUnitID)
	}
	stmt += " ORDER BY p.name"

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: error consultando plantas %w", op, err)
	}
	defer rows.Close()

	var plants []*storage.Plant
	for rows.Next() {
		var p storage.Plant
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.BusinessUnitID, &p.BusinessUnitName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		plants = append(plants, &p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return plants, nil
}

// GetAssets regresa el árbol aplanado: equipo + planta + unidad de negocio
// + categoría del modelo. Los filtros son opcionales.
func (s *Storage) GetAssets(ctx context.Context, businessUnitID, plantID *int) ([]*storage.Asset, error) {
	const op = "storage.org.GetAssets.sql"

	stmt := `
		SELECT a.id, a.code, a.name, a.plant_id, p.name, p.code,
		       p.business_unit_id, b.name, m.category
		FROM assets a
		JOIN plants p ON p.id = a.plant_id
		JOIN business_units b ON b.id = p.business_unit_id
		LEFT JOIN asset_models m ON m.id = a.model_id
		WHERE a.active = 1
	`
	var args []interface{}

	if businessUnitID != nil {
		stmt += " AND p.business_unit_id = ?"
		args = append(args, *businessUnitID)
	}
	if plantID != nil {
		stmt += " AND a.plant_id = ?"
		args = append(args, *plantID)
	}
	stmt += " ORDER BY a.code"

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: error consultando equipos %w", op, err)
	}
	defer rows.Close()

	var assets []*storage.Asset
	for rows.Next() {
		var a storage.Asset
		var category sql.NullString

		err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.PlantID, &a.PlantName, &a.PlantCode,
			&a.BusinessUnitID, &a.BusinessUnitName, &category)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if category.Valid {
			c := category.String
			a.ModelCategory = &c
		}

		assets = append(assets, &a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error escaneando equipos %w", op, err)
	}

	return assets, nil
}
