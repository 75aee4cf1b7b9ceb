package storage

// AssetAlias — override exacto por sistema fuente: nombre externo → equipo.
type AssetAlias struct {
	ID           int    `json:"id"`
	SourceSystem string `json:"source_system"`
	ExternalName string `json:"external_name"`
	AssetID      int    `json:"asset_id"`
}
