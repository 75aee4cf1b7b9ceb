package storage

type BusinessUnit struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type Plant struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Code             string `json:"code"`
	BusinessUnitID   int    `json:"business_unit_id"`
	BusinessUnitName string `json:"business_unit_name"`
}

// Asset — equipo del registro interno, aplanado con planta y unidad de negocio.
type Asset struct {
	ID               int     `json:"id"`
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	PlantID          int     `json:"plant_id"`
	PlantName        string  `json:"plant_name"`
	PlantCode        string  `json:"plant_code"`
	BusinessUnitID   int     `json:"business_unit_id"`
	BusinessUnitName string  `json:"business_unit_name"`
	ModelCategory    *string `json:"model_category"`
	EquipmentType    string  `json:"equipment_type"`
}
