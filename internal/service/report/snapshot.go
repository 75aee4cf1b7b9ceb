package report

import (
	"sort"
	"strings"

	"flotilla-golang/internal/storage"
)

const (
	equipmentPump          = "Bomba"
	equipmentUncategorized = "Sin categoría"
)

// snapshot es la foto inmutable del registro contra la que se resuelven los
// nombres externos. Se construye una vez por reporte; el matcher solo lee.
type snapshot struct {
	assets       []*storage.Asset
	byID         map[int]*storage.Asset
	byCodeLower  map[string]*storage.Asset
	buckets      map[string][]*storage.Asset
	plantsByID   map[int]*storage.Plant
	plantsByCode map[string]*storage.Plant
	aliases      map[string]int
}

// equipmentType clasifica el equipo: prefijo BP = bomba de concreto, si no,
// la categoría del modelo, si no hay modelo queda sin categoría.
func equipmentType(a *storage.Asset) string {
	if len(a.Code) >= 2 && strings.EqualFold(a.Code[:2], "BP") {
		return equipmentPump
	}
	if a.ModelCategory != nil && *a.ModelCategory != "" {
		return *a.ModelCategory
	}
	return equipmentUncategorized
}

func buildSnapshot(assets []*storage.Asset, plants []*storage.Plant, aliases []*storage.AssetAlias) *snapshot {
	snap := &snapshot{
		assets:       make([]*storage.Asset, 0, len(assets)),
		byID:         make(map[int]*storage.Asset, len(assets)),
		byCodeLower:  make(map[string]*storage.Asset, len(assets)),
		buckets:      make(map[string][]*storage.Asset),
		plantsByID:   make(map[int]*storage.Plant, len(plants)),
		plantsByCode: make(map[string]*storage.Plant, len(plants)),
		aliases:      make(map[string]int, len(aliases)),
	}

	for _, p := range plants {
		snap.plantsByID[p.ID] = p
		snap.plantsByCode[strings.ToLower(strings.TrimSpace(p.Code))] = p
	}

	for _, a := range assets {
		a.EquipmentType = equipmentType(a)
		snap.assets = append(snap.assets, a)
		snap.byID[a.ID] = a

		code := strings.ToLower(strings.TrimSpace(a.Code))
		if code == "" {
			continue
		}
		if _, ok := snap.byCodeLower[code]; !ok {
			snap.byCodeLower[code] = a
		}

		key := strings.ToLower(normalizeCode(strings.TrimSpace(a.Code)))
		snap.buckets[key] = append(snap.buckets[key], a)
	}

	// orden por código dentro de cada bucket: "primer candidato" tiene que
	// ser el mismo en cada corrida
	for _, bucket := range snap.buckets {
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].Code < bucket[j].Code })
	}
	sort.Slice(snap.assets, func(i, j int) bool { return snap.assets[i].Code < snap.assets[j].Code })

	for _, al := range aliases {
		snap.aliases[strings.ToLower(strings.TrimSpace(al.ExternalName))] = al.AssetID
	}

	return snap
}
