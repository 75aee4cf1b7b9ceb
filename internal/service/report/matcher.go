package report

import (
	"regexp"
	"strings"

	"flotilla-golang/internal/storage"
)

// Cadena de estrategias del resolvedor de nombres externos. Cada estrategia
// es una función pura de (nombre, planta, snapshot); gana la primera que
// encuentre equipo. Si ninguna gana, el llamador crea un bucket virtual.

const (
	// normalizeCode no puede acortar más de esto contra el nombre original;
	// sin el tope "CR-15" colapsaría a "CR" y se mezclarían equipos distintos
	maxNormalizeShrink = 2

	matchAlias          = "alias"
	matchExact          = "exact"
	matchNormalized     = "normalized"
	matchPrefix         = "prefix"
	matchTrimExact      = "trim-exact"
	matchTrimNormalized = "trim-normalized"
)

var (
	dashSuffixRe  = regexp.MustCompile(`-[A-Za-z0-9]+$`)
	gluedLetterRe = regexp.MustCompile(`[0-9][A-Za-z]$`)
)

type matchResult struct {
	asset  *storage.Asset
	method string
}

type matchStrategy func(name string, plant *storage.Plant, snap *snapshot) *matchResult

var strategies = []matchStrategy{
	matchAliasOrExactCode,
	matchNormalizedBucket,
	matchSuffixTrim,
}

// resolveAsset corre la cadena en orden. nil = sin match (bucket virtual).
func (snap *snapshot) resolveAsset(externalName string, plant *storage.Plant) *matchResult {
	name := strings.TrimSpace(externalName)
	if name == "" {
		return nil
	}
	for _, strategy := range strategies {
		if res := strategy(name, plant, snap); res != nil {
			return res
		}
	}
	return nil
}

// normalizeCode quita un sufijo alfanumérico separado por guion y después una
// letra pegada al último dígito ("CR-17B" → "CR-17"). Cada paso se acepta
// solo si el acumulado no acorta el nombre más de maxNormalizeShrink.
func normalizeCode(name string) string {
	out := name

	if loc := dashSuffixRe.FindStringIndex(out); loc != nil {
		candidate := out[:loc[0]]
		if len(name)-len(candidate) <= maxNormalizeShrink {
			out = candidate
		}
	}

	if gluedLetterRe.MatchString(out) {
		candidate := out[:len(out)-1]
		if len(name)-len(candidate) <= maxNormalizeShrink {
			out = candidate
		}
	}

	return out
}

func matchAliasOrExactCode(name string, _ *storage.Plant, snap *snapshot) *matchResult {
	lower := strings.ToLower(name)

	if id, ok := snap.aliases[lower]; ok {
		if asset, ok := snap.byID[id]; ok {
			return &matchResult{asset: asset, method: matchAlias}
		}
	}

	if asset, ok := snap.byCodeLower[lower]; ok {
		return &matchResult{asset: asset, method: matchExact}
	}

	return nil
}

func matchNormalizedBucket(name string, plant *storage.Plant, snap *snapshot) *matchResult {
	key := strings.ToLower(normalizeCode(name))
	bucket, ok := snap.buckets[key]
	if !ok || len(bucket) == 0 {
		return nil
	}
	return &matchResult{asset: pickCandidate(bucket, name, plant), method: matchNormalized}
}

// matchSuffixTrim: primero sondeo directo por prefijo (algún código del
// registro empieza con el nombre completo), si no, recorte iterativo de un
// carácter a la vez probando exacto y bucket normalizado en cada recorte.
func matchSuffixTrim(name string, plant *storage.Plant, snap *snapshot) *matchResult {
	lower := strings.ToLower(name)

	for _, a := range snap.assets {
		if strings.HasPrefix(strings.ToLower(a.Code), lower) {
			return &matchResult{asset: a, method: matchPrefix}
		}
	}

	for l := len(name) - 1; l >= 3; l-- {
		sub := strings.TrimSpace(name[:l])
		if len(sub) <= 2 {
			break
		}
		subLower := strings.ToLower(sub)

		if asset, ok := snap.byCodeLower[subLower]; ok {
			return &matchResult{asset: asset, method: matchTrimExact}
		}

		key := strings.ToLower(normalizeCode(sub))
		if bucket, ok := snap.buckets[key]; ok && len(bucket) > 0 {
			return &matchResult{asset: pickCandidate(bucket, sub, plant), method: matchTrimNormalized}
		}
	}

	return nil
}

// pickCandidate desempata dentro de un bucket: código que es prefijo del
// nombre externo > misma planta > primero (los buckets ya vienen ordenados
// por código).
func pickCandidate(bucket []*storage.Asset, name string, plant *storage.Plant) *storage.Asset {
	lower := strings.ToLower(name)

	for _, c := range bucket {
		if code := strings.ToLower(c.Code); code != "" && strings.HasPrefix(lower, code) {
			return c
		}
	}
	if plant != nil {
		for _, c := range bucket {
			if c.PlantID == plant.ID {
				return c
			}
		}
	}
	return bucket[0]
}
