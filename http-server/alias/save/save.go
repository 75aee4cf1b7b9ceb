package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"flotilla-golang/internal/storage"
)

type AliasUpserter interface {
	UpsertAssetAlias(ctx context.Context, alias storage.AssetAlias) error
}

// SaveAliasAdmin da de alta o corrige un alias: la forma de fijar a mano un
// nombre externo problemático a su equipo, en lugar de confiar en el matcher.
func SaveAliasAdmin(log *slog.Logger, aliases AliasUpserter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.alias.SaveAliasAdmin"

		var req struct {
			SourceSystem string `json:"source_system"`
			ExternalName string `json:"external_name"`
			AssetID      int    `json:"asset_id"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "JSON inválido", http.StatusBadRequest)
			return
		}
		if req.SourceSystem == "" || req.ExternalName == "" || req.AssetID == 0 {
			http.Error(w, "source_system, external_name y asset_id son obligatorios", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		err := aliases.UpsertAssetAlias(ctx, storage.AssetAlias{
			SourceSystem: req.SourceSystem,
			ExternalName: req.ExternalName,
			AssetID:      req.AssetID,
		})
		if err != nil {
			log.Error("no se pudo guardar el alias", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}
