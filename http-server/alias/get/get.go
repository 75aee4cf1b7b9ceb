package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"flotilla-golang/internal/storage"
)

type AliasProvider interface {
	GetAllAliases(ctx context.Context) ([]*storage.AssetAlias, error)
}

// GetAliasesAdmin lista la tabla de alias para el panel de administración.
func GetAliasesAdmin(log *slog.Logger, aliases AliasProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.alias.GetAliasesAdmin"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := aliases.GetAllAliases(ctx)
		if err != nil {
			log.Error("no se pudieron leer los alias", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, list)
	}
}
