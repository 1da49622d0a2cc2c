package controllers

import (
	"context"
	"net/http"
	"sort"

	"github.com/vendaflow/backoffice/api/responses"
	"github.com/vendaflow/backoffice/internal/users"
	"github.com/vendaflow/backoffice/pkg/db/models"
	pkgerrors "github.com/vendaflow/backoffice/pkg/errors"
	"github.com/vendaflow/backoffice/pkg/logger"
	"gorm.io/gorm"
)

const debugUserLimit = 100

type userLister interface {
	List(ctx context.Context, limit int) ([]models.User, error)
}

// DebugUsers lists accounts with their password digests stripped. Mounted
// outside production only.
func DebugUsers(repo userLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := repo.List(r.Context(), debugUserLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users"))
			return
		}
		responses.WriteSuccess(w, users.FromModels(rows))
	}
}

// DebugTables lists the tables of the connected schema.
func DebugTables(db *gorm.DB, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tables, err := db.WithContext(r.Context()).Migrator().GetTables()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list tables"))
			return
		}
		sort.Strings(tables)
		responses.WriteSuccess(w, tables)
	}
}
