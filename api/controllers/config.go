package controllers

import (
	"io"
	"net/http"

	"github.com/mitienda/storefront-backend/api/responses"
	"github.com/mitienda/storefront-backend/api/validators"
	"github.com/mitienda/storefront-backend/internal/businessconfig"
	pkgerrors "github.com/mitienda/storefront-backend/pkg/errors"
	"github.com/mitienda/storefront-backend/pkg/logger"
)

const maxImportBytes = 1 << 20

type changeBusinessTypeRequest struct {
	BusinessTypeID string `json:"business_type_id" validate:"required"`
}

// GetBusinessConfig serves the active configuration.
func GetBusinessConfig(store *businessconfig.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.Get())
	}
}

// UpdateBusinessConfig applies a partial configuration update.
func UpdateBusinessConfig(store *businessconfig.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch businessconfig.Patch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cfg, err := store.Update(r.Context(), patch)
		if err != nil && !pkgerrors.IsWarning(err) {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessWithWarning(w, cfg, err)
	}
}

// ChangeBusinessType switches the storefront vertical.
func ChangeBusinessType(store *businessconfig.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload changeBusinessTypeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cfg, err := store.ChangeBusinessType(r.Context(), payload.BusinessTypeID)
		if err != nil && !pkgerrors.IsWarning(err) {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessWithWarning(w, cfg, err)
	}
}

// ResetBusinessConfig reverts the storefront to the default setup.
func ResetBusinessConfig(store *businessconfig.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := store.Reset(r.Context())
		if err != nil && !pkgerrors.IsWarning(err) {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessWithWarning(w, cfg, err)
	}
}

// ExportBusinessConfig streams the configuration as a JSON document.
func ExportBusinessConfig(store *businessconfig.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := store.Export()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="business-configuration.json"`)
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

// ImportBusinessConfig replaces the configuration from an exported
// document.
func ImportBusinessConfig(store *businessconfig.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading import payload"))
			return
		}

		cfg, err := store.Import(r.Context(), data)
		if err != nil && !pkgerrors.IsWarning(err) {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessWithWarning(w, cfg, err)
	}
}

// ListBusinessTypes serves the registry of available verticals.
func ListBusinessTypes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"business_types": businessconfig.AvailableBusinessTypes(),
			"default":        businessconfig.DefaultBusinessTypeID,
		})
	}
}

// GetTerminology serves the merged vocabulary for the active type.
func GetTerminology(store *businessconfig.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.Terminology())
	}
}

// GetConfiguredCategories serves the active category list.
func GetConfiguredCategories(store *businessconfig.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"categories": store.Categories()})
	}
}
