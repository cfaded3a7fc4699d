package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/campusmart/storefront/api/responses"
	"github.com/campusmart/storefront/api/validators"
	"github.com/campusmart/storefront/internal/settings"
	pkgerrors "github.com/campusmart/storefront/pkg/errors"
	"github.com/campusmart/storefront/pkg/logger"
)

type updateSettingsRequest struct {
	BankName          *string          `json:"bankName" validate:"omitempty,max=120"`
	BankAccountNumber *string          `json:"bankAccountNumber" validate:"omitempty,max=32"`
	AccountHolderName *string          `json:"accountHolderName" validate:"omitempty,max=120"`
	Hostels           *[]string        `json:"hostels" validate:"omitempty,max=200,dive,max=120"`
	SPF               *decimal.Decimal `json:"spf"`
	WhatsappNumber    *string          `json:"whatsappNumber" validate:"omitempty,max=32"`
}

func GetSettings(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}
		current, err := svc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, current)
	}
}

// GetWhatsapp returns only the support WhatsApp number.
func GetWhatsapp(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}
		current, err := svc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"whatsappNumber": current.WhatsappNumber})
	}
}

// AdminUpdateSettings applies a partial patch; omitted fields keep their
// stored values.
func AdminUpdateSettings(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}
		var body updateSettingsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.Update(r.Context(), settings.UpdateInput{
			BankName:          body.BankName,
			BankAccountNumber: body.BankAccountNumber,
			AccountHolderName: body.AccountHolderName,
			Hostels:           body.Hostels,
			SPF:               body.SPF,
			WhatsappNumber:    body.WhatsappNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}
