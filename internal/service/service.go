// Package service contains the business rules of the API.
//
// The layers are:
//
//	Handler (HTTP)    → parses requests, writes responses
//	Service (rules)   → presence checks, existence checks, orchestration
//	Repository (data) → reads/writes rows
//
// Services take primitives and model values, never *http.Request, and
// return apperror values that the handler layer maps to status codes. Each
// exported method runs inside exactly one transaction obtained from
// repository.Store.WithTx; the transaction handle is passed down explicitly.
package service

import (
	"strings"

	"github.com/sakif/starwars-api/internal/apperror"
)

// requireField trims value and fails with a validation error when nothing is
// left.
func requireField(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperror.Required(field)
	}
	return value, nil
}
