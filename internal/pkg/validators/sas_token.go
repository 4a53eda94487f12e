// Package validators holds custom validator/v10 rules shared by the config structs.
package validators

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SASTokenTag is the struct tag SASTokenValidation is registered under
const SASTokenTag = "sas_token"

// SASTokenValidation accepts a storage SAS query string, with or without the leading
// question mark, that carries at least a service version and a signature.
func SASTokenValidation(fl validator.FieldLevel) bool {
	token := strings.TrimPrefix(fl.Field().String(), "?")
	if token == "" {
		return false
	}

	query, err := url.ParseQuery(token)
	if err != nil {
		return false
	}
	return query.Get("sv") != "" && query.Get("sig") != ""
}
