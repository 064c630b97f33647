package common

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateAndDecode decodes a JSON body into payload and runs struct
// validation. On failure it writes a 400 response and returns false, so
// malformed input never reaches the service layer.
func ValidateAndDecode(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}

	if err := validate.Struct(payload); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		http.Error(w, validationErrors.Error(), http.StatusBadRequest)
		return false
	}

	return true
}

// ValidateStruct runs struct validation without decoding, for payloads
// assembled from form values rather than a JSON body.
func ValidateStruct(payload interface{}) error {
	return validate.Struct(payload)
}
