package api

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/iscs-gateway/internal/api/shared"
	"github.com/phrazzld/iscs-gateway/internal/domain"
	"github.com/phrazzld/iscs-gateway/internal/validation"
)

// idParam is the path parameter holding an entity id.
const idParam = "id"

// getPathID returns the entity id from the route with leading zeros removed.
// The route pattern guarantees the parameter is all digits.
func getPathID(r *http.Request) string {
	return domain.NormalizeDigits(chi.URLParam(r, idParam))
}

// checkBodyID validates the optional body of a lookup. A blank body is
// accepted. Otherwise it must be a JSON object whose id is all digits and
// names the same entity as pathID.
func checkBodyID(body []byte, pathID string) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	payload, err := shared.DecodeObject(body)
	if err != nil {
		return err
	}

	raw, ok := payload[domain.FieldID]
	if !ok || raw == nil {
		return domain.NewValidationError(domain.FieldID, "is required", domain.ErrMissingField)
	}

	text, ok := validation.IDText(raw)
	if !ok {
		return domain.NewValidationError(domain.FieldID, "must be a non-negative integer", domain.ErrInvalidID)
	}

	if domain.NormalizeDigits(text) != pathID {
		return domain.NewValidationError(domain.FieldID, "does not match path", domain.ErrIDMismatch)
	}
	return nil
}
