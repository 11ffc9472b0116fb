package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/phrazzld/iscs-gateway/internal/domain"
)

// ReadBody reads the whole request body, refusing anything longer than
// limit bytes with domain.ErrBodyTooLarge. A non-positive limit disables
// the check.
func ReadBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	if limit > 0 {
		if r.ContentLength > limit {
			return nil, fmt.Errorf("%w: content length %d exceeds %d", domain.ErrBodyTooLarge, r.ContentLength, limit)
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: limit %d", domain.ErrBodyTooLarge, maxErr.Limit)
		}
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return body, nil
}

// DecodeObject parses body as a single JSON object. Numbers are kept as
// json.Number so ids survive with their original digits. Anything that is
// not exactly one object, including trailing data, is domain.ErrMalformedJSON.
func DecodeObject(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, domain.NewValidationError("", "invalid JSON", fmt.Errorf("%w: %v", domain.ErrMalformedJSON, err))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, domain.NewValidationError("", "trailing data after JSON value", domain.ErrMalformedJSON)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, domain.NewValidationError("", "body is not a JSON object", domain.ErrMalformedJSON)
	}
	return obj, nil
}
