package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"coupon-generator/internal/model"
	"coupon-generator/pkg/apierror"
)

// maxBodyBytes bounds JSON request bodies. A 500-code batch stays well under it.
const maxBodyBytes = 1 << 20

func writeSuccess(w http.ResponseWriter, status int, data any, meta *model.Meta) {
	writeJSON(w, status, model.APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// writePartial answers 200 with success=false so clients still get the data
// describing what was created.
func writePartial(w http.ResponseWriter, data any, message string) {
	writeJSON(w, apierror.StatusFor(apierror.KindPartialBatch), model.APIResponse{
		Success: false,
		Data:    data,
		Error:   message,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		message = apiErr.Message
		if apiErr.Kind == apierror.KindInternal || apiErr.Kind == apierror.KindUpstream {
			slog.Error("request failed", "kind", apiErr.Kind, "error", err.Error())
		}
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid username or password"
	case errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = "Unauthorized"
	case errors.Is(err, model.ErrForbidden):
		status = http.StatusForbidden
		message = "Insufficient permissions"
	case errors.Is(err, model.ErrBrandNotFound):
		status = http.StatusNotFound
		message = "Brand not found"
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		message = "Invalid input"
	default:
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	writeJSON(w, status, model.APIResponse{Success: false, Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body model.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apierror.New(apierror.KindValidation, "Request body too large", "", http.StatusRequestEntityTooLarge)
		}
		if errors.Is(err, io.EOF) {
			return apierror.Validation("Request body is required")
		}
		return apierror.Validation("Invalid JSON body")
	}

	return nil
}

func apiResponse(success bool, data any, message string) model.APIResponse {
	return model.APIResponse{Success: success, Data: data, Error: message}
}
