package controllers

import (
	"errors"
	"net/http"

	"github.com/lintang-b-s/transit-access-link/pkg"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (api *accessLinkAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var resp errorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	if err := api.writeJSON(w, status, envelope{"error": resp.Error}, nil); err != nil {
		api.log.Error("failed to write error response", zap.String("path", r.URL.Path), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *accessLinkAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, "bad_request", err.Error())
}

func (api *accessLinkAPI) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusNotFound, "not_found", err.Error())
}

func (api *accessLinkAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("internal server error", zap.String("path", r.URL.Path), zap.Error(err))
	api.errorResponse(w, r, http.StatusInternalServerError, "internal_server_error", pkg.MessageInternalServerError)
}

// ErrorResponse picks the status from the error code carried by err.
func (api *accessLinkAPI) ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch code := pkg.ErrorCode(err); {
	case errors.Is(code, pkg.ErrNotFound):
		api.NotFoundResponse(w, r, err)
	case errors.Is(code, pkg.ErrBadParamInput),
		errors.Is(code, pkg.ErrInvalidUnitSystem),
		errors.Is(code, pkg.ErrDataError):
		api.BadRequestResponse(w, r, err)
	default:
		api.ServerErrorResponse(w, r, err)
	}
}
