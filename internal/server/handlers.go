package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kenjiO/repo-activity/pkg/errors"
	"github.com/kenjiO/repo-activity/pkg/integrations/github"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func latestCommitHandler(f Fetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repo := chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "name")

		date, err := f.LatestCommitDate(r.Context(), repo)
		if err != nil {
			logFailure(r, repo, err)
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, github.CommitActivity{Repo: repo, LatestCommit: date})
	}
}

// StatusFor maps a lookup error to the HTTP status returned to clients.
//
//	INVALID_ARGUMENT              400
//	HTTP_ERROR with upstream 404  404
//	HTTP_ERROR, UNEXPECTED_FORMAT 502
//	TRANSPORT_ERROR               504 if the deadline passed, else 502
func StatusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidArgument:
		return http.StatusBadRequest
	case errors.ErrCodeHTTP:
		if errors.HTTPStatus(err) == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	case errors.ErrCodeUnexpectedFormat:
		return http.StatusBadGateway
	case errors.ErrCodeTransport:
		if stderrors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := string(errors.GetCode(err))
	if code == "" {
		code = "INTERNAL"
	}
	writeJSON(w, StatusFor(err), errorResponse{Error: errors.UserMessage(err), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
