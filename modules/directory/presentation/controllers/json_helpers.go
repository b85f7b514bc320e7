package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pulseworks/worktrack/pkg/httpapi"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	_ = httpapi.WriteJSON(w, status, payload)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	_ = httpapi.WriteError(w, status, code, message, nil)
}

func queryInt64(r *http.Request, name string) *int64 {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func pathInt64(vars map[string]string, name string) (int64, bool) {
	v, err := strconv.ParseInt(vars[name], 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
