package handlers

import (
	"net/http"
	"strconv"

	"awardflow/internal/middleware"
	"awardflow/internal/models"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := JSONResponse(w, payload); err != nil {
		w.Write([]byte(`{"error":"Internal server error"}`))
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint(v), err
}

// pathID parses a numeric path parameter
func pathID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// actor returns the authenticated user's id and role from the request context
func actor(r *http.Request) (uint, models.Role, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		return 0, "", false
	}
	role, ok := middleware.GetUserRole(r)
	if !ok {
		return 0, "", false
	}
	return userID, role, true
}

func getIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
