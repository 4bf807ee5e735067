package controllers

import (
	"net/http"
	"strconv"

	"github.com/pitlanehq/garage-backend/api/middleware"
	"github.com/pitlanehq/garage-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func PrivatePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "private", "status": "ok"}
		if userID := middleware.UserIDFromContext(r.Context()); userID > 0 {
			payload["user_id"] = strconv.FormatInt(userID, 10)
		}
		responses.WriteSuccess(w, payload)
	}
}
