package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/challenges", handler.ListChallenges)
	mux.HandleFunc("GET /v1/ranking", handler.GetRanking)
	mux.HandleFunc("GET /v1/state", handler.GetState)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/teams/{teamID}/challenges/{challengeID}/toggle", RequireAdminToken(adminToken, http.HandlerFunc(handler.ToggleCompletion)))
	mux.Handle("POST /v1/challenges/{challengeID}/disabled/toggle", RequireAdminToken(adminToken, http.HandlerFunc(handler.ToggleDisabled)))
	mux.Handle("POST /v1/teams/{teamID}/players/{playerID}/points", RequireAdminToken(adminToken, http.HandlerFunc(handler.AddPersonalPoints)))
	mux.Handle("POST /v1/players/swap", RequireAdminToken(adminToken, http.HandlerFunc(handler.SwapPlayers)))
	mux.Handle("POST /v1/session/suspense", RequireAdminToken(adminToken, http.HandlerFunc(handler.SetSuspense)))
	mux.Handle("POST /v1/session/pause", RequireAdminToken(adminToken, http.HandlerFunc(handler.StartPause)))
	mux.Handle("DELETE /v1/session/pause", RequireAdminToken(adminToken, http.HandlerFunc(handler.CancelPause)))
	mux.Handle("POST /v1/reset", RequireAdminToken(adminToken, http.HandlerFunc(handler.Reset)))
}
