package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/quilitane/cunilympiades/internal/domain/challenge"
	"github.com/quilitane/cunilympiades/internal/domain/game"
	"github.com/quilitane/cunilympiades/internal/domain/team"
	"github.com/quilitane/cunilympiades/internal/infrastructure/repository/memory"
	"github.com/quilitane/cunilympiades/internal/platform/logging"
	"github.com/quilitane/cunilympiades/internal/usecase"
)

const testAdminToken = "s3cret"

var testNow = time.Date(2026, 7, 4, 12, 0, 0, 0, time.UTC)

func handlerTestDataset() game.Dataset {
	return game.Dataset{
		Teams: []team.Team{
			{
				ID: "t1", Name: "Alpha", Color: "#f00",
				Players: []team.Player{{ID: "p1", FirstName: "Ana", LastName: "One"}},
			},
			{
				ID: "t2", Name: "Beta", Color: "#00f",
				Players: []team.Player{{ID: "p2", FirstName: "Ben", LastName: "Two"}},
			},
		},
		Challenges: []challenge.Challenge{
			{ID: "c-open", Name: "Open", Points: 10, Type: challenge.TypeNormal, AvailableAt: testNow.Add(-time.Hour)},
			{ID: "c-later", Name: "Later", Points: 15, Type: challenge.TypeNormal, AvailableAt: testNow.Add(time.Hour)},
			{ID: "c-off", Name: "Off", Points: 20, Type: challenge.TypeNormal, AvailableAt: testNow.Add(-time.Hour), Disabled: true},
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewGameStore(handlerTestDataset())
	sessions := memory.NewSessionStore()
	logger := logging.NewNop()

	scoring, err := usecase.NewScoringService(store, sessions, usecase.ScoringConfig{}, nil, logger)
	if err != nil {
		t.Fatalf("build scoring service: %v", err)
	}
	t.Cleanup(scoring.Close)
	ranking := usecase.NewRankingService(store, sessions, logger)
	session := usecase.NewSessionService(store, sessions, logger)

	handler := NewHandler(scoring, ranking, session, logger)
	handler.now = func() time.Time { return testNow }

	return NewRouter(handler, logger, testAdminToken, []string{"*"})
}

func doJSON(t *testing.T, router http.Handler, method, path, body string, admin bool) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("X-Admin-Token", testAdminToken)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("%s %s: unmarshal response: %v (body=%s)", method, path, err, rec.Body.String())
	}
	return rec.Code, envelope
}

func dataOf(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()

	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %v", envelope["data"])
	}
	return data
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	code, envelope := doJSON(t, router, http.MethodGet, "/healthz", "", false)
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	if got := dataOf(t, envelope)["status"]; got != "ok" {
		t.Fatalf("expected status ok, got %v", got)
	}
}

func TestRouter_ListTeams(t *testing.T) {
	router := newTestRouter(t)

	code, envelope := doJSON(t, router, http.MethodGet, "/v1/teams", "", false)
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	teams, ok := envelope["data"].([]any)
	if !ok || len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %v", envelope["data"])
	}
}

func TestRouter_ListChallenges_PlayerAudienceFilter(t *testing.T) {
	router := newTestRouter(t)

	code, envelope := doJSON(t, router, http.MethodGet, "/v1/challenges", "", false)
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	if all, _ := envelope["data"].([]any); len(all) != 3 {
		t.Fatalf("admins see every challenge, got %v", envelope["data"])
	}

	code, envelope = doJSON(t, router, http.MethodGet, "/v1/challenges?audience=player", "", false)
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	visible, _ := envelope["data"].([]any)
	if len(visible) != 1 {
		t.Fatalf("players see only available enabled challenges, got %v", envelope["data"])
	}
	first, _ := visible[0].(map[string]any)
	if first["id"] != "c-open" {
		t.Fatalf("expected c-open, got %v", first["id"])
	}
}

func TestRouter_ToggleCompletion_RequiresAdminToken(t *testing.T) {
	router := newTestRouter(t)

	code, _ := doJSON(t, router, http.MethodPost, "/v1/teams/t1/challenges/c-open/toggle", "", false)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", code)
	}

	code, envelope := doJSON(t, router, http.MethodPost, "/v1/teams/t1/challenges/c-open/toggle", "", true)
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	data := dataOf(t, envelope)
	if data["applied"] != true {
		t.Fatalf("expected applied mutation, got %v", data)
	}
	if _, ok := data["teams"].([]any); !ok {
		t.Fatalf("expected teams in mutation result")
	}
	if _, ok := data["challenges"].([]any); !ok {
		t.Fatalf("expected challenges in mutation result")
	}
}

func TestRouter_ToggleCompletion_RejectionIsData(t *testing.T) {
	router := newTestRouter(t)

	code, envelope := doJSON(t, router, http.MethodPost, "/v1/teams/t1/challenges/c-off/toggle", "", true)
	if code != http.StatusOK {
		t.Fatalf("precondition failures respond 200, got %d", code)
	}
	data := dataOf(t, envelope)
	if data["applied"] != false || data["reason"] != "challengeDisabled" {
		t.Fatalf("expected challengeDisabled rejection, got %v", data)
	}
}

func TestRouter_AddPersonalPoints_ValidatesBody(t *testing.T) {
	router := newTestRouter(t)

	code, _ := doJSON(t, router, http.MethodPost, "/v1/teams/t1/players/p1/points", `{"amount": 0}`, true)
	if code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for non-positive amount, got %d", code)
	}

	code, envelope := doJSON(t, router, http.MethodPost, "/v1/teams/t1/players/p1/points", `{"amount": 5}`, true)
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	if data := dataOf(t, envelope); data["applied"] != true {
		t.Fatalf("expected applied mutation, got %v", data)
	}
}

func TestRouter_SwapPlayers(t *testing.T) {
	router := newTestRouter(t)

	code, envelope := doJSON(t, router, http.MethodPost, "/v1/players/swap",
		`{"playerId":"p1","targetTeamId":"t2","targetPlayerId":"p2"}`, true)
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	if data := dataOf(t, envelope); data["applied"] != true {
		t.Fatalf("expected applied swap, got %v", data)
	}

	code, _ = doJSON(t, router, http.MethodPost, "/v1/players/swap", `{"playerId":"p1"}`, true)
	if code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for incomplete body, got %d", code)
	}
}

func TestRouter_RankingMasksTotalsDuringSuspense(t *testing.T) {
	router := newTestRouter(t)

	code, envelope := doJSON(t, router, http.MethodGet, "/v1/ranking", "", false)
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	data := dataOf(t, envelope)
	if data["suspense"] != false {
		t.Fatalf("suspense must start off")
	}
	entries, _ := data["entries"].([]any)
	first, _ := entries[0].(map[string]any)
	if _, ok := first["total"]; !ok {
		t.Fatalf("totals must be visible outside suspense")
	}

	if code, _ := doJSON(t, router, http.MethodPost, "/v1/session/suspense", `{"active": true}`, true); code != http.StatusOK {
		t.Fatalf("activate suspense: status %d", code)
	}

	_, envelope = doJSON(t, router, http.MethodGet, "/v1/ranking", "", false)
	data = dataOf(t, envelope)
	if data["suspense"] != true {
		t.Fatalf("expected suspense flag on")
	}
	entries, _ = data["entries"].([]any)
	for _, raw := range entries {
		entry, _ := raw.(map[string]any)
		if _, ok := entry["total"]; ok {
			t.Fatalf("totals must be hidden during suspense, got %v", entry)
		}
	}
}

func TestRouter_PauseLifecycle(t *testing.T) {
	router := newTestRouter(t)

	code, _ := doJSON(t, router, http.MethodPost, "/v1/session/pause", `{"resumeAt":"not-a-time"}`, true)
	if code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for malformed resumeAt, got %d", code)
	}

	resumeAt := testNow.Add(30 * time.Minute).Format(time.RFC3339)
	code, envelope := doJSON(t, router, http.MethodPost, "/v1/session/pause", `{"resumeAt":"`+resumeAt+`"}`, true)
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	data := dataOf(t, envelope)
	if data["paused"] != true || data["pauseUntil"] == nil {
		t.Fatalf("expected active pause, got %v", data)
	}

	code, envelope = doJSON(t, router, http.MethodDelete, "/v1/session/pause", "", true)
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	data = dataOf(t, envelope)
	if data["paused"] != false || data["pauseUntil"] != nil {
		t.Fatalf("expected cleared pause, got %v", data)
	}

	_, envelope = doJSON(t, router, http.MethodGet, "/v1/state", "", false)
	if data := dataOf(t, envelope); data["paused"] != false {
		t.Fatalf("state must reflect the cancellation, got %v", data)
	}
}

func TestRouter_Reset(t *testing.T) {
	router := newTestRouter(t)

	if code, _ := doJSON(t, router, http.MethodPost, "/v1/teams/t1/challenges/c-open/toggle", "", true); code != http.StatusOK {
		t.Fatalf("setup toggle: status %d", code)
	}

	if code, _ := doJSON(t, router, http.MethodPost, "/v1/reset", "", true); code != http.StatusOK {
		t.Fatalf("reset: expected status 200")
	}

	_, envelope := doJSON(t, router, http.MethodGet, "/v1/teams", "", false)
	teams, _ := envelope["data"].([]any)
	for _, raw := range teams {
		tm, _ := raw.(map[string]any)
		if points, _ := tm["points"].(float64); points != 0 {
			t.Fatalf("expected zeroed points after reset, got %v", tm)
		}
	}
}
