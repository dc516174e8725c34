package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/quilitane/cunilympiades/internal/domain/challenge"
	"github.com/quilitane/cunilympiades/internal/platform/logging"
	"github.com/quilitane/cunilympiades/internal/usecase"
)

type Handler struct {
	scoringService *usecase.ScoringService
	rankingService *usecase.RankingService
	sessionService *usecase.SessionService
	logger         *logging.Logger
	validator      *validator.Validate
	now            func() time.Time
}

func NewHandler(
	scoringService *usecase.ScoringService,
	rankingService *usecase.RankingService,
	sessionService *usecase.SessionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		scoringService: scoringService,
		rankingService: rankingService,
		sessionService: sessionService,
		logger:         logger,
		validator:      validator.New(),
		now:            time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	dataset, err := h.scoringService.Dataset(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(dataset.Teams))
}

func (h *Handler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListChallenges")
	defer span.End()

	dataset, err := h.scoringService.Dataset(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list challenges failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	challenges := dataset.Challenges
	if strings.EqualFold(r.URL.Query().Get("audience"), "player") {
		now := h.now().UTC()
		visible := make([]challenge.Challenge, 0, len(challenges))
		for _, c := range challenges {
			if c.VisibleToPlayers(now) {
				visible = append(visible, c)
			}
		}
		challenges = visible
	}

	writeSuccess(ctx, w, http.StatusOK, challengesToDTO(challenges))
}

func (h *Handler) GetRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRanking")
	defer span.End()

	board, err := h.rankingService.Leaderboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "build leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(board))
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetState")
	defer span.End()

	status, err := h.sessionService.Status(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get session state failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionStatusToDTO(status))
}

func (h *Handler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleCompletion")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	challengeID := strings.TrimSpace(r.PathValue("challengeID"))

	dataset, outcome, err := h.scoringService.ToggleCompletion(ctx, teamID, challengeID)
	if err != nil {
		h.logger.ErrorContext(ctx, "toggle completion failed",
			"team_id", teamID, "challenge_id", challengeID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mutationResultDTO{
		Applied:    outcome.Applied,
		Reason:     string(outcome.Reason),
		Teams:      teamsToDTO(dataset.Teams),
		Challenges: challengesToDTO(dataset.Challenges),
	})
}

func (h *Handler) ToggleDisabled(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleDisabled")
	defer span.End()

	challengeID := strings.TrimSpace(r.PathValue("challengeID"))

	dataset, outcome, err := h.scoringService.ToggleDisabled(ctx, challengeID)
	if err != nil {
		h.logger.ErrorContext(ctx, "toggle disabled failed", "challenge_id", challengeID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mutationResultDTO{
		Applied:    outcome.Applied,
		Reason:     string(outcome.Reason),
		Teams:      teamsToDTO(dataset.Teams),
		Challenges: challengesToDTO(dataset.Challenges),
	})
}

type personalPointsRequest struct {
	Amount int `json:"amount" validate:"required,gt=0"`
}

func (h *Handler) AddPersonalPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPersonalPoints")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))

	var req personalPointsRequest
	if ok := h.decodeBody(ctx, w, r, &req); !ok {
		return
	}

	dataset, outcome, err := h.scoringService.AddPersonalPoints(ctx, teamID, playerID, req.Amount)
	if err != nil {
		h.logger.ErrorContext(ctx, "add personal points failed",
			"team_id", teamID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mutationResultDTO{
		Applied: outcome.Applied,
		Reason:  string(outcome.Reason),
		Teams:   teamsToDTO(dataset.Teams),
	})
}

type swapPlayersRequest struct {
	PlayerID       string `json:"playerId" validate:"required"`
	TargetTeamID   string `json:"targetTeamId" validate:"required"`
	TargetPlayerID string `json:"targetPlayerId" validate:"required"`
}

func (h *Handler) SwapPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SwapPlayers")
	defer span.End()

	var req swapPlayersRequest
	if ok := h.decodeBody(ctx, w, r, &req); !ok {
		return
	}

	dataset, outcome, err := h.scoringService.SwapPlayers(ctx, req.PlayerID, req.TargetTeamID, req.TargetPlayerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "swap players failed",
			"player_id", req.PlayerID, "target_team_id", req.TargetTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mutationResultDTO{
		Applied: outcome.Applied,
		Reason:  string(outcome.Reason),
		Teams:   teamsToDTO(dataset.Teams),
	})
}

type suspenseRequest struct {
	Active bool `json:"active"`
}

func (h *Handler) SetSuspense(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetSuspense")
	defer span.End()

	var req suspenseRequest
	if ok := h.decodeBody(ctx, w, r, &req); !ok {
		return
	}

	state, err := h.sessionService.SetSuspense(ctx, req.Active)
	if err != nil {
		h.logger.ErrorContext(ctx, "set suspense failed", "active", req.Active, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionStateToDTO(state, state.Paused(h.now().UTC())))
}

type pauseRequest struct {
	ResumeAt string `json:"resumeAt" validate:"required"`
}

func (h *Handler) StartPause(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartPause")
	defer span.End()

	var req pauseRequest
	if ok := h.decodeBody(ctx, w, r, &req); !ok {
		return
	}

	resumeAt, err := time.Parse(time.RFC3339, req.ResumeAt)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: resumeAt must be ISO-8601: %v", usecase.ErrInvalidInput, err))
		return
	}

	state, err := h.sessionService.StartPause(ctx, resumeAt)
	if err != nil {
		h.logger.ErrorContext(ctx, "start pause failed", "resume_at", req.ResumeAt, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionStateToDTO(state, state.Paused(h.now().UTC())))
}

func (h *Handler) CancelPause(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelPause")
	defer span.End()

	state, err := h.sessionService.CancelPause(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "cancel pause failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionStateToDTO(state, false))
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Reset")
	defer span.End()

	if _, err := h.scoringService.Reset(ctx); err != nil {
		h.logger.ErrorContext(ctx, "reset failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{})
}

func (h *Handler) decodeBody(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return false
	}
	if err := h.validator.StructCtx(ctx, dst); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return false
	}
	return true
}
