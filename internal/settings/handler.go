// Package settings serves the admin-tunable catalog settings: budget
// brackets used by the college filter, and the stream presets.
package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/HerbHall/collegefinder/internal/match"
	"github.com/HerbHall/collegefinder/internal/plugin"
	"github.com/HerbHall/collegefinder/internal/session"
	"github.com/HerbHall/collegefinder/pkg/college"
)

// BracketsResponse lists the active budget brackets.
// @Description Active budget brackets and whether they are the built-in defaults.
type BracketsResponse struct {
	Brackets []college.BudgetBracket `json:"brackets"`
	Default  bool                    `json:"default" example:"true"`
}

// BracketsRequest replaces the budget brackets.
// @Description Request body for replacing the budget brackets.
type BracketsRequest struct {
	Brackets []college.BudgetBracket `json:"brackets"`
}

// SettingsProblemDetail represents an RFC 7807 error response for settings endpoints.
// @Description RFC 7807 Problem Details error response.
type SettingsProblemDetail struct {
	Type   string `json:"type" example:"https://collegefinder.app/problems/settings-error"`
	Title  string `json:"title" example:"Bad Request"`
	Status int    `json:"status" example:"400"`
	Detail string `json:"detail" example:"brackets must not overlap"`
}

// Handler provides HTTP handlers for settings endpoints.
type Handler struct {
	brackets *BracketStore
	logger   *zap.Logger
}

// NewHandler creates a settings Handler.
func NewHandler(brackets *BracketStore, logger *zap.Logger) *Handler {
	return &Handler{brackets: brackets, logger: logger}
}

// Routes returns the settings routes, relative to /api/v1/settings.
func (h *Handler) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "/brackets", Handler: h.handleGetBrackets},
		{Method: "PUT", Path: "/brackets", Handler: h.handlePutBrackets},
		{Method: "DELETE", Path: "/brackets", Handler: h.handleResetBrackets},
		{Method: "GET", Path: "/streams", Handler: h.handleStreams},
	}
}

// handleGetBrackets returns the active budget brackets.
//
//	@Summary		Get budget brackets
//	@Description	Get the budget brackets offered by the college filter.
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	BracketsResponse		"Active brackets"
//	@Failure		500	{object}	SettingsProblemDetail	"Internal server error"
//	@Router			/settings/brackets [get]
func (h *Handler) handleGetBrackets(w http.ResponseWriter, r *http.Request) {
	brackets, isDefault, err := h.brackets.Brackets(r.Context())
	if err != nil {
		h.logger.Error("failed to load brackets", zap.Error(err))
		writeSettingsError(w, http.StatusInternalServerError, "failed to load budget brackets")
		return
	}
	writeJSON(w, http.StatusOK, BracketsResponse{Brackets: brackets, Default: isDefault})
}

// handlePutBrackets replaces the budget brackets.
//
//	@Summary		Set budget brackets
//	@Description	Replace the budget brackets. Admin only.
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		BracketsRequest			true	"New brackets"
//	@Success		200		{object}	BracketsResponse		"Brackets saved"
//	@Failure		400		{object}	SettingsProblemDetail	"Invalid brackets"
//	@Failure		403		{object}	SettingsProblemDetail	"Not an admin"
//	@Router			/settings/brackets [put]
func (h *Handler) handlePutBrackets(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req BracketsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSettingsError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.brackets.Set(r.Context(), req.Brackets); err != nil {
		if isValidationError(err) {
			writeSettingsError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to save brackets", zap.Error(err))
		writeSettingsError(w, http.StatusInternalServerError, "failed to save budget brackets")
		return
	}

	h.logger.Info("budget brackets updated", zap.Int("count", len(req.Brackets)))
	writeJSON(w, http.StatusOK, BracketsResponse{Brackets: req.Brackets})
}

// handleResetBrackets drops the override and restores the defaults.
//
//	@Summary		Reset budget brackets
//	@Tags			settings
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	BracketsResponse		"Defaults restored"
//	@Failure		403	{object}	SettingsProblemDetail	"Not an admin"
//	@Router			/settings/brackets [delete]
func (h *Handler) handleResetBrackets(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	if err := h.brackets.Reset(r.Context()); err != nil {
		h.logger.Error("failed to reset brackets", zap.Error(err))
		writeSettingsError(w, http.StatusInternalServerError, "failed to reset budget brackets")
		return
	}
	h.handleGetBrackets(w, r)
}

// handleStreams returns the stream presets offered by the filter UI.
//
//	@Summary		List stream presets
//	@Tags			settings
//	@Produce		json
//	@Success		200	{array}	string
//	@Router			/settings/streams [get]
func (h *Handler) handleStreams(w http.ResponseWriter, _ *http.Request) {
	streams, err := match.DefaultStreams()
	if err != nil {
		h.logger.Error("failed to load stream presets", zap.Error(err))
		writeSettingsError(w, http.StatusInternalServerError, "failed to load streams")
		return
	}
	writeJSON(w, http.StatusOK, streams)
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	sess := session.FromContext(r.Context())
	if sess == nil {
		writeSettingsError(w, http.StatusUnauthorized, "login required")
		return false
	}
	if !sess.IsAdmin() {
		writeSettingsError(w, http.StatusForbidden, "admin access required")
		return false
	}
	return true
}

func isValidationError(err error) bool {
	for _, target := range []error{
		match.ErrNoBrackets, match.ErrBracketLabel, match.ErrBracketRange,
		match.ErrBracketOrder, match.ErrBracketOverlap, match.ErrBracketDuplicate,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSettingsError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(SettingsProblemDetail{
		Type:   "https://collegefinder.app/problems/settings-error",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}
