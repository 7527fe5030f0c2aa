package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"talent-utils/internal/cache"
	"talent-utils/internal/logging"
	"talent-utils/internal/lookup"
	"talent-utils/internal/reconciler"
	"talent-utils/pkg/models"
	"talent-utils/pkg/utils"
)

var validKinds = map[models.SuggestionKind]bool{
	models.KindSkills:          true,
	models.KindCertificates:    true,
	models.KindJobRoles:        true,
	models.KindWorkExperiences: true,
}

// PeekSuggestionsHandler returns staged suggestions without consuming them
func PeekSuggestionsHandler(store cache.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		kind, talentID, errResp := bindSuggestionParams(c)
		if errResp != nil {
			return c.JSON(http.StatusBadRequest, errResp)
		}

		key := cache.BuildKey(c.QueryParam("category"), kind, talentID)
		staged, err := store.Peek(c.Request().Context(), key)
		if err != nil {
			return suggestionStoreError(c, err, kind, talentID)
		}

		suggestions, count, err := decodeSuggestionPayload(kind, staged.Payload)
		if err != nil {
			// A malformed cache entry is unrecoverable; drop it
			_ = store.Dismiss(c.Request().Context(), key)
			return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
				Error:     "malformed_staged_suggestions",
				Message:   "Staged suggestions could not be decoded and were discarded",
				RequestID: utils.GenerateRequestID(),
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, models.SuggestionPeekResponse{
			Kind:        kind,
			TalentID:    talentID,
			Suggestions: suggestions,
			Count:       count,
		})
	}
}

// ConsumeSuggestionsHandler atomically removes the staged suggestions and
// reconciles them against the current lookup snapshot. Read-apply-clear is a
// single operation so a second consumer cannot reapply a stale suggestion.
func ConsumeSuggestionsHandler(store cache.Store, lookups *lookup.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		kind, talentID, errResp := bindSuggestionParams(c)
		if errResp != nil {
			return c.JSON(http.StatusBadRequest, errResp)
		}

		key := cache.BuildKey(c.QueryParam("category"), kind, talentID)
		staged, err := store.Consume(c.Request().Context(), key)
		if err != nil {
			return suggestionStoreError(c, err, kind, talentID)
		}

		prefills, unmatched, err := reconcileStaged(kind, staged.Payload, lookups)
		if err != nil {
			logger.Error("Failed to reconcile consumed suggestions", map[string]interface{}{
				"kind":      kind,
				"talent_id": talentID,
				"error":     err.Error(),
			})
			return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
				Error:     "malformed_staged_suggestions",
				Message:   "Staged suggestions could not be decoded",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logger.Info("Suggestions consumed", map[string]interface{}{
			"kind":      kind,
			"talent_id": talentID,
			"unmatched": unmatched,
		})

		return c.JSON(http.StatusOK, models.ConsumeSuggestionsResponse{
			Kind:      kind,
			TalentID:  talentID,
			Prefills:  prefills,
			Unmatched: unmatched,
			RequestID: requestID,
		})
	}
}

// DismissSuggestionsHandler discards staged suggestions without applying them
func DismissSuggestionsHandler(store cache.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		kind, talentID, errResp := bindSuggestionParams(c)
		if errResp != nil {
			return c.JSON(http.StatusBadRequest, errResp)
		}

		key := cache.BuildKey(c.QueryParam("category"), kind, talentID)
		if err := store.Dismiss(c.Request().Context(), key); err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "dismiss_failed",
				Message:   "Failed to discard staged suggestions",
				RequestID: utils.GenerateRequestID(),
				Timestamp: time.Now(),
			})
		}

		return c.NoContent(http.StatusNoContent)
	}
}

func bindSuggestionParams(c echo.Context) (models.SuggestionKind, string, *models.ErrorResponse) {
	kind := models.SuggestionKind(c.Param("kind"))
	talentID := c.Param("talentId")

	if !validKinds[kind] {
		return "", "", &models.ErrorResponse{
			Error:     "invalid_suggestion_kind",
			Message:   "Suggestion kind must be one of: skills, certificates, job-roles, work-experiences",
			RequestID: utils.GenerateRequestID(),
			Timestamp: time.Now(),
		}
	}
	if talentID == "" {
		return "", "", &models.ErrorResponse{
			Error:     "missing_talent_id",
			Message:   "Talent ID is required",
			RequestID: utils.GenerateRequestID(),
			Timestamp: time.Now(),
		}
	}

	return kind, talentID, nil
}

func suggestionStoreError(c echo.Context, err error, kind models.SuggestionKind, talentID string) error {
	if errors.Is(err, cache.ErrNotFound) {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:     "no_staged_suggestions",
			Message:   "No staged " + string(kind) + " suggestions for talent " + talentID,
			RequestID: utils.GenerateRequestID(),
			Timestamp: time.Now(),
		})
	}
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:     "suggestion_store_error",
		Message:   "Failed to read staged suggestions",
		RequestID: utils.GenerateRequestID(),
		Timestamp: time.Now(),
	})
}

// decodeSuggestionPayload unmarshals a staged payload into its typed list
func decodeSuggestionPayload(kind models.SuggestionKind, payload []byte) (interface{}, int, error) {
	switch kind {
	case models.KindSkills:
		var names []string
		if err := json.Unmarshal(payload, &names); err != nil {
			return nil, 0, err
		}
		return names, len(names), nil
	case models.KindCertificates:
		var certs []models.CertificateSuggestion
		if err := json.Unmarshal(payload, &certs); err != nil {
			return nil, 0, err
		}
		return certs, len(certs), nil
	case models.KindJobRoles:
		var roles []models.JobRoleSuggestion
		if err := json.Unmarshal(payload, &roles); err != nil {
			return nil, 0, err
		}
		return roles, len(roles), nil
	default:
		var experiences []models.WorkExperienceRecord
		if err := json.Unmarshal(payload, &experiences); err != nil {
			return nil, 0, err
		}
		return experiences, len(experiences), nil
	}
}

// reconcileStaged builds the prefill payloads for a consumed suggestion list
func reconcileStaged(kind models.SuggestionKind, payload []byte, lookups *lookup.Store) (interface{}, int, error) {
	switch kind {
	case models.KindSkills:
		var names []string
		if err := json.Unmarshal(payload, &names); err != nil {
			return nil, 0, err
		}
		prefills := reconciler.BuildSkillPrefills(names, lookups.Skills())
		unmatched := 0
		for _, p := range prefills {
			if !p.Matched {
				unmatched++
			}
		}
		return prefills, unmatched, nil
	case models.KindCertificates:
		var certs []models.CertificateSuggestion
		if err := json.Unmarshal(payload, &certs); err != nil {
			return nil, 0, err
		}
		prefills := reconciler.BuildCertificatePrefills(certs, lookups.CertificateTypes())
		unmatched := 0
		for _, p := range prefills {
			if !p.Matched {
				unmatched++
			}
		}
		return prefills, unmatched, nil
	case models.KindJobRoles:
		var roles []models.JobRoleSuggestion
		if err := json.Unmarshal(payload, &roles); err != nil {
			return nil, 0, err
		}
		prefills := reconciler.BuildRolePrefills(roles, lookups.JobRoleLevels())
		unmatched := 0
		for _, p := range prefills {
			if !p.Matched {
				unmatched++
			}
		}
		return prefills, unmatched, nil
	default:
		var experiences []models.WorkExperienceRecord
		if err := json.Unmarshal(payload, &experiences); err != nil {
			return nil, 0, err
		}
		// Work experiences carry no lookup match; dates are normalized only
		return reconciler.BuildExperiencePrefills(experiences), 0, nil
	}
}
