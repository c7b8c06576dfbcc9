package handlers

import (
	"fmt"
	"net/http"
	"time"

	"bookbot-backend/internal/logging"
	"bookbot-backend/internal/models"
	"bookbot-backend/internal/persona"
)

type DailyBookHandler struct {
	now func() time.Time
}

func NewDailyBookHandler(now func() time.Time) *DailyBookHandler {
	if now == nil {
		now = time.Now
	}
	return &DailyBookHandler{now: now}
}

// Get returns today's featured book. A fault while building the answer
// still hands the client Monday's entry.
func (h *DailyBookHandler) Get(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Ctx(r.Context()).Error().Str("panic", fmt.Sprint(rec)).Msg("failed to build daily book")
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
				Error: "Failed to retrieve daily book",
				Book:  persona.FeaturedBookFor(0),
			})
		}
	}()

	now := h.now()
	writeJSON(w, http.StatusOK, models.DailyBookResponse{
		Book:      persona.FeaturedBookFor(persona.Weekday(now)),
		Timestamp: now,
	})
}
