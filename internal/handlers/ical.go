package handlers

import (
	"fmt"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/go-chi/chi/v5"

	"github.com/imbris22/Chore-Buddy/internal/services"
)

type ICalHandler struct {
	circleService *services.CircleService
}

func NewICalHandler(circleService *services.CircleService) *ICalHandler {
	return &ICalHandler{circleService: circleService}
}

// WeekFeed publishes a member's chores for the current week as all-day
// events, one per day for daily chores. The circle's invite code doubles as
// the feed credential.
func (handler *ICalHandler) WeekFeed(w http.ResponseWriter, r *http.Request) {
	cycle, member, chores, err := handler.circleService.MemberWeek(r.Context(), chi.URLParam(r, "code"), chi.URLParam(r, "memberID"))
	if err != nil {
		writeError(w, "building calendar feed", err)
		return
	}

	calendar := ical.NewCalendar()
	calendar.SetMethod(ical.MethodPublish)
	calendar.SetProductId("-//Chore Buddy//Weekly Chores//EN")
	calendar.SetXWRCalName(fmt.Sprintf("Chores for %s", member.Name))

	stamp := time.Now()
	for _, chore := range chores {
		summary := fmt.Sprintf("%s (%d pts)", chore.Title, services.ClampPoints(chore.Points))
		for _, occurrence := range services.Occurrences(chore.Frequency, cycle) {
			event := calendar.AddEvent(fmt.Sprintf("%s-%s@chore-buddy", occurrence.Start.Format("20060102"), chore.ID))
			event.SetSummary(summary)
			event.SetDtStampTime(stamp)
			event.SetAllDayStartAt(occurrence.Start)
			event.SetAllDayEndAt(occurrence.End)
		}
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=chore-buddy-week.ics")
	w.Write([]byte(calendar.Serialize()))
}
