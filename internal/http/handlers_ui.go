package http

import (
	"log/slog"
	"net/http"
	"time"
)

// handleDashboard renders the dashboard partial: the trailing week by
// weekday plus per-month totals and savings, recomputed from the current
// ledger on every render.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	type weekRow struct {
		Day    string
		Amount string
		Width  int
	}
	type monthRow struct {
		Month   string
		Total   string
		Savings string
	}

	week := s.app.WeeklyBreakdown()
	var weekTotal, maxCents int64
	for _, d := range week {
		weekTotal += d.Amount.Cents
		if d.Amount.Cents > maxCents {
			maxCents = d.Amount.Cents
		}
	}

	settings := s.app.Settings()
	data := struct {
		WeekRows    []weekRow
		WeekTotal   string
		WeeklyLimit string
		OverLimit   bool
		Months      []monthRow
	}{
		WeekTotal:   formatRupees(weekTotal),
		WeeklyLimit: formatRupees(settings.WeeklyLimit.Cents),
		OverLimit:   weekTotal > settings.WeeklyLimit.Cents,
	}

	for _, d := range week {
		width := 0
		if maxCents > 0 && d.Amount.Cents > 0 {
			width = int((d.Amount.Cents*100 + maxCents/2) / maxCents) // rounded percent
			if width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		data.WeekRows = append(data.WeekRows, weekRow{
			Day:    d.Day,
			Amount: formatRupees(d.Amount.Cents),
			Width:  width,
		})
	}

	for _, m := range s.app.MonthlySummary() {
		data.Months = append(data.Months, monthRow{
			Month:   m.Month,
			Total:   formatRupees(m.Total.Cents),
			Savings: formatRupees(m.Savings.Cents),
		})
	}

	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Dashboard template execution failed", "error", err)
		_, _ = w.Write([]byte(`<div class="placeholder">Error rendering dashboard</div>`))
	}
}

// handleHistory renders the transaction list partial, most recent first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	type row struct {
		Initial string
		Title   string
		Date    string
		Amount  string
	}
	var data struct {
		Items []row
	}
	for _, e := range s.app.Expenses() {
		title := e.Description
		if title == "" {
			title = e.Category
		}
		initial := "?"
		if e.Category != "" {
			initial = string([]rune(e.Category)[0:1])
		}
		data.Items = append(data.Items, row{
			Initial: initial,
			Title:   title,
			Date:    e.Date.Format("Jan 2, 2006"),
			Amount:  formatRupees(e.Amount.Cents),
		})
	}

	if err := s.templates.ExecuteTemplate(w, "history.html", data); err != nil {
		slog.ErrorContext(r.Context(), "History template execution failed", "error", err)
		_, _ = w.Write([]byte(`<div class="placeholder">Error rendering history</div>`))
	}
}

// handleNotice renders the notification banner partial. Only the newest
// unacknowledged alert is shown.
func (s *Server) handleNotice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.renderNotice(w, r)
}

func (s *Server) renderNotice(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	note, ok := s.app.Notification()
	data := struct {
		Message string
		Show    bool
		Time    string
	}{Message: note, Show: ok, Time: time.Now().Format("15:04")}

	if err := s.templates.ExecuteTemplate(w, "notice.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Notice template execution failed", "error", err)
		_, _ = w.Write([]byte(``))
	}
}
