package http

import (
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"spendwise/internal/core"
)

// maxBillSize caps uploaded bill images at 10MB.
const maxBillSize = 10 << 20

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	// Registration gates everything else.
	profile, registered := s.app.Profile()
	if !registered {
		if err := s.templates.ExecuteTemplate(w, "register.html", nil); err != nil {
			slog.ErrorContext(r.Context(), "Register template execution failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	tab := r.URL.Query().Get("tab")
	switch tab {
	case "dashboard", "history", "scan", "settings":
	default:
		tab = "dashboard"
	}

	settings := s.app.Settings()
	data := struct {
		Name           string
		ActiveTab      string
		Categories     []string
		Today          string
		WeeklyLimit    string
		PhoneNumber    string
		ScannerEnabled bool
	}{
		Name:           profile.Name,
		ActiveTab:      tab,
		Categories:     core.Categories,
		Today:          time.Now().Format("2006-01-02"),
		WeeklyLimit:    settings.WeeklyLimit.String(),
		PhoneNumber:    settings.PhoneNumber,
		ScannerEnabled: s.scanner != nil,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	mobile := strings.TrimSpace(r.Form.Get("mobile"))

	err := s.app.Register(r.Context(), name, mobile)
	switch {
	case errors.Is(err, core.ErrEmptyName):
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Please enter your name</div>`))
		return
	case errors.Is(err, core.ErrInvalidMobile):
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Enter a valid 10-digit mobile number starting with 6-9</div>`))
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Registration failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Registration failed</div>`))
		return
	}

	slog.InfoContext(r.Context(), "Profile registered", "name", name)
	w.Header().Set("HX-Redirect", "/")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	partial := core.PartialExpense{
		Amount:      core.Money{Cents: core.ParseAmountToCents(r.Form.Get("amount"))},
		Category:    sanitizeInput(r.Form.Get("category")),
		Description: sanitizeInput(r.Form.Get("description")),
	}
	if d, err := parseDate(r.Form.Get("date")); err == nil {
		partial.Date = d
	}

	created, _, exceeded := s.app.AddExpense(r.Context(), partial)
	slog.InfoContext(r.Context(), "Expense recorded",
		"id", created.ID,
		"amount_cents", created.Amount.Cents,
		"category", created.Category,
		"limit_exceeded", exceeded)

	s.writeExpenseCreated(w, created)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.scanner == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`<div class="error">Bill scanning is not configured. Add the expense manually.</div>`))
		return
	}
	if err := r.ParseMultipartForm(maxBillSize); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Could not read the upload</div>`))
		return
	}
	file, header, err := r.FormFile("bill")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Choose a bill image first</div>`))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxBillSize))
	if err != nil {
		slog.ErrorContext(r.Context(), "Bill read error", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Could not read the upload</div>`))
		return
	}

	partial, err := s.scanner.ScanBill(r.Context(), image, header.Header.Get("Content-Type"))
	if err != nil {
		// Collaborator failure never touches the ledger.
		slog.ErrorContext(r.Context(), "Bill scan failed", "error", err, "filename", header.Filename)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Could not read the bill. Add the expense manually.</div>`))
		return
	}

	created, _, exceeded := s.app.AddExpense(r.Context(), partial)
	slog.InfoContext(r.Context(), "Scanned expense recorded",
		"id", created.ID,
		"amount_cents", created.Amount.Cents,
		"category", created.Category,
		"limit_exceeded", exceeded)

	s.writeExpenseCreated(w, created)
}

// writeExpenseCreated emits the shared success fragment and the triggers
// refreshing the dashboard, history and notification partials.
func (s *Server) writeExpenseCreated(w http.ResponseWriter, created core.Expense) {
	w.Header().Set("HX-Trigger", `{"expense:created": {}, "notice:changed": {}}`)
	w.WriteHeader(http.StatusOK)
	title := created.Description
	if title == "" {
		title = created.Category
	}
	_, _ = w.Write([]byte(`<div class="success">Expense saved: ` +
		template.HTMLEscapeString(title) +
		` — ` + template.HTMLEscapeString(formatRupees(created.Amount.Cents)) + `</div>`))
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	// Only the limit is editable; the phone number stays bound to the
	// registered profile. Bad input coerces to zero like any amount.
	limit := core.Money{Cents: core.ParseAmountToCents(r.Form.Get("weeklyLimit"))}
	s.app.UpdateWeeklyLimit(r.Context(), limit)

	slog.InfoContext(r.Context(), "Weekly limit updated", "limit_cents", limit.Cents)
	w.Header().Set("HX-Trigger", `{"settings:saved": {}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Settings saved. Weekly limit: ` +
		template.HTMLEscapeString(formatRupees(limit.Cents)) + `</div>`))
}

func (s *Server) handleDismissNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.app.DismissNotifications()
	s.renderNotice(w, r)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.app.Reset(r.Context())
	slog.InfoContext(r.Context(), "Application reset to pre-registration state")
	w.Header().Set("HX-Redirect", "/")
	w.WriteHeader(http.StatusOK)
}
