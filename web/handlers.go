package main

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/DeafMist/guestpost-report/internal/metrics"
	"github.com/DeafMist/guestpost-report/internal/models"
	"github.com/DeafMist/guestpost-report/internal/pipeline"
	"github.com/DeafMist/guestpost-report/internal/session"
	"github.com/DeafMist/guestpost-report/internal/sheet"
)

const dateLayout = "2006-01-02"

var errNoUpload = errors.New("no upload for this session")

// filterForm mirrors the sidebar filters of the report page.
type filterForm struct {
	Keyword  string
	URL      string
	DateMode string
	Date     string
	From     string
	To       string
}

func parseFilterForm(q url.Values) filterForm {
	form := filterForm{
		Keyword:  strings.TrimSpace(q.Get("keyword")),
		URL:      strings.TrimSpace(q.Get("url")),
		DateMode: strings.TrimSpace(q.Get("date_mode")),
		Date:     strings.TrimSpace(q.Get("date")),
		From:     strings.TrimSpace(q.Get("from")),
		To:       strings.TrimSpace(q.Get("to")),
	}
	if form.DateMode != "range" {
		form.DateMode = "specific"
	}
	return form
}

func (f filterForm) filter() pipeline.Filter {
	filter := pipeline.Filter{Keyword: f.Keyword, URL: f.URL}
	if f.DateMode == "range" {
		filter.From = parseDay(f.From)
		filter.To = parseDay(f.To)
	} else {
		filter.Date = parseDay(f.Date)
	}
	return filter
}

func parseDay(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	ts, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil
	}
	return &ts
}

type pageData struct {
	Error      string
	HasData    bool
	FileName   string
	UploadedAt time.Time

	Columns  []string
	Rows     [][]string
	Pairs    []models.KeywordURLPair
	Filtered []models.KeywordURLPair
	Keywords []string
	URLs     []string
	Form     filterForm

	Months     []string
	Month      string
	Summary    *models.Summary
	Chart      barChart
	CompareA   string
	CompareB   string
	Comparison *models.Comparison
}

func buildPage(up *session.Upload, q url.Values) pageData {
	ds := up.Dataset
	form := parseFilterForm(q)
	months := pipeline.Months(ds.Pairs)
	month := pickMonth(q.Get("month"), months, 0)

	page := pageData{
		HasData:    true,
		FileName:   up.FileName,
		UploadedAt: up.UploadedAt,
		Columns:    ds.Table.Columns,
		Rows:       ds.Table.Rows,
		Pairs:      ds.Pairs,
		Filtered:   form.filter().Apply(ds.Pairs),
		Keywords:   pipeline.Keywords(ds.Pairs),
		URLs:       pipeline.URLs(ds.Pairs),
		Form:       form,
		Months:     months,
		Month:      month,
		Chart:      newBarChart(pipeline.PostsByDate(ds.Pairs, month)),
		CompareA:   pickMonth(q.Get("a"), months, 0),
		CompareB:   pickMonth(q.Get("b"), months, 1),
	}

	if month != "" {
		summary := ds.Summary(month)
		page.Summary = &summary
	}
	if page.CompareA != "" && page.CompareB != "" {
		if comparison, err := ds.Compare(page.CompareA, page.CompareB); err == nil {
			page.Comparison = &comparison
		}
	}
	return page
}

// pickMonth keeps a requested month when it exists, else falls back to months[fallback].
func pickMonth(requested string, months []string, fallback int) string {
	requested = strings.TrimSpace(requested)
	if slices.Contains(months, requested) {
		return requested
	}
	if fallback < len(months) {
		return months[fallback]
	}
	return ""
}

func (s *server) currentUpload(r *http.Request) (string, *session.Upload, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", nil, false
	}
	up, ok := s.sessions.Get(c.Value)
	return c.Value, up, ok
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var page pageData
	if _, up, ok := s.currentUpload(r); ok {
		page = buildPage(up, r.URL.Query())
	}
	s.render(w, http.StatusOK, page)
}

func (s *server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.cfg.UploadMaxBytes {
		s.rejectUpload(w, http.StatusRequestEntityTooLarge, metrics.ResultLoadError,
			fmt.Errorf("upload exceeds %d bytes", s.cfg.UploadMaxBytes))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.UploadMaxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.rejectUpload(w, status, metrics.ResultLoadError, fmt.Errorf("read upload: %w", err))
		return
	}
	defer file.Close()

	raw, err := sheet.Load(file, header.Filename)
	if err != nil {
		s.rejectUpload(w, http.StatusUnprocessableEntity, metrics.ResultLoadError, err)
		return
	}

	ds, err := s.pipe.Run(raw)
	if err != nil {
		s.rejectUpload(w, http.StatusUnprocessableEntity, metrics.ResultPipelineError, err)
		return
	}

	if previous, _, ok := s.currentUpload(r); ok {
		s.sessions.Delete(previous)
	}
	id := session.NewID()
	s.sessions.Put(id, &session.Upload{
		FileName:   header.Filename,
		UploadedAt: time.Now().UTC(),
		Dataset:    ds,
	})
	s.metrics.ObserveUpload(len(ds.Table.Rows), len(ds.Pairs))

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	s.log.Info("upload processed",
		slog.String("file", header.Filename),
		slog.Int("rows", len(ds.Table.Rows)),
		slog.Int("pairs", len(ds.Pairs)),
		slog.Int("keyword_slots", len(ds.Table.KeywordColumns)),
	)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// rejectUpload shows the error alone. No tables are rendered on this path.
func (s *server) rejectUpload(w http.ResponseWriter, status int, result string, err error) {
	s.metrics.UploadFailed(result)
	s.log.Warn("upload rejected", slog.String("result", result), slog.Any("err", err))
	s.render(w, status, pageData{Error: "Error processing file: " + err.Error()})
}

func (s *server) render(w http.ResponseWriter, status int, page pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		s.log.Error("render page", slog.Any("err", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *server) datasetOrError(w http.ResponseWriter, r *http.Request) (*pipeline.Dataset, bool) {
	_, up, ok := s.currentUpload(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: errNoUpload.Error()})
		return nil, false
	}
	return up.Dataset, true
}

func (s *server) handleMonths(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.datasetOrError(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"months": pipeline.Months(ds.Pairs)})
}

type pairsResponse struct {
	Total int                     `json:"total"`
	Items []models.KeywordURLPair `json:"items"`
}

func (s *server) handlePairs(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.datasetOrError(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	filter := pipeline.Filter{
		Keyword: strings.TrimSpace(q.Get("keyword")),
		URL:     strings.TrimSpace(q.Get("url")),
		Date:    parseDay(strings.TrimSpace(q.Get("date"))),
		From:    parseDay(strings.TrimSpace(q.Get("from"))),
		To:      parseDay(strings.TrimSpace(q.Get("to"))),
	}
	items := filter.Apply(ds.Pairs)
	writeJSON(w, http.StatusOK, pairsResponse{Total: len(items), Items: items})
}

func (s *server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.datasetOrError(w, r)
	if !ok {
		return
	}
	// An explicit month is honoured even when no pair falls in it.
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if month == "" {
		month = pickMonth("", pipeline.Months(ds.Pairs), 0)
	}
	if month == "" {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "upload has no dated rows"})
		return
	}
	writeJSON(w, http.StatusOK, ds.Summary(month))
}

func (s *server) handleCompare(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.datasetOrError(w, r)
	if !ok {
		return
	}
	a := strings.TrimSpace(r.URL.Query().Get("a"))
	b := strings.TrimSpace(r.URL.Query().Get("b"))
	if a == "" || b == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "both a and b months are required"})
		return
	}

	comparison, err := ds.Compare(a, b)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}
