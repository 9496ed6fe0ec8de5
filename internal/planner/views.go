package planner

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/Nasaee/go-dayplanner/internal/dates"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageIndex      = "index.html"
	pageAddTask    = "add_task.html"
	pageUpdateTask = "update_task.html"
)

type views struct {
	pages map[string]*template.Template
}

func newViews() (*views, error) {
	funcs := template.FuncMap{
		"iso":     dates.Format,
		"weekday": func(t time.Time) string { return t.Format("Mon") },
		"day":     func(t time.Time) int { return t.Day() },
		"sameDay": func(a, b time.Time) bool { return dates.Format(a) == dates.Format(b) },
	}

	v := &views{pages: make(map[string]*template.Template)}
	for _, page := range []string{pageIndex, pageAddTask, pageUpdateTask} {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		v.pages[page] = tmpl
	}
	return v, nil
}

// render executes into a buffer first so a template error still produces a
// clean 500 instead of a half-written page.
func (v *views) render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := v.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

type indexPage struct {
	Title        string
	SelectedDate time.Time
	*DayView
}

type addTaskPage struct {
	Title        string
	SelectedDate time.Time
}

type updateTaskPage struct {
	Title           string
	SelectedDate    time.Time
	TaskID          string
	TaskDescription string
}
