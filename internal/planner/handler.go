package planner

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Nasaee/go-dayplanner/internal/dates"
)

const (
	titleHome       = "Todo List - Home"
	titleAddTask    = "Todo List - Add Task"
	titleUpdateTask = "Todo List - Update Task"
)

type Handler struct {
	svc   Service
	views *views
}

func NewHandler(svc Service) (*Handler, error) {
	v, err := newViews()
	if err != nil {
		return nil, err
	}
	return &Handler{svc: svc, views: v}, nil
}

// =============== helpers ==================

func dayURL(date time.Time) string {
	return "/?" + url.Values{"date": {dates.Format(date)}}.Encode()
}

func redirectToDay(w http.ResponseWriter, r *http.Request, date time.Time) {
	http.Redirect(w, r, dayURL(date), http.StatusSeeOther)
}

// writeError maps parse failures to 400. Anything else is logged and
// answered with 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, dates.ErrMissingDate),
		errors.Is(err, dates.ErrInvalidDate),
		errors.Is(err, ErrMissingTaskID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, data any) {
	if err := h.views.render(w, http.StatusOK, page, data); err != nil {
		h.writeError(w, r, err)
	}
}

func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return false
	}
	return true
}

// =============== pages ==================

// GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	date := h.svc.Today()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := dates.Parse(raw)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		date = parsed
	}

	day, err := h.svc.Day(r.Context(), date)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.render(w, r, pageIndex, indexPage{
		Title:        titleHome,
		SelectedDate: day.Date,
		DayView:      day,
	})
}

// GET /add
func (h *Handler) AddTaskForm(w http.ResponseWriter, r *http.Request) {
	date, err := dates.Parse(r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.render(w, r, pageAddTask, addTaskPage{
		Title:        titleAddTask,
		SelectedDate: date,
	})
}

// =============== actions ==================

// POST /add
func (h *Handler) AddTask(w http.ResponseWriter, r *http.Request) {
	date, err := dates.Parse(r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !h.parseForm(w, r) {
		return
	}

	if _, err := h.svc.AddTask(r.Context(), date, optionalForm(r, "todo")); err != nil {
		h.writeError(w, r, err)
		return
	}

	redirectToDay(w, r, date)
}

// POST /update
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	ref, err := parseTaskRef(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.svc.UpdateDescription(r.Context(), ref.TaskID, optionalForm(r, "task_description")); err != nil {
		h.writeError(w, r, err)
		return
	}

	redirectToDay(w, r, ref.Date)
}

// POST /complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	ref, err := parseTaskRef(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.svc.Complete(r.Context(), ref.Date, ref.TaskID); err != nil {
		h.writeError(w, r, err)
		return
	}

	redirectToDay(w, r, ref.Date)
}

// POST /incomplete
func (h *Handler) Incomplete(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	ref, err := parseTaskRef(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.svc.Incomplete(r.Context(), ref.Date, ref.TaskID); err != nil {
		h.writeError(w, r, err)
		return
	}

	redirectToDay(w, r, ref.Date)
}

// POST /task_action
func (h *Handler) TaskAction(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	date, err := dates.Parse(r.PostFormValue("date"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	switch r.PostFormValue("action") {
	case "remove":
		ref, err := parseTaskRef(r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if err := h.svc.RemoveTask(r.Context(), ref.Date, ref.TaskID); err != nil {
			h.writeError(w, r, err)
			return
		}
		redirectToDay(w, r, ref.Date)

	case "edit":
		ref, err := parseTaskRef(r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		t, err := h.svc.TaskForEdit(r.Context(), ref.TaskID)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		page := updateTaskPage{
			Title:        titleUpdateTask,
			SelectedDate: date,
			TaskID:       ref.TaskID,
		}
		if t != nil {
			page.TaskDescription = t.Text()
		}
		h.render(w, r, pageUpdateTask, page)

	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
