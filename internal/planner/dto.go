package planner

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Nasaee/go-dayplanner/internal/dates"
)

var ErrMissingTaskID = errors.New("task_id is required")

// taskRef is the (date, task_id) pair most actions post.
type taskRef struct {
	Date   time.Time
	TaskID string
}

// optionalForm returns nil when the field was not submitted at all, so a
// missing description can be told apart from an empty one.
func optionalForm(r *http.Request, key string) *string {
	vals, ok := r.PostForm[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	v := vals[0]
	return &v
}

func parseTaskRef(r *http.Request) (taskRef, error) {
	date, err := dates.Parse(r.PostFormValue("date"))
	if err != nil {
		return taskRef{}, err
	}

	id := strings.TrimSpace(r.PostFormValue("task_id"))
	if id == "" {
		return taskRef{}, ErrMissingTaskID
	}

	return taskRef{Date: date, TaskID: id}, nil
}
