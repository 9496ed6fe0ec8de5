package task

import "time"

// Collection is the table / collection name tasks are stored under.
const Collection = "tasks"

type Task struct {
	ID   string    `json:"id" bson:"_id"`
	Date time.Time `json:"date" bson:"date"`
	// nil when the task was submitted without a description field
	Description *string `json:"task_description" bson:"task_description"`
}

// Text is the description for display; a missing description renders empty.
func (t Task) Text() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}
