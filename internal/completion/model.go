package completion

import "time"

const Collection = "completions"

// Completion marks TaskID as done on Date. (Date, TaskID) is its identity.
type Completion struct {
	Date   time.Time `json:"date" bson:"date"`
	TaskID string    `json:"task_id" bson:"task_id"`
}

// TaskIDs projects the task ids out of a day's completions.
func TaskIDs(cs []Completion) []string {
	ids := make([]string, 0, len(cs))
	for _, c := range cs {
		ids = append(ids, c.TaskID)
	}
	return ids
}
