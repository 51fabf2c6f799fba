package tracker

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownTask    = errors.New("unknown task")
	ErrUnknownSubtask = errors.New("unknown subtask")
)

// StudentType selects which application timeline a student follows.
type StudentType string

const (
	HighSchool StudentType = "high-school"
	Transfer   StudentType = "transfer"
)

func ParseStudentType(s string) (StudentType, error) {
	switch StudentType(s) {
	case HighSchool, Transfer:
		return StudentType(s), nil
	case "":
		return HighSchool, nil
	}
	return "", fmt.Errorf("unknown student type '%s'", s)
}

// Task is one step of an application timeline.
type Task struct {
	ID          string   `json:"id"`
	Month       string   `json:"month"`
	Title       string   `json:"title"`
	Deadline    string   `json:"deadline"`
	Description string   `json:"description"`
	Subtasks    []string `json:"subtasks"`
	Category    string   `json:"category"`
}

// TaskState is a task together with the student's completion marks.
type TaskState struct {
	Task
	Completed         bool     `json:"completed"`
	CompletedSubtasks []string `json:"completed_subtasks"`
}

// CategoryCompletion is the completion of the tasks sharing a category.
type CategoryCompletion struct {
	Category  string `json:"category"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Percent   int    `json:"percent"`
}

// Timeline tracks task and subtask completion for one session.
type Timeline struct {
	student   StudentType
	tasks     []Task
	completed map[string]bool
	subtasks  map[string][]string
}

// NewTimeline returns the default timeline for the given student type.
func NewTimeline(student StudentType) *Timeline {
	tasks := highSchoolTasks()
	if student == Transfer {
		tasks = transferTasks()
	}
	return &Timeline{
		student:   student,
		tasks:     tasks,
		completed: map[string]bool{},
		subtasks:  map[string][]string{},
	}
}

func (t *Timeline) StudentType() StudentType {
	return t.student
}

// Tasks returns every task with its completion marks, in timeline order.
func (t *Timeline) Tasks() []TaskState {
	out := make([]TaskState, len(t.tasks))
	for i, task := range t.tasks {
		task.Subtasks = slices.Clone(task.Subtasks)
		out[i] = TaskState{
			Task:              task,
			Completed:         t.completed[task.ID],
			CompletedSubtasks: slices.Clone(t.subtasks[task.ID]),
		}
	}
	return out
}

// ToggleTask flips the completion mark of a task and returns the new mark.
func (t *Timeline) ToggleTask(id string) (bool, error) {
	if t.task(id) == nil {
		return false, fmt.Errorf("%w: %s", ErrUnknownTask, id)
	}

	if t.completed[id] {
		delete(t.completed, id)
		return false, nil
	}
	t.completed[id] = true
	return true, nil
}

// ToggleSubtask flips the completion mark of one subtask of a task.
func (t *Timeline) ToggleSubtask(taskID, subtask string) (bool, error) {
	task := t.task(taskID)
	if task == nil {
		return false, fmt.Errorf("%w: %s", ErrUnknownTask, taskID)
	}
	if !slices.Contains(task.Subtasks, subtask) {
		return false, fmt.Errorf("%w: %s/%s", ErrUnknownSubtask, taskID, subtask)
	}

	done := t.subtasks[taskID]
	if i := slices.Index(done, subtask); i >= 0 {
		t.subtasks[taskID] = slices.Delete(done, i, i+1)
		return false, nil
	}
	t.subtasks[taskID] = append(done, subtask)
	return true, nil
}

// Progress is the share of completed tasks as a rounded percentage.
func (t *Timeline) Progress() Progress {
	done := 0
	for _, task := range t.tasks {
		if t.completed[task.ID] {
			done++
		}
	}
	return Progress{Done: done, Total: len(t.tasks), Percent: Percent(done, len(t.tasks))}
}

// CategoryProgress reports task completion per category in order of first appearance.
func (t *Timeline) CategoryProgress() []CategoryCompletion {
	var out []CategoryCompletion
	for _, task := range t.tasks {
		i := slices.IndexFunc(out, func(c CategoryCompletion) bool { return c.Category == task.Category })
		if i < 0 {
			out = append(out, CategoryCompletion{Category: task.Category})
			i = len(out) - 1
		}
		out[i].Total++
		if t.completed[task.ID] {
			out[i].Completed++
		}
	}

	for i := range out {
		out[i].Percent = Percent(out[i].Completed, out[i].Total)
	}
	return out
}

func (t *Timeline) task(id string) *Task {
	for i := range t.tasks {
		if t.tasks[i].ID == id {
			return &t.tasks[i]
		}
	}
	return nil
}

func highSchoolTasks() []Task {
	return []Task{
		{
			ID:          "sat-prep",
			Month:       "September",
			Title:       "Start SAT/ACT Prep",
			Deadline:    "Sep 30",
			Description: "Begin standardized test preparation",
			Subtasks:    []string{"Register for test date", "Get practice materials", "Consider tutoring"},
			Category:    "research",
		},
		{
			ID:          "research",
			Month:       "September-October",
			Title:       "Research Colleges",
			Deadline:    "Oct 31",
			Description: "Create list of target, match, and reach schools",
			Subtasks:    []string{"Make target school list", "Research campus culture", "Check admission stats"},
			Category:    "research",
		},
		{
			ID:          "essays",
			Month:       "October",
			Title:       "Write Common App Essays",
			Deadline:    "Oct 31",
			Description: "Draft personal statements and supplemental essays",
			Subtasks:    []string{"Brainstorm essay topics", "Write first draft", "Get feedback", "Final revisions"},
			Category:    "essays",
		},
		{
			ID:          "rec-letters",
			Month:       "October",
			Title:       "Request Letters of Recommendation",
			Deadline:    "Oct 15",
			Description: "Ask teachers and counselors for recommendation letters",
			Subtasks:    []string{"Choose 2-3 teachers", "Write request email", "Provide deadline reminders"},
			Category:    "documents",
		},
		{
			ID:          "early-decision",
			Month:       "November",
			Title:       "Submit Early Decision Applications",
			Deadline:    "Nov 1",
			Description: "Apply early decision if binding commitment desired",
			Subtasks:    []string{"Create college accounts", "Fill out applications", "Submit before deadline"},
			Category:    "submit",
		},
		{
			ID:          "regular-apps",
			Month:       "December-January",
			Title:       "Submit Regular Decision Applications",
			Deadline:    "Jan 1",
			Description: "Submit applications to most colleges",
			Subtasks:    []string{"Complete all applications", "Double-check essays", "Submit all by Jan 1"},
			Category:    "submit",
		},
		{
			ID:          "fafsa",
			Month:       "October-December",
			Title:       "Complete FAFSA & CSS Profile",
			Deadline:    "Dec 15",
			Description: "Fill out Free Application for Federal Student Aid",
			Subtasks:    []string{"Gather tax documents", "Create FSA ID", "Submit FAFSA", "Submit CSS Profile if needed"},
			Category:    "financial",
		},
		{
			ID:          "decisions",
			Month:       "March-April",
			Title:       "Review Acceptance Decisions",
			Deadline:    "May 1",
			Description: "Evaluate acceptance letters and make final decision",
			Subtasks:    []string{"Compare financial packages", "Revisit campuses", "Make final decision"},
			Category:    "research",
		},
	}
}

func transferTasks() []Task {
	return []Task{
		{
			ID:          "transcript",
			Month:       "June-July",
			Title:       "Gather Academic Records",
			Deadline:    "Jul 15",
			Description: "Collect official transcripts and course descriptions",
			Subtasks:    []string{"Request official transcripts", "Get course descriptions", "Verify GPA"},
			Category:    "documents",
		},
		{
			ID:          "transfer-research",
			Month:       "June-August",
			Title:       "Research Transfer-Friendly Schools",
			Deadline:    "Aug 31",
			Description: "Find schools with strong transfer acceptance rates",
			Subtasks:    []string{"Identify transfer requirements", "Check credit transfer policies", "Compare deadlines"},
			Category:    "research",
		},
		{
			ID:          "transfer-essays",
			Month:       "August",
			Title:       "Write Transfer Essays",
			Deadline:    "Aug 31",
			Description: "Address why you're transferring and goals",
			Subtasks:    []string{"Explain transfer motivation", "Highlight achievements", "Get feedback"},
			Category:    "essays",
		},
		{
			ID:          "transfer-rec",
			Month:       "August",
			Title:       "Request Professor Recommendations",
			Deadline:    "Sep 1",
			Description: "Get letters from college professors",
			Subtasks:    []string{"Select professors", "Send requests", "Confirm deadline"},
			Category:    "documents",
		},
		{
			ID:          "transfer-apps",
			Month:       "September",
			Title:       "Submit Transfer Applications",
			Deadline:    "Nov 1",
			Description: "Apply to transfer schools with early fall deadline",
			Subtasks:    []string{"Complete applications", "Submit transcripts", "Submit before deadline"},
			Category:    "submit",
		},
		{
			ID:          "spring-apps",
			Month:       "September-October",
			Title:       "Submit Spring Transfer Applications",
			Deadline:    "Dec 1",
			Description: "Apply to schools accepting spring transfers",
			Subtasks:    []string{"Identify spring options", "Complete applications", "Submit by Dec 1"},
			Category:    "submit",
		},
		{
			ID:          "transfer-eval",
			Month:       "February-March",
			Title:       "Evaluate Transfer Offers",
			Deadline:    "May 1",
			Description: "Review transfer credits and aid packages",
			Subtasks:    []string{"Check credit equivalencies", "Compare aid offers", "Plan enrollment"},
			Category:    "financial",
		},
	}
}
