package overlay

import (
	"fmt"
	"strconv"

	"github.com/Iron-Ham/gridwatch/internal/world"
)

// TaskOption is one entry of the task selector.
type TaskOption struct {
	// Value is the task name. The leading summary entry has an empty value.
	Value string
	Label string
}

// TaskCatalog is the task selector plus the resolved selection.
type TaskCatalog struct {
	SummaryLabel string
	Options      []TaskOption
	// Selected is the first task whose name matches the selection, or nil.
	Selected *world.Task
}

// SimplePlural returns "1 task" for n == 1 and "<n> tasks" otherwise.
func SimplePlural(n int, singular string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + singular + "s"
}

// TaskLabel renders a task as "40$ for task3 until step 120".
func TaskLabel(t world.Task) string {
	return fmt.Sprintf("%d$ for %s until step %d", t.Reward, t.Name, t.Deadline)
}

// BuildTaskCatalog lists tasks in feed order and resolves selected against
// them. The feed order is kept as is; deadlines are not sorted.
func BuildTaskCatalog(tasks []world.Task, selected string) TaskCatalog {
	cat := TaskCatalog{
		SummaryLabel: SimplePlural(len(tasks), "task"),
		Options:      make([]TaskOption, 0, len(tasks)),
	}
	for _, t := range tasks {
		cat.Options = append(cat.Options, TaskOption{Value: t.Name, Label: TaskLabel(t)})
	}
	if i := findTask(tasks, selected); i >= 0 {
		task := tasks[i]
		cat.Selected = &task
	}
	return cat
}

// findTask returns the index of the first task named name, or -1. An empty
// name never matches.
func findTask(tasks []world.Task, name string) int {
	if name == "" {
		return -1
	}
	for i, t := range tasks {
		if t.Name == name {
			return i
		}
	}
	return -1
}

// CycleTask returns the task name delta entries away from current in the
// selector, where the first entry is "no selection". A current name that is
// no longer listed counts as "no selection". Later tasks that repeat an
// earlier name are skipped since they cannot be selected.
func CycleTask(tasks []world.Task, current string, delta int) string {
	if delta == 0 {
		return current
	}
	step := 1
	if delta < 0 {
		step = -1
		delta = -delta
	}
	n := len(tasks) + 1
	i := findTask(tasks, current) + 1
	for moved := 0; moved < delta; {
		i = ((i+step)%n + n) % n
		if i == 0 || findTask(tasks, tasks[i-1].Name) == i-1 {
			moved++
		}
	}
	if i == 0 {
		return ""
	}
	return tasks[i-1].Name
}

// DuplicateTaskNames returns names that occur more than once in tasks, in
// order of their second occurrence. Only the first task of a duplicated name
// is selectable.
func DuplicateTaskNames(tasks []world.Task) []string {
	seen := make(map[string]int, len(tasks))
	var dups []string
	for _, t := range tasks {
		seen[t.Name]++
		if seen[t.Name] == 2 {
			dups = append(dups, t.Name)
		}
	}
	return dups
}
