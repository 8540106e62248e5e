package taskstore

import (
	"sort"
	"sync"
	"time"
)

// Task is a single entry in the task store.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	Tags        []string  `json:"tags"`
}

// Stats summarizes the store for the overview resource and prompts.
type Stats struct {
	Total     int      `json:"total_tasks"`
	Completed int      `json:"completed_tasks"`
	Pending   int      `json:"pending_tasks"`
	Tags      []string `json:"tags"`
}

// Store is an in-memory task collection with sequential ID assignment.
// IDs are unique and monotonically increasing for the life of the process
// and are never reused. The store holds no persistence; contents are lost
// on restart.
type Store struct {
	mu     sync.RWMutex
	tasks  map[int64]Task
	nextID int64
}

func New() *Store {
	return &Store{
		tasks:  make(map[int64]Task),
		nextID: 1,
	}
}

// Create inserts a new task and assigns it the next sequential ID.
func (s *Store) Create(title, description string, tags []string) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := Task{
		ID:          s.nextID,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
		Tags:        append([]string(nil), tags...),
	}
	s.tasks[task.ID] = task
	s.nextID++
	return task
}

// Get returns the task with the given ID.
func (s *Store) Get(id int64) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	return task, ok
}

// List returns all tasks in ID order. A non-empty tag restricts the
// result to tasks whose tag list contains it.
func (s *Store) List(tag string) []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if tag != "" && !containsTag(task.Tags, tag) {
			continue
		}
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

// Pending returns all tasks that are not yet completed, in ID order.
func (s *Store) Pending() []Task {
	all := s.List("")
	pending := make([]Task, 0, len(all))
	for _, task := range all {
		if !task.Completed {
			pending = append(pending, task)
		}
	}
	return pending
}

// Update applies a set of field overrides to the task with the given ID.
// Recognized fields are "title", "description", "completed" and "tags";
// unknown field names and values of the wrong type are silently ignored.
func (s *Store) Update(id int64, fields map[string]any) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return Task{}, false
	}

	for name, value := range fields {
		switch name {
		case "title":
			if v, ok := value.(string); ok {
				task.Title = v
			}
		case "description":
			if v, ok := value.(string); ok {
				task.Description = v
			}
		case "completed":
			if v, ok := value.(bool); ok {
				task.Completed = v
			}
		case "tags":
			if v, ok := toStringSlice(value); ok {
				task.Tags = v
			}
		}
	}

	s.tasks[id] = task
	return task, true
}

// Stats computes the counters exposed by the overview resource.
func (s *Store) Stats() Stats {
	all := s.List("")

	stats := Stats{Total: len(all), Tags: []string{}}
	seen := make(map[string]bool)
	for _, task := range all {
		if task.Completed {
			stats.Completed++
		} else {
			stats.Pending++
		}
		for _, tag := range task.Tags {
			if !seen[tag] {
				seen[tag] = true
				stats.Tags = append(stats.Tags, tag)
			}
		}
	}
	sort.Strings(stats.Tags)
	return stats
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// toStringSlice accepts both []string and the []any form that JSON
// argument decoding produces.
func toStringSlice(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...), true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
