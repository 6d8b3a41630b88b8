// Package service defines the remote task backend that the local plan is
// pushed to.
package service

import "context"

// Service defines the operations push needs from a remote task backend.
// Commands never import the Google SDK directly.
type Service interface {
	// ListLists returns all remote task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// CreateList creates a new task list and returns it.
	CreateList(ctx context.Context, name string) (TaskList, error)

	// ListOpenTasks returns every open task of a list, across all pages.
	ListOpenTasks(ctx context.Context, listID string) ([]Task, error)

	// CreateTask creates a new open task in the specified list.
	CreateTask(ctx context.Context, listID, title string) error

	// CompleteTask marks a task as completed.
	CompleteTask(ctx context.Context, listID, taskID string) error
}

// Task represents a remote task item.
type Task struct {
	ID     string
	Title  string
	Status string // "needsAction" or "completed"
}

// TaskList represents a remote task list.
type TaskList struct {
	ID    string
	Title string
}
