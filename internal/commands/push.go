package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"svns/internal/exitcode"
	"svns/internal/service"
	"svns/internal/task"
)

func init() {
	Register(&PushCmd{})
}

// PushCmd mirrors the local plan into Google Tasks lists named after the
// buckets. Tasks are matched by text: an open local task with no open
// remote twin is created, and an open remote twin of a completed local
// task is completed. Nothing is ever deleted remotely.
type PushCmd struct{}

// PushResult counts the remote changes made by a push.
type PushResult struct {
	Created   int
	Completed int
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return []string{"sync"} }
func (c *PushCmd) Synopsis() string  { return "Push the plan to Google Tasks" }
func (c *PushCmd) Usage() string     { return "svns push [common flags]" }
func (c *PushCmd) NeedsStore() bool  { return true }
func (c *PushCmd) NeedsAuth() bool   { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PushCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	res, err := Push(ctx, env.Remote, env.Tasks)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	return ok(env, out, fmt.Sprintf("pushed: %d created, %d completed", res.Created, res.Completed))
}

// Push mirrors every bucket of m into svc.
func Push(ctx context.Context, svc service.Service, m *task.Model) (PushResult, error) {
	var res PushResult

	lists, err := svc.ListLists(ctx)
	if err != nil {
		return res, err
	}

	for _, b := range task.Buckets {
		local := m.Bucket(b)
		if len(local) == 0 {
			continue
		}

		list, found := findList(lists, b.Title())
		if !found {
			list, err = svc.CreateList(ctx, b.Title())
			if err != nil {
				return res, fmt.Errorf("failed to create list %s: %w", b.Title(), err)
			}
			lists = append(lists, list)
		}

		remote, err := svc.ListOpenTasks(ctx, list.ID)
		if err != nil {
			return res, fmt.Errorf("failed to fetch list %s: %w", list.Title, err)
		}
		open := make(map[string]string, len(remote)) // title -> remote ID
		for _, r := range remote {
			if _, seen := open[r.Title]; !seen {
				open[r.Title] = r.ID
			}
		}

		for _, t := range local {
			remoteID, exists := open[t.Text]
			switch {
			case !t.Done && !exists:
				if err := svc.CreateTask(ctx, list.ID, t.Text); err != nil {
					return res, err
				}
				open[t.Text] = ""
				res.Created++
			case t.Done && exists && remoteID != "":
				if err := svc.CompleteTask(ctx, list.ID, remoteID); err != nil {
					return res, err
				}
				delete(open, t.Text)
				res.Completed++
			}
		}
	}
	return res, nil
}

// findList matches a list title case-insensitively, ignoring surrounding space.
func findList(lists []service.TaskList, title string) (service.TaskList, bool) {
	want := strings.ToLower(strings.TrimSpace(title))
	for _, l := range lists {
		if strings.ToLower(strings.TrimSpace(l.Title)) == want {
			return l, true
		}
	}
	return service.TaskList{}, false
}
