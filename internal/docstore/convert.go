package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/starford/laguz/internal/markdown"
	"github.com/starford/laguz/internal/models"
)

// ConvertChecklist rewrites a checklist as the target type. simple→task
// derives each item's status from its completed flag and starts an empty
// time-entry list; task→simple strips status, time entries, estimates and
// target dates irrecoverably. Requesting the current type is a no-op.
func (r *Repository) ConvertChecklist(ctx context.Context, owner, category, id string, target models.ChecklistType) (*models.Checklist, error) {
	if target != models.TypeSimple && target != models.TypeTask {
		return nil, fmt.Errorf("docstore: unknown checklist type %q", target)
	}

	unlock := r.locks.lock(userDir(KindChecklists, owner))
	defer unlock()

	c, err := r.GetChecklist(ctx, owner, category, id)
	if err != nil {
		return nil, err
	}
	if c.Type == target {
		return c, nil
	}

	switch target {
	case models.TypeTask:
		for i := range c.Items {
			it := &c.Items[i]
			if it.Completed {
				it.Status = models.StatusCompleted
			} else {
				it.Status = models.StatusTodo
			}
			it.TimeEntries = []models.TimeEntry{}
		}
	case models.TypeSimple:
		for i := range c.Items {
			it := &c.Items[i]
			it.Status = ""
			it.TimeEntries = nil
			it.EstimatedTime = 0
			it.TargetDate = ""
		}
	}
	c.Type = target
	c.UpdatedAt = time.Now()

	path := docPath(KindChecklists, owner, category, id)
	if err := r.st.Write(path, []byte(markdown.EncodeChecklist(c))); err != nil {
		return nil, fmt.Errorf("docstore: convert checklist: %w", err)
	}
	return c, nil
}
