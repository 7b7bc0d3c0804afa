package seed

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"manifest/internal/models"
)

type fileTask struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Due         *time.Time `yaml:"due,omitempty"`
	Priority    string     `yaml:"priority,omitempty"`
	Completed   bool       `yaml:"completed,omitempty"`
	Milestone   string     `yaml:"milestone"`
	Goal        string     `yaml:"goal"`
	ScheduledAt *time.Time `yaml:"scheduled_at,omitempty"`
}

type fileMilestone struct {
	ID    string     `yaml:"id"`
	Title string     `yaml:"title"`
	Due   *time.Time `yaml:"due,omitempty"`
	Goal  string     `yaml:"goal"`
}

type fileGoal struct {
	ID       string     `yaml:"id"`
	Title    string     `yaml:"title"`
	Deadline *time.Time `yaml:"deadline,omitempty"`
	Category string     `yaml:"category"`
}

type file struct {
	Goals      []fileGoal      `yaml:"goals"`
	Milestones []fileMilestone `yaml:"milestones"`
	Tasks      []fileTask      `yaml:"tasks"`
}

// LoadFile reads a YAML seed file. Timestamps use RFC 3339.
func LoadFile(path string) (models.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("reading seed file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML seed document and checks its references.
func Parse(data []byte) (models.Dataset, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return models.Dataset{}, fmt.Errorf("parsing seed YAML: %w", err)
	}

	var ds models.Dataset
	goals := make(map[string]struct{}, len(f.Goals))
	for _, g := range f.Goals {
		if err := checkID("goal", g.ID, goals); err != nil {
			return models.Dataset{}, err
		}
		ds.Goals = append(ds.Goals, models.Goal{ID: g.ID, Title: g.Title, Deadline: g.Deadline, Category: g.Category})
	}

	milestones := make(map[string]struct{}, len(f.Milestones))
	for _, m := range f.Milestones {
		if err := checkID("milestone", m.ID, milestones); err != nil {
			return models.Dataset{}, err
		}
		if _, ok := goals[m.Goal]; !ok {
			return models.Dataset{}, fmt.Errorf("milestone %s: unknown goal %q", m.ID, m.Goal)
		}
		ds.Milestones = append(ds.Milestones, models.Milestone{ID: m.ID, Title: m.Title, DueDate: m.Due, GoalID: m.Goal})
	}

	tasks := make(map[string]struct{}, len(f.Tasks))
	for _, t := range f.Tasks {
		if err := checkID("task", t.ID, tasks); err != nil {
			return models.Dataset{}, err
		}
		if _, ok := milestones[t.Milestone]; !ok {
			return models.Dataset{}, fmt.Errorf("task %s: unknown milestone %q", t.ID, t.Milestone)
		}
		if _, ok := goals[t.Goal]; !ok {
			return models.Dataset{}, fmt.Errorf("task %s: unknown goal %q", t.ID, t.Goal)
		}
		ds.Tasks = append(ds.Tasks, models.Task{
			ID:                t.ID,
			Title:             t.Title,
			DueDate:           t.Due,
			Priority:          parsePriority(t.Priority),
			Completed:         t.Completed,
			MilestoneID:       t.Milestone,
			GoalID:            t.Goal,
			ScheduledDateTime: t.ScheduledAt,
		})
	}
	return ds, nil
}

func checkID(kind, id string, seen map[string]struct{}) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s without id", kind)
	}
	if _, dup := seen[id]; dup {
		return fmt.Errorf("duplicate %s id %q", kind, id)
	}
	seen[id] = struct{}{}
	return nil
}

func parsePriority(raw string) models.Priority {
	for p := range models.ValidPriorities {
		if strings.EqualFold(string(p), raw) {
			return p
		}
	}
	return models.PriorityMedium
}
