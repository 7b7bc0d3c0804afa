package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manifest/internal/models"
)

const sample = `
goals:
  - id: g1
    title: Ship v1
    category: Career
    deadline: 2024-02-01T00:00:00Z
milestones:
  - id: m1
    title: Backend
    goal: g1
tasks:
  - id: t1
    title: Write handlers
    milestone: m1
    goal: g1
    priority: high
    due: 2024-01-01T09:00:00Z
    scheduled_at: 2024-01-01T10:00:00Z
  - id: t2
    title: Write tests
    milestone: m1
    goal: g1
    priority: urgent
    completed: true
`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	ds, err := LoadFile(path)
	require.NoError(t, err)

	require.Len(t, ds.Goals, 1)
	assert.Equal(t, "Career", ds.Goals[0].Category)
	require.NotNil(t, ds.Goals[0].Deadline)
	assert.True(t, ds.Goals[0].Deadline.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))

	require.Len(t, ds.Tasks, 2)
	assert.Equal(t, models.PriorityHigh, ds.Tasks[0].Priority)
	require.NotNil(t, ds.Tasks[0].ScheduledDateTime)
	assert.Equal(t, 10, ds.Tasks[0].ScheduledDateTime.Hour())
	assert.Equal(t, models.PriorityMedium, ds.Tasks[1].Priority)
	assert.True(t, ds.Tasks[1].Completed)
	assert.Nil(t, ds.Tasks[1].DueDate)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseRejectsBadReferences(t *testing.T) {
	cases := map[string]string{
		"unknown goal": `
goals: [{id: g1, title: G}]
milestones: [{id: m1, title: M, goal: g2}]
`,
		"unknown milestone": `
goals: [{id: g1, title: G}]
milestones: [{id: m1, title: M, goal: g1}]
tasks: [{id: t1, title: T, milestone: m9, goal: g1}]
`,
		"duplicate id": `
goals: [{id: g1, title: G}, {id: g1, title: H}]
`,
		"missing id": `
goals: [{title: G}]
`,
		"bad yaml": `goals: [`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}
