package planner

import "manifest/internal/models"

const (
	// XGap is the horizontal distance between depth columns.
	XGap = 250.0
	// YGap is the height of one row slot.
	YGap = 80.0
)

// NodeKind tells the renderer which style a node gets.
type NodeKind string

const (
	NodeGoal      NodeKind = "goal"
	NodeMilestone NodeKind = "milestone"
	NodeTask      NodeKind = "task"
)

// Point is a position on the mindmap canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a positioned goal, milestone or task.
type Node struct {
	ID       string   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Label    string   `json:"label"`
	Position Point    `json:"position"`
}

// Edge connects a parent node to one of its children.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Layout is the full mindmap graph.
type Layout struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// LayoutMindmap places goals, milestones and tasks in three columns. Heights
// are computed bottom-up: a task takes one YGap row, a milestone centers over
// its tasks, a goal centers over its milestones, and goals are separated by
// one extra YGap. Children are emitted before their parent.
func LayoutMindmap(goals []models.Goal) Layout {
	layout := Layout{Nodes: []Node{}, Edges: []Edge{}}
	var y float64

	for _, goal := range goals {
		goalID := "goal-" + goal.ID
		var milestonesHeight float64

		for _, milestone := range goal.Milestones {
			milestoneID := "milestone-" + milestone.ID
			var tasksHeight float64

			for _, task := range milestone.Tasks {
				taskID := "task-" + task.ID
				layout.Nodes = append(layout.Nodes, Node{
					ID:       taskID,
					Kind:     NodeTask,
					Label:    task.Title,
					Position: Point{X: 2 * XGap, Y: y + milestonesHeight + tasksHeight},
				})
				layout.Edges = append(layout.Edges, edge(milestoneID, taskID))
				tasksHeight += YGap
			}

			layout.Nodes = append(layout.Nodes, Node{
				ID:       milestoneID,
				Kind:     NodeMilestone,
				Label:    milestone.Title,
				Position: Point{X: XGap, Y: y + milestonesHeight + centerOffset(tasksHeight)},
			})
			layout.Edges = append(layout.Edges, edge(goalID, milestoneID))
			milestonesHeight += max(YGap, tasksHeight)
		}

		layout.Nodes = append(layout.Nodes, Node{
			ID:       goalID,
			Kind:     NodeGoal,
			Label:    goal.Title,
			Position: Point{X: 0, Y: y + centerOffset(milestonesHeight)},
		})
		y += max(YGap, milestonesHeight) + YGap
	}
	return layout
}

func centerOffset(span float64) float64 {
	return max(0, span-YGap) / 2
}

func edge(source, target string) Edge {
	return Edge{ID: "e-" + source + "-" + target, Source: source, Target: target}
}
