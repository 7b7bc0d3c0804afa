package views

import "manifest/internal/planner"

// Mindmap lays out the mindmap page's copy of the goal tree.
func (v *Views) Mindmap() planner.Layout {
	v.mu.Lock()
	defer v.mu.Unlock()
	return planner.LayoutMindmap(v.mindmap)
}
