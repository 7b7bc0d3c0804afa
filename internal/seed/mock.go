package seed

import (
	"time"

	"manifest/internal/models"
)

// Mock returns the demo goals, milestones and tasks with dates relative to now.
func Mock(now time.Time) models.Dataset {
	today := now
	tomorrow := now.AddDate(0, 0, 1)
	nextWeek := now.AddDate(0, 0, 7)
	nextMonth := now.AddDate(0, 1, 0)

	at := func(day time.Time, hour int) *time.Time {
		t := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
		return &t
	}
	ptr := func(t time.Time) *time.Time { return &t }

	return models.Dataset{
		Goals: []models.Goal{
			{ID: "g1", Title: "Learn Next.js 14", Deadline: ptr(nextMonth), Category: "Career"},
			{ID: "g2", Title: "Build a Full-Stack App", Category: "Career"},
			{ID: "g3", Title: "Focus on Health", Deadline: ptr(nextMonth), Category: "Health"},
		},
		Milestones: []models.Milestone{
			{ID: "m1", GoalID: "g1", Title: "Project Setup", DueDate: ptr(nextWeek)},
			{ID: "m2", GoalID: "g1", Title: "Core Concepts", DueDate: ptr(nextMonth)},
			{ID: "m3", GoalID: "g2", Title: "Database Setup", DueDate: ptr(tomorrow)},
			{ID: "m4", GoalID: "g2", Title: "Authentication", DueDate: ptr(nextWeek)},
			{ID: "m5", GoalID: "g3", Title: "Improve Fitness", DueDate: ptr(nextMonth)},
			{ID: "m6", GoalID: "g3", Title: "Read More"},
		},
		Tasks: []models.Task{
			{ID: "t1", MilestoneID: "m1", GoalID: "g1", Title: "Setup Next.js project", DueDate: ptr(today), Priority: models.PriorityHigh, Completed: true, ScheduledDateTime: at(today, 9)},
			{ID: "t2", MilestoneID: "m1", GoalID: "g1", Title: "Create basic components", DueDate: ptr(tomorrow), Priority: models.PriorityMedium, ScheduledDateTime: at(tomorrow, 11)},
			{ID: "t3", MilestoneID: "m2", GoalID: "g1", Title: "Read App Router docs", DueDate: ptr(today), Priority: models.PriorityHigh, Completed: true},
			{ID: "t4", MilestoneID: "m2", GoalID: "g1", Title: "Implement server components", DueDate: ptr(nextWeek), Priority: models.PriorityMedium},
			{ID: "t5", MilestoneID: "m3", GoalID: "g2", Title: "Create user schema in Supabase", Priority: models.PriorityHigh, Completed: true},
			{ID: "t6", MilestoneID: "m3", GoalID: "g2", Title: "Implement RLS policies", DueDate: ptr(today), Priority: models.PriorityHigh, ScheduledDateTime: at(today, 14)},
			{ID: "t7", MilestoneID: "m4", GoalID: "g2", Title: "Build login form", DueDate: ptr(nextWeek), Priority: models.PriorityMedium, ScheduledDateTime: at(nextWeek, 10)},
			{ID: "t8", MilestoneID: "m5", GoalID: "g3", Title: "Go for a 30-minute run", DueDate: ptr(today), Priority: models.PriorityMedium, Completed: true},
			{ID: "t9", MilestoneID: "m5", GoalID: "g3", Title: "Meal prep for the week", DueDate: ptr(tomorrow), Priority: models.PriorityLow},
			{ID: "t10", MilestoneID: "m6", GoalID: "g3", Title: "Finish 'Atomic Habits'", DueDate: ptr(nextMonth), Priority: models.PriorityLow},
		},
	}
}
