package dto

// OrganizerStats are the aggregates the scoring engine derives XP from.
// All of them are restricted to the organizer's FINISHED events.
type OrganizerStats struct {
	AvgRating      float64
	TotalCheckins  int64
	FinishedEvents int64
}

// OrganizerScore is the derived gamification state written back to the user.
type OrganizerScore struct {
	XP     uint
	League string
	Rating float64
}
