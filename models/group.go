package models

// GroupCreated is the groups collaborator's answer to a create request.
type GroupCreated struct {
	GroupID       string `json:"group_id"`
	ShareableLink string `json:"shareable_link"`
	Message       string `json:"message,omitempty"`
}

// VoterInfo identifies one voter on the shared voting page.
type VoterInfo struct {
	Email string `json:"voter_email"`
	Name  string `json:"voter_name,omitempty"`
	Phone string `json:"voter_phone,omitempty"`
}

// VoteChoices is one member's submitted preferences.
type VoteChoices struct {
	Destination string   `json:"destination"`
	Budget      string   `json:"budget,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Activities  []string `json:"activities,omitempty"`
}

// GroupTally is the majority result across all votes so far.
type GroupTally struct {
	GroupID              string   `json:"group_id"`
	GroupName            string   `json:"group_name"`
	MostVotedDestination string   `json:"most_voted_destination,omitempty"`
	MostVotedBudget      string   `json:"most_voted_budget,omitempty"`
	MostVotedDates       string   `json:"most_voted_dates,omitempty"`
	MostVotedActivities  []string `json:"most_voted_activities,omitempty"`
	TotalVotes           int      `json:"total_votes"`
}
