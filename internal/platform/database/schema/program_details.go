package schema

// SeminarsTable represents the 'seminars' table
type SeminarsTable struct {
	Table         string
	ID            string
	ProgramID     string
	Speaker       string
	Venue         string
	StartDatetime string
	EndDatetime   string
	CreatedAt     string
	UpdatedAt     string
}

// Seminars is the schema definition for seminars
var Seminars = SeminarsTable{
	Table:         "seminars",
	ID:            "id",
	ProgramID:     "program_id",
	Speaker:       "speaker",
	Venue:         "venue",
	StartDatetime: "start_datetime",
	EndDatetime:   "end_datetime",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
}

// WorkshopsTable represents the 'workshops' table
type WorkshopsTable struct {
	Table         string
	ID            string
	ProgramID     string
	Instructor    string
	Venue         string
	StartDatetime string
	EndDatetime   string
	CreatedAt     string
	UpdatedAt     string
}

// Workshops is the schema definition for workshops
var Workshops = WorkshopsTable{
	Table:         "workshops",
	ID:            "id",
	ProgramID:     "program_id",
	Instructor:    "instructor",
	Venue:         "venue",
	StartDatetime: "start_datetime",
	EndDatetime:   "end_datetime",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
}

// CompetitionsTable represents the 'competitions' table
type CompetitionsTable struct {
	Table         string
	ID            string
	ProgramID     string
	Organizer     string
	Venue         string
	PrizePoolIDR  string
	StartDatetime string
	EndDatetime   string
	CreatedAt     string
	UpdatedAt     string
}

// Competitions is the schema definition for competitions
var Competitions = CompetitionsTable{
	Table:         "competitions",
	ID:            "id",
	ProgramID:     "program_id",
	Organizer:     "organizer",
	Venue:         "venue",
	PrizePoolIDR:  "prize_pool_idr",
	StartDatetime: "start_datetime",
	EndDatetime:   "end_datetime",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
}
