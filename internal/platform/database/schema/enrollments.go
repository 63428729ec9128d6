package schema

// EnrollmentsTable represents the 'user_program_enrollments' table
type EnrollmentsTable struct {
	Table              string
	ID                 string
	UserID             string
	ProgramID          string
	Status             string
	ProgressPercentage string
	CompletedAt        string
	CreatedAt          string
	UpdatedAt          string
}

// Enrollments is the schema definition for user_program_enrollments
var Enrollments = EnrollmentsTable{
	Table:              "user_program_enrollments",
	ID:                 "id",
	UserID:             "user_id",
	ProgramID:          "program_id",
	Status:             "status",
	ProgressPercentage: "progress_percentage",
	CompletedAt:        "completed_at",
	CreatedAt:          "created_at",
	UpdatedAt:          "updated_at",
}

// CompletedModulesTable represents the 'completed_modules' table
type CompletedModulesTable struct {
	Table        string
	ID           string
	EnrollmentID string
	ModuleID     string
	CompletedAt  string
}

// CompletedModules is the schema definition for completed_modules
var CompletedModules = CompletedModulesTable{
	Table:        "completed_modules",
	ID:           "id",
	EnrollmentID: "enrollment_id",
	ModuleID:     "module_id",
	CompletedAt:  "completed_at",
}
