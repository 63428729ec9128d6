package schema

// CoursesTable represents the 'courses' table
type CoursesTable struct {
	Table     string
	ID        string
	ProgramID string
	CreatedAt string
	UpdatedAt string
}

// Courses is the schema definition for courses
var Courses = CoursesTable{
	Table:     "courses",
	ID:        "id",
	ProgramID: "program_id",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

// CourseModulesTable represents the 'course_modules' table
type CourseModulesTable struct {
	Table       string
	ID          string
	CourseID    string
	Title       string
	MaterialURL string
	OrderNumber string
	CreatedAt   string
	UpdatedAt   string
}

// CourseModules is the schema definition for course_modules
var CourseModules = CourseModulesTable{
	Table:       "course_modules",
	ID:          "id",
	CourseID:    "course_id",
	Title:       "title",
	MaterialURL: "material_url",
	OrderNumber: "order_number",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}
