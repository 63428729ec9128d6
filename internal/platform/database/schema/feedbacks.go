package schema

// FeedbacksTable represents the 'feedbacks' table
type FeedbacksTable struct {
	Table     string
	ID        string
	FullName  string
	Email     string
	Subject   string
	Body      string
	CreatedAt string
	UpdatedAt string
}

// Feedbacks is the schema definition for feedbacks
var Feedbacks = FeedbacksTable{
	Table:     "feedbacks",
	ID:        "id",
	FullName:  "full_name",
	Email:     "email",
	Subject:   "subject",
	Body:      "body",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

// FeedbackResponsesTable represents the 'feedback_responses' table
type FeedbackResponsesTable struct {
	Table      string
	ID         string
	FeedbackID string
	AdminID    string
	Body       string
	CreatedAt  string
}

// FeedbackResponses is the schema definition for feedback_responses
var FeedbackResponses = FeedbackResponsesTable{
	Table:      "feedback_responses",
	ID:         "id",
	FeedbackID: "feedback_id",
	AdminID:    "admin_id",
	Body:       "body",
	CreatedAt:  "created_at",
}
