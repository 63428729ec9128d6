package schema

// UsersTable represents the 'users' table
type UsersTable struct {
	Table        string
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	Role         string
	MemberLevel  string
	PhoneNumber  string
	PictureURL   string
	CreatedAt    string
	UpdatedAt    string
}

// Users is the schema definition for users
var Users = UsersTable{
	Table:        "users",
	ID:           "id",
	FullName:     "full_name",
	Email:        "email",
	PasswordHash: "password_hash",
	Role:         "role",
	MemberLevel:  "member_level",
	PhoneNumber:  "phone_number",
	PictureURL:   "picture_url",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}
