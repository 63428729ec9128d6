package schema

// ProgramsTable represents the 'programs' table
type ProgramsTable struct {
	Table         string
	ID            string
	Title         string
	Description   string
	Type          string
	PriceIDR      string
	AvailableDate string
	PictureURL    string
	CreatedAt     string
	UpdatedAt     string
	DeletedAt     string
}

// Programs is the schema definition for programs
var Programs = ProgramsTable{
	Table:         "programs",
	ID:            "id",
	Title:         "title",
	Description:   "description",
	Type:          "type",
	PriceIDR:      "price_idr",
	AvailableDate: "available_date",
	PictureURL:    "picture_url",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
	DeletedAt:     "deleted_at",
}
