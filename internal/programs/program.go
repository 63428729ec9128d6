// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

/*
Package programs manages the catalogue of learning programs.

A program is one of four types — Course, Seminar, Workshop, Competition —
sharing a common header row (title, price, availability) plus a per-type
detail row. Courses additionally own an ordered list of modules whose
content is guarded by the program-access gate.

# Architecture

  - Entities: Program, the per-type detail structs, and Module.
  - Writes: header + detail row are created/updated inside one transaction.
  - Deletes: soft, via deleted_at; all reads exclude deleted programs.
*/
package programs

import (
	"time"

	"github.com/informatics-lc/backend/pkg/slice"
)

// Type enumerates the program kinds.
type Type string

const (
	TypeCourse      Type = "Course"
	TypeSeminar     Type = "Seminar"
	TypeWorkshop    Type = "Workshop"
	TypeCompetition Type = "Competition"
)

// Types lists every valid program type, for validation.
func Types() []string {
	return slice.Map(
		[]Type{TypeCourse, TypeSeminar, TypeWorkshop, TypeCompetition},
		func(programType Type) string { return string(programType) },
	)
}

// Program is the shared catalogue header of every learning program.
type Program struct {
	ID            int        `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Type          Type       `json:"type"`
	PriceIDR      int64      `json:"priceIdr"`
	AvailableDate time.Time  `json:"availableDate"`
	PictureURL    *string    `json:"pictureUrl"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	DeletedAt     *time.Time `json:"-"`
}

// CourseDetail is the per-type payload of a Course program.
type CourseDetail struct {
	CourseID     int `json:"-"`
	TotalModules int `json:"totalModules"`
}

// SeminarDetail is the per-type payload of a Seminar program.
type SeminarDetail struct {
	Speaker       string    `json:"speaker"`
	Venue         string    `json:"venue"`
	StartDatetime time.Time `json:"startDatetime"`
	EndDatetime   time.Time `json:"endDatetime"`
}

// WorkshopDetail is the per-type payload of a Workshop program.
type WorkshopDetail struct {
	Instructor    string    `json:"instructor"`
	Venue         string    `json:"venue"`
	StartDatetime time.Time `json:"startDatetime"`
	EndDatetime   time.Time `json:"endDatetime"`
}

// CompetitionDetail is the per-type payload of a Competition program.
type CompetitionDetail struct {
	Organizer     string    `json:"organizer"`
	Venue         string    `json:"venue"`
	PrizePoolIDR  int64     `json:"prizePoolIdr"`
	StartDatetime time.Time `json:"startDatetime"`
	EndDatetime   time.Time `json:"endDatetime"`
}

// Detail carries whichever per-type payload exists for a program. Exactly
// one field is set for a healthy record; all may be nil when the detail
// row is missing, which is reported as nulls rather than an error.
type Detail struct {
	Course      *CourseDetail      `json:"course,omitempty"`
	Seminar     *SeminarDetail     `json:"seminar,omitempty"`
	Workshop    *WorkshopDetail    `json:"workshop,omitempty"`
	Competition *CompetitionDetail `json:"competition,omitempty"`
}

// WithDetail is the single-program response shape.
type WithDetail struct {
	Program
	Detail *Detail `json:"detail"`
}

// Module is one unit of course content.
type Module struct {
	ID          int       `json:"id"`
	CourseID    int       `json:"courseId"`
	Title       string    `json:"title"`
	MaterialURL string    `json:"materialUrl"`
	OrderNumber int       `json:"orderNumber"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
