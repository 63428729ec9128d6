// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package programs_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/dberr"
	"github.com/informatics-lc/backend/internal/programs"
	"github.com/informatics-lc/backend/pkg/pointer"
)

// fakeRepository is an in-memory programs.Repository.
type fakeRepository struct {
	byID    map[int]*programs.Program
	details map[int]programs.DetailInput
	modules map[int][]programs.Module
	nextID  int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byID:    map[int]*programs.Program{},
		details: map[int]programs.DetailInput{},
		modules: map[int][]programs.Module{},
		nextID:  1,
	}
}

func (f *fakeRepository) Count(_ context.Context, _ programs.ListFilter) (int, error) {
	return len(f.byID), nil
}

func (f *fakeRepository) FindMany(_ context.Context, _ programs.ListFilter) ([]programs.Program, error) {
	rows := make([]programs.Program, 0, len(f.byID))
	for _, row := range f.byID {
		rows = append(rows, *row)
	}
	return rows, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id int) (*programs.Program, error) {
	row, ok := f.byID[id]
	if !ok || row.DeletedAt != nil {
		return nil, dberr.ErrNoRows
	}
	copied := *row
	return &copied, nil
}

func (f *fakeRepository) LoadDetail(_ context.Context, program *programs.Program) (*programs.Detail, error) {
	detail := &programs.Detail{}
	input, ok := f.details[program.ID]
	if !ok {
		return detail, nil
	}
	detail.Seminar = input.Seminar
	detail.Workshop = input.Workshop
	detail.Competition = input.Competition
	return detail, nil
}

func (f *fakeRepository) Create(_ context.Context, program *programs.Program, detail programs.DetailInput) error {
	program.ID = f.nextID
	f.nextID++
	program.CreatedAt = time.Now()
	program.UpdatedAt = program.CreatedAt
	stored := *program
	f.byID[program.ID] = &stored
	f.details[program.ID] = detail
	return nil
}

func (f *fakeRepository) Update(_ context.Context, program *programs.Program, detail *programs.DetailInput) error {
	if _, ok := f.byID[program.ID]; !ok {
		return dberr.ErrNoRows
	}
	stored := *program
	f.byID[program.ID] = &stored
	if detail != nil {
		f.details[program.ID] = *detail
	}
	return nil
}

func (f *fakeRepository) SoftDelete(_ context.Context, id int) error {
	row, ok := f.byID[id]
	if !ok || row.DeletedAt != nil {
		return dberr.ErrNoRows
	}
	now := time.Now()
	row.DeletedAt = &now
	return nil
}

func (f *fakeRepository) FindModules(_ context.Context, programID int) ([]programs.Module, error) {
	return f.modules[programID], nil
}

func (f *fakeRepository) CreateModule(_ context.Context, programID int, module *programs.Module) error {
	module.ID = len(f.modules[programID]) + 1
	f.modules[programID] = append(f.modules[programID], *module)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedCourse(t *testing.T, service *programs.Service) *programs.WithDetail {
	t.Helper()
	created, err := service.Create(context.Background(), programs.CreateInput{
		Title:         "Pemrograman Dasar",
		Description:   "Belajar Go dari awal.",
		Type:          "Course",
		PriceIDR:      150_000,
		AvailableDate: time.Now(),
	})
	require.NoError(t, err)
	return created
}

/*
TestService_Create tests header validation and the per-type detail
requirement.
*/
func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates_course", func(t *testing.T) {
		service := programs.NewService(newFakeRepository(), testLogger())

		created := seedCourse(t, service)

		assert.Equal(t, programs.TypeCourse, created.Type)
	})

	t.Run("seminar_requires_detail", func(t *testing.T) {
		service := programs.NewService(newFakeRepository(), testLogger())

		_, err := service.Create(ctx, programs.CreateInput{
			Title:         "Go Meetup",
			Description:   "Sesi tunggal.",
			Type:          "Seminar",
			AvailableDate: time.Now(),
		})

		assert.True(t, apperr.IsStatus(err, http.StatusBadRequest))
	})

	t.Run("unknown_type_is_400", func(t *testing.T) {
		service := programs.NewService(newFakeRepository(), testLogger())

		_, err := service.Create(ctx, programs.CreateInput{
			Title:         "X",
			Description:   "Y",
			Type:          "Bootcamp",
			AvailableDate: time.Now(),
		})

		assert.True(t, apperr.IsStatus(err, http.StatusBadRequest))
	})
}

/*
TestService_Update tests partial updates and the immutable type rule.
*/
func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("changes_title_and_price", func(t *testing.T) {
		service := programs.NewService(newFakeRepository(), testLogger())
		created := seedCourse(t, service)

		updated, err := service.Update(ctx, created.ID, programs.UpdateInput{
			Title:    pointer.To("Pemrograman Lanjut"),
			PriceIDR: pointer.To(int64(250_000)),
		})

		require.NoError(t, err)
		assert.Equal(t, "Pemrograman Lanjut", updated.Title)
		assert.Equal(t, int64(250_000), updated.PriceIDR)
	})

	t.Run("type_change_is_400", func(t *testing.T) {
		service := programs.NewService(newFakeRepository(), testLogger())
		created := seedCourse(t, service)

		_, err := service.Update(ctx, created.ID, programs.UpdateInput{
			Type: pointer.To("Seminar"),
		})

		assert.True(t, apperr.IsStatus(err, http.StatusBadRequest))
	})

	t.Run("restating_same_type_is_fine", func(t *testing.T) {
		service := programs.NewService(newFakeRepository(), testLogger())
		created := seedCourse(t, service)

		_, err := service.Update(ctx, created.ID, programs.UpdateInput{
			Type: pointer.To("Course"),
		})

		assert.NoError(t, err)
	})

	t.Run("unknown_program_is_404", func(t *testing.T) {
		service := programs.NewService(newFakeRepository(), testLogger())

		_, err := service.Update(ctx, 99, programs.UpdateInput{Title: pointer.To("X")})

		assert.True(t, apperr.IsStatus(err, http.StatusNotFound))
	})
}

/*
TestService_Delete tests the soft delete and its effect on reads.
*/
func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	service := programs.NewService(newFakeRepository(), testLogger())
	created := seedCourse(t, service)

	require.NoError(t, service.Delete(ctx, created.ID))

	_, err := service.Get(ctx, created.ID)
	assert.True(t, apperr.IsStatus(err, http.StatusNotFound))

	// Deleting twice reports the program as gone.
	err = service.Delete(ctx, created.ID)
	assert.True(t, apperr.IsStatus(err, http.StatusNotFound))
}

/*
TestService_Modules tests the course-only module listing rule.
*/
func TestService_Modules(t *testing.T) {
	ctx := context.Background()

	t.Run("lists_course_modules", func(t *testing.T) {
		service := programs.NewService(newFakeRepository(), testLogger())
		created := seedCourse(t, service)

		_, err := service.CreateModule(ctx, created.ID, programs.CreateModuleInput{
			Title:       "Pengenalan",
			MaterialURL: "https://materials.example.com/1",
			OrderNumber: 1,
		})
		require.NoError(t, err)

		modules, err := service.ListModules(ctx, created.ID)
		require.NoError(t, err)
		assert.Len(t, modules, 1)
	})

	t.Run("non_course_is_400", func(t *testing.T) {
		service := programs.NewService(newFakeRepository(), testLogger())

		created, err := service.Create(ctx, programs.CreateInput{
			Title:         "Go Meetup",
			Description:   "Sesi tunggal.",
			Type:          "Seminar",
			AvailableDate: time.Now(),
			Detail: programs.DetailInput{Seminar: &programs.SeminarDetail{
				Speaker:       "Rina",
				Venue:         "Aula 1",
				StartDatetime: time.Now(),
				EndDatetime:   time.Now().Add(2 * time.Hour),
			}},
		})
		require.NoError(t, err)

		_, err = service.ListModules(ctx, created.ID)
		assert.True(t, apperr.IsStatus(err, http.StatusBadRequest))
	})
}

func TestService_List_PriceRange(t *testing.T) {
	service := programs.NewService(newFakeRepository(), testLogger())

	_, err := service.List(context.Background(), programs.ListFilter{
		PriceMin: 100,
		PriceMax: pointer.To(int64(50)),
	})

	assert.True(t, apperr.IsStatus(err, http.StatusBadRequest))
}
