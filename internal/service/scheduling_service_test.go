package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAvailabilityRepo struct {
	byKind map[model.OwnerKind][]model.AvailabilitySlot
	err    error
}

func (f *fakeAvailabilityRepo) GetAvailableByOwner(_ context.Context, _ int64, kind model.OwnerKind) ([]model.AvailabilitySlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byKind[kind], nil
}

type fakeEnrollmentRepo struct {
	enrollment *model.Enrollment
}

func (f *fakeEnrollmentRepo) GetByIDWithDetails(_ context.Context, _ int64) (*model.Enrollment, error) {
	return f.enrollment, nil
}

type fakeLessonRepo struct {
	studentLessons []*model.Lesson
	teacherLessons []*model.Lesson
}

func (f *fakeLessonRepo) GetActiveBetweenForStudent(_ context.Context, _ int64, _, _ time.Time) ([]*model.Lesson, error) {
	return f.studentLessons, nil
}

func (f *fakeLessonRepo) GetActiveBetweenForTeacher(_ context.Context, _ int64, _, _ time.Time) ([]*model.Lesson, error) {
	return f.teacherLessons, nil
}

type fakeConflictChecker struct {
	conflictAt []time.Time
	err        error
}

func (f *fakeConflictChecker) HasConflict(_ context.Context, _, _ int64, start, _ time.Time, _ *int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, t := range f.conflictAt {
		if t.Equal(start) {
			return true, nil
		}
	}
	return false, nil
}

type fakeGenerator struct {
	response string
	err      error
	called   bool
}

func (f *fakeGenerator) GenerateCompletion(_ context.Context, _, _ string) (string, error) {
	f.called = true
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// Понедельник 2025-03-10 12:00 локального времени
var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

func testEnrollment() *model.Enrollment {
	return &model.Enrollment{
		ID:         7,
		StudentID:  1,
		TeacherID:  2,
		CourseID:   3,
		HourlyRate: decimal.NewFromInt(1500),
		IsActive:   true,
		Student:    &model.Student{ID: 1, Name: "Анна"},
		Teacher:    &model.Teacher{ID: 2, Name: "Борис"},
		Course:     &model.Course{ID: 3, Name: "Алгебра"},
	}
}

// Обе стороны свободны во вторник и среду с 09:00 до 18:00
func testAvailability() *fakeAvailabilityRepo {
	slots := func(ownerID int64, kind model.OwnerKind) []model.AvailabilitySlot {
		return []model.AvailabilitySlot{
			{OwnerID: ownerID, OwnerKind: kind, Weekday: 2, StartMinute: 540, EndMinute: 1080, IsAvailable: true},
			{OwnerID: ownerID, OwnerKind: kind, Weekday: 3, StartMinute: 540, EndMinute: 1080, IsAvailable: true},
		}
	}
	return &fakeAvailabilityRepo{byKind: map[model.OwnerKind][]model.AvailabilitySlot{
		model.OwnerKindStudent: slots(1, model.OwnerKindStudent),
		model.OwnerKindTeacher: slots(2, model.OwnerKindTeacher),
	}}
}

func newTestSchedulingService(availability *fakeAvailabilityRepo, gen *fakeGenerator, conflicts *fakeConflictChecker) *SchedulingService {
	s := NewSchedulingService(
		availability,
		&fakeEnrollmentRepo{enrollment: testEnrollment()},
		&fakeLessonRepo{},
		conflicts,
		gen,
		zap.NewNop(),
	)
	s.now = func() time.Time { return testNow }
	return s
}

func TestFindCommonSlots(t *testing.T) {
	availability := &fakeAvailabilityRepo{byKind: map[model.OwnerKind][]model.AvailabilitySlot{
		model.OwnerKindStudent: {
			{OwnerID: 1, OwnerKind: model.OwnerKindStudent, Weekday: 1, StartMinute: 540, EndMinute: 720, IsAvailable: true},
		},
		model.OwnerKindTeacher: {
			{OwnerID: 2, OwnerKind: model.OwnerKindTeacher, Weekday: 1, StartMinute: 600, EndMinute: 780, IsAvailable: true},
		},
	}}
	s := newTestSchedulingService(availability, &fakeGenerator{}, &fakeConflictChecker{})

	windows, err := s.FindCommonSlots(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, model.CommonWindow{Weekday: 1, StartMinute: 600, EndMinute: 720}, windows[0])
}

func TestSuggestLessonTimes_ValidCandidates(t *testing.T) {
	gen := &fakeGenerator{response: `[
		{"studentId": 1, "teacherId": 2, "courseId": 3, "enrollmentId": 7,
		 "startDateTime": "2025-03-11T15:00:00", "endDateTime": "2025-03-11T16:00:00",
		 "location": "Онлайн", "notes": ""},
		{"studentId": 1, "teacherId": 2, "courseId": 3, "enrollmentId": 7,
		 "startDateTime": "2025-03-12T10:00:00", "endDateTime": "2025-03-12T11:00:00",
		 "location": "Онлайн", "notes": ""}
	]`}
	s := newTestSchedulingService(testAvailability(), gen, &fakeConflictChecker{})

	proposals, err := s.SuggestLessonTimes(context.Background(), 7, 60)
	require.NoError(t, err)
	require.Len(t, proposals, 2)

	// Порядок генератора сохраняется
	assert.Equal(t, time.Date(2025, 3, 11, 15, 0, 0, 0, time.Local), proposals[0].StartTime.Time)
	assert.Equal(t, time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local), proposals[1].StartTime.Time)
	assert.Equal(t, int64(7), proposals[0].EnrollmentID)
}

func TestSuggestLessonTimes_MalformedResponse(t *testing.T) {
	cases := []struct {
		name     string
		response string
	}{
		{"не JSON", "извините, не могу помочь"},
		{"битый массив", `[{"studentId": 1,`},
		{"объект вместо массива", `{"studentId": 1}`},
		{"пустая строка", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &fakeGenerator{response: tc.response}
			s := newTestSchedulingService(testAvailability(), gen, &fakeConflictChecker{})

			proposals, err := s.SuggestLessonTimes(context.Background(), 7, 60)
			require.NoError(t, err)
			assert.Empty(t, proposals)
		})
	}
}

func TestSuggestLessonTimes_GeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("api unavailable")}
	s := newTestSchedulingService(testAvailability(), gen, &fakeConflictChecker{})

	proposals, err := s.SuggestLessonTimes(context.Background(), 7, 60)
	require.NoError(t, err)
	assert.Empty(t, proposals)
}

func TestSuggestLessonTimes_NoCommonAvailability(t *testing.T) {
	availability := &fakeAvailabilityRepo{byKind: map[model.OwnerKind][]model.AvailabilitySlot{}}
	gen := &fakeGenerator{response: "[]"}
	s := newTestSchedulingService(availability, gen, &fakeConflictChecker{})

	proposals, err := s.SuggestLessonTimes(context.Background(), 7, 60)
	require.NoError(t, err)
	assert.Empty(t, proposals)
	assert.False(t, gen.called, "генератор не должен вызываться без общих окон")
}

func TestSuggestLessonTimes_DropsInvalidCandidates(t *testing.T) {
	conflictStart := time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local)
	gen := &fakeGenerator{response: `[
		{"studentId": 99, "teacherId": 2, "courseId": 3, "enrollmentId": 7,
		 "startDateTime": "2025-03-11T15:00:00", "endDateTime": "2025-03-11T16:00:00"},
		{"startDateTime": "2025-03-11T16:00:00", "endDateTime": "2025-03-11T15:00:00"},
		{"startDateTime": "2025-03-09T10:00:00", "endDateTime": "2025-03-09T11:00:00"},
		{"startDateTime": "2025-03-13T10:00:00", "endDateTime": "2025-03-13T11:00:00"},
		{"startDateTime": "2025-03-12T10:00:00", "endDateTime": "2025-03-12T11:00:00"},
		{"startDateTime": "2025-03-11T10:00:00", "endDateTime": "2025-03-11T11:00:00"}
	]`}
	s := newTestSchedulingService(testAvailability(), gen, &fakeConflictChecker{conflictAt: []time.Time{conflictStart}})

	proposals, err := s.SuggestLessonTimes(context.Background(), 7, 60)
	require.NoError(t, err)

	// Выживает только последний кандидат: чужой id, перевёрнутый интервал,
	// прошлое, четверг вне окон и конфликтующая среда отбракованы
	require.Len(t, proposals, 1)
	assert.Equal(t, time.Date(2025, 3, 11, 10, 0, 0, 0, time.Local), proposals[0].StartTime.Time)
}

func TestSuggestLessonTimes_FillsZeroIDsFromEnrollment(t *testing.T) {
	gen := &fakeGenerator{response: `[
		{"startDateTime": "2025-03-11T15:00:00", "endDateTime": "2025-03-11T16:00:00"}
	]`}
	s := newTestSchedulingService(testAvailability(), gen, &fakeConflictChecker{})

	proposals, err := s.SuggestLessonTimes(context.Background(), 7, 60)
	require.NoError(t, err)
	require.Len(t, proposals, 1)

	assert.Equal(t, int64(1), proposals[0].StudentID)
	assert.Equal(t, int64(2), proposals[0].TeacherID)
	assert.Equal(t, int64(3), proposals[0].CourseID)
	assert.Equal(t, int64(7), proposals[0].EnrollmentID)
}

func TestSuggestLessonTimes_EnrollmentNotFound(t *testing.T) {
	s := NewSchedulingService(
		testAvailability(),
		&fakeEnrollmentRepo{enrollment: nil},
		&fakeLessonRepo{},
		&fakeConflictChecker{},
		&fakeGenerator{},
		zap.NewNop(),
	)

	_, err := s.SuggestLessonTimes(context.Background(), 7, 60)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSuggestLessonTimes_JSONInsideMarkdownFence(t *testing.T) {
	gen := &fakeGenerator{response: "```json\n[{\"startDateTime\": \"2025-03-11T15:00:00\", \"endDateTime\": \"2025-03-11T16:00:00\"}]\n```"}
	s := newTestSchedulingService(testAvailability(), gen, &fakeConflictChecker{})

	proposals, err := s.SuggestLessonTimes(context.Background(), 7, 60)
	require.NoError(t, err)
	require.Len(t, proposals, 1)
}
