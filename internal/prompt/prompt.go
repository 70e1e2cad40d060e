// Package prompt собирает текстовые подсказки для генератора
// предложений по расписанию.
package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_crm/internal/model"
)

// SystemMessage системное сообщение для генератора предложений
const SystemMessage = "You are an AI assistant specialized in scheduling private tutoring lessons. " +
	"Your goal is to suggest optimal lesson times based on availability and existing schedules. " +
	"Respond ONLY with a valid JSON array of proposed lessons, without any introductory text, " +
	"explanations or markdown formatting."

// WeekdayName возвращает английское название дня недели (0 = Sunday)
func WeekdayName(weekday int) string {
	if weekday < 0 || weekday > 6 {
		return "Unknown"
	}
	return time.Weekday(weekday).String()
}

// FormatCommonWindows форматирует общие окна доступности для подсказки
func FormatCommonWindows(windows []model.CommonWindow) string {
	if len(windows) == 0 {
		return "None"
	}

	lines := make([]string, 0, len(windows))
	for _, w := range windows {
		lines = append(lines, fmt.Sprintf("- %s: %s to %s",
			WeekdayName(w.Weekday),
			model.FormatMinute(w.StartMinute),
			model.FormatMinute(w.EndMinute),
		))
	}
	return strings.Join(lines, "\n")
}

// FormatExistingLessons форматирует занятия обеих сторон для подсказки
func FormatExistingLessons(studentLessons, teacherLessons []*model.Lesson) string {
	var sb strings.Builder

	sb.WriteString("Student's existing lessons (next 2 weeks):\n")
	writeLessonLines(&sb, studentLessons)

	sb.WriteString("\nTeacher's existing lessons (next 2 weeks):\n")
	writeLessonLines(&sb, teacherLessons)

	return sb.String()
}

func writeLessonLines(sb *strings.Builder, lessons []*model.Lesson) {
	if len(lessons) == 0 {
		sb.WriteString("None\n")
		return
	}
	for _, l := range lessons {
		sb.WriteString(fmt.Sprintf("- %s to %s\n",
			l.StartTime.Format("2006-01-02T15:04:05"),
			l.EndTime.Format("2006-01-02T15:04:05"),
		))
	}
}

// SuggestParams данные для построения подсказки
type SuggestParams struct {
	StudentName     string
	TeacherName     string
	CourseName      string
	DurationMinutes int
	Now             time.Time
	CommonWindows   []model.CommonWindow
	StudentLessons  []*model.Lesson
	TeacherLessons  []*model.Lesson
	StudentID       int64
	TeacherID       int64
	CourseID        int64
	EnrollmentID    int64
}

// BuildSuggestLessonTimes собирает подсказку для генерации предложений
// конкретных занятий на ближайшие две недели
func BuildSuggestLessonTimes(p SuggestParams) string {
	today := p.Now.Format("2006-01-02")

	return fmt.Sprintf(
		"Based on the following information, suggest up to 5 potential start times for a new %d-minute "+
			"lesson for student '%s' with teacher '%s' for the course '%s' within the next two weeks.\n\n"+
			"Student Name: %s\n"+
			"Teacher Name: %s\n"+
			"Course Name: %s\n"+
			"Desired Lesson Duration: %d minutes\n\n"+
			"Current Date: %s\n"+
			"Their General Weekly Common Availability:\n%s\n\n"+
			"Existing Scheduled Lessons (for context, avoid conflicts):\n%s\n"+
			"Please suggest specific date and time slots that fall within the next two weeks from today (%s). "+
			"All suggestions MUST use the current year (%d). "+
			"The dates must fall within the common availability and avoid the existing lessons.\n\n"+
			"IMPORTANT: Output the suggestions as a JSON array of objects with the following structure exactly:\n"+
			"[{\n"+
			"  \"studentId\": %d,\n"+
			"  \"teacherId\": %d,\n"+
			"  \"courseId\": %d,\n"+
			"  \"enrollmentId\": %d,\n"+
			"  \"startDateTime\": \"YYYY-MM-DDTHH:mm:ss\",\n"+
			"  \"endDateTime\": \"YYYY-MM-DDTHH:mm:ss\",\n"+
			"  \"notes\": \"Optional explanation about this suggestion\"\n"+
			"}, ...]\n\n"+
			"Ensure each suggested time slot starts and ends within the common availability. "+
			"If no suitable slots are found, return an empty array [].",
		p.DurationMinutes, p.StudentName, p.TeacherName, p.CourseName,
		p.StudentName, p.TeacherName, p.CourseName, p.DurationMinutes,
		today,
		FormatCommonWindows(p.CommonWindows),
		FormatExistingLessons(p.StudentLessons, p.TeacherLessons),
		today,
		p.Now.Year(),
		p.StudentID, p.TeacherID, p.CourseID, p.EnrollmentID,
	)
}
