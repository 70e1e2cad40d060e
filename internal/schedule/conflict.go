package schedule

import (
	"time"

	"github.com/Freeeeeet/tutor_crm/internal/model"
)

// ConflictingLessons отбирает из списка занятия, конфликтующие с предложенным
// интервалом [start, end) для данной пары студент/учитель. Конфликтом считается
// активное (не отменённое) занятие любой из сторон, пересекающееся по времени.
// excludeID исключает занятие из проверки против его собственного времени.
//
// Фильтр намеренно дублирует условия SQL-запроса: хранилище может вернуть
// более широкую выборку, движок всегда фильтрует сам.
func ConflictingLessons(lessons []*model.Lesson, studentID, teacherID int64, start, end time.Time, excludeID *int64) []*model.Lesson {
	var conflicts []*model.Lesson
	for _, l := range lessons {
		if excludeID != nil && l.ID == *excludeID {
			continue
		}
		if l.StudentID != studentID && l.TeacherID != teacherID {
			continue
		}
		if !l.IsActive() {
			continue
		}
		if Overlaps(l.StartTime, l.EndTime, start, end) {
			conflicts = append(conflicts, l)
		}
	}
	return conflicts
}
