// Package schedule содержит чистую интервальную арифметику движка расписания:
// пересечение еженедельной доступности, склейку окон и проверку пересечений
// конкретных датированных занятий. Все интервалы полуоткрытые: [start, end).
package schedule

import (
	"sort"
	"time"

	"github.com/Freeeeeet/tutor_crm/internal/model"
)

// Overlaps проверяет пересечение двух датированных интервалов.
// Интервалы полуоткрытые, поэтому соприкасающиеся границы
// (aEnd == bStart) пересечением не считаются.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// intersectMinutes возвращает пересечение двух интервалов в минутах от полуночи.
// Если пересечения нет (в том числе при касании границ), ok == false.
func intersectMinutes(aStart, aEnd, bStart, bEnd int) (start, end int, ok bool) {
	start = aStart
	if bStart > start {
		start = bStart
	}
	end = aEnd
	if bEnd < end {
		end = bEnd
	}
	return start, end, start < end
}

// MergeWindows склеивает пересекающиеся и примыкающие окна по каждому дню недели.
// Примыкающие окна (конец одного равен началу следующего) склеиваются намеренно:
// пользователю показывается 9:00-11:00, а не 9:00-10:00 и 10:00-11:00.
// Результат отсортирован по (weekday, start) и не содержит пересечений.
func MergeWindows(windows []model.CommonWindow) []model.CommonWindow {
	if len(windows) <= 1 {
		return windows
	}

	byDay := make(map[int][]model.CommonWindow)
	for _, w := range windows {
		byDay[w.Weekday] = append(byDay[w.Weekday], w)
	}

	merged := make([]model.CommonWindow, 0, len(windows))
	for _, dayWindows := range byDay {
		sort.Slice(dayWindows, func(i, j int) bool {
			return dayWindows[i].StartMinute < dayWindows[j].StartMinute
		})

		current := dayWindows[0]
		for _, next := range dayWindows[1:] {
			if next.StartMinute <= current.EndMinute {
				// Пересечение или примыкание: расширяем текущее окно
				if next.EndMinute > current.EndMinute {
					current.EndMinute = next.EndMinute
				}
			} else {
				merged = append(merged, current)
				current = next
			}
		}
		merged = append(merged, current)
	}

	sortWindows(merged)
	return merged
}

// CommonWindows вычисляет общие окна еженедельной доступности двух сторон.
// Слоты с isAvailable == false отбрасываются. Если у одной из сторон нет
// доступности в какой-то день, общих окон в этот день нет: доступность
// "весь день по умолчанию" не подразумевается.
func CommonWindows(first, second []model.AvailabilitySlot) []model.CommonWindow {
	firstByDay := groupAvailableByDay(first)
	secondByDay := groupAvailableByDay(second)

	var windows []model.CommonWindow
	for day := 0; day < 7; day++ {
		firstSlots := firstByDay[day]
		secondSlots := secondByDay[day]
		if len(firstSlots) == 0 || len(secondSlots) == 0 {
			continue
		}

		// Полный попарный перебор: количество слотов на день единицы,
		// поэтому O(n*m) здесь приемлем
		for _, a := range firstSlots {
			for _, b := range secondSlots {
				start, end, ok := intersectMinutes(a.StartMinute, a.EndMinute, b.StartMinute, b.EndMinute)
				if ok {
					windows = append(windows, model.CommonWindow{
						Weekday:     day,
						StartMinute: start,
						EndMinute:   end,
					})
				}
			}
		}
	}

	return MergeWindows(windows)
}

// WindowsContain проверяет, что датированный интервал целиком лежит внутри
// одного из еженедельных окон своего дня недели. Интервал через полночь
// не может поместиться в окно и всегда даёт false.
func WindowsContain(windows []model.CommonWindow, start, end time.Time) bool {
	if !start.Before(end) {
		return false
	}

	startMinute := model.MinuteOfDay(start)
	endMinute := model.MinuteOfDay(end)

	sameDay := start.Year() == end.Year() && start.YearDay() == end.YearDay()
	if !sameDay {
		// Конец ровно в полночь следующего дня считается концом текущего дня
		midnight := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()).AddDate(0, 0, 1)
		if !end.Equal(midnight) {
			return false
		}
		endMinute = 24 * 60
	}

	weekday := int(start.Weekday())
	for _, w := range windows {
		if w.Weekday == weekday && w.StartMinute <= startMinute && endMinute <= w.EndMinute {
			return true
		}
	}
	return false
}

func groupAvailableByDay(slots []model.AvailabilitySlot) map[int][]model.AvailabilitySlot {
	byDay := make(map[int][]model.AvailabilitySlot)
	for _, s := range slots {
		if !s.IsAvailable {
			continue
		}
		byDay[s.Weekday] = append(byDay[s.Weekday], s)
	}
	return byDay
}

func sortWindows(windows []model.CommonWindow) {
	sort.Slice(windows, func(i, j int) bool {
		if windows[i].Weekday != windows[j].Weekday {
			return windows[i].Weekday < windows[j].Weekday
		}
		return windows[i].StartMinute < windows[j].StartMinute
	})
}
