package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/tutor_crm/internal/model"
)

func slot(weekday, startMinute, endMinute int) model.AvailabilitySlot {
	return model.AvailabilitySlot{
		Weekday:     weekday,
		StartMinute: startMinute,
		EndMinute:   endMinute,
		IsAvailable: true,
	}
}

func window(weekday, startMinute, endMinute int) model.CommonWindow {
	return model.CommonWindow{Weekday: weekday, StartMinute: startMinute, EndMinute: endMinute}
}

const (
	monday = 1
	friday = 5
)

func TestCommonWindows_BasicIntersection(t *testing.T) {
	// Студент: Пн 09:00-11:00, учитель: Пн 10:00-12:00 -> общее окно Пн 10:00-11:00
	student := []model.AvailabilitySlot{slot(monday, 9*60, 11*60)}
	teacher := []model.AvailabilitySlot{slot(monday, 10*60, 12*60)}

	got := CommonWindows(student, teacher)

	assert.Equal(t, []model.CommonWindow{window(monday, 10*60, 11*60)}, got)
}

func TestCommonWindows_TouchingSlotsDoNotIntersect(t *testing.T) {
	// Интервалы полуоткрытые: 09:00-10:00 и 10:00-11:00 не пересекаются
	student := []model.AvailabilitySlot{slot(monday, 9*60, 10*60)}
	teacher := []model.AvailabilitySlot{slot(monday, 10*60, 11*60)}

	got := CommonWindows(student, teacher)

	assert.Empty(t, got)
}

func TestCommonWindows_AdjacentResultsMerge(t *testing.T) {
	// Два слота студента касаются в 10:00. Каждый по отдельности пересекается
	// с широким слотом учителя, а примыкающие результаты склеиваются в одно окно.
	student := []model.AvailabilitySlot{
		slot(monday, 9*60, 10*60),
		slot(monday, 10*60, 11*60),
	}
	teacher := []model.AvailabilitySlot{slot(monday, 8*60, 12*60)}

	got := CommonWindows(student, teacher)

	assert.Equal(t, []model.CommonWindow{window(monday, 9*60, 11*60)}, got)
}

func TestCommonWindows_EmptyDayGivesNoWindows(t *testing.T) {
	// У учителя нет слотов в понедельник: доступность "весь день" не подразумевается
	student := []model.AvailabilitySlot{slot(monday, 9*60, 17*60)}
	teacher := []model.AvailabilitySlot{slot(friday, 9*60, 17*60)}

	got := CommonWindows(student, teacher)

	assert.Empty(t, got)
}

func TestCommonWindows_IgnoresUnavailableSlots(t *testing.T) {
	blocked := slot(monday, 9*60, 11*60)
	blocked.IsAvailable = false

	student := []model.AvailabilitySlot{blocked}
	teacher := []model.AvailabilitySlot{slot(monday, 9*60, 11*60)}

	got := CommonWindows(student, teacher)

	assert.Empty(t, got)
}

func TestCommonWindows_SelfMatchReproducesOwnAvailability(t *testing.T) {
	// Сторона против самой себя даёт её же доступность после склейки
	slots := []model.AvailabilitySlot{
		slot(monday, 9*60, 10*60),
		slot(monday, 10*60, 12*60),
		slot(friday, 14*60, 16*60),
	}

	got := CommonWindows(slots, slots)

	assert.Equal(t, []model.CommonWindow{
		window(monday, 9*60, 12*60),
		window(friday, 14*60, 16*60),
	}, got)
}

func TestCommonWindows_OutputSortedAndNonOverlapping(t *testing.T) {
	student := []model.AvailabilitySlot{
		slot(friday, 13*60, 15*60),
		slot(monday, 9*60, 12*60),
		slot(monday, 16*60, 18*60),
	}
	teacher := []model.AvailabilitySlot{
		slot(monday, 8*60, 20*60),
		slot(friday, 14*60, 17*60),
	}

	got := CommonWindows(student, teacher)

	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if prev.Weekday == cur.Weekday {
			assert.Less(t, prev.EndMinute, cur.StartMinute, "окна одного дня не должны пересекаться или примыкать")
		} else {
			assert.Less(t, prev.Weekday, cur.Weekday)
		}
	}
}

func TestMergeWindows_Idempotent(t *testing.T) {
	windows := []model.CommonWindow{
		window(monday, 9*60, 10*60),
		window(monday, 10*60, 11*60),
		window(monday, 10*60+30, 12*60),
		window(friday, 9*60, 10*60),
	}

	once := MergeWindows(windows)
	twice := MergeWindows(once)

	assert.Equal(t, once, twice)
}

func TestMergeWindows_KeepsGaps(t *testing.T) {
	windows := []model.CommonWindow{
		window(monday, 9*60, 10*60),
		window(monday, 11*60, 12*60),
	}

	got := MergeWindows(windows)

	assert.Len(t, got, 2)
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		bStart, bEnd   time.Time
		expectOverlaps bool
	}{
		{"полное совпадение", base, base.Add(time.Hour), true},
		{"частичное пересечение", base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
		{"вложенный интервал", base.Add(10 * time.Minute), base.Add(20 * time.Minute), true},
		{"касание границ не пересечение", base.Add(time.Hour), base.Add(2 * time.Hour), false},
		{"раньше без пересечения", base.Add(-2 * time.Hour), base.Add(-time.Hour), false},
		{"позже без пересечения", base.Add(3 * time.Hour), base.Add(4 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(base, base.Add(time.Hour), tt.bStart, tt.bEnd)
			assert.Equal(t, tt.expectOverlaps, got)
		})
	}
}

func TestWindowsContain(t *testing.T) {
	// Понедельник 2024-01-01, окно 10:00-12:00
	windows := []model.CommonWindow{window(monday, 10*60, 12*60)}
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	at := func(h, m int) time.Time {
		return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	}

	assert.True(t, WindowsContain(windows, at(10, 0), at(11, 0)))
	assert.True(t, WindowsContain(windows, at(10, 30), at(12, 0)))
	assert.False(t, WindowsContain(windows, at(9, 30), at(11, 0)), "начало раньше окна")
	assert.False(t, WindowsContain(windows, at(11, 0), at(12, 30)), "конец позже окна")
	assert.False(t, WindowsContain(windows, at(11, 0), at(11, 0)), "пустой интервал")
	assert.False(t, WindowsContain(windows, at(11, 0), at(10, 0)), "перевёрнутый интервал")

	// Вторник в то же время не попадает в окно понедельника
	assert.False(t, WindowsContain(windows, at(24+10, 0), at(24+11, 0)))

	// Занятие через полночь не помещается в окно
	lateWindows := []model.CommonWindow{window(monday, 22*60, 24*60)}
	assert.True(t, WindowsContain(lateWindows, at(23, 0), at(24, 0)), "конец ровно в полночь допустим")
	assert.False(t, WindowsContain(lateWindows, at(23, 0), at(24+1, 0)))
}
