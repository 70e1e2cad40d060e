package service

import "errors"

// Ошибки уровня сервисов. Транспортный слой различает их через errors.Is.
var (
	// ErrNotFound сущность не существует во внешнем хранилище
	ErrNotFound = errors.New("not found")

	// ErrInvalidInterval некорректный интервал времени: start >= end
	// или отсутствующая граница. Отклоняется до любой проверки конфликтов.
	ErrInvalidInterval = errors.New("invalid time interval")

	// ErrLessonConflict предложенное время пересекается с активным занятием
	// студента или учителя
	ErrLessonConflict = errors.New("lesson time conflict")

	// ErrInvalidStatus неизвестный статус занятия
	ErrInvalidStatus = errors.New("invalid lesson status")
)
