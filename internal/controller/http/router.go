// Package http HTTP-интерфейс системы: gin-роутер поверх сервисного слоя.
package http

import (
	"time"

	"github.com/Freeeeeet/tutor_crm/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler держит сервисный слой и обрабатывает все HTTP-запросы
type Handler struct {
	students     *service.StudentService
	teachers     *service.TeacherService
	courses      *service.CourseService
	enrollments  *service.EnrollmentService
	lessons      *service.LessonService
	availability *service.AvailabilityService
	scheduling   *service.SchedulingService
	reports      *service.ReportService
	logger       *zap.Logger
}

func NewHandler(
	students *service.StudentService,
	teachers *service.TeacherService,
	courses *service.CourseService,
	enrollments *service.EnrollmentService,
	lessons *service.LessonService,
	availability *service.AvailabilityService,
	scheduling *service.SchedulingService,
	reports *service.ReportService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		students:     students,
		teachers:     teachers,
		courses:      courses,
		enrollments:  enrollments,
		lessons:      lessons,
		availability: availability,
		scheduling:   scheduling,
		reports:      reports,
		logger:       logger,
	}
}

// NewRouter собирает gin-роутер со всеми маршрутами API
func NewRouter(h *Handler, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(h.logger))

	api := router.Group("/api")
	{
		students := api.Group("/students")
		{
			students.POST("", h.CreateStudent)
			students.GET("", h.ListStudents)
			students.GET("/:id", h.GetStudent)
			students.PUT("/:id", h.UpdateStudent)
			students.DELETE("/:id", h.DeleteStudent)
		}

		teachers := api.Group("/teachers")
		{
			teachers.POST("", h.CreateTeacher)
			teachers.GET("", h.ListTeachers)
			teachers.GET("/:id", h.GetTeacher)
			teachers.PUT("/:id", h.UpdateTeacher)
			teachers.DELETE("/:id", h.DeleteTeacher)
		}

		courses := api.Group("/courses")
		{
			courses.POST("", h.CreateCourse)
			courses.GET("", h.ListCourses)
			courses.GET("/:id", h.GetCourse)
			courses.PUT("/:id", h.UpdateCourse)
			courses.DELETE("/:id", h.DeleteCourse)
		}

		enrollments := api.Group("/enrollments")
		{
			enrollments.POST("", h.CreateEnrollment)
			enrollments.GET("", h.ListEnrollments)
			enrollments.GET("/:id", h.GetEnrollment)
			enrollments.PATCH("/:id/active", h.SetEnrollmentActive)
			enrollments.DELETE("/:id", h.DeleteEnrollment)
		}

		lessons := api.Group("/lessons")
		{
			lessons.POST("", h.CreateLesson)
			lessons.GET("", h.ListLessons)
			lessons.GET("/:id", h.GetLesson)
			lessons.PUT("/:id", h.UpdateLesson)
			lessons.PATCH("/:id/status", h.UpdateLessonStatus)
			lessons.DELETE("/:id", h.DeleteLesson)
		}

		availability := api.Group("/availability")
		{
			availability.GET("/students/:id", h.GetStudentAvailability)
			availability.PUT("/students/:id", h.SetStudentAvailability)
			availability.GET("/teachers/:id", h.GetTeacherAvailability)
			availability.PUT("/teachers/:id", h.SetTeacherAvailability)
			availability.POST("/slots", h.AddAvailabilitySlot)
			availability.DELETE("/slots/:id", h.DeleteAvailabilitySlot)
		}

		scheduling := api.Group("/scheduling")
		{
			scheduling.GET("/common-slots", h.FindCommonSlots)
			scheduling.POST("/suggest", h.SuggestLessonTimes)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/lessons/monthly", h.MonthlyLessonStats)
			reports.GET("/teachers/workload", h.TeacherWorkload)
			reports.GET("/courses/popularity", h.CoursePopularity)
		}
	}

	return router
}

// requestLogger логирует каждый запрос через zap
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
