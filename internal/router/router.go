package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/handler"
	"github.com/jpsrivera1/backgeneralsistemaceti/internal/middleware"
	"github.com/jpsrivera1/backgeneralsistemaceti/internal/service"
	"github.com/jpsrivera1/backgeneralsistemaceti/pkg/config"
	"github.com/jpsrivera1/backgeneralsistemaceti/pkg/logger"
	corsmiddleware "github.com/jpsrivera1/backgeneralsistemaceti/pkg/middleware/cors"
	reqidmiddleware "github.com/jpsrivera1/backgeneralsistemaceti/pkg/middleware/requestid"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	Students   *handler.StudentHandler
	Payments   *handler.PaymentHandler
	Tuition    *handler.TuitionHandler
	Graduation *handler.GraduationHandler
	Uniforms   *handler.UniformHandler
	Courses    *handler.CourseHandler
	Dashboard  *handler.DashboardHandler
}

// New builds the gin engine with the full /api surface plus the ops
// endpoints.
func New(cfg *config.Config, logr *zap.Logger, h Handlers, metrics *service.MetricsService) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/verificar", h.Auth.Verify)
	}

	estudiantes := api.Group("/estudiantes")
	{
		estudiantes.GET("", h.Students.List)
		estudiantes.GET("/:id", h.Students.Get)
		estudiantes.POST("", h.Students.Create)
		estudiantes.PUT("/:id", h.Students.Update)
		estudiantes.DELETE("/:id", h.Students.Delete)
	}

	pagos := api.Group("/pagos")
	{
		pagos.GET("/buscar", h.Payments.Search)
		pagos.GET("/resumen", h.Payments.Summary)
		pagos.GET("/metodos-pago", h.Payments.Methods)
		pagos.GET("/estudiante/:studentId", h.Payments.StudentPayments)
		pagos.GET("/estudiante/:studentId/:tipoPago", h.Payments.Payment)
		pagos.POST("/estudiante/:studentId/:tipoPago", h.Payments.SavePayment)

		pagos.GET("/colegiaturas/:studentId", h.Tuition.History)
		pagos.GET("/colegiaturas/:studentId/mes/:mes", h.Tuition.MonthPaid)
		pagos.POST("/colegiaturas/:studentId", h.Tuition.Register)
		pagos.GET("/recibo/:pagoId", h.Tuition.Receipt)

		pagos.GET("/graduacion/:studentId", h.Graduation.Status)
		pagos.POST("/graduacion/:studentId", h.Graduation.Save)
	}

	uniformes := api.Group("/uniformes")
	{
		uniformes.GET("/buscar", h.Uniforms.Search)
		uniformes.GET("/categorias", h.Uniforms.Categories)
		uniformes.GET("/categorias/estudiante/:studentId", h.Uniforms.StudentCategory)
		uniformes.GET("/tallas/:studentId", h.Uniforms.Sizes)
		uniformes.POST("/tallas/:studentId", h.Uniforms.SaveSizes)
		uniformes.DELETE("/tallas/:id", h.Uniforms.DeleteSize)
		uniformes.GET("/reports", h.Uniforms.Report)
		uniformes.GET("/export-excel", h.Uniforms.ExportExcel)
		uniformes.GET("/inventario-tallas", h.Uniforms.SizeInventory)
	}

	cursos := api.Group("/cursos")
	{
		cursos.GET("/cursos-extra", h.Courses.Courses)
		cursos.GET("/estudiantes-cursos", h.Courses.Students)
		cursos.GET("/estudiantes-cursos/buscar", h.Courses.SearchStudents)
		cursos.GET("/meses", h.Courses.Months)
		cursos.GET("/pagos-curso/:estudianteId", h.Courses.Payments)
		cursos.GET("/pagos-curso/:estudianteId/verificar/:mesId", h.Courses.MonthPaid)
		cursos.GET("/pagos-curso/:estudianteId/resumen", h.Courses.Summary)
		cursos.POST("/pagos-curso", h.Courses.Register)
	}

	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("", h.Dashboard.Full)
		dashboard.GET("/income-by-day", h.Dashboard.IncomeByDay)
		dashboard.GET("/income-by-month", h.Dashboard.IncomeByMonth)
		dashboard.GET("/income-by-type", h.Dashboard.IncomeByType)
		dashboard.GET("/students-by-type", h.Dashboard.StudentsByType)
		dashboard.GET("/pending-payments", h.Dashboard.PendingPayments)
		dashboard.GET("/total-mora", h.Dashboard.TotalMora)
		dashboard.GET("/income-by-payment-method", h.Dashboard.IncomeByMethod)
		dashboard.GET("/detailed-report", h.Dashboard.DetailedReport)
		dashboard.GET("/detailed-report/pdf", h.Dashboard.DetailedReportPDF)
		dashboard.GET("/resumen", h.Dashboard.Resumen)

		dashboard.GET("/ingresos/dia", h.Dashboard.DayIncome)
		dashboard.GET("/ingresos/rango", h.Dashboard.RangeIncome)
		dashboard.GET("/ingresos/mes", h.Dashboard.MonthIncome)
		dashboard.GET("/ingresos/historico", h.Dashboard.HistoricIncome)
		dashboard.GET("/ingresos/tipo-pago", h.Dashboard.IncomeByTypeNamed)
		dashboard.GET("/ingresos/metodo-pago", h.Dashboard.IncomeByMethodNamed)

		dashboard.GET("/pendientes/total", h.Dashboard.PendingTotal)
		dashboard.GET("/pendientes/estudiantes", h.Dashboard.StudentsWithPending)
		dashboard.GET("/pendientes/top-deudores", h.Dashboard.TopDebtors)

		dashboard.GET("/estudiantes/estadisticas", h.Dashboard.StudentStats)
		dashboard.GET("/cursos/estadisticas", h.Dashboard.CourseStats)
	}

	return r
}
