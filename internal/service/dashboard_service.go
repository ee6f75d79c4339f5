package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
	appErrors "github.com/jpsrivera1/backgeneralsistemaceti/pkg/errors"
	"github.com/jpsrivera1/backgeneralsistemaceti/pkg/export"
)

const (
	incomeByDayCap   = 30
	incomeByMonthCap = 12
	pendingCap       = 10
	topDebtorDefault = 10
)

type dashboardRepository interface {
	Records(ctx context.Context, source models.CategorySource, rng models.DateRange) ([]models.PaymentRecord, error)
	MoraTotal(ctx context.Context, source models.CategorySource, rng models.DateRange) (float64, error)
	PendingRecords(ctx context.Context, source models.CategorySource) ([]models.PendingRecord, error)
	DetailRecords(ctx context.Context, source models.CategorySource, rng models.DateRange) ([]models.ReportDetailRecord, error)
	ViewSummaries(ctx context.Context) ([]models.StudentPaymentSummary, error)
	StudentClassifications(ctx context.Context) ([]models.StudentClassification, error)
	CourseEnrollments(ctx context.Context) ([]models.CourseEnrollment, error)
	StudentNames(ctx context.Context, ids []string) (map[string]string, error)
	TuitionMonthTotal(ctx context.Context, mes string, anio int) (float64, error)
}

type dashboardMethodRepository interface {
	ListMethods(ctx context.Context) ([]models.PaymentMethod, error)
}

type pdfRenderer interface {
	Render(title string, sections []export.Section) ([]byte, error)
}

// DashboardService computes cross-category financial aggregates by reducing
// the uniform payment projections in memory.
type DashboardService struct {
	repo    dashboardRepository
	methods dashboardMethodRepository
	pdf     pdfRenderer
	logger  *zap.Logger
	now     func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(repo dashboardRepository, methods dashboardMethodRepository, pdf pdfRenderer, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, methods: methods, pdf: pdf, logger: logger, now: time.Now}
}

// NameValue is the chart-friendly {name, value} pair used by the ingresos
// breakdown endpoints.
type NameValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// IngresosDia is the daily-income payload: today's total plus the last days.
type IngresosDia struct {
	Total float64              `json:"total"`
	Fecha string               `json:"fecha"`
	Data  []models.IncomeByDay `json:"data"`
}

// RangeTotal is the income total for an explicit date range.
type RangeTotal struct {
	Total       float64 `json:"total"`
	FechaInicio string  `json:"fechaInicio"`
	FechaFin    string  `json:"fechaFin"`
}

// MonthTotal is the tuition income of one month.
type MonthTotal struct {
	Total float64 `json:"total"`
	Mes   string  `json:"mes"`
	Anio  int     `json:"anio"`
}

// ResumenDashboard is the condensed overview payload.
type ResumenDashboard struct {
	Estudiantes struct {
		Total   int `json:"total"`
		Activos int `json:"activos"`
		Regular int `json:"regular"`
		Curso   int `json:"curso"`
	} `json:"estudiantes"`
	Cursos struct {
		Total int `json:"total"`
	} `json:"cursos"`
	Finanzas struct {
		TotalIngresos       float64 `json:"totalIngresos"`
		TotalPendiente      float64 `json:"totalPendiente"`
		EstudiantesConDeuda int     `json:"estudiantesConDeuda"`
	} `json:"finanzas"`
}

// sourceRecords fetches one source's records, logging and skipping sources
// that cannot be read.
func (s *DashboardService) sourceRecords(ctx context.Context, source models.CategorySource, rng models.DateRange) []models.PaymentRecord {
	records, err := s.repo.Records(ctx, source, rng)
	if err != nil {
		s.logger.Warn("aggregation source skipped", zap.String("table", source.Table), zap.Error(err))
		return nil
	}
	return records
}

// Full assembles the whole dashboard, fanning the independent aggregates out
// concurrently.
func (s *DashboardService) Full(ctx context.Context, rng models.DateRange) (*models.DashboardData, error) {
	data := &models.DashboardData{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { data.IncomeByDay, err = s.IncomeByDay(gctx, rng); return })
	g.Go(func() (err error) { data.IncomeByMonth, err = s.IncomeByMonth(gctx, rng); return })
	g.Go(func() (err error) { data.IncomeByType, err = s.IncomeByType(gctx, rng); return })
	g.Go(func() (err error) { data.StudentsByType, err = s.StudentsByType(gctx); return })
	g.Go(func() (err error) { data.PendingPayments, err = s.PendingPayments(gctx); return })
	g.Go(func() (err error) { data.TotalMora, err = s.TotalMora(gctx, rng); return })
	g.Go(func() (err error) { data.IncomeByPaymentMethod, err = s.IncomeByMethod(gctx, rng); return })
	g.Go(func() (err error) { data.MonthlyIncome, err = s.TotalIncome(gctx); return })
	g.Go(func() (err error) { data.DailyIncome, err = s.DailyIncome(gctx); return })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// IncomeByDay groups all payments by calendar day, newest first, capped to
// the most recent 30 days.
func (s *DashboardService) IncomeByDay(ctx context.Context, rng models.DateRange) ([]models.IncomeByDay, error) {
	totals := map[string]float64{}
	for _, source := range models.AggregationSources {
		for _, record := range s.sourceRecords(ctx, source, rng) {
			dia := record.CreatedAt.Format("2006-01-02")
			totals[dia] += record.Amount
		}
	}
	result := make([]models.IncomeByDay, 0, len(totals))
	for dia, total := range totals {
		result = append(result, models.IncomeByDay{Dia: dia, Total: total})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Dia > result[j].Dia })
	if len(result) > incomeByDayCap {
		result = result[:incomeByDayCap]
	}
	return result, nil
}

// IncomeByMonth groups all payments by YYYY-MM month, newest first, capped to
// the most recent 12 months.
func (s *DashboardService) IncomeByMonth(ctx context.Context, rng models.DateRange) ([]models.IncomeByMonth, error) {
	totals := map[string]float64{}
	for _, source := range models.AggregationSources {
		for _, record := range s.sourceRecords(ctx, source, rng) {
			mes := record.CreatedAt.Format("2006-01")
			totals[mes] += record.Amount
		}
	}
	result := make([]models.IncomeByMonth, 0, len(totals))
	for mes, total := range totals {
		result = append(result, models.IncomeByMonth{Mes: mes, Total: total})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Mes > result[j].Mes })
	if len(result) > incomeByMonthCap {
		result = result[:incomeByMonthCap]
	}
	return result, nil
}

// IncomeByType totals each category label, omitting empty ones, largest
// first.
func (s *DashboardService) IncomeByType(ctx context.Context, rng models.DateRange) ([]models.IncomeByType, error) {
	var result []models.IncomeByType
	for _, source := range models.AggregationSources {
		var total float64
		for _, record := range s.sourceRecords(ctx, source, rng) {
			total += record.Amount
		}
		if total > 0 {
			result = append(result, models.IncomeByType{TipoPago: source.Label, Total: total})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Total > result[j].Total })
	if result == nil {
		result = []models.IncomeByType{}
	}
	return result, nil
}

// StudentsByType counts students per classification.
func (s *DashboardService) StudentsByType(ctx context.Context) ([]models.StudentsByType, error) {
	rows, err := s.repo.StudentClassifications(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener estudiantes por tipo")
	}
	counts := map[string]int{}
	for _, row := range rows {
		if row.TipoEstudiante == "" {
			continue
		}
		counts[row.TipoEstudiante]++
	}
	result := make([]models.StudentsByType, 0, len(counts))
	for tipo, total := range counts {
		result = append(result, models.StudentsByType{TipoEstudiante: tipo, Total: total})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TipoEstudiante < result[j].TipoEstudiante })
	return result, nil
}

// PendingPayments lists the ten largest outstanding balances across every
// source that tracks one.
func (s *DashboardService) PendingPayments(ctx context.Context) ([]models.PendingPayment, error) {
	type pendingHit struct {
		studentID string
		label     string
		amount    float64
	}
	var hits []pendingHit
	idSet := map[string]struct{}{}
	for _, source := range models.AggregationSources {
		if source.PendingLabel == "" {
			continue
		}
		records, err := s.repo.PendingRecords(ctx, source)
		if err != nil {
			s.logger.Warn("pending source skipped", zap.String("table", source.Table), zap.Error(err))
			continue
		}
		for _, record := range records {
			hits = append(hits, pendingHit{studentID: record.StudentID, label: source.PendingLabel, amount: record.MontoPendiente})
			idSet[record.StudentID] = struct{}{}
		}
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	names, err := s.repo.StudentNames(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener pagos pendientes")
	}

	result := make([]models.PendingPayment, 0, len(hits))
	for _, hit := range hits {
		name, ok := names[hit.studentID]
		if !ok {
			continue
		}
		result = append(result, models.PendingPayment{
			Estudiante:     name,
			TipoPago:       hit.label,
			MontoPendiente: hit.amount,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MontoPendiente > result[j].MontoPendiente })
	if len(result) > pendingCap {
		result = result[:pendingCap]
	}
	return result, nil
}

// TotalMora sums the late fees collected across every mora-bearing table.
func (s *DashboardService) TotalMora(ctx context.Context, rng models.DateRange) (float64, error) {
	var total float64
	for _, source := range models.AggregationSources {
		t, err := s.repo.MoraTotal(ctx, source, rng)
		if err != nil {
			s.logger.Warn("mora source skipped", zap.String("table", source.Table), zap.Error(err))
			continue
		}
		total += t
	}
	return total, nil
}

// IncomeByMethod totals income per payment method, omitting empty methods,
// largest first.
func (s *DashboardService) IncomeByMethod(ctx context.Context, rng models.DateRange) ([]models.IncomeByMethod, error) {
	methods, err := s.methods.ListMethods(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener métodos de pago")
	}
	totals := map[int64]float64{}
	for _, source := range models.AggregationSources {
		for _, record := range s.sourceRecords(ctx, source, rng) {
			if record.PaymentMethodID != nil {
				totals[*record.PaymentMethodID] += record.Amount
			}
		}
	}
	var result []models.IncomeByMethod
	for _, method := range methods {
		if total := totals[method.ID]; total > 0 {
			result = append(result, models.IncomeByMethod{MetodoPago: method.Name, Total: total})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Total > result[j].Total })
	if result == nil {
		result = []models.IncomeByMethod{}
	}
	return result, nil
}

// TotalIncome is the all-time income across every source. Date ranges are
// deliberately ignored so the headline figure always covers everything.
func (s *DashboardService) TotalIncome(ctx context.Context) (float64, error) {
	var total float64
	for _, source := range models.AggregationSources {
		for _, record := range s.sourceRecords(ctx, source, models.DateRange{}) {
			total += record.Amount
		}
	}
	return total, nil
}

// DailyIncome sums today's payments across every source.
func (s *DashboardService) DailyIncome(ctx context.Context) (float64, error) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Second)
	rng := models.DateRange{Start: &start, End: &end}

	var total float64
	for _, source := range models.AggregationSources {
		for _, record := range s.sourceRecords(ctx, source, rng) {
			total += record.Amount
		}
	}
	return total, nil
}

// DayOverview returns today's total with the last ten days of history.
func (s *DashboardService) DayOverview(ctx context.Context) (*IngresosDia, error) {
	days, err := s.IncomeByDay(ctx, models.DateRange{})
	if err != nil {
		return nil, err
	}
	hoy := s.now().Format("2006-01-02")
	var total float64
	for _, day := range days {
		if day.Dia == hoy {
			total = day.Total
			break
		}
	}
	if len(days) > 10 {
		days = days[:10]
	}
	return &IngresosDia{Total: total, Fecha: hoy, Data: days}, nil
}

// RangeIncome totals payments across every source within an inclusive date
// range.
func (s *DashboardService) RangeIncome(ctx context.Context, fechaInicio, fechaFin string) (*RangeTotal, error) {
	start, err := time.Parse("2006-01-02", fechaInicio)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fechaInicio inválida")
	}
	end, err := time.Parse("2006-01-02", fechaFin)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fechaFin inválida")
	}
	end = end.Add(24*time.Hour - time.Second)
	rng := models.DateRange{Start: &start, End: &end}

	var total float64
	for _, source := range models.AggregationSources {
		for _, record := range s.sourceRecords(ctx, source, rng) {
			total += record.Amount
		}
	}
	return &RangeTotal{Total: total, FechaInicio: fechaInicio, FechaFin: fechaFin}, nil
}

// MonthIncome totals the tuition collected for one month name.
func (s *DashboardService) MonthIncome(ctx context.Context, mes string, anio int) (*MonthTotal, error) {
	if mes == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "el mes es requerido")
	}
	if anio == 0 {
		anio = s.now().Year()
	}
	total, err := s.repo.TuitionMonthTotal(ctx, strings.ToUpper(mes), anio)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener ingresos del mes")
	}
	return &MonthTotal{Total: total, Mes: mes, Anio: anio}, nil
}

// IncomeByTypeNamed is the {name, value} breakdown per category, zero
// categories included.
func (s *DashboardService) IncomeByTypeNamed(ctx context.Context) ([]NameValue, error) {
	result := make([]NameValue, 0, len(models.AggregationSources))
	for _, source := range models.AggregationSources {
		var total float64
		for _, record := range s.sourceRecords(ctx, source, models.DateRange{}) {
			total += record.Amount
		}
		result = append(result, NameValue{Name: source.Label, Value: total})
	}
	return result, nil
}

// IncomeByMethodNamed is the {name, value} breakdown per payment method,
// zero methods included.
func (s *DashboardService) IncomeByMethodNamed(ctx context.Context) ([]NameValue, error) {
	methods, err := s.methods.ListMethods(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener métodos de pago")
	}
	totals := map[int64]float64{}
	for _, source := range models.AggregationSources {
		for _, record := range s.sourceRecords(ctx, source, models.DateRange{}) {
			if record.PaymentMethodID != nil {
				totals[*record.PaymentMethodID] += record.Amount
			}
		}
	}
	result := make([]NameValue, 0, len(methods))
	for _, method := range methods {
		result = append(result, NameValue{Name: method.Name, Value: totals[method.ID]})
	}
	return result, nil
}

// PendingTotal sums every outstanding balance in the student payment view.
func (s *DashboardService) PendingTotal(ctx context.Context) (float64, error) {
	summaries, err := s.repo.ViewSummaries(ctx)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener total pendiente")
	}
	var total float64
	for _, summary := range summaries {
		total += summary.TotalPendiente
	}
	return total, nil
}

// StudentsWithPending lists every student carrying a balance, largest debt
// first.
func (s *DashboardService) StudentsWithPending(ctx context.Context) ([]models.StudentPaymentSummary, error) {
	return s.TopDebtors(ctx, 0)
}

// TopDebtors lists the students with the largest outstanding balances.
// A non-positive limit returns them all.
func (s *DashboardService) TopDebtors(ctx context.Context, limit int) ([]models.StudentPaymentSummary, error) {
	summaries, err := s.repo.ViewSummaries(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener top deudores")
	}
	debtors := make([]models.StudentPaymentSummary, 0, len(summaries))
	for _, summary := range summaries {
		if summary.TotalPendiente > 0 {
			debtors = append(debtors, summary)
		}
	}
	sort.Slice(debtors, func(i, j int) bool { return debtors[i].TotalPendiente > debtors[j].TotalPendiente })
	if limit > 0 && len(debtors) > limit {
		debtors = debtors[:limit]
	}
	return debtors, nil
}

// StudentStats breaks the student body down by status, type, shift and track.
func (s *DashboardService) StudentStats(ctx context.Context) (*models.StudentStats, error) {
	rows, err := s.repo.StudentClassifications(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener estadísticas")
	}
	stats := &models.StudentStats{
		PorJornada:   map[string]int{},
		PorModalidad: map[string]int{},
	}
	for _, row := range rows {
		stats.Total++
		if row.Estado == models.EstadoInactivo {
			stats.Inactivos++
		} else {
			stats.Activos++
		}
		switch row.TipoEstudiante {
		case models.TipoEstudianteRegular:
			stats.Regular++
		case models.TipoEstudianteCurso:
			stats.Curso++
		}
		jornada := row.Jornada
		if jornada == "" {
			jornada = "Sin definir"
		}
		stats.PorJornada[jornada]++
		modalidad := row.Modalidad
		if modalidad == "" {
			modalidad = "Sin definir"
		}
		stats.PorModalidad[modalidad]++
	}
	return stats, nil
}

// CourseStats summarises extra-course enrollment, busiest course first.
func (s *DashboardService) CourseStats(ctx context.Context) (*models.CourseStats, error) {
	enrollments, err := s.repo.CourseEnrollments(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener estadísticas de cursos")
	}
	sort.Slice(enrollments, func(i, j int) bool { return enrollments[i].Inscritos > enrollments[j].Inscritos })
	stats := &models.CourseStats{TotalCursos: len(enrollments), Cursos: enrollments}
	for _, enrollment := range enrollments {
		stats.TotalInscritos += enrollment.Inscritos
	}
	return stats, nil
}

// Resumen is the condensed overview combining roster counts and the payment
// view totals.
func (s *DashboardService) Resumen(ctx context.Context) (*ResumenDashboard, error) {
	resumen := &ResumenDashboard{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.repo.StudentClassifications(gctx)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener resumen del dashboard")
		}
		for _, row := range rows {
			resumen.Estudiantes.Total++
			if row.Estado != models.EstadoInactivo {
				resumen.Estudiantes.Activos++
			}
			switch row.TipoEstudiante {
			case models.TipoEstudianteRegular:
				resumen.Estudiantes.Regular++
			case models.TipoEstudianteCurso:
				resumen.Estudiantes.Curso++
			}
		}
		return nil
	})
	g.Go(func() error {
		enrollments, err := s.repo.CourseEnrollments(gctx)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener resumen del dashboard")
		}
		resumen.Cursos.Total = len(enrollments)
		return nil
	})
	g.Go(func() error {
		summaries, err := s.repo.ViewSummaries(gctx)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener resumen del dashboard")
		}
		for _, summary := range summaries {
			resumen.Finanzas.TotalIngresos += summary.TotalPagado
			resumen.Finanzas.TotalPendiente += summary.TotalPendiente
			if summary.TotalPendiente > 0 {
				resumen.Finanzas.EstudiantesConDeuda++
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resumen, nil
}

// DetailedReport lists every payment grouped by category, with per-category
// counts and totals.
func (s *DashboardService) DetailedReport(ctx context.Context, rng models.DateRange) (*models.DetailedReport, error) {
	report := &models.DetailedReport{
		Details: map[string][]models.ReportDetailRow{},
	}
	for _, source := range models.AggregationSources {
		records, err := s.repo.DetailRecords(ctx, source, rng)
		if err != nil {
			s.logger.Warn("detail source skipped", zap.String("table", source.Table), zap.Error(err))
			records = nil
		}
		rows := make([]models.ReportDetailRow, 0, len(records))
		var total float64
		for _, record := range records {
			row := models.ReportDetailRow{
				Estudiante: record.Estudiante,
				Fecha:      record.CreatedAt.Format("02/01/2006"),
				MetodoPago: "N/A",
				Monto:      record.Monto,
			}
			if record.Mes != nil {
				row.Mes = *record.Mes
			}
			if record.Curso != nil {
				row.Curso = *record.Curso
			}
			if record.MetodoPago != nil {
				row.MetodoPago = *record.MetodoPago
			}
			rows = append(rows, row)
			total += record.Monto
		}
		report.Details[source.DetailKey] = rows
		report.Summary = append(report.Summary, models.ReportSummaryRow{
			TipoPago:      source.Label,
			CantidadPagos: len(rows),
			TotalIngresos: total,
		})
		report.TotalGeneral += total
	}
	return report, nil
}

// DetailedReportPDF renders the detailed report as a PDF document.
func (s *DashboardService) DetailedReportPDF(ctx context.Context, rng models.DateRange) ([]byte, string, error) {
	report, err := s.DetailedReport(ctx, rng)
	if err != nil {
		return nil, "", err
	}

	sections := make([]export.Section, 0, len(models.AggregationSources)+1)

	summary := export.Dataset{Headers: []string{"Tipo de Pago", "Cantidad", "Total"}}
	for _, row := range report.Summary {
		summary.Rows = append(summary.Rows, map[string]string{
			"Tipo de Pago": row.TipoPago,
			"Cantidad":     formatInt(row.CantidadPagos),
			"Total":        formatAmount(row.TotalIngresos),
		})
	}
	sections = append(sections, export.Section{Title: "Resumen General", Data: summary})

	for _, source := range models.AggregationSources {
		rows := report.Details[source.DetailKey]
		if len(rows) == 0 {
			continue
		}
		data := export.Dataset{Headers: []string{"Estudiante", "Mes", "Curso", "Fecha", "Método", "Monto"}}
		for _, row := range rows {
			data.Rows = append(data.Rows, map[string]string{
				"Estudiante": row.Estudiante,
				"Mes":        row.Mes,
				"Curso":      row.Curso,
				"Fecha":      row.Fecha,
				"Método":     row.MetodoPago,
				"Monto":      formatAmount(row.Monto),
			})
		}
		sections = append(sections, export.Section{Title: source.Label, Data: data})
	}

	body, err := s.pdf.Render("Reporte Detallado de Pagos", sections)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al generar el reporte PDF")
	}
	filename := "reporte-detallado-" + s.now().Format("2006-01-02") + ".pdf"
	return body, filename, nil
}

func formatAmount(v float64) string { return "Q " + strconv.FormatFloat(v, 'f', 2, 64) }

func formatInt(v int) string { return strconv.Itoa(v) }
