package models

import "time"

// Uniform category display names. Resolution picks exactly one (or none) from
// a student's modality and grade.
const (
	CategoriaFinDeSemana     = "Fin de Semana"
	CategoriaBasicosYCarrera = "Básicos y Carrera"
	CategoriaKinderYPrimaria = "Kinder y Primaria"
)

// UniformCategory groups the garments of one program tier.
type UniformCategory struct {
	ID          int64         `db:"id" json:"id"`
	Nombre      string        `db:"nombre" json:"nombre"`
	Descripcion string        `db:"descripcion" json:"descripcion"`
	Items       []UniformItem `json:"uniform_items"`
}

// UniformItem is a single garment within a category.
type UniformItem struct {
	ID         int64  `db:"id" json:"id"`
	CategoryID int64  `db:"category_id" json:"category_id"`
	Nombre     string `db:"nombre" json:"nombre"`
}

// StudentUniformSize is a size+quantity registration, unique per
// (student, item).
type StudentUniformSize struct {
	ID            int64     `db:"id" json:"id"`
	StudentID     string    `db:"student_id" json:"student_id"`
	ItemID        int64     `db:"item_id" json:"item_id"`
	Talla         string    `db:"talla" json:"talla"`
	Cantidad      int       `db:"cantidad" json:"cantidad"`
	FechaRegistro time.Time `db:"fecha_registro" json:"fecha_registro"`
}

// StudentSizeDetail is a registration joined with its item and category.
type StudentSizeDetail struct {
	StudentUniformSize
	ItemNombre      string `db:"item_nombre" json:"item_nombre"`
	CategoriaID     int64  `db:"categoria_id" json:"categoria_id"`
	CategoriaNombre string `db:"categoria_nombre" json:"categoria_nombre"`
}

// UniformReportRow feeds the uniform payment report and its Excel export.
type UniformReportRow struct {
	ID            string     `db:"id" json:"id"`
	StudentName   string     `db:"student_name" json:"student_name"`
	Grado         string     `db:"grado" json:"grado"`
	Modalidad     string     `db:"modalidad" json:"modalidad"`
	TotalAmount   float64    `db:"total_amount" json:"total_amount"`
	PendingAmount float64    `db:"pending_amount" json:"pending_amount"`
	PaymentStatus string     `db:"payment_status" json:"payment_status"`
	PaymentDate   *time.Time `db:"payment_date" json:"payment_date"`
	MetodoPago    *string    `db:"metodo_pago" json:"metodo_pago"`
}

// UniformReportStats summarises a report result set.
type UniformReportStats struct {
	TotalSales      float64 `json:"totalSales"`
	PendingPayments int     `json:"pendingPayments"`
	PaidInFull      int     `json:"paidInFull"`
}

// SizeInventoryRow is a flat (item, talla) count as read from the database.
// The inventory service folds these into the nested per-category report.
type SizeInventoryRow struct {
	ItemID               int64  `db:"item_id"`
	ItemNombre           string `db:"item_nombre"`
	CategoriaID          int64  `db:"categoria_id"`
	CategoriaNombre      string `db:"categoria_nombre"`
	CategoriaDescripcion string `db:"categoria_descripcion"`
	Talla                string `db:"talla"`
	Cantidad             int    `db:"cantidad"`
}

// SizeCount is one size bucket within an item inventory.
type SizeCount struct {
	Talla    string `json:"talla"`
	Cantidad int    `json:"cantidad"`
}

// ItemSizeInventory groups the registered sizes of one garment.
type ItemSizeInventory struct {
	ItemID     int64       `json:"item_id"`
	ItemNombre string      `json:"item_nombre"`
	Tallas     []SizeCount `json:"tallas"`
	Total      int         `json:"total"`
}

// CategorySizeInventory is the per-category size report.
type CategorySizeInventory struct {
	CategoriaID          int64               `json:"categoria_id"`
	CategoriaNombre      string              `json:"categoria_nombre"`
	CategoriaDescripcion string              `json:"categoria_descripcion"`
	Items                []ItemSizeInventory `json:"items"`
	TotalRegistros       int                 `json:"total_registros"`
}
