package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
)

// UniformRepository manages the uniform catalog, per-student size
// registrations and the reporting queries behind the uniform views.
type UniformRepository struct {
	db *sqlx.DB
}

// NewUniformRepository constructs a UniformRepository.
func NewUniformRepository(db *sqlx.DB) *UniformRepository {
	return &UniformRepository{db: db}
}

// ListCategoriesWithItems returns every category with its items attached.
func (r *UniformRepository) ListCategoriesWithItems(ctx context.Context) ([]models.UniformCategory, error) {
	const catQuery = `SELECT id, nombre, descripcion FROM uniform_categories ORDER BY id`
	var categories []models.UniformCategory
	if err := r.db.SelectContext(ctx, &categories, catQuery); err != nil {
		return nil, fmt.Errorf("list uniform categories: %w", err)
	}

	const itemQuery = `SELECT id, category_id, nombre FROM uniform_items ORDER BY category_id, id`
	var items []models.UniformItem
	if err := r.db.SelectContext(ctx, &items, itemQuery); err != nil {
		return nil, fmt.Errorf("list uniform items: %w", err)
	}

	byCategory := make(map[int64][]models.UniformItem, len(categories))
	for _, item := range items {
		byCategory[item.CategoryID] = append(byCategory[item.CategoryID], item)
	}
	for i := range categories {
		categories[i].Items = byCategory[categories[i].ID]
	}
	return categories, nil
}

// CategoryByName fetches one category with its items.
func (r *UniformRepository) CategoryByName(ctx context.Context, nombre string) (*models.UniformCategory, error) {
	const catQuery = `SELECT id, nombre, descripcion FROM uniform_categories WHERE nombre = $1`
	var category models.UniformCategory
	if err := r.db.GetContext(ctx, &category, catQuery, nombre); err != nil {
		return nil, err
	}
	const itemQuery = `SELECT id, category_id, nombre FROM uniform_items WHERE category_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &category.Items, itemQuery, category.ID); err != nil {
		return nil, fmt.Errorf("list category items: %w", err)
	}
	return &category, nil
}

// SizesByStudent returns a student's registered sizes with item and category
// names joined in.
func (r *UniformRepository) SizesByStudent(ctx context.Context, studentID string) ([]models.StudentSizeDetail, error) {
	const query = `SELECT z.id, z.student_id, z.item_id, z.talla, z.cantidad, z.fecha_registro,
        i.nombre AS item_nombre, i.category_id AS categoria_id, c.nombre AS categoria_nombre
        FROM student_uniform_sizes z
        JOIN uniform_items i ON i.id = z.item_id
        JOIN uniform_categories c ON c.id = i.category_id
        WHERE z.student_id = $1
        ORDER BY i.category_id, i.id`
	var sizes []models.StudentSizeDetail
	if err := r.db.SelectContext(ctx, &sizes, query, studentID); err != nil {
		return nil, fmt.Errorf("list student sizes: %w", err)
	}
	return sizes, nil
}

// UpsertSizes writes a batch of size registrations, replacing whatever size a
// student previously had for the same item.
func (r *UniformRepository) UpsertSizes(ctx context.Context, sizes []models.StudentUniformSize) error {
	const query = `INSERT INTO student_uniform_sizes (student_id, item_id, talla, cantidad)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (student_id, item_id)
        DO UPDATE SET talla = EXCLUDED.talla, cantidad = EXCLUDED.cantidad, fecha_registro = NOW()`
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert sizes: %w", err)
	}
	defer tx.Rollback()

	for _, size := range sizes {
		if _, err := tx.ExecContext(ctx, query, size.StudentID, size.ItemID, size.Talla, size.Cantidad); err != nil {
			return fmt.Errorf("upsert size for item %d: %w", size.ItemID, err)
		}
	}
	return tx.Commit()
}

// DeleteSize removes one size registration.
func (r *UniformRepository) DeleteSize(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM student_uniform_sizes WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete size: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete size rows: %w", err)
	}
	return affected, nil
}

// ReportRows returns one row per uniform payment for the sales report and its
// Excel export, newest first.
func (r *UniformRepository) ReportRows(ctx context.Context) ([]models.UniformReportRow, error) {
	const query = `SELECT p.id, s.nombre || ' ' || s.apellidos AS student_name, s.grado, s.modalidad,
        p.monto_total AS total_amount, p.monto_pendiente AS pending_amount,
        CASE WHEN p.monto_pendiente <= 0 THEN 'PAGADO' ELSE 'PENDIENTE' END AS payment_status,
        p.fecha_actualizacion AS payment_date, m.name AS metodo_pago
        FROM pago_uniforme p
        JOIN students s ON s.id = p.student_id
        LEFT JOIN payment_methods m ON m.id = p.payment_method_id
        ORDER BY p.created_at DESC`
	var rows []models.UniformReportRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("uniform report rows: %w", err)
	}
	return rows, nil
}

// SizeInventoryRows counts registered quantities per (item, talla).
func (r *UniformRepository) SizeInventoryRows(ctx context.Context) ([]models.SizeInventoryRow, error) {
	const query = `SELECT i.id AS item_id, i.nombre AS item_nombre,
        c.id AS categoria_id, c.nombre AS categoria_nombre, c.descripcion AS categoria_descripcion,
        z.talla, SUM(z.cantidad) AS cantidad
        FROM student_uniform_sizes z
        JOIN uniform_items i ON i.id = z.item_id
        JOIN uniform_categories c ON c.id = i.category_id
        GROUP BY i.id, i.nombre, c.id, c.nombre, c.descripcion, z.talla
        ORDER BY c.id, i.id, z.talla`
	var rows []models.SizeInventoryRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("size inventory rows: %w", err)
	}
	return rows, nil
}
