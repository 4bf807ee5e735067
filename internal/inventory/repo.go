package inventory

import (
	"context"
	"time"

	"github.com/pitlanehq/garage-backend/pkg/db/models"
	"github.com/pitlanehq/garage-backend/pkg/pagination"
	"gorm.io/gorm"
)

// stockUniqueConstraint is the unique index on (part_id, inventory_location_id).
const stockUniqueConstraint = "idx_stock_part_location"

// Repository wires together inventory persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindActivePart loads the part when it exists and is active.
func (r *Repository) FindActivePart(ctx context.Context, id int64) (*models.Part, error) {
	var part models.Part
	if err := r.db.WithContext(ctx).First(&part, "id = ? AND is_active = ?", id, true).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

// FindActiveLocation loads the location when it exists and is active.
func (r *Repository) FindActiveLocation(ctx context.Context, id int64) (*models.InventoryLocation, error) {
	var location models.InventoryLocation
	if err := r.db.WithContext(ctx).First(&location, "id = ? AND is_active = ?", id, true).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// WorkOrderExists reports whether the work order row is present.
func (r *Repository) WorkOrderExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.WorkOrder{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindStock loads the stock row for the pair, gorm.ErrRecordNotFound when absent.
func (r *Repository) FindStock(ctx context.Context, partID, locationID int64) (*models.InventoryStock, error) {
	var stock models.InventoryStock
	if err := r.db.WithContext(ctx).
		First(&stock, "part_id = ? AND inventory_location_id = ?", partID, locationID).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

// CreateStock inserts a fresh counter row. The unique constraint on the pair
// rejects a concurrent create.
func (r *Repository) CreateStock(ctx context.Context, stock *models.InventoryStock) error {
	return r.db.WithContext(ctx).Create(stock).Error
}

// ApplyStockDelta adds delta to the counter only while the result stays
// non-negative. Zero rows affected means the row is missing or the guard
// failed; the caller distinguishes the two.
func (r *Repository) ApplyStockDelta(ctx context.Context, partID, locationID int64, delta int, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryStock{}).
		Where("part_id = ? AND inventory_location_id = ? AND quantity + ? >= 0", partID, locationID, delta).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CreateMovement appends one ledger entry. Ledger rows are never updated.
func (r *Repository) CreateMovement(ctx context.Context, movement *models.InventoryMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// CreateInstallation inserts the installation audit row.
func (r *Repository) CreateInstallation(ctx context.Context, installation *models.PartInstallation) error {
	return r.db.WithContext(ctx).Create(installation).Error
}

// GetStockDetail reloads a stock row with its part and location for display.
func (r *Repository) GetStockDetail(ctx context.Context, partID, locationID int64) (*models.InventoryStock, error) {
	var stock models.InventoryStock
	if err := r.db.WithContext(ctx).
		Preload("Part").
		Preload("InventoryLocation").
		First(&stock, "part_id = ? AND inventory_location_id = ?", partID, locationID).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

// ListStock returns stock rows with display joins, filtered by part/location.
func (r *Repository) ListStock(ctx context.Context, filter StockFilter) ([]models.InventoryStock, error) {
	query := r.db.WithContext(ctx).
		Model(&models.InventoryStock{}).
		Preload("Part").
		Preload("InventoryLocation").
		Order("part_id ASC, inventory_location_id ASC")
	if filter.PartID > 0 {
		query = query.Where("part_id = ?", filter.PartID)
	}
	if filter.InventoryLocationID > 0 {
		query = query.Where("inventory_location_id = ?", filter.InventoryLocationID)
	}

	var rows []models.InventoryStock
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListMovements returns one cursor page of ledger entries, newest first.
func (r *Repository) ListMovements(ctx context.Context, filter MovementFilter, cursor *pagination.Cursor, limit int) ([]models.InventoryMovement, error) {
	query := r.db.WithContext(ctx).
		Model(&models.InventoryMovement{}).
		Preload("Part").
		Preload("InventoryLocation").
		Preload("PerformedByUser").
		Order("performed_at DESC, id DESC").
		Limit(limit)
	if filter.PartID > 0 {
		query = query.Where("part_id = ?", filter.PartID)
	}
	if filter.InventoryLocationID > 0 {
		query = query.Where("inventory_location_id = ?", filter.InventoryLocationID)
	}
	if filter.WorkOrderID > 0 {
		query = query.Where("work_order_id = ?", filter.WorkOrderID)
	}
	if filter.Reason != "" {
		query = query.Where("reason = ?", filter.Reason)
	}
	if cursor != nil {
		query = query.Where(
			"performed_at < ? OR (performed_at = ? AND id < ?)",
			cursor.PerformedAt, cursor.PerformedAt, cursor.ID,
		)
	}

	var rows []models.InventoryMovement
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListInstallations returns installations, optionally scoped to a work order.
func (r *Repository) ListInstallations(ctx context.Context, workOrderID int64) ([]models.PartInstallation, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PartInstallation{}).
		Preload("Part").
		Preload("InventoryLocation").
		Preload("InstalledByUser").
		Order("installed_at DESC, id DESC")
	if workOrderID > 0 {
		query = query.Where("work_order_id = ?", workOrderID)
	}

	var rows []models.PartInstallation
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindInstallation loads one installation with display joins.
func (r *Repository) FindInstallation(ctx context.Context, id int64) (*models.PartInstallation, error) {
	var installation models.PartInstallation
	if err := r.db.WithContext(ctx).
		Preload("Part").
		Preload("InventoryLocation").
		Preload("InstalledByUser").
		First(&installation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &installation, nil
}
