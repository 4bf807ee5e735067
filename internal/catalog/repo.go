package catalog

import (
	"context"
	"strings"

	"github.com/pitlanehq/garage-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository wraps supplier, part, and location persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository returns a repository bound to the given gorm handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListSuppliers(ctx context.Context, activeOnly bool) ([]models.Supplier, error) {
	query := r.db.WithContext(ctx).Model(&models.Supplier{}).Order("name")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var rows []models.Supplier
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindSupplierByID(ctx context.Context, id int64) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *Repository) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *Repository) SaveSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

func (r *Repository) DeactivateSupplier(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Supplier{}).
		Where("id = ?", id).
		UpdateColumn("is_active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ListParts(ctx context.Context, filter PartFilter) ([]models.Part, error) {
	query := r.db.WithContext(ctx).Model(&models.Part{}).
		Preload("Supplier").
		Order("parts.name")
	if filter.ActiveOnly {
		query = query.Where("parts.is_active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("parts.category = ?", filter.Category)
	}
	if filter.SupplierID > 0 {
		query = query.Where("parts.supplier_id = ?", filter.SupplierID)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(parts.name) LIKE ? OR LOWER(parts.sku) LIKE ?", like, like)
	}
	if filter.NeedsReorder {
		// A part with no counter row at all counts as zero on hand.
		join := "LEFT JOIN inventory_stock ON inventory_stock.part_id = parts.id"
		args := []any{}
		if filter.LocationID > 0 {
			join += " AND inventory_stock.inventory_location_id = ?"
			args = append(args, filter.LocationID)
		}
		query = query.Joins(join, args...).
			Where("COALESCE(inventory_stock.quantity, 0) < parts.reorder_point").
			Distinct("parts.*")
	}

	var rows []models.Part
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindPartByID(ctx context.Context, id int64) (*models.Part, error) {
	var part models.Part
	err := r.db.WithContext(ctx).Preload("Supplier").First(&part, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *Repository) CreatePart(ctx context.Context, part *models.Part) error {
	return r.db.WithContext(ctx).Create(part).Error
}

func (r *Repository) SavePart(ctx context.Context, part *models.Part) error {
	return r.db.WithContext(ctx).Save(part).Error
}

func (r *Repository) DeactivatePart(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Part{}).
		Where("id = ?", id).
		UpdateColumn("is_active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ListLocations(ctx context.Context, activeOnly bool) ([]models.InventoryLocation, error) {
	query := r.db.WithContext(ctx).Model(&models.InventoryLocation{}).Order("code")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var rows []models.InventoryLocation
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindLocationByID(ctx context.Context, id int64) (*models.InventoryLocation, error) {
	var location models.InventoryLocation
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *Repository) CreateLocation(ctx context.Context, location *models.InventoryLocation) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *Repository) SaveLocation(ctx context.Context, location *models.InventoryLocation) error {
	return r.db.WithContext(ctx).Save(location).Error
}

func (r *Repository) DeactivateLocation(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.InventoryLocation{}).
		Where("id = ?", id).
		UpdateColumn("is_active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) SupplierExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Supplier{}).
		Where("id = ? AND is_active = ?", id, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
