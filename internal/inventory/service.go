package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pitlanehq/garage-backend/pkg/db"
	"github.com/pitlanehq/garage-backend/pkg/db/models"
	"github.com/pitlanehq/garage-backend/pkg/enums"
	pkgerrors "github.com/pitlanehq/garage-backend/pkg/errors"
	"github.com/pitlanehq/garage-backend/pkg/logger"
	"github.com/pitlanehq/garage-backend/pkg/metrics"
	"github.com/pitlanehq/garage-backend/pkg/pagination"
	"gorm.io/gorm"
)

// defaultInstallNotes is written to Install ledger entries with no caller notes.
const defaultInstallNotes = "Part installation"

// Service exposes the stock adjustment and part consumption operations plus
// the read projections over stock, ledger, and installations.
type Service interface {
	Adjust(ctx context.Context, actorID int64, input AdjustStockInput) (*StockView, error)
	Consume(ctx context.Context, actorID int64, input ConsumePartInput) (*InstallationView, error)
	ListStock(ctx context.Context, filter StockFilter) ([]StockView, error)
	ListMovements(ctx context.Context, filter MovementFilter) (*MovementPage, error)
	ListInstallations(ctx context.Context, workOrderID int64) ([]InstallationView, error)
	GetInstallation(ctx context.Context, id int64) (*InstallationView, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	metrics  *metrics.InventoryMetrics
	logg     *logger.Logger
	pageSize int
}

// NewService constructs the inventory service. Metrics may be nil.
func NewService(repo *Repository, dbClient *db.Client, m *metrics.InventoryMetrics, logg *logger.Logger, movementPageSize int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if movementPageSize <= 0 {
		movementPageSize = pagination.DefaultLimit
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		metrics:  m,
		logg:     logg,
		pageSize: movementPageSize,
	}, nil
}

// movementParams is the one transactional primitive shared by Adjust and
// Consume: add delta to the counter and append the matching ledger entry,
// both inside the caller's transaction.
type movementParams struct {
	partID      int64
	locationID  int64
	delta       int
	reason      string
	workOrderID *int64
	actorID     *int64
	notes       string
	// allowCreate lets a positive delta start a missing counter at zero.
	// Consume never sets it: consuming from a pair with no recorded stock
	// is always rejected.
	allowCreate bool
}

func (s *service) Adjust(ctx context.Context, actorID int64, input AdjustStockInput) (*StockView, error) {
	if actorID <= 0 {
		s.metrics.IncRejection("unauthorized")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity required")
	}
	if err := s.validateAdjust(input); err != nil {
		s.metrics.IncRejection("validation")
		return nil, err
	}
	if err := s.checkReferences(ctx, input.PartID, input.InventoryLocationID, input.WorkOrderID); err != nil {
		s.metrics.IncRejection("reference_not_found")
		return nil, err
	}

	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		reason = enums.MovementReasonAdjustment
	}

	params := movementParams{
		partID:      input.PartID,
		locationID:  input.InventoryLocationID,
		delta:       input.QuantityChange,
		reason:      reason,
		workOrderID: input.WorkOrderID,
		actorID:     &actorID,
		notes:       input.Notes,
		allowCreate: true,
	}
	txStart := time.Now()
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.applyMovement(ctx, tx, params)
	})
	s.metrics.ObserveTxDuration("adjust", time.Since(txStart).Seconds())
	if err != nil {
		s.recordFailure(ctx, "inventory.adjust.rejected", err)
		return nil, err
	}

	direction := "in"
	if input.QuantityChange < 0 {
		direction = "out"
	}
	s.metrics.IncAdjustment(direction)

	stock, err := s.repo.GetStockDetail(ctx, input.PartID, input.InventoryLocationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload stock")
	}
	return stockView(stock), nil
}

func (s *service) Consume(ctx context.Context, actorID int64, input ConsumePartInput) (*InstallationView, error) {
	if actorID <= 0 {
		s.metrics.IncRejection("unauthorized")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity required")
	}
	if err := s.validateConsume(input); err != nil {
		s.metrics.IncRejection("validation")
		return nil, err
	}
	if err := s.checkReferences(ctx, input.PartID, input.InventoryLocationID, &input.WorkOrderID); err != nil {
		s.metrics.IncRejection("reference_not_found")
		return nil, err
	}

	notes := strings.TrimSpace(input.Notes)
	movementNotes := notes
	if movementNotes == "" {
		movementNotes = defaultInstallNotes
	}

	installation := &models.PartInstallation{
		WorkOrderID:         input.WorkOrderID,
		PartID:              input.PartID,
		InventoryLocationID: input.InventoryLocationID,
		Quantity:            input.Quantity,
		InstalledByUserID:   &actorID,
		Notes:               notes,
	}
	params := movementParams{
		partID:      input.PartID,
		locationID:  input.InventoryLocationID,
		delta:       -input.Quantity,
		reason:      enums.MovementReasonInstall,
		workOrderID: &input.WorkOrderID,
		actorID:     &actorID,
		notes:       movementNotes,
	}
	txStart := time.Now()
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.applyMovement(ctx, tx, params); err != nil {
			return err
		}
		return s.repo.WithTx(tx).CreateInstallation(ctx, installation)
	})
	s.metrics.ObserveTxDuration("consume", time.Since(txStart).Seconds())
	if err != nil {
		s.recordFailure(ctx, "inventory.consume.rejected", err)
		return nil, err
	}

	s.metrics.IncInstallation()

	detail, err := s.repo.FindInstallation(ctx, installation.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload installation")
	}
	return installationView(detail), nil
}

// applyMovement runs the guarded counter update and appends the ledger entry.
// The conditional WHERE clause carries the non-negativity invariant, so two
// concurrent decrements can never both pass against a stale quantity.
func (s *service) applyMovement(ctx context.Context, tx *gorm.DB, p movementParams) error {
	repo := s.repo.WithTx(tx)
	now := time.Now().UTC()

	applied, err := repo.ApplyStockDelta(ctx, p.partID, p.locationID, p.delta, now)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update stock")
	}
	if !applied {
		stock, ferr := repo.FindStock(ctx, p.partID, p.locationID)
		switch {
		case errors.Is(ferr, gorm.ErrRecordNotFound):
			if !p.allowCreate || p.delta < 0 {
				return s.insufficient(0, p.delta)
			}
			if cerr := repo.CreateStock(ctx, &models.InventoryStock{
				PartID:              p.partID,
				InventoryLocationID: p.locationID,
				Quantity:            0,
			}); cerr != nil && !db.IsUniqueViolation(cerr, stockUniqueConstraint) {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, cerr, "create stock")
			}
			applied, err = repo.ApplyStockDelta(ctx, p.partID, p.locationID, p.delta, now)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update stock")
			}
			if !applied {
				// A concurrent writer drained the row between our create
				// and update.
				current, rerr := repo.FindStock(ctx, p.partID, p.locationID)
				if rerr != nil {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, rerr, "reload stock")
				}
				return s.insufficient(current.Quantity, p.delta)
			}
		case ferr != nil:
			return pkgerrors.Wrap(pkgerrors.CodeInternal, ferr, "load stock")
		default:
			return s.insufficient(stock.Quantity, p.delta)
		}
	}

	movement := &models.InventoryMovement{
		PartID:              p.partID,
		InventoryLocationID: p.locationID,
		QuantityChange:      p.delta,
		Reason:              p.reason,
		WorkOrderID:         p.workOrderID,
		PerformedByUserID:   p.actorID,
		PerformedAt:         now,
		Notes:               p.notes,
	}
	if err := repo.CreateMovement(ctx, movement); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append movement")
	}
	return nil
}

func (s *service) ListStock(ctx context.Context, filter StockFilter) ([]StockView, error) {
	rows, err := s.repo.ListStock(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list stock")
	}
	views := make([]StockView, 0, len(rows))
	for i := range rows {
		views = append(views, *stockView(&rows[i]))
	}
	return views, nil
}

func (s *service) ListMovements(ctx context.Context, filter MovementFilter) (*MovementPage, error) {
	cursor, err := pagination.ParseCursor(filter.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = s.pageSize
	}
	limit = pagination.NormalizeLimit(limit)

	rows, err := s.repo.ListMovements(ctx, filter, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list movements")
	}

	page := &MovementPage{Movements: make([]MovementView, 0, len(rows))}
	if len(rows) > limit {
		next := rows[limit]
		rows = rows[:limit]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			PerformedAt: next.PerformedAt,
			ID:          next.ID,
		})
	}
	for i := range rows {
		page.Movements = append(page.Movements, movementView(&rows[i]))
	}
	return page, nil
}

func (s *service) ListInstallations(ctx context.Context, workOrderID int64) ([]InstallationView, error) {
	rows, err := s.repo.ListInstallations(ctx, workOrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list installations")
	}
	views := make([]InstallationView, 0, len(rows))
	for i := range rows {
		views = append(views, *installationView(&rows[i]))
	}
	return views, nil
}

func (s *service) GetInstallation(ctx context.Context, id int64) (*InstallationView, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "installation id must be positive")
	}
	installation, err := s.repo.FindInstallation(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "installation %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load installation")
	}
	return installationView(installation), nil
}

func (s *service) validateAdjust(input AdjustStockInput) error {
	if input.PartID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "part id must be positive")
	}
	if input.InventoryLocationID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "inventory location id must be positive")
	}
	if input.QuantityChange == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity change must be non-zero")
	}
	if input.WorkOrderID != nil && *input.WorkOrderID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "work order id must be positive")
	}
	return nil
}

func (s *service) validateConsume(input ConsumePartInput) error {
	if input.WorkOrderID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "work order id must be positive")
	}
	if input.PartID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "part id must be positive")
	}
	if input.InventoryLocationID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "inventory location id must be positive")
	}
	if input.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	return nil
}

// checkReferences gates entry into a mutation: the part and location must
// exist and be active, and a supplied work order must exist. Missing or
// inactive references fail the request itself, hence REFERENCE_NOT_FOUND.
func (s *service) checkReferences(ctx context.Context, partID, locationID int64, workOrderID *int64) error {
	if _, err := s.repo.FindActivePart(ctx, partID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Newf(pkgerrors.CodeReferenceNotFound, "part %d not found or inactive", partID)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load part")
	}
	if _, err := s.repo.FindActiveLocation(ctx, locationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Newf(pkgerrors.CodeReferenceNotFound, "inventory location %d not found or inactive", locationID)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load inventory location")
	}
	if workOrderID != nil {
		exists, err := s.repo.WorkOrderExists(ctx, *workOrderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load work order")
		}
		if !exists {
			return pkgerrors.Newf(pkgerrors.CodeReferenceNotFound, "work order %d not found", *workOrderID)
		}
	}
	return nil
}

func (s *service) insufficient(current, delta int) error {
	s.metrics.IncRejection("insufficient_stock")
	return pkgerrors.Newf(pkgerrors.CodeInsufficientStock,
		"insufficient stock: current=%d, change=%d", current, delta)
}

func (s *service) recordFailure(ctx context.Context, msg string, err error) {
	typed := pkgerrors.As(err)
	if typed != nil && typed.Code() != pkgerrors.CodeInternal {
		logCtx := s.logg.WithField(ctx, "error_code", string(typed.Code()))
		s.logg.Warn(logCtx, msg)
		return
	}
	s.logg.Error(ctx, msg, err)
}
