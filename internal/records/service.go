// Package records implements the record service: create and paginated-list
// operations for athletes, training centers and categories over a relational
// store.
package records

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sportsbase/roster/common/dbutil"
	"github.com/sportsbase/roster/internal/events"
	"github.com/sportsbase/roster/pkg/errors"
	"github.com/sportsbase/roster/pkg/metrics"
	"github.com/sportsbase/roster/pkg/models"
	"github.com/sportsbase/roster/pkg/pagination"
)

// AthleteFilter narrows ListAthletes: Name is a case-insensitive substring
// match, TaxID an exact match. Empty fields are ignored.
type AthleteFilter struct {
	Name  string `form:"name"`
	TaxID string `form:"tax_id"`
}

// RecordService defines all record operations.
type RecordService interface {
	Start() error
	Stop() error
	CreateTrainingCenter(ctx context.Context, req *models.CreateTrainingCenterRequest) (*models.TrainingCenter, error)
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	CreateAthlete(ctx context.Context, req *models.CreateAthleteRequest) (*models.Athlete, error)
	ListAthletes(ctx context.Context, filter AthleteFilter, params pagination.LimitOffsetParams) (*pagination.Page[models.AthleteSummary], error)
	GetAthlete(ctx context.Context, id uint) (*models.AthleteDetail, error)
	ListTrainingCenters(ctx context.Context, params pagination.LimitOffsetParams) (*pagination.Page[models.TrainingCenter], error)
	ListCategories(ctx context.Context, params pagination.LimitOffsetParams) (*pagination.Page[models.Category], error)
	Ping(ctx context.Context) error
}

// Service implements RecordService
type Service struct {
	logger    *zap.Logger
	db        *gorm.DB
	publisher events.Publisher
}

// NewService creates a new RecordService
func NewService(logger *zap.Logger, db *gorm.DB, publisher events.Publisher) (RecordService, error) {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	svc := &Service{
		logger:    logger,
		db:        db,
		publisher: publisher,
	}
	return svc, nil
}

// Start starts the record service
func (s *Service) Start() error {
	s.logger.Info("Record service started")
	return nil
}

// Stop stops the record service
func (s *Service) Stop() error {
	s.logger.Info("Record service stopped")
	return s.publisher.Close()
}

// Ping checks storage connectivity.
func (s *Service) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CreateTrainingCenter inserts a training center. A duplicate name is
// surfaced as a Conflict error naming the value; there is no pre-check, the
// storage constraint is the only arbiter.
func (s *Service) CreateTrainingCenter(ctx context.Context, req *models.CreateTrainingCenterRequest) (*models.TrainingCenter, error) {
	center := &models.TrainingCenter{Name: req.Name}
	if err := s.db.WithContext(ctx).Create(center).Error; err != nil {
		if dbutil.IsUniqueViolation(err) {
			metrics.UniqueConflicts.WithLabelValues("training_center").Inc()
			return nil, errors.Conflict.
				Explain("a training center named %q already exists", req.Name).
				Wrap(err)
		}
		return nil, err
	}

	s.emitCreated(ctx, "training_center", center.ID)
	metrics.RecordsCreated.WithLabelValues("training_center").Inc()
	s.logger.Info("Created training center", zap.Uint("id", center.ID), zap.String("name", center.Name))
	return center, nil
}

// CreateCategory inserts a category, with the same conflict contract as
// CreateTrainingCenter.
func (s *Service) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{Name: req.Name}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		if dbutil.IsUniqueViolation(err) {
			metrics.UniqueConflicts.WithLabelValues("category").Inc()
			return nil, errors.Conflict.
				Explain("a category named %q already exists", req.Name).
				Wrap(err)
		}
		return nil, err
	}

	s.emitCreated(ctx, "category", category.ID)
	metrics.RecordsCreated.WithLabelValues("category").Inc()
	s.logger.Info("Created category", zap.Uint("id", category.ID), zap.String("name", category.Name))
	return category, nil
}

// CreateAthlete inserts an athlete. Only a tax-id uniqueness violation is
// classified as a conflict; any other integrity failure (a dangling
// training-center or category reference on an enforcing engine) propagates
// unclassified. The referenced ids are not checked before the write.
func (s *Service) CreateAthlete(ctx context.Context, req *models.CreateAthleteRequest) (*models.Athlete, error) {
	athlete := &models.Athlete{
		Name:             req.Name,
		TaxID:            req.TaxID,
		TrainingCenterID: req.TrainingCenterID,
		CategoryID:       req.CategoryID,
	}
	if err := s.db.WithContext(ctx).Create(athlete).Error; err != nil {
		if dbutil.IsUniqueViolation(err) && isTaxIDConstraint(dbutil.UniqueConstraint(err)) {
			metrics.UniqueConflicts.WithLabelValues("athlete").Inc()
			return nil, errors.Conflict.
				Explain("an athlete with tax id %q already exists", req.TaxID).
				Wrap(err)
		}
		return nil, err
	}

	s.emitCreated(ctx, "athlete", athlete.ID)
	metrics.RecordsCreated.WithLabelValues("athlete").Inc()
	s.logger.Info("Created athlete", zap.Uint("id", athlete.ID), zap.String("tax_id", athlete.TaxID))
	return athlete, nil
}

// isTaxIDConstraint accepts the constraint when the driver names it and it
// covers the tax_id column, or when no structured name is available (the
// translated sentinel path, where tax_id is the table's only unique column).
func isTaxIDConstraint(name string) bool {
	return name == "" || strings.Contains(name, "tax_id")
}

// athleteRow is the scan target for the joined read-side query.
type athleteRow struct {
	ID                 uint
	Name               string
	TrainingCenterName *string
	CategoryName       *string
}

// ListAthletes returns one page of athletes with the training-center and
// category names resolved through a single batched LEFT JOIN. Total counts
// the full filtered set; limit/offset slice it in SQL, ordered by athlete id
// so consecutive pages partition the set.
func (s *Service) ListAthletes(ctx context.Context, filter AthleteFilter, params pagination.LimitOffsetParams) (*pagination.Page[models.AthleteSummary], error) {
	query := s.athleteQuery(ctx, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []athleteRow
	err := query.
		Select("athletes.id AS id, athletes.name AS name, training_centers.name AS training_center_name, categories.name AS category_name").
		Joins("LEFT JOIN training_centers ON training_centers.id = athletes.training_center_id").
		Joins("LEFT JOIN categories ON categories.id = athletes.category_id").
		Order("athletes.id").
		Limit(params.Limit).
		Offset(params.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]models.AthleteSummary, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.AthleteSummary{
			Name:               row.Name,
			TrainingCenterName: row.TrainingCenterName,
			CategoryName:       row.CategoryName,
		})
	}
	return pagination.NewPage(items, total, params), nil
}

// GetAthlete returns one athlete with resolved names, or NotFound.
func (s *Service) GetAthlete(ctx context.Context, id uint) (*models.AthleteDetail, error) {
	var detail models.AthleteDetail
	result := s.db.WithContext(ctx).
		Model(&models.Athlete{}).
		Select("athletes.id, athletes.name, athletes.tax_id, athletes.created_at, training_centers.name AS training_center_name, categories.name AS category_name").
		Joins("LEFT JOIN training_centers ON training_centers.id = athletes.training_center_id").
		Joins("LEFT JOIN categories ON categories.id = athletes.category_id").
		Where("athletes.id = ?", id).
		Scan(&detail)
	if result.Error != nil {
		return nil, dbutil.WrapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errors.NotFound.Explain("athlete %d not found", id)
	}
	return &detail, nil
}

// ListTrainingCenters returns one page of training centers ordered by id.
func (s *Service) ListTrainingCenters(ctx context.Context, params pagination.LimitOffsetParams) (*pagination.Page[models.TrainingCenter], error) {
	query := s.db.WithContext(ctx).Model(&models.TrainingCenter{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var centers []models.TrainingCenter
	if err := query.Order("id").Limit(params.Limit).Offset(params.Offset).Find(&centers).Error; err != nil {
		return nil, err
	}
	return pagination.NewPage(centers, total, params), nil
}

// ListCategories returns one page of categories ordered by id.
func (s *Service) ListCategories(ctx context.Context, params pagination.LimitOffsetParams) (*pagination.Page[models.Category], error) {
	query := s.db.WithContext(ctx).Model(&models.Category{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := query.Order("id").Limit(params.Limit).Offset(params.Offset).Find(&categories).Error; err != nil {
		return nil, err
	}
	return pagination.NewPage(categories, total, params), nil
}

// athleteQuery builds the filtered base query shared by count and fetch.
func (s *Service) athleteQuery(ctx context.Context, filter AthleteFilter) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Athlete{})
	if filter.Name != "" {
		query = query.Where("LOWER(athletes.name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.TaxID != "" {
		query = query.Where("athletes.tax_id = ?", filter.TaxID)
	}
	return query
}

// emitCreated publishes the created event without letting a broker failure
// reach the caller.
func (s *Service) emitCreated(ctx context.Context, entity string, id uint) {
	if err := s.publisher.RecordCreated(ctx, entity, id); err != nil {
		s.logger.Warn("record event dropped", zap.String("entity", entity), zap.Uint("id", id), zap.Error(err))
	}
}
