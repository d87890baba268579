package equipment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
	"github.com/m04kA/EquipShare-BookingService/pkg/dbmetrics"
	"github.com/m04kA/EquipShare-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/EquipShare-BookingService/pkg/txmanager"
)

var equipmentColumns = []string{
	"id",
	"owner_id",
	"category_id",
	"name",
	"description",
	"location",
	"image_url",
	"price_per_day",
	"is_available",
	"created_at",
	"updated_at",
}

var sortOrders = map[domain.EquipmentSort][]string{
	domain.SortNewest:    {"created_at DESC", "id DESC"},
	domain.SortPriceAsc:  {"price_per_day ASC", "id ASC"},
	domain.SortPriceDesc: {"price_per_day DESC", "id DESC"},
	domain.SortName:      {"name ASC", "id ASC"},
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Repository репозиторий для работы с оборудованием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория оборудования
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое оборудование
func (r *Repository) Create(ctx context.Context, eq *domain.Equipment) (*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("equipment").
		Columns(
			"owner_id",
			"category_id",
			"name",
			"description",
			"location",
			"image_url",
			"price_per_day",
			"is_available",
		).
		Values(
			eq.OwnerID,
			eq.CategoryID,
			eq.Name,
			eq.Description,
			eq.Location,
			eq.ImageURL,
			eq.PricePerDay,
			eq.IsAvailable,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&eq.ID, &eq.CreatedAt, &eq.UpdatedAt)
	if err != nil {
		if txmanager.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: Create - category %d: %v", ErrReferenceNotFound, eq.CategoryID, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return eq, nil
}

// GetByID получает оборудование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE), что сериализует создание бронирований на одно оборудование.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(equipmentColumns...).
		From("equipment").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var eq domain.Equipment
	err = executor.QueryRowContext(ctx, query, args...).Scan(equipmentDest(&eq)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEquipmentNotFound
	}
	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: GetByID - scan equipment: %v", ErrScanRow, err)
	}

	return &eq, nil
}

// Update обновляет оборудование владельца.
// Цены уже созданных бронирований не пересчитываются.
func (r *Repository) Update(ctx context.Context, eq *domain.Equipment) (*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("equipment").
		Set("category_id", eq.CategoryID).
		Set("name", eq.Name).
		Set("description", eq.Description).
		Set("location", eq.Location).
		Set("image_url", eq.ImageURL).
		Set("price_per_day", eq.PricePerDay).
		Set("is_available", eq.IsAvailable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": eq.ID, "owner_id": eq.OwnerID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&eq.CreatedAt, &eq.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEquipmentNotFound
	}
	if err != nil {
		if txmanager.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: Update - category %d: %v", ErrReferenceNotFound, eq.CategoryID, err)
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return eq, nil
}

// Delete удаляет оборудование владельца.
// Если на оборудование ссылаются бронирования, возвращает ErrEquipmentInUse.
func (r *Repository) Delete(ctx context.Context, id, ownerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("equipment").
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if txmanager.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: Delete - equipment %d: %v", ErrEquipmentInUse, id, err)
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEquipmentNotFound
	}

	return nil
}

// ListByOwner получает оборудование владельца, новое первым
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Equipment, error) {
	selectBuilder := psqlbuilder.Select(equipmentColumns...).
		From("equipment").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy(sortOrders[domain.SortNewest]...)

	return r.list(ctx, "ListByOwner", selectBuilder)
}

// Search ищет доступное оборудование по названию и описанию (без учёта регистра)
func (r *Repository) Search(ctx context.Context, filter domain.EquipmentSearchFilter) ([]*domain.Equipment, error) {
	selectBuilder := psqlbuilder.Select(equipmentColumns...).
		From("equipment").
		Where(squirrel.Eq{"is_available": true})

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + likeEscaper.Replace(q) + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		})
	}

	if filter.CategoryID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category_id": *filter.CategoryID})
	}

	order, ok := sortOrders[filter.Sort]
	if !ok {
		order = sortOrders[domain.SortNewest]
	}
	selectBuilder = selectBuilder.OrderBy(order...)

	return r.list(ctx, "Search", selectBuilder)
}

func (r *Repository) list(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Equipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.Equipment, 0)
	for rows.Next() {
		var eq domain.Equipment
		if err := rows.Scan(equipmentDest(&eq)...); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		result = append(result, &eq)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return result, nil
}

func equipmentDest(eq *domain.Equipment) []interface{} {
	return []interface{}{
		&eq.ID,
		&eq.OwnerID,
		&eq.CategoryID,
		&eq.Name,
		&eq.Description,
		&eq.Location,
		&eq.ImageURL,
		&eq.PricePerDay,
		&eq.IsAvailable,
		&eq.CreatedAt,
		&eq.UpdatedAt,
	}
}
