package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
	"github.com/m04kA/EquipShare-BookingService/pkg/dbmetrics"
	"github.com/m04kA/EquipShare-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/EquipShare-BookingService/pkg/txmanager"
)

var bookingColumns = []string{
	"b.id",
	"b.equipment_id",
	"b.renter_id",
	"b.start_date",
	"b.end_date",
	"b.status",
	"b.equipment_cost",
	"b.platform_cost",
	"b.owner_receivable_amount",
	"b.total_price",
	"b.created_at",
	"b.updated_at",
}

var detailsColumns = append(append([]string{}, bookingColumns...),
	"e.name",
	"e.owner_id",
	"e.price_per_day",
	"e.image_url",
	"u.first_name",
	"u.last_name",
	"u.email",
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте есть транзакция, запрос выполняется в ней.
// Нарушение exclusion-ограничения по датам возвращается как ErrDatesConflict.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"equipment_id",
			"renter_id",
			"start_date",
			"end_date",
			"status",
			"equipment_cost",
			"platform_cost",
			"owner_receivable_amount",
			"total_price",
		).
		Values(
			booking.EquipmentID,
			booking.RenterID,
			booking.StartDate,
			booking.EndDate,
			booking.Status,
			booking.EquipmentCost,
			booking.PlatformCost,
			booking.OwnerReceivableAmount,
			booking.TotalPrice,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if txmanager.IsExclusionViolation(err) {
			return nil, fmt.Errorf("%w: Create - equipment %d: %v", ErrDatesConflict, booking.EquipmentID, err)
		}
		if txmanager.IsSerializationFailure(err) {
			// Пробрасываем как есть, чтобы txmanager распознал конфликт сериализации
			return nil, err
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	err = executor.QueryRowContext(ctx, query, args...).Scan(bookingDest(&booking)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return &booking, nil
}

// GetWithOwner получает бронирование вместе с владельцем оборудования.
// Внутри транзакции строка бронирования блокируется (FOR UPDATE).
func (r *Repository) GetWithOwner(ctx context.Context, id int64) (*domain.BookingWithOwner, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(append(append([]string{}, bookingColumns...), "e.owner_id")...).
		From("bookings b").
		Join("equipment e ON e.id = b.equipment_id").
		Where(squirrel.Eq{"b.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithOwner - build select query: %v", ErrBuildQuery, err)
	}

	var result domain.BookingWithOwner
	dest := append(bookingDest(&result.Booking), &result.OwnerID)

	err = executor.QueryRowContext(ctx, query, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithOwner - scan booking: %v", ErrScanRow, err)
	}

	return &result, nil
}

// GetDetailsByID получает бронирование с данными оборудования и арендатора
func (r *Repository) GetDetailsByID(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - build select query: %v", ErrBuildQuery, err)
	}

	var details domain.BookingDetails
	err = executor.QueryRowContext(ctx, query, args...).Scan(detailsDest(&details)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - scan booking: %v", ErrScanRow, err)
	}

	return &details, nil
}

// ListByRenter получает бронирования арендатора, новые первыми
func (r *Repository) ListByRenter(ctx context.Context, renterID int64, filter domain.BookingsFilter) ([]*domain.BookingDetails, error) {
	return r.listDetails(ctx, "ListByRenter", squirrel.Eq{"b.renter_id": renterID}, filter)
}

// ListByOwner получает бронирования оборудования владельца, новые первыми
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64, filter domain.BookingsFilter) ([]*domain.BookingDetails, error) {
	return r.listDetails(ctx, "ListByOwner", squirrel.Eq{"e.owner_id": ownerID}, filter)
}

func (r *Repository) listDetails(ctx context.Context, op string, where squirrel.Eq, filter domain.BookingsFilter) ([]*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := detailsSelect().
		Where(where).
		OrderBy("b.created_at DESC", "b.id DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.BookingDetails, 0)
	for rows.Next() {
		var details domain.BookingDetails
		if err := rows.Scan(detailsDest(&details)...); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		result = append(result, &details)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return result, nil
}

// ListActiveByEquipment получает неотклонённые бронирования оборудования по возрастанию даты начала.
// Если передан период, возвращаются только бронирования, пересекающиеся с ним (включая границы).
func (r *Repository) ListActiveByEquipment(ctx context.Context, equipmentID int64, period *domain.DateRange) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.equipment_id": equipmentID}).
		Where(squirrel.NotEq{"b.status": domain.StatusRejected}).
		OrderBy("b.start_date ASC")

	if period != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.LtOrEq{"b.start_date": period.End}).
			Where(squirrel.GtOrEq{"b.end_date": period.Start})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByEquipment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: ListActiveByEquipment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		var booking domain.Booking
		if err := rows.Scan(bookingDest(&booking)...); err != nil {
			return nil, fmt.Errorf("%w: ListActiveByEquipment - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByEquipment - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func detailsSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(detailsColumns...).
		From("bookings b").
		Join("equipment e ON e.id = b.equipment_id").
		Join("users u ON u.id = b.renter_id")
}

func bookingDest(b *domain.Booking) []interface{} {
	return []interface{}{
		&b.ID,
		&b.EquipmentID,
		&b.RenterID,
		&b.StartDate,
		&b.EndDate,
		&b.Status,
		&b.EquipmentCost,
		&b.PlatformCost,
		&b.OwnerReceivableAmount,
		&b.TotalPrice,
		&b.CreatedAt,
		&b.UpdatedAt,
	}
}

func detailsDest(d *domain.BookingDetails) []interface{} {
	return append(bookingDest(&d.Booking),
		&d.EquipmentName,
		&d.EquipmentOwnerID,
		&d.EquipmentPricePerDay,
		&d.EquipmentImageURL,
		&d.RenterFirstName,
		&d.RenterLastName,
		&d.RenterEmail,
	)
}
