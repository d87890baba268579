package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/EquipShare-BookingService/internal/infra/storage/booking"
	equipmentRepo "github.com/m04kA/EquipShare-BookingService/internal/infra/storage/equipment"
	"github.com/m04kA/EquipShare-BookingService/internal/service/bookings/models"
	"github.com/m04kA/EquipShare-BookingService/pkg/ptr"
)

// Service сервис чтения бронирований. Кэша нет, каждое чтение идёт в БД.
type Service struct {
	bookingRepo   BookingRepository
	equipmentRepo EquipmentRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	equipmentRepo EquipmentRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		equipmentRepo: equipmentRepo,
		logger:        logger,
	}
}

// GetByID получает бронирование по ID.
// Видеть бронирование могут только арендатор и владелец оборудования.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	details, err := s.bookingRepo.GetDetailsByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !details.CanBeViewedBy(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBookingDetails(details), nil
}

// GetRenterBookings получает бронирования арендатора, новые первыми
func (s *Service) GetRenterBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, ok := req.ToDomainFilter()
	if !ok {
		s.logger.Warn("GetRenterBookings: invalid status=%s for user=%d", ptr.Value(req.Status), req.UserID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	list, err := s.bookingRepo.ListByRenter(ctx, req.UserID, filter)
	if err != nil {
		s.logger.Error("GetRenterBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetRenterBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRenterBookings: fetched %d bookings for user=%d", len(list), req.UserID)
	return models.FromDomainBookingList(list), nil
}

// GetOwnerBookings получает бронирования на оборудование владельца, новые первыми
func (s *Service) GetOwnerBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, ok := req.ToDomainFilter()
	if !ok {
		s.logger.Warn("GetOwnerBookings: invalid status=%s for owner=%d", ptr.Value(req.Status), req.UserID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	list, err := s.bookingRepo.ListByOwner(ctx, req.UserID, filter)
	if err != nil {
		s.logger.Error("GetOwnerBookings: repository error for owner=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetOwnerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOwnerBookings: fetched %d bookings for owner=%d", len(list), req.UserID)
	return models.FromDomainBookingList(list), nil
}

// BookedRanges возвращает занятые периоды оборудования (без отклонённых) по возрастанию даты начала
func (s *Service) BookedRanges(ctx context.Context, equipmentID int64) ([]domain.BookedRange, error) {
	if _, err := s.equipmentRepo.GetByID(ctx, equipmentID); err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			return nil, ErrEquipmentNotFound
		}
		s.logger.Error("BookedRanges: equipment lookup failed for id=%d: %v", equipmentID, err)
		return nil, fmt.Errorf("%w: BookedRanges - equipment lookup: %v", ErrInternal, err)
	}

	list, err := s.bookingRepo.ListActiveByEquipment(ctx, equipmentID, nil)
	if err != nil {
		s.logger.Error("BookedRanges: repository error for equipment=%d: %v", equipmentID, err)
		return nil, fmt.Errorf("%w: BookedRanges - repository error: %v", ErrInternal, err)
	}

	ranges := make([]domain.BookedRange, 0, len(list))
	for _, b := range list {
		ranges = append(ranges, domain.BookedRange{Start: b.StartDate, End: b.EndDate})
	}

	return ranges, nil
}

// GetBookedDates возвращает занятые периоды оборудования для календаря
func (s *Service) GetBookedDates(ctx context.Context, equipmentID int64) (*models.BookedDatesResponse, error) {
	ranges, err := s.BookedRanges(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBookedRanges(equipmentID, ranges), nil
}
