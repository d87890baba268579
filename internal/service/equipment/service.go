package equipment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
	equipmentRepo "github.com/m04kA/EquipShare-BookingService/internal/infra/storage/equipment"
	"github.com/m04kA/EquipShare-BookingService/internal/service/equipment/models"
)

// Service сервис управления оборудованием владельца и поиска по каталогу
type Service struct {
	repo     EquipmentRepository
	validate *validator.Validate
	logger   Logger
}

// NewService создает новый экземпляр сервиса оборудования
func NewService(repo EquipmentRepository, logger Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// GetByID получает оборудование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.EquipmentResponse, error) {
	eq, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainEquipment(eq), nil
}

// ListByOwner получает оборудование владельца, новое первым
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) (*models.EquipmentListResponse, error) {
	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("ListByOwner: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListByOwner - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainEquipmentList(list), nil
}

// Search ищет доступное для аренды оборудование
func (s *Service) Search(ctx context.Context, req *models.SearchRequest) (*models.EquipmentListResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sort, ok := domain.ParseEquipmentSort(req.Sort)
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, req.Sort)
	}

	list, err := s.repo.Search(ctx, domain.EquipmentSearchFilter{
		Query:      strings.TrimSpace(req.Query),
		CategoryID: req.CategoryID,
		Sort:       sort,
	})
	if err != nil {
		s.logger.Error("Search: repository error for q=%q: %v", req.Query, err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Search: q=%q sort=%s found=%d", req.Query, sort, len(list))
	return models.FromDomainEquipmentList(list), nil
}

// Create создает оборудование от имени владельца
func (s *Service) Create(ctx context.Context, ownerID int64, req *models.EquipmentRequest) (*models.EquipmentResponse, error) {
	if err := s.validateRequest(req); err != nil {
		s.logger.Warn("Create: invalid request from owner=%d: %v", ownerID, err)
		return nil, err
	}

	eq := &domain.Equipment{OwnerID: ownerID, IsAvailable: true}
	applyRequest(eq, req)

	created, err := s.repo.Create(ctx, eq)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrReferenceNotFound) {
			return nil, fmt.Errorf("%w: unknown category %d", ErrInvalidInput, req.CategoryID)
		}
		s.logger.Error("Create: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: equipment id=%d created by owner=%d", created.ID, ownerID)
	return models.FromDomainEquipment(created), nil
}

// Update изменяет оборудование. Уже созданные бронирования сохраняют свои цены.
func (s *Service) Update(ctx context.Context, ownerID, id int64, req *models.EquipmentRequest) (*models.EquipmentResponse, error) {
	if err := s.validateRequest(req); err != nil {
		s.logger.Warn("Update: invalid request for equipment id=%d: %v", id, err)
		return nil, err
	}

	eq, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}
	if !eq.IsOwnedBy(ownerID) {
		s.logger.Warn("Update: access denied for user=%d to equipment id=%d", ownerID, id)
		return nil, ErrAccessDenied
	}

	applyRequest(eq, req)

	updated, err := s.repo.Update(ctx, eq)
	if err != nil {
		switch {
		case errors.Is(err, equipmentRepo.ErrEquipmentNotFound):
			return nil, ErrEquipmentNotFound
		case errors.Is(err, equipmentRepo.ErrReferenceNotFound):
			return nil, fmt.Errorf("%w: unknown category %d", ErrInvalidInput, req.CategoryID)
		}
		s.logger.Error("Update: repository error for equipment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: equipment id=%d updated by owner=%d", id, ownerID)
	return models.FromDomainEquipment(updated), nil
}

// Delete удаляет оборудование, если на него нет бронирований
func (s *Service) Delete(ctx context.Context, ownerID, id int64) error {
	eq, err := s.get(ctx, "Delete", id)
	if err != nil {
		return err
	}
	if !eq.IsOwnedBy(ownerID) {
		s.logger.Warn("Delete: access denied for user=%d to equipment id=%d", ownerID, id)
		return ErrAccessDenied
	}

	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		switch {
		case errors.Is(err, equipmentRepo.ErrEquipmentInUse):
			s.logger.Warn("Delete: equipment id=%d still has bookings", id)
			return ErrEquipmentInUse
		case errors.Is(err, equipmentRepo.ErrEquipmentNotFound):
			return ErrEquipmentNotFound
		}
		s.logger.Error("Delete: repository error for equipment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: equipment id=%d deleted by owner=%d", id, ownerID)
	return nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Equipment, error) {
	eq, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			s.logger.Warn("%s: equipment id=%d not found", op, id)
			return nil, ErrEquipmentNotFound
		}
		s.logger.Error("%s: repository error for equipment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return eq, nil
}

func (s *Service) validateRequest(req *models.EquipmentRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	price := domain.RoundMoney(req.PricePerDay)
	if !price.IsPositive() {
		return fmt.Errorf("%w: price per day must be positive", ErrInvalidInput)
	}
	if price.GreaterThan(domain.MaxPricePerDay) {
		return fmt.Errorf("%w: price per day must not exceed %s", ErrInvalidInput, domain.FormatMoney(domain.MaxPricePerDay))
	}
	return nil
}

func applyRequest(eq *domain.Equipment, req *models.EquipmentRequest) {
	eq.CategoryID = req.CategoryID
	eq.Name = strings.TrimSpace(req.Name)
	eq.Description = req.Description
	eq.Location = req.Location
	eq.ImageURL = req.ImageURL
	eq.PricePerDay = domain.RoundMoney(req.PricePerDay)
	if req.IsAvailable != nil {
		eq.IsAvailable = *req.IsAvailable
	}
}
