package catalog

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyServiceName   = errors.New("service name cannot be empty")
	ErrServiceNameTooLong = errors.New("service name is too long (max 255 characters)")
	ErrNonPositivePrice   = errors.New("base price must be positive")
	ErrInvalidPriceUnit   = errors.New("invalid price unit")
	ErrServiceInactive    = errors.New("service is inactive")
)

const MaxServiceNameLength = 255

// Service is an offering published by a professional. Read-only to the
// booking core; publishing and editing live in the provider surface.
type Service struct {
	id          uuid.UUID
	proID       uuid.UUID
	franchiseID *uuid.UUID
	name        string
	basePrice   decimal.Decimal
	priceUnit   PriceUnit
	durationMin *int32
	active      bool
}

func NewService(
	id uuid.UUID,
	proID uuid.UUID,
	franchiseID *uuid.UUID,
	name string,
	basePrice decimal.Decimal,
	priceUnit PriceUnit,
	durationMin *int32,
	active bool,
) (*Service, error) {
	if err := validateServiceName(name); err != nil {
		return nil, err
	}
	if !basePrice.IsPositive() {
		return nil, ErrNonPositivePrice
	}
	if !priceUnit.IsValid() {
		return nil, ErrInvalidPriceUnit
	}

	return &Service{
		id:          id,
		proID:       proID,
		franchiseID: franchiseID,
		name:        strings.TrimSpace(name),
		basePrice:   basePrice,
		priceUnit:   priceUnit,
		durationMin: durationMin,
		active:      active,
	}, nil
}

func validateServiceName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyServiceName
	}
	if len(name) > MaxServiceNameLength {
		return ErrServiceNameTooLong
	}
	return nil
}

func (s *Service) ID() uuid.UUID              { return s.id }
func (s *Service) ProID() uuid.UUID           { return s.proID }
func (s *Service) FranchiseID() *uuid.UUID    { return s.franchiseID }
func (s *Service) Name() string               { return s.name }
func (s *Service) BasePrice() decimal.Decimal { return s.basePrice }
func (s *Service) PriceUnit() PriceUnit       { return s.priceUnit }
func (s *Service) DurationMin() *int32        { return s.durationMin }
func (s *Service) IsActive() bool             { return s.active }
