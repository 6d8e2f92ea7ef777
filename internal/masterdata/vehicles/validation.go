package vehicles

import (
	"fmt"
	"strings"

	"github.com/routeledger/routeledger/internal/shared"
)

func (s *Service) validate(v Vehicle) error {
	if strings.TrimSpace(v.VehicleNo) == "" {
		return fmt.Errorf("%w: vehicle number is required", shared.ErrValidation)
	}
	if len(v.VehicleNo) > 15 {
		return fmt.Errorf("%w: vehicle number exceeds 15 characters", shared.ErrValidation)
	}
	if strings.TrimSpace(v.VehicleType) == "" {
		return fmt.Errorf("%w: vehicle type is required", shared.ErrValidation)
	}
	return nil
}
