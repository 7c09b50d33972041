package retro

import (
	"errors"

	retroerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/retro/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return retroerrors.ErrRetroAdjustmentNotFound
	}
	return err
}
