package wallet

import (
	"time"

	apperrors "propmarket/internal/errors"
)

// observe records the duration of op and, when err is set, its error code.
func (s *service) observe(op string, start time.Time, err error) {
	s.metrics.RecordOperationDuration(op, time.Since(start))
	if err != nil {
		s.metrics.RecordError(op, apperrors.Code(err))
	}
}
