package queries

import (
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func normalizeTrackingNumber(trackingNumber string) (string, error) {
	tn := strings.ToUpper(strings.TrimSpace(trackingNumber))
	if tn == "" {
		return "", errs.NewValueIsRequiredError("trackingNumber")
	}
	return tn, nil
}

func requireID(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}

// page clamps limit to (0, MaxPageSize]; zero selects DefaultPageSize.
func page(limit, offset int) (int, int, error) {
	if limit == 0 {
		limit = DefaultPageSize
	}
	if limit < 0 || limit > MaxPageSize {
		return 0, 0, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageSize)
	}
	if offset < 0 {
		return 0, 0, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	return limit, offset, nil
}
