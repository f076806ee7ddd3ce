package wallet

import apperrors "propmarket/internal/errors"

// ErrTopUpUnavailable is returned by TopUp when no payment gateway is
// configured.
var ErrTopUpUnavailable = apperrors.New(apperrors.KindConflict, "TOP_UP_UNAVAILABLE", "card top-ups are not enabled")
