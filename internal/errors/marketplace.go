package errors

var (
	ErrPropertyNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "PROPERTY_NOT_FOUND",
		Message: "property not found",
	}
	ErrListingNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "LISTING_NOT_FOUND",
		Message: "marketplace listing not found",
	}
	ErrNotPropertyOwner = &DomainError{
		Kind:    KindForbidden,
		Code:    "NOT_PROPERTY_OWNER",
		Message: "only the property owner can manage its marketplace listing",
	}
	ErrCannotBuyOwnListing = &DomainError{
		Kind:    KindForbidden,
		Code:    "CANNOT_BUY_OWN_LISTING",
		Message: "you cannot purchase your own listing",
	}
	ErrListingPriceChanged = &DomainError{
		Kind:    KindListingUnavailable,
		Code:    "LISTING_PRICE_CHANGED",
		Message: "the listing price changed since it was viewed",
	}
	ErrTransactionNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "MARKETPLACE_TRANSACTION_NOT_FOUND",
		Message: "marketplace transaction not found",
	}
	ErrNotParticipant = &DomainError{
		Kind:    KindForbidden,
		Code:    "NOT_TRANSACTION_PARTICIPANT",
		Message: "only the buyer or seller can access this transaction",
	}
	ErrMessageNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "MESSAGE_NOT_FOUND",
		Message: "message not found",
	}
	ErrNotMessageRecipient = &DomainError{
		Kind:    KindForbidden,
		Code:    "NOT_MESSAGE_RECIPIENT",
		Message: "only the recipient can mark a message as read",
	}
)
