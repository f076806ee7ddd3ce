package errors

var (
	ErrInvalidAmount = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_AMOUNT",
		Message: "amount must be greater than zero with at most two decimal places",
	}
	ErrWalletNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "WALLET_NOT_FOUND",
		Message: "wallet not found",
	}
	ErrWithdrawalNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "WITHDRAWAL_NOT_FOUND",
		Message: "withdrawal request not found",
	}
	ErrWithdrawalProcessed = &DomainError{
		Kind:    KindConflict,
		Code:    "WITHDRAWAL_ALREADY_PROCESSED",
		Message: "withdrawal request has already been processed",
	}
	ErrWithdrawalExceedsAvailable = &DomainError{
		Kind:    KindInsufficientFunds,
		Code:    "WITHDRAWAL_EXCEEDS_AVAILABLE",
		Message: "amount exceeds balance not reserved by pending withdrawals",
	}
	ErrPaymentFailed = &DomainError{
		Kind:    KindConflict,
		Code:    "PAYMENT_FAILED",
		Message: "card payment was declined",
	}
	ErrConcurrentUpdate = &DomainError{
		Kind:    KindConflict,
		Code:    "CONCURRENT_UPDATE",
		Message: "the operation conflicted with a concurrent update, please retry",
	}
)
