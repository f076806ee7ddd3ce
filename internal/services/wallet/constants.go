package wallet

// Operation names used for metrics and logs.
const (
	OpGetSummary      = "wallet.get_summary"
	OpGetTransactions = "wallet.get_transactions"
	OpDeposit         = "wallet.deposit"
	OpTopUp           = "wallet.top_up"
)

const DefaultCurrency = "AED"
