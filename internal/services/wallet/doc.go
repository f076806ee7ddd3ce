/*
Package wallet exposes the user facing side of the wallet ledger.

The wallet service handles:
- Balance and summary lookups
- Paginated ledger history
- Deposits, either trusted credits or card top-ups through a payment gateway

Every balance change is delegated to repositories.Procedures, which posts
the ledger entry and updates the balance in one database transaction. The
service adds validation, caching, metrics and domain events around it.

Usage:

	svc := wallet.NewService(wallet.Dependencies{
	    Repo:       repositories.NewWalletRepository(db),
	    Procedures: procs,
	    Cache:      cacheService,
	    Gateway:    payment.NewStripeGateway(key, logger),
	}, wallet.Config{Currency: "AED"})

	result, err := svc.DepositFunds(ctx, userID, wallet.DepositRequest{Amount: amount})

Cache Management:

Wallet summaries are cached per user and invalidated after every
mutation that touches the user's ledger, including those performed by
the withdrawal and marketplace services through InvalidateCache.
*/
package wallet
