// Package vaultconst contains constants of the Vault contract shared with
// off-chain applications and sibling contracts.
package vaultconst

const (
	// ErrUnknownVault is thrown by any vault operation referencing an id that
	// was never allocated by the create method.
	ErrUnknownVault = "unknown vault"
	// ErrZeroShares is thrown by deposit when the deposited amount converts
	// to zero claim shares at the current exchange rate.
	ErrZeroShares = "zero shares"
	// ErrZeroAssets is thrown by redeem when the redeemed shares convert to
	// zero asset units at the current exchange rate.
	ErrZeroAssets = "zero assets"
	// ErrTransferFailed is thrown when the underlying NEP-17 asset movement
	// between the depositor, the contract and the receiver does not succeed.
	ErrTransferFailed = "asset transfer failed"
	// ErrInsufficientShares is thrown when a burn exceeds holder's claim
	// balance.
	ErrInsufficientShares = "insufficient shares"
	// ErrNotAuthorized is thrown when withdraw or redeem is invoked with an
	// owner that neither witnessed the transaction nor delegated authority
	// to any account that did.
	ErrNotAuthorized = "not authorized"
	// ErrVaultAssetsExceeded is thrown when a vault cannot cover the
	// requested payout from assets attributed to it. Assets of co-resident
	// vaults are never used to cover the difference.
	ErrVaultAssetsExceeded = "insufficient vault assets"

	// MaxAssetAmount is the upper bound of assets a single vault may manage.
	MaxAssetAmount = 9_000_000_000_000_000_000
)
