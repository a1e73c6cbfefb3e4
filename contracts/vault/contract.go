package vault

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/vaultledger/vault-contract/common"
	"github.com/vaultledger/vault-contract/contracts/vault/vaultconst"
)

type (
	// Vault is a single accounting unit of the registry. It holds its own
	// underlying asset, issues its own class of claim shares and may route
	// custody to a strategy contract.
	Vault struct {
		// Hash of the NEP-17 contract of the underlying asset. Immutable
		// after creation.
		Asset interop.Hash160
		// Total claim shares outstanding for the vault. Always equals the
		// sum of holder balances of this class in the Claim contract.
		TotalClaimSupply int
		// Underlying asset units held on the Vault contract account and
		// attributed to this vault. Not used for valuation when a strategy
		// is set.
		HeldAssets int
		// Hash of the strategy contract, empty for self-custody vaults.
		Strategy interop.Hash160
		// Vault-specific metadata, stored and returned as is.
		Metadata []byte
	}
)

const (
	nextIDKey        = 'i'
	vaultKeyPrefix   = 'v'
	claimContractKey = 'm'
	adminKey         = 'a'
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	args := data.([]any)
	if isUpdate {
		version := args[len(args)-1].(int)
		common.CheckVersion(version)
		return
	}

	claimAddr := args[0].(interop.Hash160)
	if len(claimAddr) != interop.Hash160Len {
		panic("invalid claim contract address")
	}

	var admin interop.Hash160
	if len(args) >= 2 && len(args[1].(interop.Hash160)) == interop.Hash160Len {
		admin = args[1].(interop.Hash160)
	} else {
		admin = common.CommitteeAddress()
	}

	storage.Put(ctx, claimContractKey, claimAddr)
	storage.Put(ctx, adminKey, admin)

	runtime.Log("vault contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("vault contract updated")
}

// Create allocates a new vault for the given underlying NEP-17 asset and
// returns its id. Ids are assigned from a monotonic counter and are never
// reused. An empty strategy makes the vault self-custodial: deposited assets
// stay on the contract account and valuation is the plain idle balance.
// A non-empty strategy must be a hash of a contract exposing the
// totalAssetsManaged, afterDeposit and beforeWithdraw methods. Metadata is
// opaque for the contract, it is stored and returned as is.
//
// The method can be invoked only by the vault admin. It produces VaultCreated
// notification.
func Create(asset interop.Hash160, strategy interop.Hash160, metadata []byte) int {
	if len(asset) != interop.Hash160Len {
		panic("invalid asset contract address")
	}
	if len(strategy) != 0 && len(strategy) != interop.Hash160Len {
		panic("invalid strategy contract address")
	}

	ctx := storage.GetContext()
	common.CheckAdminWitness(storage.Get(ctx, adminKey).(interop.Hash160))

	id := common.GetIntOrZero(ctx, nextIDKey)
	putVault(ctx, id, Vault{
		Asset:            asset,
		TotalClaimSupply: 0,
		HeldAssets:       0,
		Strategy:         strategy,
		Metadata:         metadata,
	})
	storage.Put(ctx, nextIDKey, id+1)

	runtime.Notify("VaultCreated", id, asset, []byte(strategy))
	return id
}

// Deposit pulls assetAmount of the vault's underlying asset from the
// depositor and mints the proportional amount of claim shares to the
// receiver. The depositor must witness the transaction (or be a contract
// making the call). Share amount is rounded down, the remainder stays with
// the vault. Deposits converting to zero shares are rejected.
//
// The asset pull completes before any shares are minted and the afterDeposit
// hook of the strategy runs last, on already consistent vault state.
//
// It produces Deposit notification and returns the amount of minted shares.
func Deposit(vaultID int, depositor interop.Hash160, assetAmount int, receiver interop.Hash160) int {
	if assetAmount < 0 {
		panic("negative amount")
	}
	if len(receiver) != interop.Hash160Len {
		panic("invalid receiver")
	}
	common.CheckOwnerWitness(depositor)

	ctx := storage.GetContext()
	v := getVault(ctx, vaultID)

	shares := toShares(v, vaultID, assetAmount)
	if shares == 0 {
		panic(vaultconst.ErrZeroShares)
	}

	pullAssets(v.Asset, depositor, assetAmount)
	mintClaims(ctx, receiver, vaultID, shares)

	v.TotalClaimSupply += shares
	v.HeldAssets += assetAmount
	putVault(ctx, vaultID, v)

	routeAfterDeposit(ctx, vaultID, assetAmount, shares)

	runtime.Notify("Deposit", vaultID, depositor, receiver, assetAmount, shares)
	return shares
}

// Mint is a deposit driven by the desired share output: it pulls however
// many assets are required to cover shareAmount whole shares (rounded up)
// and mints exactly shareAmount shares to the receiver. Minting zero shares
// is a successful no-op.
//
// It produces Deposit notification and returns the amount of pulled assets.
func Mint(vaultID int, depositor interop.Hash160, shareAmount int, receiver interop.Hash160) int {
	if shareAmount < 0 {
		panic("negative amount")
	}
	if len(receiver) != interop.Hash160Len {
		panic("invalid receiver")
	}

	ctx := storage.GetContext()
	v := getVault(ctx, vaultID)
	if shareAmount == 0 {
		return 0
	}
	common.CheckOwnerWitness(depositor)

	assets := toAssetsCeil(v, vaultID, shareAmount)

	pullAssets(v.Asset, depositor, assets)
	mintClaims(ctx, receiver, vaultID, shareAmount)

	v.TotalClaimSupply += shareAmount
	v.HeldAssets += assets
	putVault(ctx, vaultID, v)

	routeAfterDeposit(ctx, vaultID, assets, shareAmount)

	runtime.Notify("Deposit", vaultID, depositor, receiver, assets, shareAmount)
	return assets
}

// Withdraw burns the amount of owner's claim shares covering assetAmount
// whole asset units (rounded up) and pushes assetAmount to the receiver.
// The operation must be authorized by the owner or by one of the operators
// registered for the owner in the Claim contract.
//
// The beforeWithdraw hook of the strategy runs before the burn so that the
// strategy can return assets to the contract account; if the hook or the
// final push fails, the whole operation faults and no shares are burnt.
//
// It produces Withdraw notification and returns the amount of burnt shares.
func Withdraw(vaultID int, assetAmount int, receiver, owner interop.Hash160) int {
	if assetAmount < 0 {
		panic("negative amount")
	}
	if len(receiver) != interop.Hash160Len {
		panic("invalid receiver")
	}

	ctx := storage.GetContext()
	v := getVault(ctx, vaultID)
	checkClaimAuthority(ctx, owner)

	shares := toSharesCeil(v, vaultID, assetAmount)

	recallBeforeWithdraw(ctx, vaultID, assetAmount, shares)

	payOut(ctx, vaultID, owner, receiver, assetAmount, shares)

	runtime.Notify("Withdraw", vaultID, owner, receiver, assetAmount, shares)
	return shares
}

// Redeem is a withdrawal driven by the share input: it burns exactly
// shareAmount of owner's claim shares and pushes the proportional asset
// amount (rounded down) to the receiver. Redemptions converting to zero
// assets are rejected. Authorization and hook ordering follow Withdraw.
//
// It produces Withdraw notification and returns the amount of paid assets.
func Redeem(vaultID int, shareAmount int, receiver, owner interop.Hash160) int {
	if shareAmount < 0 {
		panic("negative amount")
	}
	if len(receiver) != interop.Hash160Len {
		panic("invalid receiver")
	}

	ctx := storage.GetContext()
	v := getVault(ctx, vaultID)
	checkClaimAuthority(ctx, owner)

	assets := toAssets(v, vaultID, shareAmount)
	if assets == 0 {
		panic(vaultconst.ErrZeroAssets)
	}

	recallBeforeWithdraw(ctx, vaultID, assets, shareAmount)

	payOut(ctx, vaultID, owner, receiver, assets, shareAmount)

	runtime.Notify("Withdraw", vaultID, owner, receiver, assets, shareAmount)
	return assets
}

// TotalAssets returns the amount of underlying assets managed by the vault.
// For self-custody vaults it is the idle balance attributed to the vault,
// for strategy vaults the strategy's valuation is requested anew on every
// call.
func TotalAssets(vaultID int) int {
	ctx := storage.GetReadOnlyContext()
	v := getVault(ctx, vaultID)
	return managedAssets(v, vaultID)
}

// ConvertToShares returns the amount of claim shares the given asset amount
// is worth at the current exchange rate, rounded down.
func ConvertToShares(vaultID int, assetAmount int) int {
	ctx := storage.GetReadOnlyContext()
	v := getVault(ctx, vaultID)
	return toShares(v, vaultID, assetAmount)
}

// ConvertToAssets returns the amount of underlying assets the given share
// amount is worth at the current exchange rate, rounded down.
func ConvertToAssets(vaultID int, shareAmount int) int {
	ctx := storage.GetReadOnlyContext()
	v := getVault(ctx, vaultID)
	return toAssets(v, vaultID, shareAmount)
}

// PreviewDeposit returns the exact amount of shares Deposit would mint for
// the given asset amount.
func PreviewDeposit(vaultID int, assetAmount int) int {
	return ConvertToShares(vaultID, assetAmount)
}

// PreviewMint returns the exact amount of assets Mint would pull for the
// given share amount, rounded up.
func PreviewMint(vaultID int, shareAmount int) int {
	ctx := storage.GetReadOnlyContext()
	v := getVault(ctx, vaultID)
	return toAssetsCeil(v, vaultID, shareAmount)
}

// PreviewWithdraw returns the exact amount of shares Withdraw would burn for
// the given asset amount, rounded up.
func PreviewWithdraw(vaultID int, assetAmount int) int {
	ctx := storage.GetReadOnlyContext()
	v := getVault(ctx, vaultID)
	return toSharesCeil(v, vaultID, assetAmount)
}

// PreviewRedeem returns the exact amount of assets Redeem would pay for the
// given share amount.
func PreviewRedeem(vaultID int, shareAmount int) int {
	return ConvertToAssets(vaultID, shareAmount)
}

// MaxDeposit returns the largest asset amount the vault currently accepts
// in a single deposit.
func MaxDeposit(vaultID int) int {
	managed := TotalAssets(vaultID)
	if managed >= vaultconst.MaxAssetAmount {
		return 0
	}
	return vaultconst.MaxAssetAmount - managed
}

// MaxMint returns the largest share amount the vault currently mints in a
// single mint.
func MaxMint(vaultID int) int {
	ctx := storage.GetReadOnlyContext()
	v := getVault(ctx, vaultID)
	return toShares(v, vaultID, MaxDeposit(vaultID))
}

// MaxWithdraw returns the largest asset amount the owner can withdraw from
// the vault, i.e. the current asset worth of the owner's claim shares.
func MaxWithdraw(vaultID int, owner interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	v := getVault(ctx, vaultID)
	return toAssets(v, vaultID, claimBalance(ctx, owner, vaultID))
}

// MaxRedeem returns the largest share amount the owner can redeem from the
// vault, i.e. the owner's claim balance.
func MaxRedeem(vaultID int, owner interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	getVault(ctx, vaultID)
	return claimBalance(ctx, owner, vaultID)
}

// TotalClaimSupply returns the total amount of claim shares outstanding for
// the vault.
func TotalClaimSupply(vaultID int) int {
	ctx := storage.GetReadOnlyContext()
	return getVault(ctx, vaultID).TotalClaimSupply
}

// VaultAsset returns the hash of the underlying NEP-17 asset contract of the
// vault.
func VaultAsset(vaultID int) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getVault(ctx, vaultID).Asset
}

// VaultStrategy returns the hash of the strategy contract of the vault or an
// empty value for self-custody vaults.
func VaultStrategy(vaultID int) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getVault(ctx, vaultID).Strategy
}

// VaultMetadata returns vault metadata as it was passed to Create.
func VaultMetadata(vaultID int) []byte {
	ctx := storage.GetReadOnlyContext()
	return getVault(ctx, vaultID).Metadata
}

// VaultInfo returns the whole vault record.
func VaultInfo(vaultID int) Vault {
	ctx := storage.GetReadOnlyContext()
	return getVault(ctx, vaultID)
}

// VaultCount returns the amount of vaults ever created. Vault ids are
// allocated sequentially, so every id below the returned value is valid.
func VaultCount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetIntOrZero(ctx, nextIDKey)
}

// Vaults returns an iterator over all vault records.
func Vaults() iterator.Iterator {
	return storage.Find(storage.GetReadOnlyContext(), []byte{vaultKeyPrefix},
		storage.ValuesOnly|storage.DeserializeValues)
}

// Admin returns the vault admin account.
func Admin() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, adminKey).(interop.Hash160)
}

// SetAdmin transfers administration to another account. It can be invoked
// only by the current admin.
func SetAdmin(admin interop.Hash160) {
	if len(admin) != interop.Hash160Len {
		panic("invalid admin address")
	}

	ctx := storage.GetContext()
	common.CheckAdminWitness(storage.Get(ctx, adminKey).(interop.Hash160))
	storage.Put(ctx, adminKey, admin)
}

// OnNEP17Payment is called when the contract receives NEP-17 assets: on
// deposit pulls and on strategy recalls. Transfers of zero or negative
// amounts are rejected, anything else is accepted, attribution to a vault
// is driven by the enclosing operation.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	if amount <= 0 {
		panic("amount must be positive")
	}
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// managedAssets returns the assets attributable to the vault: the strategy
// valuation when a strategy is set, the idle balance otherwise. The value is
// requested from the strategy anew on every call, it changes between
// transactions as yield accrues.
func managedAssets(v Vault, vaultID int) int {
	if len(v.Strategy) != interop.Hash160Len {
		return v.HeldAssets
	}

	managed := contract.Call(v.Strategy, "totalAssetsManaged", contract.ReadOnly, vaultID).(int)
	if managed < 0 {
		panic("negative strategy valuation")
	}
	return managed
}

// toShares converts assets to shares at the current exchange rate, rounded
// down. With zero claim supply shares and assets are 1:1.
func toShares(v Vault, vaultID int, assets int) int {
	if assets < 0 {
		panic("negative amount")
	}
	if v.TotalClaimSupply == 0 {
		return assets
	}
	return assets * v.TotalClaimSupply / mustManagedAssets(v, vaultID)
}

// toSharesCeil is toShares rounded up: the caller must burn enough shares to
// cover the requested whole assets.
func toSharesCeil(v Vault, vaultID int, assets int) int {
	if assets < 0 {
		panic("negative amount")
	}
	if v.TotalClaimSupply == 0 {
		return assets
	}
	return divCeil(assets*v.TotalClaimSupply, mustManagedAssets(v, vaultID))
}

// toAssets converts shares to assets at the current exchange rate, rounded
// down.
func toAssets(v Vault, vaultID int, shares int) int {
	if shares < 0 {
		panic("negative amount")
	}
	if v.TotalClaimSupply == 0 {
		return shares
	}
	return shares * managedAssets(v, vaultID) / v.TotalClaimSupply
}

// toAssetsCeil is toAssets rounded up: the caller must supply enough assets
// to back the requested whole shares.
func toAssetsCeil(v Vault, vaultID int, shares int) int {
	if shares < 0 {
		panic("negative amount")
	}
	if v.TotalClaimSupply == 0 {
		return shares
	}
	return divCeil(shares*mustManagedAssets(v, vaultID), v.TotalClaimSupply)
}

// mustManagedAssets is managedAssets refusing to value a vault that has
// outstanding shares and no assets behind them.
func mustManagedAssets(v Vault, vaultID int) int {
	managed := managedAssets(v, vaultID)
	if managed == 0 {
		panic("zero managed assets")
	}
	return managed
}

// divCeil divides a by b rounding the quotient up. NeoVM integers are
// arbitrary precision, the product preceding the division cannot overflow.
func divCeil(a, b int) int {
	q := a / b
	if q*b != a {
		q += 1
	}
	return q
}

// routeAfterDeposit forwards freshly received assets to the vault's strategy
// and invokes its afterDeposit hook. No-op for self-custody vaults.
func routeAfterDeposit(ctx storage.Context, vaultID int, assets, shares int) {
	v := getVault(ctx, vaultID)
	if len(v.Strategy) != interop.Hash160Len {
		return
	}

	transferAssets(v.Asset, runtime.GetExecutingScriptHash(), v.Strategy, assets)
	v.HeldAssets -= assets
	putVault(ctx, vaultID, v)

	contract.Call(v.Strategy, "afterDeposit", contract.All, vaultID, assets, shares)
}

// recallBeforeWithdraw invokes the beforeWithdraw hook of the vault's
// strategy which must return the requested assets to the contract account.
// No-op for self-custody vaults.
func recallBeforeWithdraw(ctx storage.Context, vaultID int, assets, shares int) {
	v := getVault(ctx, vaultID)
	if len(v.Strategy) != interop.Hash160Len {
		return
	}

	contract.Call(v.Strategy, "beforeWithdraw", contract.All, vaultID, assets, shares)

	v = getVault(ctx, vaultID)
	v.HeldAssets += assets
	putVault(ctx, vaultID, v)
}

// payOut burns owner's shares, decrements claim supply and pushes assets to
// the receiver. Burn precedes the push, a reentrant receiver observes the
// vault with the claims already gone.
func payOut(ctx storage.Context, vaultID int, owner, receiver interop.Hash160, assets, shares int) {
	v := getVault(ctx, vaultID)
	if v.HeldAssets < assets {
		panic(vaultconst.ErrVaultAssetsExceeded)
	}

	burnClaims(ctx, owner, vaultID, shares)

	v.TotalClaimSupply -= shares
	v.HeldAssets -= assets
	putVault(ctx, vaultID, v)

	transferAssets(v.Asset, runtime.GetExecutingScriptHash(), receiver, assets)
}

// checkClaimAuthority panics unless the operation over owner's claims is
// witnessed by the owner itself or by an operator registered for the owner
// in the Claim contract.
func checkClaimAuthority(ctx storage.Context, owner interop.Hash160) {
	if common.IsOwnerWitness(owner) {
		return
	}
	authorized := contract.Call(claimContract(ctx), "isAuthorizedFor",
		contract.ReadOnly, owner).(bool)
	if !authorized {
		panic(vaultconst.ErrNotAuthorized)
	}
}

func pullAssets(asset interop.Hash160, from interop.Hash160, amount int) {
	transferAssets(asset, from, runtime.GetExecutingScriptHash(), amount)
}

func transferAssets(asset interop.Hash160, from, to interop.Hash160, amount int) {
	ok := contract.Call(asset, "transfer", contract.All, from, to, amount, nil).(bool)
	if !ok {
		panic(vaultconst.ErrTransferFailed)
	}
}

func mintClaims(ctx storage.Context, holder interop.Hash160, vaultID int, amount int) {
	contract.Call(claimContract(ctx), "mint", contract.All, holder, vaultID, amount)
}

func burnClaims(ctx storage.Context, holder interop.Hash160, vaultID int, amount int) {
	contract.Call(claimContract(ctx), "burn", contract.All, holder, vaultID, amount)
}

func claimBalance(ctx storage.Context, holder interop.Hash160, vaultID int) int {
	return contract.Call(claimContract(ctx), "balanceOf",
		contract.ReadOnly, holder, vaultID).(int)
}

func claimContract(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, claimContractKey).(interop.Hash160)
}

func vaultKey(vaultID int) []byte {
	return append([]byte{vaultKeyPrefix}, convert.ToBytes(vaultID)...)
}

func getVault(ctx storage.Context, vaultID int) Vault {
	data := storage.Get(ctx, vaultKey(vaultID))
	if data == nil {
		panic(vaultconst.ErrUnknownVault)
	}
	return std.Deserialize(data.([]byte)).(Vault)
}

func putVault(ctx storage.Context, vaultID int, v Vault) {
	common.SetSerialized(ctx, vaultKey(vaultID), v)
}
