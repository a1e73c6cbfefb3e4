package teststrategy

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	vaultContractKey = 'v'
	assetContractKey = 'a'
	heldPrefix       = 'h'
	failPullKey      = 'f'
)

func _deploy(data any, isUpdate bool) {
	if isUpdate {
		return
	}

	args := data.([]any)
	ctx := storage.GetContext()
	storage.Put(ctx, vaultContractKey, args[0].(interop.Hash160))
	storage.Put(ctx, assetContractKey, args[1].(interop.Hash160))
}

func OnNEP17Payment(from interop.Hash160, amount int, data any) {
}

// TotalAssetsManaged returns the valuation of the vault's position held by
// the strategy.
func TotalAssetsManaged(vaultID int) int {
	return held(storage.GetReadOnlyContext(), vaultID)
}

// AfterDeposit records assets the vault has routed to the strategy.
func AfterDeposit(vaultID int, assets, shares int) {
	ctx := storage.GetContext()
	checkVaultCaller(ctx)
	storage.Put(ctx, heldKey(vaultID), held(ctx, vaultID)+assets)
}

// BeforeWithdraw returns the requested assets back to the vault contract
// account.
func BeforeWithdraw(vaultID int, assets, shares int) {
	ctx := storage.GetContext()
	checkVaultCaller(ctx)

	if storage.Get(ctx, failPullKey) != nil {
		panic("strategy pull failure")
	}

	balance := held(ctx, vaultID)
	if balance < assets {
		panic("position is too small")
	}

	asset := storage.Get(ctx, assetContractKey).(interop.Hash160)
	vault := storage.Get(ctx, vaultContractKey).(interop.Hash160)
	ok := contract.Call(asset, "transfer", contract.All,
		runtime.GetExecutingScriptHash(), vault, assets, nil).(bool)
	if !ok {
		panic("strategy asset transfer failed")
	}

	storage.Put(ctx, heldKey(vaultID), balance-assets)
}

// AddYield increases the valuation of the vault's position. Matching asset
// tokens must be transferred to the strategy account separately.
func AddYield(vaultID int, amount int) {
	ctx := storage.GetContext()
	storage.Put(ctx, heldKey(vaultID), held(ctx, vaultID)+amount)
}

// SetPullFailure makes every subsequent BeforeWithdraw panic.
func SetPullFailure(fail bool) {
	ctx := storage.GetContext()
	if fail {
		storage.Put(ctx, failPullKey, 1)
	} else {
		storage.Delete(ctx, failPullKey)
	}
}

func held(ctx storage.Context, vaultID int) int {
	data := storage.Get(ctx, heldKey(vaultID))
	if data != nil {
		return data.(int)
	}
	return 0
}

func heldKey(vaultID int) []byte {
	return append([]byte{heldPrefix}, convert.ToBytes(vaultID)...)
}

func checkVaultCaller(ctx storage.Context) {
	vault := storage.Get(ctx, vaultContractKey).(interop.Hash160)
	if !runtime.GetCallingScriptHash().Equals(vault) {
		panic("hooks can be invoked by the vault contract only")
	}
}
