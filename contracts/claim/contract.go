package claim

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/vaultledger/vault-contract/common"
	"github.com/vaultledger/vault-contract/contracts/vault/vaultconst"
)

const (
	balancePrefix  = 'b'
	operatorPrefix = 'o'
	supplyPrefix   = 's'

	vaultContractKey = 'v'
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

	vaultAddr := args[0].(interop.Hash160)
	if len(vaultAddr) != interop.Hash160Len {
		panic("invalid vault contract address")
	}
	storage.Put(ctx, vaultContractKey, vaultAddr)

	runtime.Log("claim contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("claim contract updated")
}

// Mint credits the holder with claim shares of the given vault class. It can
// be invoked only by the Vault contract which is the sole issuer of claims.
//
// It produces ClaimMint notification.
func Mint(holder interop.Hash160, vaultID int, amount int) {
	if amount < 0 {
		panic("negative amount")
	}
	if len(holder) != interop.Hash160Len {
		panic("invalid holder")
	}

	ctx := storage.GetContext()
	checkVaultCaller(ctx)

	storage.Put(ctx, balanceKey(holder, vaultID), getBalance(ctx, holder, vaultID)+amount)
	storage.Put(ctx, supplyKey(vaultID), getSupply(ctx, vaultID)+amount)

	runtime.Notify("ClaimMint", holder, vaultID, amount)
}

// Burn removes claim shares of the given vault class from the holder. It can
// be invoked only by the Vault contract.
//
// It produces ClaimBurn notification.
func Burn(holder interop.Hash160, vaultID int, amount int) {
	if amount < 0 {
		panic("negative amount")
	}

	ctx := storage.GetContext()
	checkVaultCaller(ctx)

	balance := getBalance(ctx, holder, vaultID)
	if balance < amount {
		panic(vaultconst.ErrInsufficientShares)
	}

	if balance == amount {
		storage.Delete(ctx, balanceKey(holder, vaultID))
	} else {
		storage.Put(ctx, balanceKey(holder, vaultID), balance-amount)
	}

	supply := getSupply(ctx, vaultID)
	if supply == amount {
		storage.Delete(ctx, supplyKey(vaultID))
	} else {
		storage.Put(ctx, supplyKey(vaultID), supply-amount)
	}

	runtime.Notify("ClaimBurn", holder, vaultID, amount)
}

// Transfer moves claim shares of the given vault class between holders. It
// can be invoked by the holder or by one of the holder's operators. Returns
// false when the sender balance is too low or the authorization is missing.
//
// It produces ClaimTransfer notification.
func Transfer(from, to interop.Hash160, vaultID int, amount int) bool {
	if amount < 0 {
		panic("negative amount")
	}
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		runtime.Log("bad script hashes")
		return false
	}

	ctx := storage.GetContext()
	if !common.IsOwnerWitness(from) && !isAuthorizedFor(ctx, from) {
		runtime.Log("transfer is not authorized")
		return false
	}

	balance := getBalance(ctx, from, vaultID)
	if balance < amount {
		runtime.Log("not enough claims")
		return false
	}

	if balance == amount {
		storage.Delete(ctx, balanceKey(from, vaultID))
	} else {
		storage.Put(ctx, balanceKey(from, vaultID), balance-amount)
	}
	storage.Put(ctx, balanceKey(to, vaultID), getBalance(ctx, to, vaultID)+amount)

	runtime.Notify("ClaimTransfer", from, to, vaultID, amount)
	return true
}

// BalanceOf returns the holder's claim balance of the given vault class.
func BalanceOf(holder interop.Hash160, vaultID int) int {
	ctx := storage.GetReadOnlyContext()
	return getBalance(ctx, holder, vaultID)
}

// TotalSupply returns the total amount of claim shares of the given vault
// class. It matches the supply the Vault contract keeps per vault record.
func TotalSupply(vaultID int) int {
	ctx := storage.GetReadOnlyContext()
	return getSupply(ctx, vaultID)
}

// SetOperator registers or removes an operator for all claim classes of the
// owner. Operators can transfer, withdraw and redeem owner's claims. The
// method can be invoked only by the owner.
//
// It produces OperatorSet notification.
func SetOperator(owner, operator interop.Hash160, allowed bool) {
	if len(operator) != interop.Hash160Len {
		panic("invalid operator")
	}
	common.CheckOwnerWitness(owner)

	ctx := storage.GetContext()
	if allowed {
		storage.Put(ctx, operatorKey(owner, operator), 1)
	} else {
		storage.Delete(ctx, operatorKey(owner, operator))
	}

	runtime.Notify("OperatorSet", owner, operator, allowed)
}

// IsOperatorFor returns true if the operator is registered for the owner.
func IsOperatorFor(owner, operator interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, operatorKey(owner, operator)) != nil
}

// IsAuthorizedFor returns true if the current transaction is witnessed by
// any of the operators registered for the owner.
func IsAuthorizedFor(owner interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return isAuthorizedFor(ctx, owner)
}

// Operators returns an iterator over the operators registered for the owner.
func Operators(owner interop.Hash160) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, append([]byte{operatorPrefix}, owner...),
		storage.KeysOnly|storage.RemovePrefix)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func isAuthorizedFor(ctx storage.Context, owner interop.Hash160) bool {
	it := storage.Find(ctx, append([]byte{operatorPrefix}, owner...),
		storage.KeysOnly|storage.RemovePrefix)
	for iterator.Next(it) {
		operator := iterator.Value(it).([]byte)
		if len(operator) != interop.Hash160Len {
			continue
		}
		if runtime.CheckWitness(operator) {
			return true
		}
	}

	return false
}

// checkVaultCaller restricts claim issuance to the Vault contract.
func checkVaultCaller(ctx storage.Context) {
	vaultAddr := storage.Get(ctx, vaultContractKey).(interop.Hash160)
	if !runtime.GetCallingScriptHash().Equals(vaultAddr) {
		panic("claims can be issued by the vault contract only")
	}
}

func getBalance(ctx storage.Context, holder interop.Hash160, vaultID int) int {
	return common.GetIntOrZero(ctx, balanceKey(holder, vaultID))
}

func getSupply(ctx storage.Context, vaultID int) int {
	return common.GetIntOrZero(ctx, supplyKey(vaultID))
}

func balanceKey(holder interop.Hash160, vaultID int) []byte {
	return append(append([]byte{balancePrefix}, holder...), classSuffix(vaultID)...)
}

func supplyKey(vaultID int) []byte {
	return append([]byte{supplyPrefix}, classSuffix(vaultID)...)
}

func operatorKey(owner, operator interop.Hash160) []byte {
	return append(append([]byte{operatorPrefix}, owner...), operator...)
}

func classSuffix(vaultID int) []byte {
	if vaultID < 0 {
		panic("negative vault id")
	}
	return convert.ToBytes(vaultID)
}
