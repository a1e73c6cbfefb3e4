// Package vault contains RPC wrappers for Vault Ledger contract.
package vault

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
)

// VaultVault is a contract-specific vault.Vault type used by its methods.
type VaultVault struct {
	Asset util.Uint160
	TotalClaimSupply *big.Int
	HeldAssets *big.Int
	Strategy util.Uint160
	Metadata []byte
}

// VaultCreatedEvent represents "VaultCreated" event emitted by the contract.
type VaultCreatedEvent struct {
	VaultID *big.Int
	Asset util.Uint160
	Strategy []byte
}

// DepositEvent represents "Deposit" event emitted by the contract.
type DepositEvent struct {
	VaultID *big.Int
	Depositor util.Uint160
	Receiver util.Uint160
	Assets *big.Int
	Shares *big.Int
}

// WithdrawEvent represents "Withdraw" event emitted by the contract.
type WithdrawEvent struct {
	VaultID *big.Int
	Owner util.Uint160
	Receiver util.Uint160
	Assets *big.Int
	Shares *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Admin invokes `admin` method of contract.
func (c *ContractReader) Admin() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "admin"))
}

// ConvertToAssets invokes `convertToAssets` method of contract.
func (c *ContractReader) ConvertToAssets(vaultID *big.Int, shareAmount *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "convertToAssets", vaultID, shareAmount))
}

// ConvertToShares invokes `convertToShares` method of contract.
func (c *ContractReader) ConvertToShares(vaultID *big.Int, assetAmount *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "convertToShares", vaultID, assetAmount))
}

// MaxDeposit invokes `maxDeposit` method of contract.
func (c *ContractReader) MaxDeposit(vaultID *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "maxDeposit", vaultID))
}

// MaxMint invokes `maxMint` method of contract.
func (c *ContractReader) MaxMint(vaultID *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "maxMint", vaultID))
}

// MaxRedeem invokes `maxRedeem` method of contract.
func (c *ContractReader) MaxRedeem(vaultID *big.Int, owner util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "maxRedeem", vaultID, owner))
}

// MaxWithdraw invokes `maxWithdraw` method of contract.
func (c *ContractReader) MaxWithdraw(vaultID *big.Int, owner util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "maxWithdraw", vaultID, owner))
}

// PreviewDeposit invokes `previewDeposit` method of contract.
func (c *ContractReader) PreviewDeposit(vaultID *big.Int, assetAmount *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "previewDeposit", vaultID, assetAmount))
}

// PreviewMint invokes `previewMint` method of contract.
func (c *ContractReader) PreviewMint(vaultID *big.Int, shareAmount *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "previewMint", vaultID, shareAmount))
}

// PreviewRedeem invokes `previewRedeem` method of contract.
func (c *ContractReader) PreviewRedeem(vaultID *big.Int, shareAmount *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "previewRedeem", vaultID, shareAmount))
}

// PreviewWithdraw invokes `previewWithdraw` method of contract.
func (c *ContractReader) PreviewWithdraw(vaultID *big.Int, assetAmount *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "previewWithdraw", vaultID, assetAmount))
}

// TotalAssets invokes `totalAssets` method of contract.
func (c *ContractReader) TotalAssets(vaultID *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalAssets", vaultID))
}

// TotalClaimSupply invokes `totalClaimSupply` method of contract.
func (c *ContractReader) TotalClaimSupply(vaultID *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalClaimSupply", vaultID))
}

// VaultAsset invokes `vaultAsset` method of contract.
func (c *ContractReader) VaultAsset(vaultID *big.Int) (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "vaultAsset", vaultID))
}

// VaultCount invokes `vaultCount` method of contract.
func (c *ContractReader) VaultCount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "vaultCount"))
}

// VaultInfo invokes `vaultInfo` method of contract.
func (c *ContractReader) VaultInfo(vaultID *big.Int) (*VaultVault, error) {
	return itemToVaultVault(unwrap.Item(c.invoker.Call(c.hash, "vaultInfo", vaultID)))
}

// VaultMetadata invokes `vaultMetadata` method of contract.
func (c *ContractReader) VaultMetadata(vaultID *big.Int) ([]byte, error) {
	return unwrap.Bytes(c.invoker.Call(c.hash, "vaultMetadata", vaultID))
}

// VaultStrategy invokes `vaultStrategy` method of contract.
func (c *ContractReader) VaultStrategy(vaultID *big.Int) ([]byte, error) {
	return unwrap.Bytes(c.invoker.Call(c.hash, "vaultStrategy", vaultID))
}

// Vaults invokes `vaults` method of contract.
func (c *ContractReader) Vaults() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "vaults"))
}

// VaultsExpanded is similar to Vaults (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) VaultsExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "vaults", _numOfIteratorItems))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Create creates a transaction invoking `create` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Create(asset util.Uint160, strategy util.Uint160, metadata []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "create", asset, strategy, metadata)
}

// CreateTransaction creates a transaction invoking `create` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateTransaction(asset util.Uint160, strategy util.Uint160, metadata []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "create", asset, strategy, metadata)
}

// CreateUnsigned creates a transaction invoking `create` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateUnsigned(asset util.Uint160, strategy util.Uint160, metadata []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "create", nil, asset, strategy, metadata)
}

// Deposit creates a transaction invoking `deposit` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Deposit(vaultID *big.Int, depositor util.Uint160, assetAmount *big.Int, receiver util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "deposit", vaultID, depositor, assetAmount, receiver)
}

// DepositTransaction creates a transaction invoking `deposit` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) DepositTransaction(vaultID *big.Int, depositor util.Uint160, assetAmount *big.Int, receiver util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "deposit", vaultID, depositor, assetAmount, receiver)
}

// DepositUnsigned creates a transaction invoking `deposit` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) DepositUnsigned(vaultID *big.Int, depositor util.Uint160, assetAmount *big.Int, receiver util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "deposit", nil, vaultID, depositor, assetAmount, receiver)
}

// Mint creates a transaction invoking `mint` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Mint(vaultID *big.Int, depositor util.Uint160, shareAmount *big.Int, receiver util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "mint", vaultID, depositor, shareAmount, receiver)
}

// MintTransaction creates a transaction invoking `mint` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) MintTransaction(vaultID *big.Int, depositor util.Uint160, shareAmount *big.Int, receiver util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "mint", vaultID, depositor, shareAmount, receiver)
}

// MintUnsigned creates a transaction invoking `mint` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) MintUnsigned(vaultID *big.Int, depositor util.Uint160, shareAmount *big.Int, receiver util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "mint", nil, vaultID, depositor, shareAmount, receiver)
}

// OnNEP17Payment creates a transaction invoking `onNEP17Payment` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) OnNEP17Payment(from util.Uint160, amount *big.Int, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "onNEP17Payment", from, amount, data)
}

// OnNEP17PaymentTransaction creates a transaction invoking `onNEP17Payment` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) OnNEP17PaymentTransaction(from util.Uint160, amount *big.Int, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "onNEP17Payment", from, amount, data)
}

// OnNEP17PaymentUnsigned creates a transaction invoking `onNEP17Payment` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) OnNEP17PaymentUnsigned(from util.Uint160, amount *big.Int, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "onNEP17Payment", nil, from, amount, data)
}

// Redeem creates a transaction invoking `redeem` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Redeem(vaultID *big.Int, shareAmount *big.Int, receiver util.Uint160, owner util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "redeem", vaultID, shareAmount, receiver, owner)
}

// RedeemTransaction creates a transaction invoking `redeem` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RedeemTransaction(vaultID *big.Int, shareAmount *big.Int, receiver util.Uint160, owner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "redeem", vaultID, shareAmount, receiver, owner)
}

// RedeemUnsigned creates a transaction invoking `redeem` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RedeemUnsigned(vaultID *big.Int, shareAmount *big.Int, receiver util.Uint160, owner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "redeem", nil, vaultID, shareAmount, receiver, owner)
}

// SetAdmin creates a transaction invoking `setAdmin` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetAdmin(addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setAdmin", addr)
}

// SetAdminTransaction creates a transaction invoking `setAdmin` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetAdminTransaction(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setAdmin", addr)
}

// SetAdminUnsigned creates a transaction invoking `setAdmin` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetAdminUnsigned(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setAdmin", nil, addr)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// Withdraw creates a transaction invoking `withdraw` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Withdraw(vaultID *big.Int, assetAmount *big.Int, receiver util.Uint160, owner util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdraw", vaultID, assetAmount, receiver, owner)
}

// WithdrawTransaction creates a transaction invoking `withdraw` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) WithdrawTransaction(vaultID *big.Int, assetAmount *big.Int, receiver util.Uint160, owner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdraw", vaultID, assetAmount, receiver, owner)
}

// WithdrawUnsigned creates a transaction invoking `withdraw` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) WithdrawUnsigned(vaultID *big.Int, assetAmount *big.Int, receiver util.Uint160, owner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdraw", nil, vaultID, assetAmount, receiver, owner)
}

// itemToVaultVault converts stack item into *VaultVault.
func itemToVaultVault(item stackitem.Item, err error) (*VaultVault, error) {
	if err != nil {
		return nil, err
	}
	var res = new(VaultVault)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of VaultVault from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *VaultVault) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Asset, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Asset: %w", err)
	}

	index++
	res.TotalClaimSupply, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalClaimSupply: %w", err)
	}

	index++
	res.HeldAssets, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field HeldAssets: %w", err)
	}

	index++
	res.Strategy, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Strategy: %w", err)
	}

	index++
	res.Metadata, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Metadata: %w", err)
	}

	return nil
}

// VaultCreatedEventsFromApplicationLog retrieves a set of all emitted events
// with "VaultCreated" name from the provided [result.ApplicationLog].
func VaultCreatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*VaultCreatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*VaultCreatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "VaultCreated" {
				continue
			}
			event := new(VaultCreatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize VaultCreatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to VaultCreatedEvent or
// returns an error if it's not possible to do to so.
func (e *VaultCreatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.VaultID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field VaultID: %w", err)
	}

	index++
	e.Asset, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Asset: %w", err)
	}

	index++
	e.Strategy, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Strategy: %w", err)
	}

	return nil
}

// DepositEventsFromApplicationLog retrieves a set of all emitted events
// with "Deposit" name from the provided [result.ApplicationLog].
func DepositEventsFromApplicationLog(log *result.ApplicationLog) ([]*DepositEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*DepositEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Deposit" {
				continue
			}
			event := new(DepositEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize DepositEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to DepositEvent or
// returns an error if it's not possible to do to so.
func (e *DepositEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.VaultID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field VaultID: %w", err)
	}

	index++
	e.Depositor, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Depositor: %w", err)
	}

	index++
	e.Receiver, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Receiver: %w", err)
	}

	index++
	e.Assets, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Assets: %w", err)
	}

	index++
	e.Shares, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Shares: %w", err)
	}

	return nil
}

// WithdrawEventsFromApplicationLog retrieves a set of all emitted events
// with "Withdraw" name from the provided [result.ApplicationLog].
func WithdrawEventsFromApplicationLog(log *result.ApplicationLog) ([]*WithdrawEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*WithdrawEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Withdraw" {
				continue
			}
			event := new(WithdrawEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize WithdrawEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to WithdrawEvent or
// returns an error if it's not possible to do to so.
func (e *WithdrawEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.VaultID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field VaultID: %w", err)
	}

	index++
	e.Owner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	e.Receiver, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Receiver: %w", err)
	}

	index++
	e.Assets, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Assets: %w", err)
	}

	index++
	e.Shares, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Shares: %w", err)
	}

	return nil
}
