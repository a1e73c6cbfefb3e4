// Package claim contains RPC wrappers for Vault Claim Ledger contract.
package claim

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

// ClaimMintEvent represents "ClaimMint" event emitted by the contract.
type ClaimMintEvent struct {
	Holder util.Uint160
	VaultID *big.Int
	Amount *big.Int
}

// ClaimBurnEvent represents "ClaimBurn" event emitted by the contract.
type ClaimBurnEvent struct {
	Holder util.Uint160
	VaultID *big.Int
	Amount *big.Int
}

// ClaimTransferEvent represents "ClaimTransfer" event emitted by the contract.
type ClaimTransferEvent struct {
	From util.Uint160
	To util.Uint160
	VaultID *big.Int
	Amount *big.Int
}

// OperatorSetEvent represents "OperatorSet" event emitted by the contract.
type OperatorSetEvent struct {
	Owner util.Uint160
	Operator util.Uint160
	Allowed bool
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

// BalanceOf invokes `balanceOf` method of contract.
func (c *ContractReader) BalanceOf(holder util.Uint160, vaultID *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "balanceOf", holder, vaultID))
}

// IsAuthorizedFor invokes `isAuthorizedFor` method of contract.
func (c *ContractReader) IsAuthorizedFor(owner util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isAuthorizedFor", owner))
}

// IsOperatorFor invokes `isOperatorFor` method of contract.
func (c *ContractReader) IsOperatorFor(owner util.Uint160, operator util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isOperatorFor", owner, operator))
}

// Operators invokes `operators` method of contract.
func (c *ContractReader) Operators(owner util.Uint160) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "operators", owner))
}

// OperatorsExpanded is similar to Operators (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) OperatorsExpanded(owner util.Uint160, _numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "operators", _numOfIteratorItems, owner))
}

// TotalSupply invokes `totalSupply` method of contract.
func (c *ContractReader) TotalSupply(vaultID *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalSupply", vaultID))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Burn creates a transaction invoking `burn` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Burn(holder util.Uint160, vaultID *big.Int, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "burn", holder, vaultID, amount)
}

// BurnTransaction creates a transaction invoking `burn` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) BurnTransaction(holder util.Uint160, vaultID *big.Int, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "burn", holder, vaultID, amount)
}

// BurnUnsigned creates a transaction invoking `burn` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) BurnUnsigned(holder util.Uint160, vaultID *big.Int, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "burn", nil, holder, vaultID, amount)
}

// Mint creates a transaction invoking `mint` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Mint(holder util.Uint160, vaultID *big.Int, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "mint", holder, vaultID, amount)
}

// MintTransaction creates a transaction invoking `mint` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) MintTransaction(holder util.Uint160, vaultID *big.Int, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "mint", holder, vaultID, amount)
}

// MintUnsigned creates a transaction invoking `mint` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) MintUnsigned(holder util.Uint160, vaultID *big.Int, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "mint", nil, holder, vaultID, amount)
}

// SetOperator creates a transaction invoking `setOperator` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetOperator(owner util.Uint160, operator util.Uint160, allowed bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setOperator", owner, operator, allowed)
}

// SetOperatorTransaction creates a transaction invoking `setOperator` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetOperatorTransaction(owner util.Uint160, operator util.Uint160, allowed bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setOperator", owner, operator, allowed)
}

// SetOperatorUnsigned creates a transaction invoking `setOperator` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetOperatorUnsigned(owner util.Uint160, operator util.Uint160, allowed bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setOperator", nil, owner, operator, allowed)
}

// Transfer creates a transaction invoking `transfer` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Transfer(from util.Uint160, to util.Uint160, vaultID *big.Int, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "transfer", from, to, vaultID, amount)
}

// TransferTransaction creates a transaction invoking `transfer` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) TransferTransaction(from util.Uint160, to util.Uint160, vaultID *big.Int, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "transfer", from, to, vaultID, amount)
}

// TransferUnsigned creates a transaction invoking `transfer` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) TransferUnsigned(from util.Uint160, to util.Uint160, vaultID *big.Int, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "transfer", nil, from, to, vaultID, amount)
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

// ClaimMintEventsFromApplicationLog retrieves a set of all emitted events
// with "ClaimMint" name from the provided [result.ApplicationLog].
func ClaimMintEventsFromApplicationLog(log *result.ApplicationLog) ([]*ClaimMintEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ClaimMintEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ClaimMint" {
				continue
			}
			event := new(ClaimMintEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ClaimMintEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ClaimMintEvent or
// returns an error if it's not possible to do to so.
func (e *ClaimMintEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Holder, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Holder: %w", err)
	}

	index++
	e.VaultID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field VaultID: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// ClaimBurnEventsFromApplicationLog retrieves a set of all emitted events
// with "ClaimBurn" name from the provided [result.ApplicationLog].
func ClaimBurnEventsFromApplicationLog(log *result.ApplicationLog) ([]*ClaimBurnEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ClaimBurnEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ClaimBurn" {
				continue
			}
			event := new(ClaimBurnEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ClaimBurnEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ClaimBurnEvent or
// returns an error if it's not possible to do to so.
func (e *ClaimBurnEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Holder, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Holder: %w", err)
	}

	index++
	e.VaultID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field VaultID: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// ClaimTransferEventsFromApplicationLog retrieves a set of all emitted events
// with "ClaimTransfer" name from the provided [result.ApplicationLog].
func ClaimTransferEventsFromApplicationLog(log *result.ApplicationLog) ([]*ClaimTransferEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ClaimTransferEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ClaimTransfer" {
				continue
			}
			event := new(ClaimTransferEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ClaimTransferEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ClaimTransferEvent or
// returns an error if it's not possible to do to so.
func (e *ClaimTransferEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.From, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field From: %w", err)
	}

	index++
	e.To, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field To: %w", err)
	}

	index++
	e.VaultID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field VaultID: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// OperatorSetEventsFromApplicationLog retrieves a set of all emitted events
// with "OperatorSet" name from the provided [result.ApplicationLog].
func OperatorSetEventsFromApplicationLog(log *result.ApplicationLog) ([]*OperatorSetEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*OperatorSetEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "OperatorSet" {
				continue
			}
			event := new(OperatorSetEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize OperatorSetEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to OperatorSetEvent or
// returns an error if it's not possible to do to so.
func (e *OperatorSetEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Operator, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Operator: %w", err)
	}

	index++
	e.Allowed, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Allowed: %w", err)
	}

	return nil
}
