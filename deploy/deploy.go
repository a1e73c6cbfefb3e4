// Package deploy provides vault ledger deployment over Neo RPC.
package deploy

import (
	"context"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services of the Neo blockchain network required for the
// vault ledger deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to the
	// blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// ContractPrm groups deployment parameters of a single contract.
type ContractPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// Prm groups all parameters of the vault ledger deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	LocalAccount *wallet.Account

	VaultContract ContractPrm
	ClaimContract ContractPrm

	// Account authorized to register vaults. Zero value defaults to the
	// committee multi-signature address on the vault contract side.
	Admin util.Uint160
}

// Contracts groups on-chain addresses of the deployed vault ledger.
type Contracts struct {
	Vault util.Uint160
	Claim util.Uint160
}

// Deploy deploys the vault and claim contracts to the Neo network represented
// by given Prm.Blockchain and wires them to each other. Since both contracts
// reference the counterpart at deployment time, addresses are precomputed from
// the deployer account and contract artifacts, and each contract receives the
// counterpart's address via deployment data.
//
// Deploy is idempotent: contracts already present on the chain are left
// untouched.
func Deploy(ctx context.Context, prm Prm) (Contracts, error) {
	var res Contracts

	localActor, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return res, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	deployer := prm.LocalAccount.ScriptHash()
	res.Vault = state.CreateContractHash(deployer, prm.VaultContract.NEF.Checksum, prm.VaultContract.Manifest.Name)
	res.Claim = state.CreateContractHash(deployer, prm.ClaimContract.NEF.Checksum, prm.ClaimContract.Manifest.Name)

	mgmt := management.New(localActor)

	// The claim contract goes first: the vault contract verifies nothing about
	// its counterpart at deployment, while minting is gated by the caller hash
	// from the very first transaction.
	err = deployContract(ctx, deployContractPrm{
		logger:     prm.Logger,
		blockchain: prm.Blockchain,
		actor:      localActor,
		management: mgmt,
		name:       "claim",
		address:    res.Claim,
		localNEF:   prm.ClaimContract.NEF,
		manifest:   prm.ClaimContract.Manifest,
		data:       []any{res.Vault},
	})
	if err != nil {
		return res, fmt.Errorf("deploy claim contract: %w", err)
	}

	vaultData := []any{res.Claim}
	if !prm.Admin.Equals(util.Uint160{}) {
		vaultData = append(vaultData, prm.Admin)
	}

	err = deployContract(ctx, deployContractPrm{
		logger:     prm.Logger,
		blockchain: prm.Blockchain,
		actor:      localActor,
		management: mgmt,
		name:       "vault",
		address:    res.Vault,
		localNEF:   prm.VaultContract.NEF,
		manifest:   prm.VaultContract.Manifest,
		data:       vaultData,
	})
	if err != nil {
		return res, fmt.Errorf("deploy vault contract: %w", err)
	}

	return res, nil
}

type deployContractPrm struct {
	logger     *zap.Logger
	blockchain Blockchain
	actor      *actor.Actor
	management *management.Contract
	name       string
	address    util.Uint160
	localNEF   nef.File
	manifest   manifest.Manifest
	data       []any
}

func deployContract(ctx context.Context, prm deployContractPrm) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stateOnChain, err := prm.blockchain.GetContractStateByHash(prm.address)
	if err == nil {
		prm.logger.Info("contract is already on the chain, skip deployment",
			zap.String("name", prm.name), zap.Stringer("address", stateOnChain.Hash))
		return nil
	} else if !isErrContractNotFound(err) {
		return fmt.Errorf("read on-chain state of the contract by address: %w", err)
	}

	prm.logger.Info("contract is missing on the chain, deploying...", zap.String("name", prm.name))

	txID, vub, err := prm.management.Deploy(&prm.localNEF, &prm.manifest, prm.data)
	if err != nil {
		return fmt.Errorf("send transaction deploying the contract: %w", err)
	}

	prm.logger.Info("transaction deploying the contract has been successfully sent, waiting...",
		zap.String("name", prm.name), zap.Stringer("tx", txID), zap.Uint32("vub", vub))

	appLog, err := prm.actor.Wait(txID, vub, nil)
	if err != nil {
		return fmt.Errorf("wait for deploy transaction to be accepted: %w", err)
	}
	if appLog.VMState != vmstate.Halt {
		return fmt.Errorf("deploy transaction faulted: %s", appLog.FaultException)
	}

	prm.logger.Info("contract has been successfully deployed",
		zap.String("name", prm.name), zap.Stringer("address", prm.address))

	return nil
}

// isErrContractNotFound checks if the error is related to missing contract.
func isErrContractNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Unknown contract")
}
