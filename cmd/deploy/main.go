// Command deploy deploys the vault ledger contracts to a Neo network.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/vaultledger/vault-contract/contracts"
	"github.com/vaultledger/vault-contract/deploy"
	"go.uber.org/zap"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	walletPath := flag.String("wallet", "", "Path to the NEP-6 wallet of the deployer account")
	walletPassword := flag.String("password", "", "Password of the deployer account")
	adminAddress := flag.String("admin", "", "Optional LE-encoded address authorized to register vaults")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *walletPath == "":
		log.Fatal("missing deployer wallet")
	}

	err := _deploy(*neoRPCEndpoint, *walletPath, *walletPassword, *adminAddress)
	if err != nil {
		log.Fatal(err)
	}
}

func _deploy(neoRPCEndpoint, walletPath, walletPassword, adminAddress string) error {
	var admin util.Uint160

	if adminAddress != "" {
		var err error
		admin, err = util.Uint160DecodeStringLE(adminAddress)
		if err != nil {
			return fmt.Errorf("decode admin address: %w", err)
		}
	}

	w, err := wallet.NewWalletFromFile(walletPath)
	if err != nil {
		return fmt.Errorf("open deployer wallet: %w", err)
	}

	acc := w.GetAccount(w.GetChangeAddress())
	if acc == nil {
		return fmt.Errorf("deployer wallet '%s' has no usable account", walletPath)
	}

	err = acc.Decrypt(walletPassword, w.Scrypt)
	if err != nil {
		return fmt.Errorf("unlock deployer account: %w", err)
	}

	vaultContract, err := contracts.GetVault()
	if err != nil {
		return fmt.Errorf("read embedded vault contract: %w", err)
	}

	claimContract, err := contracts.GetClaim()
	if err != nil {
		return fmt.Errorf("read embedded claim contract: %w", err)
	}

	c, err := rpcclient.New(context.Background(), neoRPCEndpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("RPC client dial: %w", err)
	}

	defer c.Close()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	defer func() { _ = logger.Sync() }()

	res, err := deploy.Deploy(context.Background(), deploy.Prm{
		Logger:       logger,
		Blockchain:   c,
		LocalAccount: acc,
		VaultContract: deploy.ContractPrm{
			NEF:      vaultContract.NEF,
			Manifest: vaultContract.Manifest,
		},
		ClaimContract: deploy.ContractPrm{
			NEF:      claimContract.NEF,
			Manifest: claimContract.Manifest,
		},
		Admin: admin,
	})
	if err != nil {
		return err
	}

	logger.Info("vault ledger contracts are on the chain",
		zap.Stringer("vault", res.Vault), zap.Stringer("claim", res.Claim))

	return nil
}
