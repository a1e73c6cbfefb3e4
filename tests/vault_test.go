package tests

import (
	"encoding/json"
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
	"github.com/vaultledger/vault-contract/common"
	"github.com/vaultledger/vault-contract/contracts/vault/vaultconst"
)

func TestVaultCreate(t *testing.T) {
	s := newVaultSuite(t)

	acc := s.vault.NewAccount(t)
	s.vault.WithSigners(acc).InvokeFail(t, common.ErrAdminWitnessFailed, "create",
		s.gasHash, []byte{}, []byte("test vault"))

	require.EqualValues(t, 0, s.createVault(t, util.Uint160{}))
	require.EqualValues(t, 1, s.createVault(t, util.Uint160{}))

	s.vault.Invoke(t, 2, "vaultCount")
	s.vault.Invoke(t, s.gasHash.BytesBE(), "vaultAsset", 0)
	s.vault.Invoke(t, []byte{}, "vaultStrategy", 0)
	s.vault.Invoke(t, []byte("test vault"), "vaultMetadata", 1)
	s.vault.Invoke(t, 0, "totalClaimSupply", 0)

	res, err := s.vault.TestInvoke(t, "vaults")
	require.NoError(t, err)
	iter := res.Pop().Value().(*storage.Iterator)
	require.Len(t, iteratorToArray(iter), 2)

	res, err = s.vault.TestInvoke(t, "vaultInfo", 1)
	require.NoError(t, err)
	fields := res.Pop().Value().([]stackitem.Item)
	require.Len(t, fields, 5)
	asset, err := fields[0].TryBytes()
	require.NoError(t, err)
	require.Equal(t, s.gasHash.BytesBE(), asset)
	metadata, err := fields[4].TryBytes()
	require.NoError(t, err)
	require.Equal(t, []byte("test vault"), metadata)

	s.vault.InvokeFail(t, vaultconst.ErrUnknownVault, "totalAssets", 5)
	s.vault.InvokeFail(t, vaultconst.ErrUnknownVault, "previewDeposit", 5, int64(100))
	s.vault.InvokeFail(t, vaultconst.ErrUnknownVault, "vaultInfo", 5)
}

func TestVaultDepositBootstrap(t *testing.T) {
	s := newVaultSuite(t)
	s.createVault(t, util.Uint160{})

	acc := s.vault.NewAccount(t)
	cAcc := s.vault.WithSigners(acc)

	// Fresh vault converts 1:1.
	require.EqualValues(t, 100, testInvokeInt(t, s.vault, "previewDeposit", 0, int64(100)))
	require.EqualValues(t, 100, testInvokeInt(t, s.vault, "previewMint", 0, int64(100)))

	cAcc.Invoke(t, 100, "deposit", 0, acc.ScriptHash(), int64(100), acc.ScriptHash())

	s.vault.Invoke(t, 100, "totalAssets", 0)
	s.vault.Invoke(t, 100, "totalClaimSupply", 0)
	s.claim.Invoke(t, 100, "balanceOf", acc.ScriptHash(), 0)
	s.claim.Invoke(t, 100, "totalSupply", 0)

	// Depositor must witness the transaction.
	s.vault.InvokeFail(t, common.ErrOwnerWitnessFailed, "deposit",
		0, acc.ScriptHash(), int64(100), acc.ScriptHash())

	cAcc.InvokeFail(t, vaultconst.ErrZeroShares, "deposit",
		0, acc.ScriptHash(), int64(0), acc.ScriptHash())

	// More than the account owns, the pull fails and nothing is minted.
	cAcc.InvokeFail(t, vaultconst.ErrTransferFailed, "deposit",
		0, acc.ScriptHash(), int64(1_000_000_000_000), acc.ScriptHash())
	s.claim.Invoke(t, 100, "balanceOf", acc.ScriptHash(), 0)
	s.vault.Invoke(t, 100, "totalClaimSupply", 0)
}

func TestVaultMint(t *testing.T) {
	s := newVaultSuite(t)
	s.createVault(t, util.Uint160{})

	acc := s.vault.NewAccount(t)
	cAcc := s.vault.WithSigners(acc)

	cAcc.Invoke(t, 30, "mint", 0, acc.ScriptHash(), int64(30), acc.ScriptHash())
	s.vault.Invoke(t, 30, "totalClaimSupply", 0)
	s.claim.Invoke(t, 30, "balanceOf", acc.ScriptHash(), 0)

	// Zero mint is a successful no-op.
	cAcc.Invoke(t, 0, "mint", 0, acc.ScriptHash(), int64(0), acc.ScriptHash())
	s.vault.Invoke(t, 30, "totalClaimSupply", 0)

	s.vault.Invoke(t, 30, "maxRedeem", 0, acc.ScriptHash())
	s.vault.Invoke(t, 30, "maxWithdraw", 0, acc.ScriptHash())
	s.vault.Invoke(t, int64(vaultconst.MaxAssetAmount-30), "maxDeposit", 0)
	s.vault.Invoke(t, int64(vaultconst.MaxAssetAmount-30), "maxMint", 0)
}

func TestVaultWithdrawRedeem(t *testing.T) {
	s := newVaultSuite(t)
	s.createVault(t, util.Uint160{})

	acc := s.vault.NewAccount(t)
	other := s.vault.NewAccount(t)
	cAcc := s.vault.WithSigners(acc)

	cAcc.Invoke(t, 100, "deposit", 0, acc.ScriptHash(), int64(100), acc.ScriptHash())

	// A stranger can not withdraw owner's claims.
	s.vault.WithSigners(other).InvokeFail(t, vaultconst.ErrNotAuthorized, "withdraw",
		0, int64(10), other.ScriptHash(), acc.ScriptHash())
	s.claim.Invoke(t, 100, "balanceOf", acc.ScriptHash(), 0)
	s.vault.Invoke(t, 100, "totalClaimSupply", 0)

	// A registered operator can.
	s.claim.WithSigners(acc).Invoke(t, nil, "setOperator",
		acc.ScriptHash(), other.ScriptHash(), true)
	s.claim.Invoke(t, true, "isOperatorFor", acc.ScriptHash(), other.ScriptHash())
	s.vault.WithSigners(other).Invoke(t, 10, "withdraw",
		0, int64(10), other.ScriptHash(), acc.ScriptHash())
	s.claim.Invoke(t, 90, "balanceOf", acc.ScriptHash(), 0)

	cAcc.Invoke(t, 40, "redeem", 0, int64(40), acc.ScriptHash(), acc.ScriptHash())
	s.vault.Invoke(t, 50, "totalClaimSupply", 0)
	s.vault.Invoke(t, 50, "totalAssets", 0)

	cAcc.InvokeFail(t, vaultconst.ErrZeroAssets, "redeem",
		0, int64(0), acc.ScriptHash(), acc.ScriptHash())

	// Claims of other holders never cover the difference.
	s.vault.WithSigners(other).Invoke(t, 100, "deposit",
		0, other.ScriptHash(), int64(100), other.ScriptHash())
	cAcc.InvokeFail(t, vaultconst.ErrInsufficientShares, "redeem",
		0, int64(100), acc.ScriptHash(), acc.ScriptHash())

	// Drain the vault completely.
	cAcc.Invoke(t, 50, "redeem", 0, int64(50), acc.ScriptHash(), acc.ScriptHash())
	s.vault.WithSigners(other).Invoke(t, 100, "redeem",
		0, int64(100), other.ScriptHash(), other.ScriptHash())

	s.vault.Invoke(t, 0, "totalClaimSupply", 0)
	s.vault.Invoke(t, 0, "totalAssets", 0)
	s.claim.Invoke(t, 0, "totalSupply", 0)
	s.claim.Invoke(t, 0, "balanceOf", acc.ScriptHash(), 0)
	s.claim.Invoke(t, 0, "balanceOf", other.ScriptHash(), 0)
}

func TestVaultStrategy(t *testing.T) {
	s := newVaultSuite(t)
	strategyHash := s.deployStrategy(t)

	txH := s.vault.Invoke(t, 0, "create", s.gasHash, strategyHash, []byte("test vault"))
	s.e.CheckTxNotificationEvent(t, txH, 0, state.NotificationEvent{
		ScriptHash: s.vault.Hash,
		Name:       "VaultCreated",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.Make(0),
			stackitem.Make(s.gasHash.BytesBE()),
			stackitem.Make(strategyHash.BytesBE()),
		}),
	})

	acc := s.vault.NewAccount(t)
	cAcc := s.vault.WithSigners(acc)

	cAcc.Invoke(t, 100, "deposit", 0, acc.ScriptHash(), int64(100), acc.ScriptHash())
	s.vault.Invoke(t, 100, "totalAssets", 0)

	// Yield accrues outside of the ledger and is picked up by the next
	// valuation.
	s.fundGAS(t, strategyHash, 10)
	s.e.CommitteeInvoker(strategyHash).Invoke(t, nil, "addYield", 0, int64(10))
	s.vault.Invoke(t, 110, "totalAssets", 0)

	require.EqualValues(t, 45, testInvokeInt(t, s.vault, "previewDeposit", 0, int64(50)))
	require.EqualValues(t, 11, testInvokeInt(t, s.vault, "previewMint", 0, int64(10)))
	require.EqualValues(t, 10, testInvokeInt(t, s.vault, "previewWithdraw", 0, int64(11)))

	// Too small a deposit converts to nothing at this rate.
	cAcc.InvokeFail(t, vaultconst.ErrZeroShares, "deposit",
		0, acc.ScriptHash(), int64(1), acc.ScriptHash())

	other := s.vault.NewAccount(t)
	s.vault.WithSigners(other).Invoke(t, 45, "deposit",
		0, other.ScriptHash(), int64(50), other.ScriptHash())
	s.vault.Invoke(t, 160, "totalAssets", 0)
	s.vault.Invoke(t, 145, "totalClaimSupply", 0)

	// Deposit-then-redeem never creates value.
	for _, assets := range []int64{1, 3, 7, 23, 50} {
		shares := testInvokeInt(t, s.vault, "convertToShares", 0, assets)
		back := testInvokeInt(t, s.vault, "convertToAssets", 0, shares)
		require.LessOrEqual(t, back, assets)
	}

	// Withdrawal pulls assets back from the strategy before paying out.
	cAcc.Invoke(t, 20, "withdraw", 0, int64(22), acc.ScriptHash(), acc.ScriptHash())
	s.claim.Invoke(t, 80, "balanceOf", acc.ScriptHash(), 0)
	s.vault.Invoke(t, 138, "totalAssets", 0)

	// A failed strategy pull aborts the whole withdrawal.
	s.e.CommitteeInvoker(strategyHash).Invoke(t, nil, "setPullFailure", true)
	cAcc.InvokeFail(t, "strategy pull failure", "withdraw",
		0, int64(10), acc.ScriptHash(), acc.ScriptHash())
	s.claim.Invoke(t, 80, "balanceOf", acc.ScriptHash(), 0)
	s.vault.Invoke(t, 125, "totalClaimSupply", 0)
	s.vault.Invoke(t, 138, "totalAssets", 0)

	// 10 shares are worth 11 assets at the accrued rate.
	s.e.CommitteeInvoker(strategyHash).Invoke(t, nil, "setPullFailure", false)
	cAcc.Invoke(t, 11, "redeem", 0, int64(10), acc.ScriptHash(), acc.ScriptHash())
}

func TestVaultAdmin(t *testing.T) {
	s := newVaultSuite(t)

	s.vault.Invoke(t, stackitem.NewBuffer(s.e.CommitteeHash.BytesBE()), "admin")

	acc := s.vault.NewAccount(t)
	s.vault.WithSigners(acc).InvokeFail(t, common.ErrAdminWitnessFailed, "setAdmin",
		acc.ScriptHash())

	s.vault.Invoke(t, nil, "setAdmin", acc.ScriptHash())
	s.vault.Invoke(t, stackitem.NewBuffer(acc.ScriptHash().BytesBE()), "admin")

	// Vault creation follows the admin.
	s.vault.InvokeFail(t, common.ErrAdminWitnessFailed, "create",
		s.gasHash, []byte{}, []byte{})
	s.vault.WithSigners(acc).Invoke(t, 0, "create", s.gasHash, []byte{}, []byte{})
}

func TestVaultMintZeroValuation(t *testing.T) {
	s := newVaultSuite(t)
	strategyHash := s.deployStrategy(t)
	s.createVault(t, strategyHash)

	acc := s.vault.NewAccount(t)
	cAcc := s.vault.WithSigners(acc)
	cAcc.Invoke(t, 100, "deposit", 0, acc.ScriptHash(), int64(100), acc.ScriptHash())

	// The strategy lost the whole position, shares can not be priced
	// anymore and both deposit directions must refuse to mint.
	s.e.CommitteeInvoker(strategyHash).Invoke(t, nil, "addYield", 0, int64(-100))
	cAcc.InvokeFail(t, "zero managed assets", "mint",
		0, acc.ScriptHash(), int64(10), acc.ScriptHash())
	cAcc.InvokeFail(t, "zero managed assets", "deposit",
		0, acc.ScriptHash(), int64(10), acc.ScriptHash())
	s.vault.Invoke(t, 100, "totalClaimSupply", 0)
}

func TestVaultUpdate(t *testing.T) {
	s := newVaultSuite(t)

	ctr := neotest.CompileFile(t, s.e.CommitteeHash, vaultPath, path.Join(vaultPath, "config.yml"))
	bNEF, err := ctr.NEF.Bytes()
	require.NoError(t, err)
	jManifest, err := json.Marshal(ctr.Manifest)
	require.NoError(t, err)

	acc := s.vault.NewAccount(t)
	s.vault.WithSigners(acc).InvokeFail(t, "only committee can update contract", "update",
		bNEF, jManifest, nil)

	// Same code and version, the migration guard rejects the update.
	s.vault.InvokeFail(t, common.ErrAlreadyUpdated, "update", bNEF, jManifest, nil)
}

func TestVaultVersion(t *testing.T) {
	s := newVaultSuite(t)
	s.vault.Invoke(t, common.Version, "version")
	s.claim.Invoke(t, common.Version, "version")
}
