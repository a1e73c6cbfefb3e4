package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
	"github.com/vaultledger/vault-contract/common"
)

func TestClaimIssueGate(t *testing.T) {
	s := newVaultSuite(t)

	acc := s.claim.NewAccount(t)
	s.claim.InvokeFail(t, "vault contract only", "mint", acc.ScriptHash(), 0, int64(10))
	s.claim.InvokeFail(t, "vault contract only", "burn", acc.ScriptHash(), 0, int64(10))
}

func TestClaimTransfer(t *testing.T) {
	s := newVaultSuite(t)
	s.createVault(t, util.Uint160{})

	acc := s.claim.NewAccount(t)
	other := s.claim.NewAccount(t)
	s.vault.WithSigners(acc).Invoke(t, 100, "deposit",
		0, acc.ScriptHash(), int64(100), acc.ScriptHash())

	// Holder moves claims, supply stays with the vault record.
	s.claim.WithSigners(acc).Invoke(t, true, "transfer",
		acc.ScriptHash(), other.ScriptHash(), 0, int64(40))
	s.claim.Invoke(t, 60, "balanceOf", acc.ScriptHash(), 0)
	s.claim.Invoke(t, 40, "balanceOf", other.ScriptHash(), 0)
	s.claim.Invoke(t, 100, "totalSupply", 0)
	s.vault.Invoke(t, 100, "totalClaimSupply", 0)

	// Unauthorized and over-balance transfers are refused.
	s.claim.WithSigners(other).Invoke(t, false, "transfer",
		acc.ScriptHash(), other.ScriptHash(), 0, int64(10))
	s.claim.WithSigners(acc).Invoke(t, false, "transfer",
		acc.ScriptHash(), other.ScriptHash(), 0, int64(100))

	// The new holder redeems the received claims.
	s.vault.WithSigners(other).Invoke(t, 40, "redeem",
		0, int64(40), other.ScriptHash(), other.ScriptHash())
	s.claim.Invoke(t, 0, "balanceOf", other.ScriptHash(), 0)
	s.vault.Invoke(t, 60, "totalClaimSupply", 0)
}

func TestClaimOperators(t *testing.T) {
	s := newVaultSuite(t)

	acc := s.claim.NewAccount(t)
	op1 := s.claim.NewAccount(t)
	op2 := s.claim.NewAccount(t)

	s.claim.WithSigners(op1).InvokeFail(t, common.ErrOwnerWitnessFailed, "setOperator",
		acc.ScriptHash(), op1.ScriptHash(), true)

	cAcc := s.claim.WithSigners(acc)
	cAcc.Invoke(t, nil, "setOperator", acc.ScriptHash(), op1.ScriptHash(), true)
	cAcc.Invoke(t, nil, "setOperator", acc.ScriptHash(), op2.ScriptHash(), true)

	s.claim.Invoke(t, true, "isOperatorFor", acc.ScriptHash(), op1.ScriptHash())
	s.claim.Invoke(t, false, "isOperatorFor", op1.ScriptHash(), acc.ScriptHash())

	res, err := s.claim.TestInvoke(t, "operators", acc.ScriptHash())
	require.NoError(t, err)
	iter := res.Pop().Value().(*storage.Iterator)
	require.Len(t, iteratorToArray(iter), 2)

	cAcc.Invoke(t, nil, "setOperator", acc.ScriptHash(), op1.ScriptHash(), false)
	s.claim.Invoke(t, false, "isOperatorFor", acc.ScriptHash(), op1.ScriptHash())

	res, err = s.claim.TestInvoke(t, "operators", acc.ScriptHash())
	require.NoError(t, err)
	iter = res.Pop().Value().(*storage.Iterator)
	require.Len(t, iteratorToArray(iter), 1)
}

func TestClaimOperatorRedeem(t *testing.T) {
	s := newVaultSuite(t)
	s.createVault(t, util.Uint160{})

	acc := s.claim.NewAccount(t)
	op := s.claim.NewAccount(t)
	s.vault.WithSigners(acc).Invoke(t, 100, "deposit",
		0, acc.ScriptHash(), int64(100), acc.ScriptHash())

	s.claim.WithSigners(acc).Invoke(t, nil, "setOperator",
		acc.ScriptHash(), op.ScriptHash(), true)

	// Operator redeems owner's claims to the owner's benefit.
	s.vault.WithSigners(op).Invoke(t, 25, "redeem",
		0, int64(25), acc.ScriptHash(), acc.ScriptHash())
	s.claim.Invoke(t, 75, "balanceOf", acc.ScriptHash(), 0)

	// Revoked operator loses the authority.
	s.claim.WithSigners(acc).Invoke(t, nil, "setOperator",
		acc.ScriptHash(), op.ScriptHash(), false)
	s.vault.WithSigners(op).InvokeFail(t, "not authorized", "redeem",
		0, int64(25), acc.ScriptHash(), acc.ScriptHash())
}
