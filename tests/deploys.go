package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

const (
	vaultPath    = "../contracts/vault"
	claimPath    = "../contracts/claim"
	strategyPath = "../internal/testcontracts/teststrategy"
)

// vaultSuite is a deployed Vault+Claim contract pair with invokers bound to
// the committee which is the default vault admin.
type vaultSuite struct {
	e       *neotest.Executor
	vault   *neotest.ContractInvoker
	claim   *neotest.ContractInvoker
	gasHash util.Uint160
}

func newVaultSuite(t *testing.T) *vaultSuite {
	e := newExecutor(t)

	ctrVault := neotest.CompileFile(t, e.CommitteeHash, vaultPath, path.Join(vaultPath, "config.yml"))
	ctrClaim := neotest.CompileFile(t, e.CommitteeHash, claimPath, path.Join(claimPath, "config.yml"))

	e.DeployContract(t, ctrClaim, []interface{}{ctrVault.Hash})
	e.DeployContract(t, ctrVault, []interface{}{ctrClaim.Hash})

	return &vaultSuite{
		e:       e,
		vault:   e.CommitteeInvoker(ctrVault.Hash),
		claim:   e.CommitteeInvoker(ctrClaim.Hash),
		gasHash: e.NativeHash(t, nativenames.Gas),
	}
}

// deployStrategy deploys the test strategy contract bound to the suite's
// vault contract with GAS as the managed asset.
func (s *vaultSuite) deployStrategy(t *testing.T) util.Uint160 {
	ctr := neotest.CompileFile(t, s.e.CommitteeHash, strategyPath, path.Join(strategyPath, "config.yml"))
	s.e.DeployContract(t, ctr, []interface{}{s.vault.Hash, s.gasHash})
	return ctr.Hash
}

// createVault allocates a GAS-backed vault and returns its id. Empty
// strategy makes the vault self-custodial.
func (s *vaultSuite) createVault(t *testing.T, strategy util.Uint160) int64 {
	var strategyArg interface{} = []byte{}
	if !strategy.Equals(util.Uint160{}) {
		strategyArg = strategy
	}

	res, err := s.vault.TestInvoke(t, "vaultCount")
	if err != nil {
		t.Fatal(err)
	}
	id := res.Pop().BigInt().Int64()

	s.vault.Invoke(t, id, "create", s.gasHash, strategyArg, []byte("test vault"))
	return id
}

// fundGAS transfers raw GAS units from the validator to the given account.
func (s *vaultSuite) fundGAS(t *testing.T, to util.Uint160, amount int64) {
	gasInv := s.e.CommitteeInvoker(s.gasHash).WithSigners(s.e.Validator)
	gasInv.Invoke(t, true, "transfer", s.e.Validator.ScriptHash(), to, amount, nil)
}

// testInvokeInt invokes a safe method and returns its integer result.
func testInvokeInt(t *testing.T, c *neotest.ContractInvoker, method string, args ...interface{}) int64 {
	res, err := c.TestInvoke(t, method, args...)
	if err != nil {
		t.Fatal(err)
	}
	return res.Pop().BigInt().Int64()
}
