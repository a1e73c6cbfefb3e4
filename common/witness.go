package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/neo"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

var (
	// ErrAdminWitnessFailed appears when the method must be called
	// by the vault admin but was not.
	ErrAdminWitnessFailed = "admin witness check failed"
	// ErrOwnerWitnessFailed appears when the method must be called
	// by an owner of some assets but was not.
	ErrOwnerWitnessFailed = "owner witness check failed"
)

// CheckAdminWitness checks witness of the passed admin account.
// It panics with ErrAdminWitnessFailed message on fail.
func CheckAdminWitness(admin interop.Hash160) {
	if !runtime.CheckWitness(admin) {
		panic(ErrAdminWitnessFailed)
	}
}

// CheckOwnerWitness checks that the operation is authorized by the passed
// account: either the account witnessed the transaction or the account is
// a contract performing the call itself. It panics with
// ErrOwnerWitnessFailed message on fail.
func CheckOwnerWitness(owner interop.Hash160) {
	if !IsOwnerWitness(owner) {
		panic(ErrOwnerWitnessFailed)
	}
}

// IsOwnerWitness is like CheckOwnerWitness but returns the check result
// instead of panicking.
func IsOwnerWitness(owner interop.Hash160) bool {
	if len(owner) != interop.Hash160Len {
		return false
	}
	if runtime.CheckWitness(owner) {
		return true
	}

	// Check if a smart contract is calling script hash.
	callingScriptHash := runtime.GetCallingScriptHash()
	return callingScriptHash.Equals(owner)
}

// CommitteeAddress returns multi address of committee public keys.
func CommitteeAddress() []byte {
	committee := neo.GetCommittee()
	threshold := len(committee)/2 + 1

	keys := []interop.PublicKey{}
	for _, key := range committee {
		keys = append(keys, key)
	}

	return contract.CreateMultisigAccount(threshold, keys)
}
