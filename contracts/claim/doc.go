/*
Package claim implements Claim contract of the vault ledger suite.

Claim contract is a multi-class ownership ledger: it stores claim share
balances of all holders keyed by vault id. Shares are minted and burnt
exclusively by the Vault contract as part of its deposit/withdraw
operations; holders move shares between each other with the transfer method
and delegate authority over all of their classes to operators. Operator
registrations are used by the Vault contract to authorize withdrawals made
on the owner's behalf.

# Contract notifications

	ClaimMint:
	  - name: holder
	    type: Hash160
	  - name: vaultID
	    type: Integer
	  - name: amount
	    type: Integer

	ClaimBurn:
	  - name: holder
	    type: Hash160
	  - name: vaultID
	    type: Integer
	  - name: amount
	    type: Integer

	ClaimTransfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: vaultID
	    type: Integer
	  - name: amount
	    type: Integer

	OperatorSet:
	  - name: owner
	    type: Hash160
	  - name: operator
	    type: Hash160
	  - name: allowed
	    type: Boolean
*/
package claim

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'b' + holder + vault id -> int
   claim balance of the holder in the particular vault class, removed when
   it drops to zero
 - 's' + vault id -> int
   total claim supply of the vault class
 - 'o' + owner + operator -> int
   operator registrations, presence of the key means the registration
 - 'v' -> interop.Hash160
   Vault contract address

# Accounting
Contract stores claim share balances of all vault ledger users.
*/
