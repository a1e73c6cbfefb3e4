/*
Package vault implements Vault contract, the accounting core of the vault
ledger suite.

Vault contract tracks many independent vaults in a single registry. Every
vault holds its own underlying NEP-17 asset and issues its own class of
proportional claim shares through the Claim contract. Share/asset conversion
uses the current exchange rate totalAssets/totalClaimSupply of the vault;
with zero outstanding supply shares and assets are converted 1:1, so the
first depositor sets the rate at parity. Rounding always favors the vault:
deposit and redeem round down, mint and withdraw round up, which keeps the
existing holders from dilution and the vault from under-collateralized
payouts.

A vault may be created with a strategy contract. Strategy-backed vaults
forward freshly deposited assets to the strategy (afterDeposit hook), recall
them before paying a withdrawal (beforeWithdraw hook) and delegate valuation
to the strategy (totalAssetsManaged method, requested anew on every
conversion). A strategy contract must expose:

	totalAssetsManaged(vaultID int) int                  // safe
	afterDeposit(vaultID, assets, shares int)
	beforeWithdraw(vaultID, assets, shares int)

A panic in any hook faults the whole operation, so a vault observed from
outside is always consistent: claims are minted only against assets already
received, claims are burnt only when the payout succeeds.

# Contract notifications

VaultCreated notification is produced on every vault allocation.

	VaultCreated:
	  - name: vaultID
	    type: Integer
	  - name: asset
	    type: Hash160
	  - name: strategy
	    type: ByteArray

Deposit notification is produced by deposit and mint methods.

	Deposit:
	  - name: vaultID
	    type: Integer
	  - name: depositor
	    type: Hash160
	  - name: receiver
	    type: Hash160
	  - name: assets
	    type: Integer
	  - name: shares
	    type: Integer

Withdraw notification is produced by withdraw and redeem methods.

	Withdraw:
	  - name: vaultID
	    type: Integer
	  - name: owner
	    type: Hash160
	  - name: receiver
	    type: Hash160
	  - name: assets
	    type: Integer
	  - name: shares
	    type: Integer
*/
package vault

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'i' -> int
   vault id counter, the id of the next created vault
 - 'v' + vault id -> std.Serialize(Vault)
   vault records (here Vault is a structure defined in current package)
 - 'm' -> interop.Hash160
   Claim contract address
 - 'a' -> interop.Hash160
   vault admin account

# Accounting
Contract stores registry of all vaults with their claim supplies and idle
asset balances. Claim balances of particular holders are stored by the Claim
contract.
*/
