package main

import (
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	vaultAddress := flag.String("vault", "", "LE-encoded address of the vault contract")
	outDir := flag.String("out", "testdata", "Directory to write the dump to")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *vaultAddress == "":
		log.Fatal("missing vault contract address")
	}

	vaultHash, err := util.Uint160DecodeStringLE(*vaultAddress)
	if err != nil {
		log.Fatal(fmt.Errorf("decode vault contract address: %w", err))
	}

	err = os.MkdirAll(*outDir, 0700)
	if err != nil {
		log.Fatal(fmt.Errorf("create output dir: %w", err))
	}

	err = _dump(*neoRPCEndpoint, *outDir, vaultHash)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("vault ledger contracts are successfully dumped to '%s/'\n", *outDir)
}

func _dump(neoBlockchainRPCEndpoint, outDir string, vaultHash util.Uint160) error {
	b, err := newRemoteBlockChain(neoBlockchainRPCEndpoint)
	if err != nil {
		return fmt.Errorf("init remote blockchain: %w", err)
	}

	defer b.close()

	claimHash, err := b.getClaimContractHash(vaultHash)
	if err != nil {
		return fmt.Errorf("resolve claim contract via vault storage: %w", err)
	}

	for _, ctr := range []struct {
		name string
		hash util.Uint160
	}{
		{"vault", vaultHash},
		{"claim", claimHash},
	} {
		log.Printf("Processing contract '%s'...\n", ctr.name)

		err = dumpContractStorage(b, ctr.hash, filepath.Join(outDir, ctr.name+".json"))
		if err != nil {
			return fmt.Errorf("dump '%s' contract storage: %w", ctr.name, err)
		}
	}

	return nil
}

// storageItem is a single contract storage record of the resulting dump. Keys
// are base58-encoded since they mix printable prefixes with raw account
// bytes, values are base64-encoded.
type storageItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func dumpContractStorage(from *remoteBlockchain, contract util.Uint160, path string) error {
	var items []storageItem

	err := from.iterateContractStorage(contract, func(key, value []byte) error {
		items = append(items, storageItem{
			Key:   base58.Encode(key),
			Value: base64.StdEncoding.EncodeToString(value),
		})
		return nil
	})
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dump file: %w", err)
	}

	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", " ")

	err = enc.Encode(items)
	if err != nil {
		return fmt.Errorf("encode storage items: %w", err)
	}

	return nil
}
