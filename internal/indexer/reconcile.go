package indexer

import (
	"fmt"

	"github.com/blobscan/indexer/internal/clients/beacon"
	"github.com/blobscan/indexer/internal/clients/execution"
	gethCommon "github.com/ethereum/go-ethereum/common"
	gethTypes "github.com/ethereum/go-ethereum/core/types"
)

// buildTxToVersionedHashes maps each blob-carrying transaction hash to its
// ordered list of blob versioned hashes. Transactions without blobs are left
// out; that is not an error. The order of each list is the order within the
// transaction's blob list and determines each blob's index.
func buildTxToVersionedHashes(block *execution.Block) (map[gethCommon.Hash][]gethCommon.Hash, error) {
	mapping := make(map[gethCommon.Hash][]gethCommon.Hash)

	for _, tx := range block.Transactions {
		if tx.Type != gethTypes.BlobTxType {
			continue
		}
		if len(tx.BlobVersionedHashes) == 0 {
			return nil, fmt.Errorf("blob transaction %s has no blob versioned hashes", tx.Hash)
		}
		mapping[tx.Hash] = tx.BlobVersionedHashes
	}

	return mapping, nil
}

// buildVersionedHashToSidecar maps each sidecar's versioned hash to the
// sidecar itself. A duplicate versioned hash makes the join back to the
// execution layer ambiguous and is rejected.
func buildVersionedHashToSidecar(sidecars []beacon.Sidecar) (map[gethCommon.Hash]*beacon.Sidecar, error) {
	mapping := make(map[gethCommon.Hash]*beacon.Sidecar, len(sidecars))

	for i := range sidecars {
		sidecar := &sidecars[i]
		versionedHash := sidecar.VersionedHash()
		if _, exists := mapping[versionedHash]; exists {
			return nil, fmt.Errorf("duplicated versioned hash %s in blob sidecars", versionedHash)
		}
		mapping[versionedHash] = sidecar
	}

	return mapping, nil
}
