package indexer

import (
	"fmt"

	"github.com/blobscan/indexer/internal/clients/beacon"
	"github.com/blobscan/indexer/internal/clients/execution"
	"github.com/blobscan/indexer/internal/common"
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

func buildBlock(block *execution.Block, slot uint64) (common.Block, error) {
	if block.Hash == (gethCommon.Hash{}) {
		return common.Block{}, fmt.Errorf("execution block for slot %d has no hash", slot)
	}

	return common.Block{
		Number:    block.Number,
		Hash:      block.Hash.Hex(),
		Timestamp: block.Timestamp,
		Slot:      slot,
	}, nil
}

// buildTransactions keeps exactly the transactions present in the tx-hash
// mapping, preserving execution-block order.
func buildTransactions(block *execution.Block, txToVersionedHashes map[gethCommon.Hash][]gethCommon.Hash) []common.Transaction {
	transactions := make([]common.Transaction, 0, len(txToVersionedHashes))

	for _, tx := range block.Transactions {
		if _, ok := txToVersionedHashes[tx.Hash]; !ok {
			continue
		}

		to := ""
		if tx.To != nil {
			to = tx.To.Hex()
		}

		transactions = append(transactions, common.Transaction{
			Hash:        tx.Hash.Hex(),
			From:        tx.From.Hex(),
			To:          to,
			BlockNumber: block.Number,
		})
	}

	return transactions
}

// buildBlobs joins every versioned hash referenced by the execution block's
// blob transactions to its sidecar payload. Iteration follows execution-block
// transaction order, then position within the transaction's blob list, so the
// result is identical across attempts. A referenced versioned hash with no
// sidecar is a cross-source mismatch and is never retried.
func buildBlobs(block *execution.Block, txToVersionedHashes map[gethCommon.Hash][]gethCommon.Hash, versionedHashToSidecar map[gethCommon.Hash]*beacon.Sidecar) ([]common.Blob, error) {
	var blobs []common.Blob

	for _, tx := range block.Transactions {
		versionedHashes, ok := txToVersionedHashes[tx.Hash]
		if !ok {
			continue
		}

		for i, versionedHash := range versionedHashes {
			sidecar, ok := versionedHashToSidecar[versionedHash]
			if !ok {
				return nil, fmt.Errorf("sidecar not found for blob %d with versioned hash %s from tx %s", i, versionedHash, tx.Hash)
			}

			blobs = append(blobs, common.Blob{
				VersionedHash: versionedHash.Hex(),
				Commitment:    hexutil.Encode(sidecar.KzgCommitment),
				Data:          hexutil.Encode(sidecar.Blob),
				TxHash:        tx.Hash.Hex(),
				Index:         uint32(i),
			})
		}
	}

	return blobs, nil
}
