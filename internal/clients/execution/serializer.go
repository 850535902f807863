package execution

import (
	"math/big"

	gethCommon "github.com/ethereum/go-ethereum/common"
	gethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// Block is the execution-layer view the indexer works with, serialized down
// from the geth block to the fields the pipeline needs.
type Block struct {
	Number       uint64
	Hash         gethCommon.Hash
	Timestamp    uint64
	Transactions []Transaction
}

type Transaction struct {
	Hash gethCommon.Hash
	From gethCommon.Address
	To   *gethCommon.Address
	Type uint8
	// BlobVersionedHashes is the ordered list of versioned hashes a type-3
	// transaction references; empty for every other transaction type.
	BlobVersionedHashes []gethCommon.Hash
}

func serializeBlock(chainID *big.Int, block *gethTypes.Block) (*Block, error) {
	signer := gethTypes.LatestSignerForChainID(chainID)

	txs := make([]Transaction, 0, len(block.Transactions()))
	for _, tx := range block.Transactions() {
		from, err := gethTypes.Sender(signer, tx)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive sender for transaction %s", tx.Hash())
		}

		txs = append(txs, Transaction{
			Hash:                tx.Hash(),
			From:                from,
			To:                  tx.To(),
			Type:                tx.Type(),
			BlobVersionedHashes: tx.BlobHashes(),
		})
	}

	return &Block{
		Number:       block.NumberU64(),
		Hash:         block.Hash(),
		Timestamp:    block.Time(),
		Transactions: txs,
	}, nil
}
