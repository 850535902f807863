package execution

import (
	"context"
	"fmt"
	"math/big"

	config "github.com/blobscan/indexer/configs"
	"github.com/ethereum/go-ethereum"
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	gethRpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type IExecutionClient interface {
	// GetBlockWithTransactions fetches the execution block for a hash,
	// including its full transaction list. A nil result means the node does
	// not know the block.
	GetBlockWithTransactions(ctx context.Context, hash gethCommon.Hash) (*Block, error)
	Close()
}

type Client struct {
	RPCClient *gethRpc.Client
	EthClient *ethclient.Client
	url       string
	chainID   *big.Int
}

func Initialize() (IExecutionClient, error) {
	url := config.Cfg.Execution.URL
	if url == "" {
		return nil, fmt.Errorf("EXECUTION_URL environment variable is not set")
	}
	return NewClient(url)
}

func NewClient(url string) (IExecutionClient, error) {
	log.Debug().Msg("Initializing execution client")
	rpcClient, dialErr := gethRpc.Dial(url)
	if dialErr != nil {
		return nil, dialErr
	}

	ethClient := ethclient.NewClient(rpcClient)

	client := &Client{
		RPCClient: rpcClient,
		EthClient: ethClient,
		url:       url,
	}

	chainID, err := ethClient.ChainID(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch chain id")
	}
	client.chainID = chainID

	return IExecutionClient(client), nil
}

func (c *Client) GetBlockWithTransactions(ctx context.Context, hash gethCommon.Hash) (*Block, error) {
	block, err := c.EthClient.BlockByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, nil
		}
		return nil, err
	}
	return serializeBlock(c.chainID, block)
}

func (c *Client) Close() {
	c.RPCClient.Close()
	c.EthClient.Close()
}
