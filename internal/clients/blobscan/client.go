package blobscan

import (
	"context"
	"encoding/json"

	"github.com/blobscan/indexer/internal/clients/api"
	"github.com/blobscan/indexer/internal/common"
)

type IBlobscanClient interface {
	// Index submits the block, its blob transactions and their blobs as one
	// atomic indexing operation.
	Index(ctx context.Context, block common.Block, transactions []common.Transaction, blobs []common.Blob) error
}

type Client struct {
	api *api.Client
}

func NewClient(endpoint, secret string, opts ...api.ClientOpt) (*Client, error) {
	opts = append([]api.ClientOpt{api.WithAuthToken(secret)}, opts...)
	c, err := api.NewClient(endpoint, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{api: c}, nil
}

type indexRequest struct {
	Block        common.Block         `json:"block"`
	Transactions []common.Transaction `json:"transactions"`
	Blobs        []common.Blob        `json:"blobs"`
}

func (c *Client) Index(ctx context.Context, block common.Block, transactions []common.Transaction, blobs []common.Blob) error {
	req := indexRequest{
		Block:        block,
		Transactions: transactions,
		Blobs:        blobs,
	}
	_, err := api.Put[json.RawMessage](ctx, c.api, "api/indexer/block-txs-blobs", req)
	return err
}
