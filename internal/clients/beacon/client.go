package beacon

import (
	"context"
	"fmt"
	"strconv"

	"github.com/blobscan/indexer/internal/clients/api"
)

type IBeaconClient interface {
	// GetBlock fetches the beacon block for a slot; a nil slot means the
	// current head. A nil result means the block is not (yet) available.
	GetBlock(ctx context.Context, slot *uint64) (*BeaconBlock, error)
	// GetBlobSidecars fetches the blob sidecars for a slot. A nil result
	// means no sidecars are available; an empty one means the slot carries
	// no blobs.
	GetBlobSidecars(ctx context.Context, slot uint64) ([]Sidecar, error)
}

type Client struct {
	api *api.Client
}

func NewClient(endpoint string, opts ...api.ClientOpt) (*Client, error) {
	c, err := api.NewClient(endpoint, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{api: c}, nil
}

func (c *Client) GetBlock(ctx context.Context, slot *uint64) (*BeaconBlock, error) {
	id := "head"
	if slot != nil {
		id = strconv.FormatUint(*slot, 10)
	}
	return api.Get[BeaconBlock](ctx, c.api, fmt.Sprintf("eth/v2/beacon/blocks/%s", id))
}

func (c *Client) GetBlobSidecars(ctx context.Context, slot uint64) ([]Sidecar, error) {
	sidecars, err := api.Get[[]Sidecar](ctx, c.api, fmt.Sprintf("eth/v1/beacon/blob_sidecars/%d", slot))
	if err != nil {
		return nil, err
	}
	if sidecars == nil {
		return nil, nil
	}
	return *sidecars, nil
}
