package beacon

import (
	"crypto/sha256"
	"encoding/json"
	"strconv"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// Uint64Str decodes the decimal-string numbers the beacon API uses.
type Uint64Str uint64

func (v *Uint64Str) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid uint64 string %q", s)
	}
	*v = Uint64Str(n)
	return nil
}

func (v Uint64Str) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(v), 10))
}

// BeaconBlock is the consensus-layer view of a slot. Both the execution
// payload and the KZG commitment list are optional; their absence is a
// normal state, not an error.
type BeaconBlock struct {
	Message BlockMessage `json:"message"`
}

type BlockMessage struct {
	Slot Uint64Str `json:"slot"`
	Body BlockBody `json:"body"`
}

type BlockBody struct {
	ExecutionPayload   *ExecutionPayload `json:"execution_payload"`
	BlobKzgCommitments []hexutil.Bytes   `json:"blob_kzg_commitments"`
}

// ExecutionPayload carries the execution-layer block hash the beacon block
// references; it is used only to fetch the matching execution block.
type ExecutionPayload struct {
	BlockHash gethCommon.Hash `json:"block_hash"`
}

// HasKzgCommitments reports whether the block commits to at least one blob.
func (b *BeaconBlock) HasKzgCommitments() bool {
	return len(b.Message.Body.BlobKzgCommitments) > 0
}

// Sidecar is one blob payload for a slot, as served by the beacon node. The
// collection for a slot is unordered with respect to transactions; the
// versioned hash is the join key back to the execution layer.
type Sidecar struct {
	Index         Uint64Str     `json:"index"`
	Blob          hexutil.Bytes `json:"blob"`
	KzgCommitment hexutil.Bytes `json:"kzg_commitment"`
}

// VersionedHash derives the EIP-4844 versioned hash for the sidecar's
// commitment: sha256(commitment) with the first byte replaced by the
// version prefix 0x01.
func (s *Sidecar) VersionedHash() gethCommon.Hash {
	h := sha256.Sum256(s.KzgCommitment)
	h[0] = 0x01
	return gethCommon.BytesToHash(h[:])
}
