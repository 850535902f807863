package common

// Block, Transaction and Blob are the normalized entities submitted to the
// indexing backend. They are built once per slot attempt and never mutated
// afterwards; the three collections for a slot are always submitted together.

type Block struct {
	Number    uint64 `json:"number"`
	Hash      string `json:"hash"`
	Timestamp uint64 `json:"timestamp"`
	Slot      uint64 `json:"slot"`
}

type Transaction struct {
	Hash        string `json:"hash"`
	From        string `json:"from"`
	To          string `json:"to"`
	BlockNumber uint64 `json:"blockNumber"`
}

type Blob struct {
	VersionedHash string `json:"versionedHash"`
	Commitment    string `json:"commitment"`
	Data          string `json:"data"`
	TxHash        string `json:"txHash"`
	// Index is the position of the blob's versioned hash within its owning
	// transaction's blob list.
	Index uint32 `json:"index"`
}
