package data

import (
	"sync"

	"github.com/truthmint-labs/truthmint/src/TMApi/types"
)

// NFTStore keeps generated token metadata in memory, keyed by proof id.
// Metadata is reproducible from the proof, so losing the map on restart
// costs nothing.
type NFTStore struct {
	mu    sync.RWMutex
	items map[string]types.NFTMetadata
}

func NewNFTStore() *NFTStore {
	return &NFTStore{items: make(map[string]types.NFTMetadata)}
}

func (s *NFTStore) Put(tokenID string, meta types.NFTMetadata) {
	s.mu.Lock()
	s.items[tokenID] = meta
	s.mu.Unlock()
}

func (s *NFTStore) Get(tokenID string) (types.NFTMetadata, bool) {
	s.mu.RLock()
	meta, ok := s.items[tokenID]
	s.mu.RUnlock()
	return meta, ok
}

func (s *NFTStore) All() map[string]types.NFTMetadata {
	s.mu.RLock()
	out := make(map[string]types.NFTMetadata, len(s.items))
	for k, v := range s.items {
		out[k] = v
	}
	s.mu.RUnlock()
	return out
}
