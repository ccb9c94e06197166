package data

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/truthmint-labs/truthmint/src/TMApi/types"
)

// ProofStore mirrors anchored proofs into MySQL. Writes are best-effort
// upserts keyed on the on-chain proof id.
type ProofStore struct {
	db *gorm.DB
}

func NewProofStore(db *gorm.DB) *ProofStore {
	return &ProofStore{db: db}
}

func (s *ProofStore) Save(ctx context.Context, id uint64, rec types.VerificationRecord, txHash string) error {
	row := types.ProofRecord{
		ID:              id,
		Claim:           rec.Claim,
		IsVerified:      rec.IsVerified,
		ConfidenceScore: rec.ConfidenceScore,
		DataSource:      rec.DataSource,
		OracleData:      rec.OracleData,
		AuxData:         rec.AuxData,
		Category:        string(rec.Category),
		TxHash:          txHash,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
}

// Recent returns up to limit mirrored proofs, newest first.
func (s *ProofStore) Recent(ctx context.Context, limit int) ([]types.ProofRecord, error) {
	var rows []types.ProofRecord
	err := s.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&rows).Error
	return rows, err
}
