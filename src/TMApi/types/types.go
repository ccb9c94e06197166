package types

import "time"

// Claim categories. The verification engine dispatches on these; values
// outside the known set fall into its numeric-comparison branch.
type Category string

const (
	CategoryGeneral  Category = "GENERAL"
	CategoryCrypto   Category = "CRYPTO"
	CategoryPolitics Category = "POLITICS"
	CategoryHistory  Category = "HISTORY"
	CategoryAIFact   Category = "AI_FACT"
	CategoryLegal    Category = "LEGAL"
	CategoryWeather  Category = "WEATHER"
)

// ParseCategory maps a raw request value onto a Category. Missing
// values default to GENERAL; unrecognized ones are carried through and
// take the engine's numeric-comparison branch.
func ParseCategory(raw string) Category {
	if raw == "" {
		return CategoryGeneral
	}
	return Category(raw)
}

// IsAIGraded reports whether the category routes to the RAG judge.
func (c Category) IsAIGraded() bool {
	switch c {
	case CategoryGeneral, CategoryPolitics, CategoryHistory, CategoryAIFact:
		return true
	}
	return false
}

// VerificationRecord is the judged outcome for a single claim. ProofID
// and TxHash are set together after a successful ledger append and stay
// nil when anchoring fails or no ledger is configured. ProofID is a
// decimal string because the ledger's native id is a uint256.
type VerificationRecord struct {
	Claim           string   `json:"claim"`
	IsVerified      bool     `json:"isVerified"`
	ConfidenceScore int      `json:"confidenceScore"`
	DataSource      string   `json:"dataSource,omitempty"`
	OracleData      string   `json:"oracleData,omitempty"`
	AuxData         string   `json:"auxData,omitempty"`
	Category        Category `json:"category,omitempty"`
	ProofID         *string  `json:"proofId"`
	TxHash          *string  `json:"txHash"`
	Error           string   `json:"error,omitempty"`
}

// ProofSubmission carries the scalar fields appended to the ledger.
type ProofSubmission struct {
	Claim           string
	IsVerified      bool
	ConfidenceScore int
	DataSource      string
	OracleData      string
	AuxData         string
}

// LedgerProof is the on-chain shape, addressed by a sequential id.
type LedgerProof struct {
	Claim           string `json:"claim"`
	IsVerified      bool   `json:"isVerified"`
	ConfidenceScore int    `json:"confidenceScore"`
	Timestamp       int64  `json:"timestamp"`
	DataSource      string `json:"dataSource"`
	OracleData      string `json:"oracleData"`
	AuxData         string `json:"auxData"`
}

// ProofRecord mirrors anchored proofs into MySQL so operators can query
// history without walking the chain. The ledger stays the source of
// truth; rows here are written best-effort.
type ProofRecord struct {
	ID              uint64 `gorm:"primaryKey;autoIncrement:false"`
	Claim           string `gorm:"type:text;not null"`
	IsVerified      bool   `gorm:"not null"`
	ConfidenceScore int    `gorm:"not null"`
	DataSource      string `gorm:"size:128"`
	OracleData      string `gorm:"size:256"`
	AuxData         string `gorm:"type:text"`
	Category        string `gorm:"size:32"`
	TxHash          string `gorm:"size:128"`
	CreatedAt       time.Time
}

// NFTAttribute follows the ERC-721 metadata convention.
type NFTAttribute struct {
	TraitType   string      `json:"trait_type"`
	Value       interface{} `json:"value"`
	DisplayType string      `json:"display_type,omitempty"`
}

// NFTMetadata is the token metadata document embedded in the data: URI.
type NFTMetadata struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	ExternalURL string         `json:"external_url,omitempty"`
	Attributes  []NFTAttribute `json:"attributes"`
}
