package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port     string
	MySQLDSN string
	RedisURL string

	// Flare chain
	RPCURL       string
	ChainID      int64
	PrivateKey   string
	TruthHubAddr string
	FTSOAddr     string

	// AI judge
	AIProvider string
	AIModel    string
	AIBaseURL  string
	AIKey      string
	AITimeout  int

	// Grading policy: strict fails the request when the judge is
	// unreachable or malformed instead of auto-passing with 85.
	GraderStrict bool
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	chainID, _ := strconv.ParseInt(getenv("CHAIN_ID", "114"), 10, 64)
	aiTimeout, _ := strconv.Atoi(getenv("AI_TIMEOUT", "60"))
	strict, _ := strconv.ParseBool(getenv("GRADER_STRICT", "false"))
	return Config{
		Port:         getenv("PORT", "4000"),
		MySQLDSN:     os.Getenv("MYSQL_DSN"),
		RedisURL:     os.Getenv("REDIS_URL"),
		RPCURL:       getenv("COSTON2_RPC", "https://coston2-api.flare.network/ext/C/rpc"),
		ChainID:      chainID,
		PrivateKey:   os.Getenv("PRIVATE_KEY"),
		TruthHubAddr: os.Getenv("TRUTH_HUB_ADDRESS"),
		FTSOAddr:     getenv("FTSO_REGISTRY_ADDRESS", "0x487dC9A43679105423854E1304ff8373de7887D9"),
		AIProvider:   getenv("AI_PROVIDER", "ollama"),
		AIModel:      getenv("AI_MODEL", "llama2"),
		AIBaseURL:    getenv("AI_BASE_URL", "http://127.0.0.1:11434"),
		AIKey:        os.Getenv("OPENAI_API_KEY"),
		AITimeout:    aiTimeout,
		GraderStrict: strict,
	}
}
