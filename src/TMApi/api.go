package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/truthmint-labs/truthmint/src/TMApi/config"
	"github.com/truthmint-labs/truthmint/src/TMApi/data"
	"github.com/truthmint-labs/truthmint/src/TMApi/truth"
	"github.com/truthmint-labs/truthmint/src/TMApi/webserver"
	"github.com/truthmint-labs/truthmint/src/shared/ai"
	"github.com/truthmint-labs/truthmint/src/shared/flare"
	"github.com/truthmint-labs/truthmint/src/shared/wiki"
)

func main() {
	cfg := config.Load()

	// Off-chain stores are optional; the service runs without them.
	var mirror truth.ProofMirror
	if cfg.MySQLDSN != "" {
		mirror = data.NewProofStore(data.MustMySQL(cfg.MySQLDSN))
	} else {
		log.Printf("MYSQL_DSN not set; proof mirror disabled")
	}

	var keys data.KeyStore
	if cfg.RedisURL != "" {
		keys = data.NewKeyStore(data.MustRedis(cfg.RedisURL))
	} else {
		log.Printf("REDIS_URL not set; API keys held in memory")
		keys = data.NewKeyStore(nil)
	}

	aiClient := ai.NewClient(ai.FactoryConfig{
		Provider:  cfg.AIProvider,
		OpenAIKey: cfg.AIKey,
		BaseURL:   cfg.AIBaseURL,
		Model:     cfg.AIModel,
		Timeout:   cfg.AITimeout,
	})
	references := wiki.NewClient("")
	oracle := flare.NewFTSO(cfg.RPCURL, cfg.FTSOAddr)

	// Without a key and contract address verification still works;
	// records just carry null proofId/txHash.
	var ledger truth.Ledger
	var chain webserver.BalanceReader
	hub, err := flare.NewTruthHub(cfg.RPCURL, cfg.TruthHubAddr, cfg.PrivateKey, cfg.ChainID)
	if err != nil {
		log.Printf("TruthHub disabled: %v", err)
	} else {
		ledger = hub
		chain = hub
	}

	grader := truth.NewGrader(aiClient, references, wiki.SourceName, cfg.GraderStrict)
	engine := truth.NewEngine(grader, oracle, ledger, mirror)

	router := webserver.New(cfg, webserver.Deps{
		Generator: truth.NewGenerator(aiClient),
		Engine:    engine,
		Ledger:    ledger,
		Oracle:    oracle,
		Chain:     chain,
		Keys:      keys,
		NFTs:      data.NewNFTStore(),
	})

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	log.Printf("TruthMint API listening on %s (chain: Flare Coston2)", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
