package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tablerag/internal/chunker"
	"tablerag/internal/config"
	"tablerag/internal/dataset"
	embollama "tablerag/internal/embedding/ollama"
	genollama "tablerag/internal/llm/ollama"
	"tablerag/internal/retriever"
	"tablerag/internal/service"
	"tablerag/internal/summarizer"
	"tablerag/internal/textualizer"
	"tablerag/internal/tui"
	"tablerag/internal/vectorstore"
	"tablerag/internal/vectorstore/memory"
	"tablerag/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var verbose bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/tablerag/config.yaml if not provided)")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging of answer requests")
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: tablerag [--config=config.yaml] [--verbose] dataset.csv")
		os.Exit(1)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var cfg *config.AppConfig
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	records, err := dataset.Load(args[0])
	if err != nil {
		logger.Fatal("failed to load dataset", zap.Error(err))
	}
	logger.Info("dataset loaded", zap.String("path", args[0]), zap.Int("records", len(records)))

	documents := textualizer.TextualizeAll(records)
	ch := chunker.NewWindowChunker(cfg.Chunker.ChunkSize, cfg.Chunker.Overlap)
	chunks, err := ch.Chunk(documents)
	if err != nil {
		logger.Fatal("chunking failed", zap.Error(err))
	}
	if len(chunks) == 0 {
		logger.Fatal("no chunks produced from dataset")
	}
	logger.Info("corpus chunked", zap.Int("documents", len(documents)), zap.Int("chunks", len(chunks)))

	ctx := context.Background()

	emb := embollama.NewClient(embollama.Config{
		BaseURL: cfg.Embedder.BaseURL,
		Model:   cfg.Embedder.Model,
		Timeout: time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
	})
	if err := emb.Ping(ctx); err != nil {
		logger.Fatal("embedding model unavailable", zap.Error(err))
	}

	gen := genollama.NewClient(genollama.Config{
		BaseURL: cfg.Generator.BaseURL,
		Model:   cfg.Generator.Model,
		Timeout: time.Duration(cfg.Generator.TimeoutSecs) * time.Second,
	})
	if err := gen.Ping(ctx); err != nil {
		logger.Fatal("generation model unavailable", zap.Error(err))
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	var vectors [][]float64
	for i := 0; i < len(texts); i += cfg.Embedder.BatchSize {
		end := i + cfg.Embedder.BatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := emb.EmbedBatch(ctx, texts[i:end])
		if err != nil {
			logger.Fatal("embedding corpus failed", zap.Error(err))
		}
		vectors = append(vectors, batch...)
	}
	logger.Info("corpus embedded",
		zap.String("model", emb.ModelName()),
		zap.Int("vectors", len(vectors)),
		zap.Int("dimension", dimensionOf(vectors)))

	var store vectorstore.Storage
	switch cfg.VectorStore.Type {
	case "memory", "":
		store = memory.NewStorage()
	case "qdrant":
		q := cfg.VectorStore.Qdrant
		store = qdrant.NewStorage(qdrant.Config{
			URL:        q.URL,
			APIKey:     q.APIKey,
			Collection: q.Collection,
			Timeout:    time.Duration(q.TimeoutSecs) * time.Second,
		})
	default:
		logger.Fatal("unknown vector store", zap.String("type", cfg.VectorStore.Type))
	}
	if err := store.Build(chunks, vectors); err != nil {
		logger.Fatal("building vector index failed", zap.Error(err))
	}

	ret := retriever.New(emb, store, cfg.Retriever.TopK)

	docTexts := make([]string, len(documents))
	for i, d := range documents {
		docTexts[i] = d.Text
	}
	summary, err := summarizer.NewFrequencySummarizer().Summarize(strings.Join(docTexts, "\n\n"), cfg.Summarizer.MaxSentences)
	if err != nil {
		logger.Fatal("summarizing corpus failed", zap.Error(err))
	}

	svcLogger := zap.NewNop()
	if verbose {
		svcLogger = logger
	}
	svc := service.NewAnswerService(ret, gen,
		cfg.Retriever.TopK,
		time.Duration(cfg.Generator.TimeoutSecs)*time.Second,
		svcLogger)

	m := tui.New(svc, summary)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		logger.Fatal("tui failed", zap.Error(err))
	}
}

func dimensionOf(vectors [][]float64) int {
	if len(vectors) == 0 {
		return 0
	}
	return len(vectors[0])
}
