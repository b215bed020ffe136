package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/kellerh/ai-procurement/internal/ai"
	"github.com/kellerh/ai-procurement/internal/models"
)

// Standalone probe for the OpenAI integration. Classifies a canned
// request so API access can be verified without the full server.
func main() {
	apiKey := flag.String("key", "", "OpenAI API key (or set OPENAI_API_KEY env var)")
	model := flag.String("model", "gpt-4", "Model to use")
	timeout := flag.Duration("timeout", 30*time.Second, "API call timeout")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	_ = gotenv.Load(".env")

	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *apiKey == "" {
		*apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if *apiKey == "" {
		fmt.Fprintln(os.Stderr, "ERROR: OPENAI_API_KEY not set and no --key flag provided")
		fmt.Fprintln(os.Stderr, "Usage: test-llm-connection --key sk-... [--model gpt-4] [--timeout 30s]")
		os.Exit(1)
	}

	fmt.Println("=== LLM Connection Test ===")
	fmt.Printf("  Model: %s\n", *model)
	fmt.Printf("  API key length: %d chars\n", len(*apiKey))
	fmt.Printf("  Timeout: %v\n", *timeout)
	fmt.Println()

	classifier := ai.NewClassifier(ai.Config{
		APIKey:    *apiKey,
		Model:     *model,
		MaxTokens: 500,
	}, logger)

	request := models.NewProcurementRequest(
		"Office laptops",
		"20 laptops for the engineering team, 32GB RAM, delivery within 6 weeks",
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	classification, err := classifier.Classify(ctx, request)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: classification failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Connection OK (%.1fs)\n", time.Since(start).Seconds())
	fmt.Printf("  Category:   %s\n", classification.Category)
	fmt.Printf("  Confidence: %.2f\n", classification.Confidence)
	fmt.Printf("  Reasoning:  %s\n", classification.Reasoning)
}
