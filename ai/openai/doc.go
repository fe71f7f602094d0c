// Package openai provides AI service implementations using OpenAI-compatible APIs.
//
// This package implements the ai.AIProvider interface using the langchaingo
// library to communicate with OpenAI or OpenAI-compatible services (such as
// Ollama, LocalAI, or vLLM). Completions are requested in JSON mode; whatever
// comes back is stripped of markdown fences and passed through the repair
// engine, so callers always receive a parseable document.
//
// # Usage
//
//	config := ai.NewConfig(ai.WithHost("http://localhost:11434"), ai.WithModel("qwen2.5:7b"))
//
//	provider, err := openai.NewProvider(config, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	analysis, err := provider.Analyzer().Analyze(ctx, resumeText)
package openai
