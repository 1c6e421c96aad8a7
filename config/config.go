package config

import (
	"os"
)

// GetGeminiModel returns the model id used when the setup file does
// not bind one, defaulting to the flash tier.
func GetGeminiModel() string {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		return "gemini-2.5-flash"
	}
	return model
}

// GetGeminiAPIKey returns the Gemini API key. Empty is a fatal setup
// condition caught when the client is constructed.
func GetGeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

// GetMongoDBURI returns the MongoDB connection URI from environment variable.
// Empty means the durable transcript sink is disabled.
func GetMongoDBURI() string {
	return os.Getenv("MONGODB_URI")
}

// GetSummaryModel returns the model used for memory summarization.
// Falls back to the main Gemini model if not set.
func GetSummaryModel() string {
	model := os.Getenv("SUMMARY_MODEL")
	if model == "" {
		return GetGeminiModel()
	}
	return model
}
