package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Option Scout Configuration

[nse]
# Base URL of the NSE website API
base_url = "https://www.nseindia.com"
# Request timeout
request_timeout = "15s"
# Retry attempts for flaky endpoints
max_retries = 3
# How long the cached F&O symbol list stays fresh
symbol_cache_ttl = "24h"

[analysis]
# Number of recent news items used for aggregate sentiment
max_news_items = 3
# Classify headlines with an LLM when an OpenAI key is configured;
# falls back to keyword rules on any failure
use_llm_sentiment = false
# Persist each analysis run to the local journal
journal_enabled = true

[server]
# HTTP listen address for 'optionscout serve'
addr = ":8080"
read_timeout = "30s"
write_timeout = "60s"
shutdown_timeout = "10s"
# Maximum option-chain CSV upload size in bytes
max_upload_bytes = 16777216

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "02-Jan-2006"
`

const credentialsTemplate = `# Option Scout Credentials
# This file should have restricted permissions (0600)

[openai]
# Optional: enables LLM-backed headline sentiment
api_key = ""
model = "gpt-4o-mini"
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}
	return nil
}

func createTemplateCredentials(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "credentials.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(credentialsTemplate), 0600); err != nil {
		return fmt.Errorf("writing credentials template: %w", err)
	}
	return nil
}
