package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvScoringArticle6Base   = "NAVIGATOR_SCORING_ARTICLE6_BASE"
	EnvScoringArticle8Base   = "NAVIGATOR_SCORING_ARTICLE8_BASE"
	EnvScoringArticle9Base   = "NAVIGATOR_SCORING_ARTICLE9_BASE"
	EnvScoringRiskAdjustment = "NAVIGATOR_SCORING_RISK_ADJUSTMENT"
	EnvScoringConfidence     = "NAVIGATOR_SCORING_CONFIDENCE"
	EnvScoringReportTTL      = "NAVIGATOR_SCORING_REPORT_TTL"
)

// ScoringConfig holds classification scoring parameters and report retention.
type ScoringConfig struct {
	Article6Base   int     `toml:"article6_base"`
	Article8Base   int     `toml:"article8_base"`
	Article9Base   int     `toml:"article9_base"`
	RiskAdjustment int     `toml:"risk_adjustment"`
	Confidence     float64 `toml:"confidence"`
	ReportTTL      string  `toml:"report_ttl"`
}

// ReportTTLDuration returns ReportTTL as a time.Duration.
func (c *ScoringConfig) ReportTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReportTTL)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ScoringConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ScoringConfig) Merge(overlay *ScoringConfig) {
	if overlay.Article6Base != 0 {
		c.Article6Base = overlay.Article6Base
	}
	if overlay.Article8Base != 0 {
		c.Article8Base = overlay.Article8Base
	}
	if overlay.Article9Base != 0 {
		c.Article9Base = overlay.Article9Base
	}
	if overlay.RiskAdjustment != 0 {
		c.RiskAdjustment = overlay.RiskAdjustment
	}
	if overlay.Confidence != 0 {
		c.Confidence = overlay.Confidence
	}
	if overlay.ReportTTL != "" {
		c.ReportTTL = overlay.ReportTTL
	}
}

func (c *ScoringConfig) loadDefaults() {
	if c.Article6Base == 0 {
		c.Article6Base = 60
	}
	if c.Article8Base == 0 {
		c.Article8Base = 75
	}
	if c.Article9Base == 0 {
		c.Article9Base = 85
	}
	if c.RiskAdjustment == 0 {
		c.RiskAdjustment = 5
	}
	if c.Confidence == 0 {
		c.Confidence = 0.85
	}
	if c.ReportTTL == "" {
		c.ReportTTL = "720h"
	}
}

func (c *ScoringConfig) loadEnv() {
	if v := os.Getenv(EnvScoringArticle6Base); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Article6Base = n
		}
	}
	if v := os.Getenv(EnvScoringArticle8Base); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Article8Base = n
		}
	}
	if v := os.Getenv(EnvScoringArticle9Base); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Article9Base = n
		}
	}
	if v := os.Getenv(EnvScoringRiskAdjustment); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RiskAdjustment = n
		}
	}
	if v := os.Getenv(EnvScoringConfidence); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Confidence = f
		}
	}
	if v := os.Getenv(EnvScoringReportTTL); v != "" {
		c.ReportTTL = v
	}
}

func (c *ScoringConfig) validate() error {
	for name, score := range map[string]int{
		"article6_base": c.Article6Base,
		"article8_base": c.Article8Base,
		"article9_base": c.Article9Base,
	} {
		if score < 0 || score > 100 {
			return fmt.Errorf("invalid %s: %d", name, score)
		}
	}
	if c.Confidence < 0 || c.Confidence > 1 {
		return fmt.Errorf("invalid confidence: %f", c.Confidence)
	}
	if _, err := time.ParseDuration(c.ReportTTL); err != nil {
		return fmt.Errorf("invalid report_ttl: %w", err)
	}
	return nil
}
