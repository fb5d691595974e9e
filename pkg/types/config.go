// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DocumentConfig holds settings for the on-disk document layer.
type DocumentConfig struct {
	// ContextDir is the directory where context documents are stored,
	// one JSON file per entity (default "contexts").
	ContextDir string `json:"context_dir" yaml:"context_dir"`
}

// StoreConfig holds settings for the template store.
type StoreConfig struct {
	// TemplatesDir is the directory containing the templates database
	// (default "templates").
	TemplatesDir string `json:"templates_dir" yaml:"templates_dir"`
}

// ExportConfig holds settings for markup export.
type ExportConfig struct {
	// OutputDir is where full-mode export files are written when no
	// explicit output path is given (default "exports").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// Config is the root configuration for the context-engine CLI.
type Config struct {
	Documents DocumentConfig `json:"documents" yaml:"documents"`
	Store     StoreConfig    `json:"store" yaml:"store"`
	Export    ExportConfig   `json:"export" yaml:"export"`
}
