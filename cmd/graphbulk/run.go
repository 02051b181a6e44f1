package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/ostapenkovs/redisgraph-bulk-loader/bulk"
	"github.com/ostapenkovs/redisgraph-bulk-loader/internal/logger"
	"github.com/ostapenkovs/redisgraph-bulk-loader/internal/wire"
)

func runLoad(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{Enabled: verbose && !quiet, Level: slog.LevelDebug})

	cfg, err := buildConfig(args[0])
	if err != nil {
		return err
	}

	conn, err := wire.Dial(flagHost, flagPort, flagPassword)
	if err != nil {
		return err
	}
	defer conn.Close()

	res, err := bulk.Run(conn, cfg)
	if err != nil {
		return err
	}
	if !quiet {
		res.Write(os.Stdout)
	}
	return nil
}

// buildConfig assembles and pre-validates the session configuration from
// the flag set.
func buildConfig(graph string) (*bulk.Config, error) {
	sep, err := parseSeparator(flagSeparator)
	if err != nil {
		return nil, err
	}
	idType, err := parseIDType(flagIDType)
	if err != nil {
		return nil, err
	}

	cfg := &bulk.Config{
		Graph:         graph,
		Separator:     sep,
		EnforceSchema: flagEnforceSchema,
		IDType:        idType,
		MaxTokenCount: flagMaxTokens,
	}

	for _, p := range flagNodes {
		cfg.Nodes = append(cfg.Nodes, bulk.FileSpec{Path: p})
	}
	for _, pair := range flagNodesLabeled {
		spec, err := parsePair(pair, "nodes-with-label")
		if err != nil {
			return nil, err
		}
		cfg.Nodes = append(cfg.Nodes, spec)
	}
	for _, p := range flagRelations {
		cfg.Relations = append(cfg.Relations, bulk.FileSpec{Path: p})
	}
	for _, pair := range flagRelationsTyped {
		spec, err := parsePair(pair, "relations-with-type")
		if err != nil {
			return nil, err
		}
		cfg.Relations = append(cfg.Relations, spec)
	}

	if cfg.Indices, err = parseIndexSpecs(flagIndices, "index"); err != nil {
		return nil, err
	}
	if cfg.FullTextIndices, err = parseIndexSpecs(flagFullText, "full-text-index"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseSeparator accepts a single character, with \t standing in for tab.
func parseSeparator(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("--separator must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func parseIDType(s string) (bulk.IDType, error) {
	switch s {
	case "string":
		return bulk.IDString, nil
	case "integer":
		return bulk.IDInteger, nil
	}
	return 0, fmt.Errorf("--id-type must be 'string' or 'integer', got %q", s)
}

// parsePair splits a NAME=PATH flag value.
func parsePair(pair, flag string) (bulk.FileSpec, error) {
	name, path, ok := strings.Cut(pair, "=")
	if !ok || name == "" || path == "" {
		return bulk.FileSpec{}, fmt.Errorf("--%s expects NAME=PATH, got %q", flag, pair)
	}
	return bulk.FileSpec{Name: name, Path: path}, nil
}

// parseIndexSpecs splits LABEL:PROPERTY flag values.
func parseIndexSpecs(pairs []string, flag string) ([]bulk.IndexSpec, error) {
	var specs []bulk.IndexSpec
	for _, pair := range pairs {
		label, prop, ok := strings.Cut(pair, ":")
		if !ok || label == "" || prop == "" {
			return nil, fmt.Errorf("--%s expects LABEL:PROPERTY, got %q", flag, pair)
		}
		specs = append(specs, bulk.IndexSpec{Label: label, Property: prop})
	}
	return specs, nil
}
