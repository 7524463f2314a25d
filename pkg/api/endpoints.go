package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hazyhaar/alsatian-transform/pkg/dict"
	"github.com/hazyhaar/alsatian-transform/pkg/kit"
	"github.com/hazyhaar/alsatian-transform/pkg/tokenize"
	"github.com/hazyhaar/alsatian-transform/pkg/transform"
)

// Transformation modes.
const (
	ModeRules = "rules"
	ModeVocab = "vocab"
)

// maxTextBytes bounds a single transform request.
const maxTextBytes = 32 * 1024

// Service bundles what the endpoints need. Tables are read from the registry
// on every call so a reload takes effect immediately.
type Service struct {
	Registry  *dict.Registry
	Tokenizer tokenize.Tokenizer
	WrapWidth int
	Logger    *zerolog.Logger
}

func (s *Service) logger() *zerolog.Logger {
	if s.Logger == nil {
		l := zerolog.Nop()
		return &l
	}
	return s.Logger
}

// Shared request/response types used by both HTTP and MCP transports.

type transformReq struct {
	Text string
	Mode string
}

type transformResponse struct {
	Mode   string   `json:"mode"`
	Text   string   `json:"text"`
	Tokens []string `json:"tokens"`
}

type tablesResponse struct {
	Tables []dict.TableInfo `json:"tables"`
}

func (s *Service) transformer(mode string) (transform.TokenTransformer, error) {
	switch mode {
	case ModeRules:
		return transform.NewRules(s.Registry.Rules(), nil), nil
	case ModeVocab:
		return transform.NewVocabulary(s.Registry.Vocab(), nil), nil
	default:
		return nil, fmt.Errorf("unknown mode %q (want %s or %s)", mode, ModeRules, ModeVocab)
	}
}

func transformEndpoint(s *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*transformReq)
		if len(req.Text) > maxTextBytes {
			return nil, fmt.Errorf("text too long (max %d bytes, got %d)", maxTextBytes, len(req.Text))
		}
		mode := strings.ToLower(strings.TrimSpace(req.Mode))
		if mode == "" {
			mode = ModeRules
		}
		tr, err := s.transformer(mode)
		if err != nil {
			return nil, err
		}

		tokens := transform.Apply(tr, s.Tokenizer.Tokenize(req.Text).Strings())
		return transformResponse{
			Mode:   mode,
			Text:   transform.Wrap(transform.Join(tokens), s.WrapWidth),
			Tokens: tokens,
		}, nil
	}
}

func listTablesEndpoint(s *Service) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		tables := s.Registry.ListTables()
		if tables == nil {
			tables = []dict.TableInfo{}
		}
		return tablesResponse{Tables: tables}, nil
	}
}
