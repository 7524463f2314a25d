package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/hazyhaar/alsatian-transform/pkg/api"
	"github.com/hazyhaar/alsatian-transform/pkg/dict"
	"github.com/hazyhaar/alsatian-transform/pkg/kit"
	"github.com/hazyhaar/alsatian-transform/pkg/tokenize"
)

// version is reported to MCP clients.
var version = "dev"

// tableFlags select the tables a long-running command serves.
type tableFlags struct {
	dictionary string
	vocabulary string
	language   string
	foldCase   bool
}

func (f *tableFlags) register(c *cobra.Command) {
	c.Flags().StringVarP(&f.dictionary, "dictionary", "d", "", "Rule file or compiled table directory")
	c.Flags().StringVarP(&f.vocabulary, "vocabulary", "v", "", "Aligned vocabulary file or compiled table directory")
	c.Flags().StringVarP(&f.language, "language", "l", "de", "Vocabulary target language: de|ltz")
	c.Flags().BoolVar(&f.foldCase, "fold-case", false, "Match rule patterns case-insensitively (default from config)")
}

// loadRegistry builds the registry and the endpoint service shared by the
// HTTP and MCP transports.
func (a *app) loadRegistry(c *cobra.Command, f tableFlags) (*api.Service, error) {
	if f.dictionary == "" && f.vocabulary == "" {
		return nil, errors.New("at least one of --dictionary or --vocabulary is required")
	}
	if !c.Flags().Changed("fold-case") {
		f.foldCase = a.cfg.FoldRuleCase
	}
	var lang dict.Language
	if f.vocabulary != "" {
		var err error
		if lang, err = dict.ParseLanguage(f.language); err != nil {
			return nil, err
		}
	}

	reg := dict.NewRegistry(dict.Sources{
		RulesPath: f.dictionary,
		VocabPath: f.vocabulary,
		Rules: dict.RuleOptions{
			MinCount: a.cfg.MinRuleCount,
			FoldCase: f.foldCase,
			Logger:   &a.log,
		},
		Vocab: dict.VocabOptions{
			Language:  lang,
			Threshold: a.cfg.SimilarityThreshold,
			Logger:    &a.log,
		},
	})
	if err := reg.Load(); err != nil {
		return nil, err
	}
	a.log.Info().Int("tables", len(reg.ListTables())).Int("entries", reg.TotalEntries()).Msg("tables loaded")

	return &api.Service{
		Registry:  reg,
		Tokenizer: tokenize.NewRegExp(),
		WrapWidth: a.cfg.WrapWidth,
		Logger:    &a.log,
	}, nil
}

// reloadOnHUP rebuilds the tables on every SIGHUP until ctx is done.
func (a *app) reloadOnHUP(ctx context.Context, reg *dict.Registry) {
	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		defer signal.Stop(sighup)
		for {
			select {
			case <-sighup:
				a.log.Info().Msg("SIGHUP received, reloading tables")
				if err := reg.Reload(); err != nil {
					a.log.Error().Err(err).Msg("reload failed")
				} else {
					a.log.Info().Int("entries", reg.TotalEntries()).Msg("tables reloaded")
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

func serveCmd(a *app) *cobra.Command {
	var (
		addr   string
		tables tableFlags
	)

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the transform API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.loadRegistry(cmd, tables)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.HTTPAddr
			}

			// SIGHUP: hot reload tables.
			// SIGINT/SIGTERM: graceful shutdown.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			a.reloadOnHUP(ctx, svc.Registry)

			srv := &http.Server{
				Addr:              addr,
				Handler:           api.NewRouter(svc),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errc := make(chan error, 1)
			go func() {
				a.log.Info().Str("addr", addr).Msg("http listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errc <- err
				}
				close(errc)
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			a.log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	c.Flags().StringVar(&addr, "addr", "", "Listen address (default from config http_addr)")
	tables.register(c)
	return c
}

func mcpCmd(a *app) *cobra.Command {
	var (
		listen string
		tables tableFlags
	)

	c := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the transform tools over MCP (stdio by default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.loadRegistry(cmd, tables)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			a.reloadOnHUP(ctx, svc.Registry)

			srv := server.NewMCPServer("alstransform", version, server.WithToolCapabilities(false))
			api.RegisterMCPTools(srv, svc)
			h := kit.NewStreamHandler(srv, &a.log)

			if listen == "" {
				return h.ServeStream(ctx, "stdio", cmd.InOrStdin(), cmd.OutOrStdout())
			}
			l, err := net.Listen("tcp", listen)
			if err != nil {
				return err
			}
			a.log.Info().Str("addr", l.Addr().String()).Msg("MCP listening")
			if err := h.ServeListener(ctx, l); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	c.Flags().StringVar(&listen, "listen", "", "Serve MCP over TCP at this address instead of stdio")
	tables.register(c)
	return c
}
