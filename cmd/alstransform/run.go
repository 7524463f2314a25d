package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/alsatian-transform/pkg/corpus"
	"github.com/hazyhaar/alsatian-transform/pkg/dict"
	"github.com/hazyhaar/alsatian-transform/pkg/ledger"
	"github.com/hazyhaar/alsatian-transform/pkg/tokenize"
	"github.com/hazyhaar/alsatian-transform/pkg/transform"
)

// corpusFlags are shared by the rules and vocab commands.
type corpusFlags struct {
	output      string
	corpus      string
	wrap        int
	onMalformed string
}

func (f *corpusFlags) register(c *cobra.Command, wrapHelp string) {
	c.Flags().StringVarP(&f.output, "output", "o", "", "Output CSV file (required)")
	c.Flags().StringVar(&f.corpus, "corpus", "", "Input corpus (default from config corpus_path)")
	c.Flags().IntVar(&f.wrap, "wrap", 0, wrapHelp)
	c.Flags().StringVar(&f.onMalformed, "on-malformed", "", "abort|skip for lines without a text field (default from config)")
	_ = c.MarkFlagRequired("output")
}

// resolve fills unset flags from configuration.
func (f *corpusFlags) resolve(c *cobra.Command, a *app, wrapDefault int) (corpus.Options, error) {
	if f.corpus == "" {
		f.corpus = a.cfg.CorpusPath
	}
	if !c.Flags().Changed("wrap") {
		f.wrap = wrapDefault
	}
	if f.wrap < 0 {
		return corpus.Options{}, fmt.Errorf("--wrap must be >= 0 (got %d)", f.wrap)
	}
	raw := f.onMalformed
	if raw == "" {
		raw = a.cfg.OnMalformed
	}
	policy, err := corpus.ParsePolicy(raw)
	if err != nil {
		return corpus.Options{}, err
	}
	return corpus.Options{WrapWidth: f.wrap, OnMalformed: policy, Logger: &a.log}, nil
}

func rulesCmd(a *app) *cobra.Command {
	var (
		dictionary string
		minCount   int
		foldCase   bool
		flags      corpusFlags
	)

	c := &cobra.Command{
		Use:   "rules",
		Short: "Rewrite the corpus with frequency-filtered spelling rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.resolve(cmd, a, 0)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("min-count") {
				minCount = a.cfg.MinRuleCount
			}
			if !cmd.Flags().Changed("fold-case") {
				foldCase = a.cfg.FoldRuleCase
			}

			table, err := dict.LoadRuleTable(dictionary, dict.RuleOptions{
				MinCount: minCount,
				FoldCase: foldCase,
				Logger:   &a.log,
			})
			if err != nil {
				return err
			}
			a.log.Info().Str("dictionary", dictionary).Int("targets", table.Len()).Msg("rule table loaded")

			p := corpus.NewProcessor(tokenize.NewRegExp(), transform.NewRules(table, nil), opts)
			return a.runCorpus(p, flags, ledger.Run{
				Mode:      "rules",
				TablePath: dictionary,
				TableSize: table.Len(),
			})
		},
	}

	c.Flags().StringVarP(&dictionary, "dictionary", "d", "", "Rule file (source<TAB>target<TAB>count) or compiled table directory (required)")
	c.Flags().IntVar(&minCount, "min-count", dict.DefaultMinRuleCount, "Minimum occurrence count for a rule (default from config)")
	c.Flags().BoolVar(&foldCase, "fold-case", false, "Match rule patterns case-insensitively (default from config)")
	flags.register(c, "Wrap output text at this width, 0 disables")
	_ = c.MarkFlagRequired("dictionary")
	return c
}

func vocabCmd(a *app) *cobra.Command {
	var (
		vocabulary string
		language   string
		threshold  float64
		flags      corpusFlags
	)

	c := &cobra.Command{
		Use:   "vocab",
		Short: "Rewrite the corpus word by word from an aligned vocabulary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.resolve(cmd, a, a.cfg.WrapWidth)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.SimilarityThreshold
			}

			lang, err := dict.ParseLanguage(language)
			if err != nil {
				// An unknown language leaves the table absent: tokens are only
				// accent-folded.
				a.log.Warn().Str("language", language).Msg("unsupported language, continuing without vocabulary")
			}
			table, err := dict.LoadVocabTable(vocabulary, dict.VocabOptions{
				Language:  lang,
				Threshold: threshold,
				Logger:    &a.log,
			})
			if err != nil && !errors.Is(err, dict.ErrUnsupportedLanguage) {
				return err
			}
			a.log.Info().Str("vocabulary", vocabulary).Int("entries", table.Len()).Msg("vocabulary table loaded")

			p := corpus.NewProcessor(tokenize.NewRegExp(), transform.NewVocabulary(table, dict.AccentFolder(lang)), opts)
			return a.runCorpus(p, flags, ledger.Run{
				Mode:      "vocab",
				Language:  language,
				TablePath: vocabulary,
				TableSize: table.Len(),
			})
		},
	}

	c.Flags().StringVarP(&vocabulary, "vocabulary", "v", "", "Aligned vocabulary file or compiled table directory (required)")
	c.Flags().StringVarP(&language, "language", "l", "", "Target language: de|ltz (required)")
	c.Flags().Float64Var(&threshold, "threshold", 0, "Reject translations below this similarity ratio, 0 disables (default from config)")
	flags.register(c, "Wrap output text at this width, 0 disables (default from config wrap_width)")
	_ = c.MarkFlagRequired("vocabulary")
	_ = c.MarkFlagRequired("language")
	return c
}

// runCorpus runs p over the configured corpus and records the run in the
// ledger when one is configured.
func (a *app) runCorpus(p *corpus.Processor, flags corpusFlags, run ledger.Run) error {
	var (
		lg    *ledger.Ledger
		runID string
		err   error
	)
	if a.cfg.LedgerPath != "" {
		lg, err = ledger.Open(a.cfg.LedgerPath)
		if err != nil {
			return err
		}
		defer lg.Close()

		run.Corpus, run.Output = flags.corpus, flags.output
		if runID, err = lg.Start(run); err != nil {
			return err
		}
	}

	st, runErr := p.RunFiles(flags.corpus, flags.output)

	if lg != nil {
		if err := lg.Finish(runID, st.Rows, st.Skipped, runErr); err != nil {
			a.log.Error().Err(err).Str("run_id", runID).Msg("ledger update failed")
		}
	}
	if runErr != nil {
		return runErr
	}

	a.log.Info().
		Str("output", flags.output).
		Int("rows", st.Rows).
		Int("skipped", st.Skipped).
		Str("run_id", runID).
		Msg("corpus transformed")
	return nil
}
