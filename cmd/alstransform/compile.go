package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/alsatian-transform/pkg/dict"
)

func compileCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "compile",
		Short: "Build a table once and save it as data.gob + manifest.yaml",
	}
	c.AddCommand(compileRulesCmd(a), compileVocabCmd(a))
	return c
}

// localSource returns a readable path for src, downloading it first when it
// is a URL. A missing local file is an error: compiling an empty table is
// never what the caller wants. cleanup removes any download.
func localSource(ctx context.Context, src string) (path string, cleanup func(), err error) {
	cleanup = func() {}
	if !isRemote(src) {
		if _, err := os.Stat(src); err != nil {
			return "", cleanup, fmt.Errorf("table source: %w", err)
		}
		return src, cleanup, nil
	}

	dir, err := os.MkdirTemp("", "alstransform-fetch-")
	if err != nil {
		return "", cleanup, err
	}
	cleanup = func() { os.RemoveAll(dir) }
	path, err = fetchSource(ctx, src, dir)
	if err != nil {
		cleanup()
		return "", func() {}, err
	}
	return path, cleanup, nil
}

func compileRulesCmd(a *app) *cobra.Command {
	var (
		dictionary string
		output     string
		minCount   int
	)

	c := &cobra.Command{
		Use:   "rules",
		Short: "Compile a rule file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, cleanup, err := localSource(cmd.Context(), dictionary)
			if err != nil {
				return err
			}
			defer cleanup()
			if !cmd.Flags().Changed("min-count") {
				minCount = a.cfg.MinRuleCount
			}
			table, err := dict.LoadRuleTable(path, dict.RuleOptions{MinCount: minCount, Logger: &a.log})
			if err != nil {
				return err
			}
			if err := dict.SaveRuleTable(table, output, dictionary, minCount); err != nil {
				return err
			}
			a.log.Info().Str("dir", output).Int("targets", table.Len()).Msg("rule table compiled")
			return nil
		},
	}

	c.Flags().StringVarP(&dictionary, "dictionary", "d", "", "Rule file or http(s) URL (required)")
	c.Flags().StringVarP(&output, "output", "o", "", "Output directory (required)")
	c.Flags().IntVar(&minCount, "min-count", dict.DefaultMinRuleCount, "Minimum occurrence count for a rule (default from config)")
	_ = c.MarkFlagRequired("dictionary")
	_ = c.MarkFlagRequired("output")
	return c
}

func compileVocabCmd(a *app) *cobra.Command {
	var (
		vocabulary string
		output     string
		language   string
		threshold  float64
	)

	c := &cobra.Command{
		Use:   "vocab",
		Short: "Compile an aligned vocabulary for one target language",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lang, err := dict.ParseLanguage(language)
			if err != nil {
				return err
			}
			path, cleanup, err := localSource(cmd.Context(), vocabulary)
			if err != nil {
				return err
			}
			defer cleanup()
			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.SimilarityThreshold
			}
			table, err := dict.LoadVocabTable(path, dict.VocabOptions{
				Language:  lang,
				Threshold: threshold,
				Logger:    &a.log,
			})
			if err != nil {
				return err
			}
			if err := dict.SaveVocabTable(table, output, vocabulary, threshold); err != nil {
				return err
			}
			a.log.Info().Str("dir", output).Str("language", string(lang)).Int("entries", table.Len()).Msg("vocabulary compiled")
			return nil
		},
	}

	c.Flags().StringVarP(&vocabulary, "vocabulary", "v", "", "Aligned vocabulary file or http(s) URL (required)")
	c.Flags().StringVarP(&output, "output", "o", "", "Output directory (required)")
	c.Flags().StringVarP(&language, "language", "l", "", "Target language: de|ltz (required)")
	c.Flags().Float64Var(&threshold, "threshold", 0, "Reject translations below this similarity ratio (default from config)")
	_ = c.MarkFlagRequired("vocabulary")
	_ = c.MarkFlagRequired("output")
	_ = c.MarkFlagRequired("language")
	return c
}
