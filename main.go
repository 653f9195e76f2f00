package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/prem1835/PeTaL/config"
	"github.com/prem1835/PeTaL/model"
	"github.com/prem1835/PeTaL/modeller"
)

var demoDocs = []string{
	"Brocolli is good to eat. My brother likes to eat good brocolli, but not my mother.",
	"My mother spends a lot of time driving my brother around to baseball practice.",
	"Some health experts suggest that driving may cause increased tension and blood pressure.",
	"I often feel pressure to perform well at school, but my mother never seems to drive my brother to do better.",
}

const demoQuery = "Health professionals say that brocolli is good for your health."

type options struct {
	configPath string
	topN       int
}

func addCommonFlags(fs *pflag.FlagSet, opts *options) {
	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	fs.IntVar(&opts.topN, "top-n", 0, "number of topic terms to report (0 keeps the configured value)")
}

// demoConfig mirrors the settings the demo corpus was tuned with.
func demoConfig() config.Config {
	cfg := config.Default()
	cfg.Model.NumTopics = 3
	cfg.Model.Passes = 20
	cfg.Model.Alpha = "auto"
	cfg.Model.MinimumProbability = 0.01
	cfg.Model.Decay = 0.5
	return cfg
}

func (o *options) load(fallback config.Config) (config.Config, error) {
	cfg := fallback
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if o.topN > 0 {
		cfg.TopN = o.topN
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "petal",
		Short:         "Classify documents into LDA topics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog reads its flags from the Go flag set
			return flag.CommandLine.Parse(nil)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout(), opts)
		},
	}
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	addCommonFlags(root.PersistentFlags(), opts)

	root.AddCommand(newDemoCmd(opts), newClassifyCmd(opts))
	return root
}

func newDemoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Train on the bundled documents and classify a health sentence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout(), opts)
		},
	}
}

func newClassifyCmd(opts *options) *cobra.Command {
	var trainPath, query string

	cmd := &cobra.Command{
		Use:   "classify [TEXT...]",
		Short: "Train on a file with one document per line, then classify a query",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				query = strings.Join(args, " ")
			}
			if query == "" {
				return fmt.Errorf("nothing to classify: pass --query or TEXT")
			}

			docs, err := readDocs(trainPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			cfg, err := opts.load(config.Default())
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), cfg, docs, query)
		},
	}
	cmd.Flags().StringVar(&trainPath, "train", "-", "training documents, one per line (- for stdin)")
	cmd.Flags().StringVar(&query, "query", "", "document to classify")
	return cmd
}

func runDemo(w io.Writer, opts *options) error {
	cfg, err := opts.load(demoConfig())
	if err != nil {
		return err
	}
	return run(w, cfg, demoDocs, demoQuery)
}

func run(w io.Writer, cfg config.Config, docs []string, query string) error {
	tm, err := modeller.New(cfg)
	if err != nil {
		return err
	}
	if err := tm.Update(docs); err != nil {
		return err
	}
	terms, err := tm.Classify(query)
	if err != nil {
		return err
	}
	printTerms(w, terms)
	return nil
}

func printTerms(w io.Writer, terms []model.TermWeight) {
	for _, tw := range terms {
		fmt.Fprintf(w, "%-20s %.4f\n", tw.Term, tw.Weight)
	}
}

// readDocs reads one document per non-blank line.
func readDocs(path string, stdin io.Reader) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open training file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var docs []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			docs = append(docs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read training documents: %w", err)
	}
	return docs, nil
}

func main() {
	defer log.Flush()

	if err := newRootCmd().Execute(); err != nil {
		log.Errorf("%v", err)
		fmt.Fprintln(os.Stderr, "petal:", err)
		log.Flush()
		os.Exit(1)
	}
}
