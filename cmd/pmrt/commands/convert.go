package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/yosssi/gohtml"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/pmrt/internal/logger"
	"github.com/jmylchreest/pmrt/internal/output"
	"github.com/jmylchreest/pmrt/pkg/cleaner"
	"github.com/jmylchreest/pmrt/pkg/fetcher"
	"github.com/jmylchreest/pmrt/pkg/pmrt"
	"github.com/jmylchreest/pmrt/pkg/pmrt/dom"
)

var convertCmd = &cobra.Command{
	Use:   "convert [file|url|-]...",
	Short: "Convert HTML documents to text",
	Long: `Convert one or more HTML documents. Each argument is a file path, an
http(s) URL or "-" for stdin; with no arguments stdin is read.

Examples:
  pmrt convert message.html
  pmrt convert a.html b.html -o out.txt
  pmrt convert https://example.com --to markdown
  pmrt convert https://example.com/post --readability
  pmrt convert message.html --report json --stats
  pmrt convert message.html --dump-tree`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	convertCmd.Flags().String("to", "text", "output kind: text, markdown")
	convertCmd.Flags().String("report", "", "wrap results in a report: text, json, jsonl, yaml")
	convertCmd.Flags().Bool("stats", false, "print conversion statistics to stderr")
	convertCmd.Flags().IntP("concurrency", "j", 4, "number of inputs converted in parallel")
	convertCmd.Flags().Bool("dump-html", false, "print the prepared HTML instead of converting")
	convertCmd.Flags().Bool("dump-tree", false, "print the element tree instead of converting")
	convertCmd.Flags().Duration("timeout", 30*time.Second, "timeout for fetching URLs")
	convertCmd.Flags().Bool("readability", false, "keep only the main content of web pages")
	addConfigFlags(convertCmd)
}

// input is one document to convert.
type input struct {
	source string
	html   string
}

func runConvert(cmd *cobra.Command, args []string) error {
	initLogger()

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	outputFile, _ := cmd.Flags().GetString("output")
	to, _ := cmd.Flags().GetString("to")
	report, _ := cmd.Flags().GetString("report")
	showStats, _ := cmd.Flags().GetBool("stats")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	dumpHTML, _ := cmd.Flags().GetBool("dump-html")
	dumpTree, _ := cmd.Flags().GetBool("dump-tree")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	extract, _ := cmd.Flags().GetBool("readability")

	if to != "text" && to != "markdown" {
		return fmt.Errorf("invalid --to: %s (use 'text' or 'markdown')", to)
	}
	var format output.Format
	if report != "" {
		var err error
		if format, err = output.ParseFormat(report); err != nil {
			return err
		}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	conv := pmrt.New(cfg)

	if len(args) == 0 {
		args = []string{"-"}
	}
	inputs, err := readInputs(ctx, cmd.InOrStdin(), args, timeout)
	if err != nil {
		return err
	}
	if extract {
		if err := extractContent(inputs); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if outputFile != "" {
		f, err := os.Create(outputFile) //#nosec G304 -- output path from CLI flag
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if dumpHTML || dumpTree {
		return dump(conv, out, inputs, dumpTree)
	}

	var md cleaner.Cleaner
	if to == "markdown" {
		md = cleaner.NewChain(conv.Preparer(), cleaner.NewMarkdown())
	}

	records := make([]output.Record, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				records[i] = output.NewRecord(in.source, nil, err)
				return nil
			}
			records[i] = convertOne(conv, md, in)
			return nil
		})
	}
	_ = g.Wait()

	if showStats {
		for _, r := range records {
			if r.Stats != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "==> %s <==\n%s\n", r.Source, r.Stats)
			}
		}
	}

	if format == "" {
		format = output.FormatText
	}
	w, err := output.NewWriter(out, format)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range records {
		if r.Error != "" {
			failed++
			logger.Error("conversion failed", "source", r.Source, "error", r.Error)
		}
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(records))
	}
	return nil
}

func convertOne(conv *pmrt.Converter, md cleaner.Cleaner, in input) output.Record {
	if md != nil {
		text, err := md.Clean(in.html)
		if err != nil {
			return output.NewRecord(in.source, nil, err)
		}
		return output.Record{Source: in.source, Content: text}
	}

	result, err := conv.ConvertWithStats(in.html)
	if err == nil {
		for _, w := range result.Warnings {
			logger.Warn("conversion warning", "source", in.source, "warning", w.String())
		}
		logger.Debug("converted", "source", in.source,
			"input", humanize.Bytes(uint64(result.Stats.InputBytes)),
			"output", humanize.Bytes(uint64(result.Stats.OutputBytes)))
	}
	return output.NewRecord(in.source, result, err)
}

func dump(conv *pmrt.Converter, w io.Writer, inputs []input, tree bool) error {
	for i, in := range inputs {
		if len(inputs) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "==> %s <==\n", in.source)
		}
		if tree {
			t, err := conv.Tree(in.html)
			if err != nil {
				return fmt.Errorf("%s: %w", in.source, err)
			}
			fmt.Fprint(w, dom.Render(t))
			continue
		}
		prepared, err := conv.Prepared(in.html)
		if err != nil {
			return fmt.Errorf("%s: %w", in.source, err)
		}
		fmt.Fprintln(w, gohtml.Format(prepared))
	}
	return nil
}

// extractContent replaces each input with its main content.
func extractContent(inputs []input) error {
	for i, in := range inputs {
		var opts []cleaner.ReadabilityOption
		if isURL(in.source) {
			opts = append(opts, cleaner.WithBaseURL(in.source))
		}
		html, err := cleaner.NewReadability(opts...).Clean(in.html)
		if err != nil {
			return fmt.Errorf("%s: %w", in.source, err)
		}
		logger.Debug("extracted main content", "source", in.source,
			"before", humanize.Bytes(uint64(len(in.html))),
			"after", humanize.Bytes(uint64(len(html))))
		inputs[i].html = html
	}
	return nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// readInputs loads every argument. Reading stops at the first failure so a
// typo in a path is reported before any work is done.
func readInputs(ctx context.Context, stdin io.Reader, args []string, timeout time.Duration) ([]input, error) {
	var static *fetcher.StaticFetcher
	inputs := make([]input, 0, len(args))
	for _, arg := range args {
		switch {
		case arg == "-":
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("read stdin: %w", err)
			}
			inputs = append(inputs, input{source: "stdin", html: string(data)})

		case isURL(arg):
			if static == nil {
				static = fetcher.NewStatic(fetcher.StaticConfig{Timeout: timeout})
				defer func() { _ = static.Close() }()
			}
			content, err := static.Fetch(ctx, arg, fetcher.Options{Timeout: timeout})
			if err != nil {
				return nil, fmt.Errorf("fetch %s: %w", arg, err)
			}
			logger.Debug("fetched", "url", content.URL, "status", content.StatusCode,
				"size", humanize.Bytes(uint64(len(content.HTML))))
			inputs = append(inputs, input{source: arg, html: content.HTML})

		default:
			data, err := os.ReadFile(arg) //#nosec G304 -- input path from CLI argument
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", arg, err)
			}
			inputs = append(inputs, input{source: arg, html: string(data)})
		}
	}
	return inputs, nil
}
