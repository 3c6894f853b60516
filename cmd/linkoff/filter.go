// ABOUTME: The filter subcommand applying settings to a saved page or a feed
// ABOUTME: Writes the annotated page and prints which items were hidden and why

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"linkoff-engine/core/domain"
	"linkoff-engine/infrastructure/settings/file"
	"linkoff-engine/infrastructure/settings/memory"
	"linkoff-engine/linkoff"
)

type filterOptions struct {
	pageURL  string
	feed     string
	ticks    int
	outPath  string
	settings string
	set      []string
	asJSON   bool
	logLevel string
}

func runFilter(args []string, out io.Writer) error {
	var opts filterOptions
	flagSet := pflag.NewFlagSet("filter", pflag.ContinueOnError)
	flagSet.StringVar(&opts.pageURL, "url", domain.HomeFeedURL, "address the page was saved from")
	flagSet.StringVar(&opts.feed, "feed", "", "RSS, Atom or JSON feed to filter instead of a page (URL or file)")
	flagSet.IntVar(&opts.ticks, "ticks", 1, "scan passes to run")
	flagSet.StringVarP(&opts.outPath, "out", "o", "", "write the annotated page here")
	flagSet.StringVar(&opts.settings, "settings", "", "JSON settings file, comments allowed")
	flagSet.StringArrayVar(&opts.set, "set", nil, "override one setting, key=value (repeatable)")
	flagSet.BoolVar(&opts.asJSON, "json", false, "print the report as JSON")
	flagSet.StringVar(&opts.logLevel, "log-level", "", "log to stderr at this level")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	var page string
	switch rest := flagSet.Args(); {
	case opts.feed == "" && len(rest) == 1:
		page = rest[0]
	case opts.feed != "" && len(rest) == 0:
	default:
		return errors.New("filter needs exactly one page file or --feed")
	}
	if opts.ticks < 1 {
		return errors.New("--ticks must be at least 1")
	}

	ctx := context.Background()
	report, html, err := filterPage(ctx, opts, page)
	if err != nil {
		return err
	}

	if opts.outPath != "" {
		if err := os.WriteFile(opts.outPath, []byte(html), 0o644); err != nil {
			return fmt.Errorf("write page: %w", err)
		}
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return printReport(out, report)
}

// filterPage runs the engine over one page or feed and returns the report
// and the annotated markup.
func filterPage(ctx context.Context, opts filterOptions, page string) (*linkoff.Report, string, error) {
	seed, err := seedSettings(ctx, opts.settings, opts.set)
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadConfig("")
	if err != nil {
		return nil, "", err
	}
	engineCfg, err := engineConfig(cfg, true)
	if err != nil {
		return nil, "", err
	}

	logger := linkoff.QuietLogger()
	if opts.logLevel != "" {
		logger = linkoff.DefaultLogger(opts.logLevel)
	}

	client, err := linkoff.NewClient(
		linkoff.WithStore(memory.NewStore(seed)),
		linkoff.WithLogger(logger),
		linkoff.WithEngineConfig(engineCfg),
	)
	if err != nil {
		return nil, "", err
	}
	defer client.Close()

	if err := loadInput(ctx, client, opts, page); err != nil {
		return nil, "", err
	}
	for i := 0; i < opts.ticks; i++ {
		if err := client.Tick(ctx); err != nil {
			return nil, "", err
		}
	}

	report, err := client.Report(ctx)
	if err != nil {
		return nil, "", err
	}
	return report, client.HTML(), nil
}

func loadInput(ctx context.Context, client *linkoff.Client, opts filterOptions, page string) error {
	if opts.feed != "" {
		if isRemote(opts.feed) {
			fetchCtx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()
			return client.LoadFeed(fetchCtx, opts.feed)
		}
		f, err := os.Open(opts.feed)
		if err != nil {
			return fmt.Errorf("open feed: %w", err)
		}
		defer f.Close()
		return client.LoadFeedData(ctx, "file://"+opts.feed, f)
	}

	f, err := os.Open(page)
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}
	defer f.Close()
	return client.LoadDocument(ctx, opts.pageURL, f)
}

// seedSettings reads the settings file, if any, and applies the overrides
// on top. The file is never written.
func seedSettings(ctx context.Context, path string, overrides []string) (map[string]any, error) {
	seed := map[string]any{}
	if path != "" {
		stored, err := file.NewStore(path).Get(ctx, domain.DefaultKeys())
		if err != nil {
			return nil, err
		}
		seed = stored
	}

	values, err := parseSettings(overrides)
	if err != nil {
		return nil, err
	}
	for k, v := range values {
		seed[k] = v
	}
	return seed, nil
}

func printReport(w io.Writer, report *linkoff.Report) error {
	fmt.Fprintf(w, "%s (%s mode): %d hidden, %d shown, %d pending\n\n",
		report.URL, report.Mode, report.Hidden, report.Shown, report.Pending)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SURFACE\tID\tSTATE\tRULE\tEXCERPT")
	for _, item := range report.Items {
		rule := item.MatchedBy
		if rule == "" {
			rule = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			item.Surface, item.ID, item.State, rule, oneLine(item.Excerpt, 60))
	}
	return tw.Flush()
}

func isRemote(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func oneLine(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit-3]) + "..."
	}
	return s
}
