// Command crofiler is a clang -ftime-trace profile viewer: a CLI
// wrapper around the trace, builddb, and tui packages.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stephenswat/crofiler"
	"github.com/stephenswat/crofiler/builddb"
	"github.com/stephenswat/crofiler/trace"
	"github.com/stephenswat/crofiler/tui"

	tea "github.com/charmbracelet/bubbletea"
)

var maxCols int

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	root := &cobra.Command{
		Use:   "crofiler",
		Short: "A clang -ftime-trace profile viewer",
	}
	root.PersistentFlags().IntVar(&maxCols, "max-cols", 0,
		"bound every rendered entity name to this many columns (default: terminal width, fallback 120)")

	root.AddCommand(flatCmd(), tuiCmd(), astCmd(), checkCmd())

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("crofiler failed")
	}
}

func resolveMaxCols() int {
	if maxCols > 0 {
		return maxCols
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 120
}

func flatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flat <trace.json>",
		Short: "Print self-time and direct-child-count flat profiles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := trace.Load(args[0])
			if err != nil {
				return err
			}
			cols := resolveMaxCols()

			fmt.Println("== Self time ==")
			selfRows := trace.FlatProfile(t, func(at trace.ActivityTrace) int64 {
				return at.SelfDuration().Microseconds()
			}, trace.FlatProfileOptions{Unit: "us", Threshold: 0.01})
			for _, row := range selfRows {
				fmt.Println(row.String(cols))
			}

			fmt.Println()
			fmt.Println("== Direct children ==")
			childRows := trace.FlatProfile(t, func(at trace.ActivityTrace) int {
				n := 0
				at.DirectChildren()(func(trace.ActivityTrace) bool { n++; return true })
				return n
			}, trace.FlatProfileOptions{Unit: "", Threshold: 0.01})
			for _, row := range childRows {
				fmt.Println(row.String(cols))
			}
			return nil
		},
	}
}

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui <trace.json>",
		Short: "Launch the interactive viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			worker := tui.NewWorker(args[0])
			defer worker.Close()

			model, err := tui.NewModel(worker)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}

func astCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <entity-name>",
		Short: "Parse one C++ entity name and print its parsed structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := crofiler.NewInterner()
			handle, err := crofiler.ParseEntity(in, args[0])
			if err != nil {
				return err
			}
			ref := crofiler.LookupEntity(in, handle)
			fmt.Println(ref.DumpTree())
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report freshness of every compile_commands.json entry's build product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			db, err := builddb.Load(dir)
			if err != nil {
				return err
			}
			for i, entry := range db.Entries() {
				fresh, err := db.OutputFreshness(i)
				if err != nil {
					fmt.Printf("%s: %v\n", entry.Input(), err)
					continue
				}
				switch fresh.Kind {
				case builddb.FreshnessNonexistent:
					fmt.Printf("%s: missing\n", entry.Input())
				case builddb.FreshnessOutdated:
					fmt.Printf("%s: outdated\n", entry.Input())
				case builddb.FreshnessMaybeOutdated:
					fmt.Printf("%s: ok (built %s after its input)\n", entry.Input(), fresh.Age)
				}
			}
			return nil
		},
	}
}
