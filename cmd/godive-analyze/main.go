package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/godivelog/godive/pkg/godive"
)

var (
	rootCmd = &cobra.Command{
		Use:   "godive-analyze [hex]",
		Short: "Decode dive-computer memory dumps",
		Long:  "godive-analyze decodes raw dive-computer dumps using the godive library.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			opts := godive.AnalyzeOptions{
				Family: family,
				Logger: logrus.NewEntry(logrus.StandardLogger()),
			}
			ctx := cmd.Context()
			if len(args) == 0 {
				return runInteractive(ctx, opts)
			}
			return runAnalyze(ctx, opts, args[0])
		},
	}

	family      string
	showSamples bool
	verbose     bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&family, "family", "", "force a driver family instead of probing (e.g. cressi_goa)")
	rootCmd.PersistentFlags().BoolVar(&showSamples, "samples", false, "print the decoded sample stream")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

func runInteractive(ctx context.Context, opts godive.AnalyzeOptions) error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	logrus.Info("godive analyze mode. Paste a hex dump and press Enter (Ctrl+D to exit).")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runAnalyze(ctx, opts, line); err != nil {
			logrus.WithError(err).Error("failed to decode dump")
		}
	}
	return scanner.Err()
}

func runAnalyze(ctx context.Context, opts godive.AnalyzeOptions, hex string) error {
	result, err := godive.AnalyzeHexWithOptions(ctx, hex, opts)
	if err != nil {
		return err
	}
	fmt.Println(result.String())
	if showSamples {
		for _, s := range result.Samples {
			fmt.Println(s)
		}
	}
	return nil
}
