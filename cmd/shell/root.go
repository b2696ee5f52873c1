package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ValentinKolb/tKV/cmd/util"
	"github.com/ValentinKolb/tKV/lib/command"
	"github.com/ValentinKolb/tKV/lib/store"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
)

var (
	log = logger.GetLogger("shell")

	ShellCmd = &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive tKV shell",
		Long: `Start an interactive shell that reads commands line by line from stdin (or --input) and writes the results to stdout.

Commands:
  GET <key>
  SET <key> <type> <value>   (type: str, int, float, bool)
  DEL <key>
  TYPE <key>
  DEBUG
  INFO

The configuration can be set via command line flags or environment variables. The format of the environment variables is TKV_<flag> (e.g. TKV_LOG_LEVEL=debug)`,
		RunE: RunE,
	}
)

func init() {
	SetupShellFlags(ShellCmd)
}

// SetupShellFlags adds the shell flags to a command
func SetupShellFlags(cmd *cobra.Command) {
	key := "prompt"
	cmd.Flags().String(key, "", util.WrapString("Prompt written before every line is read (empty = no prompt)"))

	key = "input"
	cmd.Flags().String(key, "", util.WrapString("Read commands from this file instead of stdin"))

	key = "metrics-out"
	cmd.Flags().String(key, "", util.WrapString("Write the store metrics in Prometheus text format to this file on exit ('-' = stderr)"))
}

// RunE runs the shell with the configuration read from viper
func RunE(_ *cobra.Command, _ []string) error {
	conf := util.GetConfig()
	log.Infof("starting shell with configuration:\n%s", conf.String())

	in := io.Reader(os.Stdin)
	if conf.Input != "" {
		file, err := os.Open(conf.Input)
		if err != nil {
			return fmt.Errorf("could not open input file: %w", err)
		}
		defer file.Close()
		in = file
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := util.NewStore(conf)
	runErr := Run(ctx, in, os.Stdout, s, command.NewProcessor(), conf.Prompt)

	if conf.MetricsOut != "" {
		if err := writeMetrics(s, conf.MetricsOut); err != nil {
			log.Errorf("could not write metrics: %v", err)
		}
	}

	return runErr
}

// Run reads lines from in, executes them with p against s and writes the output to out.
// It returns nil at the end of the input or when ctx is cancelled.
func Run(ctx context.Context, in io.Reader, out io.Writer, s store.IStore, p *command.Processor, prompt string) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	// reading blocks on the reader, so it runs in its own goroutine to keep ctx responsive
	go func() {
		defer close(lines)
		reader := bufio.NewReader(in)
		for {
			// lines have no length limit, string values may be arbitrarily large
			line, err := reader.ReadString('\n')
			if line != "" {
				select {
				case lines <- strings.TrimRight(line, "\r\n"):
				case <-ctx.Done():
					readErr <- nil
					return
				}
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					err = nil
				}
				readErr <- err
				return
			}
		}
	}()

	w := bufio.NewWriter(out)
	defer w.Flush()

	for {
		if prompt != "" {
			if _, err := w.WriteString(prompt); err != nil {
				return err
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			log.Infof("shell stopped: %v", ctx.Err())
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("could not read input: %w", err)
				}
				log.Debugf("end of input")
				return nil
			}
			for _, result := range p.Process(s, line) {
				if _, err := fmt.Fprintln(w, result); err != nil {
					return err
				}
			}
		}
	}
}

// writeMetrics dumps the metrics of s to path ("-" = stderr)
func writeMetrics(s store.IStore, path string) error {
	writer, ok := s.(store.IMetricsWriter)
	if !ok {
		return fmt.Errorf("store does not record metrics")
	}

	if path == "-" {
		writer.WritePrometheus(os.Stderr)
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	writer.WritePrometheus(file)
	return file.Close()
}
