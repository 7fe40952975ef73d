// mudcat is a minimal line-mode MUD client: it dials a telnet server,
// negotiates the usual MUD options, and bridges stdin/stdout.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mudproto/telnet"
)

var (
	charsetName  string
	terminalType string
	debug        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "mudcat host:port",
		Short:   "Line-mode telnet MUD client",
		Version: "0.1.0",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0])
		},
	}

	rootCmd.Flags().StringVar(&charsetName, "charset", "UTF-8", "default character set")
	rootCmd.Flags().StringVar(&terminalType, "term", "mudcat", "terminal type to report")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "trace protocol negotiation")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogger() *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
		Level:   level,
	}))
}

func run(ctx context.Context, address string) error {
	logger := setupLogger()
	slog.SetDefault(logger)

	charset, err := telnet.NewCharset(charsetName, []string{"UTF-8", charsetName, "US-ASCII"})
	if err != nil {
		return fmt.Errorf("invalid charset %q: %w", charsetName, err)
	}

	conn, err := net.Dial("tcp", address)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)

	client, err := telnet.NewClient(conn, telnet.Config{
		DefaultTerminalType: terminalType,
		Codec:               charset,
		Logger:              logger,
		Debug:               debug,
		Hooks: telnet.EventHooks{
			IncomingData: func(data []byte, goAhead bool) {
				text, err := charset.Decode(data)
				if err != nil {
					logger.Warn("undecodable text", "error", err)
					return
				}
				out.WriteString(text)
				if goAhead {
					out.WriteByte('\n')
				}
				out.Flush()
			},
			RemoteEcho: func(enabled bool) {
				logger.Debug("remote echo", "enabled", enabled)
			},
			GMCPMessage: func(msg telnet.GMCPMessage) {
				logger.Debug("gmcp", "message", msg.String())
			},
			EncounteredError: func(err error) {
				logger.Warn("connection trouble", "error", err)
			},
		},
	})
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	client.SetWindowSize(80, 24)

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line, err := charset.Encode(scanner.Text() + "\r\n")
			if err != nil {
				logger.Warn("unencodable input", "error", err)
				continue
			}
			client.Send(line, true)
		}
	}()

	logger.Info("connected", "address", address)
	return client.Run(ctx)
}
