package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/gmodtools/gmollama/bridge"
	"github.com/gmodtools/gmollama/pkg/llm"
	"github.com/gmodtools/gmollama/pkg/logger"
)

// tickInterval approximates a game tick (66 ticks/s is the GMod default).
const tickInterval = 15 * time.Millisecond

type rootCommander struct {
	url        string
	timeout    float64
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	cmder := &rootCommander{}

	cmd := &cobra.Command{
		Use:           "gmollama",
		Short:         "Exercise the Ollama bridge from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cmder.url, "url", "u", bridge.DefaultBaseURL, "Ollama base URL")
	flags.Float64VarP(&cmder.timeout, "timeout", "t", bridge.DefaultTimeout.Seconds(), "Request timeout in seconds")
	flags.StringVarP(&cmder.configPath, "config", "c", "", "Path to a TOML config file (overrides --url/--timeout)")
	flags.BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(
		newGenerateCmd(cmder),
		newChatCmd(cmder),
		newModelsCmd(cmder),
		newShowCmd(cmder),
		newAvailableCmd(cmder),
		newPSCmd(cmder),
		newEmbedCmd(cmder),
		newStatusCmd(cmder),
	)

	return cmd
}

// newBridge builds a configured bridge for one command invocation.
func (c *rootCommander) newBridge() (*bridge.Bridge, error) {
	b := bridge.New(logger.New(c.debug))

	if c.configPath != "" {
		cfg, err := bridge.LoadConfigFile(c.configPath)
		if err != nil {
			return nil, err
		}
		b.ApplyConfig(cfg)
		return b, nil
	}

	b.SetConfig(c.url, c.timeout)
	return b, nil
}

// runCall plays the host loop for a single request: issue, then drain
// completed calls every tick until the callback lands.
func runCall(b *bridge.Bridge, issue func(cb bridge.Callback)) (llm.Payload, error) {
	type outcome struct {
		payload llm.Payload
		err     error
	}
	done := make(chan outcome, 1)

	issue(func(err error, data llm.Payload) {
		done <- outcome{payload: data, err: err}
	})

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case out := <-done:
			return out.payload, out.err
		case <-ticker.C:
			b.Tick()
		}
	}
}

var errUnexpectedPayload = errors.New("unexpected payload type")
