package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gmodtools/gmollama/bridge"
	"github.com/gmodtools/gmollama/pkg/llm"
)

func newGenerateCmd(root *rootCommander) *cobra.Command {
	var system string

	cmd := &cobra.Command{
		Use:   "generate <model> <prompt>",
		Short: "Complete a prompt",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := root.newBridge()
			if err != nil {
				return err
			}

			payload, err := runCall(b, func(cb bridge.Callback) {
				b.Generate(args[0], args[1], system, cb)
			})
			if err != nil {
				return err
			}

			result, ok := payload.(*llm.GenerateResult)
			if !ok {
				return errUnexpectedPayload
			}
			fmt.Fprintln(cmd.OutOrStdout(), faintStyle.Render(result.Model))
			fmt.Fprintln(cmd.OutOrStdout(), result.Response)
			return nil
		},
	}

	cmd.Flags().StringVarP(&system, "system", "s", "", "System prompt override")
	return cmd
}

func newChatCmd(root *rootCommander) *cobra.Command {
	var system string

	cmd := &cobra.Command{
		Use:   "chat <model> <message>",
		Short: "Send a single-turn chat message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := root.newBridge()
			if err != nil {
				return err
			}

			var messages []llm.Message
			if system != "" {
				messages = append(messages, llm.Message{Role: "system", Content: system})
			}
			messages = append(messages, llm.Message{Role: "user", Content: args[1]})

			payload, err := runCall(b, func(cb bridge.Callback) {
				b.Chat(args[0], messages, cb)
			})
			if err != nil {
				return err
			}

			result, ok := payload.(*llm.ChatResult)
			if !ok {
				return errUnexpectedPayload
			}
			fmt.Fprintln(cmd.OutOrStdout(), faintStyle.Render(result.Model+" ("+result.Role+")"))
			fmt.Fprintln(cmd.OutOrStdout(), result.Content)
			return nil
		},
	}

	cmd.Flags().StringVarP(&system, "system", "s", "", "System prompt")
	return cmd
}

func newModelsCmd(root *rootCommander) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List installed models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := root.newBridge()
			if err != nil {
				return err
			}

			payload, err := runCall(b, func(cb bridge.Callback) {
				b.ListModels(cb)
			})
			if err != nil {
				return err
			}

			list, ok := payload.(*llm.ModelList)
			if !ok {
				return errUnexpectedPayload
			}
			fmt.Fprint(cmd.OutOrStdout(), renderModels(list.Models))
			return nil
		},
	}
}

func newShowCmd(root *rootCommander) *cobra.Command {
	return &cobra.Command{
		Use:   "show <model>",
		Short: "Show a model's license, modelfile, parameters and template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := root.newBridge()
			if err != nil {
				return err
			}

			payload, err := runCall(b, func(cb bridge.Callback) {
				b.GetModelInfo(args[0], cb)
			})
			if err != nil {
				return err
			}

			details, ok := payload.(*llm.ModelDetails)
			if !ok {
				return errUnexpectedPayload
			}
			fmt.Fprint(cmd.OutOrStdout(), renderDetails(details))
			return nil
		},
	}
}

func newAvailableCmd(root *rootCommander) *cobra.Command {
	return &cobra.Command{
		Use:   "available <model>",
		Short: "Check whether a model is installed locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := root.newBridge()
			if err != nil {
				return err
			}

			payload, err := runCall(b, func(cb bridge.Callback) {
				b.IsModelAvailable(args[0], cb)
			})
			if err != nil {
				return err
			}

			avail, ok := payload.(*llm.Availability)
			if !ok {
				return errUnexpectedPayload
			}
			if avail.Available {
				fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(avail.Model+" is available"))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), badStyle.Render(avail.Model+" is not installed"))
			}
			return nil
		},
	}
}

func newPSCmd(root *rootCommander) *cobra.Command {
	return &cobra.Command{
		Use:   "ps",
		Short: "List models currently loaded in memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := root.newBridge()
			if err != nil {
				return err
			}

			payload, err := runCall(b, func(cb bridge.Callback) {
				b.GetRunningModels(cb)
			})
			if err != nil {
				return err
			}

			list, ok := payload.(*llm.RunningModelList)
			if !ok {
				return errUnexpectedPayload
			}
			fmt.Fprint(cmd.OutOrStdout(), renderRunningModels(list.Models))
			return nil
		},
	}
}

func newEmbedCmd(root *rootCommander) *cobra.Command {
	return &cobra.Command{
		Use:   "embed <model> <input>...",
		Short: "Embed one or more inputs",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := root.newBridge()
			if err != nil {
				return err
			}

			// One input goes over the wire as a plain string, several as an
			// array; the bridge picks the shape from the Go type.
			var input any
			if len(args) == 2 {
				input = args[1]
			} else {
				input = args[1:]
			}

			payload, err := runCall(b, func(cb bridge.Callback) {
				b.GenerateEmbeddings(args[0], input, cb)
			})
			if err != nil {
				return err
			}

			result, ok := payload.(*llm.EmbeddingsResult)
			if !ok {
				return errUnexpectedPayload
			}
			fmt.Fprintln(cmd.OutOrStdout(), faintStyle.Render(result.Model))
			for i, vec := range result.Embeddings {
				fmt.Fprintf(cmd.OutOrStdout(), "[%d] %d dimensions, first values %v\n", i+1, len(vec), head(vec, 4))
			}
			return nil
		},
	}
}

func newStatusCmd(root *rootCommander) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report cached server reachability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := root.newBridge()
			if err != nil {
				return err
			}

			b.Start()
			defer b.Close()

			// Give the first probe a moment to land; IsRunning itself never
			// waits on the network.
			deadline := time.Now().Add(5 * time.Second)
			for b.LastProbe().IsZero() && time.Now().Before(deadline) {
				time.Sleep(tickInterval)
			}

			cfg := b.Config()
			fmt.Fprintln(cmd.OutOrStdout(), "server:  "+cfg.BaseURL)
			fmt.Fprintln(cmd.OutOrStdout(), "timeout: "+cfg.Timeout.String())
			if b.IsRunning() {
				fmt.Fprintln(cmd.OutOrStdout(), "status:  "+okStyle.Render("running"))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "status:  "+badStyle.Render("unreachable"))
			}
			return nil
		},
	}
}

func head(vec []float64, n int) []float64 {
	if len(vec) < n {
		return vec
	}
	return vec[:n]
}
