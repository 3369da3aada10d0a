package main

import (
	"encoding/json"

	"github.com/anatolykoptev/go_subtitles/internal/engine"
	"github.com/anatolykoptev/go_subtitles/internal/engine/sources"
	"github.com/anatolykoptev/go_subtitles/internal/toolutil"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <video id or URL>",
	Short: "Print the subtitles envelope for a video as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := engine.ConfigFromEnv()
		engine.AttachClients(cmd.Context(), &c)
		engine.Init(c)

		p, err := sources.NewPipeline(cmd.Context(), engine.Cfg)
		if err != nil {
			return err
		}
		resp, err := p.Run(cmd.Context(), toolutil.NormVideoID(args[0]))
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(resp)
	},
}
