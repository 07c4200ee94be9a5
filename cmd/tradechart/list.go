package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/raykavin/tradechart/pkg/core"
	"github.com/raykavin/tradechart/pkg/indicator"
)

func buildTimeFramesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeframes",
		Short: "List the supported time frames",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Time Frame", "Width (ms)", "Duration"})

			for _, tf := range core.TimeFrames {
				width, err := core.TimeFrameWidth(tf)
				if err != nil {
					return err
				}
				table.Append([]string{tf, strconv.FormatInt(width, 10), (time.Duration(width) * time.Millisecond).String()})
			}

			table.Render()
			return nil
		},
	}
}

func buildIndicatorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indicators",
		Short: "List the bundled indicators",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Label", "Placement", "Render", "Arguments"})

			for _, kind := range indicator.Kinds() {
				args := make([]string, len(kind.Args))
				for i, arg := range kind.Args {
					args[i] = fmt.Sprintf("%s=%g", arg.Label, arg.Default)
				}
				table.Append([]string{kind.ID, kind.Label, string(kind.Placement), string(kind.RenderType), strings.Join(args, ", ")})
			}

			table.Render()
			return nil
		},
	}
}
