package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lyricdrop/internal/ipc"
)

func newTimelineCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show the current timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Timeline()
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, resp.Timeline)
				}
				printTimeline(cmd, resp.Timeline)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit timeline state as JSON")
	return cmd
}

func newActiveCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "active <time>",
		Short: "Show the lyric active at a point in time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseSeconds(args[0])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ActiveAt(at)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, resp)
				}
				out := cmd.OutOrStdout()
				if !resp.Found {
					fmt.Fprintf(out, "No lyric active at %s\n", formatClock(at))
					return nil
				}
				fmt.Fprintf(out, "%s - %s  %s\n",
					formatClock(resp.Segment.StartTime),
					formatClock(resp.Segment.EndTime),
					resp.Segment.Text)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the active segment as JSON")
	return cmd
}

func newPlayheadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "playhead <time>",
		Short: "Move the playhead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseSeconds(args[0])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.PlayheadSet(at)
				if err != nil {
					return err
				}
				printMutation(cmd, resp, fmt.Sprintf("Playhead at %s", formatClock(resp.Timeline.Playhead)))
				return nil
			})
		},
	}
}

func newZoomCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "zoom <factor>",
		Short: "Set the timeline zoom factor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			factor, err := parseSeconds(args[0])
			if err != nil {
				return fmt.Errorf("invalid zoom factor %q", args[0])
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ZoomSet(factor)
				if err != nil {
					return err
				}
				printMutation(cmd, resp, fmt.Sprintf("Zoom %.2fx", resp.Timeline.Zoom))
				return nil
			})
		},
	}
}
