package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lyricdrop/internal/ipc"
)

func newOpenCommand(ctx *commandContext) *cobra.Command {
	var durationArg string

	cmd := &cobra.Command{
		Use:   "open [video]",
		Short: "Open a video file for editing",
		Long: "Open a video file for editing. With --duration instead of a file, an\n" +
			"offline session is opened for timing lyrics before footage exists.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if cmd.Flags().Changed("duration") {
				if len(args) != 0 {
					return fmt.Errorf("pass either a video file or --duration, not both")
				}
				duration, err := parseSeconds(durationArg)
				if err != nil {
					return err
				}
				return ctx.withClient(func(client *ipc.Client) error {
					resp, err := client.OpenOffline(duration)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Opened offline session (%s)\n", formatClock(resp.Timeline.Duration))
					return nil
				})
			}

			if len(args) != 1 {
				return fmt.Errorf("video file required (or --duration for an offline session)")
			}
			path, err := resolveVideoPath(args[0])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Open(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Opened %s (%s)\n", resp.Timeline.VideoPath, formatClock(resp.Timeline.Duration))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&durationArg, "duration", "d", "", "Session duration in seconds, without a video")
	return cmd
}

func newCloseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "close",
		Short: "Close the current editing session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.CloseVideo()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if resp.Closed {
					fmt.Fprintln(out, "Session closed")
				} else {
					fmt.Fprintln(out, "No session was open")
				}
				return nil
			})
		},
	}
}
