package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lyricdrop/internal/ipc"
)

func newSegmentCommand(ctx *commandContext) *cobra.Command {
	segmentCmd := &cobra.Command{
		Use:   "segment",
		Short: "Inspect and edit timeline segments",
	}

	segmentCmd.AddCommand(newSegmentUpdateCommand(ctx))
	segmentCmd.AddCommand(newSegmentRemoveCommand(ctx))
	segmentCmd.AddCommand(newSegmentSelectCommand(ctx))

	return segmentCmd
}

func newSegmentUpdateCommand(ctx *commandContext) *cobra.Command {
	var startArg string
	var endArg string
	var text string

	cmd := &cobra.Command{
		Use:   "update <segmentID>",
		Short: "Change a segment's timing or text",
		Long: "Change a segment's start time, end time or text. Moving a boundary shifts\n" +
			"every later segment by the same amount so the timeline stays contiguous.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := ipc.SegmentUpdateRequest{ID: strings.TrimSpace(args[0])}
			if cmd.Flags().Changed("start") {
				value, err := parseSeconds(startArg)
				if err != nil {
					return err
				}
				req.StartTime = &value
			}
			if cmd.Flags().Changed("end") {
				value, err := parseSeconds(endArg)
				if err != nil {
					return err
				}
				req.EndTime = &value
			}
			if cmd.Flags().Changed("text") {
				req.Text = &text
			}
			if req.StartTime == nil && req.EndTime == nil && req.Text == nil {
				return fmt.Errorf("nothing to update: pass --start, --end or --text")
			}

			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.SegmentUpdate(req)
				if err != nil {
					return err
				}
				printMutation(cmd, resp, "Segment updated")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&startArg, "start", "", "New start time in seconds")
	cmd.Flags().StringVar(&endArg, "end", "", "New end time in seconds")
	cmd.Flags().StringVar(&text, "text", "", "New lyric text")
	return cmd
}

func newSegmentRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <segmentID>",
		Short: "Remove a segment",
		Long: "Remove a segment. A lyric segment turns into a spacer so timing is kept;\n" +
			"a spacer is deleted and later segments shift left to close the gap.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.SegmentRemove(strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}
				printMutation(cmd, resp, "Segment removed")
				return nil
			})
		},
	}
}

func newSegmentSelectCommand(ctx *commandContext) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "select [segmentID]",
		Short: "Select a segment, or clear the selection",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = strings.TrimSpace(args[0])
			}
			if id == "" && !clear {
				return fmt.Errorf("segment ID required (or --clear)")
			}

			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.SegmentSelect(id)
				if err != nil {
					return err
				}
				message := "Segment selected"
				if id == "" {
					message = "Selection cleared"
				}
				printMutation(cmd, resp, message)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Clear the segment selection")
	return cmd
}

func newSpacerCommand(ctx *commandContext) *cobra.Command {
	spacerCmd := &cobra.Command{
		Use:   "spacer",
		Short: "Manage spacer segments",
	}

	var durationArg string
	insertCmd := &cobra.Command{
		Use:   "insert <time>",
		Short: "Insert silence at a point on the timeline",
		Long: "Insert a spacer at the given time. A segment covering that point is split\n" +
			"around the spacer; later segments shift right by the spacer duration.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseSeconds(args[0])
			if err != nil {
				return err
			}
			req := ipc.SpacerInsertRequest{At: at}
			if cmd.Flags().Changed("duration") {
				value, err := parseSeconds(durationArg)
				if err != nil {
					return err
				}
				req.Duration = &value
			}

			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.SpacerInsert(req)
				if err != nil {
					return err
				}
				printMutation(cmd, resp, "Spacer inserted")
				return nil
			})
		},
	}
	insertCmd.Flags().StringVarP(&durationArg, "duration", "d", "", "Spacer duration in seconds (defaults to configured spacer_duration)")

	spacerCmd.AddCommand(insertCmd)
	return spacerCmd
}
