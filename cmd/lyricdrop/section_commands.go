package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lyricdrop/internal/ipc"
)

func newSectionCommand(ctx *commandContext) *cobra.Command {
	sectionCmd := &cobra.Command{
		Use:   "section",
		Short: "Manage timeline sections",
	}

	sectionCmd.AddCommand(newSectionAddCommand(ctx))
	sectionCmd.AddCommand(newSectionRemoveCommand(ctx))
	sectionCmd.AddCommand(newSectionResizeCommand(ctx))
	sectionCmd.AddCommand(newSectionSelectCommand(ctx))

	return sectionCmd
}

func newSectionAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <start> <end>",
		Short: "Create a section over a time range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseSeconds(args[0])
			if err != nil {
				return err
			}
			end, err := parseSeconds(args[1])
			if err != nil {
				return err
			}

			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.SectionAdd(start, end)
				if err != nil {
					return err
				}
				printMutation(cmd, resp, "Section added")
				return nil
			})
		},
	}
}

func newSectionRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <sectionID>",
		Short: "Delete a section and the segments inside it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.SectionRemove(strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}
				printMutation(cmd, resp, "Section removed")
				return nil
			})
		},
	}
}

func newSectionResizeCommand(ctx *commandContext) *cobra.Command {
	var startArg string
	var endArg string

	cmd := &cobra.Command{
		Use:   "resize <sectionID>",
		Short: "Move a section's boundaries",
		Long: "Move a section's start or end. Segments inside the section are\n" +
			"redistributed proportionally across the new range.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := ipc.SectionResizeRequest{ID: strings.TrimSpace(args[0])}
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
			if req.StartTime == nil && req.EndTime == nil {
				return fmt.Errorf("nothing to resize: pass --start or --end")
			}

			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.SectionResize(req)
				if err != nil {
					return err
				}
				printMutation(cmd, resp, "Section resized")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&startArg, "start", "", "New start time in seconds")
	cmd.Flags().StringVar(&endArg, "end", "", "New end time in seconds")
	return cmd
}

func newSectionSelectCommand(ctx *commandContext) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "select [sectionID]",
		Short: "Select a section, or clear the selection",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = strings.TrimSpace(args[0])
			}
			if id == "" && !clear {
				return fmt.Errorf("section ID required (or --clear)")
			}

			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.SectionSelect(id)
				if err != nil {
					return err
				}
				message := "Section selected"
				if id == "" {
					message = "Selection cleared"
				}
				printMutation(cmd, resp, message)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Clear the section selection")
	return cmd
}
