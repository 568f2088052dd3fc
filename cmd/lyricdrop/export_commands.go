package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lyricdrop/internal/ipc"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Queue and inspect lyric video exports",
	}

	exportCmd.AddCommand(newExportStartCommand(ctx))
	exportCmd.AddCommand(newExportListCommand(ctx))
	exportCmd.AddCommand(newExportShowCommand(ctx))
	exportCmd.AddCommand(newExportClearCommand(ctx))

	return exportCmd
}

func newExportStartCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Queue a burn of the current timeline",
		Long: "Freeze the current timeline into a subtitle document and queue a burn job.\n" +
			"Edits made after queueing do not affect the export.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ExportStart()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Queued export %d (%d segments, revision %d)\n",
					resp.Job.ID, resp.Job.SegmentCount, resp.Job.Revision)
				fmt.Fprintf(out, "Output: %s\n", resp.Job.OutputPath)
				return nil
			})
		},
	}
}

func newExportListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List export jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ExportList()
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, resp.Jobs)
				}
				out := cmd.OutOrStdout()
				if len(resp.Jobs) == 0 {
					fmt.Fprintln(out, "No export jobs")
					return nil
				}
				table := renderTable(
					[]string{"ID", "Status", "Segments", "Created", "Output"},
					buildExportRows(resp.Jobs),
					[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft},
				)
				fmt.Fprintln(out, table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit export jobs as JSON")
	return cmd
}

func newExportShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <jobID>",
		Short: "Show a single export job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid job id %q", args[0])
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ExportDescribe(id)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, resp.Job)
				}
				job := resp.Job
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Job:      %d\n", job.ID)
				fmt.Fprintf(out, "Status:   %s\n", job.Status)
				fmt.Fprintf(out, "Video:    %s\n", job.VideoPath)
				fmt.Fprintf(out, "Output:   %s\n", job.OutputPath)
				fmt.Fprintf(out, "Segments: %d (revision %d)\n", job.SegmentCount, job.Revision)
				fmt.Fprintf(out, "Created:  %s\n", job.CreatedAt.Format(time.RFC3339))
				fmt.Fprintf(out, "Updated:  %s\n", job.UpdatedAt.Format(time.RFC3339))
				if strings.TrimSpace(job.ErrorMessage) != "" {
					fmt.Fprintf(out, "Error:    %s\n", job.ErrorMessage)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the export job as JSON")
	return cmd
}

func newExportClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove completed and failed export jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ExportClear()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d export jobs\n", resp.Removed)
				return nil
			})
		},
	}
}

func buildExportRows(jobs []ipc.ExportJob) [][]string {
	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", job.ID),
			job.Status,
			fmt.Sprintf("%d", job.SegmentCount),
			job.CreatedAt.Format("2006-01-02 15:04:05"),
			job.OutputPath,
		})
	}
	return rows
}
