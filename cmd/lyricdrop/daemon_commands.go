package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lyricdrop/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon, session and export status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Status()
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, resp)
				}

				stdout := cmd.OutOrStdout()
				styler := newStatusStyler(stdout)

				for _, line := range styler.header("Daemon") {
					fmt.Fprintln(stdout, line)
				}
				fmt.Fprintln(stdout, styler.line("Running", statusOK, fmt.Sprintf("pid %d", resp.PID)))
				fmt.Fprintln(stdout, styler.line("Socket", statusInfo, ctx.socketPath()))
				fmt.Fprintln(stdout, styler.line("Job store", statusInfo, resp.JobDBPath))
				fmt.Fprintln(stdout)

				for _, line := range styler.header("Dependencies") {
					fmt.Fprintln(stdout, line)
				}
				for _, line := range dependencyLines(resp.Dependencies, styler) {
					fmt.Fprintln(stdout, line)
				}
				fmt.Fprintln(stdout)

				for _, line := range styler.header("Session") {
					fmt.Fprintln(stdout, line)
				}
				if !resp.SessionOpen {
					fmt.Fprintln(stdout, styler.line("Open", statusInfo, "no video open"))
				} else {
					fmt.Fprintln(stdout, styler.line("Video", statusOK, resp.VideoPath))
					fmt.Fprintln(stdout, styler.line("Duration", statusInfo, formatClock(resp.Duration)))
					fmt.Fprintln(stdout, styler.line("Segments", statusInfo,
						fmt.Sprintf("%d segments, %d sections (revision %d)", resp.SegmentCount, resp.SectionCount, resp.Revision)))
				}
				fmt.Fprintln(stdout)

				for _, line := range styler.header("Exports") {
					fmt.Fprintln(stdout, line)
				}
				rows := buildJobSummaryRows(resp.Jobs)
				if len(rows) == 0 {
					fmt.Fprintln(stdout, "No export jobs")
					return nil
				}
				table := renderTable([]string{"Status", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
				fmt.Fprintln(stdout, table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit status as JSON")
	return cmd
}

func newStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the lyricdropd daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Stop()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if resp.Stopped {
					fmt.Fprintln(out, "Daemon stopping")
				} else {
					fmt.Fprintln(out, "Stop request sent")
				}
				return nil
			})
		},
	}
}

func dependencyLines(deps []ipc.DependencyStatus, styler statusStyler) []string {
	lines := make([]string, 0, len(deps))
	for _, dep := range deps {
		if dep.Available {
			message := "Ready"
			if dep.Command != "" {
				message = fmt.Sprintf("Ready (command: %s)", dep.Command)
			}
			lines = append(lines, styler.line(dep.Name, statusOK, message))
			continue
		}
		detail := strings.TrimSpace(dep.Detail)
		if detail == "" {
			detail = "not available"
		}
		kind := statusError
		if dep.Optional {
			kind = statusWarn
		}
		lines = append(lines, styler.line(dep.Name, kind, detail))
	}
	return lines
}

func buildJobSummaryRows(summary ipc.JobSummary) [][]string {
	if summary.Total == 0 {
		return nil
	}
	rows := [][]string{}
	add := func(label string, count int) {
		if count > 0 {
			rows = append(rows, []string{label, fmt.Sprintf("%d", count)})
		}
	}
	add("Pending", summary.Pending)
	add("Burning", summary.Burning)
	add("Completed", summary.Completed)
	add("Failed", summary.Failed)
	rows = append(rows, []string{"Total", fmt.Sprintf("%d", summary.Total)})
	return rows
}
