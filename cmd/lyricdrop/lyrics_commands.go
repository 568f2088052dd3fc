package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lyricdrop/internal/ipc"
)

func newLyricsCommand(ctx *commandContext) *cobra.Command {
	lyricsCmd := &cobra.Command{
		Use:   "lyrics",
		Short: "Import and update lyric text",
	}

	lyricsCmd.AddCommand(newLyricsImportCommand(ctx))
	lyricsCmd.AddCommand(newLyricsAppendCommand(ctx))

	return lyricsCmd
}

func newLyricsImportCommand(ctx *commandContext) *cobra.Command {
	var filePath string
	var fromClipboard bool
	var sectionStart float64
	var sectionEnd float64

	cmd := &cobra.Command{
		Use:   "import [lines...]",
		Short: "Replace the timeline with lyric lines",
		Long: "Replace the timeline with lyric lines given as arguments (one per\n" +
			"argument) or read from --file, --clipboard or stdin. One line becomes one\n" +
			"segment; blank lines become spacers. When --section-start and --section-end\n" +
			"are given, the lyrics are distributed across that range and a section is\n" +
			"created over it; a section already covering the range is reused.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := resolveLyricsText(cmd, args, filePath, fromClipboard)
			if err != nil {
				return err
			}
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("no lyric text provided")
			}

			req := ipc.LyricsImportRequest{Text: text}
			startSet := cmd.Flags().Changed("section-start")
			endSet := cmd.Flags().Changed("section-end")
			if startSet != endSet {
				return fmt.Errorf("--section-start and --section-end must be used together")
			}
			if startSet {
				req.SectionStart = &sectionStart
				req.SectionEnd = &sectionEnd
			}

			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.LyricsImport(req)
				if err != nil {
					return err
				}
				printMutation(cmd, resp, fmt.Sprintf("Imported %d segments", len(resp.Timeline.Segments)))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Read lyrics from a file")
	cmd.Flags().BoolVar(&fromClipboard, "clipboard", false, "Read lyrics from the system clipboard")
	cmd.Flags().Float64Var(&sectionStart, "section-start", 0, "Section range start in seconds")
	cmd.Flags().Float64Var(&sectionEnd, "section-end", 0, "Section range end in seconds")
	return cmd
}

func newLyricsAppendCommand(ctx *commandContext) *cobra.Command {
	var filePath string
	var fromClipboard bool
	var sectionID string

	cmd := &cobra.Command{
		Use:   "append [lines...]",
		Short: "Re-import lyrics into an existing section",
		Long: "Re-import lyric lines into a section, keeping the identity and timing of\n" +
			"segments that already exist at the same position.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(sectionID) == "" {
				return fmt.Errorf("--section is required")
			}
			text, err := resolveLyricsText(cmd, args, filePath, fromClipboard)
			if err != nil {
				return err
			}
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("no lyric text provided")
			}

			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.LyricsAppend(ipc.LyricsAppendRequest{
					Text:      text,
					SectionID: strings.TrimSpace(sectionID),
				})
				if err != nil {
					return err
				}
				printMutation(cmd, resp, "Lyrics updated")
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Read lyrics from a file")
	cmd.Flags().BoolVar(&fromClipboard, "clipboard", false, "Read lyrics from the system clipboard")
	cmd.Flags().StringVarP(&sectionID, "section", "s", "", "Target section ID")
	return cmd
}
