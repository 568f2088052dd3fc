package export

import (
	"fmt"
	"strings"

	"lyricdrop/internal/config"
	"lyricdrop/internal/editor"
	"lyricdrop/internal/timeline"
)

// Style carries the subtitle appearance settings applied to every lyric line.
type Style struct {
	FontName     string
	FontSize     int
	PrimaryColor string
}

// StyleFromConfig builds a Style from export configuration.
func StyleFromConfig(cfg *config.Config) Style {
	if cfg == nil {
		return Style{FontName: "DejaVu Sans", FontSize: 48, PrimaryColor: "&H00FFFFFF"}
	}
	return Style{
		FontName:     cfg.Export.FontName,
		FontSize:     cfg.Export.FontSize,
		PrimaryColor: cfg.Export.PrimaryColor,
	}
}

// Render produces an ASS subtitle document for the snapshot. Lyric segments
// become dialogue events; spacers are silent and produce nothing. Sections are
// written as comment events so the generated file documents its own structure.
func Render(snapshot editor.Snapshot, style Style) string {
	var b strings.Builder

	b.WriteString("[Script Info]\n")
	b.WriteString("Title: lyricdrop export\n")
	b.WriteString("ScriptType: v4.00+\n")
	b.WriteString("WrapStyle: 0\n")
	b.WriteString("PlayResX: 1920\n")
	b.WriteString("PlayResY: 1080\n")
	b.WriteString("\n")

	b.WriteString("[V4+ Styles]\n")
	b.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, OutlineColour, BackColour, Bold, Italic, Alignment, MarginL, MarginR, MarginV, Outline, Shadow\n")
	fmt.Fprintf(&b, "Style: Lyric,%s,%d,%s,&H00000000,&H80000000,0,0,2,60,60,90,2,1\n",
		style.FontName, style.FontSize, style.PrimaryColor)
	b.WriteString("\n")

	b.WriteString("[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, section := range timeline.SortSectionsByStartTime(snapshot.Sections) {
		fmt.Fprintf(&b, "Comment: 0,%s,%s,Lyric,,0,0,0,,section %s\n",
			formatTimestamp(section.StartTime), formatTimestamp(section.EndTime), section.ID)
	}

	for _, segment := range timeline.SortByStartTime(snapshot.Segments) {
		if segment.Kind != timeline.KindLyric {
			continue
		}
		text := escapeDialogue(segment.Text)
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,Lyric,,0,0,0,,%s\n",
			formatTimestamp(segment.StartTime), formatTimestamp(segment.EndTime), text)
	}

	return b.String()
}

// formatTimestamp renders seconds as H:MM:SS.cc, the ASS event time format.
func formatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	centis := int64(seconds*100 + 0.5)
	hours := centis / 360000
	centis -= hours * 360000
	minutes := centis / 6000
	centis -= minutes * 6000
	secs := centis / 100
	centis -= secs * 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis)
}

func escapeDialogue(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "{", "(")
	text = strings.ReplaceAll(text, "}", ")")
	text = strings.ReplaceAll(text, "\n", `\N`)
	return text
}
