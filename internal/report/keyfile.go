package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"kolibri/listcontent/internal/clock"
)

// KeyFileSection is the section listing channels to install.
const KeyFileSection = "kolibri"

// ChannelSection returns the section name holding a channel's node lists.
func ChannelSection(channelID string) string {
	return KeyFileSection + "-" + channelID
}

// KeyFileWriter writes an INI key file with an install_channels list and,
// per subset channel, include_node_ids and exclude_node_ids lists. Each list
// item is preceded by an indented comment describing it.
type KeyFileWriter struct {
	Clock clock.Clock
}

func (k *KeyFileWriter) Write(w io.Writer, r *Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# Generated by kolibri-listcontent")
	fmt.Fprintf(bw, "# %s\n", k.Clock.Now().Format("2006-01-02 15:04:05.000000"))
	fmt.Fprintln(bw)

	fmt.Fprintf(bw, "[%s]\n", KeyFileSection)
	fmt.Fprintln(bw, "install_channels =")
	for _, l := range r.Visible() {
		fmt.Fprintf(bw, "  # %s [%d]\n", commentText(l.Channel.Name), l.PickedCount)
		fmt.Fprintf(bw, "  %s\n", l.Channel.ID)
	}
	fmt.Fprintln(bw)

	for _, l := range r.Filtered() {
		fmt.Fprintf(bw, "[%s]\n", ChannelSection(l.Channel.ID))
		writeNodeList(bw, "include_node_ids", l.Include)
		writeNodeList(bw, "exclude_node_ids", l.Exclude)
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

func writeNodeList(w io.Writer, key string, entries []Entry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(w, "%s =\n", key)
	for _, e := range entries {
		fmt.Fprintf(w, "  # %s [%s]\n", commentText(strings.Join(e.Breadcrumbs, " / ")), commentText(e.Node.Kind))
		fmt.Fprintf(w, "  %s\n", e.Node.ID)
	}
}

// Comment text must stay on one line.
var commentBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func commentText(s string) string {
	return commentBreaks.Replace(s)
}
