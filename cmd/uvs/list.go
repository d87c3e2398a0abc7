// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"uvs-cli/pkg/uvsfile"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// listScripts prints the available scripts with their help text, aligned on
// the longest script name. Scripts without help fall back to their command
// text so the listing always says what a script does.
func listScripts(out io.Writer, file *uvsfile.File) error {
	if len(file.Scripts) == 0 {
		fmt.Fprintln(out, SubtitleStyle.Render("No scripts defined."))
		return nil
	}

	names := maps.Keys(file.Scripts)
	slices.Sort(names)

	maxName := 0
	for _, name := range names {
		maxName = max(maxName, len(name))
	}

	fmt.Fprintln(out, TitleStyle.Render("Available scripts"))
	for _, name := range names {
		// Padding is computed on the raw name because styled rendering can
		// add escape sequences that break %-*s alignment.
		padding := strings.Repeat(" ", maxName-len(name))
		fmt.Fprintf(out, "  %s%s  %s\n",
			NameStyle.Render(name),
			padding,
			DescStyle.Render(file.Scripts[name].Summary()),
		)
	}
	return nil
}
