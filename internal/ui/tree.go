package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/muurk/portctl/internal/command"
	"github.com/muurk/portctl/internal/config"
)

// RenderLayout draws the settings and every unit type as a tree. Button
// payloads are shown with placeholders filled in.
func RenderLayout(cfg *config.Config) string {
	var b strings.Builder
	settings := cfg.Settings.Strings()

	b.WriteString(HeaderTitleStyle.Render("Settings") + "\n")
	for _, name := range sortedKeys(settings) {
		b.WriteString(fmt.Sprintf("  %s %s\n", ResultKeyStyle.Render(name+":"), settings[name]))
	}

	for _, name := range cfg.UnitTypeNames() {
		ut := cfg.UnitType(name)
		b.WriteString("\n" + HeaderTitleStyle.Render(name))
		if ut.Description != "" {
			b.WriteString("  " + CheckNoteStyle.Render(ut.Description))
		}
		b.WriteString("\n")

		for gi, g := range ut.ButtonGroups {
			lastGroup := gi == len(ut.ButtonGroups)-1
			b.WriteString("  " + branch(lastGroup) + TreeGroupStyle.Render(g.Title) +
				" " + CheckNoteStyle.Render("["+string(config.InferGroupType(g))+"]") + "\n")

			indent := "  " + stem(lastGroup)
			for bi, btn := range g.Buttons {
				b.WriteString(indent + branch(bi == len(g.Buttons)-1) + renderButtonLine(btn, settings) + "\n")
			}
		}
	}
	return b.String()
}

func renderButtonLine(btn config.Button, settings map[string]string) string {
	line := fmt.Sprintf("%s  %s", btn.Text, CheckNoteStyle.Render(string(btn.Action)))
	if !btn.Action.NeedsPayload() {
		return line
	}
	payload, err := command.Format(btn.Payload(), settings)
	if err != nil {
		return line + "  " + CheckFailedStyle.Render(MarkerFailed+" "+err.Error())
	}
	return line + "  " + ResultValueStyle.Render(payload)
}

func branch(last bool) string {
	if last {
		return TreeBranchStyle.Render("└─ ")
	}
	return TreeBranchStyle.Render("├─ ")
}

func stem(last bool) string {
	if last {
		return "   "
	}
	return TreeBranchStyle.Render("│  ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
