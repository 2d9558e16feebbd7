package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

type statusLine struct {
	label   string
	kind    statusKind
	message string
}

type statusSection struct {
	title string
	lines []statusLine
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func renderSections(sections []statusSection, colorize bool) string {
	var out []string
	for i, section := range sections {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, renderSectionHeader(section.title, colorize)...)
		for _, line := range section.lines {
			out = append(out, renderStatusLine(line.label, line.kind, line.message, colorize))
		}
	}
	return strings.Join(out, "\n") + "\n"
}

func renderStatus(report statusReport, colorize bool) string {
	config := statusLine{"Config", statusOK, report.ConfigPath}
	if !report.ConfigExists {
		config = statusLine{"Config", statusWarn, report.ConfigPath + " (defaults)"}
	}
	enabled := statusLine{"Category assign", statusOK, yesNo(report.AutomationEnabled)}
	if !report.AutomationEnabled {
		enabled.kind = statusWarn
	}
	fragment := statusLine{"Transition fragment", statusOK, report.FragmentPath}
	if !report.FragmentInstalled {
		fragment = statusLine{"Transition fragment", statusWarn, "not installed (run forms install)"}
	}

	return renderSections([]statusSection{
		{title: "Configuration", lines: []statusLine{
			config,
			{"Database", statusInfo, report.DatabasePath},
		}},
		{title: "Automation", lines: []statusLine{
			enabled,
			{"Fallback category", statusInfo, fmt.Sprintf("%d", report.FallbackCategoryID)},
			fragment,
		}},
		{title: "Content", lines: []statusLine{
			{"Categories", statusInfo, fmt.Sprintf("%d", report.Stats.Categories)},
			{"Stages", statusInfo, fmt.Sprintf("%d", report.Stats.Stages)},
			{"Transitions", statusInfo, fmt.Sprintf("%d", report.Stats.Transitions)},
			{"Articles", statusInfo, fmt.Sprintf("%d", report.Stats.Articles)},
		}},
	}, colorize)
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
