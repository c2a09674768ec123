package color

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	colorOutput = true

	headerColor  = color.New(color.Bold, color.FgBlue)
	commandColor = color.New(color.FgCyan)
	exampleColor = color.New(color.FgGreen)
	flagColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgBlue)
)

func init() {
	if os.Getenv("NO_COLOR") != "" {
		SetColorOutput(false)
	}
}

// SetColorOutput enables or disables color output
func SetColorOutput(enabled bool) {
	colorOutput = enabled
	color.NoColor = !enabled
}

// IsColorEnabled returns true if color output is enabled
func IsColorEnabled() bool {
	return colorOutput && !color.NoColor
}

func paint(c *color.Color, text string) string {
	if !IsColorEnabled() {
		return text
	}
	return c.Sprint(text)
}

// Header formats text as a header (bold blue)
func Header(text string) string { return paint(headerColor, text) }

// Command formats text as a command name (cyan)
func Command(text string) string { return paint(commandColor, text) }

// Example formats text as an example command (green)
func Example(text string) string { return paint(exampleColor, text) }

// Flag formats text as a CLI flag (yellow)
func Flag(text string) string { return paint(flagColor, text) }

// Success formats text as a success message (green)
func Success(text string) string { return paint(successColor, text) }

// Error formats text as an error message (red)
func Error(text string) string { return paint(errorColor, text) }

// Warning formats text as a warning message (yellow)
func Warning(text string) string { return paint(warningColor, text) }

// Info formats text as an info message (blue)
func Info(text string) string { return paint(infoColor, text) }

// SuccessMessage formats a status line with a success marker
func SuccessMessage(format string, args ...interface{}) string {
	return Success("✅ " + fmt.Sprintf(format, args...))
}

// ErrorMessage formats a status line with an error marker
func ErrorMessage(format string, args ...interface{}) string {
	return Error("❌ " + fmt.Sprintf(format, args...))
}

// WarningMessage formats a status line with a warning marker
func WarningMessage(format string, args ...interface{}) string {
	return Warning("⚠️  " + fmt.Sprintf(format, args...))
}

// InfoMessage formats a status line with an info marker
func InfoMessage(format string, args ...interface{}) string {
	return Info("ℹ️  " + fmt.Sprintf(format, args...))
}

// InfoText formats a hint line without a marker
func InfoText(format string, args ...interface{}) string {
	return Info(fmt.Sprintf(format, args...))
}

// FormatHelp enhances help text with color formatting
func FormatHelp(helpText string) string {
	if !IsColorEnabled() {
		return helpText
	}

	lines := strings.Split(helpText, "\n")
	formattedLines := make([]string, 0, len(lines))

	for _, line := range lines {
		indented := strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")

		switch {
		case strings.HasSuffix(strings.TrimSpace(line), ":") && !indented:
			formattedLines = append(formattedLines, Header(line))
		case indented && strings.Contains(line, "teamdesk"):
			formattedLines = append(formattedLines, Example(line))
		case strings.Contains(line, "--"):
			formatted := line
			for _, word := range strings.Fields(line) {
				if strings.HasPrefix(word, "-") {
					formatted = strings.ReplaceAll(formatted, word, Flag(word))
				}
			}
			formattedLines = append(formattedLines, formatted)
		default:
			formattedLines = append(formattedLines, line)
		}
	}

	return strings.Join(formattedLines, "\n")
}
