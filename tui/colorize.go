package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/table"
)

// violationMarker prefixes the violation count in the table
const violationMarker = "✗"

// pre-rendered strings to avoid repeated style.Render() calls in hot path
var (
	renderedGET       string
	renderedQUERY     string
	renderedPATCH     string
	renderedPUT       string
	renderedPOST      string
	renderedDELETE    string
	renderedViolation string
)

func init() {
	renderedGET = StyleMethodGreen.Render("GET")
	renderedQUERY = StyleMethodGreen.Render("QUERY")
	renderedPATCH = StyleMethodYellow.Render("PATCH")
	renderedPUT = StyleMethodBlue.Render("PUT")
	renderedPOST = StyleMethodBlue.Render("POST")
	renderedDELETE = StyleMethodRed.Render("DELETE")
	renderedViolation = BadgeStyle.Render(violationMarker)
}

// ColorizeTransactionTable colorizes table output following the vacuum pattern. The
// selected row is skipped to preserve its background.
func ColorizeTransactionTable(tableView string, cursor int, rows []table.Row) string {
	lines := strings.Split(tableView, "\n")

	// the table background can fail when scrolled, so also match the selected row by content
	var selectedIdentifier string
	if cursor >= 0 && cursor < len(rows) && len(rows[cursor]) >= 2 {
		selectedIdentifier = stripSpaces(strings.Join(rows[cursor], ""))
	}

	// ANSI escape sequence for pink background (matches table selected style from styles.go)
	selectedLineMarker := "\x1b[1;38;5;201;48;2;42;26;42m"

	// only fall back to the content match when no line carries the marker, so duplicate
	// rows still get colorized
	if strings.Contains(tableView, selectedLineMarker) {
		selectedIdentifier = ""
	}

	var result strings.Builder
	result.Grow(len(tableView) + (len(lines) * 48))

	for i, line := range lines {
		isSelectedLine := strings.Contains(line, selectedLineMarker) ||
			(selectedIdentifier != "" && strings.Contains(stripSpaces(line), selectedIdentifier))

		// skip header row (i=0) and selected rows (already styled by table)
		if i >= 1 && !isSelectedLine {
			line = colorizeHTTPMethods(line)
			line = colorizeStatusCodes(line)
			line = colorizeViolations(line)
			line = colorizeDurations(line)
		}

		result.WriteString(line)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}

	return result.String()
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

// colorizeHTTPMethods colorizes the first method found, most common first
func colorizeHTTPMethods(line string) string {
	if strings.Contains(line, " GET ") {
		return strings.Replace(line, " GET ", " "+renderedGET+" ", 1)
	}
	if strings.Contains(line, " POST ") {
		return strings.Replace(line, " POST ", " "+renderedPOST+" ", 1)
	}
	if strings.Contains(line, " PUT ") {
		return strings.Replace(line, " PUT ", " "+renderedPUT+" ", 1)
	}
	if strings.Contains(line, " DELETE ") {
		return strings.Replace(line, " DELETE ", " "+renderedDELETE+" ", 1)
	}
	if strings.Contains(line, " PATCH ") {
		return strings.Replace(line, " PATCH ", " "+renderedPATCH+" ", 1)
	}
	if strings.Contains(line, " QUERY ") {
		return strings.Replace(line, " QUERY ", " "+renderedQUERY+" ", 1)
	}
	return line
}

// colorizeStatusCodes colorizes 4xx (yellow) and 5xx (red) status codes using manual byte scanning
func colorizeStatusCodes(line string) string {
	// find " NNN " pattern (3 digits surrounded by spaces)
	for i := 0; i < len(line)-4; i++ {
		if line[i] == ' ' &&
			line[i+1] >= '0' && line[i+1] <= '9' &&
			line[i+2] >= '0' && line[i+2] <= '9' &&
			line[i+3] >= '0' && line[i+3] <= '9' &&
			line[i+4] == ' ' {

			statusCode := int(line[i+1]-'0')*100 + int(line[i+2]-'0')*10 + int(line[i+3]-'0')
			statusStr := line[i+1 : i+4]

			switch {
			case statusCode >= 400 && statusCode < 500:
				return line[:i] + " " + StyleStatus4xx.Render(statusStr) + " " + line[i+5:]
			case statusCode >= 500 && statusCode < 600:
				return line[:i] + " " + StyleStatus5xx.Render(statusStr) + " " + line[i+5:]
			}
			return line
		}
	}
	return line
}

// colorizeViolations paints the violation marker red
func colorizeViolations(line string) string {
	return strings.Replace(line, violationMarker, renderedViolation, 1)
}

// colorizeDurations renders the duration in the last column faint
func colorizeDurations(line string) string {
	trimmed := strings.TrimRight(line, " ")
	lastSpaceIdx := strings.LastIndexByte(trimmed, ' ')
	if lastSpaceIdx == -1 {
		return line
	}

	durationPart := trimmed[lastSpaceIdx+1:]
	if isDuration(durationPart) {
		return trimmed[:lastSpaceIdx+1] + StyleDurationFaint.Render(durationPart) + line[len(trimmed):]
	}

	return line
}

// isDuration validates if string is a time duration (e.g., "150ms", "2.5s")
// rejects URLs, paths, and random identifiers by requiring digit-only numeric portion
func isDuration(s string) bool {
	if s == "" {
		return false
	}

	if s[0] < '0' || s[0] > '9' {
		return false
	}

	var valueStr string
	switch {
	case strings.HasSuffix(s, "μs"):
		valueStr = strings.TrimSuffix(s, "μs")
	case strings.HasSuffix(s, "ms"):
		valueStr = strings.TrimSuffix(s, "ms")
	case strings.HasSuffix(s, "s"):
		valueStr = strings.TrimSuffix(s, "s")
	case strings.HasSuffix(s, "m"):
		valueStr = strings.TrimSuffix(s, "m")
	case strings.HasSuffix(s, "h"):
		valueStr = strings.TrimSuffix(s, "h")
	default:
		return false
	}

	if len(valueStr) == 0 {
		return false
	}

	dotCount := 0
	for _, c := range valueStr {
		if c == '.' {
			dotCount++
			if dotCount > 1 {
				return false
			}
		} else if c < '0' || c > '9' {
			return false
		}
	}

	return true
}
