package task

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rnwolfe/tally/internal/ui"
)

// Column display widths for consistent alignment across CLI and TUI renderers.
const (
	// ColWidthID is the display width of the short ID column.
	ColWidthID = 9
	// ColWidthCategory fits the longest category tag ("collected").
	ColWidthCategory = 10
	// ColWidthPoints fits "◆500".
	ColWidthPoints = 5
)

// CategoryLabel returns the display label for a category.
func CategoryLabel(c Category) string {
	switch c {
	case CategoryCollected:
		return "Inbox"
	case CategoryOverdue:
		return "Overdue"
	case CategoryToday:
		return "Today"
	case CategoryTomorrow:
		return "Tomorrow"
	case CategoryNoDate:
		return "Anytime"
	case CategoryFuture:
		return "Upcoming"
	default:
		return "?"
	}
}

// CategoryStyle returns the theme style for a category.
func CategoryStyle(c Category) lipgloss.Style {
	switch c {
	case CategoryCollected:
		return ui.CollectedStyle
	case CategoryOverdue:
		return ui.OverdueStyle
	case CategoryToday:
		return ui.TodayStyle
	case CategoryTomorrow:
		return ui.TomorrowStyle
	case CategoryFuture:
		return ui.FutureStyle
	default:
		return ui.NoDateStyle
	}
}

// FormatCategoryTag returns a fixed-width (ColWidthCategory) styled category name.
func FormatCategoryTag(c Category) string {
	return lipgloss.NewStyle().Width(ColWidthCategory).Render(CategoryStyle(c).Render(string(c)))
}

// FormatPoints returns a fixed-width (ColWidthPoints) points badge.
func FormatPoints(p int) string {
	return lipgloss.NewStyle().Width(ColWidthPoints).Render(ui.Accent.Render(fmt.Sprintf("%s%d", ui.IconPoints, p)))
}

// ShortID returns the leading characters of a task ID, enough to type back.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// FormatDay renders a date relative to the snapshot: "today", "tomorrow",
// a weekday within the week, else "Jan 2". Absent dates render empty.
func FormatDay(d Date, ctx DateContext) string {
	day, ok := dayOf(d)
	if !ok {
		return ""
	}
	switch {
	case day.Equal(ctx.today):
		return "today"
	case day.Equal(ctx.tomorrow):
		return "tomorrow"
	case day.Equal(ctx.Offset(-1)):
		return "yesterday"
	case day.After(ctx.today) && day.Before(ctx.Offset(7)):
		return day.Format("Mon")
	case day.Year() != ctx.today.Year():
		return day.Format("Jan 2 2006")
	default:
		return day.Format("Jan 2")
	}
}
