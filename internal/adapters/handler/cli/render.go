package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var (
	colorDone    = lipgloss.Color("#22C55E")
	colorToday   = lipgloss.Color("#3B82F6")
	colorWarning = lipgloss.Color("#F59E0B")
	colorMuted   = lipgloss.Color("#6B7280")
)

const (
	markDone  = "●"
	markToday = "◌"
	markEmpty = "·"
)

// styles are bound to one renderer so colour detection follows the
// command's writer, not os.Stdout.
type styles struct {
	r *lipgloss.Renderer

	title   lipgloss.Style
	muted   lipgloss.Style
	done    lipgloss.Style
	today   lipgloss.Style
	warning lipgloss.Style
	card    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		r:       r,
		title:   r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(colorMuted),
		done:    r.NewStyle().Foreground(colorDone).Bold(true),
		today:   r.NewStyle().Foreground(colorToday),
		warning: r.NewStyle().Foreground(colorWarning),
		card:    r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1),
	}
}

func (s styles) habitName(h *domain.Habit) string {
	name := s.title
	if h.Color != "" {
		name = name.Foreground(lipgloss.Color(h.Color))
	}
	return name.Render(h.Name)
}

func streakText(n int) string {
	if n == 1 {
		return "🔥 1 day"
	}
	return fmt.Sprintf("🔥 %d days", n)
}

// line is the one-row form used by list.
func (s styles) line(sum domain.HabitSummary) string {
	check := s.muted.Render("[ ]")
	if sum.Streak.CompletedToday {
		check = s.done.Render("[✓]")
	}

	parts := []string{
		check,
		s.habitName(sum.Habit),
		streakText(sum.Streak.CurrentStreak),
		s.muted.Render(fmt.Sprintf("Best: %d", sum.Streak.BestStreak)),
	}
	if sum.Streak.IsAtRisk {
		parts = append(parts, s.warning.Render("at risk"))
	}
	parts = append(parts, s.muted.Render(sum.Habit.ID))
	return strings.Join(parts, "  ")
}

func (s styles) grid(days []domain.DayStatus) string {
	labels := make([]string, 0, len(days))
	marks := make([]string, 0, len(days))

	for _, d := range days {
		label := s.muted.Render(d.Label)
		mark := s.muted.Render(markEmpty)
		switch {
		case d.Completed:
			mark = s.done.Render(markDone)
		case d.IsToday:
			mark = s.today.Render(markToday)
		}
		if d.IsToday {
			label = s.today.Render(d.Label)
		}
		labels = append(labels, label)
		marks = append(marks, mark)
	}

	return strings.Join(labels, " ") + "\n" + strings.Join(marks, " ")
}

// detail is the boxed form used by show.
func (s styles) detail(sum domain.HabitSummary) string {
	var b strings.Builder

	b.WriteString(s.habitName(sum.Habit))
	b.WriteString("\n")

	if sum.Streak.CompletedToday {
		b.WriteString(s.done.Render("✓ Completed today"))
	} else {
		b.WriteString(s.muted.Render("Not completed today"))
	}
	b.WriteString("\n")

	b.WriteString(streakText(sum.Streak.CurrentStreak))
	b.WriteString("   ")
	b.WriteString(s.muted.Render(fmt.Sprintf("Best: %d", sum.Streak.BestStreak)))
	b.WriteString("\n")

	if sum.Streak.IsAtRisk {
		b.WriteString(s.warning.Render("⚠ Keep your streak alive today"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.grid(sum.Days))

	return s.card.Render(b.String())
}

func (s styles) boardHeader(b *domain.Board) string {
	return s.title.Render(fmt.Sprintf("%d/%d completed today", b.CompletedToday, b.TotalHabits)) +
		"  " + s.muted.Render(b.Date)
}
