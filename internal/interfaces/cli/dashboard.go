package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"kilometers.ai/assets/internal/application/services"
	"kilometers.ai/assets/internal/core/asset"
)

// InspectFlags holds command-line flags for the inspect command
type InspectFlags struct {
	NoTUI bool
}

// NewInspectCommand creates the inspect command
func NewInspectCommand(container *CLIContainer) *cobra.Command {
	flags := &InspectFlags{}

	cmd := &cobra.Command{
		Use:     "inspect",
		Aliases: []string{"dashboard"},
		Short:   "Browse collected buckets in a terminal dashboard",
		Long: `Run the collection phase and browse every (type, group) bucket with its
descriptors in render order and the markup they produce.

Buckets that never reach a page slot (css in the footer, unknown types or
groups kept by the permissive policy) are listed too.

Examples:
  assets inspect
  assets inspect --no-tui   # print a static snapshot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cycle := container.App.Pages.NewCycle()
			if _, err := cycle.Collect(cmd.Context()); err != nil {
				return fmt.Errorf("failed to collect assets: %w", err)
			}

			model := newInspectModel(cycle)
			if flags.NoTUI {
				fmt.Fprintln(cmd.OutOrStdout(), model.snapshot())
				return nil
			}

			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("dashboard failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.NoTUI, "no-tui", false, "Print every bucket once instead of starting the dashboard")

	return cmd
}

// bucketView is one bucket prepared for display
type bucketView struct {
	key         asset.BucketKey
	descriptors []asset.Descriptor
	markup      string
	renderErr   error
	inSlot      bool
}

// inspectModel holds the state for the Bubble Tea dashboard
type inspectModel struct {
	cycleID      string
	report       services.CollectReport
	buckets      []bucketView
	selected     int
	windowWidth  int
	windowHeight int
}

func newInspectModel(cycle *services.PageCycle) inspectModel {
	store := cycle.Store()
	keys := store.Buckets()

	views := make([]bucketView, 0, len(keys))
	for _, key := range keys {
		sorted := store.Sorted(key.Type, key.Group)
		markup, err := asset.RenderStrict(key.Type, sorted)
		views = append(views, bucketView{
			key:         key,
			descriptors: sorted,
			markup:      markup,
			renderErr:   err,
			inSlot:      slotFor(key) != "",
		})
	}

	return inspectModel{
		cycleID:      cycle.ID(),
		report:       cycle.Report(),
		buckets:      views,
		windowWidth:  100,
		windowHeight: 30,
	}
}

// slotFor names the template variable a bucket feeds, if any
func slotFor(key asset.BucketKey) string {
	switch {
	case key.Type == asset.TypeCSS && key.Group == asset.GroupHead:
		return services.VarStyleBlock
	case (key.Type == asset.TypeJS || key.Type == asset.TypeInline) && key.Group == asset.GroupHead:
		return services.VarHeadScripts
	case (key.Type == asset.TypeJS || key.Type == asset.TypeInline) && key.Group == asset.GroupFooter:
		return services.VarFooterScripts
	}
	return ""
}

// Init implements the Bubble Tea init method
func (m inspectModel) Init() tea.Cmd {
	return nil
}

// Update implements the Bubble Tea update method
func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down", "j":
			if m.selected < len(m.buckets)-1 {
				m.selected++
			}
			return m, nil

		case "home", "g":
			m.selected = 0
			return m, nil
		}
	}

	return m, nil
}

// View implements the Bubble Tea view method
func (m inspectModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
		m.renderFooter(),
	)
}

// snapshot renders every bucket in turn, for non-interactive output
func (m inspectModel) snapshot() string {
	parts := []string{m.renderHeader()}
	for i := range m.buckets {
		m.selected = i
		parts = append(parts, m.renderDetail())
	}
	return strings.Join(parts, "\n\n")
}

func (m inspectModel) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Render("Asset buckets")

	total := 0
	for _, b := range m.buckets {
		total += len(b.descriptors)
	}

	info := fmt.Sprintf("Cycle: %s | Contributors: %d | Assets: %d | Rejected: %d | Failed: %d",
		shortID(m.cycleID),
		m.report.Contributors,
		total,
		len(m.report.Rejected),
		len(m.report.Failed),
	)

	return lipgloss.JoinHorizontal(lipgloss.Left, title, "  ", info)
}

func (m inspectModel) renderBody() string {
	if len(m.buckets) == 0 {
		return mutedStyle.Render("\n  No assets collected.\n")
	}

	rows := make([]string, 0, len(m.buckets))
	for i, b := range m.buckets {
		label := fmt.Sprintf("%-8s %-8s %3d", b.key.Type, b.key.Group, len(b.descriptors))
		style := lipgloss.NewStyle()
		if !b.inSlot {
			style = style.Foreground(lipgloss.Color("240"))
		}
		if i == m.selected {
			style = style.Background(lipgloss.Color("237")).Bold(true)
		}
		rows = append(rows, style.Render(label))
	}

	list := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		PaddingRight(1).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	return lipgloss.JoinHorizontal(lipgloss.Top, list, " ", m.renderDetail())
}

func (m inspectModel) renderDetail() string {
	if m.selected >= len(m.buckets) {
		return ""
	}
	b := m.buckets[m.selected]

	slot := slotFor(b.key)
	if slot == "" {
		slot = "no slot"
	}
	heading := slotHeadingStyle.Render(fmt.Sprintf("%s/%s → %s", b.key.Type, b.key.Group, slot))

	lines := []string{heading}
	for _, d := range b.descriptors {
		var flags []string
		if d.Type() == asset.TypeJS && d.Defer() {
			flags = append(flags, "defer")
		}
		if d.Type() == asset.TypeJS && d.Async() {
			flags = append(flags, "async")
		}
		lines = append(lines, fmt.Sprintf("%4d  %s %s",
			d.Priority(),
			truncateString(oneLine(d.Source()), m.detailWidth()),
			mutedStyle.Render(strings.Join(flags, " "))))
	}

	if b.renderErr != nil {
		lines = append(lines, warnStyle.Render(b.renderErr.Error()))
	} else {
		lines = append(lines, mutedStyle.Render(truncateString(oneLine(b.markup), m.detailWidth()+6)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m inspectModel) renderFooter() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("Controls: [↑↓] Navigate | [g] Top | [q] Quit")
}

func (m inspectModel) detailWidth() int {
	w := m.windowWidth - 40
	if w < 20 {
		w = 20
	}
	return w
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateString shortens s to at most n runes, marking the cut with an ellipsis
func truncateString(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
