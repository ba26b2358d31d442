// Package tui renders an interactive table view on top of the round
// engine.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjacklab/internal/deck"
	"github.com/lox/blackjacklab/internal/game"
	"github.com/lox/blackjacklab/internal/rules"
)

// Model is the Bubble Tea model for an interactive session.
type Model struct {
	table  *game.Table
	logger *log.Logger

	betInput  textinput.Model
	showCount bool
	quitting  bool
	status    string

	width  int
	height int
}

// New creates a model bound to a table.
func New(table *game.Table, logger *log.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = "bet amount"
	ti.CharLimit = 6
	ti.Width = 12
	ti.Prompt = "$ "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Focus()

	return &Model{
		table:     table,
		logger:    logger.WithPrefix("tui"),
		betInput:  ti,
		showCount: true,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.table.Phase() != game.PhasePlaying || msg.String() == "ctrl+c" {
				m.quitting = true
				return m, tea.Sequence(tea.ClearScreen, tea.Quit)
			}
		case "c":
			m.showCount = !m.showCount
			return m, nil
		}

		if m.betting() {
			return m.updateBetting(msg)
		}
		return m.updatePlaying(msg)
	}

	var cmd tea.Cmd
	m.betInput, cmd = m.betInput.Update(msg)
	return m, cmd
}

func (m *Model) betting() bool {
	phase := m.table.Phase()
	return phase == game.PhaseBetting || phase == game.PhaseFinished
}

// updateBetting handles the between-rounds keys: bet entry, roster edits
// and starting the next round.
func (m *Model) updateBetting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.table.Phase() == game.PhaseFinished {
			m.table.ResetRound()
			m.status = ""
			return m, nil
		}
		amount := m.table.LastBet()
		if v := strings.TrimSpace(m.betInput.Value()); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				m.status = "Bets are whole dollars"
				return m, nil
			}
			amount = parsed
		}
		if !m.table.PlaceBet(amount) {
			m.status = fmt.Sprintf("Can't bet $%d", amount)
			return m, nil
		}
		m.betInput.SetValue("")
		m.status = ""
		return m, nil

	case "a":
		if seat := m.table.AddBot("", 500); seat == nil {
			m.status = "Table is full"
		} else {
			m.status = fmt.Sprintf("%s joined at seat %d", seat.Name, seat.Number)
		}
		return m, nil

	case "x":
		seats := m.table.Seats()
		for i := len(seats) - 1; i >= 0; i-- {
			if seats[i].Kind == game.Bot {
				m.table.RemoveSeat(seats[i].Number)
				m.status = fmt.Sprintf("%s left the table", seats[i].Name)
				return m, nil
			}
		}
		m.status = "No bots to remove"
		return m, nil
	}

	var cmd tea.Cmd
	m.betInput, cmd = m.betInput.Update(msg)
	return m, cmd
}

// updatePlaying handles the in-round action keys.
func (m *Model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h":
		m.table.Hit()
	case "s":
		m.table.Stand()
	case "d":
		if !m.table.DoubleDown() {
			m.status = "Can't double down"
			return m, nil
		}
	case "p":
		if !m.table.Split() {
			m.status = "Can't split"
			return m, nil
		}
	}
	m.status = ""
	return m, nil
}

// View renders the table.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(" ♠ blackjacklab ") + "\n\n")

	b.WriteString(DealerStyle.Render("Dealer") + "  " + m.renderDealer() + "\n\n")

	current := m.table.CurrentSeat()
	for _, seat := range m.table.Seats() {
		style := SeatStyle
		marker := "  "
		if current != nil && seat.ID == current.ID {
			style = ActiveSeatStyle
			marker = "▸ "
		}
		b.WriteString(style.Render(marker+m.renderSeat(seat)) + "\n")
	}

	b.WriteString("\n" + MessageStyle.Render(m.table.Message()) + "\n")
	if m.status != "" {
		b.WriteString(InfoStyle.Render(m.status) + "\n")
	}

	if m.showCount {
		b.WriteString("\n" + CountStyle.Render(m.renderCount()) + "\n")
	}

	b.WriteString("\n" + ActionsStyle.Render(m.renderKeys()) + "\n")
	if m.table.Phase() == game.PhaseBetting {
		b.WriteString(m.betInput.View() + "\n")
	}
	return b.String()
}

func (m *Model) renderDealer() string {
	cards := m.table.DealerHand()
	if len(cards) == 0 {
		return InfoStyle.Render("waiting")
	}
	out := renderCards(cards)
	if m.table.Phase() == game.PhaseDealer || m.table.Phase() == game.PhaseFinished {
		out += fmt.Sprintf("  (%d)", rules.Value(cards).Total)
	}
	return out
}

func (m *Model) renderSeat(seat *game.Seat) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d. %-10s $%-6d", seat.Number, seat.Name, seat.Bankroll))
	for i, hand := range seat.Hands {
		h := renderCards(hand.Cards)
		if len(seat.Hands) > 1 && i == seat.ActiveHand && !hand.Complete {
			h = "[" + h + "]"
		}
		if hand.Outcome != "" {
			h += " " + string(hand.Outcome)
		}
		parts = append(parts, h)
	}
	if seat.Summary != "" {
		parts = append(parts, InfoStyle.Render(seat.Summary))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderCount() string {
	counter := m.table.Counter()
	remaining := m.table.CardsRemaining()
	main := m.table.MainSeat()
	bankroll := 0
	if main != nil {
		bankroll = main.Bankroll
	}
	advice := counter.Advise(bankroll, remaining)
	return fmt.Sprintf("%s: running %+.1f, true %+.1f | %s (bet $%d)",
		counter.System().Name,
		counter.RunningCount(),
		counter.TrueCount(remaining),
		advice.Message,
		advice.SuggestedBet,
	)
}

func (m *Model) renderKeys() string {
	switch m.table.Phase() {
	case game.PhaseBetting:
		return fmt.Sprintf("[enter] bet (last $%d)  [a] add bot  [x] remove bot  [c] count  [q] quit", m.table.LastBet())
	case game.PhasePlaying:
		return "[h] hit  [s] stand  [d] double  [p] split"
	case game.PhaseFinished:
		return "[enter] next round  [a] add bot  [c] count  [q] quit"
	default:
		return ""
	}
}

// renderCards colors each card by suit.
func renderCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return InfoStyle.Render("--")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		switch {
		case c.FaceDown:
			parts[i] = InfoStyle.Render(c.String())
		case c.Suit.IsRed():
			parts[i] = RedCardStyle.Render(c.String())
		default:
			parts[i] = BlackCardStyle.Render(c.String())
		}
	}
	return strings.Join(parts, " ")
}
