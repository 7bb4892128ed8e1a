package bubbletea

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

var _ MessageBlock = (*PendingBlock)(nil)

// pulse is a three-dot indicator whose lit dot moves every 150ms.
var pulse = spinner.Spinner{
	Frames: []string{"● · ·", "· ● ·", "· · ●"},
	FPS:    150 * time.Millisecond,
}

// PendingBlock stands in for the reply of the turn in flight.
type PendingBlock struct {
	spinner spinner.Model
}

// NewPendingBlock creates a PendingBlock.
func NewPendingBlock(styles Styles) *PendingBlock {
	return &PendingBlock{
		spinner: spinner.New(spinner.WithSpinner(pulse), spinner.WithStyle(styles.Pending)),
	}
}

// Init starts the pulse animation.
func (b *PendingBlock) Init() tea.Cmd {
	return b.spinner.Tick
}

func (b *PendingBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(tick)
		return b, cmd
	}
	return b, nil
}

func (b *PendingBlock) View(width int) string {
	return b.spinner.View()
}
