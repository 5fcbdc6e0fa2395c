package tui

import tea "github.com/charmbracelet/bubbletea"

type notice struct {
	text    string
	failure bool
}

type noticeMsg notice

// Notices bridges the controller's fire-and-forget notifications into the
// message loop. The channel is buffered and lossy: if the UI falls behind,
// old notices are dropped rather than blocking a dispatch.
type Notices struct {
	ch chan notice
}

func NewNotices() *Notices {
	return &Notices{ch: make(chan notice, 32)}
}

func (n *Notices) Success(msg string) { n.push(notice{text: msg}) }
func (n *Notices) Failure(msg string) { n.push(notice{text: msg, failure: true}) }

func (n *Notices) push(nt notice) {
	select {
	case n.ch <- nt:
	default:
	}
}

// next blocks until a notice arrives. Update re-arms it after every
// noticeMsg.
func (n *Notices) next() tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(<-n.ch)
	}
}
