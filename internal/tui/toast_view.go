package tui

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/toast/internal/core/notify"
	"github.com/colonyops/toast/internal/core/styles"
	"github.com/colonyops/toast/internal/toast"
)

const (
	defaultToastWidth = 50
	// defaultMaxToasts caps how many toasts are drawn. Older live messages
	// stay in the store but are not shown.
	defaultMaxToasts = 5
)

// ToastView renders the live toast sequence and composites it as an overlay.
type ToastView struct {
	store *toast.Store
	width int
}

// NewToastView creates a view over store. Width <= 0 uses the default width.
func NewToastView(store *toast.Store, width int) *ToastView {
	if width <= 0 {
		width = defaultToastWidth
	}
	return &ToastView{store: store, width: width}
}

// View renders the newest defaultMaxToasts messages with the oldest of them
// at the top. It returns "" when nothing is live.
func (v *ToastView) View() string {
	msgs := v.store.Messages()
	if len(msgs) == 0 {
		return ""
	}
	if len(msgs) > defaultMaxToasts {
		msgs = msgs[len(msgs)-defaultMaxToasts:]
	}

	rendered := make([]string, 0, len(msgs))
	for _, m := range msgs {
		rendered = append(rendered, v.renderToast(m))
	}

	return strings.Join(rendered, "\n")
}

func (v *ToastView) renderToast(m toast.Message) string {
	var icon string
	var style lipgloss.Style

	switch m.Severity {
	case notify.SeveritySuccess:
		icon = styles.IconNotifySuccess
		style = styles.ToastSuccessStyle
	case notify.SeverityError:
		icon = styles.IconNotifyError
		style = styles.ToastErrorStyle
	case notify.SeverityWarning:
		icon = styles.IconNotifyWarning
		style = styles.ToastWarningStyle
	default:
		icon = styles.IconNotifyInfo
		style = styles.ToastInfoStyle
	}

	content := icon + " " + m.Text
	if m.Persistent() {
		content += " " + styles.IconPin
	}
	return style.Width(v.width).Render(content)
}

// Overlay composites the toast stack over background in the lower-right corner.
func (v *ToastView) Overlay(background string, width, height int) string {
	toastContent := v.View()
	if toastContent == "" {
		return background
	}

	bgLayer := lipgloss.NewLayer(background)
	toastLayer := lipgloss.NewLayer(toastContent)

	toastW := lipgloss.Width(toastContent)
	toastH := lipgloss.Height(toastContent)

	rightX := max(width-toastW-1, 0)
	bottomY := max(height-toastH, 0)

	toastLayer.X(rightX).Y(bottomY).Z(2)

	compositor := lipgloss.NewCompositor(bgLayer, toastLayer)
	return compositor.Render()
}
