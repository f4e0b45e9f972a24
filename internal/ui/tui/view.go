package tui

import (
	"fmt"
	"strings"

	"github.com/imamik/vmportal/internal/catalog"
)

func renderView(m *Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderCatalogs(&b, m)
	renderTrigger(&b, m)

	if m.ctrl.IsOpen() {
		renderDialog(&b, m)
	}
	if m.notice.text != "" {
		renderNotice(&b, m)
	}

	renderFooter(&b, m)
	return b.String()
}

func renderHeader(b *strings.Builder, m *Model) {
	b.WriteString(titleStyle.Render("vmportal"))
	if m.opts.Tenancy != "" {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("  tenancy %s", m.opts.Tenancy)))
	}
	if m.opts.Username != "" {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("  user %s", m.opts.Username)))
	}
	b.WriteString("\n")
}

func renderCatalogs(b *strings.Builder, m *Model) {
	b.WriteString(sectionStyle.Render("Catalogs"))
	b.WriteString("\n")
	for _, c := range []*catalog.Catalog{m.images, m.sizes} {
		fmt.Fprintf(b, "  %s %s\n", catalogMark(m, c), catalogStatus(c))
	}

	switch {
	case m.keyFetching:
		fmt.Fprintf(b, "  %s ssh key: checking\n", m.spinner.View())
	case m.keyErr != nil:
		fmt.Fprintf(b, "  %s ssh key: %s\n", failedStyle.Render(crossMark), failedStyle.Render("unavailable"))
	case m.key.Present():
		fmt.Fprintf(b, "  %s ssh key: registered\n", readyStyle.Render(checkMark))
	default:
		fmt.Fprintf(b, "  %s ssh key: %s\n", warningStyle.Render(warnMark), warningStyle.Render("not registered"))
	}
}

func catalogMark(m *Model, c *catalog.Catalog) string {
	switch {
	case c.Fetching():
		return m.spinner.View()
	case c.Err() != nil:
		return failedStyle.Render(crossMark)
	case c.Initialised():
		return readyStyle.Render(checkMark)
	default:
		return dimStyle.Render(pending)
	}
}

func catalogStatus(c *catalog.Catalog) string {
	switch c.Condition() {
	case catalog.Loading:
		return fmt.Sprintf("%s: loading", c.Kind())
	case catalog.Ready:
		return fmt.Sprintf("%s: %d available", c.Kind(), c.Len())
	default:
		if c.Err() != nil {
			return fmt.Sprintf("%s: %s", c.Kind(), failedStyle.Render("failed"))
		}
		return fmt.Sprintf("%s: not loaded", c.Kind())
	}
}

func renderTrigger(b *strings.Builder, m *Model) {
	sig := m.signals()
	label := m.ctrl.Label(sig)

	b.WriteString("\n")
	switch {
	case m.ctrl.Busy(sig):
		b.WriteString(m.spinner.View() + " " + disabledButtonStyle.Render(label))
	case m.ctrl.Disabled(sig) || m.ctrl.IsOpen():
		b.WriteString(disabledButtonStyle.Render(label))
	default:
		b.WriteString(buttonStyle.Render(label))
	}
	b.WriteString("\n")
}

func renderDialog(b *strings.Builder, m *Model) {
	var body strings.Builder

	switch {
	case m.keySetupRunning:
		fmt.Fprintf(&body, "%s Registering SSH key...", m.spinner.View())
	case m.dialog != nil:
		body.WriteString(m.dialog.View())
	case m.ctrl.FormVisible():
		if err := m.catalogErr(); err != nil {
			body.WriteString(failedStyle.Render(err.Error()))
			body.WriteString("\n")
			body.WriteString(dimStyle.Render("Press r to retry, esc to close."))
			break
		}
		fmt.Fprintf(&body, "%s Waiting for catalogs...\n", m.spinner.View())
		body.WriteString(dimStyle.Render("The form is available once images and sizes have loaded."))
	}

	if m.formErr != nil {
		body.WriteString("\n")
		body.WriteString(failedStyle.Render(m.formErr.Error()))
	}

	b.WriteString(dialogStyle.Width(m.dialogWidth()).Render(body.String()))
	b.WriteString("\n")
}

func renderNotice(b *strings.Builder, m *Model) {
	b.WriteString("\n")
	if m.notice.err {
		b.WriteString(failedStyle.Render(crossMark + " " + m.notice.text))
	} else {
		b.WriteString(readyStyle.Render(checkMark + " " + m.notice.text))
	}
	b.WriteString("\n")
}

func renderFooter(b *strings.Builder, m *Model) {
	if m.ctrl.IsOpen() {
		b.WriteString(footerStyle.Render("esc close"))
	} else {
		b.WriteString(footerStyle.Render("n new machine  r refresh  q quit"))
	}
	b.WriteString("\n")
}
