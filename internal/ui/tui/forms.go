package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/imamik/vmportal/internal/catalog"
	"github.com/imamik/vmportal/internal/config"
	"github.com/imamik/vmportal/internal/gate"
	"github.com/imamik/vmportal/internal/machine"
)

var errPathRequired = errors.New("a path is required")

// createFields are the widget values of the creation form. They are
// pushed through the machine.Form setters after every update and read
// back, so a hidden option never keeps a contradicting value.
type createFields struct {
	name       string
	imageID    string
	sizeID     string
	webConsole bool
	desktop    bool
}

// keySetupFields are the widget values of the key-setup sub-dialog.
type keySetupFields struct {
	method         gate.Method
	publicKey      string
	privateKeyPath string
}

func (k *keySetupFields) request() gate.SetupRequest {
	return gate.SetupRequest{
		Method:         k.method,
		PublicKey:      strings.TrimSpace(k.publicKey),
		PrivateKeyPath: config.ExpandHome(strings.TrimSpace(k.privateKeyPath)),
	}
}

// syncFields copies the widget values into the form and the form's
// consistent view back into the widgets.
func (m *Model) syncFields() {
	form, f := m.ctrl.Form(), m.fields
	if form == nil || f == nil {
		return
	}
	form.SetName(f.name)
	form.SetImage(f.imageID)
	form.SetSize(f.sizeID)
	form.SetWebConsoleEnabled(f.webConsole)
	form.SetDesktopEnabled(f.desktop)

	req := form.Request()
	f.webConsole = req.WebConsoleEnabled
	f.desktop = req.DesktopEnabled
}

func entryOptions(entries []catalog.Entry) []huh.Option[string] {
	options := make([]huh.Option[string], len(entries))
	for i, e := range entries {
		options[i] = huh.NewOption(e.Label(), e.ID)
	}
	return options
}

// buildCreateDialog mounts the creation widgets. While a catalog is not
// ready the whole form stays unmounted.
func (m *Model) buildCreateDialog() tea.Cmd {
	form, f := m.ctrl.Form(), m.fields
	if form == nil || f == nil || !machine.Ready(m.images, m.sizes) {
		m.dialog = nil
		return nil
	}

	m.dialog = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("vm-01").
				Value(&f.name).
				Validate(machine.ValidateName),
			huh.NewSelect[string]().
				Title("Image").
				OptionsFunc(func() []huh.Option[string] { return entryOptions(m.images.Items()) }, &m.catalogVersion).
				Value(&f.imageID),
			huh.NewSelect[string]().
				Title("Size").
				OptionsFunc(func() []huh.Option[string] { return entryOptions(m.sizes.Items()) }, &m.catalogVersion).
				Value(&f.sizeID),
		).Title("New machine"),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable web console?").
				Description("Browser access through the tenancy proxy").
				Value(&f.webConsole),
		).WithHideFunc(func() bool {
			m.syncFields()
			return !form.Visibility().WebConsole
		}),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable desktop?").
				Description("Graphical desktop in the web console").
				Value(&f.desktop),
		).WithHideFunc(func() bool {
			m.syncFields()
			return !form.Visibility().Desktop
		}),
	).WithShowHelp(true).WithWidth(m.dialogWidth())

	return m.dialog.Init()
}

// buildKeySetupDialog mounts the key-setup sub-dialog for the gate's key
// state.
func (m *Model) buildKeySetupDialog() tea.Cmd {
	key := m.ctrl.Gate().Key()
	if !key.CanUpdate {
		m.dialog = huh.NewForm(
			huh.NewGroup(
				huh.NewNote().
					Title("SSH key required").
					Description("No SSH key is registered for your account and this tenancy\n" +
						"does not allow registering keys here. Ask an administrator to\n" +
						"register your public key, then press r to refresh."),
			),
		).WithShowHelp(false).WithWidth(m.dialogWidth())
		return m.dialog.Init()
	}

	kf := m.keyFields
	if kf == nil {
		kf = &keySetupFields{privateKeyPath: m.opts.PrivateKeyPath}
		m.keyFields = kf
	}

	m.dialog = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[gate.Method]().
				Title("SSH key required").
				Description("Machines are accessed with your SSH key. Register one to continue.").
				Options(
					huh.NewOption("Paste an existing public key", gate.MethodPaste),
					huh.NewOption("Generate a new RSA key pair", gate.MethodGenerate),
				).
				Value(&kf.method),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Public key").
				Placeholder("ssh-ed25519 AAAA...").
				Value(&kf.publicKey).
				Validate(func(s string) error {
					return gate.ValidatePublicKey(s, key.AllowedKeyTypes, key.RSAMinBits)
				}),
		).WithHideFunc(func() bool { return kf.method != gate.MethodPaste }),
		huh.NewGroup(
			huh.NewInput().
				Title("Private key path").
				Description("Existing files are never overwritten").
				Value(&kf.privateKeyPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errPathRequired
					}
					return nil
				}),
		).WithHideFunc(func() bool { return kf.method != gate.MethodGenerate }),
	).WithShowHelp(true).WithWidth(m.dialogWidth())

	return m.dialog.Init()
}

func (m *Model) dialogWidth() int {
	w := m.width - 8
	if w < 40 {
		return 40
	}
	if w > 80 {
		return 80
	}
	return w
}
