// Package wizard provides the interactive setup wizard behind vmportal init.
//
// RunWizard asks for the tenancy, the user, the datacenter and the optional
// web console settings with charmbracelet/huh forms and returns a
// WizardResult. BuildConfig turns the result into a config.Config and
// WriteConfig writes it as vmportal.yaml with a descriptive header.
package wizard
