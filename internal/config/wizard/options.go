package wizard

import (
	"strconv"

	"github.com/charmbracelet/huh"
)

// LocationOption represents a Hetzner Cloud datacenter location.
type LocationOption struct {
	Value       string
	Label       string
	Description string
}

// Locations contains all valid Hetzner Cloud datacenter locations.
// The empty value lets Hetzner pick one.
var Locations = []LocationOption{
	{Value: "", Label: "any", Description: "Let Hetzner choose"},
	{Value: "nbg1", Label: "nbg1", Description: "Nuremberg, Germany"},
	{Value: "fsn1", Label: "fsn1", Description: "Falkenstein, Germany"},
	{Value: "hel1", Label: "hel1", Description: "Helsinki, Finland"},
	{Value: "ash", Label: "ash", Description: "Ashburn, USA"},
	{Value: "hil", Label: "hil", Description: "Hillsboro, USA"},
	{Value: "sin", Label: "sin", Description: "Singapore"},
}

// RSAMinBitsOptions are the offered minimum RSA key sizes.
var RSAMinBitsOptions = []int{2048, 3072, 4096}

// LocationsToOptions converts locations to huh options.
func LocationsToOptions() []huh.Option[string] {
	options := make([]huh.Option[string], len(Locations))
	for i, loc := range Locations {
		options[i] = huh.NewOption(loc.Label+" - "+loc.Description, loc.Value)
	}
	return options
}

// RSAMinBitsToOptions converts the key sizes to huh options.
func RSAMinBitsToOptions() []huh.Option[int] {
	options := make([]huh.Option[int], len(RSAMinBitsOptions))
	for i, bits := range RSAMinBitsOptions {
		options[i] = huh.NewOption(strconv.Itoa(bits)+" bits", bits)
	}
	return options
}
