package handlers

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/imamik/vmportal/internal/catalog"
)

// entryJSON is the --json shape of a catalog entry.
type entryJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// createdJSON is the --json shape of a created machine.
type createdJSON struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// keyJSON is the --json shape of the user's SSH key.
type keyJSON struct {
	Name       string `json:"name"`
	Registered bool   `json:"registered"`
	PublicKey  string `json:"public_key,omitempty"`
	CanUpdate  bool   `json:"can_update"`
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// printEntries prints a catalog as a table, or as JSON.
func printEntries(kind catalog.Kind, entries []catalog.Entry, jsonOutput bool) error {
	if jsonOutput {
		out := make([]entryJSON, len(entries))
		for i, e := range entries {
			out[i] = entryJSON(e)
		}
		return printJSON(out)
	}

	if len(entries) == 0 {
		fmt.Printf("No %s available.\n", kind)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Name, e.Description)
	}
	return w.Flush()
}

func printCreated(name, id string, jsonOutput bool) error {
	if jsonOutput {
		return printJSON(createdJSON{Name: name, ID: id})
	}
	fmt.Printf("Machine %s created (id %s)\n", name, id)
	return nil
}
