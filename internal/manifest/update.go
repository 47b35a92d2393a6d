package manifest

import (
	"fmt"

	"github.com/encorekit/encore-init/internal/fsutil"
)

// FileName is the manifest file patched by UpdateScripts.
const FileName = "package.json"

// Script is one named entry of the package.json scripts object.
type Script struct {
	Name    string
	Command string
}

// EncoreScripts are the entries UpdateScripts guarantees.
var EncoreScripts = []Script{
	{Name: "encore:dev", Command: "encore dev"},
	{Name: "encore:watch", Command: "encore dev --watch"},
	{Name: "encore:production", Command: "encore production --progress"},
}

// Load reads and parses the manifest at path.
func Load(w *fsutil.Writer, path string) (*Document, error) {
	data, err := w.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// UpdateScripts sets the Encore scripts in the manifest at path and writes it
// back without asking, since only those entries change. Running it again
// produces the same file.
func UpdateScripts(w *fsutil.Writer, path string) (fsutil.Outcome, error) {
	doc, err := Load(w, path)
	if err != nil {
		return fsutil.Skipped, err
	}

	for _, s := range EncoreScripts {
		doc.SetScript(s.Name, s.Command)
	}

	out, err := doc.Marshal()
	if err != nil {
		return fsutil.Skipped, fmt.Errorf("rendering %s: %w", path, err)
	}
	return w.WriteFile(path, string(out))
}
