package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/stmtgen/internal/model"
)

// ErrNoStatement is returned when there is nothing to export.
var ErrNoStatement = errors.New("no statement to export")

// WriteJSON writes the result in the shape the generator returns it:
// {"transactions": [...], "totals": {...}}. Absent debits and credits are null.
func WriteJSON(out io.Writer, result *model.StatementResult) error {
	if result == nil {
		return ErrNoStatement
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode statement: %w", err)
	}
	return nil
}
