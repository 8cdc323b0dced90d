package printers

import (
	"encoding/json"
	"fmt"
)

// JSON prints v as indented JSON.
func (pp *PrettyPrint) JSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("printers: json: %w", err)
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}
