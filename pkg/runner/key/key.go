// Package key prints the mood legend.
package key

import (
	"context"

	"tableflip.dev/moodtrack/pkg/printers"
)

// Key prints the mood scale and the emotion catalogue.
type Key struct {
	Printer *printers.PrettyPrint
}

// Do renders the legend to stdout.
func (k *Key) Do(ctx context.Context) error {
	pp := k.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	pp.NewLine()
	pp.Legend()
	return nil
}
