package importer

import (
	"io"

	"github.com/MrJamesThe3rd/kirana/internal/inventory"
)

// Format names a supported input layout.
type Format string

const (
	FormatPriceList Format = "pricelist"
)

type Importer interface {
	Parse(r io.Reader) ([]inventory.CreateParams, error)
}
