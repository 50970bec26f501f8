package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
	"github.com/MrJamesThe3rd/kirana/internal/importer/pricelist"
	"github.com/MrJamesThe3rd/kirana/internal/inventory"
)

type Service struct {
	importers map[Format]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatPriceList: pricelist.NewParser(),
		},
	}
}

// Import parses r as format. Unreadable files are validation errors.
func (s *Service) Import(format Format, r io.Reader) ([]inventory.CreateParams, error) {
	importer, ok := s.importers[format]
	if !ok {
		return nil, apperror.Invalidf(inventory.ErrInvalidItem, "unknown import format %q", format)
	}

	params, err := importer.Parse(r)
	if err != nil {
		return nil, apperror.Invalid(fmt.Errorf("parsing %s: %w", format, err), "")
	}

	return params, nil
}
