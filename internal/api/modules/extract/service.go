package extract_module

import (
	"github.com/notesnap/notesnap/internal/extraction"
	"github.com/notesnap/notesnap/pkg/utils"
)

// extractionClient is the gateway client behind the extraction endpoint
var extractionClient extraction.Client

// Init builds the gateway client from configuration
func Init(cfg *utils.Config) error {
	opts, err := extraction.LoadOptions(cfg)
	if err != nil {
		return err
	}

	extractionClient = extraction.NewClient(opts)
	return nil
}
