package document

import (
	"bytes"
	"fmt"

	"code.sajari.com/docconv"
)

func extractODT(data []byte) (string, error) {
	text, _, err := docconv.ConvertODT(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("convert odt: %w", err)
	}

	return text, nil
}
